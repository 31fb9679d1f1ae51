package secrets

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no provider holds a non-empty value for a
// secret.
var ErrNotFound = errors.New("secret not found")

// NotFoundError reports a missing secret and where it was looked up.
type NotFoundError struct {
	// Name is the secret name.
	Name string

	// Source describes where the secret was expected, such as the
	// environment variable name.
	Source string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("secret %q not found", e.Name)
	}
	return fmt.Sprintf("secret %q not found (%s)", e.Name, e.Source)
}

// Is implements error matching for errors.Is().
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CredentialSource resolves named credentials. It is the only way
// dispatchers obtain secrets.
type CredentialSource interface {
	// Credential returns the value of the named credential. A missing or
	// empty value is an error matching ErrNotFound.
	Credential(ctx context.Context, name string) (string, error)
}

// SecretProvider retrieves secrets from one backend.
type SecretProvider interface {
	// GetSecret retrieves a secret by name.
	GetSecret(ctx context.Context, name string) (string, error)

	// Provider returns the provider name (env, file, static).
	Provider() string

	// Supports indicates if this provider can hold the given secret.
	Supports(name string) bool
}

// RefreshableProvider can reload secrets without restart.
type RefreshableProvider interface {
	SecretProvider

	// Refresh discards cached values so they are re-read on next use.
	Refresh(ctx context.Context) error
}
