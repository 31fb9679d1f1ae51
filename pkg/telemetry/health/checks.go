package health

import (
	"context"
	"errors"
	"fmt"

	"mercator-hq/switchyard/pkg/registry"
	"mercator-hq/switchyard/pkg/security/secrets"
)

// Pinger is implemented by components that can probe their own backend.
type Pinger interface {
	Check(ctx context.Context) error
}

// RoutesCheck fails when the service table is empty.
func RoutesCheck(reg *registry.Registry) CheckFunc {
	return func(ctx context.Context) error {
		if reg == nil || reg.Len() == 0 {
			return errors.New("no services configured")
		}
		return nil
	}
}

// RuntimeCheck probes the local inference runtime.
func RuntimeCheck(p Pinger) CheckFunc {
	return func(ctx context.Context) error {
		if err := p.Check(ctx); err != nil {
			return fmt.Errorf("inference runtime unreachable: %w", err)
		}
		return nil
	}
}

// CredentialsCheck verifies that every named credential resolves. Only the
// names of missing credentials are reported.
func CredentialsCheck(src secrets.CredentialSource, names []string) CheckFunc {
	return func(ctx context.Context) error {
		var missing []error
		for _, name := range names {
			if _, err := src.Credential(ctx, name); err != nil {
				missing = append(missing, fmt.Errorf("credential %q unavailable", name))
			}
		}
		return errors.Join(missing...)
	}
}
