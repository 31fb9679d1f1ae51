package secrets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"mercator-hq/switchyard/pkg/config"
)

// Chain resolves credentials from an ordered list of providers. The first
// provider that supports a name and returns a non-empty value wins.
type Chain struct {
	providers []SecretProvider
}

// NewChain creates a chain over providers, tried in order.
func NewChain(providers ...SecretProvider) *Chain {
	return &Chain{providers: providers}
}

// FromConfig builds the credential chain described by cfg: the secrets
// directory first, if one is configured, then the environment.
func FromConfig(cfg config.SecretsConfig) (*Chain, error) {
	var providers []SecretProvider

	if cfg.Dir != "" {
		fp, err := NewFileProvider(cfg.Dir, cfg.Watch)
		if err != nil {
			return nil, fmt.Errorf("failed to open secrets directory: %w", err)
		}
		providers = append(providers, fp)
	}
	providers = append(providers, NewEnvProvider(cfg.EnvPrefix))

	return NewChain(providers...), nil
}

// Credential implements CredentialSource.
func (c *Chain) Credential(ctx context.Context, name string) (string, error) {
	var notFound []error
	for _, provider := range c.providers {
		if !provider.Supports(name) {
			continue
		}

		value, err := provider.GetSecret(ctx, name)
		if err == nil && value != "" {
			slog.Debug("credential resolved",
				"provider", provider.Provider(),
				"name", redactSecretName(name),
			)
			return value, nil
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			// A provider that fails outright is reported, not skipped.
			return "", fmt.Errorf("%s provider: %w", provider.Provider(), err)
		}
		if err != nil {
			notFound = append(notFound, err)
		}
	}

	if len(notFound) == 0 {
		return "", &NotFoundError{Name: name}
	}
	return "", errors.Join(notFound...)
}

// Refresh discards cached values in every refreshable provider.
func (c *Chain) Refresh(ctx context.Context) error {
	var errs []error
	for _, provider := range c.providers {
		if r, ok := provider.(RefreshableProvider); ok {
			if err := r.Refresh(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", provider.Provider(), err))
			}
		}
	}
	return errors.Join(errs...)
}

// Providers returns the provider names in lookup order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Provider())
	}
	return names
}

// Close releases provider resources such as file watchers.
func (c *Chain) Close() error {
	var errs []error
	for _, provider := range c.providers {
		if closer, ok := provider.(io.Closer); ok {
			errs = append(errs, closer.Close())
		}
	}
	return errors.Join(errs...)
}

// redactSecretName shortens a secret name for logging.
func redactSecretName(name string) string {
	if len(name) <= 4 {
		return "***"
	}
	return name[:2] + "..." + name[len(name)-2:]
}
