package secrets

import (
	"context"
	"os"
	"strings"
)

// EnvProvider loads secrets from environment variables.
//
// Secret names are converted to uppercase with hyphens replaced by
// underscores, then prefixed: "openai-api-key" becomes OPENAI_API_KEY, or
// SWITCHYARD_OPENAI_API_KEY with prefix "SWITCHYARD_".
type EnvProvider struct {
	Prefix string
}

// NewEnvProvider creates a new environment variable secret provider.
func NewEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{Prefix: prefix}
}

// GetSecret retrieves a secret from an environment variable. An unset or
// empty variable is reported as a *NotFoundError.
func (p *EnvProvider) GetSecret(_ context.Context, name string) (string, error) {
	envVar := p.EnvVar(name)

	value := strings.TrimSpace(os.Getenv(envVar))
	if value == "" {
		return "", &NotFoundError{Name: name, Source: "env " + envVar}
	}
	return value, nil
}

// Provider returns the provider name.
func (p *EnvProvider) Provider() string {
	return "env"
}

// Supports always returns true so the environment can serve as the fallback.
func (p *EnvProvider) Supports(string) bool {
	return true
}

// EnvVar returns the environment variable a secret name maps to.
func (p *EnvProvider) EnvVar(name string) string {
	return p.Prefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}
