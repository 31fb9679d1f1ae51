package secrets

import (
	"context"
	"sync"
)

// StaticProvider serves secrets from memory. Values can be replaced at any
// time with Set, which makes it suitable for tests of credential rotation.
type StaticProvider struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStaticProvider creates a provider holding a copy of values.
func NewStaticProvider(values map[string]string) *StaticProvider {
	p := &StaticProvider{values: make(map[string]string, len(values))}
	for k, v := range values {
		p.values[k] = v
	}
	return p
}

// Set stores or replaces a secret.
func (p *StaticProvider) Set(name, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[name] = value
}

// Delete removes a secret.
func (p *StaticProvider) Delete(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.values, name)
}

// GetSecret implements SecretProvider.
func (p *StaticProvider) GetSecret(_ context.Context, name string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	value := p.values[name]
	if value == "" {
		return "", &NotFoundError{Name: name, Source: "static"}
	}
	return value, nil
}

// Credential implements CredentialSource.
func (p *StaticProvider) Credential(ctx context.Context, name string) (string, error) {
	return p.GetSecret(ctx, name)
}

// Provider returns the provider name.
func (p *StaticProvider) Provider() string {
	return "static"
}

// Supports implements SecretProvider.
func (p *StaticProvider) Supports(string) bool {
	return true
}
