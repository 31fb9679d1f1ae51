package registry

import (
	"fmt"
	"strings"

	"mercator-hq/switchyard/pkg/config"
)

// BackendType identifies how requests for a service are fulfilled.
type BackendType int

const (
	// Passthrough relays the request to an external HTTP service.
	Passthrough BackendType = iota + 1

	// LocalInference serves the request from the co-located model runtime.
	LocalInference

	// Echo answers the request directly without contacting anything.
	Echo
)

// String returns the canonical configuration name of the backend type.
func (t BackendType) String() string {
	switch t {
	case Passthrough:
		return "passthrough"
	case LocalInference:
		return "local_inference"
	case Echo:
		return "echo"
	default:
		return fmt.Sprintf("backend(%d)", int(t))
	}
}

// ParseBackendType maps a configuration type name, including legacy
// aliases, to a BackendType.
func ParseBackendType(s string) (BackendType, error) {
	switch {
	case config.IsPassthroughType(s):
		return Passthrough, nil
	case config.IsLocalInferenceType(s):
		return LocalInference, nil
	case config.IsEchoType(s):
		return Echo, nil
	default:
		return 0, fmt.Errorf("unknown backend type %q", s)
	}
}

// ServiceDefinition is one entry of the service table.
type ServiceDefinition struct {
	// Name labels the service in logs and metrics.
	Name string

	// PathPrefix is matched against the start of the request path.
	PathPrefix string

	// Backend selects the dispatcher.
	Backend BackendType

	// TargetAddress is the absolute URI passthrough requests are sent to.
	TargetAddress string

	// Credential names the secret holding the passthrough bearer token.
	Credential string

	// Model is the default model for local inference requests.
	Model string
}

// Matches reports whether path starts with the definition's prefix.
func (d ServiceDefinition) Matches(path string) bool {
	return strings.HasPrefix(path, d.PathPrefix)
}

// Registry is the ordered, read-only service table.
type Registry struct {
	defs []ServiceDefinition
}

// New builds a registry from definitions, preserving their order.
// The slice is copied.
func New(defs []ServiceDefinition) *Registry {
	return &Registry{defs: append([]ServiceDefinition(nil), defs...)}
}

// FromConfig builds a registry from the configured service table.
// The configuration is expected to have passed config.Validate.
func FromConfig(services []config.ServiceConfig) (*Registry, error) {
	defs := make([]ServiceDefinition, 0, len(services))
	for i, svc := range services {
		backend, err := ParseBackendType(svc.Type)
		if err != nil {
			return nil, fmt.Errorf("services[%d]: %w", i, err)
		}
		name := svc.Name
		if name == "" {
			name = svc.Path
		}
		defs = append(defs, ServiceDefinition{
			Name:          name,
			PathPrefix:    svc.Path,
			Backend:       backend,
			TargetAddress: svc.TargetService,
			Credential:    svc.Credential,
			Model:         svc.Model,
		})
	}
	return New(defs), nil
}

// Definitions returns a copy of the service table in match order.
func (r *Registry) Definitions() []ServiceDefinition {
	return append([]ServiceDefinition(nil), r.defs...)
}

// Len returns the number of services.
func (r *Registry) Len() int {
	return len(r.defs)
}

// At returns the i-th definition in match order.
func (r *Registry) At(i int) ServiceDefinition {
	return r.defs[i]
}
