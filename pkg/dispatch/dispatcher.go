package dispatch

import (
	"fmt"

	"mercator-hq/switchyard/pkg/inference"
	"mercator-hq/switchyard/pkg/proxy/types"
	"mercator-hq/switchyard/pkg/registry"
	"mercator-hq/switchyard/pkg/security/secrets"
)

// Dispatcher fulfils a request for one backend type.
type Dispatcher interface {
	// Dispatch serves req for the service def. On success the caller owns
	// the response body.
	Dispatch(req *types.InboundRequest, def registry.ServiceDefinition) (*types.GatewayResponse, error)
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(req *types.InboundRequest, def registry.ServiceDefinition) (*types.GatewayResponse, error)

// Dispatch implements Dispatcher.
func (f DispatcherFunc) Dispatch(req *types.InboundRequest, def registry.ServiceDefinition) (*types.GatewayResponse, error) {
	return f(req, def)
}

// Set holds the dispatcher for each backend type.
type Set map[registry.BackendType]Dispatcher

// For returns the dispatcher registered for backend.
func (s Set) For(backend registry.BackendType) (Dispatcher, error) {
	d, ok := s[backend]
	if !ok || d == nil {
		return nil, fmt.Errorf("no dispatcher registered for backend %s", backend)
	}
	return d, nil
}

// Dispatch looks up the dispatcher for def and calls it.
func (s Set) Dispatch(req *types.InboundRequest, def registry.ServiceDefinition) (*types.GatewayResponse, error) {
	d, err := s.For(def.Backend)
	if err != nil {
		return nil, &types.ConfigurationError{Service: def.Name, Reason: "unsupported backend", Cause: err}
	}
	return d.Dispatch(req, def)
}

// NewSet wires the standard dispatcher for every backend type.
func NewSet(sender Sender, credentials secrets.CredentialSource, rt inference.Runtime) Set {
	return Set{
		registry.Passthrough:    NewPassthrough(sender, credentials),
		registry.LocalInference: NewLocalInference(rt),
		registry.Echo:           NewEcho(),
	}
}
