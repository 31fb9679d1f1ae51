package dispatch

import (
	"log/slog"

	"mercator-hq/switchyard/pkg/forwarder"
	"mercator-hq/switchyard/pkg/inference"
	"mercator-hq/switchyard/pkg/proxy/types"
	"mercator-hq/switchyard/pkg/registry"
)

// LocalInference serves requests from the co-located model runtime.
type LocalInference struct {
	runtime inference.Runtime
}

// NewLocalInference creates a local inference dispatcher over rt.
func NewLocalInference(rt inference.Runtime) *LocalInference {
	return &LocalInference{runtime: rt}
}

// Dispatch selects the operation named by the request path. Paths naming
// no operation are a *types.UnsupportedOperationError and methods the
// operation does not accept are a *types.MethodNotAllowedError; the runtime
// is not called in either case.
func (l *LocalInference) Dispatch(req *types.InboundRequest, def registry.ServiceDefinition) (*types.GatewayResponse, error) {
	op, ok := inference.ResolveOperation(req.Path, def.PathPrefix)
	if !ok {
		return nil, &types.UnsupportedOperationError{Service: def.Name, Path: req.Path}
	}
	if !op.Allows(req.Method) {
		return nil, &types.MethodNotAllowedError{
			Method:  req.Method,
			Path:    req.Path,
			Allowed: op.AllowedMethods(),
		}
	}

	ctx := req.Context()
	body := req.Body
	if op != inference.Models {
		body = inference.WithDefaultModel(body, def.Model)
	}

	slog.DebugContext(ctx, "dispatching local inference request",
		"service", def.Name,
		"operation", op.String(),
		"model", inference.ModelOf(body),
	)

	return inference.Invoke(ctx, l.runtime, op, &inference.Request{
		Header: forwarder.CloneForForwarding(req.Header),
		Body:   body,
	})
}
