package dispatch

import (
	"log/slog"

	"mercator-hq/switchyard/pkg/forwarder"
	"mercator-hq/switchyard/pkg/proxy/types"
	"mercator-hq/switchyard/pkg/registry"
	"mercator-hq/switchyard/pkg/security/secrets"
)

// Sender performs a downstream HTTP exchange. *forwarder.Forwarder
// implements it.
type Sender interface {
	Send(req *types.DownstreamRequest) (*types.GatewayResponse, error)
}

// Passthrough relays requests to an external service with a bearer token.
type Passthrough struct {
	sender      Sender
	credentials secrets.CredentialSource
}

// NewPassthrough creates a passthrough dispatcher.
func NewPassthrough(sender Sender, credentials secrets.CredentialSource) *Passthrough {
	return &Passthrough{sender: sender, credentials: credentials}
}

// Dispatch resolves the service credential, then sends the request to the
// service's target address with the method and body unchanged. A missing
// credential is a *types.ConfigurationError and nothing is sent.
func (p *Passthrough) Dispatch(req *types.InboundRequest, def registry.ServiceDefinition) (*types.GatewayResponse, error) {
	ctx := req.Context()

	token, err := p.credentials.Credential(ctx, def.Credential)
	if err != nil {
		return nil, &types.ConfigurationError{
			Service: def.Name,
			Reason:  "credential " + def.Credential + " unavailable",
			Cause:   err,
		}
	}

	header := forwarder.CloneForForwarding(req.Header)
	header.Del("Authorization")
	header.Set("Content-Type", types.ContentTypeJSON)
	header.Set("Authorization", "Bearer "+token)

	slog.DebugContext(ctx, "dispatching passthrough request",
		"service", def.Name,
		"target", def.TargetAddress,
		"method", req.Method,
	)

	return p.sender.Send(&types.DownstreamRequest{
		Ctx:    ctx,
		Method: req.Method,
		URL:    def.TargetAddress,
		Header: header,
		Body:   req.Body,
	})
}
