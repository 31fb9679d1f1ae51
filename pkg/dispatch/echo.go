package dispatch

import (
	"net/http"

	"mercator-hq/switchyard/pkg/proxy/types"
	"mercator-hq/switchyard/pkg/registry"
)

// EchoReply is the body returned for requests without a body.
const EchoReply = "echo test"

// Echo answers every request itself. It is used to check that routing works
// without involving any backend.
type Echo struct{}

// NewEcho creates an echo dispatcher.
func NewEcho() *Echo {
	return &Echo{}
}

// Dispatch returns 200 with the request body, or EchoReply when the body is
// empty.
func (Echo) Dispatch(req *types.InboundRequest, _ registry.ServiceDefinition) (*types.GatewayResponse, error) {
	var resp *types.GatewayResponse
	if len(req.Body) == 0 {
		resp = types.NewTextResponse(http.StatusOK, EchoReply)
	} else {
		resp = types.NewBytesResponse(http.StatusOK, types.ContentTypeText, req.Body)
	}
	resp.Header.Set("X-Echo-Method", req.Method)
	resp.Header.Set("X-Echo-Path", req.Path)
	return resp, nil
}
