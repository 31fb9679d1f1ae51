package types

import (
	"context"
	"net/http"
)

// InboundRequest is a client request after its body has been read in full.
// It is owned by the goroutine serving the request and is never shared.
type InboundRequest struct {
	// Ctx is the client request context. It is cancelled when the client
	// disconnects.
	Ctx context.Context

	// Method is the HTTP method.
	Method string

	// Path is the raw URL path used for routing.
	Path string

	// RawQuery is the encoded query string, without the leading '?'.
	RawQuery string

	// Header holds the inbound request headers.
	Header http.Header

	// Body holds the complete request body.
	Body []byte
}

// Context returns the request context, falling back to context.Background.
func (r *InboundRequest) Context() context.Context {
	if r.Ctx == nil {
		return context.Background()
	}
	return r.Ctx
}

// DownstreamRequest is the request a dispatcher sends to a backend.
// It is built fresh for each inbound request and never reused.
type DownstreamRequest struct {
	Ctx    context.Context
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Context returns the request context, falling back to context.Background.
func (r *DownstreamRequest) Context() context.Context {
	if r.Ctx == nil {
		return context.Background()
	}
	return r.Ctx
}
