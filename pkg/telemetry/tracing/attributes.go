package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Custom attribute keys use the "switchyard.*" namespace. HTTP attributes
// follow the OpenTelemetry semantic conventions.
const (
	AttrService   = "switchyard.service"
	AttrBackend   = "switchyard.backend"
	AttrTarget    = "switchyard.target"
	AttrRequestID = "switchyard.request_id"
	AttrErrorKind = "switchyard.error.kind"

	AttrHTTPMethod     = "http.request.method"
	AttrURLPath        = "url.path"
	AttrHTTPStatusCode = "http.response.status_code"

	AttrErrorMessage = "error.message"
)

// SetRouteAttributes records which service a request was routed to.
func SetRouteAttributes(span trace.Span, service, backend string) {
	span.SetAttributes(
		attribute.String(AttrService, service),
		attribute.String(AttrBackend, backend),
	)
}

// SetStatusCode records the status code returned to the client.
func SetStatusCode(span trace.Span, code int) {
	span.SetAttributes(attribute.Int(AttrHTTPStatusCode, code))
}

// RequestAttributes returns the attributes every gateway span starts with.
func RequestAttributes(method, path, requestID string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrURLPath, path),
	}
	if requestID != "" {
		attrs = append(attrs, attribute.String(AttrRequestID, requestID))
	}
	return attrs
}
