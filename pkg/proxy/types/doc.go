// Package types defines the request, response and error values that flow through
// the gateway pipeline.
//
// An InboundRequest is read once from the client connection and handed to a
// dispatcher. Passthrough dispatch derives a DownstreamRequest from it; every
// dispatcher produces a GatewayResponse, which the entrypoint writes back to the
// client unchanged in shape.
//
// # Error Kinds
//
// Failures are reported as typed errors so the entrypoint can map them to HTTP
// responses with errors.As:
//
//   - UnsupportedOperationError: backend resolved, operation path unknown (404)
//   - MethodNotAllowedError: operation known, method not accepted (405)
//   - RequestTooLargeError: inbound body over the configured limit (413)
//   - DownstreamUnavailableError: transport-level failure reaching a backend (503)
//   - ConfigurationError: credential or target missing or malformed (500)
//
// Client-facing JSON errors use ErrorResponse, which follows the OpenAI error
// envelope so OpenAI SDKs surface the message.
package types
