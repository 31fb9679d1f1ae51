// Package forwarder performs outbound HTTP calls for passthrough services.
//
// A Forwarder owns one pooled *http.Client shared by every request. Each
// Send builds a fresh outbound request from a types.DownstreamRequest, bound
// to the inbound request's context so that a client disconnect cancels the
// downstream call. Trace context is injected into the outbound headers using
// the global OpenTelemetry propagator.
//
// Responses are returned unbuffered: the body of the returned
// types.GatewayResponse is the live downstream body and the caller must close
// it. Any failure to complete the exchange (refused connection, DNS or TLS
// failure, timeout, cancellation) is reported as a
// *types.DownstreamUnavailableError.
package forwarder
