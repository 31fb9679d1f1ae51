// Package telemetry groups the gateway's observability packages.
//
//   - logging: slog setup with context fields and credential redaction
//   - metrics: Prometheus request, routing and backend metrics
//   - tracing: OpenTelemetry spans and W3C trace context propagation
//   - health: liveness and readiness probes
//
// Each subpackage is configured from config.TelemetryConfig and wired
// together in cmd/switchyard.
package telemetry
