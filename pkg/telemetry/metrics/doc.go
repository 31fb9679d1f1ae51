// Package metrics provides Prometheus metrics for the gateway.
//
// # Metrics
//
// With the default namespace "switchyard":
//
//   - switchyard_requests_total{service,backend,code}: completed requests
//   - switchyard_request_duration_seconds{service,backend}: time to response
//     headers plus body relay
//   - switchyard_request_size_bytes{service,direction}: request and response
//     body sizes
//   - switchyard_in_flight_requests: requests currently being served
//   - switchyard_route_misses_total: requests that matched no service
//   - switchyard_backend_latency_seconds{service,backend}: time until the
//     backend answered
//   - switchyard_errors_total{service,kind}: gateway errors by kind
//     (unavailable, misconfigured, unsupported_operation, ...)
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
//	collector.RecordRequest("openai", "passthrough", 200, time.Second)
//
// All Record methods are no-ops on a nil or disabled Collector, so callers
// need not check whether metrics are enabled.
//
// The service label takes its values from the service table, so its
// cardinality is bounded by configuration.
package metrics
