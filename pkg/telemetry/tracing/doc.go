// Package tracing provides OpenTelemetry distributed tracing for the gateway.
//
// # Overview
//
// Every inbound request gets one span covering routing, dispatch and the
// response write. Inbound W3C trace context (traceparent, tracestate) is
// extracted before the span starts, and the forwarder injects the current
// context into passthrough requests, so a gateway hop shows up inside the
// caller's trace.
//
// Spans are exported over OTLP gRPC. When tracing is disabled the package
// hands out noop spans but still installs the W3C propagator.
//
// # Sampling Strategies
//
// Three sampling strategies are supported:
//   - always: Sample all traces (development/debugging)
//   - never: Sample no traces
//   - ratio: Sample a percentage of traces (production)
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "gateway.request")
//	defer span.End()
//	tracing.SetRouteAttributes(span, def.Name, def.Backend.String())
package tracing
