package proxy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"mercator-hq/switchyard/pkg/dispatch"
	"mercator-hq/switchyard/pkg/proxy/types"
	"mercator-hq/switchyard/pkg/registry"
	"mercator-hq/switchyard/pkg/routing"
	"mercator-hq/switchyard/pkg/telemetry/logging"
	"mercator-hq/switchyard/pkg/telemetry/metrics"
	"mercator-hq/switchyard/pkg/telemetry/tracing"
)

// unrouted labels metrics for requests that matched no service.
const unrouted = "unrouted"

// Options configures a Gateway. The zero value is usable.
type Options struct {
	// MaxBodyBytes is the largest request body accepted.
	// Default: DefaultMaxBodyBytes
	MaxBodyBytes int64

	// Metrics records request metrics. Nil disables them.
	Metrics *metrics.Collector

	// Tracer starts one span per request. Nil uses a noop tracer.
	Tracer trace.Tracer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Gateway is the single entry point for proxied traffic. Each request is
// routed to a service definition, dispatched to that service's backend and
// answered with the backend's response, or with the response HandleError
// derives from whatever went wrong. Requests are never retried.
type Gateway struct {
	router     *routing.Router
	dispatcher dispatch.Dispatcher
	opts       Options
	logger     *slog.Logger
}

// NewGateway creates a gateway.
func NewGateway(router *routing.Router, dispatcher dispatch.Dispatcher, opts Options) *Gateway {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer(tracing.InstrumentationName)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		router:     router,
		dispatcher: dispatcher,
		opts:       opts,
		logger:     logger.With("component", "gateway"),
	}
}

// ServeHTTP implements http.Handler.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	done := g.opts.Metrics.RequestStarted()
	defer done()

	path := r.URL.EscapedPath()
	ctx, span := g.opts.Tracer.Start(r.Context(), "gateway.request",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(tracing.RequestAttributes(r.Method, path, logging.GetRequestID(r.Context()))...),
	)
	defer span.End()
	r = r.WithContext(ctx)

	def, err := g.router.Match(path)
	if err != nil {
		g.opts.Metrics.RecordRouteMiss()
		g.logger.DebugContext(ctx, "no route", "method", r.Method, "path", path)
		g.finish(ctx, w, span, unrouted, unrouted, HandleError(err), start)
		return
	}

	service, backend := def.Name, def.Backend.String()
	ctx = logging.WithService(ctx, service)
	r = r.WithContext(ctx)
	tracing.SetRouteAttributes(span, service, backend)

	resp, err := g.dispatch(r, path, def)
	if err != nil {
		g.fail(ctx, span, def, err)
		resp = HandleError(err)
	}

	g.finish(ctx, w, span, service, backend, resp, start)
}

func (g *Gateway) dispatch(r *http.Request, path string, def registry.ServiceDefinition) (*types.GatewayResponse, error) {
	body, err := ReadBody(r, g.opts.MaxBodyBytes)
	if err != nil {
		return nil, err
	}
	g.opts.Metrics.RecordSize(def.Name, metrics.DirectionRequest, int64(len(body)))

	dispatchStart := time.Now()
	resp, err := g.dispatcher.Dispatch(NewInboundRequest(r, path, body), def)
	g.opts.Metrics.RecordBackendLatency(def.Name, def.Backend.String(), time.Since(dispatchStart))
	return resp, err
}

// fail logs and counts a dispatch error. Configuration faults are operator
// problems and are logged at error level; unreachable backends at warn.
func (g *Gateway) fail(ctx context.Context, span trace.Span, def registry.ServiceDefinition, err error) {
	kind := ErrorKind(err)
	g.opts.Metrics.RecordError(def.Name, kind)
	tracing.SetError(span, err)

	level := slog.LevelInfo
	var configErr *types.ConfigurationError
	switch {
	case errors.As(err, &configErr), kind == KindInternal:
		level = slog.LevelError
	case kind == KindDownstreamUnavailable:
		level = slog.LevelWarn
	}
	g.logger.Log(ctx, level, "dispatch failed",
		"backend", def.Backend.String(),
		"kind", kind,
		"error", err,
	)
}

func (g *Gateway) finish(ctx context.Context, w http.ResponseWriter, span trace.Span, service, backend string, resp *types.GatewayResponse, start time.Time) {
	defer resp.Close()

	n, err := WriteResponse(w, resp)
	if err != nil {
		// Headers are already sent.
		g.logger.DebugContext(ctx, "response write aborted", "error", err, "bytes", n)
	}

	tracing.SetStatusCode(span, resp.StatusCode)
	g.opts.Metrics.RecordSize(service, metrics.DirectionResponse, n)
	g.opts.Metrics.RecordRequest(service, backend, resp.StatusCode, time.Since(start))
}
