package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"mercator-hq/switchyard/pkg/config"
	"mercator-hq/switchyard/pkg/dispatch"
	"mercator-hq/switchyard/pkg/forwarder"
	"mercator-hq/switchyard/pkg/inference"
	"mercator-hq/switchyard/pkg/proxy"
	"mercator-hq/switchyard/pkg/registry"
	"mercator-hq/switchyard/pkg/routing"
	"mercator-hq/switchyard/pkg/security/secrets"
	"mercator-hq/switchyard/pkg/server"
	"mercator-hq/switchyard/pkg/telemetry/health"
	"mercator-hq/switchyard/pkg/telemetry/metrics"
	"mercator-hq/switchyard/pkg/telemetry/tracing"
)

// app holds the wired gateway components for one process.
type app struct {
	cfg         *config.Config
	registry    *registry.Registry
	router      *routing.Router
	credentials *secrets.Chain
	forwarder   *forwarder.Forwarder
	runtime     *inference.HTTPRuntime
	metrics     *metrics.Collector
	tracer      *tracing.Tracer
	checker     *health.Checker
	gateway     *proxy.Gateway
}

// newApp builds every component from a validated configuration. On error,
// anything already opened is closed.
func newApp(cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}
	ok := false
	defer func() {
		if !ok {
			_ = a.Close(context.Background())
		}
	}()

	var err error

	for _, w := range config.ShadowWarnings(cfg.Services) {
		slog.Warn("unreachable service", "warning", w)
	}

	a.registry, err = registry.FromConfig(cfg.Services)
	if err != nil {
		return nil, fmt.Errorf("failed to build service registry: %w", err)
	}

	a.credentials, err = secrets.FromConfig(cfg.Security.Secrets)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential source: %w", err)
	}
	slog.Info("credential sources configured", "providers", a.credentials.Providers())

	a.forwarder = forwarder.New(cfg.Forwarder)
	a.runtime = inference.NewHTTPRuntime(cfg.Inference.BaseURL, cfg.Inference.Timeout)

	var rt inference.Runtime = a.runtime
	if len(cfg.Inference.Models) > 0 {
		rt = inference.NewStaticModels(a.runtime, cfg.Inference.Models)
	}

	a.metrics = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	a.tracer, err = tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	a.router = routing.New(a.registry)
	a.gateway = proxy.NewGateway(
		a.router,
		dispatch.NewSet(a.forwarder, a.credentials, rt),
		proxy.Options{
			MaxBodyBytes: cfg.Proxy.MaxBodyBytes,
			Metrics:      a.metrics,
			Tracer:       a.tracer.Tracer(),
		},
	)

	a.checker = health.New(0)
	a.checker.RegisterCheck("routes", health.RoutesCheck(a.registry))
	if hasBackend(a.registry, registry.LocalInference) {
		a.checker.RegisterCheck("inference_runtime", health.RuntimeCheck(a.runtime))
	}
	if names := passthroughCredentials(a.registry); len(names) > 0 {
		a.checker.RegisterCheck("credentials", health.CredentialsCheck(a.credentials, names))
	}

	ok = true
	return a, nil
}

// server returns the HTTP server fronting the gateway.
func (a *app) server() *server.Server {
	return server.NewServer(a.cfg, server.Options{
		Gateway: a.gateway,
		Checker: a.checker,
		Metrics: a.metrics.Handler(),
	})
}

// reloadCredentials drops cached secret files so rotated credentials are
// read on the next request.
func (a *app) reloadCredentials(ctx context.Context) {
	if err := a.credentials.Refresh(ctx); err != nil {
		slog.Warn("credential refresh failed", "error", err)
		return
	}
	slog.Info("credentials refreshed")
}

// Close releases outbound connections, secret watchers and flushes traces.
func (a *app) Close(ctx context.Context) error {
	if a.router != nil {
		stats := a.router.GetStats()
		slog.Info("routing summary",
			"requests", stats.TotalRequests,
			"misses", stats.Misses,
			"per_service", stats.RequestsPerService,
		)
	}

	var errs []error
	if a.tracer != nil {
		errs = append(errs, a.tracer.Shutdown(ctx))
	}
	if a.forwarder != nil {
		errs = append(errs, a.forwarder.Close())
	}
	if a.runtime != nil {
		errs = append(errs, a.runtime.Close())
	}
	if a.credentials != nil {
		errs = append(errs, a.credentials.Close())
	}
	return errors.Join(errs...)
}

func hasBackend(reg *registry.Registry, backend registry.BackendType) bool {
	for _, def := range reg.Definitions() {
		if def.Backend == backend {
			return true
		}
	}
	return false
}

// passthroughCredentials returns the distinct credential names used by
// passthrough services, sorted.
func passthroughCredentials(reg *registry.Registry) []string {
	seen := make(map[string]bool)
	var names []string
	for _, def := range reg.Definitions() {
		if def.Backend != registry.Passthrough || def.Credential == "" || seen[def.Credential] {
			continue
		}
		seen[def.Credential] = true
		names = append(names, def.Credential)
	}
	sort.Strings(names)
	return names
}
