package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/switchyard/pkg/config"
)

// Size directions for RecordSize.
const (
	DirectionRequest  = "request"
	DirectionResponse = "response"
)

// Collector owns the gateway's Prometheus metrics and their registry.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics *RequestMetrics
	backendMetrics *BackendMetrics
}

// NewCollector creates a collector and registers its metrics. If registry is
// nil a fresh registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = config.DefaultRequestDurationBuckets
	}

	return &Collector{
		config:         cfg,
		registry:       registry,
		requestMetrics: NewRequestMetrics(cfg, registry),
		backendMetrics: NewBackendMetrics(cfg, registry),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.IsEnabled()
}

// RecordRequest records a completed request.
//
// Example:
//
//	collector.RecordRequest("openai", "passthrough", 200, 1200*time.Millisecond)
func (c *Collector) RecordRequest(service, backend string, code int, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.requestMetrics.RecordRequest(service, backend, strconv.Itoa(code), duration)
}

// RecordSize records a request or response body size. Direction is
// DirectionRequest or DirectionResponse.
func (c *Collector) RecordSize(service, direction string, sizeBytes int64) {
	if !c.enabled() {
		return
	}
	c.requestMetrics.RecordSize(service, direction, sizeBytes)
}

// RequestStarted increments the in-flight gauge. Call the returned function
// when the request completes.
func (c *Collector) RequestStarted() func() {
	if !c.enabled() {
		return func() {}
	}
	c.requestMetrics.inFlight.Inc()
	return c.requestMetrics.inFlight.Dec
}

// RecordRouteMiss records a request that matched no service.
func (c *Collector) RecordRouteMiss() {
	if !c.enabled() {
		return
	}
	c.requestMetrics.routeMisses.Inc()
}

// RecordBackendLatency records how long the backend took to answer.
func (c *Collector) RecordBackendLatency(service, backend string, latency time.Duration) {
	if !c.enabled() {
		return
	}
	c.backendMetrics.RecordLatency(service, backend, latency)
}

// RecordError records a gateway error of the given kind.
func (c *Collector) RecordError(service, kind string) {
	if !c.enabled() {
		return
	}
	c.backendMetrics.RecordError(service, kind)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
