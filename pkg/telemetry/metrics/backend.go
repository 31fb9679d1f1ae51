package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/switchyard/pkg/config"
)

// BackendMetrics tracks calls from the gateway to backends.
type BackendMetrics struct {
	latency *prometheus.HistogramVec
	errors  *prometheus.CounterVec
}

// NewBackendMetrics creates and registers backend metrics with the provided registry.
func NewBackendMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *BackendMetrics {
	bm := &BackendMetrics{
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "backend_latency_seconds",
				Help:      "Time until the backend returned response headers, in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"service", "backend"},
		),

		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "errors_total",
				Help:      "Total number of gateway errors by kind",
			},
			[]string{"service", "kind"},
		),
	}

	registry.MustRegister(bm.latency, bm.errors)

	return bm
}

// RecordLatency records the time a backend took to answer.
func (bm *BackendMetrics) RecordLatency(service, backend string, latency time.Duration) {
	bm.latency.WithLabelValues(service, backend).Observe(latency.Seconds())
}

// RecordError records a gateway error.
func (bm *BackendMetrics) RecordError(service, kind string) {
	bm.errors.WithLabelValues(service, kind).Inc()
}
