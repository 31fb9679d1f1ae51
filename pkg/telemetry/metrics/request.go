package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/switchyard/pkg/config"
)

// RequestMetrics tracks inbound request handling.
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sizeBytes       *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	routeMisses     prometheus.Counter
}

// NewRequestMetrics creates and registers request metrics with the provided registry.
func NewRequestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "requests_total",
				Help:      "Total number of requests served, by service, backend and status code",
			},
			[]string{"service", "backend", "code"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of requests in seconds, including the response body relay",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"service", "backend"},
		),

		sizeBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "request_size_bytes",
				Help:      "Size of request and response bodies in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 10), // 256B to 64MB
			},
			[]string{"service", "direction"},
		),

		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "in_flight_requests",
				Help:      "Number of requests currently being served",
			},
		),

		routeMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "route_misses_total",
				Help:      "Total number of requests that matched no service",
			},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.sizeBytes,
		rm.inFlight,
		rm.routeMisses,
	)

	return rm
}

// RecordRequest records a completed request.
func (rm *RequestMetrics) RecordRequest(service, backend, code string, duration time.Duration) {
	rm.requestsTotal.WithLabelValues(service, backend, code).Inc()
	rm.requestDuration.WithLabelValues(service, backend).Observe(duration.Seconds())
}

// RecordSize records the size of a request or response body.
func (rm *RequestMetrics) RecordSize(service, direction string, sizeBytes int64) {
	if sizeBytes > 0 {
		rm.sizeBytes.WithLabelValues(service, direction).Observe(float64(sizeBytes))
	}
}
