package config

import "time"

// Default values for configuration fields.
const (
	// Proxy defaults
	DefaultListenAddress   = "0.0.0.0:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576  // 1MB
	DefaultMaxBodyBytes    = 10485760 // 10MB
	DefaultCORSMaxAge      = 3600

	// Security defaults
	DefaultCertReloadInterval = 5 * time.Minute

	// Service defaults
	DefaultCredential = "openai-api-key"

	// Forwarder defaults
	DefaultDialTimeout         = 30 * time.Second
	DefaultTLSHandshakeTimeout = 10 * time.Second
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 10
	DefaultIdleConnTimeout     = 90 * time.Second

	// Inference defaults
	DefaultInferenceBaseURL = "http://127.0.0.1:8081/v1"
	DefaultInferenceTimeout = 5 * time.Minute

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "switchyard"
	DefaultTracingSampler   = "ratio"
	DefaultTracingRatio     = 0.1
	DefaultTracingEndpoint  = "localhost:4317"
	DefaultTracingService   = "switchyard"
	DefaultTracingTimeout   = 10 * time.Second
	DefaultLivenessPath     = "/health"
	DefaultReadinessPath    = "/ready"
)

// DefaultRequestDurationBuckets covers quick echo replies through long
// streamed completions.
var DefaultRequestDurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

// ApplyDefaults fills zero-valued fields with their defaults. Service names
// default to their path prefix and passthrough services get the default
// credential name.
func ApplyDefaults(cfg *Config) {
	// Proxy
	if cfg.Proxy.ListenAddress == "" {
		cfg.Proxy.ListenAddress = DefaultListenAddress
	}
	if cfg.Proxy.ReadTimeout == 0 {
		cfg.Proxy.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Proxy.IdleTimeout == 0 {
		cfg.Proxy.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Proxy.ShutdownTimeout == 0 {
		cfg.Proxy.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Proxy.MaxHeaderBytes == 0 {
		cfg.Proxy.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Proxy.MaxBodyBytes == 0 {
		cfg.Proxy.MaxBodyBytes = DefaultMaxBodyBytes
	}

	if cfg.Proxy.CORS.Enabled {
		applyCORSDefaults(&cfg.Proxy.CORS)
	}

	// Services
	for i := range cfg.Services {
		svc := &cfg.Services[i]
		if svc.Name == "" {
			svc.Name = svc.Path
		}
		if svc.Credential == "" && IsPassthroughType(svc.Type) {
			svc.Credential = DefaultCredential
		}
	}

	// Forwarder
	if cfg.Forwarder.DialTimeout == 0 {
		cfg.Forwarder.DialTimeout = DefaultDialTimeout
	}
	if cfg.Forwarder.TLSHandshakeTimeout == 0 {
		cfg.Forwarder.TLSHandshakeTimeout = DefaultTLSHandshakeTimeout
	}
	if cfg.Forwarder.MaxIdleConns == 0 {
		cfg.Forwarder.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.Forwarder.MaxIdleConnsPerHost == 0 {
		cfg.Forwarder.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	if cfg.Forwarder.IdleConnTimeout == 0 {
		cfg.Forwarder.IdleConnTimeout = DefaultIdleConnTimeout
	}

	// Inference
	if cfg.Inference.BaseURL == "" {
		cfg.Inference.BaseURL = DefaultInferenceBaseURL
	}
	if cfg.Inference.Timeout == 0 {
		cfg.Inference.Timeout = DefaultInferenceTimeout
	}

	// Security
	if cfg.Security.TLS.ReloadInterval == 0 {
		cfg.Security.TLS.ReloadInterval = DefaultCertReloadInterval
	}

	applyTelemetryDefaults(cfg)
}

func applyCORSDefaults(c *CORSConfig) {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Authorization", "Content-Type", "X-Request-ID"}
	}
	if len(c.ExposedHeaders) == 0 {
		c.ExposedHeaders = []string{"X-Request-ID"}
	}
	if c.MaxAge == 0 {
		c.MaxAge = DefaultCORSMaxAge
	}
}

func applyTelemetryDefaults(cfg *Config) {
	t := &cfg.Telemetry

	if t.Logging.Level == "" {
		t.Logging.Level = DefaultLoggingLevel
	}
	if t.Logging.Format == "" {
		t.Logging.Format = DefaultLoggingFormat
	}
	if t.Logging.RedactSecrets == nil {
		enabled := true
		t.Logging.RedactSecrets = &enabled
	}

	if t.Metrics.Enabled == nil {
		enabled := true
		t.Metrics.Enabled = &enabled
	}
	if t.Metrics.Path == "" {
		t.Metrics.Path = DefaultMetricsPath
	}
	if t.Metrics.Namespace == "" {
		t.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(t.Metrics.RequestDurationBuckets) == 0 {
		t.Metrics.RequestDurationBuckets = append([]float64(nil), DefaultRequestDurationBuckets...)
	}

	if t.Tracing.Sampler == "" {
		t.Tracing.Sampler = DefaultTracingSampler
	}
	if t.Tracing.SampleRatio == 0 {
		t.Tracing.SampleRatio = DefaultTracingRatio
	}
	if t.Tracing.Endpoint == "" {
		t.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if t.Tracing.ServiceName == "" {
		t.Tracing.ServiceName = DefaultTracingService
	}
	if t.Tracing.Timeout == 0 {
		t.Tracing.Timeout = DefaultTracingTimeout
	}

	if t.Health.LivenessPath == "" {
		t.Health.LivenessPath = DefaultLivenessPath
	}
	if t.Health.ReadinessPath == "" {
		t.Health.ReadinessPath = DefaultReadinessPath
	}
}
