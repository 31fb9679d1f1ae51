package config

import "time"

// Config is the root configuration structure for Switchyard.
// It contains the proxy server settings, the ordered service table, the
// outbound forwarder and local inference settings, telemetry and security.
type Config struct {
	// Proxy contains HTTP server configuration including listen address,
	// timeouts, and request size limits.
	Proxy ProxyConfig `yaml:"proxy"`

	// Services is the ordered service table. Order is significant: the first
	// entry whose path prefix matches a request wins.
	Services []ServiceConfig `yaml:"services"`

	// Forwarder contains configuration for the shared outbound HTTP client
	// used by passthrough services.
	Forwarder ForwarderConfig `yaml:"forwarder"`

	// Inference contains configuration for the co-located model runtime
	// used by local inference services.
	Inference InferenceConfig `yaml:"inference"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Security contains TLS and secret source configuration.
	Security SecurityConfig `yaml:"security"`
}

// ProxyConfig contains configuration for the HTTP proxy server.
type ProxyConfig struct {
	// ListenAddress is the address and port for the proxy to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "0.0.0.0:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. Streaming completions can run long, so the default is zero
	// (no timeout).
	// Default: 0
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// MaxBodyBytes is the largest inbound request body accepted. Larger
	// bodies are rejected with 413.
	// Default: 10485760 (10MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// CORS configures cross-origin headers for browser clients.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains Cross-Origin Resource Sharing configuration. When
// enabled, preflight OPTIONS requests are answered by the gateway and never
// reach a backend.
type CORSConfig struct {
	// Enabled controls whether CORS headers are added.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins lists allowed origins. ["*"] allows any origin.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods lists methods announced in preflight responses.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders lists request headers announced in preflight responses.
	// Default: ["Authorization", "Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// ExposedHeaders lists response headers readable by the browser.
	// Default: ["X-Request-ID"]
	ExposedHeaders []string `yaml:"exposed_headers"`

	// MaxAge is how long, in seconds, browsers may cache a preflight.
	// Default: 3600
	MaxAge int `yaml:"max_age"`

	// AllowCredentials sets Access-Control-Allow-Credentials. It cannot be
	// combined with a wildcard origin.
	AllowCredentials bool `yaml:"allow_credentials"`
}

// ServiceConfig is one row of the service table.
type ServiceConfig struct {
	// Name labels the service in logs and metrics.
	// Default: the path prefix
	Name string `yaml:"name"`

	// Path is the URL path prefix this service matches. Must start with "/".
	Path string `yaml:"path"`

	// Type selects the backend.
	// Options: "passthrough" (alias "openai"), "local_inference" (aliases
	// "llama", "llama2", "ggml"), "echo" (alias "test").
	Type string `yaml:"type"`

	// TargetService is the absolute URI requests are forwarded to.
	// Required for passthrough services, ignored otherwise.
	TargetService string `yaml:"target_service"`

	// Credential is the secret name holding the bearer token for passthrough
	// services. With the default env source, "openai-api-key" is read from
	// OPENAI_API_KEY.
	// Default: "openai-api-key"
	Credential string `yaml:"credential"`

	// Model is the default model for local inference services. It is added
	// to request bodies that do not name a model.
	Model string `yaml:"model"`
}

// ForwarderConfig contains configuration for the outbound HTTP client.
type ForwarderConfig struct {
	// Timeout bounds a whole downstream exchange including reading the body.
	// Zero leaves only the transport defaults in place.
	// Default: 0
	Timeout time.Duration `yaml:"timeout"`

	// DialTimeout bounds establishing the TCP connection.
	// Default: 30s
	DialTimeout time.Duration `yaml:"dial_timeout"`

	// TLSHandshakeTimeout bounds the TLS handshake.
	// Default: 10s
	TLSHandshakeTimeout time.Duration `yaml:"tls_handshake_timeout"`

	// MaxIdleConns is the pool-wide idle connection limit.
	// Default: 100
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost is the per-host idle connection limit.
	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long idle connections are kept.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// InferenceConfig contains configuration for the co-located model runtime.
type InferenceConfig struct {
	// BaseURL is the OpenAI-compatible base URL of the runtime, including the
	// version segment (e.g., "http://127.0.0.1:8081/v1").
	// Default: "http://127.0.0.1:8081/v1"
	BaseURL string `yaml:"base_url"`

	// Timeout bounds the wait for the runtime's response headers. Once the
	// runtime answers, the body streams until the client goes away. Zero
	// means no timeout.
	// Default: 5m
	Timeout time.Duration `yaml:"timeout"`

	// Models, when set, is served for the model-listing operation instead of
	// asking the runtime.
	Models []string `yaml:"models"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactSecrets masks bearer tokens and API keys in log values.
	// Default: true
	RedactSecrets *bool `yaml:"redact_secrets"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "switchyard"
	Namespace string `yaml:"namespace"`

	// RequestDurationBuckets defines histogram buckets for request duration (seconds).
	// Default: [0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// IsEnabled reports whether metrics are enabled, treating unset as true.
func (c *MetricsConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Default: 0.1
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "switchyard"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS for the OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// LivenessPath is the path for the liveness probe endpoint.
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the path for the readiness probe endpoint.
	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`
}

// SecurityConfig contains security-related configuration.
type SecurityConfig struct {
	// TLS contains TLS configuration for the inbound listener.
	TLS TLSConfig `yaml:"tls"`

	// Secrets configures where credentials are read from.
	Secrets SecretsConfig `yaml:"secrets"`
}

// TLSConfig contains inbound TLS configuration.
type TLSConfig struct {
	// Enabled controls whether the listener serves TLS.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// CertFile is the path to the TLS certificate file.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the TLS private key file.
	KeyFile string `yaml:"key_file"`

	// ReloadInterval is how often the certificate files are checked for
	// changes. Renewed certificates are served without a restart.
	// Default: 5m
	ReloadInterval time.Duration `yaml:"cert_reload_interval"`
}

// SecretsConfig configures credential sources.
type SecretsConfig struct {
	// EnvPrefix is prepended to environment variable names derived from
	// secret names.
	// Default: ""
	EnvPrefix string `yaml:"env_prefix"`

	// Dir is an optional directory of secret files (one file per secret,
	// Kubernetes style). Files take precedence over the environment.
	Dir string `yaml:"dir"`

	// Watch reloads secret files when they change.
	// Default: false
	Watch bool `yaml:"watch"`
}
