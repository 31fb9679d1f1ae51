package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Service type names accepted in configuration. The aliases keep configs
// written for earlier releases ("openai", "llama2", "test") loading.
var (
	passthroughTypes = []string{"passthrough", "openai"}
	localTypes       = []string{"local_inference", "llama", "llama2", "ggml"}
	echoTypes        = []string{"echo", "test"}
)

// IsPassthroughType reports whether t names the passthrough backend.
func IsPassthroughType(t string) bool {
	return containsFold(passthroughTypes, t)
}

// IsLocalInferenceType reports whether t names the local inference backend.
func IsLocalInferenceType(t string) bool {
	return containsFold(localTypes, t)
}

// IsEchoType reports whether t names the echo backend.
func IsEchoType(t string) bool {
	return containsFold(echoTypes, t)
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "services[0].path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateProxy(&cfg.Proxy)...)
	errs = append(errs, validateServices(cfg.Services)...)
	errs = append(errs, validateForwarder(&cfg.Forwarder)...)
	errs = append(errs, validateInference(&cfg.Inference)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	errs = append(errs, validateSecurity(&cfg.Security)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateProxy(cfg *ProxyConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "proxy.listen_address",
			Message: "listen address is required",
		})
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "proxy.read_timeout", Message: "read timeout must not be negative"})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "proxy.write_timeout", Message: "write timeout must not be negative"})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{Field: "proxy.idle_timeout", Message: "idle timeout must not be negative"})
	}
	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{Field: "proxy.max_header_bytes", Message: "max header bytes must be non-negative"})
	}
	if cfg.MaxBodyBytes < 0 {
		errs = append(errs, FieldError{Field: "proxy.max_body_bytes", Message: "max body bytes must be non-negative"})
	}
	if cfg.CORS.Enabled && cfg.CORS.AllowCredentials && containsFold(cfg.CORS.AllowedOrigins, "*") {
		errs = append(errs, FieldError{Field: "proxy.cors.allow_credentials", Message: "credentials cannot be allowed for a wildcard origin"})
	}
	if cfg.CORS.MaxAge < 0 {
		errs = append(errs, FieldError{Field: "proxy.cors.max_age", Message: "max age must be non-negative"})
	}

	return errs
}

func validateServices(services []ServiceConfig) []FieldError {
	var errs []FieldError

	if len(services) == 0 {
		return []FieldError{{Field: "services", Message: "at least one service is required"}}
	}

	seen := make(map[string]int, len(services))
	for i, svc := range services {
		field := fmt.Sprintf("services[%d]", i)

		if svc.Path == "" {
			errs = append(errs, FieldError{Field: field + ".path", Message: "path prefix is required"})
		} else if !strings.HasPrefix(svc.Path, "/") {
			errs = append(errs, FieldError{Field: field + ".path", Message: "path prefix must start with /"})
		} else if prev, dup := seen[svc.Path]; dup {
			errs = append(errs, FieldError{
				Field:   field + ".path",
				Message: fmt.Sprintf("duplicate path prefix %q (already used by services[%d])", svc.Path, prev),
			})
		} else {
			seen[svc.Path] = i
		}

		switch {
		case IsPassthroughType(svc.Type):
			errs = append(errs, validateTargetService(field, svc.TargetService)...)
			if svc.Credential == "" {
				errs = append(errs, FieldError{Field: field + ".credential", Message: "credential name is required for passthrough services"})
			}
		case IsLocalInferenceType(svc.Type), IsEchoType(svc.Type):
		case svc.Type == "":
			errs = append(errs, FieldError{Field: field + ".type", Message: "service type is required"})
		default:
			errs = append(errs, FieldError{
				Field:   field + ".type",
				Message: fmt.Sprintf("unknown service type %q (expected passthrough, local_inference or echo)", svc.Type),
			})
		}
	}

	return errs
}

func validateTargetService(field, target string) []FieldError {
	if target == "" {
		return []FieldError{{Field: field + ".target_service", Message: "target service is required for passthrough services"}}
	}
	u, err := url.Parse(target)
	if err != nil {
		return []FieldError{{Field: field + ".target_service", Message: fmt.Sprintf("invalid URL: %v", err)}}
	}
	if !u.IsAbs() || u.Host == "" {
		return []FieldError{{Field: field + ".target_service", Message: "target service must be an absolute URL"}}
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return []FieldError{{Field: field + ".target_service", Message: fmt.Sprintf("unsupported scheme %q (expected https or http)", u.Scheme)}}
	}
	return nil
}

func validateForwarder(cfg *ForwarderConfig) []FieldError {
	var errs []FieldError
	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{Field: "forwarder.timeout", Message: "timeout must not be negative"})
	}
	if cfg.MaxIdleConns < 0 {
		errs = append(errs, FieldError{Field: "forwarder.max_idle_conns", Message: "must be non-negative"})
	}
	if cfg.MaxIdleConnsPerHost < 0 {
		errs = append(errs, FieldError{Field: "forwarder.max_idle_conns_per_host", Message: "must be non-negative"})
	}
	return errs
}

func validateInference(cfg *InferenceConfig) []FieldError {
	var errs []FieldError
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			errs = append(errs, FieldError{Field: "inference.base_url", Message: "base URL must be an absolute URL"})
		}
	}
	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{Field: "inference.timeout", Message: "timeout must not be negative"})
	}
	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid log level %q (expected debug, info, warn or error)", cfg.Logging.Level),
		})
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "", "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid log format %q (expected json or text)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Path != "" && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "metrics path must start with /"})
	}

	if cfg.Tracing.Enabled {
		switch cfg.Tracing.Sampler {
		case "always", "never", "ratio":
		default:
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.sampler",
				Message: fmt.Sprintf("invalid sampler %q (expected always, never or ratio)", cfg.Tracing.Sampler),
			})
		}
		if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
			errs = append(errs, FieldError{Field: "telemetry.tracing.sample_ratio", Message: "sample ratio must be between 0.0 and 1.0"})
		}
		if cfg.Tracing.Endpoint == "" {
			errs = append(errs, FieldError{Field: "telemetry.tracing.endpoint", Message: "endpoint is required when tracing is enabled"})
		}
	}

	return errs
}

func validateSecurity(cfg *SecurityConfig) []FieldError {
	var errs []FieldError
	if cfg.TLS.Enabled {
		if cfg.TLS.CertFile == "" {
			errs = append(errs, FieldError{Field: "security.tls.cert_file", Message: "cert file is required when TLS is enabled"})
		}
		if cfg.TLS.KeyFile == "" {
			errs = append(errs, FieldError{Field: "security.tls.key_file", Message: "key file is required when TLS is enabled"})
		}
		if cfg.TLS.ReloadInterval < 0 {
			errs = append(errs, FieldError{Field: "security.tls.cert_reload_interval", Message: "reload interval must not be negative"})
		}
	}
	if cfg.Secrets.Watch && cfg.Secrets.Dir == "" {
		errs = append(errs, FieldError{Field: "security.secrets.watch", Message: "watch requires security.secrets.dir"})
	}
	return errs
}

// ShadowWarnings lists services that can never match because an earlier
// service's prefix is a prefix of theirs. Routing is first match in table
// order, so these are almost always ordering mistakes; they are reported, not
// rejected.
func ShadowWarnings(services []ServiceConfig) []string {
	var warnings []string
	for i, later := range services {
		for j := 0; j < i; j++ {
			earlier := services[j]
			if earlier.Path != "" && strings.HasPrefix(later.Path, earlier.Path) {
				warnings = append(warnings, fmt.Sprintf(
					"services[%d] (%s) is shadowed by services[%d] (%s): requests to %q match the earlier entry first",
					i, later.Path, j, earlier.Path, later.Path))
				break
			}
		}
	}
	return warnings
}
