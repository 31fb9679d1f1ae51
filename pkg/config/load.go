package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration without applying defaults or validating.
// Unknown keys are rejected so typos in the service table surface at startup.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty document.
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention SWITCHYARD_SECTION_FIELD (e.g., SWITCHYARD_PROXY_LISTEN_ADDRESS).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// The service table is not overridable from the environment; it is positional
// and belongs in the file.
func applyEnvOverrides(cfg *Config) {
	// Proxy overrides
	if val := os.Getenv("SWITCHYARD_PROXY_LISTEN_ADDRESS"); val != "" {
		cfg.Proxy.ListenAddress = val
	}
	overrideDuration("SWITCHYARD_PROXY_READ_TIMEOUT", &cfg.Proxy.ReadTimeout)
	overrideDuration("SWITCHYARD_PROXY_WRITE_TIMEOUT", &cfg.Proxy.WriteTimeout)
	overrideDuration("SWITCHYARD_PROXY_IDLE_TIMEOUT", &cfg.Proxy.IdleTimeout)
	overrideDuration("SWITCHYARD_PROXY_SHUTDOWN_TIMEOUT", &cfg.Proxy.ShutdownTimeout)
	if val := os.Getenv("SWITCHYARD_PROXY_MAX_BODY_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Proxy.MaxBodyBytes = i
		}
	}

	// Forwarder overrides
	overrideDuration("SWITCHYARD_FORWARDER_TIMEOUT", &cfg.Forwarder.Timeout)

	// Inference overrides
	if val := os.Getenv("SWITCHYARD_INFERENCE_BASE_URL"); val != "" {
		cfg.Inference.BaseURL = val
	}
	overrideDuration("SWITCHYARD_INFERENCE_TIMEOUT", &cfg.Inference.Timeout)

	// Telemetry overrides
	if val := os.Getenv("SWITCHYARD_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("SWITCHYARD_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("SWITCHYARD_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = &b
		}
	}
	if val := os.Getenv("SWITCHYARD_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("SWITCHYARD_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("SWITCHYARD_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}

	// Security overrides
	if val := os.Getenv("SWITCHYARD_SECURITY_TLS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Security.TLS.Enabled = b
		}
	}
	if val := os.Getenv("SWITCHYARD_SECURITY_TLS_CERT_FILE"); val != "" {
		cfg.Security.TLS.CertFile = val
	}
	if val := os.Getenv("SWITCHYARD_SECURITY_TLS_KEY_FILE"); val != "" {
		cfg.Security.TLS.KeyFile = val
	}
	if val := os.Getenv("SWITCHYARD_SECURITY_SECRETS_DIR"); val != "" {
		cfg.Security.Secrets.Dir = val
	}
}

func overrideDuration(key string, dst *time.Duration) {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
