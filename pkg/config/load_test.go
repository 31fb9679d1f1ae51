package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
proxy:
  listen_address: "0.0.0.0:9090"
  read_timeout: "60s"

services:
  - name: openai
    path: /openai/v1/chat/completions
    type: openai
    target_service: https://api.openai.com/v1/chat/completions
  - path: /llama/v1
    type: llama2
    model: llama-2-7b-chat
  - path: /echo
    type: test

forwarder:
  timeout: "45s"

telemetry:
  logging:
    level: "debug"
    format: "text"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Proxy.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("expected listen address %q, got %q", "0.0.0.0:9090", cfg.Proxy.ListenAddress)
	}
	if cfg.Proxy.ReadTimeout != 60*time.Second {
		t.Errorf("expected read timeout 60s, got %v", cfg.Proxy.ReadTimeout)
	}
	if len(cfg.Services) != 3 {
		t.Fatalf("expected 3 services, got %d", len(cfg.Services))
	}
	if cfg.Services[0].Credential != DefaultCredential {
		t.Errorf("expected default credential %q, got %q", DefaultCredential, cfg.Services[0].Credential)
	}
	if cfg.Services[1].Name != "/llama/v1" {
		t.Errorf("expected service name to default to path, got %q", cfg.Services[1].Name)
	}
	if cfg.Services[1].Model != "llama-2-7b-chat" {
		t.Errorf("expected model llama-2-7b-chat, got %q", cfg.Services[1].Model)
	}
	if cfg.Forwarder.Timeout != 45*time.Second {
		t.Errorf("expected forwarder timeout 45s, got %v", cfg.Forwarder.Timeout)
	}
	if cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("expected log format text, got %q", cfg.Telemetry.Logging.Format)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "services: [unterminated")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfig_UnknownField(t *testing.T) {
	path := writeConfig(t, `
services:
  - path: /echo
    type: echo
    target: https://example.com
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !strings.Contains(err.Error(), "target") {
		t.Errorf("expected error to name the unknown field, got %v", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
services:
  - path: /openai
    type: passthrough
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var valErr ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if valErr.Errors[0].Field != "services[0].target_service" {
		t.Errorf("expected services[0].target_service error, got %s", valErr.Errors[0].Field)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
services:
  - path: /echo
    type: echo
`)

	t.Setenv("SWITCHYARD_PROXY_LISTEN_ADDRESS", "127.0.0.1:7070")
	t.Setenv("SWITCHYARD_FORWARDER_TIMEOUT", "15s")
	t.Setenv("SWITCHYARD_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("SWITCHYARD_TELEMETRY_METRICS_ENABLED", "false")
	t.Setenv("SWITCHYARD_INFERENCE_BASE_URL", "http://10.0.0.5:8000/v1")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Proxy.ListenAddress != "127.0.0.1:7070" {
		t.Errorf("expected overridden listen address, got %q", cfg.Proxy.ListenAddress)
	}
	if cfg.Forwarder.Timeout != 15*time.Second {
		t.Errorf("expected forwarder timeout 15s, got %v", cfg.Forwarder.Timeout)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.IsEnabled() {
		t.Error("expected metrics to be disabled by override")
	}
	if cfg.Inference.BaseURL != "http://10.0.0.5:8000/v1" {
		t.Errorf("expected inference base URL override, got %q", cfg.Inference.BaseURL)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	path := writeConfig(t, `
services:
  - path: /echo
    type: echo
`)
	t.Setenv("SWITCHYARD_TELEMETRY_LOGGING_LEVEL", "chatty")

	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Fatal("expected validation error after override")
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Services) != 0 {
		t.Errorf("expected no services, got %d", len(cfg.Services))
	}
}

func TestLoadConfig_ExampleFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "examples", "config.yaml"))
	if err != nil {
		t.Fatalf("example config does not load: %v", err)
	}
	if len(cfg.Services) != 3 {
		t.Fatalf("services = %d, want 3", len(cfg.Services))
	}
	if warnings := ShadowWarnings(cfg.Services); len(warnings) != 0 {
		t.Errorf("example config has shadowed services: %v", warnings)
	}
}
