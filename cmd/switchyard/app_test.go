package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mercator-hq/switchyard/pkg/config"
)

func newTestApp(t *testing.T, services []config.ServiceConfig) *app {
	t.Helper()
	cfg := &config.Config{Services: services}
	config.ApplyDefaults(cfg)
	cfg.Telemetry.Logging.Level = "error"
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	a, err := newApp(cfg)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func TestApp_ServesConfiguredServices(t *testing.T) {
	var gotAuth, gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"chatcmpl-1"}`)
	}))
	defer upstream.Close()

	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	a := newTestApp(t, []config.ServiceConfig{
		{Path: "/v1/chat/completions", Type: "openai", TargetService: upstream.URL + "/v1/chat/completions"},
		{Path: "/echo", Type: "echo"},
	})
	handler := a.server().Handler()

	t.Run("passthrough", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(`{"model":"gpt-4o"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
		}
		if rec.Body.String() != `{"id":"chatcmpl-1"}` {
			t.Errorf("body = %q", rec.Body.String())
		}
		if gotAuth != "Bearer sk-from-env" {
			t.Errorf("upstream Authorization = %q", gotAuth)
		}
		if gotPath != "/v1/chat/completions" {
			t.Errorf("upstream path = %q", gotPath)
		}
	})

	t.Run("echo", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "echo test" {
			t.Errorf("got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("no route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))
		if rec.Code != http.StatusNotFound || rec.Body.String() != "404 Not Found" {
			t.Errorf("got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("readiness", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("readiness = %d, body %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if !strings.Contains(rec.Body.String(), "switchyard_requests_total") {
			t.Errorf("metrics output missing switchyard_requests_total:\n%s", rec.Body.String())
		}
	})
}

func TestApp_ReadinessFailsWithoutCredential(t *testing.T) {
	t.Setenv("MISSING_KEY", "")
	a := newTestApp(t, []config.ServiceConfig{
		{Path: "/v1", Type: "passthrough", TargetService: "https://api.example.com/v1", Credential: "missing-key"},
	})

	rec := httptest.NewRecorder()
	a.server().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "credentials") {
		t.Errorf("expected the credentials check in %q", rec.Body.String())
	}
}

func TestPassthroughCredentials(t *testing.T) {
	a := newTestApp(t, []config.ServiceConfig{
		{Path: "/b", Type: "passthrough", TargetService: "https://b.example.com", Credential: "b-key"},
		{Path: "/a", Type: "passthrough", TargetService: "https://a.example.com", Credential: "a-key"},
		{Path: "/a2", Type: "passthrough", TargetService: "https://a.example.com", Credential: "a-key"},
		{Path: "/echo", Type: "echo"},
	})

	got := passthroughCredentials(a.registry)
	if strings.Join(got, ",") != "a-key,b-key" {
		t.Errorf("passthroughCredentials = %v, want [a-key b-key]", got)
	}
}
