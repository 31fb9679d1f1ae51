package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"mercator-hq/switchyard/pkg/config"
	"mercator-hq/switchyard/pkg/dispatch"
	"mercator-hq/switchyard/pkg/forwarder"
	"mercator-hq/switchyard/pkg/inference"
	"mercator-hq/switchyard/pkg/proxy/types"
	"mercator-hq/switchyard/pkg/registry"
	"mercator-hq/switchyard/pkg/routing"
	"mercator-hq/switchyard/pkg/security/secrets"
	"mercator-hq/switchyard/pkg/telemetry/metrics"
)

const testToken = "sk-test-token"

// upstream records what a backend received.
type upstream struct {
	server *httptest.Server
	hits   atomic.Int32

	gotPath string
	gotAuth string
	gotBody string
}

func newUpstream(t *testing.T, handler http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		b, _ := io.ReadAll(r.Body)
		u.gotPath = r.URL.Path
		u.gotAuth = r.Header.Get("Authorization")
		u.gotBody = string(b)
		handler(w, r)
	}))
	t.Cleanup(u.server.Close)
	return u
}

type testGateway struct {
	gateway   *Gateway
	provider  *upstream
	runtime   *upstream
	collector *metrics.Collector
}

// newTestGateway wires a gateway with a passthrough service at /v1, a local
// inference service at /llama/v1 and an echo service at /echo.
func newTestGateway(t *testing.T, providerTarget string, opts Options) *testGateway {
	t.Helper()

	tg := &testGateway{}
	tg.provider = newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Provider", "yes")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"chatcmpl-42"}`)
	})
	tg.runtime = newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
			w.Header().Set("Content-Type", "text/event-stream")
			io.WriteString(w, "data: {\"choices\":[]}\n\n")
			w.(http.Flusher).Flush()
			io.WriteString(w, "data: [DONE]\n\n")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"op":"`+r.URL.Path+`"}`)
	})

	if providerTarget == "" {
		providerTarget = tg.provider.server.URL + "/v1/chat/completions"
	}

	reg := registry.New([]registry.ServiceDefinition{
		{Name: "openai", PathPrefix: "/v1", Backend: registry.Passthrough, TargetAddress: providerTarget, Credential: "openai-api-key"},
		{Name: "llama", PathPrefix: "/llama/v1", Backend: registry.LocalInference, Model: "llama-3-8b"},
		{Name: "echo", PathPrefix: "/echo", Backend: registry.Echo},
		{Name: "keyless", PathPrefix: "/keyless", Backend: registry.Passthrough, TargetAddress: tg.provider.server.URL, Credential: "missing-key"},
	})

	fwdCfg := config.Config{}
	config.ApplyDefaults(&fwdCfg)
	fwd := forwarder.New(fwdCfg.Forwarder)
	t.Cleanup(func() { fwd.Close() })

	rt := inference.NewHTTPRuntime(tg.runtime.server.URL, 5*time.Second)
	creds := secrets.NewStaticProvider(map[string]string{"openai-api-key": testToken})

	if opts.Metrics == nil {
		enabled := true
		tg.collector = metrics.NewCollector(&config.MetricsConfig{Enabled: &enabled, Namespace: "test"}, nil)
		opts.Metrics = tg.collector
	}

	tg.gateway = NewGateway(routing.New(reg), dispatch.NewSet(fwd, creds, rt), opts)
	return tg
}

func (tg *testGateway) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	tg.gateway.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.ErrorResponse {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != types.ContentTypeJSON {
		t.Fatalf("expected JSON error, got content type %q (body %q)", ct, rec.Body.String())
	}
	var errResp types.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return errResp
}

func TestGateway_NoRoute(t *testing.T) {
	tg := newTestGateway(t, "", Options{})

	rec := tg.do(http.MethodPost, "/unknown/path", `{"model":"x"}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec.Body.String() != NotFoundBody {
		t.Errorf("expected body %q, got %q", NotFoundBody, rec.Body.String())
	}
	if tg.provider.hits.Load() != 0 || tg.runtime.hits.Load() != 0 {
		t.Error("a backend was called for an unmatched path")
	}
	if got, err := testutil.GatherAndCount(tg.collector.Registry(), "test_route_misses_total"); err != nil || got != 1 {
		t.Errorf("expected route miss series, got %d (%v)", got, err)
	}
}

func TestGateway_Passthrough(t *testing.T) {
	tg := newTestGateway(t, "", Options{})

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions?stream=false", strings.NewReader(`{"model":"gpt-4"}`))
	req.Header.Set("Authorization", "Bearer client-supplied")
	req.Header.Set("Connection", "keep-alive")
	rec := httptest.NewRecorder()
	tg.gateway.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected relayed status 201, got %d", rec.Code)
	}
	if rec.Body.String() != `{"id":"chatcmpl-42"}` {
		t.Errorf("body not relayed unchanged: %q", rec.Body.String())
	}
	if rec.Header().Get("X-Provider") != "yes" {
		t.Error("backend header not relayed")
	}
	if tg.provider.gotPath != "/v1/chat/completions" {
		t.Errorf("downstream path = %q, want the target address path", tg.provider.gotPath)
	}
	if tg.provider.gotAuth != "Bearer "+testToken {
		t.Errorf("downstream Authorization = %q", tg.provider.gotAuth)
	}
	if tg.provider.gotBody != `{"model":"gpt-4"}` {
		t.Errorf("downstream body = %q", tg.provider.gotBody)
	}
}

func TestGateway_DownstreamRefused(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	target := closed.URL
	closed.Close()

	tg := newTestGateway(t, target, Options{})

	rec := tg.do(http.MethodPost, "/v1/chat/completions", `{}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), DownstreamFailurePrefix) {
		t.Errorf("unexpected 503 body: %q", rec.Body.String())
	}
	expected := `
# HELP test_errors_total Total number of gateway errors by kind
# TYPE test_errors_total counter
test_errors_total{kind="downstream_unavailable",service="openai"} 1
`
	if err := testutil.GatherAndCompare(tg.collector.Registry(), strings.NewReader(expected), "test_errors_total"); err != nil {
		t.Error(err)
	}

	// The gateway keeps serving after a downstream failure.
	next := tg.do(http.MethodGet, "/echo", "")
	if next.Code != http.StatusOK || next.Body.String() != dispatch.EchoReply {
		t.Errorf("follow-up request failed: %d %q", next.Code, next.Body.String())
	}
}

func TestGateway_Echo(t *testing.T) {
	tg := newTestGateway(t, "", Options{})

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		wantBody string
	}{
		{name: "empty body", method: http.MethodGet, target: "/echo", wantBody: dispatch.EchoReply},
		{name: "with body", method: http.MethodPost, target: "/echo/anything", body: "ping", wantBody: "ping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tg.do(tt.method, tt.target, tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			if rec.Header().Get("X-Echo-Method") != tt.method {
				t.Errorf("X-Echo-Method = %q", rec.Header().Get("X-Echo-Method"))
			}
			if rec.Header().Get("X-Echo-Path") != tt.target {
				t.Errorf("X-Echo-Path = %q", rec.Header().Get("X-Echo-Path"))
			}
		})
	}
}

func TestGateway_LocalOperations(t *testing.T) {
	tg := newTestGateway(t, "", Options{})

	tests := []struct {
		method string
		path   string
		wantOp string
	}{
		{http.MethodPost, "/llama/v1/chat/completions", "/chat/completions"},
		{http.MethodPost, "/llama/v1/completions", "/completions"},
		{http.MethodPost, "/llama/v1/embeddings", "/embeddings"},
		{http.MethodGet, "/llama/v1/models", "/models"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := tg.do(tt.method, tt.path, `{"prompt":"hi"}`)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
			}
			if tg.runtime.gotPath != tt.wantOp {
				t.Errorf("runtime called at %q, want %q", tg.runtime.gotPath, tt.wantOp)
			}
			if tt.method == http.MethodPost && !strings.Contains(tg.runtime.gotBody, `"model":"llama-3-8b"`) {
				t.Errorf("default model not injected: %s", tg.runtime.gotBody)
			}
		})
	}
}

func TestGateway_UnsupportedOperation(t *testing.T) {
	tg := newTestGateway(t, "", Options{})

	rec := tg.do(http.MethodPost, "/llama/v1/images/generations", `{}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	errResp := decodeError(t, rec)
	if errResp.Error.Code != types.CodeUnsupportedOperation {
		t.Errorf("error code = %q", errResp.Error.Code)
	}
	if tg.runtime.hits.Load() != 0 {
		t.Error("runtime called for unsupported operation")
	}
}

func TestGateway_MethodNotAllowed(t *testing.T) {
	tg := newTestGateway(t, "", Options{})

	rec := tg.do(http.MethodGet, "/llama/v1/chat/completions", "")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("Allow = %q, want POST", allow)
	}
	if decodeError(t, rec).Error.Type != types.ErrorTypeMethodNotAllowed {
		t.Error("wrong error type")
	}
}

func TestGateway_RequestTooLarge(t *testing.T) {
	tg := newTestGateway(t, "", Options{MaxBodyBytes: 8})

	rec := tg.do(http.MethodPost, "/v1/chat/completions", `{"model":"gpt-4"}`)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
	if decodeError(t, rec).Error.Code != types.CodeRequestTooLarge {
		t.Error("wrong error code")
	}
	if tg.provider.hits.Load() != 0 {
		t.Error("oversized request was forwarded")
	}
}

func TestGateway_MissingCredential(t *testing.T) {
	tg := newTestGateway(t, "", Options{})

	rec := tg.do(http.MethodPost, "/keyless/chat", `{}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if decodeError(t, rec).Error.Code != types.CodeMisconfigured {
		t.Error("wrong error code")
	}
	if tg.provider.hits.Load() != 0 {
		t.Error("request forwarded without a credential")
	}
}

func TestGateway_StreamsServerSentEvents(t *testing.T) {
	tg := newTestGateway(t, "", Options{})

	rec := tg.do(http.MethodPost, "/llama/v1/chat/completions", `{"stream":true}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
	if !rec.Flushed {
		t.Error("stream was not flushed")
	}
	if !strings.HasSuffix(rec.Body.String(), "data: [DONE]\n\n") {
		t.Errorf("stream truncated: %q", rec.Body.String())
	}
}

func TestGateway_RecordsRequestMetrics(t *testing.T) {
	tg := newTestGateway(t, "", Options{})

	tg.do(http.MethodGet, "/echo", "")
	tg.do(http.MethodGet, "/echo", "")
	tg.do(http.MethodGet, "/nowhere", "")

	expected := `
# HELP test_requests_total Total number of requests served, by service, backend and status code
# TYPE test_requests_total counter
test_requests_total{backend="echo",code="200",service="echo"} 2
test_requests_total{backend="unrouted",code="404",service="unrouted"} 1
`
	if err := testutil.GatherAndCompare(tg.collector.Registry(), strings.NewReader(expected), "test_requests_total"); err != nil {
		t.Error(err)
	}
}
