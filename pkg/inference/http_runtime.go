package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"mercator-hq/switchyard/pkg/proxy/types"
)

// HTTPRuntime talks to an OpenAI-compatible inference server over plain HTTP.
type HTTPRuntime struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRuntime creates a runtime client for baseURL, which includes the
// version segment (e.g. "http://127.0.0.1:8081/v1").
//
// timeout bounds the wait for response headers only. Once the runtime has
// answered, the body streams for as long as the request context allows, so
// long streamed completions are not cut off.
func NewHTTPRuntime(baseURL string, timeout time.Duration) *HTTPRuntime {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout

	return &HTTPRuntime{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Transport:     transport,
			CheckRedirect: noRedirect,
		},
	}
}

// noRedirect returns 3xx responses to the caller as they are.
func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// BaseURL returns the runtime base URL.
func (r *HTTPRuntime) BaseURL() string {
	return r.baseURL
}

// ChatCompletions implements Runtime.
func (r *HTTPRuntime) ChatCompletions(ctx context.Context, req *Request) (*types.GatewayResponse, error) {
	return r.post(ctx, ChatCompletions, req)
}

// Completions implements Runtime.
func (r *HTTPRuntime) Completions(ctx context.Context, req *Request) (*types.GatewayResponse, error) {
	return r.post(ctx, Completions, req)
}

// Embeddings implements Runtime.
func (r *HTTPRuntime) Embeddings(ctx context.Context, req *Request) (*types.GatewayResponse, error) {
	return r.post(ctx, Embeddings, req)
}

// Models implements Runtime.
func (r *HTTPRuntime) Models(ctx context.Context) (*types.GatewayResponse, error) {
	return r.do(ctx, http.MethodGet, Models.Path(), nil, nil)
}

func (r *HTTPRuntime) post(ctx context.Context, op Operation, req *Request) (*types.GatewayResponse, error) {
	header := make(http.Header)
	if req.Header != nil {
		if accept := req.Header.Get("Accept"); accept != "" {
			header.Set("Accept", accept)
		}
	}
	header.Set("Content-Type", types.ContentTypeJSON)
	if IsStreaming(req.Body) {
		header.Set("Accept", "text/event-stream")
	}
	return r.do(ctx, http.MethodPost, op.Path(), header, req.Body)
}

func (r *HTTPRuntime) do(ctx context.Context, method, path string, header http.Header, body []byte) (*types.GatewayResponse, error) {
	url := r.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create runtime request: %w", err)
	}
	for k, v := range header {
		httpReq.Header[k] = v
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	slog.Debug("inference runtime request", "method", method, "url", url)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, &types.DownstreamUnavailableError{Target: url, Cause: err}
	}

	out := resp.Header.Clone()
	out.Del("Content-Length")
	out.Del("Connection")
	out.Del("Transfer-Encoding")
	return &types.GatewayResponse{
		StatusCode: resp.StatusCode,
		Header:     out,
		Body:       resp.Body,
	}, nil
}

// Check asks the runtime for its model list and reports whether it answered.
func (r *HTTPRuntime) Check(ctx context.Context) error {
	resp, err := r.Models(ctx)
	if err != nil {
		return err
	}
	defer resp.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference runtime returned status %d", resp.StatusCode)
	}
	var list ModelList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return fmt.Errorf("failed to parse models response: %w", err)
	}
	return nil
}

// Close releases idle connections.
func (r *HTTPRuntime) Close() error {
	r.client.CloseIdleConnections()
	return nil
}
