package forwarder

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"mercator-hq/switchyard/pkg/config"
	"mercator-hq/switchyard/pkg/proxy/types"
)

// Forwarder sends downstream requests over a shared connection pool.
// It is safe for concurrent use.
type Forwarder struct {
	client *http.Client
}

// New creates a forwarder with a pooled transport configured from cfg.
func New(cfg config.ForwarderConfig) *Forwarder {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.IdleConnTimeout,
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		// Enable HTTP/2
		ForceAttemptHTTP2: true,
	}

	return NewWithClient(&http.Client{
		Transport:     transport,
		Timeout:       cfg.Timeout,
		CheckRedirect: relayRedirect,
	})
}

// relayRedirect hands 3xx responses back to the caller instead of following
// them, so redirects reach the client unchanged and the bearer token never
// travels to the redirect target.
func relayRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// NewWithClient creates a forwarder around an existing client.
func NewWithClient(client *http.Client) *Forwarder {
	return &Forwarder{client: client}
}

// Send performs the downstream exchange described by req. On success the
// caller owns the returned response body.
func (f *Forwarder) Send(req *types.DownstreamRequest) (*types.GatewayResponse, error) {
	ctx := req.Context()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create downstream request: %w", err)
	}

	if req.Header != nil {
		httpReq.Header = req.Header.Clone()
	}
	RemoveHopByHop(httpReq.Header)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	slog.Debug("sending downstream request",
		"method", req.Method,
		"url", req.URL,
		"body_bytes", len(req.Body),
	)

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, &types.DownstreamUnavailableError{
			Target: req.URL,
			Cause:  err,
		}
	}

	header := resp.Header.Clone()
	RemoveHopByHop(header)
	header.Del("Content-Length")

	return &types.GatewayResponse{
		StatusCode: resp.StatusCode,
		Header:     header,
		Body:       resp.Body,
	}, nil
}

// Close releases idle pooled connections.
func (f *Forwarder) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
