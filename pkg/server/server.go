package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"mercator-hq/switchyard/pkg/config"
	"mercator-hq/switchyard/pkg/proxy/middleware"
	tlscerts "mercator-hq/switchyard/pkg/security/tls"
	"mercator-hq/switchyard/pkg/telemetry/health"
	"mercator-hq/switchyard/pkg/telemetry/tracing"
)

// Server is the HTTP front end of the gateway. It serves the health and
// metrics endpoints itself and hands every other request to the gateway.
type Server struct {
	config         *config.ProxyConfig
	securityConfig *config.SecurityConfig
	healthConfig   config.HealthConfig
	metricsPath    string

	gateway        http.Handler
	metricsHandler http.Handler
	checker        *health.Checker

	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
	addr         net.Addr
}

// Options carries the handlers a Server mounts.
type Options struct {
	// Gateway handles all proxied traffic.
	Gateway http.Handler

	// Checker serves liveness and readiness. Nil disables both endpoints.
	Checker *health.Checker

	// Metrics serves the Prometheus endpoint. Nil disables it.
	Metrics http.Handler
}

// NewServer creates a new server from the loaded configuration.
func NewServer(cfg *config.Config, opts Options) *Server {
	metricsPath := ""
	if opts.Metrics != nil && cfg.Telemetry.Metrics.IsEnabled() {
		metricsPath = cfg.Telemetry.Metrics.Path
		if metricsPath == "" {
			metricsPath = config.DefaultMetricsPath
		}
	}

	return &Server{
		config:         &cfg.Proxy,
		securityConfig: &cfg.Security,
		healthConfig:   cfg.Telemetry.Health,
		metricsPath:    metricsPath,
		gateway:        opts.Gateway,
		metricsHandler: opts.Metrics,
		checker:        opts.Checker,
	}
}

// Start listens on the configured address and serves until ctx is canceled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled or the server fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		_ = ln.Close()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.addr = ln.Addr()

	s.httpServer = &http.Server{
		Handler:        s.Handler(),
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: s.config.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
	}
	s.mu.Unlock()

	tlsEnabled := s.securityConfig.TLS.Enabled
	if tlsEnabled {
		tlsConfig, err := s.configureTLS(ctx)
		if err != nil {
			_ = ln.Close()
			s.setStopped()
			return fmt.Errorf("failed to configure TLS: %w", err)
		}
		s.httpServer.TLSConfig = tlsConfig
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting gateway server",
			"address", ln.Addr().String(),
			"tls_enabled", tlsEnabled,
		)

		var err error
		if tlsEnabled {
			err = s.httpServer.ServeTLS(ln, "", "")
		} else {
			err = s.httpServer.Serve(ln)
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		slog.Info("context canceled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		s.setStopped()
		if ok {
			return err
		}
		return nil
	}
}

// Shutdown gracefully shuts down the server. Readiness reports draining
// first so load balancers stop sending traffic, then in-flight requests are
// given up to the shutdown timeout to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if !s.IsRunning() {
			return
		}

		slog.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		if s.checker != nil {
			s.checker.SetDraining(true)
		}

		shutdownCtx := ctx
		if s.config.ShutdownTimeout > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
			defer cancel()
		}

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			_ = s.httpServer.Close()
		}

		s.setStopped()
		slog.Info("gateway server stopped")
	})

	return shutdownErr
}

// Handler returns the full handler: the admin endpoints and the gateway
// wrapped in the middleware chain.
//
// Admin endpoints match by exact path before the gateway sees the request,
// so they are never forwarded. Every other path, including ones ServeMux
// would consider unclean, reaches the gateway untouched.
func (s *Server) Handler() http.Handler {
	admin := http.NewServeMux()
	adminPaths := make(map[string]bool)

	if s.checker != nil {
		s.checker.Register(admin, s.healthConfig)
		adminPaths[orDefault(s.healthConfig.LivenessPath, config.DefaultLivenessPath)] = true
		adminPaths[orDefault(s.healthConfig.ReadinessPath, config.DefaultReadinessPath)] = true
	}
	if s.metricsPath != "" {
		admin.Handle(s.metricsPath, s.metricsHandler)
		adminPaths[s.metricsPath] = true
	}

	gateway := s.gateway
	if gateway == nil {
		gateway = http.NotFoundHandler()
	}

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if adminPaths[r.URL.Path] {
			admin.ServeHTTP(w, r)
			return
		}
		gateway.ServeHTTP(w, r)
	})

	handler = tracing.HTTPMiddleware(handler)
	handler = middleware.CORSMiddleware(s.config.CORS)(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// configureTLS loads the serving certificate and keeps it current until
// ctx is canceled.
func (s *Server) configureTLS(ctx context.Context) (*tls.Config, error) {
	tlsCfg := s.securityConfig.TLS
	if tlsCfg.CertFile == "" {
		return nil, fmt.Errorf("TLS cert file not specified")
	}
	if tlsCfg.KeyFile == "" {
		return nil, fmt.Errorf("TLS key file not specified")
	}

	reloader := tlscerts.NewCertificateReloader(tlsCfg)
	if err := reloader.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	return &tls.Config{
		MinVersion:     tls.VersionTLS13,
		NextProtos:     []string{"h2", "http/1.1"},
		GetCertificate: reloader.GetCertificateFunc(),
	}, nil
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the address the server is listening on, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

func (s *Server) setStopped() {
	s.mu.Lock()
	s.isRunning = false
	s.mu.Unlock()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
