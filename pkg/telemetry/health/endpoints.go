package health

import (
	"encoding/json"
	"net/http"

	"mercator-hq/switchyard/pkg/config"
)

// LivenessHandler returns an HTTP handler for the liveness probe endpoint.
//
// Example response:
//
//	{
//	    "status": "ok",
//	    "timestamp": "2026-10-19T10:30:00Z"
//	}
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		writeStatus(w, r, http.StatusOK, c.CheckLiveness(r.Context()))
	}
}

// ReadinessHandler returns an HTTP handler for the readiness probe endpoint.
// It runs all registered checks.
//
// Returns:
//   - 200 OK: every check passed
//   - 503 Service Unavailable: a check failed or the gateway is draining
//
// Example response (degraded):
//
//	{
//	    "status": "degraded",
//	    "checks": {
//	        "routes": {"status": "ok", "duration_ms": 0.002},
//	        "inference_runtime": {"status": "unhealthy", "message": "inference runtime unreachable: ...", "duration_ms": 1.4}
//	    },
//	    "timestamp": "2026-10-19T10:30:00Z"
//	}
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		status := c.CheckReadiness(r.Context())
		code := http.StatusOK
		if !status.Ready() {
			code = http.StatusServiceUnavailable
		}
		writeStatus(w, r, code, status)
	}
}

func writeStatus(w http.ResponseWriter, r *http.Request, code int, status HealthStatus) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)

	if r.Method != http.MethodHead {
		_ = json.NewEncoder(w).Encode(status)
	}
}

// Register mounts the liveness and readiness handlers on mux at the paths
// named in cfg.
func (c *Checker) Register(mux *http.ServeMux, cfg config.HealthConfig) {
	liveness := cfg.LivenessPath
	if liveness == "" {
		liveness = config.DefaultLivenessPath
	}
	readiness := cfg.ReadinessPath
	if readiness == "" {
		readiness = config.DefaultReadinessPath
	}

	mux.Handle(liveness, c.LivenessHandler())
	mux.Handle(readiness, c.ReadinessHandler())
}
