package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mercator-hq/switchyard/pkg/proxy/types"
)

func TestRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "string panic", value: "test panic"},
		{name: "error panic", value: errors.New("boom")},
		{name: "value panic", value: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.value)
			})

			req := httptest.NewRequest(http.MethodPost, "/echo", nil)
			w := httptest.NewRecorder()
			RecoveryMiddleware(handler).ServeHTTP(w, req)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", w.Code)
			}
			var resp types.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("body is not an error response: %v", err)
			}
			if resp.Error.Type != types.ErrorTypeServerError {
				t.Errorf("error type = %q, want %q", resp.Error.Type, types.ErrorTypeServerError)
			}
		})
	}

	t.Run("passes through normal requests", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
		})

		req := httptest.NewRequest(http.MethodGet, "/echo", nil)
		w := httptest.NewRecorder()
		RecoveryMiddleware(handler).ServeHTTP(w, req)

		if w.Code != http.StatusOK || w.Body.String() != "OK" {
			t.Errorf("got %d %q, want 200 OK", w.Code, w.Body.String())
		}
	})

	t.Run("re-raises ErrAbortHandler", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		})

		defer func() {
			if rec := recover(); rec != http.ErrAbortHandler {
				t.Errorf("recovered %v, want http.ErrAbortHandler", rec)
			}
		}()

		req := httptest.NewRequest(http.MethodGet, "/echo", nil)
		RecoveryMiddleware(handler).ServeHTTP(httptest.NewRecorder(), req)
		t.Error("expected panic to propagate")
	})

	t.Run("aborts when the response has started", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("data: tok\n\n"))
			panic("stream broke")
		})

		w := httptest.NewRecorder()
		defer func() {
			if rec := recover(); rec != http.ErrAbortHandler {
				t.Errorf("recovered %v, want http.ErrAbortHandler", rec)
			}
			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want the original 200", w.Code)
			}
			if got := w.Body.String(); got != "data: tok\n\n" {
				t.Errorf("body = %q, want only the streamed bytes", got)
			}
		}()

		req := httptest.NewRequest(http.MethodPost, "/llama/v1/chat/completions", nil)
		RecoveryMiddleware(handler).ServeHTTP(w, req)
		t.Error("expected the connection to be aborted")
	})
}
