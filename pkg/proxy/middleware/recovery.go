package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"mercator-hq/switchyard/pkg/proxy"
	"mercator-hq/switchyard/pkg/proxy/types"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and returns a 500
// response in the OpenAI error format. The panic and stack trace are logged;
// clients only see a generic message.
//
// http.ErrAbortHandler is re-raised so the server can abort the connection
// as it normally does. A panic after the response has started (for example
// mid-stream) also aborts the connection, since a status can no longer be
// sent and the client must not mistake a truncated body for a complete one.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newResponseWriter(w)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.ErrorContext(r.Context(), "panic in handler",
				"error", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
				"response_started", rw.written,
			)

			if rw.written {
				panic(http.ErrAbortHandler)
			}
			_ = proxy.WriteErrorResponse(w, types.NewServerError(
				"An internal error occurred. Please try again later.",
			))
		}()

		next.ServeHTTP(rw, r)
	})
}
