package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"mercator-hq/switchyard/pkg/telemetry/logging"
)

// RequestIDHeader is the HTTP header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-supplied IDs so they cannot bloat logs.
const maxRequestIDLength = 128

// RequestIDMiddleware assigns every request an ID. A client-supplied
// X-Request-ID is kept when it is short enough, otherwise a UUID v4 is
// generated. The ID is stored in the request context, where the logging
// handler picks it up, and echoed in the response header.
//
// The inbound header is rewritten to the chosen ID so passthrough services
// forward the same value downstream.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
			r.Header.Set(RequestIDHeader, requestID)
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
