// Package middleware provides the HTTP middleware wrapped around the gateway.
//
// The server assembles the chain as
//
//	handler = Recovery(Logging(RequestID(CORS(tracing(mux)))))
//
// so panics are caught outermost, every request is logged with its request
// ID, and CORS preflights are answered before anything is routed.
//
// RequestIDMiddleware keeps a client-supplied X-Request-ID or generates a
// UUID v4, stores it with logging.WithRequestID and echoes it on the
// response. LoggingMiddleware writes one line per request; its response
// writer wrapper implements Flush and Unwrap so streamed completions still
// flush. CORSMiddleware is driven by config.CORSConfig and is a no-op when
// disabled. RecoveryMiddleware turns panics into an OpenAI-style 500 error.
package middleware
