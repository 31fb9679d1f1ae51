// Package server runs the gateway's HTTP listener.
//
// The server owns the listener lifecycle: optional TLS, timeouts from the
// proxy configuration, and graceful shutdown. It mounts the liveness,
// readiness and metrics endpoints on their exact configured paths and sends
// every other request to the gateway, unmodified, through the middleware
// chain
//
//	Recovery(Logging(RequestID(CORS(tracing(handler)))))
//
// # Graceful Shutdown
//
// When the context passed to Start or Serve is canceled:
//  1. Readiness switches to "draining" so load balancers stop routing here
//  2. The listener stops accepting connections
//  3. In-flight requests get up to proxy.shutdown_timeout to finish
//  4. Remaining connections are closed
//
// # TLS
//
//	security:
//	  tls:
//	    enabled: true
//	    cert_file: "/path/to/cert.pem"
//	    key_file: "/path/to/key.pem"
//
// TLS 1.3 is the minimum accepted version.
package server
