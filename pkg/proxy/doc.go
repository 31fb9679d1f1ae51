// Package proxy implements the gateway handler that sits in front of every
// configured service.
//
// A request is matched against the service table by path prefix, its body is
// read under the proxy.max_body_bytes limit, and it is handed to the backend
// registered for the matched service: passthrough forwarding, local
// inference, or echo. The backend's response is written back unchanged,
// streaming server-sent events as they arrive. Anything that goes wrong is
// turned into a JSON error body by HandleError:
//
//	{"error": {"message": "...", "type": "invalid_request_error", "code": "no_route"}}
//
// # Usage
//
//	router := routing.New(reg)
//	gw := proxy.NewGateway(router, dispatch.NewSet(fwd, credentials, runtime), proxy.Options{
//	    MaxBodyBytes: cfg.Proxy.MaxBodyBytes,
//	    Metrics:      collector,
//	    Tracer:       tracer,
//	})
//	http.Handle("/", gw)
//
// The gateway never retries. Each inbound request produces at most one
// downstream call.
//
// Cross-cutting concerns (request IDs, access logs, CORS, panic recovery)
// live in the middleware subpackage; wire types live in types.
package proxy
