// Package routing resolves inbound request paths to services.
//
// Matching is first-match over the ordered service table: the router walks
// the registry from the top and returns the first definition whose path
// prefix is a prefix of the request path. When an earlier prefix is a prefix
// of a later one, the later entry is unreachable; config.ShadowWarnings
// reports those at load time.
//
// Basic usage:
//
//	router := routing.New(reg)
//	def, err := router.Match("/llama/v1/chat/completions")
//	if errors.Is(err, routing.ErrNoRoute) {
//	    // 404
//	}
//
// Router is safe for concurrent use. Match performs no I/O.
package routing
