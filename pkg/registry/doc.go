// Package registry holds the gateway's service table.
//
// A Registry is an ordered, immutable list of ServiceDefinition values built
// once at startup from configuration. Order is significant: routing walks the
// list from the top and the first definition whose path prefix matches a
// request wins. Nothing mutates a Registry after construction, so it is safe
// to share across request goroutines without locking.
//
// # Backend types
//
// Each definition names one of three backends:
//
//   - Passthrough forwards the request to TargetAddress with a bearer token
//   - LocalInference serves the request from the co-located model runtime
//   - Echo answers directly, for connectivity checks
//
// Configuration type names are mapped with ParseBackendType, which also
// accepts the legacy names "openai", "llama2" and "test".
package registry
