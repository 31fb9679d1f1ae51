// Package dispatch turns a routed request into a backend response.
//
// Every backend type has one Dispatcher implementation:
//
//   - Passthrough attaches the service credential as a bearer token and
//     relays the request to the service's target address through the
//     shared forwarder.
//   - LocalInference selects one of the four inference operations from the
//     request path and invokes the co-located runtime.
//   - Echo answers directly.
//
// A Set maps backend types to dispatchers; the gateway looks up the
// dispatcher for the matched service and calls it once. Dispatchers do not
// retry.
package dispatch
