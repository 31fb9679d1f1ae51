// Switchyard is an API gateway for LLM traffic.
//
// It routes each request by path prefix to one of three backends:
//   - passthrough: relay to an external API with a bearer credential
//   - local inference: serve from a co-located OpenAI-compatible runtime
//   - echo: reflect the request for diagnostics
//
// Usage:
//
//	# Start the gateway
//	switchyard run --config config.yaml
//
//	# Check a configuration and its credentials
//	switchyard validate --check-credentials
//
//	# Show which service a path resolves to
//	switchyard routes --match /v1/chat/completions
package main

func main() {
	Execute()
}
