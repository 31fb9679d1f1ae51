// Package inference defines the operations served by a co-located model
// runtime and a default HTTP implementation.
//
// Local inference services expose four OpenAI-compatible operations:
//
//	POST /chat/completions
//	POST /completions
//	POST /embeddings
//	GET  /models
//
// ResolveOperation maps a request path onto one of them. A Runtime performs
// the operation; HTTPRuntime forwards to an OpenAI-compatible server such as
// llama.cpp's server, LM Studio or Ollama, and StaticModels answers the model
// listing from configuration instead of asking the runtime.
//
// When a service has a default model, requests whose JSON body does not name
// one get it injected before the runtime is called.
package inference
