package inference

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"mercator-hq/switchyard/pkg/proxy/types"
)

// Request is the input to a body-carrying runtime operation.
type Request struct {
	// Header holds end-to-end headers from the client.
	Header http.Header

	// Body is the client's JSON request body.
	Body []byte
}

// Runtime performs local inference operations. Implementations return the
// runtime's response unbuffered; the caller closes the body.
type Runtime interface {
	ChatCompletions(ctx context.Context, req *Request) (*types.GatewayResponse, error)
	Completions(ctx context.Context, req *Request) (*types.GatewayResponse, error)
	Embeddings(ctx context.Context, req *Request) (*types.GatewayResponse, error)
	Models(ctx context.Context) (*types.GatewayResponse, error)
}

// Invoke calls the runtime method for op.
func Invoke(ctx context.Context, rt Runtime, op Operation, req *Request) (*types.GatewayResponse, error) {
	switch op {
	case ChatCompletions:
		return rt.ChatCompletions(ctx, req)
	case Completions:
		return rt.Completions(ctx, req)
	case Embeddings:
		return rt.Embeddings(ctx, req)
	case Models:
		return rt.Models(ctx)
	default:
		return nil, fmt.Errorf("unknown inference operation %d", int(op))
	}
}

// WithDefaultModel sets "model" in a JSON body that does not name one.
// Bodies that are not JSON objects, and bodies that already carry a model,
// are returned unchanged.
func WithDefaultModel(body []byte, model string) []byte {
	if model == "" || len(body) == 0 || !gjson.ValidBytes(body) {
		return body
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return body
	}
	if m := parsed.Get("model"); m.Exists() && m.String() != "" {
		return body
	}
	out, err := sjson.SetBytes(body, "model", model)
	if err != nil {
		return body
	}
	return out
}

// ModelOf returns the model named in a JSON request body, if any.
func ModelOf(body []byte) string {
	return gjson.GetBytes(body, "model").String()
}

// IsStreaming reports whether a JSON request body asks for a streamed reply.
func IsStreaming(body []byte) bool {
	return gjson.GetBytes(body, "stream").Bool()
}
