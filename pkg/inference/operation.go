package inference

import (
	"net/http"
	"strings"
)

// Operation is one of the runtime operations a local inference service serves.
type Operation int

const (
	// ChatCompletions generates a chat completion.
	ChatCompletions Operation = iota + 1

	// Completions generates a text completion.
	Completions

	// Embeddings computes embeddings for the input.
	Embeddings

	// Models lists the models the runtime serves.
	Models
)

// operations is ordered so that /chat/completions is tested before its
// suffix /completions.
var operations = []Operation{ChatCompletions, Completions, Embeddings, Models}

// String returns the operation name used in logs and metrics.
func (o Operation) String() string {
	switch o {
	case ChatCompletions:
		return "chat_completions"
	case Completions:
		return "completions"
	case Embeddings:
		return "embeddings"
	case Models:
		return "models"
	default:
		return "unknown"
	}
}

// Path returns the operation path relative to the runtime base URL.
func (o Operation) Path() string {
	switch o {
	case ChatCompletions:
		return "/chat/completions"
	case Completions:
		return "/completions"
	case Embeddings:
		return "/embeddings"
	case Models:
		return "/models"
	default:
		return ""
	}
}

// AllowedMethods returns the HTTP methods the operation accepts.
func (o Operation) AllowedMethods() []string {
	if o == Models {
		return []string{http.MethodGet, http.MethodHead}
	}
	return []string{http.MethodPost}
}

// Allows reports whether method is accepted by the operation.
func (o Operation) Allows(method string) bool {
	for _, m := range o.AllowedMethods() {
		if m == method {
			return true
		}
	}
	return false
}

// ResolveOperation selects the operation for a request path under prefix.
//
// The remainder of path after prefix must be exactly one operation path. When
// the remainder is empty the prefix itself names the operation, which covers
// service tables that list each operation as its own service
// ("/llama/v1/chat/completions"). A trailing slash on prefix is ignored, so
// "/llama/v1/" serves the same operations as "/llama/v1".
func ResolveOperation(path, prefix string) (Operation, bool) {
	prefix = strings.TrimSuffix(prefix, "/")
	rest := strings.TrimPrefix(path, prefix)
	if rest == "" || rest == "/" {
		for _, op := range operations {
			if strings.HasSuffix(prefix, op.Path()) {
				return op, true
			}
		}
		return 0, false
	}

	for _, op := range operations {
		if rest == op.Path() {
			return op, true
		}
	}
	return 0, false
}
