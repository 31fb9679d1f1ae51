package inference

import (
	"net/http"
	"testing"
)

func TestResolveOperation(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		prefix string
		want   Operation
		wantOK bool
	}{
		{name: "chat under version prefix", path: "/llama/v1/chat/completions", prefix: "/llama/v1", want: ChatCompletions, wantOK: true},
		{name: "completions under version prefix", path: "/llama/v1/completions", prefix: "/llama/v1", want: Completions, wantOK: true},
		{name: "embeddings under version prefix", path: "/llama/v1/embeddings", prefix: "/llama/v1", want: Embeddings, wantOK: true},
		{name: "models under version prefix", path: "/llama/v1/models", prefix: "/llama/v1", want: Models, wantOK: true},
		{name: "prefix names chat", path: "/llama/v1/chat/completions", prefix: "/llama/v1/chat/completions", want: ChatCompletions, wantOK: true},
		{name: "prefix names completions", path: "/llama/v1/completions", prefix: "/llama/v1/completions", want: Completions, wantOK: true},
		{name: "prefix names models", path: "/llama/v1/models", prefix: "/llama/v1/models", want: Models, wantOK: true},
		{name: "unknown fifth operation", path: "/llama/v1/moderations", prefix: "/llama/v1", wantOK: false},
		{name: "bare prefix without operation", path: "/llama/v1", prefix: "/llama/v1", wantOK: false},
		{name: "trailing segment", path: "/llama/v1/models/extra", prefix: "/llama/v1", wantOK: false},
		{name: "trailing slash", path: "/llama/v1/embeddings/", prefix: "/llama/v1", wantOK: false},
		{name: "chat under slash-terminated prefix", path: "/llama/v1/chat/completions", prefix: "/llama/v1/", want: ChatCompletions, wantOK: true},
		{name: "models under slash-terminated prefix", path: "/llama/v1/models", prefix: "/llama/v1/", want: Models, wantOK: true},
		{name: "bare slash-terminated prefix", path: "/llama/v1/", prefix: "/llama/v1/", wantOK: false},
		{name: "slash-terminated operation prefix", path: "/llama/v1/embeddings/", prefix: "/llama/v1/embeddings/", want: Embeddings, wantOK: true},
		{name: "unknown under slash-terminated prefix", path: "/llama/v1/moderations", prefix: "/llama/v1/", wantOK: false},
		{name: "extension of operation prefix", path: "/llama/v1/chat/completions/x", prefix: "/llama/v1/chat/completions", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveOperation(tt.path, tt.prefix)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v (op %v)", tt.wantOK, ok, got)
			}
			if ok && got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOperation_Allows(t *testing.T) {
	tests := []struct {
		op     Operation
		method string
		want   bool
	}{
		{ChatCompletions, http.MethodPost, true},
		{ChatCompletions, http.MethodGet, false},
		{Completions, http.MethodPost, true},
		{Embeddings, http.MethodPut, false},
		{Models, http.MethodGet, true},
		{Models, http.MethodHead, true},
		{Models, http.MethodPost, false},
	}
	for _, tt := range tests {
		if got := tt.op.Allows(tt.method); got != tt.want {
			t.Errorf("%v.Allows(%s) = %v, want %v", tt.op, tt.method, got, tt.want)
		}
	}
}

func TestOperation_String(t *testing.T) {
	if ChatCompletions.String() != "chat_completions" {
		t.Errorf("unexpected name %q", ChatCompletions.String())
	}
	if Operation(99).String() != "unknown" {
		t.Errorf("unexpected name %q", Operation(99).String())
	}
	if Operation(99).Path() != "" {
		t.Errorf("unexpected path %q", Operation(99).Path())
	}
}
