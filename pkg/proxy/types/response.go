package types

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

const (
	// ContentTypeJSON is the media type for JSON bodies.
	ContentTypeJSON = "application/json"

	// ContentTypeText is the media type for plain-text bodies.
	ContentTypeText = "text/plain; charset=utf-8"
)

// GatewayResponse is what the gateway returns to the client: either a relayed
// backend response or a synthetic one. The receiver of a GatewayResponse owns
// Body and must close it.
type GatewayResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// NewTextResponse builds a plain-text response.
func NewTextResponse(status int, body string) *GatewayResponse {
	h := make(http.Header)
	h.Set("Content-Type", ContentTypeText)
	return &GatewayResponse{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

// NewBytesResponse builds a response from an in-memory body.
func NewBytesResponse(status int, contentType string, body []byte) *GatewayResponse {
	h := make(http.Header)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &GatewayResponse{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

// NewJSONResponse encodes v as the body of a JSON response.
func NewJSONResponse(status int, v any) (*GatewayResponse, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return NewBytesResponse(status, ContentTypeJSON, data), nil
}

// NewErrorJSONResponse renders an ErrorResponse with the status its type implies.
func NewErrorJSONResponse(errResp *ErrorResponse) *GatewayResponse {
	// ErrorResponse holds only strings; Marshal cannot fail.
	data, _ := json.Marshal(errResp)
	return NewBytesResponse(errResp.Error.HTTPStatusCode(), ContentTypeJSON, data)
}

// Close releases the response body if there is one.
func (r *GatewayResponse) Close() error {
	if r == nil || r.Body == nil {
		return nil
	}
	return r.Body.Close()
}
