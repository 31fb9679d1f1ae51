package proxy

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"mercator-hq/switchyard/pkg/proxy/types"
)

// DefaultMaxBodyBytes is used when no body limit is configured.
const DefaultMaxBodyBytes = 10 * 1024 * 1024

// ReadBody reads the whole request body, refusing bodies larger than limit
// with a *types.RequestTooLargeError. A declared Content-Length over the
// limit is refused before anything is read.
func ReadBody(r *http.Request, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	if r.ContentLength > limit {
		return nil, &types.RequestTooLargeError{Limit: limit}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &types.RequestTooLargeError{Limit: limit}
		}
		return nil, &RequestError{
			Message: fmt.Sprintf("failed to read request body: %v", err),
			Code:    types.CodeInvalidBody,
			Param:   "body",
		}
	}
	if int64(len(body)) > limit {
		return nil, &types.RequestTooLargeError{Limit: limit}
	}

	return body, nil
}

// NewInboundRequest captures r and its already-read body.
func NewInboundRequest(r *http.Request, path string, body []byte) *types.InboundRequest {
	return &types.InboundRequest{
		Ctx:      r.Context(),
		Method:   r.Method,
		Path:     path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header,
		Body:     body,
	}
}

// RequestError represents a malformed inbound request.
type RequestError struct {
	Message string
	Code    string
	Param   string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}

// ToErrorResponse converts a RequestError to an OpenAI-compatible error response.
func (e *RequestError) ToErrorResponse() *types.ErrorResponse {
	return types.NewErrorResponse(e.Message, types.ErrorTypeInvalidRequest, e.Param, e.Code)
}
