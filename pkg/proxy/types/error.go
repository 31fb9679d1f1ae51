package types

// ErrorResponse represents an OpenAI-compatible error response.
// Local-inference clients are OpenAI SDKs, so JSON errors use this envelope.
type ErrorResponse struct {
	// Error contains the error details.
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains detailed error information.
type ErrorDetail struct {
	// Message is a human-readable error message.
	Message string `json:"message"`

	// Type categorizes the error.
	// Possible values: "invalid_request_error", "not_found",
	// "method_not_allowed", "request_too_large", "server_error".
	Type string `json:"type"`

	// Param is the name of the parameter that caused the error (if applicable).
	Param string `json:"param,omitempty"`

	// Code is a machine-readable error code.
	Code string `json:"code,omitempty"`
}

// Error type constants.
const (
	// ErrorTypeInvalidRequest indicates a client-side error (400).
	ErrorTypeInvalidRequest = "invalid_request_error"

	// ErrorTypeNotFound indicates the route or operation does not exist (404).
	ErrorTypeNotFound = "not_found"

	// ErrorTypeMethodNotAllowed indicates the operation rejects the method (405).
	ErrorTypeMethodNotAllowed = "method_not_allowed"

	// ErrorTypeRequestTooLarge indicates the body exceeded the limit (413).
	ErrorTypeRequestTooLarge = "request_too_large"

	// ErrorTypeServerError indicates an internal server error (500).
	ErrorTypeServerError = "server_error"
)

// Error code constants.
const (
	// CodeUnsupportedOperation indicates an unknown operation under a known backend.
	CodeUnsupportedOperation = "unsupported_operation"

	// CodeMethodNotAllowed indicates the method is not accepted by the operation.
	CodeMethodNotAllowed = "method_not_allowed"

	// CodeInvalidBody indicates the request body could not be read.
	CodeInvalidBody = "invalid_body"

	// CodeRequestTooLarge indicates the request payload is too large.
	CodeRequestTooLarge = "request_too_large"

	// CodeMisconfigured indicates the gateway configuration is incomplete.
	CodeMisconfigured = "gateway_misconfigured"

	// CodeInternalError indicates an internal server error.
	CodeInternalError = "internal_error"
)

// NewErrorResponse creates a new error response with the given details.
func NewErrorResponse(message, errorType, param, code string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Message: message,
			Type:    errorType,
			Param:   param,
			Code:    code,
		},
	}
}

// NewNotFoundError creates an error response for unknown resources (404).
func NewNotFoundError(message, code string) *ErrorResponse {
	return NewErrorResponse(message, ErrorTypeNotFound, "", code)
}

// NewServerError creates an error response for internal server errors (500).
func NewServerError(message string) *ErrorResponse {
	return NewErrorResponse(message, ErrorTypeServerError, "", CodeInternalError)
}

// HTTPStatusCode returns the appropriate HTTP status code for the error type.
// Unreachable backends never get a JSON envelope; they are answered with the
// plain-text 503 built by proxy.HandleError.
func (e *ErrorDetail) HTTPStatusCode() int {
	switch e.Type {
	case ErrorTypeInvalidRequest:
		return 400
	case ErrorTypeNotFound:
		return 404
	case ErrorTypeMethodNotAllowed:
		return 405
	case ErrorTypeRequestTooLarge:
		return 413
	case ErrorTypeServerError:
		return 500
	default:
		return 500
	}
}
