package proxy

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"mercator-hq/switchyard/pkg/proxy/types"
	"mercator-hq/switchyard/pkg/routing"
)

// NotFoundBody is the body of the 404 returned when no service matches.
const NotFoundBody = "404 Not Found"

// DownstreamFailurePrefix starts the body of every 503 returned when a
// backend cannot be reached.
const DownstreamFailurePrefix = "Failed to connect to downstream service. "

// Error kinds used as the "kind" label on the errors_total metric.
const (
	KindNoRoute               = "no_route"
	KindUnsupportedOperation  = "unsupported_operation"
	KindMethodNotAllowed      = "method_not_allowed"
	KindRequestTooLarge       = "request_too_large"
	KindDownstreamUnavailable = "downstream_unavailable"
	KindConfiguration         = "configuration"
	KindBadRequest            = "bad_request"
	KindInternal              = "internal"
)

// HandleError converts the errors produced while routing and dispatching a
// request into the response sent to the client.
//
// Example usage:
//
//	resp, err := dispatcher.Dispatch(req, def)
//	if err != nil {
//	    resp = HandleError(err)
//	}
func HandleError(err error) *types.GatewayResponse {
	if errors.Is(err, routing.ErrNoRoute) {
		return types.NewTextResponse(http.StatusNotFound, NotFoundBody)
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return types.NewErrorJSONResponse(reqErr.ToErrorResponse())
	}

	var unsupportedErr *types.UnsupportedOperationError
	if errors.As(err, &unsupportedErr) {
		return types.NewErrorJSONResponse(types.NewNotFoundError(
			unsupportedErr.Error(),
			types.CodeUnsupportedOperation,
		))
	}

	var methodErr *types.MethodNotAllowedError
	if errors.As(err, &methodErr) {
		resp := types.NewErrorJSONResponse(types.NewErrorResponse(
			methodErr.Error(),
			types.ErrorTypeMethodNotAllowed,
			"",
			types.CodeMethodNotAllowed,
		))
		resp.Header.Set("Allow", strings.Join(methodErr.Allowed, ", "))
		return resp
	}

	var tooLargeErr *types.RequestTooLargeError
	if errors.As(err, &tooLargeErr) {
		return types.NewErrorJSONResponse(types.NewErrorResponse(
			tooLargeErr.Error(),
			types.ErrorTypeRequestTooLarge,
			"body",
			types.CodeRequestTooLarge,
		))
	}

	var downstreamErr *types.DownstreamUnavailableError
	if errors.As(err, &downstreamErr) {
		return types.NewTextResponse(http.StatusServiceUnavailable,
			DownstreamFailurePrefix+causeMessage(downstreamErr))
	}

	var configErr *types.ConfigurationError
	if errors.As(err, &configErr) {
		// The reason names the missing piece (e.g. which credential) but
		// never the cause, which may carry provider details.
		return types.NewErrorJSONResponse(types.NewErrorResponse(
			fmt.Sprintf("service %q is misconfigured: %s", configErr.Service, configErr.Reason),
			types.ErrorTypeServerError,
			"",
			types.CodeMisconfigured,
		))
	}

	return types.NewErrorJSONResponse(types.NewServerError(
		"An internal error occurred. Please try again later.",
	))
}

func causeMessage(err *types.DownstreamUnavailableError) string {
	if err.Cause == nil {
		return err.Error()
	}
	return err.Cause.Error()
}

// ErrorKind classifies err for metrics and logs.
func ErrorKind(err error) string {
	var (
		reqErr        *RequestError
		unsupported   *types.UnsupportedOperationError
		methodErr     *types.MethodNotAllowedError
		tooLargeErr   *types.RequestTooLargeError
		downstreamErr *types.DownstreamUnavailableError
		configErr     *types.ConfigurationError
	)

	switch {
	case errors.Is(err, routing.ErrNoRoute):
		return KindNoRoute
	case errors.As(err, &reqErr):
		return KindBadRequest
	case errors.As(err, &unsupported):
		return KindUnsupportedOperation
	case errors.As(err, &methodErr):
		return KindMethodNotAllowed
	case errors.As(err, &tooLargeErr):
		return KindRequestTooLarge
	case errors.As(err, &downstreamErr):
		return KindDownstreamUnavailable
	case errors.As(err, &configErr):
		return KindConfiguration
	default:
		return KindInternal
	}
}
