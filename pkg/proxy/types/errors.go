package types

import (
	"fmt"
	"strings"
)

// UnsupportedOperationError is returned when a request reaches a known backend
// but its path names no operation that backend serves.
type UnsupportedOperationError struct {
	// Service is the name of the matched service definition.
	Service string

	// Path is the inbound request path.
	Path string
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("service %q does not support operation %q", e.Service, e.Path)
}

// MethodNotAllowedError is returned when an operation exists but does not
// accept the request method.
type MethodNotAllowedError struct {
	Method  string
	Path    string
	Allowed []string
}

// Error implements the error interface.
func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method %s not allowed for %s (allowed: %s)",
		e.Method, e.Path, strings.Join(e.Allowed, ", "))
}

// RequestTooLargeError is returned when the inbound body exceeds the limit.
type RequestTooLargeError struct {
	Limit int64
}

// Error implements the error interface.
func (e *RequestTooLargeError) Error() string {
	return fmt.Sprintf("request body exceeds maximum size of %d bytes", e.Limit)
}

// DownstreamUnavailableError reports that the network call to a backend could
// not be completed. Connection refusal, TLS failures, DNS failures and
// timeouts all surface as this one error.
type DownstreamUnavailableError struct {
	// Target is the backend address that was being called.
	Target string

	// Cause is the underlying transport error.
	Cause error
}

// Error implements the error interface.
func (e *DownstreamUnavailableError) Error() string {
	return fmt.Sprintf("downstream %s unavailable: %v", e.Target, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *DownstreamUnavailableError) Unwrap() error {
	return e.Cause
}

// ConfigurationError reports a configuration fault detected while serving a
// request, such as a missing credential. Requests are never forwarded when
// this error is returned.
type ConfigurationError struct {
	Service string
	Reason  string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("service %q misconfigured: %s: %v", e.Service, e.Reason, e.Cause)
	}
	return fmt.Sprintf("service %q misconfigured: %s", e.Service, e.Reason)
}

// Unwrap returns the underlying error for error chain support.
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}
