package routing

import (
	"errors"
	"fmt"
)

// ErrNoRoute is returned when no service prefix matches the request path.
var ErrNoRoute = errors.New("no route")

// NoRouteError is returned by Match when no service matches.
type NoRouteError struct {
	// Path is the request path that failed to match.
	Path string
}

// Error implements the error interface.
func (e *NoRouteError) Error() string {
	return fmt.Sprintf("no service matches path %q", e.Path)
}

// Is implements error matching for errors.Is().
func (e *NoRouteError) Is(target error) bool {
	return target == ErrNoRoute
}
