package routing

import (
	"mercator-hq/switchyard/pkg/registry"
)

// Router matches request paths against the service table.
type Router struct {
	reg   *registry.Registry
	stats *AtomicRoutingStats
}

// New creates a router over reg.
func New(reg *registry.Registry) *Router {
	return &Router{
		reg:   reg,
		stats: NewAtomicRoutingStats(),
	}
}

// Match returns the first service, in table order, whose path prefix is a
// prefix of path. It returns a *NoRouteError matching ErrNoRoute otherwise.
func (r *Router) Match(path string) (registry.ServiceDefinition, error) {
	r.stats.IncrementTotal()

	for i := 0; i < r.reg.Len(); i++ {
		def := r.reg.At(i)
		if def.Matches(path) {
			r.stats.IncrementService(def.Name)
			return def, nil
		}
	}

	r.stats.IncrementMisses()
	return registry.ServiceDefinition{}, &NoRouteError{Path: path}
}

// Registry returns the service table the router matches against.
func (r *Router) Registry() *registry.Registry {
	return r.reg
}

// GetStats returns a snapshot of routing statistics.
func (r *Router) GetStats() *RoutingStats {
	return r.stats.Snapshot()
}
