package routing

import (
	"sync"
	"sync/atomic"
	"time"
)

// RoutingStats is a point-in-time view of routing counters.
type RoutingStats struct {
	// TotalRequests is the number of Match calls.
	TotalRequests int64

	// RequestsPerService counts matches by service name.
	RequestsPerService map[string]int64

	// Misses is the number of paths that matched no service.
	Misses int64

	// LastResetTime is when the counters were last reset.
	LastResetTime time.Time
}

// AtomicRoutingStats implements thread-safe routing statistics using atomic operations.
type AtomicRoutingStats struct {
	totalRequests atomic.Int64

	// requestsPerService holds map[string]*atomic.Int64
	requestsPerService sync.Map

	misses atomic.Int64

	lastResetTime time.Time

	// mu protects lastResetTime
	mu sync.RWMutex
}

// NewAtomicRoutingStats creates a new atomic routing statistics tracker.
func NewAtomicRoutingStats() *AtomicRoutingStats {
	return &AtomicRoutingStats{
		lastResetTime: time.Now(),
	}
}

// IncrementTotal increments the total request counter.
func (s *AtomicRoutingStats) IncrementTotal() {
	s.totalRequests.Add(1)
}

// IncrementService increments the match counter for a service.
func (s *AtomicRoutingStats) IncrementService(name string) {
	val, _ := s.requestsPerService.LoadOrStore(name, &atomic.Int64{})
	val.(*atomic.Int64).Add(1)
}

// IncrementMisses increments the unmatched path counter.
func (s *AtomicRoutingStats) IncrementMisses() {
	s.misses.Add(1)
}

// Snapshot returns a point-in-time snapshot of the statistics.
func (s *AtomicRoutingStats) Snapshot() *RoutingStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perService := make(map[string]int64)
	s.requestsPerService.Range(func(key, value any) bool {
		perService[key.(string)] = value.(*atomic.Int64).Load()
		return true
	})

	return &RoutingStats{
		TotalRequests:      s.totalRequests.Load(),
		RequestsPerService: perService,
		Misses:             s.misses.Load(),
		LastResetTime:      s.lastResetTime,
	}
}

// Reset resets all statistics to zero.
func (s *AtomicRoutingStats) Reset() {
	s.totalRequests.Store(0)
	s.misses.Store(0)

	s.requestsPerService.Range(func(key, _ any) bool {
		s.requestsPerService.Delete(key)
		return true
	})

	s.mu.Lock()
	s.lastResetTime = time.Now()
	s.mu.Unlock()
}
