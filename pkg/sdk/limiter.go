package dishq

import (
	"sync"
	"time"
)

// AdvisoryLimiter is the client-side half of the dual-sided quota: a local
// fixed-window counter consulted before a round-trip. It is never the system
// of record — the server re-verifies every request against its own counters.
type AdvisoryLimiter struct {
	mu     sync.Mutex
	limit  int
	period time.Duration
	start  time.Time
	count  int
	now    func() time.Time
}

// NewAdvisoryLimiter creates a local limiter allowing limit requests per period.
func NewAdvisoryLimiter(limit int, period time.Duration) *AdvisoryLimiter {
	return &AdvisoryLimiter{
		limit:  limit,
		period: period,
		now:    time.Now,
	}
}

// Allow consumes one unit of the local window if available.
func (l *AdvisoryLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.roll()
	if l.count >= l.limit {
		return false
	}
	l.count++
	return true
}

// Remaining reports the unused local quota.
func (l *AdvisoryLimiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.roll()
	remaining := l.limit - l.count
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// Observe reconciles the local counter with the server-reported remaining
// quota. The server count only ever tightens the local one: other clients
// behind the same address share the server bucket.
func (l *AdvisoryLimiter) Observe(serverRemaining int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.roll()
	if used := l.limit - serverRemaining; used > l.count {
		l.count = used
	}
}

// roll resets the window when elapsed. Caller must hold the mutex.
func (l *AdvisoryLimiter) roll() {
	now := l.now()
	if l.start.IsZero() {
		l.start = now
		return
	}
	if now.Sub(l.start) >= l.period {
		l.start = now
		l.count = 0
	}
}
