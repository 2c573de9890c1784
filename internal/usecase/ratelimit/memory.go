package ratelimit

import (
	"context"
	"sync"
	"time"
)

// window tracks one identity's quota consumption.
type window struct {
	start time.Time
	count int
}

// Memory is an in-memory fixed-window limiter. Counters live for the process
// lifetime only; a restart grants everyone a fresh window. All buckets share
// one mutex — Allow is a handful of map operations, far cheaper than the
// upstream calls it gates.
type Memory struct {
	mu      sync.Mutex
	buckets map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
}

var _ Limiter = (*Memory)(nil)

// NewMemory creates an in-memory limiter allowing limit requests per period.
func NewMemory(limit int, period time.Duration) *Memory {
	return &Memory{
		buckets: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Allow atomically checks and consumes one unit of the identity's quota.
func (m *Memory) Allow(_ context.Context, identity string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.bucket(identity)
	if w.count >= m.limit {
		return false, nil
	}
	w.count++
	return true, nil
}

// Remaining reports the identity's unused quota without consuming any.
func (m *Memory) Remaining(_ context.Context, identity string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.bucket(identity)
	remaining := m.limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// bucket returns the identity's current window, rolling it over when elapsed.
// Caller must hold the mutex.
func (m *Memory) bucket(identity string) *window {
	now := m.now()
	w, ok := m.buckets[identity]
	if !ok {
		w = &window{start: now}
		m.buckets[identity] = w
		return w
	}
	if now.Sub(w.start) >= m.period {
		w.start = now
		w.count = 0
	}
	return w
}

// Len reports the number of tracked identities.
// TODO: sweep buckets idle for more than one period to bound memory on
// long-running processes with high identity churn.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}
