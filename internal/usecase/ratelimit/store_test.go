package ratelimit

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/plateful/dishq/internal/db"
)

// stubKV is an in-memory db.KVStore with atomic increments.
type stubKV struct {
	mu       sync.Mutex
	counters map[string]int64
	ttls     map[string]time.Duration
	failWith error
}

func newStubKV() *stubKV {
	return &stubKV{
		counters: make(map[string]int64),
		ttls:     make(map[string]time.Duration),
	}
}

func (s *stubKV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	v, ok := s.counters[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return []byte(strconv.FormatInt(v, 10)), nil
}

func (s *stubKV) IncrBy(_ context.Context, key string, val int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	s.counters[key] += val
	return s.counters[key], nil
}

func (s *stubKV) Expire(_ context.Context, key string, ttl time.Duration, nx bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ttls[key]; exists && nx {
		return nil
	}
	s.ttls[key] = ttl
	return nil
}

func TestStore_AllowsUpToLimit(t *testing.T) {
	kv := newStubKV()
	s := NewStore(kv, 3, time.Hour, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := s.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	if ok, _ := s.Allow(ctx, "10.0.0.1"); ok {
		t.Error("request over the limit should be rejected")
	}
}

func TestStore_RemainingReadsCounter(t *testing.T) {
	kv := newStubKV()
	s := NewStore(kv, 5, time.Hour, zap.NewNop())
	ctx := context.Background()

	// Unused identity has the full quota.
	if r, err := s.Remaining(ctx, "fresh"); err != nil || r != 5 {
		t.Fatalf("expected 5 remaining, got %d (err %v)", r, err)
	}

	s.Allow(ctx, "fresh")
	s.Allow(ctx, "fresh")
	if r, _ := s.Remaining(ctx, "fresh"); r != 3 {
		t.Errorf("expected 3 remaining, got %d", r)
	}

	// Probes never decrement.
	s.Remaining(ctx, "fresh")
	if r, _ := s.Remaining(ctx, "fresh"); r != 3 {
		t.Errorf("probe consumed quota, got %d remaining", r)
	}
}

func TestStore_RemainingClampsAtZero(t *testing.T) {
	kv := newStubKV()
	s := NewStore(kv, 2, time.Hour, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		s.Allow(ctx, "greedy")
	}
	if r, _ := s.Remaining(ctx, "greedy"); r != 0 {
		t.Errorf("expected 0 remaining, got %d", r)
	}
}

func TestStore_WindowKeyRollsOver(t *testing.T) {
	kv := newStubKV()
	s := NewStore(kv, 1, time.Hour, zap.NewNop())
	now := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	s.Allow(ctx, "x")
	if ok, _ := s.Allow(ctx, "x"); ok {
		t.Fatal("limit should be reached")
	}

	// Next window uses a new key; full quota regained.
	now = now.Add(time.Hour)
	if ok, _ := s.Allow(ctx, "x"); !ok {
		t.Error("quota should reset in the next window")
	}
}

func TestStore_SetsTTLOnce(t *testing.T) {
	kv := newStubKV()
	s := NewStore(kv, 10, time.Hour, zap.NewNop())
	ctx := context.Background()

	s.Allow(ctx, "ttl")
	s.Allow(ctx, "ttl")

	if len(kv.ttls) != 1 {
		t.Fatalf("expected one key with TTL, got %d", len(kv.ttls))
	}
	for _, ttl := range kv.ttls {
		if ttl != 2*time.Hour {
			t.Errorf("expected 2h TTL, got %v", ttl)
		}
	}
}

func TestStore_PropagatesStoreErrors(t *testing.T) {
	kv := newStubKV()
	kv.failWith = context.DeadlineExceeded
	s := NewStore(kv, 10, time.Hour, zap.NewNop())

	if _, err := s.Allow(context.Background(), "x"); err == nil {
		t.Error("expected error from failing store")
	}
	if _, err := s.Remaining(context.Background(), "x"); err == nil {
		t.Error("expected error from failing store")
	}
}
