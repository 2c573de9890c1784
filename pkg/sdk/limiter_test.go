package dishq

import (
	"testing"
	"time"
)

func TestAdvisoryLimiter_AllowsUpToLimit(t *testing.T) {
	l := NewAdvisoryLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow() {
		t.Error("request over the limit should be rejected")
	}
	if r := l.Remaining(); r != 0 {
		t.Errorf("expected 0 remaining, got %d", r)
	}
}

func TestAdvisoryLimiter_WindowRollover(t *testing.T) {
	l := NewAdvisoryLimiter(1, time.Hour)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow()
	if l.Allow() {
		t.Fatal("limit should be reached")
	}

	now = now.Add(time.Hour)
	if !l.Allow() {
		t.Error("quota should reset after the window elapses")
	}
}

func TestAdvisoryLimiter_ObserveTightensOnly(t *testing.T) {
	l := NewAdvisoryLimiter(10, time.Hour)

	l.Allow()
	l.Allow()

	// Another client behind the same address used more of the shared bucket.
	l.Observe(3)
	if r := l.Remaining(); r != 3 {
		t.Errorf("expected remaining tightened to 3, got %d", r)
	}

	// A looser server report never refunds local usage.
	l.Observe(10)
	if r := l.Remaining(); r != 3 {
		t.Errorf("expected remaining unchanged at 3, got %d", r)
	}
}
