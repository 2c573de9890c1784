package health

import (
	"context"
	"errors"
	"testing"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type checkFunc func(ctx context.Context) error

func (f checkFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("unreachable") }

func TestCheck_AllHealthy(t *testing.T) {
	s := New(pingFunc(ok), checkFunc(ok))

	report := s.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected healthy, got %q", report.Status)
	}
	if report.Checks["store"] != CheckOK || report.Checks["upstream"] != CheckOK {
		t.Errorf("unexpected checks %v", report.Checks)
	}
}

func TestCheck_DegradedOnFailure(t *testing.T) {
	s := New(pingFunc(down), checkFunc(ok))

	report := s.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected degraded, got %q", report.Status)
	}
	if report.Checks["store"] != CheckError {
		t.Errorf("expected store error, got %v", report.Checks)
	}
}

func TestCheck_NilDependenciesAreSkipped(t *testing.T) {
	s := New(nil, nil)

	report := s.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected healthy with no checks, got %q", report.Status)
	}
	if len(report.Checks) != 0 {
		t.Errorf("expected no checks, got %v", report.Checks)
	}
}
