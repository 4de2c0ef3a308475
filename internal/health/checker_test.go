package health

import (
	"context"
	"testing"
	"time"
)

type staticChecker struct {
	name    string
	healthy bool
	delay   time.Duration
}

func (c staticChecker) Check(ctx context.Context) CheckResult {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return CheckResult{Name: c.name, Healthy: false, Error: ctx.Err().Error()}
		}
	}
	return CheckResult{Name: c.name, Healthy: c.healthy}
}

func TestProbeRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("all healthy", func(t *testing.T) {
		r := NewProbeRunner(time.Second, 0,
			staticChecker{name: "db", healthy: true},
			staticChecker{name: "redis", healthy: true},
		)
		ready, results := r.Ready(ctx)
		if !ready {
			t.Fatalf("expected ready, got %+v", results)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
	})

	t.Run("one unhealthy makes the probe fail", func(t *testing.T) {
		r := NewProbeRunner(time.Second, 0,
			staticChecker{name: "db", healthy: true},
			staticChecker{name: "redis", healthy: false},
		)
		ready, _ := r.Ready(ctx)
		if ready {
			t.Fatal("expected not ready")
		}
	})

	t.Run("slow check hits its own timeout", func(t *testing.T) {
		r := NewProbeRunner(20*time.Millisecond, 0,
			staticChecker{name: "slow", healthy: true, delay: time.Second},
		)
		ready, results := r.Ready(ctx)
		if ready {
			t.Fatal("expected not ready")
		}
		if results[0].Error == "" {
			t.Fatal("expected a timeout error")
		}
	})

	t.Run("grace period blocks readiness", func(t *testing.T) {
		r := NewProbeRunner(time.Second, time.Hour,
			staticChecker{name: "db", healthy: true},
		)
		ready, results := r.Ready(ctx)
		if ready {
			t.Fatal("expected not ready during grace period")
		}
		if len(results) != 1 || results[0].Name != "startup_grace" {
			t.Fatalf("expected startup_grace result, got %+v", results)
		}
	})

	t.Run("nil checkers are dropped", func(t *testing.T) {
		r := NewProbeRunner(time.Second, 0, nil, staticChecker{name: "db", healthy: true})
		ready, results := r.Ready(ctx)
		if !ready || len(results) != 1 {
			t.Fatalf("expected single healthy result, got ready=%v %+v", ready, results)
		}
	})
}
