package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRecorderForRequest(h http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func newRedisLimiterForTest(t *testing.T) (*RedisFixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFixedWindowLimiter(client, "test"), mr
}

func TestRedisFixedWindowLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("counts within the window", func(t *testing.T) {
		limiter, _ := newRedisLimiterForTest(t)
		for i := 0; i < 3; i++ {
			allowed, _, err := limiter.Allow(ctx, "client-a", 3, time.Minute)
			if err != nil {
				t.Fatalf("allow %d: %v", i+1, err)
			}
			if !allowed {
				t.Fatalf("request %d must be allowed", i+1)
			}
		}
		allowed, retryAfter, err := limiter.Allow(ctx, "client-a", 3, time.Minute)
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if allowed {
			t.Fatal("fourth request must be denied")
		}
		if retryAfter <= 0 {
			t.Fatalf("expected positive retry-after, got %v", retryAfter)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter, _ := newRedisLimiterForTest(t)
		if allowed, _, _ := limiter.Allow(ctx, "client-a", 1, time.Minute); !allowed {
			t.Fatal("first request for client-a must pass")
		}
		if allowed, _, _ := limiter.Allow(ctx, "client-b", 1, time.Minute); !allowed {
			t.Fatal("client-b must have its own window")
		}
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		limiter, mr := newRedisLimiterForTest(t)
		if allowed, _, _ := limiter.Allow(ctx, "client-a", 1, time.Minute); !allowed {
			t.Fatal("first request must pass")
		}
		if allowed, _, _ := limiter.Allow(ctx, "client-a", 1, time.Minute); allowed {
			t.Fatal("second request must be denied")
		}
		mr.FastForward(time.Minute + time.Second)
		if allowed, _, _ := limiter.Allow(ctx, "client-a", 1, time.Minute); !allowed {
			t.Fatal("request after window expiry must pass")
		}
	})

	t.Run("nil client fails", func(t *testing.T) {
		limiter := NewRedisFixedWindowLimiter(nil, "test")
		if _, _, err := limiter.Allow(ctx, "client-a", 1, time.Minute); err == nil {
			t.Fatal("expected error for nil client")
		}
	})

	t.Run("fail open middleware allows on backend loss", func(t *testing.T) {
		limiter, mr := newRedisLimiterForTest(t)
		mr.Close()
		h := NewDistributedRateLimiter(limiter, 10, time.Minute, FailOpen, "api").Middleware()(okHandler())
		rec := newRecorderForRequest(h)
		if rec.Code != 200 {
			t.Fatalf("fail-open must allow, got %d", rec.Code)
		}
	})

	t.Run("fail closed middleware denies on backend loss", func(t *testing.T) {
		limiter, mr := newRedisLimiterForTest(t)
		mr.Close()
		h := NewDistributedRateLimiter(limiter, 10, time.Minute, FailClosed, "auth").Middleware()(okHandler())
		rec := newRecorderForRequest(h)
		if rec.Code != 429 {
			t.Fatalf("fail-closed must deny, got %d", rec.Code)
		}
	})
}
