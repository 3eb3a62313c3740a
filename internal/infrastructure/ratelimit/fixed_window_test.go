package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestFixedWindowLimiterRedis(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 2, time.Minute)
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	defer limiter.Close()
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		ok, err := limiter.Allow(ctx, "ip-1")
		if err != nil || !ok {
			t.Fatalf("request %d should pass: ok=%v err=%v", i, ok, err)
		}
	}
	ok, err := limiter.Allow(ctx, "ip-1")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if ok {
		t.Fatalf("third request should be blocked")
	}

	ok, err = limiter.Allow(ctx, "ip-2")
	if err != nil || !ok {
		t.Fatalf("other keys keep their own quota: ok=%v err=%v", ok, err)
	}
}

func TestFixedWindowLimiterResetsNextWindow(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 1, time.Minute)
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	defer limiter.Close()
	ctx := context.Background()

	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	if ok, _ := limiter.Allow(ctx, "ip-1"); !ok {
		t.Fatalf("first request should pass")
	}
	if ok, _ := limiter.Allow(ctx, "ip-1"); ok {
		t.Fatalf("second request in the same window should be blocked")
	}

	current = current.Add(time.Minute)
	if ok, err := limiter.Allow(ctx, "ip-1"); err != nil || !ok {
		t.Fatalf("next window should pass: ok=%v err=%v", ok, err)
	}
}

func TestFixedWindowLimiterReportsRedisErrors(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 1, time.Second)
	if err != nil {
		t.Fatalf("new redis limiter: %v", err)
	}
	defer limiter.Close()
	redis.Close()

	if _, err := limiter.Allow(context.Background(), "ip-1"); err == nil {
		t.Fatalf("expected an error when redis is unreachable")
	}
}

func TestFixedWindowLimiterRequiresRedisAddr(t *testing.T) {
	limiter, err := NewRedisFixedWindowLimiter("", "", "test:ratelimit", 1, time.Second)
	if err == nil || limiter != nil {
		t.Fatalf("expected constructor error for empty redis addr")
	}
}

func TestFixedWindowLimiterRequiresPositiveLimit(t *testing.T) {
	redis := miniredis.RunT(t)
	if _, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "", 0, time.Second); err == nil {
		t.Fatalf("expected constructor error for zero limit")
	}
}
