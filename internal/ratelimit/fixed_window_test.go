package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, limit int) (*FixedWindow, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter, err := NewFixedWindow(client, "test:ratelimit", limit, time.Second)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	return limiter, mr
}

func TestFixedWindowBlocksOverQuota(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2)
	ctx := context.Background()
	if !limiter.Allow(ctx, "1.2.3.4") {
		t.Fatal("first request should pass")
	}
	if !limiter.Allow(ctx, "1.2.3.4") {
		t.Fatal("second request should pass")
	}
	if limiter.Allow(ctx, "1.2.3.4") {
		t.Fatal("third request should be blocked")
	}
	// A separate key has its own window.
	if !limiter.Allow(ctx, "5.6.7.8") {
		t.Fatal("different key should not share quota")
	}
}

func TestFixedWindowFailsClosed(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	mr.Close()
	if limiter.Allow(context.Background(), "1.2.3.4") {
		t.Fatal("limiter should deny when redis is unavailable")
	}
}

func TestFixedWindowRequiresClient(t *testing.T) {
	if _, err := NewFixedWindow(nil, "", 1, time.Second); err == nil {
		t.Fatal("expected error for nil client")
	}
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	if _, err := NewFixedWindow(client, "", 0, time.Second); err == nil {
		t.Fatal("expected error for zero limit")
	}
}
