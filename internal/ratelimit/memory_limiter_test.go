package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_BlocksAtLimit(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "1.2.3.4", 3, time.Minute)
		if err != nil {
			t.Fatalf("allow failed: %v", err)
		}
		if !allowed {
			t.Fatalf("request %d within limit should be allowed", i+1)
		}
	}

	allowed, err := limiter.Allow(ctx, "1.2.3.4", 3, time.Minute)
	if err != nil {
		t.Fatalf("allow failed: %v", err)
	}
	if allowed {
		t.Error("request over limit should be blocked")
	}

	// Other keys are unaffected.
	allowed, _ = limiter.Allow(ctx, "5.6.7.8", 3, time.Minute)
	if !allowed {
		t.Error("separate key should have its own budget")
	}
}

func TestMemoryLimiter_WindowResets(t *testing.T) {
	limiter := NewMemoryLimiter()
	ctx := context.Background()

	window := 10 * time.Millisecond
	if allowed, _ := limiter.Allow(ctx, "k", 1, window); !allowed {
		t.Fatal("first request should pass")
	}
	if allowed, _ := limiter.Allow(ctx, "k", 1, window); allowed {
		t.Fatal("second request in window should be blocked")
	}

	time.Sleep(2 * window)

	if allowed, _ := limiter.Allow(ctx, "k", 1, window); !allowed {
		t.Error("request after window reset should pass")
	}
}
