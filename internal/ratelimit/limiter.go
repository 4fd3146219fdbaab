package ratelimit

import (
	"context"
	"errors"
	"time"
)

// Limiter answers whether a caller identified by key may proceed within
// the current window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

var ErrRateLimited = errors.New("rate limit exceeded")
