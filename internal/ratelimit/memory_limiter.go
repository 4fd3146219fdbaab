package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is the single-instance fallback used in tests and local
// runs.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count int
	start time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{buckets: make(map[string]*bucket)}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[key]
	if !ok || now.Sub(b.start) > window {
		b = &bucket{start: now}
		m.buckets[key] = b
	}

	if b.count >= limit {
		return false, nil
	}

	b.count++
	return true, nil
}
