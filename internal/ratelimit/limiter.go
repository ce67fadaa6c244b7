package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter answers whether a client may make another request inside
// the current window.
type Limiter interface {
	Allow(ctx context.Context, clientKey string) (bool, error)
}

// MemoryLimiter keeps fixed-window counters per client in process.
// Suitable for a single instance; multi-instance deployments should
// use the Redis limiter.
type MemoryLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count int
	start time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
	}
}

func (m *MemoryLimiter) Allow(ctx context.Context, clientKey string) (bool, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.buckets[clientKey]
	if !ok || now.Sub(b.start) > m.window {
		b = &bucket{start: now}
		m.buckets[clientKey] = b
	}

	if b.count >= m.limit {
		return false, nil
	}

	b.count++
	return true, nil
}
