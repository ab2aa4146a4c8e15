package ratelimit

import (
	"context"
	"sync"
	"time"
)

type clientInfo struct {
	last  time.Time
	count int
}

// MemoryLimiter is a process-local fixed-window limiter.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		clients: make(map[string]*clientInfo),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow blocks keys that act more than limit times per window.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	ci, ok := l.clients[key]
	if !ok || now.Sub(ci.last) > l.window {
		l.clients[key] = &clientInfo{last: now, count: 1}
		RLRequests.WithLabelValues(endpoint(key)).Inc()
		return true, nil
	}

	ci.count++
	if ci.count > l.limit {
		RLBlocked.WithLabelValues(endpoint(key)).Inc()
		return false, nil
	}
	RLRequests.WithLabelValues(endpoint(key)).Inc()
	return true, nil
}

// sweep drops expired windows once the map grows.
func (l *MemoryLimiter) sweep(now time.Time) {
	if len(l.clients) < 1024 {
		return
	}
	for k, ci := range l.clients {
		if now.Sub(ci.last) > l.window {
			delete(l.clients, k)
		}
	}
}
