package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

type windowEntry struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter is a process-local fixed-window counter. It does not
// coordinate across instances and resets on restart.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	max     int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryLimiter constructs a limiter allowing max requests per window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	if max <= 0 {
		max = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &MemoryLimiter{
		entries: make(map[string]*windowEntry),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

// Allow counts one request for key and reports whether it fits the window.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Opportunistic sweep keeps the map bounded without a background task.
	if rand.Intn(100) == 0 {
		l.sweep(now)
	}

	entry, ok := l.entries[key]
	if !ok || now.After(entry.resetTime) {
		entry = &windowEntry{count: 0, resetTime: now.Add(l.window)}
		l.entries[key] = entry
	}

	entry.count++
	remaining := l.max - entry.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   entry.count <= l.max,
		Remaining: remaining,
		ResetAt:   entry.resetTime,
	}, nil
}

func (l *MemoryLimiter) sweep(now time.Time) {
	for key, entry := range l.entries {
		if now.After(entry.resetTime) {
			delete(l.entries, key)
		}
	}
}
