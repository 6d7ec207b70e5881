package ratelimit

import (
	"context"
	"time"
)

// Result reports the outcome of a single limiter check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter is a fixed-window request counter. Implementations are injected at
// process start so the in-memory counter can be swapped for the Redis one
// without touching call sites.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
