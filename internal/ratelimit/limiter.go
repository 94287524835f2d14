package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result reports whether an action may proceed, and if not, how long the
// actor has to wait before the oldest counted event leaves the window.
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter is a sliding-window counter keyed by actor identity.
type Limiter interface {
	Allow(ctx context.Context, identifier string, max int, window time.Duration) (Result, error)
}

// MemoryLimiter keeps per-key event timestamps in process memory. Used
// when Redis is not configured, and in tests.
type MemoryLimiter struct {
	mu     sync.Mutex
	events map[string][]time.Time
	now    func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		events: make(map[string][]time.Time),
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, identifier string, max int, window time.Duration) (Result, error) {
	if identifier == "" || max <= 0 || window <= 0 {
		return Result{Allowed: true}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-window)

	kept := l.events[identifier][:0]
	for _, ts := range l.events[identifier] {
		if ts.After(windowStart) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= max {
		// The oldest surviving event is the one whose expiry unblocks the
		// caller.
		retry := kept[0].Add(window).Sub(now)
		if retry < time.Second {
			retry = time.Second
		}
		l.events[identifier] = kept
		return Result{Allowed: false, RetryAfter: retry}, nil
	}

	l.events[identifier] = append(kept, now)
	return Result{Allowed: true}, nil
}

// Prune drops keys whose every event is older than window. The cleanup
// worker calls this so idle keys do not accumulate.
func (l *MemoryLimiter) Prune(window time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := l.now().Add(-window)
	pruned := 0
	for key, events := range l.events {
		stale := true
		for _, ts := range events {
			if ts.After(windowStart) {
				stale = false
				break
			}
		}
		if stale {
			delete(l.events, key)
			pruned++
		}
	}
	return pruned
}
