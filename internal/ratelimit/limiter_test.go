package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(start time.Time) (*MemoryLimiter, *time.Time) {
	current := start
	l := NewMemoryLimiter()
	l.now = func() time.Time { return current }
	return l, &current
}

func TestMemoryLimiterAllowsUpToMax(t *testing.T) {
	l, _ := newTestLimiter(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := l.Allow(ctx, "user-1", 5, time.Hour)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
	}

	result, err := l.Allow(ctx, "user-1", 5, time.Hour)
	require.NoError(t, err)
	assert.False(t, result.Allowed, "request over the limit must be denied")
	assert.Greater(t, result.RetryAfter, time.Duration(0))
}

func TestMemoryLimiterRetryAfterTracksOldestEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l, clock := newTestLimiter(start)
	ctx := context.Background()

	// Two events ten minutes apart fill the limit.
	_, err := l.Allow(ctx, "user-1", 2, time.Hour)
	require.NoError(t, err)
	*clock = start.Add(10 * time.Minute)
	_, err = l.Allow(ctx, "user-1", 2, time.Hour)
	require.NoError(t, err)

	*clock = start.Add(20 * time.Minute)
	result, err := l.Allow(ctx, "user-1", 2, time.Hour)
	require.NoError(t, err)
	require.False(t, result.Allowed)

	// The first event expires at start+1h, so 40 minutes remain.
	assert.Equal(t, 40*time.Minute, result.RetryAfter)
}

func TestMemoryLimiterWindowElapses(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l, clock := newTestLimiter(start)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := l.Allow(ctx, "user-1", 3, time.Hour)
		require.NoError(t, err)
		require.True(t, result.Allowed)
	}

	result, err := l.Allow(ctx, "user-1", 3, time.Hour)
	require.NoError(t, err)
	require.False(t, result.Allowed)

	// Once the window has passed, the counter is effectively empty.
	*clock = start.Add(time.Hour + time.Second)
	result, err = l.Allow(ctx, "user-1", 3, time.Hour)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	result, err := l.Allow(ctx, "user-1", 1, time.Hour)
	require.NoError(t, err)
	require.True(t, result.Allowed)

	result, err = l.Allow(ctx, "user-1", 1, time.Hour)
	require.NoError(t, err)
	require.False(t, result.Allowed)

	result, err = l.Allow(ctx, "user-2", 1, time.Hour)
	require.NoError(t, err)
	assert.True(t, result.Allowed, "another user's limit is unaffected")
}

func TestMemoryLimiterDenialLeavesCounterUnchanged(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l, clock := newTestLimiter(start)
	ctx := context.Background()

	_, err := l.Allow(ctx, "user-1", 1, time.Hour)
	require.NoError(t, err)

	// Hammering a denied key must not extend the wait.
	for i := 0; i < 10; i++ {
		*clock = start.Add(time.Duration(i) * time.Minute)
		result, err := l.Allow(ctx, "user-1", 1, time.Hour)
		require.NoError(t, err)
		require.False(t, result.Allowed)
	}

	*clock = start.Add(time.Hour + time.Second)
	result, err := l.Allow(ctx, "user-1", 1, time.Hour)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestMemoryLimiterZeroConfigAllows(t *testing.T) {
	l, _ := newTestLimiter(time.Now())
	ctx := context.Background()

	result, err := l.Allow(ctx, "user-1", 0, time.Hour)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = l.Allow(ctx, "", 5, time.Hour)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestMemoryLimiterPrune(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l, clock := newTestLimiter(start)
	ctx := context.Background()

	_, err := l.Allow(ctx, "stale", 5, time.Hour)
	require.NoError(t, err)

	*clock = start.Add(2 * time.Hour)
	_, err = l.Allow(ctx, "fresh", 5, time.Hour)
	require.NoError(t, err)

	pruned := l.Prune(time.Hour)
	assert.Equal(t, 1, pruned)

	l.mu.Lock()
	_, staleExists := l.events["stale"]
	_, freshExists := l.events["fresh"]
	l.mu.Unlock()
	assert.False(t, staleExists)
	assert.True(t, freshExists)
}
