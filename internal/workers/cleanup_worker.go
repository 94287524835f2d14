package workers

import (
	"context"
	"time"

	"kazicare_backend/internal/logger"
	"kazicare_backend/internal/ratelimit"
	"kazicare_backend/internal/repositories"
)

// CleanupWorker periodically deletes expired refresh tokens and prunes
// stale rate-limit events from the in-memory limiter.
type CleanupWorker struct {
	tokenRepo repositories.RefreshTokenRepository
	limiter   *ratelimit.MemoryLimiter
	interval  time.Duration
	window    time.Duration
}

func NewCleanupWorker(tokenRepo repositories.RefreshTokenRepository, limiter *ratelimit.MemoryLimiter, interval, window time.Duration) *CleanupWorker {
	return &CleanupWorker{
		tokenRepo: tokenRepo,
		limiter:   limiter,
		interval:  interval,
		window:    window,
	}
}

// Start runs the cleanup loop until the context is cancelled. Call it in
// its own goroutine.
func (w *CleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("cleanup worker started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			w.runOnce()
		}
	}
}

func (w *CleanupWorker) runOnce() {
	deleted, err := w.tokenRepo.CleanExpired()
	if err != nil {
		logger.Error("failed to clean expired refresh tokens", "error", err)
	} else if deleted > 0 {
		logger.Info("cleaned expired refresh tokens", "count", deleted)
	}

	if w.limiter != nil {
		pruned := w.limiter.Prune(w.window)
		if pruned > 0 {
			logger.Debug("pruned rate-limit events", "count", pruned)
		}
	}
}
