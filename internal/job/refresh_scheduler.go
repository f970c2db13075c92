// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"smart-queue-service/internal/app/service"
	"smart-queue-service/pkg/locker"
)

// RefreshScheduler runs periodic catalog refreshes with distributed locking
// so only one instance refreshes the metadata sources at a time.
type RefreshScheduler struct {
	refreshService *service.RefreshService
	interval       time.Duration
	timeout        time.Duration
	logger         *zap.Logger
	locker         locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// RefreshConfig holds refresh scheduler configuration.
type RefreshConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewRefreshScheduler creates a new RefreshScheduler with distributed
// locking support.
func NewRefreshScheduler(
	refreshSvc *service.RefreshService,
	cfg RefreshConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *RefreshScheduler {
	return &RefreshScheduler{
		refreshService: refreshSvc,
		interval:       cfg.Interval,
		timeout:        cfg.Timeout,
		logger:         logger,
		locker:         locker,
	}
}

// Start begins the background refresh job.
func (s *RefreshScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting refresh scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *RefreshScheduler) Stop() {
	s.logger.Info("stopping refresh scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("refresh scheduler stopped")
}

func (s *RefreshScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeRefresh()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeRefresh()
		}
	}
}

// executeRefresh performs one refresh cycle under the distributed lock.
//
// Locking behavior:
//   - Lock TTL = interval duration (cooldown model, not timeout)
//   - Success: Lock held for full interval to prevent duplicate refreshes
//   - Failure: Lock released immediately to allow retry by another instance
func (s *RefreshScheduler) executeRefresh() {
	const lockKey = "refresh:scheduler:lock"

	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is running the refresh, skipping execution")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	results := s.refreshService.RefreshAll(ctx)

	totalVideos := 0
	totalErrors := 0
	hasError := false

	for _, r := range results {
		if r.Err != nil {
			totalErrors++
			hasError = true
			s.logger.Warn("source refresh failed",
				zap.String("source", r.Source),
				zap.Error(r.Err),
			)
		} else {
			totalVideos += r.Videos
		}
	}

	if hasError {
		// Release the lock immediately on error so another instance can retry.
		if err := s.locker.Release(s.ctx, lockKey); err != nil {
			s.logger.Error("failed to release lock after refresh error", zap.Error(err))
		}
		s.logger.Info("refresh completed with errors, lock released for retry",
			zap.Int("total_videos", totalVideos),
			zap.Int("sources_failed", totalErrors),
		)
	} else {
		// Let the lock expire naturally after the interval (cooldown period).
		s.logger.Info("refresh completed successfully, lock held for cooldown",
			zap.Int("total_videos", totalVideos),
			zap.Duration("cooldown", s.interval),
		)
	}
}
