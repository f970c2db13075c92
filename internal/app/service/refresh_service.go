package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"smart-queue-service/internal/domain"
)

// RefreshResult reports the outcome of one source refresh.
type RefreshResult struct {
	Source   string        `json:"source"`
	Videos   int           `json:"videos"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// RefreshService pulls fresh catalog metadata from the registered sources
// and hands it to the scoring service. Sources are refreshed concurrently;
// one failing source never blocks the others.
type RefreshService struct {
	sources []domain.VideoSource
	scoring *ScoringService
	logger  *zap.Logger
}

func NewRefreshService(sources []domain.VideoSource, scoring *ScoringService, logger *zap.Logger) *RefreshService {
	return &RefreshService{
		sources: sources,
		scoring: scoring,
		logger:  logger,
	}
}

// SourceNames lists the registered source names in registration order.
func (s *RefreshService) SourceNames() []string {
	names := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		names = append(names, src.Name())
	}
	return names
}

// RefreshAll refreshes every registered source concurrently and returns one
// result per source, in registration order.
func (s *RefreshService) RefreshAll(ctx context.Context) []RefreshResult {
	results := make([]RefreshResult, len(s.sources))

	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src domain.VideoSource) {
			defer wg.Done()
			results[i] = s.refresh(ctx, src)
		}(i, src)
	}
	wg.Wait()

	return results
}

// RefreshSource refreshes a single source by name.
func (s *RefreshService) RefreshSource(ctx context.Context, name string) (RefreshResult, error) {
	for _, src := range s.sources {
		if src.Name() == name {
			res := s.refresh(ctx, src)
			return res, res.Err
		}
	}
	return RefreshResult{}, fmt.Errorf("unknown source %q", name)
}

// HealthySources returns the names of sources whose health check passes.
func (s *RefreshService) HealthySources(ctx context.Context) []string {
	healthy := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		if err := src.HealthCheck(ctx); err != nil {
			s.logger.Warn("source health check failed",
				zap.String("source", src.Name()),
				zap.Error(err))
			continue
		}
		healthy = append(healthy, src.Name())
	}
	return healthy
}

func (s *RefreshService) refresh(ctx context.Context, src domain.VideoSource) RefreshResult {
	started := time.Now()
	res := RefreshResult{Source: src.Name()}

	metas, err := src.Fetch(ctx)
	if err != nil {
		res.Err = fmt.Errorf("fetch from %s: %w", src.Name(), err)
		res.Duration = time.Since(started)
		s.logger.Error("source refresh failed",
			zap.String("source", src.Name()),
			zap.Error(err))
		return res
	}

	if err := s.scoring.ApplyCatalog(ctx, metas); err != nil {
		res.Err = fmt.Errorf("apply catalog from %s: %w", src.Name(), err)
		res.Duration = time.Since(started)
		return res
	}

	res.Videos = len(metas)
	res.Duration = time.Since(started)
	s.logger.Info("source refreshed",
		zap.String("source", src.Name()),
		zap.Int("videos", res.Videos),
		zap.Duration("duration", res.Duration))
	return res
}
