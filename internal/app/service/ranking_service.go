package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"smart-queue-service/internal/domain"
)

// QueueParams selects which ranking to compute. An empty Slot means "the
// slot covering the current UTC hour"; an empty PlaylistID means the whole
// library.
type QueueParams struct {
	Slot               domain.SlotName
	Limit              int
	IncludeNewReleases bool
	PlaylistID         string
}

// LibraryStats is a flat summary of the score document, served by the stats
// endpoint and the CLI.
type LibraryStats struct {
	TotalVideos   int        `json:"total_videos"`
	ScoredVideos  int        `json:"scored_videos"`
	PlayedVideos  int        `json:"played_videos"`
	NewReleases   int        `json:"new_releases"`
	TrackedSlots  int        `json:"tracked_slots"`
	Playlists     int        `json:"playlists"`
	LastUpdated   *time.Time `json:"last_updated,omitempty"`
	AverageScore  float64    `json:"average_score"`
	HighestScore  float64    `json:"highest_score"`
	HighestScored string     `json:"highest_scored_video,omitempty"`
}

// RankingService serves read-side queries: ranked queues, per-slot
// resolution and library statistics. Queue results are cached in Redis keyed
// by the full parameter set and invalidated by ScoringService on any write.
type RankingService struct {
	store     domain.DocumentStore
	playlists domain.PlaylistIndex
	cache     domain.Cache
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewRankingService(store domain.DocumentStore, playlists domain.PlaylistIndex, cache domain.Cache, cacheTTL time.Duration, logger *zap.Logger) *RankingService {
	return &RankingService{
		store:     store,
		playlists: playlists,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// CurrentSlot resolves the time slot covering the current UTC hour.
func (s *RankingService) CurrentSlot() domain.SlotName {
	return domain.SlotForHour(time.Now().UTC().Hour())
}

// TopVideos computes the ranked queue for the given parameters, consulting
// the cache first.
func (s *RankingService) TopVideos(ctx context.Context, params QueueParams) ([]domain.RankedVideo, domain.SlotName, error) {
	slot := params.Slot
	if slot == "" {
		slot = s.CurrentSlot()
	}

	cacheKey := fmt.Sprintf("queue:%s:%d:%t:%s", slot, params.Limit, params.IncludeNewReleases, params.PlaylistID)
	if cached := s.cachedQueue(ctx, cacheKey); cached != nil {
		return cached, slot, nil
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, slot, fmt.Errorf("load score document: %w", err)
	}

	opts := domain.RankOptions{
		TimeSlot:           slot,
		Limit:              params.Limit,
		IncludeNewReleases: params.IncludeNewReleases,
	}

	if params.PlaylistID != "" && s.playlists != nil {
		members, err := s.playlists.VideoIDs(params.PlaylistID)
		if err != nil {
			return nil, slot, fmt.Errorf("resolve playlist %q: %w", params.PlaylistID, err)
		}
		opts.Members = members
	}

	ranked := domain.TopVideos(doc, opts)
	s.storeQueue(ctx, cacheKey, ranked)
	return ranked, slot, nil
}

// Stats summarizes the score document.
func (s *RankingService) Stats(ctx context.Context) (LibraryStats, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return LibraryStats{}, fmt.Errorf("load score document: %w", err)
	}

	stats := LibraryStats{
		TotalVideos:  len(doc.Videos),
		TrackedSlots: len(doc.TimeSlots),
		Playlists:    len(doc.Playlists),
	}
	if !doc.LastUpdated.IsZero() {
		ts := doc.LastUpdated
		stats.LastUpdated = &ts
	}

	var scoreSum float64
	for id, rec := range doc.Videos {
		if !rec.HasScores() {
			continue
		}
		stats.ScoredVideos++
		scoreSum += rec.Scores.TotalScore
		if rec.Scores.TotalScore > stats.HighestScore {
			stats.HighestScore = rec.Scores.TotalScore
			stats.HighestScored = id
		}
		if rec.StreamMetrics.TimesPlayed > 0 {
			stats.PlayedVideos++
		}
		if rec.IsNewRelease {
			stats.NewReleases++
		}
	}
	if stats.ScoredVideos > 0 {
		stats.AverageScore = scoreSum / float64(stats.ScoredVideos)
	}
	return stats, nil
}

func (s *RankingService) cachedQueue(ctx context.Context, key string) []domain.RankedVideo {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("ranking cache read failed", zap.Error(err))
		return nil
	}
	if raw == nil {
		return nil
	}
	var ranked []domain.RankedVideo
	if err := json.Unmarshal(raw, &ranked); err != nil {
		s.logger.Warn("ranking cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil
	}
	return ranked
}

func (s *RankingService) storeQueue(ctx context.Context, key string, ranked []domain.RankedVideo) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(ranked)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.Warn("ranking cache write failed", zap.Error(err))
	}
}
