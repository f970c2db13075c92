package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"smart-queue-service/internal/domain"
)

// ScoringService owns all mutations of the score document. Every write goes
// through a load-mutate-save cycle under a single mutex so concurrent HTTP
// handlers and the refresh scheduler cannot interleave partial updates.
type ScoringService struct {
	store  domain.DocumentStore
	cache  domain.Cache
	logger *zap.Logger

	mu sync.Mutex
}

func NewScoringService(store domain.DocumentStore, cache domain.Cache, logger *zap.Logger) *ScoringService {
	return &ScoringService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// UpdateMetadata upserts a single video record and recomputes its scores.
func (s *ScoringService) UpdateMetadata(ctx context.Context, meta domain.VideoMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load score document: %w", err)
	}

	doc.UpsertVideo(meta.ID, meta, time.Now().UTC())

	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save score document: %w", err)
	}

	s.invalidateRankings(ctx)
	s.logger.Debug("video metadata updated", zap.String("video_id", meta.ID))
	return nil
}

// ApplyCatalog upserts a whole batch of metadata in one load-save cycle.
// Used by the refresh service so a catalog of hundreds of videos does not
// rewrite the document once per video.
func (s *ScoringService) ApplyCatalog(ctx context.Context, metas []domain.VideoMetadata) error {
	if len(metas) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load score document: %w", err)
	}

	now := time.Now().UTC()
	for _, meta := range metas {
		doc.UpsertVideo(meta.ID, meta, now)
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save score document: %w", err)
	}

	s.invalidateRankings(ctx)
	s.logger.Info("catalog applied", zap.Int("videos", len(metas)))
	return nil
}

// RecordPlayEvent appends a play sample for a known video. It returns false
// without touching the document when the video has never been registered.
func (s *ScoringService) RecordPlayEvent(ctx context.Context, videoID string, slot domain.SlotName, sample domain.StreamMetrics) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load score document: %w", err)
	}

	if !doc.RecordPlay(videoID, slot, sample, time.Now().UTC()) {
		return false, nil
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return false, fmt.Errorf("save score document: %w", err)
	}

	s.invalidateRankings(ctx)
	s.logger.Debug("play event recorded",
		zap.String("video_id", videoID),
		zap.String("time_slot", string(slot)))
	return true, nil
}

// RecordPlaylistSample folds a viewer-change observation into the playlist's
// running average and performance factor.
func (s *ScoringService) RecordPlaylistSample(ctx context.Context, playlistID, name string, viewerChange int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load score document: %w", err)
	}

	doc.RecordPlaylistSample(playlistID, name, viewerChange)

	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save score document: %w", err)
	}

	s.logger.Debug("playlist sample recorded",
		zap.String("playlist_id", playlistID),
		zap.Int("viewer_change", viewerChange))
	return nil
}

// GetVideo returns the full score record for one video, or nil when unknown.
func (s *ScoringService) GetVideo(ctx context.Context, videoID string) (*domain.VideoScoreRecord, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load score document: %w", err)
	}
	return doc.Video(videoID), nil
}

// invalidateRankings drops every cached queue so the next read reflects the
// mutation. Cache failures are logged, never surfaced: the document is the
// source of truth.
func (s *ScoringService) invalidateRankings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Warn("ranking cache invalidation failed", zap.Error(err))
	}
}
