package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smart-queue-service/internal/domain"
)

type memoryStore struct {
	mu  sync.Mutex
	doc *domain.ScoreDocument
	err error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{doc: domain.NewScoreDocument()}
}

func (m *memoryStore) Load(context.Context) (*domain.ScoreDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func (m *memoryStore) Save(_ context.Context, doc *domain.ScoreDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.doc = doc
	return nil
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	cleared int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[key], nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memoryCache) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string][]byte{}
	m.cleared++
	return nil
}

type staticSource struct {
	name  string
	metas []domain.VideoMetadata
	err   error
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Fetch(context.Context) ([]domain.VideoMetadata, error) {
	return s.metas, s.err
}

func (s *staticSource) HealthCheck(context.Context) error { return s.err }

type staticIndex struct {
	members map[string]map[string]struct{}
}

func (s *staticIndex) VideoIDs(playlistID string) (map[string]struct{}, error) {
	return s.members[playlistID], nil
}

func testMeta(id string, views, comments int) domain.VideoMetadata {
	return domain.VideoMetadata{
		ID:           id,
		Title:        "Video " + id,
		ViewCount:    views,
		CommentCount: comments,
	}
}

func TestScoringService_UpdateMetadata(t *testing.T) {
	store := newMemoryStore()
	cache := newMemoryCache()
	svc := NewScoringService(store, cache, zap.NewNop())

	err := svc.UpdateMetadata(context.Background(), testMeta("abc123", 100000, 2000))
	require.NoError(t, err)

	rec, err := svc.GetVideo(context.Background(), "abc123")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.HasScores())
	assert.Equal(t, 100000, rec.YouTubeViews)
	assert.Equal(t, 1, cache.cleared, "mutation must invalidate the ranking cache")
}

func TestScoringService_RecordPlayEvent_UnknownVideo(t *testing.T) {
	store := newMemoryStore()
	svc := NewScoringService(store, newMemoryCache(), zap.NewNop())

	ok, err := svc.RecordPlayEvent(context.Background(), "missing", domain.SlotUSPrimeTime, domain.StreamMetrics{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, store.doc.Videos)
}

func TestScoringService_RecordPlayEvent(t *testing.T) {
	store := newMemoryStore()
	svc := NewScoringService(store, newMemoryCache(), zap.NewNop())
	require.NoError(t, svc.UpdateMetadata(context.Background(), testMeta("abc123", 50000, 500)))

	sample := domain.StreamMetrics{ChatMessages: 120, ViewerChange: 30, AvgViewersDuringSegment: 200}
	ok, err := svc.RecordPlayEvent(context.Background(), "abc123", domain.SlotUKEvening, sample)
	require.NoError(t, err)
	require.True(t, ok)

	rec, err := svc.GetVideo(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.StreamMetrics.TimesPlayed)
	assert.Len(t, rec.History, 1)
	assert.Equal(t, domain.SlotUKEvening, rec.History[0].TimeSlot)
}

func TestScoringService_StoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("disk gone")
	svc := NewScoringService(store, newMemoryCache(), zap.NewNop())

	err := svc.UpdateMetadata(context.Background(), testMeta("abc123", 1, 0))
	require.Error(t, err)
}

func TestScoringService_RecordPlaylistSample(t *testing.T) {
	store := newMemoryStore()
	svc := NewScoringService(store, newMemoryCache(), zap.NewNop())

	require.NoError(t, svc.RecordPlaylistSample(context.Background(), "PL1", "Chill Mix", 100))
	require.NoError(t, svc.RecordPlaylistSample(context.Background(), "PL1", "Chill Mix", 200))

	rec := store.doc.Playlists["PL1"]
	require.NotNil(t, rec)
	assert.Equal(t, 2, rec.DataPoints)
	assert.InDelta(t, 150, rec.AvgViewerChange, 1e-9)
}

func TestRankingService_TopVideos_CachesResult(t *testing.T) {
	store := newMemoryStore()
	cache := newMemoryCache()
	scoring := NewScoringService(store, cache, zap.NewNop())
	require.NoError(t, scoring.UpdateMetadata(context.Background(), testMeta("aaa", 1000000, 10000)))
	require.NoError(t, scoring.UpdateMetadata(context.Background(), testMeta("bbb", 1000, 10)))

	ranking := NewRankingService(store, nil, cache, time.Minute, zap.NewNop())

	params := QueueParams{Slot: domain.SlotUSPrimeTime, Limit: 10}
	ranked, slot, err := ranking.TopVideos(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotUSPrimeTime, slot)
	require.Len(t, ranked, 2)
	assert.Equal(t, "aaa", ranked[0].ID)
	assert.Len(t, cache.entries, 1)

	// Served from cache even if the backing store now fails.
	store.err = errors.New("disk gone")
	cachedRanked, _, err := ranking.TopVideos(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, ranked, cachedRanked)
}

func TestRankingService_TopVideos_DefaultsSlot(t *testing.T) {
	store := newMemoryStore()
	scoring := NewScoringService(store, nil, zap.NewNop())
	require.NoError(t, scoring.UpdateMetadata(context.Background(), testMeta("aaa", 1000, 10)))

	ranking := NewRankingService(store, nil, nil, time.Minute, zap.NewNop())

	_, slot, err := ranking.TopVideos(context.Background(), QueueParams{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotForHour(time.Now().UTC().Hour()), slot)
}

func TestRankingService_TopVideos_PlaylistFilter(t *testing.T) {
	store := newMemoryStore()
	scoring := NewScoringService(store, nil, zap.NewNop())
	require.NoError(t, scoring.UpdateMetadata(context.Background(), testMeta("aaa", 1000000, 10000)))
	require.NoError(t, scoring.UpdateMetadata(context.Background(), testMeta("bbb", 500000, 5000)))

	index := &staticIndex{members: map[string]map[string]struct{}{
		"PL1": {"bbb": {}},
	}}
	ranking := NewRankingService(store, index, nil, time.Minute, zap.NewNop())

	ranked, _, err := ranking.TopVideos(context.Background(), QueueParams{
		Slot:       domain.SlotUKEvening,
		Limit:      10,
		PlaylistID: "PL1",
	})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "bbb", ranked[0].ID)
}

func TestRankingService_Stats(t *testing.T) {
	store := newMemoryStore()
	scoring := NewScoringService(store, nil, zap.NewNop())
	require.NoError(t, scoring.UpdateMetadata(context.Background(), testMeta("aaa", 1000000, 10000)))
	require.NoError(t, scoring.UpdateMetadata(context.Background(), testMeta("bbb", 1000, 10)))
	require.NoError(t, scoring.RecordPlaylistSample(context.Background(), "PL1", "Chill Mix", 50))

	ranking := NewRankingService(store, nil, nil, time.Minute, zap.NewNop())
	stats, err := ranking.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalVideos)
	assert.Equal(t, 2, stats.ScoredVideos)
	assert.Equal(t, 0, stats.PlayedVideos)
	assert.Equal(t, 1, stats.Playlists)
	assert.Equal(t, "aaa", stats.HighestScored)
	assert.Greater(t, stats.AverageScore, 0.0)
	require.NotNil(t, stats.LastUpdated)
}

func TestRefreshService_RefreshAll(t *testing.T) {
	store := newMemoryStore()
	scoring := NewScoringService(store, newMemoryCache(), zap.NewNop())

	sources := []domain.VideoSource{
		&staticSource{name: "metadata", metas: []domain.VideoMetadata{
			testMeta("aaa", 1000, 10),
			testMeta("bbb", 2000, 20),
		}},
		&staticSource{name: "broken", err: errors.New("connection refused")},
	}
	svc := NewRefreshService(sources, scoring, zap.NewNop())

	results := svc.RefreshAll(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, "metadata", results[0].Source)
	assert.Equal(t, 2, results[0].Videos)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)

	assert.Len(t, store.doc.Videos, 2)
}

func TestRefreshService_RefreshSource_Unknown(t *testing.T) {
	svc := NewRefreshService(nil, nil, zap.NewNop())
	_, err := svc.RefreshSource(context.Background(), "nope")
	require.Error(t, err)
}

func TestRefreshService_SourceNames(t *testing.T) {
	svc := NewRefreshService([]domain.VideoSource{
		&staticSource{name: "metadata"},
		&staticSource{name: "backup"},
	}, nil, zap.NewNop())
	assert.Equal(t, []string{"metadata", "backup"}, svc.SourceNames())
}
