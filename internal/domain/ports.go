package domain

import (
	"context"
	"time"
)

// DocumentStore persists the score document as a whole. Reads return a full
// snapshot; writes replace the previous document entirely. A failed write
// must leave the prior persisted state intact.
// Implementations: internal/infra/jsonstore/store.go
type DocumentStore interface {
	// Load reads the current document. A missing or corrupt document yields
	// a fresh default document, not an error.
	Load(ctx context.Context) (*ScoreDocument, error)

	// Save replaces the persisted document.
	Save(ctx context.Context, doc *ScoreDocument) error
}

// VideoSource delivers fresh video metadata from the download/metadata
// collaborator.
// Implementations: internal/infra/provider/metadata/client.go
type VideoSource interface {
	// Name returns the unique identifier for this source.
	Name() string

	// Fetch retrieves the current metadata catalog.
	Fetch(ctx context.Context) ([]VideoMetadata, error)

	// HealthCheck verifies the source is accessible.
	HealthCheck(ctx context.Context) error
}

// PlaylistIndex resolves which downloaded videos belong to a playlist.
// Implementations: internal/infra/library/history.go
type PlaylistIndex interface {
	// VideoIDs returns the member set for a playlist; empty when the
	// playlist is unknown.
	VideoIDs(playlistID string) (map[string]struct{}, error)
}

// Cache defines the interface for caching ranked queue responses.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
