// Package jsonstore persists the score document as a single JSON file.
//
// Every save rewrites the document in full. Writes go through a temp file
// and rename, so a failed save leaves the previous file intact; there is no
// protection against concurrent writers (last writer wins).
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"smart-queue-service/internal/domain"
)

// Store implements domain.DocumentStore on a flat JSON file.
type Store struct {
	path   string
	logger *zap.Logger
}

// New creates a Store for the given file path.
func New(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Writable reports whether the store's directory exists (creating it if
// needed) and accepts writes. Used by the readiness endpoint.
func (s *Store) Writable() bool {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}

	f, err := os.CreateTemp(dir, ".writecheck-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)

	return true
}

// Load reads the score document from disk.
//
// A missing file yields a fresh default document. A corrupt file is logged
// and also falls back to the default document; the broken file stays on disk
// until the next successful save overwrites it.
func (s *Store) Load(_ context.Context) (*domain.ScoreDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("score file not found, starting with defaults",
				zap.String("path", s.path),
			)
			return domain.NewScoreDocument(), nil
		}

		return nil, fmt.Errorf("reading score file: %w", err)
	}

	var doc domain.ScoreDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Error("score file is corrupt, falling back to defaults",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return domain.NewScoreDocument(), nil
	}

	doc.Normalize()

	return &doc, nil
}

// Save replaces the persisted document with doc and stamps LastUpdated.
func (s *Store) Save(_ context.Context, doc *domain.ScoreDocument) error {
	doc.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding score document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating score directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing score file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing score file: %w", err)
	}

	s.logger.Debug("score document saved",
		zap.String("path", s.path),
		zap.Int("videos", len(doc.Videos)),
		zap.Int("bytes", len(data)),
	)

	return nil
}
