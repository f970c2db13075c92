// Package library exposes read-only views over the download tracker's
// history file. The tracker itself (downloads, playlist subscriptions) is an
// external collaborator; this package only resolves playlist membership for
// the ranking filter.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// historyFile mirrors the collaborator's download_history.json shape:
// a map of video id to download entry.
type historyFile struct {
	Videos map[string]historyEntry `json:"videos"`
}

type historyEntry struct {
	PlaylistID string `json:"playlist_id"`
	Title      string `json:"title"`
	FilePath   string `json:"file_path"`
}

// HistoryIndex implements domain.PlaylistIndex against the download history
// file. The file is re-read per lookup; the history is small and owned by
// another process, so holding a parsed copy would go stale.
type HistoryIndex struct {
	path   string
	logger *zap.Logger
}

// NewHistoryIndex creates an index over the given history file path.
func NewHistoryIndex(path string, logger *zap.Logger) *HistoryIndex {
	return &HistoryIndex{
		path:   path,
		logger: logger,
	}
}

// VideoIDs returns the set of downloaded video ids belonging to playlistID.
// A missing history file yields an empty set, not an error.
func (h *HistoryIndex) VideoIDs(playlistID string) (map[string]struct{}, error) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.logger.Debug("download history not found",
				zap.String("path", h.path),
			)
			return map[string]struct{}{}, nil
		}

		return nil, fmt.Errorf("reading download history: %w", err)
	}

	var history historyFile
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decoding download history: %w", err)
	}

	members := make(map[string]struct{})
	for id, entry := range history.Videos {
		if entry.PlaylistID == playlistID {
			members[id] = struct{}{}
		}
	}

	return members, nil
}
