package metadata

import (
	"smart-queue-service/internal/domain"
)

// Response represents the catalog export served by the downloader
// collaborator.
type Response struct {
	Videos      []VideoItem `json:"videos"`
	GeneratedAt string      `json:"generated_at"`
}

// VideoItem is one video's metadata as the collaborator reports it.
// IsNewRelease is the collaborator's own flag for videos it could not date;
// it matters only when upload_date is absent or unparseable.
type VideoItem struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	ViewCount       int    `json:"view_count"`
	CommentCount    int    `json:"comment_count"`
	UploadDate      string `json:"upload_date,omitempty"` // YYYYMMDD
	DurationSeconds int    `json:"duration_seconds"`
	PlaylistID      string `json:"playlist_id,omitempty"`
	IsNewRelease    bool   `json:"is_new_release,omitempty"`
}

// ToDomain converts a VideoItem to domain.VideoMetadata.
func (v *VideoItem) ToDomain() domain.VideoMetadata {
	return domain.VideoMetadata{
		ID:              v.ID,
		Title:           v.Title,
		ViewCount:       v.ViewCount,
		CommentCount:    v.CommentCount,
		UploadDate:      v.UploadDate,
		DurationSeconds: v.DurationSeconds,
		PlaylistID:      v.PlaylistID,
		NewReleaseHint:  v.IsNewRelease,
	}
}
