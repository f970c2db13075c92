// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"smart-queue-service/internal/app/service"
	"smart-queue-service/internal/domain"
)

// QueueRequest represents the query parameters for the ranked queue.
type QueueRequest struct {
	Slot       string `query:"slot" validate:"omitempty,timeslot"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=500"`
	IncludeNew string `query:"include_new" validate:"omitempty,oneof=true false"`
	PlaylistID string `query:"playlist" validate:"omitempty,max=100"`
}

const defaultQueueLimit = 20

// ToQueueParams converts QueueRequest to service.QueueParams. The new-release
// quota is on unless explicitly disabled, and an empty slot means "whatever
// slot covers the current hour".
func (r *QueueRequest) ToQueueParams() service.QueueParams {
	limit := r.Limit
	if limit <= 0 {
		limit = defaultQueueLimit
	}

	return service.QueueParams{
		Slot:               domain.SlotName(r.Slot),
		Limit:              limit,
		IncludeNewReleases: r.IncludeNew != "false",
		PlaylistID:         r.PlaylistID,
	}
}

// UpdateMetadataRequest represents the body for a metadata upsert.
type UpdateMetadataRequest struct {
	Title           string `json:"title" validate:"required,max=300"`
	ViewCount       int    `json:"view_count" validate:"min=0"`
	CommentCount    int    `json:"comment_count" validate:"min=0"`
	UploadDate      string `json:"upload_date" validate:"omitempty,len=8,numeric"`
	DurationSeconds int    `json:"duration_seconds" validate:"min=0"`
	PlaylistID      string `json:"playlist_id" validate:"omitempty,max=100"`
	IsNewRelease    bool   `json:"is_new_release"`
}

// ToDomain converts the request to domain.VideoMetadata for the given video.
func (r *UpdateMetadataRequest) ToDomain(videoID string) domain.VideoMetadata {
	return domain.VideoMetadata{
		ID:              videoID,
		Title:           r.Title,
		ViewCount:       r.ViewCount,
		CommentCount:    r.CommentCount,
		UploadDate:      r.UploadDate,
		DurationSeconds: r.DurationSeconds,
		PlaylistID:      r.PlaylistID,
		NewReleaseHint:  r.IsNewRelease,
	}
}

// PlayEventRequest represents the body for recording a playback segment.
type PlayEventRequest struct {
	TimeSlot                  string  `json:"time_slot" validate:"omitempty,timeslot"`
	ChatMessages              int     `json:"stream_chat_messages" validate:"min=0"`
	ViewerChange              int     `json:"viewer_change"`
	AvgViewersDuringSegment   int     `json:"avg_viewers_during_segment" validate:"min=0"`
	ReturningViewerCount      int     `json:"returning_viewer_count" validate:"min=0"`
	ReturningViewerPercentage float64 `json:"returning_viewer_percentage" validate:"min=0,max=1"`
	ReturningViewerRetention  float64 `json:"returning_viewer_retention" validate:"min=0,max=1"`
}

// ToDomain converts the request to a domain.StreamMetrics snapshot.
// TimesPlayed is owned by the scoring engine and never taken from clients.
func (r *PlayEventRequest) ToDomain() domain.StreamMetrics {
	return domain.StreamMetrics{
		ChatMessages:              r.ChatMessages,
		ViewerChange:              r.ViewerChange,
		AvgViewersDuringSegment:   r.AvgViewersDuringSegment,
		ReturningViewerCount:      r.ReturningViewerCount,
		ReturningViewerPercentage: r.ReturningViewerPercentage,
		ReturningViewerRetention:  r.ReturningViewerRetention,
	}
}

// PlaylistSampleRequest represents the body for a playlist performance sample.
type PlaylistSampleRequest struct {
	Name         string `json:"name" validate:"required,max=300"`
	ViewerChange int    `json:"viewer_change"`
}
