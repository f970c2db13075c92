// Package domain contains the core scoring and ranking logic.
// This package has no external dependencies (only stdlib).
package domain

import (
	"time"
)

// historyLimit caps the per-video play history at the most recent entries.
const historyLimit = 1000

// newReleaseWindowDays is the age below which a video counts as a new release.
const newReleaseWindowDays = 14

// uploadDateLayout is the collaborator's upload date format (YYYYMMDD).
const uploadDateLayout = "20060102"

// VideoMetadata is the per-video record delivered by the download/metadata
// collaborator.
type VideoMetadata struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	ViewCount       int    `json:"view_count"`
	CommentCount    int    `json:"comment_count"`
	UploadDate      string `json:"upload_date,omitempty"` // YYYYMMDD, may be absent
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	PlaylistID      string `json:"playlist_id,omitempty"`

	// NewReleaseHint flags a new release when the upload date is missing or
	// unparseable. A parseable upload date always wins over the hint.
	NewReleaseHint bool `json:"is_new_release,omitempty"`
}

// StreamMetrics is the latest playback segment's audience snapshot. Each
// recorded play replaces the snapshot wholesale; only TimesPlayed accumulates.
type StreamMetrics struct {
	ChatMessages              int     `json:"stream_chat_messages"`
	ViewerChange              int     `json:"viewer_change"`
	AvgViewersDuringSegment   int     `json:"avg_viewers_during_segment"`
	ReturningViewerCount      int     `json:"returning_viewer_count"`
	ReturningViewerPercentage float64 `json:"returning_viewer_percentage"` // 0..1
	ReturningViewerRetention  float64 `json:"returning_viewer_retention"`  // 0..1
	TimesPlayed               int     `json:"times_played"`
}

// ScoreBreakdown holds every intermediate of the score computation so the
// UI can display how a total came together.
type ScoreBreakdown struct {
	BaseScore         float64 `json:"base_score"`
	EnhancedBaseScore float64 `json:"enhanced_base_score"`
	EngagementScore   float64 `json:"engagement_score"`
	LoyaltyScore      float64 `json:"loyalty_score"`
	TotalScore        float64 `json:"total_score"`
}

// PlayEvent is one entry of the append-only play history.
type PlayEvent struct {
	PlayedAt                  time.Time `json:"played_at"`
	TimeSlot                  SlotName  `json:"time_slot"`
	ViewerChange              int       `json:"viewer_change"`
	ChatMessages              int       `json:"chat_messages"`
	ReturningViewerPercentage float64   `json:"returning_viewer_percentage"`
}

// VideoScoreRecord is the accumulated scoring state for one video, keyed by
// the video identifier in the score document.
type VideoScoreRecord struct {
	Title           string `json:"title"`
	YouTubeViews    int    `json:"youtube_views"`
	YouTubeComments int    `json:"youtube_comments"`

	UploadDate string `json:"upload_date,omitempty"`
	// DaysSinceRelease is nil when the upload date is unknown.
	DaysSinceRelease *int `json:"days_since_release,omitempty"`
	IsNewRelease     bool `json:"is_new_release"`

	ViewCountUpdated time.Time `json:"view_count_updated"`

	StreamMetrics StreamMetrics `json:"stream_metrics"`

	// Scores is nil until the record has been through at least one metadata
	// update; unscored records are invisible to the ranking engine.
	Scores *ScoreBreakdown `json:"scores,omitempty"`

	TimeEffects map[SlotName]float64 `json:"time_effects"`

	History []PlayEvent `json:"history"`
}

// NewVideoScoreRecord creates a record seeded with the default per-slot
// multipliers and zeroed stream metrics.
func NewVideoScoreRecord(title string) *VideoScoreRecord {
	return &VideoScoreRecord{
		Title:       title,
		TimeEffects: DefaultTimeEffects(),
		History:     []PlayEvent{},
	}
}

// HasScores reports whether the record has been scored at least once.
func (v *VideoScoreRecord) HasScores() bool {
	return v.Scores != nil
}

// TimeEffect returns the video's multiplier for the given slot and whether
// one is defined.
func (v *VideoScoreRecord) TimeEffect(slot SlotName) (float64, bool) {
	factor, ok := v.TimeEffects[slot]
	return factor, ok
}

// appendHistory appends a play event, keeping only the most recent
// historyLimit entries.
func (v *VideoScoreRecord) appendHistory(event PlayEvent) {
	v.History = append(v.History, event)
	if len(v.History) > historyLimit {
		v.History = v.History[len(v.History)-historyLimit:]
	}
}
