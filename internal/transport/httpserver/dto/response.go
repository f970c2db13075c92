package dto

import (
	"time"

	"smart-queue-service/internal/app/service"
	"smart-queue-service/internal/domain"
)

// RankedVideoResponse represents one entry of the ranked queue.
type RankedVideoResponse struct {
	Rank            int     `json:"rank"`
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Score           float64 `json:"score"`
	BaseScore       float64 `json:"base_score"`
	EngagementScore float64 `json:"engagement_score"`
	YouTubeViews    int     `json:"youtube_views"`
	IsNewRelease    bool    `json:"is_new_release"`
}

// QueueResponse represents the ranked queue for a time slot.
type QueueResponse struct {
	TimeSlot string                `json:"time_slot"`
	Count    int                   `json:"count"`
	Videos   []RankedVideoResponse `json:"videos"`
}

// FromRankedVideos converts a ranking result to QueueResponse.
func FromRankedVideos(slot domain.SlotName, ranked []domain.RankedVideo) QueueResponse {
	videos := make([]RankedVideoResponse, len(ranked))
	for i, v := range ranked {
		videos[i] = RankedVideoResponse{
			Rank:            i + 1,
			ID:              v.ID,
			Title:           v.Title,
			Score:           v.Score,
			BaseScore:       v.BaseScore,
			EngagementScore: v.EngagementScore,
			YouTubeViews:    v.YouTubeViews,
			IsNewRelease:    v.IsNewRelease,
		}
	}

	return QueueResponse{
		TimeSlot: string(slot),
		Count:    len(videos),
		Videos:   videos,
	}
}

// ScoreBreakdownResponse mirrors the stored score intermediates.
type ScoreBreakdownResponse struct {
	BaseScore         float64 `json:"base_score"`
	EnhancedBaseScore float64 `json:"enhanced_base_score"`
	EngagementScore   float64 `json:"engagement_score"`
	LoyaltyScore      float64 `json:"loyalty_score"`
	TotalScore        float64 `json:"total_score"`
}

// VideoResponse represents the full scoring state of one video.
type VideoResponse struct {
	ID               string                  `json:"id"`
	Title            string                  `json:"title"`
	YouTubeViews     int                     `json:"youtube_views"`
	YouTubeComments  int                     `json:"youtube_comments"`
	UploadDate       string                  `json:"upload_date,omitempty"`
	DaysSinceRelease *int                    `json:"days_since_release,omitempty"`
	IsNewRelease     bool                    `json:"is_new_release"`
	TimesPlayed      int                     `json:"times_played"`
	Scores           *ScoreBreakdownResponse `json:"scores,omitempty"`
	TimeEffects      map[string]float64      `json:"time_effects"`
	HistoryLength    int                     `json:"history_length"`
	ViewCountUpdated string                  `json:"view_count_updated,omitempty"`
}

// FromVideoRecord converts a domain record to VideoResponse.
func FromVideoRecord(id string, rec *domain.VideoScoreRecord) VideoResponse {
	resp := VideoResponse{
		ID:               id,
		Title:            rec.Title,
		YouTubeViews:     rec.YouTubeViews,
		YouTubeComments:  rec.YouTubeComments,
		UploadDate:       rec.UploadDate,
		DaysSinceRelease: rec.DaysSinceRelease,
		IsNewRelease:     rec.IsNewRelease,
		TimesPlayed:      rec.StreamMetrics.TimesPlayed,
		TimeEffects:      make(map[string]float64, len(rec.TimeEffects)),
		HistoryLength:    len(rec.History),
	}

	if rec.Scores != nil {
		resp.Scores = &ScoreBreakdownResponse{
			BaseScore:         rec.Scores.BaseScore,
			EnhancedBaseScore: rec.Scores.EnhancedBaseScore,
			EngagementScore:   rec.Scores.EngagementScore,
			LoyaltyScore:      rec.Scores.LoyaltyScore,
			TotalScore:        rec.Scores.TotalScore,
		}
	}
	for slot, factor := range rec.TimeEffects {
		resp.TimeEffects[string(slot)] = factor
	}
	if !rec.ViewCountUpdated.IsZero() {
		resp.ViewCountUpdated = rec.ViewCountUpdated.Format(time.RFC3339)
	}

	return resp
}

// PlaylistResponse represents one playlist's performance record.
type PlaylistResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	PerformanceFactor float64 `json:"performance_factor"`
	AvgViewerChange   float64 `json:"avg_viewer_change"`
	DataPoints        int     `json:"data_points"`
}

// FromPlaylistRecord converts a domain playlist record to PlaylistResponse.
func FromPlaylistRecord(id string, rec *domain.PlaylistPerformanceRecord) PlaylistResponse {
	return PlaylistResponse{
		ID:                id,
		Name:              rec.Name,
		PerformanceFactor: rec.PerformanceFactor,
		AvgViewerChange:   rec.AvgViewerChange,
		DataPoints:        rec.DataPoints,
	}
}

// RefreshResultResponse represents the outcome of one source refresh.
type RefreshResultResponse struct {
	Source   string `json:"source"`
	Videos   int    `json:"videos"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// RefreshResponse represents the response for a refresh-all operation.
type RefreshResponse struct {
	Results []RefreshResultResponse `json:"results"`
	Summary RefreshSummary          `json:"summary"`
}

// RefreshSummary aggregates a refresh-all outcome.
type RefreshSummary struct {
	TotalVideos int `json:"total_videos"`
	SourcesOK   int `json:"sources_ok"`
	SourcesFail int `json:"sources_fail"`
}

// FromRefreshResults converts service refresh results to RefreshResponse.
func FromRefreshResults(results []service.RefreshResult) RefreshResponse {
	resp := RefreshResponse{
		Results: make([]RefreshResultResponse, len(results)),
	}

	for i, r := range results {
		errMsg := ""
		if r.Err != nil {
			errMsg = r.Err.Error()
			resp.Summary.SourcesFail++
		} else {
			resp.Summary.TotalVideos += r.Videos
			resp.Summary.SourcesOK++
		}

		resp.Results[i] = RefreshResultResponse{
			Source:   r.Source,
			Videos:   r.Videos,
			Duration: r.Duration.String(),
			Error:    errMsg,
		}
	}

	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
