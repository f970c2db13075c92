package domain

import (
	"math"
	"time"
)

// newReleaseFloor is the minimum base score granted to new releases with
// fewer than 10000 views, roughly equivalent to 3000+ views on the log scale.
const newReleaseFloor = 3.5

// UpdateMetadata applies fresh YouTube counts to a record and recomputes its
// scores from scratch.
//
// Negative counts are treated as zero. When the upload date parses it is
// authoritative for IsNewRelease and DaysSinceRelease; otherwise the hint is
// used and DaysSinceRelease stays absent. Malformed dates are tolerated, not
// reported.
func UpdateMetadata(rec *VideoScoreRecord, meta VideoMetadata, now time.Time) {
	if meta.Title != "" {
		rec.Title = meta.Title
	}
	rec.YouTubeViews = max(meta.ViewCount, 0)
	rec.YouTubeComments = max(meta.CommentCount, 0)
	rec.ViewCountUpdated = now

	if meta.UploadDate != "" {
		rec.UploadDate = meta.UploadDate
	}

	if uploaded, err := time.Parse(uploadDateLayout, rec.UploadDate); rec.UploadDate != "" && err == nil {
		days := int(now.Sub(uploaded).Hours() / 24)
		rec.DaysSinceRelease = &days
		rec.IsNewRelease = days < newReleaseWindowDays
	} else {
		// Unknown or unparseable date: the hint decides, age stays unknown.
		rec.DaysSinceRelease = nil
		rec.IsNewRelease = meta.NewReleaseHint
	}

	RecomputeScores(rec)
}

// RecordStreamSample folds one playback segment into the record: the stream
// metrics snapshot is replaced (not merged), the play counter advances, the
// event joins the capped history and all scores are recomputed.
func RecordStreamSample(rec *VideoScoreRecord, slot SlotName, sample StreamMetrics, now time.Time) {
	rec.StreamMetrics = StreamMetrics{
		ChatMessages:              sample.ChatMessages,
		ViewerChange:              sample.ViewerChange,
		AvgViewersDuringSegment:   sample.AvgViewersDuringSegment,
		ReturningViewerCount:      sample.ReturningViewerCount,
		ReturningViewerPercentage: sample.ReturningViewerPercentage,
		ReturningViewerRetention:  sample.ReturningViewerRetention,
		TimesPlayed:               rec.StreamMetrics.TimesPlayed + 1,
	}

	rec.appendHistory(PlayEvent{
		PlayedAt:                  now,
		TimeSlot:                  slot,
		ViewerChange:              sample.ViewerChange,
		ChatMessages:              sample.ChatMessages,
		ReturningViewerPercentage: sample.ReturningViewerPercentage,
	})

	RecomputeScores(rec)
}

// RecomputeScores rebuilds the full score breakdown from the record's current
// inputs. Nothing is carried over from a previous breakdown, so repeated
// calls with unchanged inputs are idempotent.
//
// Invariants:
//
//	enhanced_base_score = base_score * loyalty_boost
//	total_score         = enhanced_base_score + engagement_score
func RecomputeScores(rec *VideoScoreRecord) {
	scores := &ScoreBreakdown{}

	scores.BaseScore = baseScore(rec)

	// Loyalty boost from the fraction of returning viewers.
	loyaltyBoost := 1.0
	if pct := rec.StreamMetrics.ReturningViewerPercentage; pct > 0 {
		loyaltyBoost = 1 + pct*0.5
		scores.LoyaltyScore = pct * 0.5
	}

	// Engagement only exists once the video has been played at least once.
	if rec.StreamMetrics.TimesPlayed > 0 {
		commentRate := float64(rec.YouTubeComments) / float64(max(rec.YouTubeViews, 1))
		chatEngagement := float64(rec.StreamMetrics.ChatMessages) / float64(max(rec.StreamMetrics.AvgViewersDuringSegment, 1))
		viewerChangeFactor := clamp(float64(rec.StreamMetrics.ViewerChange)/100, -1, 1)

		scores.EngagementScore = (0.6*commentRate + 0.4*chatEngagement) * (1 + viewerChangeFactor)
	}

	scores.EnhancedBaseScore = scores.BaseScore * loyaltyBoost
	scores.TotalScore = scores.EnhancedBaseScore + scores.EngagementScore

	rec.Scores = scores
}

// baseScore computes the popularity component.
//
// Raw view counts span many orders of magnitude, so the comparison happens
// on a log10 scale, lifted by the comment/view ratio. New releases with
// fewer than 10000 views get a floor plus a freshness bonus that decays from
// +1.4 at day 0 to nothing at day 14, so brand-new content is never buried
// under an older high-view catalog.
func baseScore(rec *VideoScoreRecord) float64 {
	effectiveViews := max(rec.YouTubeViews, 1)
	engagementBoost := 1 + float64(rec.YouTubeComments)/float64(effectiveViews)

	score := math.Log10(float64(effectiveViews)) * engagementBoost

	if rec.YouTubeViews < 10000 && rec.IsNewRelease {
		score = math.Max(score, newReleaseFloor)
		if rec.DaysSinceRelease != nil {
			bonus := float64(newReleaseWindowDays-*rec.DaysSinceRelease) * 0.1
			score += math.Max(0, bonus)
		}
	}

	return score
}

// clamp bounds value to [lo, hi].
func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
