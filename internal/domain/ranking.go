package domain

import (
	"sort"
)

// RankedVideo is one entry of the ordered queue handed to the player and UI.
type RankedVideo struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Score           float64 `json:"score"`
	BaseScore       float64 `json:"base_score"`
	EngagementScore float64 `json:"engagement_score"`
	YouTubeViews    int     `json:"youtube_views"`
	IsNewRelease    bool    `json:"is_new_release"`
}

// RankOptions selects and sizes a ranking run.
type RankOptions struct {
	TimeSlot SlotName
	Limit    int

	// IncludeNewReleases enforces the new-release exposure quota:
	// at least max(1, Limit/5) of the returned entries are new releases
	// whenever that many exist in the pool.
	IncludeNewReleases bool

	// Members restricts the candidate pool to the given video IDs when
	// non-nil. Membership resolution belongs to the library collaborator;
	// the engine only consumes the resolved set.
	Members map[string]struct{}
}

// rankedEntry carries the raw total alongside the view during selection.
type rankedEntry struct {
	RankedVideo
	rawTotal float64
}

// TopVideos produces the ordered top-N queue for a time slot.
//
// Every scored video's total is multiplied by its own slot multiplier (when
// defined) to form the effective score used for ordering. Unscored videos
// are excluded entirely. Ordering is deterministic: entries are collected in
// id order and sorted with a stable sort, so equal scores keep a stable,
// reproducible relative order.
//
// When the new-release quota falls short, the best new releases from outside
// the cut replace the lowest-scoring non-new entries, bottom up, and the cut
// is re-sorted so the displayed order stays score-descending apart from the
// guaranteed inclusions.
func TopVideos(doc *ScoreDocument, opts RankOptions) []RankedVideo {
	if opts.Limit <= 0 {
		return []RankedVideo{}
	}

	entries := collectEntries(doc, opts)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if opts.IncludeNewReleases {
		entries = applyNewReleaseQuota(entries, opts.Limit)
	}

	if len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}

	ranked := make([]RankedVideo, len(entries))
	for i, e := range entries {
		ranked[i] = e.RankedVideo
	}
	return ranked
}

// collectEntries snapshots the eligible pool in id order with effective
// scores applied.
func collectEntries(doc *ScoreDocument, opts RankOptions) []rankedEntry {
	ids := make([]string, 0, len(doc.Videos))
	for id := range doc.Videos {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]rankedEntry, 0, len(ids))
	for _, id := range ids {
		if opts.Members != nil {
			if _, ok := opts.Members[id]; !ok {
				continue
			}
		}

		rec := doc.Videos[id]
		if !rec.HasScores() {
			continue
		}

		score := rec.Scores.TotalScore
		if factor, ok := rec.TimeEffect(opts.TimeSlot); ok {
			score *= factor
		}

		entries = append(entries, rankedEntry{
			RankedVideo: RankedVideo{
				ID:              id,
				Title:           rec.Title,
				Score:           score,
				BaseScore:       rec.Scores.BaseScore,
				EngagementScore: rec.Scores.EngagementScore,
				YouTubeViews:    rec.YouTubeViews,
				IsNewRelease:    rec.IsNewRelease,
			},
			rawTotal: rec.Scores.TotalScore,
		})
	}
	return entries
}

// applyNewReleaseQuota guarantees at least max(1, limit/5) new releases in
// the top limit entries, substituting candidates from below the cut when the
// organically ranked ones fall short.
func applyNewReleaseQuota(entries []rankedEntry, limit int) []rankedEntry {
	cut := min(limit, len(entries))
	top := entries[:cut]

	minNew := max(1, limit/5)
	newCount := 0
	for _, e := range top {
		if e.IsNewRelease {
			newCount++
		}
	}
	if newCount >= minNew {
		return entries
	}

	// New releases below the cut, ranked among themselves by their own raw
	// total score, not the time-adjusted one.
	candidates := make([]rankedEntry, 0)
	for _, e := range entries[cut:] {
		if e.IsNewRelease {
			e.Score = e.rawTotal
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return entries
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rawTotal > candidates[j].rawTotal
	})

	// Indices of the displaceable (non-new) entries inside the cut.
	nonNew := make([]int, 0, cut)
	for i, e := range top {
		if !e.IsNewRelease {
			nonNew = append(nonNew, i)
		}
	}

	needed := minNew - newCount
	for i := 0; i < needed && i < len(candidates) && i < len(nonNew); i++ {
		// Replace from the bottom of the cut up: the lowest-scoring non-new
		// entry goes first.
		top[nonNew[len(nonNew)-1-i]] = candidates[i]
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score > top[j].Score
	})

	return entries
}
