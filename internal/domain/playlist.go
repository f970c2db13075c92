package domain

// PlaylistPerformanceRecord tracks a running average of audience deltas per
// playlist and a derived performance factor in [0.5, 1.5].
//
// The factor is part of the data model but deliberately unread by the
// ranking engine.
type PlaylistPerformanceRecord struct {
	Name              string  `json:"name"`
	PerformanceFactor float64 `json:"performance_factor"`
	AvgViewerChange   float64 `json:"avg_viewer_change"`
	DataPoints        int     `json:"data_points"`
}

// RecordPlaylistSample folds one viewer-change sample into the playlist's
// running mean and rederives its performance factor.
//
// The factor scales asymmetrically: positive swings saturate at +0.5 over a
// range of 400, negative swings at -0.5 over a narrower range of 200.
func (d *ScoreDocument) RecordPlaylistSample(playlistID, name string, viewerChange int) *PlaylistPerformanceRecord {
	rec, ok := d.Playlists[playlistID]
	if !ok {
		rec = &PlaylistPerformanceRecord{
			Name:              name,
			PerformanceFactor: 1.0,
			AvgViewerChange:   float64(viewerChange),
			DataPoints:        1,
		}
		d.Playlists[playlistID] = rec
		return rec
	}

	newAvg := (rec.AvgViewerChange*float64(rec.DataPoints) + float64(viewerChange)) / float64(rec.DataPoints+1)

	rec.Name = name
	rec.AvgViewerChange = newAvg
	rec.DataPoints++
	rec.PerformanceFactor = playlistFactor(newAvg)

	return rec
}

func playlistFactor(avgViewerChange float64) float64 {
	var factor float64
	if avgViewerChange > 0 {
		factor = 1.0 + min(0.5, avgViewerChange/400)
	} else {
		factor = 1.0 + max(-0.5, avgViewerChange/200)
	}
	return clamp(factor, 0.5, 1.5)
}
