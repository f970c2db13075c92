package domain

import (
	"testing"
)

func TestRecordPlaylistSample_FirstSample(t *testing.T) {
	doc := NewScoreDocument()

	rec := doc.RecordPlaylistSample("pl1", "Chill Mix", 120)

	if rec.DataPoints != 1 {
		t.Errorf("data points = %d, want 1", rec.DataPoints)
	}
	if rec.AvgViewerChange != 120 {
		t.Errorf("avg = %v, want 120", rec.AvgViewerChange)
	}
	if rec.PerformanceFactor != 1.0 {
		t.Errorf("factor = %v, want 1.0 on first sample", rec.PerformanceFactor)
	}
}

func TestRecordPlaylistSample_RunningMean(t *testing.T) {
	doc := NewScoreDocument()

	doc.RecordPlaylistSample("pl1", "Mix", 100)
	rec := doc.RecordPlaylistSample("pl1", "Mix", 200)

	// (100*1 + 200) / 2 = 150
	if !approxEqual(rec.AvgViewerChange, 150) {
		t.Errorf("avg = %v, want 150", rec.AvgViewerChange)
	}
	if rec.DataPoints != 2 {
		t.Errorf("data points = %d, want 2", rec.DataPoints)
	}
}

func TestRecordPlaylistSample_AsymmetricFactor(t *testing.T) {
	tests := []struct {
		name    string
		samples []int
		want    float64
	}{
		// Second sample onward derives the factor from the new mean.
		{
			name:    "positive scales over 400",
			samples: []int{100, 100}, // mean 100 → 1 + 100/400
			want:    1.25,
		},
		{
			name:    "positive saturates at +0.5",
			samples: []int{1000, 1000}, // mean 1000 → 1 + min(0.5, 2.5)
			want:    1.5,
		},
		{
			name:    "negative scales over 200",
			samples: []int{-50, -50}, // mean -50 → 1 + (-50/200)
			want:    0.75,
		},
		{
			name:    "negative saturates at -0.5",
			samples: []int{-500, -500}, // mean -500 → 1 + max(-0.5, -2.5)
			want:    0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewScoreDocument()
			var rec *PlaylistPerformanceRecord
			for _, s := range tt.samples {
				rec = doc.RecordPlaylistSample("pl", "Mix", s)
			}
			if !approxEqual(rec.PerformanceFactor, tt.want) {
				t.Errorf("factor = %v, want %v", rec.PerformanceFactor, tt.want)
			}
			if rec.PerformanceFactor < 0.5 || rec.PerformanceFactor > 1.5 {
				t.Errorf("factor %v outside [0.5, 1.5]", rec.PerformanceFactor)
			}
		})
	}
}
