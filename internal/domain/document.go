package domain

import (
	"time"
)

// ScoreDocument is the whole persisted scoring state. Every mutation rewrites
// the document in full; there are no partial updates at the storage boundary.
type ScoreDocument struct {
	Videos      map[string]*VideoScoreRecord          `json:"videos"`
	TimeSlots   map[SlotName]TimeSlot                 `json:"time_slots"`
	Playlists   map[string]*PlaylistPerformanceRecord `json:"playlists"`
	LastUpdated time.Time                             `json:"last_updated"`
}

// NewScoreDocument returns an empty document seeded with the default time
// slot definitions.
func NewScoreDocument() *ScoreDocument {
	return &ScoreDocument{
		Videos:    make(map[string]*VideoScoreRecord),
		TimeSlots: DefaultTimeSlots(),
		Playlists: make(map[string]*PlaylistPerformanceRecord),
	}
}

// Normalize repairs a document loaded from disk: nil maps are allocated and
// missing slot definitions are reseeded, so callers never nil-check.
func (d *ScoreDocument) Normalize() {
	if d.Videos == nil {
		d.Videos = make(map[string]*VideoScoreRecord)
	}
	if d.TimeSlots == nil {
		d.TimeSlots = DefaultTimeSlots()
	}
	if d.Playlists == nil {
		d.Playlists = make(map[string]*PlaylistPerformanceRecord)
	}
	for _, rec := range d.Videos {
		if rec.TimeEffects == nil {
			rec.TimeEffects = DefaultTimeEffects()
		}
	}
}

// Video returns the record for id, or nil when unknown.
func (d *ScoreDocument) Video(id string) *VideoScoreRecord {
	return d.Videos[id]
}

// UpsertVideo applies a metadata update, creating the record on first sight.
func (d *ScoreDocument) UpsertVideo(id string, meta VideoMetadata, now time.Time) *VideoScoreRecord {
	rec, ok := d.Videos[id]
	if !ok {
		rec = NewVideoScoreRecord(meta.Title)
		d.Videos[id] = rec
	}
	UpdateMetadata(rec, meta, now)
	return rec
}

// RecordPlay folds a playback segment into the identified video. It reports
// false without touching the document when the video was never registered;
// a play can only be recorded against known metadata.
func (d *ScoreDocument) RecordPlay(id string, slot SlotName, sample StreamMetrics, now time.Time) bool {
	rec, ok := d.Videos[id]
	if !ok {
		return false
	}
	RecordStreamSample(rec, slot, sample, now)
	return true
}
