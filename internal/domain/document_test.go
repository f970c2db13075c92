package domain

import (
	"testing"
)

func TestUpsertVideo_SeedsNewRecord(t *testing.T) {
	doc := NewScoreDocument()

	rec := doc.UpsertVideo("abc", VideoMetadata{Title: "First", ViewCount: 42}, testNow())

	if rec.Title != "First" {
		t.Errorf("title = %q, want %q", rec.Title, "First")
	}
	if len(rec.TimeEffects) != 4 {
		t.Errorf("time effects seeded with %d slots, want 4", len(rec.TimeEffects))
	}
	if rec.StreamMetrics.TimesPlayed != 0 {
		t.Error("fresh record should have zero plays")
	}
	if !rec.HasScores() {
		t.Error("upsert must compute scores")
	}
}

func TestUpsertVideo_UpdatesInPlace(t *testing.T) {
	doc := NewScoreDocument()

	doc.UpsertVideo("abc", VideoMetadata{Title: "v", ViewCount: 100}, testNow())
	doc.Videos["abc"].TimeEffects[SlotUSPrimeTime] = 2.0

	doc.UpsertVideo("abc", VideoMetadata{Title: "v", ViewCount: 5000}, testNow())

	if len(doc.Videos) != 1 {
		t.Fatalf("video count = %d, want 1", len(doc.Videos))
	}
	if doc.Videos["abc"].YouTubeViews != 5000 {
		t.Errorf("views = %d, want 5000", doc.Videos["abc"].YouTubeViews)
	}
	// A metadata update must not reset per-video slot tuning.
	if doc.Videos["abc"].TimeEffects[SlotUSPrimeTime] != 2.0 {
		t.Error("custom time effect lost on update")
	}
}

func TestRecordPlay_UnknownVideoIsNoOp(t *testing.T) {
	doc := NewScoreDocument()
	doc.UpsertVideo("known", VideoMetadata{Title: "v", ViewCount: 10}, testNow())

	ok := doc.RecordPlay("ghost", SlotUKEvening, StreamMetrics{ChatMessages: 5}, testNow())

	if ok {
		t.Error("recording against an unknown id must report false")
	}
	if len(doc.Videos) != 1 {
		t.Errorf("video map changed: %d entries, want 1", len(doc.Videos))
	}
	if _, exists := doc.Videos["ghost"]; exists {
		t.Error("no record may be created for an unknown id")
	}
}

func TestNormalize_RepairsLoadedDocument(t *testing.T) {
	doc := &ScoreDocument{
		Videos: map[string]*VideoScoreRecord{
			"a": {Title: "loaded without effects"},
		},
	}

	doc.Normalize()

	if doc.TimeSlots == nil || doc.Playlists == nil {
		t.Fatal("nil maps must be allocated")
	}
	if len(doc.Videos["a"].TimeEffects) != 4 {
		t.Errorf("record effects reseeded with %d slots, want 4", len(doc.Videos["a"].TimeEffects))
	}
}
