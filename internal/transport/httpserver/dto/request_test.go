package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-queue-service/internal/domain"
	"smart-queue-service/internal/validator"
)

func newTestValidator() *validator.Validator {
	return validator.New()
}

// TestQueueRequest_Validation_Valid tests valid queue requests.
func TestQueueRequest_Validation_Valid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name string
		req  QueueRequest
	}{
		{
			name: "empty request",
			req:  QueueRequest{},
		},
		{
			name: "explicit slot",
			req:  QueueRequest{Slot: "US_PrimeTime"},
		},
		{
			name: "all slots accepted",
			req:  QueueRequest{Slot: "Low_Traffic"},
		},
		{
			name: "full request",
			req: QueueRequest{
				Slot:       "UK_Evening",
				Limit:      50,
				IncludeNew: "false",
				PlaylistID: "PLabc123",
			},
		},
		{
			name: "max limit",
			req:  QueueRequest{Limit: 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			assert.NoError(t, err)
		})
	}
}

// TestQueueRequest_Validation_Invalid tests invalid queue requests.
func TestQueueRequest_Validation_Invalid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name string
		req  QueueRequest
	}{
		{
			name: "unknown slot",
			req:  QueueRequest{Slot: "Mars_Morning"},
		},
		{
			name: "limit above maximum",
			req:  QueueRequest{Limit: 501},
		},
		{
			name: "include_new not a bool literal",
			req:  QueueRequest{IncludeNew: "yes"},
		},
		{
			name: "playlist id too long",
			req:  QueueRequest{PlaylistID: strings.Repeat("x", 101)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			assert.Error(t, err)
		})
	}
}

func TestQueueRequest_ToQueueParams_Defaults(t *testing.T) {
	req := QueueRequest{}
	params := req.ToQueueParams()

	assert.Equal(t, domain.SlotName(""), params.Slot)
	assert.Equal(t, defaultQueueLimit, params.Limit)
	assert.True(t, params.IncludeNewReleases)
	assert.Empty(t, params.PlaylistID)
}

func TestQueueRequest_ToQueueParams_DisableNewReleases(t *testing.T) {
	req := QueueRequest{IncludeNew: "false", Limit: 5, Slot: "PH_Evening"}
	params := req.ToQueueParams()

	assert.False(t, params.IncludeNewReleases)
	assert.Equal(t, 5, params.Limit)
	assert.Equal(t, domain.SlotPHEvening, params.Slot)
}

// TestUpdateMetadataRequest_Validation tests the metadata upsert body.
func TestUpdateMetadataRequest_Validation(t *testing.T) {
	v := newTestValidator()

	valid := UpdateMetadataRequest{
		Title:        "Lofi Beats Vol. 3",
		ViewCount:    125000,
		CommentCount: 2400,
		UploadDate:   "20250601",
	}
	require.NoError(t, v.Validate(&valid))

	tests := []struct {
		name string
		req  UpdateMetadataRequest
	}{
		{
			name: "missing title",
			req:  UpdateMetadataRequest{ViewCount: 10},
		},
		{
			name: "negative view count",
			req:  UpdateMetadataRequest{Title: "x", ViewCount: -1},
		},
		{
			name: "negative comment count",
			req:  UpdateMetadataRequest{Title: "x", CommentCount: -5},
		},
		{
			name: "upload date wrong length",
			req:  UpdateMetadataRequest{Title: "x", UploadDate: "2025-06-01"},
		},
		{
			name: "upload date not numeric",
			req:  UpdateMetadataRequest{Title: "x", UploadDate: "2025junA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			assert.Error(t, err)
		})
	}
}

func TestUpdateMetadataRequest_ToDomain(t *testing.T) {
	req := UpdateMetadataRequest{
		Title:        "Synthwave Mix",
		ViewCount:    5000,
		CommentCount: 120,
		UploadDate:   "20250810",
		PlaylistID:   "PLxyz",
		IsNewRelease: true,
	}

	meta := req.ToDomain("vid42")

	assert.Equal(t, "vid42", meta.ID)
	assert.Equal(t, "Synthwave Mix", meta.Title)
	assert.Equal(t, 5000, meta.ViewCount)
	assert.Equal(t, "20250810", meta.UploadDate)
	assert.Equal(t, "PLxyz", meta.PlaylistID)
	assert.True(t, meta.NewReleaseHint)
}

// TestPlayEventRequest tests play event validation and conversion.
func TestPlayEventRequest(t *testing.T) {
	v := newTestValidator()

	req := PlayEventRequest{
		TimeSlot:                  "US_PrimeTime",
		ChatMessages:              340,
		ViewerChange:              -12,
		AvgViewersDuringSegment:   190,
		ReturningViewerPercentage: 0.42,
	}
	require.NoError(t, v.Validate(&req))

	metrics := req.ToDomain()
	assert.Equal(t, 340, metrics.ChatMessages)
	assert.Equal(t, -12, metrics.ViewerChange)
	assert.Equal(t, 190, metrics.AvgViewersDuringSegment)
	assert.InDelta(t, 0.42, metrics.ReturningViewerPercentage, 1e-9)
	assert.Zero(t, metrics.TimesPlayed, "play count must never come from the client")

	invalid := PlayEventRequest{ReturningViewerPercentage: 1.5}
	assert.Error(t, v.Validate(&invalid))

	badSlot := PlayEventRequest{TimeSlot: "Midnight"}
	assert.Error(t, v.Validate(&badSlot))
}

func TestPlaylistSampleRequest_Validation(t *testing.T) {
	v := newTestValidator()

	require.NoError(t, v.Validate(&PlaylistSampleRequest{Name: "Chill Mix", ViewerChange: -40}))
	assert.Error(t, v.Validate(&PlaylistSampleRequest{ViewerChange: 10}), "name is required")
}
