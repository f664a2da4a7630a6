package curation

import (
	"github.com/lumafolio/studio-core/internal/domain/gallery"
	"github.com/lumafolio/studio-core/internal/domain/scoring"
)

// PhotoInput pairs a gallery photo with the raw metrics the upstream
// analysis pipeline produced for it.
type PhotoInput struct {
	Photo   *gallery.Photo
	Metrics scoring.RawPhotoMetrics
}

// PhotoError records a per-photo scoring failure. The photo stays unscored
// and is excluded from ranking; the run itself continues.
type PhotoError struct {
	PhotoID string `json:"photo_id"`
	Reason  string `json:"reason"`
}

// Result summarizes one curation run.
type Result struct {
	SelectedCount  int          `json:"selected_count"`
	HighlightCount int          `json:"highlight_count"`
	Errors         []PhotoError `json:"errors,omitempty"`
}
