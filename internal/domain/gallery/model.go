package gallery

import (
	"time"

	"github.com/lumafolio/studio-core/internal/domain/scoring"
)

// Status represents the delivery lifecycle of a gallery. Transitions only
// move forward: processing -> ready -> delivered.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusDelivered  Status = "delivered"
)

// statusRank orders statuses for forward-only transition checks.
func statusRank(s Status) int {
	switch s {
	case StatusProcessing:
		return 0
	case StatusReady:
		return 1
	case StatusDelivered:
		return 2
	}
	return -1
}

// CurationData records provenance for the most recent curation run. It is
// overwritten wholesale on every run.
type CurationData struct {
	RanAt              time.Time       `json:"ran_at"`
	Weights            scoring.Weights `json:"weights"`
	HighlightThreshold float64         `json:"highlight_threshold"`
	TargetCount        int             `json:"target_count"`
	AutoSelected       int             `json:"auto_selected"`
	SkippedErrors      int             `json:"skipped_errors"`
}

// Gallery is the delivered photo collection for one shoot.
type Gallery struct {
	ID             string        `json:"id"`
	TenantID       string        `json:"tenant_id"`
	ShootID        string        `json:"shoot_id"`
	Status         Status        `json:"status"`
	TotalPhotos    int           `json:"total_photos"`
	SelectedPhotos int           `json:"selected_photos"`
	AICurated      bool          `json:"ai_curated"`
	CurationData   *CurationData `json:"curation_data,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	ModifiedAt     time.Time     `json:"modified_at"`
}

// Transition moves the gallery to a new status, rejecting backward moves.
func (g *Gallery) Transition(to Status) error {
	fromRank, toRank := statusRank(g.Status), statusRank(to)
	if toRank == -1 {
		return ErrInvalidStatus
	}
	if toRank < fromRank {
		return ErrBackwardTransition
	}
	g.Status = to
	return nil
}

// CameraSettings is the capture exposure data for a photo.
type CameraSettings struct {
	Aperture     float64 `json:"aperture,omitempty"`
	ShutterSpeed string  `json:"shutter_speed,omitempty"`
	ISO          int     `json:"iso,omitempty"`
	FocalLength  float64 `json:"focal_length,omitempty"`
}

// Photo is one photo within a gallery. QualityScore, TechnicalQuality and
// EmotionalImpact stay nil until the first scoring run. Selected and Rejected
// are mutually exclusive; once a human sets either, curation leaves both
// untouched.
type Photo struct {
	ID               string                    `json:"id"`
	TenantID         string                    `json:"tenant_id"`
	GalleryID        string                    `json:"gallery_id"`
	TakenAt          time.Time                 `json:"taken_at"`
	Camera           string                    `json:"camera,omitempty"`
	Lens             string                    `json:"lens,omitempty"`
	Settings         CameraSettings            `json:"settings"`
	QualityScore     *float64                  `json:"quality_score,omitempty"`
	TechnicalQuality *scoring.TechnicalQuality `json:"technical_quality,omitempty"`
	EmotionalImpact  *float64                  `json:"emotional_impact,omitempty"`
	Category         string                    `json:"category,omitempty"`
	IsHighlight      bool                      `json:"is_highlight"`
	AIReasoning      string                    `json:"ai_reasoning,omitempty"`
	Selected         bool                      `json:"selected"`
	Rejected         bool                      `json:"rejected"`
	RejectionReason  string                    `json:"rejection_reason,omitempty"`
}

// HumanDecided reports whether a human already selected or rejected the photo.
func (p *Photo) HumanDecided() bool {
	return p.Selected || p.Rejected
}

// ApplyScore copies a scoring outcome onto the photo's AI-derived fields.
func (p *Photo) ApplyScore(score scoring.Score) {
	quality := score.Quality
	emotional := score.EmotionalImpact
	tech := score.Technical
	p.QualityScore = &quality
	p.TechnicalQuality = &tech
	p.EmotionalImpact = &emotional
	p.Category = score.Category
	p.AIReasoning = score.Reasoning
}
