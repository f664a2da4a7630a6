package scoring

// RawPhotoMetrics is the upstream analysis contract for one photo. The three
// technical metrics are required; face/expression signals are optional and
// absent signals fall back to neutral scoring.
type RawPhotoMetrics struct {
	Sharpness   *float64 `json:"sharpness,omitempty"`
	Exposure    *float64 `json:"exposure,omitempty"`
	Composition *float64 `json:"composition,omitempty"`
	FaceArea    *float64 `json:"face_area,omitempty"`
	FaceCount   *int     `json:"face_count,omitempty"`
	Expression  *float64 `json:"expression,omitempty"`
	Moment      *float64 `json:"moment,omitempty"`
	FrameWidth  *float64 `json:"frame_width,omitempty"`
}

// TechnicalQuality holds the normalized 0-100 technical sub-scores.
type TechnicalQuality struct {
	Sharpness   float64 `json:"sharpness"`
	Exposure    float64 `json:"exposure"`
	Composition float64 `json:"composition"`
}

// Score is the full scoring outcome for one photo.
type Score struct {
	Quality         float64          `json:"quality"`
	Technical       TechnicalQuality `json:"technical"`
	EmotionalImpact float64          `json:"emotional_impact"`
	Category        string           `json:"category"`
	Reasoning       string           `json:"reasoning"`
}
