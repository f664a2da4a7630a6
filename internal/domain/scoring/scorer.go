package scoring

import (
	"fmt"
	"math"
	"strings"
)

// Range maps a raw metric interval onto the 0-100 scale. Inputs outside the
// interval are clamped, never rejected. Invert flips the scale for metrics
// where lower raw values are better (exposure deviation).
type Range struct {
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Invert bool    `yaml:"invert"`
}

// Weights holds the technical sub-score weights for the composite quality.
type Weights struct {
	Sharpness   float64 `yaml:"sharpness"`
	Exposure    float64 `yaml:"exposure"`
	Composition float64 `yaml:"composition"`
}

// Rule classifies a photo from its raw signals. Nil bounds are unconstrained;
// a bound on an absent signal fails the rule. The first matching rule in the
// configured order wins.
type Rule struct {
	Category      string   `yaml:"category"`
	MinFaceArea   *float64 `yaml:"min_face_area,omitempty"`
	MaxFaceArea   *float64 `yaml:"max_face_area,omitempty"`
	MinFaceCount  *int     `yaml:"min_face_count,omitempty"`
	MinExpression *float64 `yaml:"min_expression,omitempty"`
	MinFrameWidth *float64 `yaml:"min_frame_width,omitempty"`
	MaxFrameWidth *float64 `yaml:"max_frame_width,omitempty"`
}

// Config tunes the scorer.
type Config struct {
	Weights     Weights `yaml:"weights"`
	Sharpness   Range   `yaml:"sharpness"`
	Exposure    Range   `yaml:"exposure"`
	Composition Range   `yaml:"composition"`
	Rules       []Rule  `yaml:"rules"`
}

// DefaultConfig returns equal technical weights, pass-through 0-100 clamps
// for sharpness/composition, a 0-3 stop inverted scale for exposure
// deviation, and the stock category rules.
func DefaultConfig() Config {
	return Config{
		Weights:     Weights{Sharpness: 1, Exposure: 1, Composition: 1},
		Sharpness:   Range{Min: 0, Max: 100},
		Exposure:    Range{Min: 0, Max: 3, Invert: true},
		Composition: Range{Min: 0, Max: 100},
		Rules: []Rule{
			{Category: "landscape_detail", MaxFaceArea: floatPtr(0.05), MinFrameWidth: floatPtr(1.3)},
			{Category: "group", MinFaceCount: intPtr(4)},
			{Category: "portrait", MinFaceArea: floatPtr(0.15)},
			{Category: "candid", MinExpression: floatPtr(0.6)},
		},
	}
}

// Scorer computes photo scores from raw metrics. It is pure and safe for
// concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer. A zero-weight config falls back to equal weights.
func NewScorer(cfg Config) *Scorer {
	if cfg.Weights.Sharpness+cfg.Weights.Exposure+cfg.Weights.Composition <= 0 {
		cfg.Weights = Weights{Sharpness: 1, Exposure: 1, Composition: 1}
	}
	return &Scorer{cfg: cfg}
}

// Weights returns the technical weights in effect, for run provenance.
func (s *Scorer) Weights() Weights {
	return s.cfg.Weights
}

// Score evaluates one photo's metrics. Failures are scoped to the photo: a
// missing or malformed required metric returns a *Error and nothing else.
func (s *Scorer) Score(metrics RawPhotoMetrics) (Score, error) {
	sharp, err := requireMetric("sharpness", metrics.Sharpness)
	if err != nil {
		return Score{}, err
	}
	exposure, err := requireMetric("exposure", metrics.Exposure)
	if err != nil {
		return Score{}, err
	}
	comp, err := requireMetric("composition", metrics.Composition)
	if err != nil {
		return Score{}, err
	}

	tech := TechnicalQuality{
		Sharpness: normalize(sharp, s.cfg.Sharpness),
		// Exposure arrives as deviation in stops; magnitude is what matters.
		Exposure:    normalize(math.Abs(exposure), s.cfg.Exposure),
		Composition: normalize(comp, s.cfg.Composition),
	}

	w := s.cfg.Weights
	totalWeight := w.Sharpness + w.Exposure + w.Composition
	quality := (tech.Sharpness*w.Sharpness + tech.Exposure*w.Exposure + tech.Composition*w.Composition) / totalWeight
	quality = roundTenth(clamp(quality, 0, 100))

	emotional := s.emotionalImpact(metrics)
	category := s.categorize(metrics)

	return Score{
		Quality:         quality,
		Technical:       tech,
		EmotionalImpact: emotional,
		Category:        category,
		Reasoning:       buildReasoning(tech, quality, emotional, category),
	}, nil
}

// emotionalImpact maps expression/moment signals onto 0-10. Absent signals
// score a neutral 5.0.
func (s *Scorer) emotionalImpact(metrics RawPhotoMetrics) float64 {
	sum := 0.0
	n := 0
	if metrics.Expression != nil && !math.IsNaN(*metrics.Expression) {
		sum += clamp(*metrics.Expression, 0, 1)
		n++
	}
	if metrics.Moment != nil && !math.IsNaN(*metrics.Moment) {
		sum += clamp(*metrics.Moment, 0, 1)
		n++
	}
	if n == 0 {
		return 5.0
	}
	return roundTenth(sum / float64(n) * 10)
}

func (s *Scorer) categorize(metrics RawPhotoMetrics) string {
	for _, rule := range s.cfg.Rules {
		if ruleMatches(rule, metrics) {
			return rule.Category
		}
	}
	return "general"
}

func ruleMatches(rule Rule, m RawPhotoMetrics) bool {
	if rule.MinFaceArea != nil && (m.FaceArea == nil || *m.FaceArea < *rule.MinFaceArea) {
		return false
	}
	if rule.MaxFaceArea != nil && (m.FaceArea == nil || *m.FaceArea > *rule.MaxFaceArea) {
		return false
	}
	if rule.MinFaceCount != nil && (m.FaceCount == nil || *m.FaceCount < *rule.MinFaceCount) {
		return false
	}
	if rule.MinExpression != nil && (m.Expression == nil || *m.Expression < *rule.MinExpression) {
		return false
	}
	if rule.MinFrameWidth != nil && (m.FrameWidth == nil || *m.FrameWidth < *rule.MinFrameWidth) {
		return false
	}
	if rule.MaxFrameWidth != nil && (m.FrameWidth == nil || *m.FrameWidth > *rule.MaxFrameWidth) {
		return false
	}
	return true
}

// buildReasoning produces the short provenance string. It always names at
// least one concrete metric.
func buildReasoning(tech TechnicalQuality, quality, emotional float64, category string) string {
	strongest, strongestVal := "sharpness", tech.Sharpness
	weakest, weakestVal := "sharpness", tech.Sharpness
	for _, sub := range []struct {
		name  string
		value float64
	}{
		{"exposure", tech.Exposure},
		{"composition", tech.Composition},
	} {
		if sub.value > strongestVal {
			strongest, strongestVal = sub.name, sub.value
		}
		if sub.value < weakestVal {
			weakest, weakestVal = sub.name, sub.value
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "quality %.1f led by %s %.1f", quality, strongest, strongestVal)
	if weakest != strongest {
		fmt.Fprintf(&b, ", held back by %s %.1f", weakest, weakestVal)
	}
	fmt.Fprintf(&b, "; emotional impact %.1f; categorized %s", emotional, category)
	return b.String()
}

func requireMetric(name string, value *float64) (float64, error) {
	if value == nil {
		return 0, &Error{Metric: name, Err: ErrMissingMetric}
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return 0, &Error{Metric: name, Err: ErrMalformedMetric}
	}
	return *value, nil
}

func normalize(value float64, r Range) float64 {
	if r.Max <= r.Min {
		return 0
	}
	scaled := (value - r.Min) / (r.Max - r.Min) * 100
	scaled = clamp(scaled, 0, 100)
	if r.Invert {
		scaled = 100 - scaled
	}
	return scaled
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
