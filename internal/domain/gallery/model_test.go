package gallery

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumafolio/studio-core/internal/domain/scoring"
)

func TestGallery_Transition(t *testing.T) {
	g := &Gallery{Status: StatusProcessing}

	require.NoError(t, g.Transition(StatusReady))
	require.Equal(t, StatusReady, g.Status)

	require.NoError(t, g.Transition(StatusDelivered))
	require.Equal(t, StatusDelivered, g.Status)

	err := g.Transition(StatusProcessing)
	require.ErrorIs(t, err, ErrBackwardTransition)
	require.Equal(t, StatusDelivered, g.Status)
}

func TestGallery_TransitionSameStatus(t *testing.T) {
	g := &Gallery{Status: StatusReady}
	require.NoError(t, g.Transition(StatusReady))
	require.Equal(t, StatusReady, g.Status)
}

func TestGallery_TransitionInvalidStatus(t *testing.T) {
	g := &Gallery{Status: StatusProcessing}
	err := g.Transition(Status("archived"))
	require.ErrorIs(t, err, ErrInvalidStatus)
	require.Equal(t, StatusProcessing, g.Status)
}

func TestPhoto_HumanDecided(t *testing.T) {
	require.False(t, (&Photo{}).HumanDecided())
	require.True(t, (&Photo{Selected: true}).HumanDecided())
	require.True(t, (&Photo{Rejected: true}).HumanDecided())
}

func TestPhoto_ApplyScore(t *testing.T) {
	p := &Photo{ID: "photo1"}
	p.ApplyScore(scoring.Score{
		Quality:         87.5,
		Technical:       scoring.TechnicalQuality{Sharpness: 90, Exposure: 85, Composition: 87.5},
		EmotionalImpact: 7.0,
		Category:        "portrait",
		Reasoning:       "quality 87.5 led by sharpness 90.0",
	})

	require.NotNil(t, p.QualityScore)
	require.Equal(t, 87.5, *p.QualityScore)
	require.NotNil(t, p.TechnicalQuality)
	require.Equal(t, 90.0, p.TechnicalQuality.Sharpness)
	require.NotNil(t, p.EmotionalImpact)
	require.Equal(t, 7.0, *p.EmotionalImpact)
	require.Equal(t, "portrait", p.Category)
	require.NotEmpty(t, p.AIReasoning)
}
