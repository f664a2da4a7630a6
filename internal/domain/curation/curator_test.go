package curation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumafolio/studio-core/internal/domain/gallery"
	"github.com/lumafolio/studio-core/internal/domain/scoring"
)

var batchBase = time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)

func fp(v float64) *float64 { return &v }

// metricsForQuality builds metrics that score to exactly q under the default
// config: sharpness and composition at v, zero exposure deviation, so the
// equal-weight quality is (2v+100)/3.
func metricsForQuality(q float64) scoring.RawPhotoMetrics {
	v := (3*q - 100) / 2
	return scoring.RawPhotoMetrics{
		Sharpness:   fp(v),
		Exposure:    fp(0),
		Composition: fp(v),
	}
}

func testGallery() *gallery.Gallery {
	return &gallery.Gallery{
		ID:       "gal1",
		TenantID: "tenant1",
		ShootID:  "shoot1",
		Status:   gallery.StatusProcessing,
	}
}

// qualityBatch builds a batch of photos whose qualities will come out as the
// given values, with capture times a minute apart in input order.
func qualityBatch(qualities ...float64) []PhotoInput {
	batch := make([]PhotoInput, len(qualities))
	for i, q := range qualities {
		batch[i] = PhotoInput{
			Photo: &gallery.Photo{
				ID:        fmt.Sprintf("photo%02d", i),
				TenantID:  "tenant1",
				GalleryID: "gal1",
				TakenAt:   batchBase.Add(time.Duration(i) * time.Minute),
			},
			Metrics: metricsForQuality(q),
		}
	}
	return batch
}

func newTestCurator() *Curator {
	return NewCurator(scoring.NewScorer(scoring.DefaultConfig()), DefaultCuratorConfig(), nil)
}

func selectedIDs(batch []PhotoInput) []string {
	var ids []string
	for _, input := range batch {
		if input.Photo.Selected {
			ids = append(ids, input.Photo.ID)
		}
	}
	return ids
}

func TestCurator_DefaultTargetAndHighlights(t *testing.T) {
	curator := newTestCurator()
	g := testGallery()
	batch := qualityBatch(100, 94, 88, 82, 76, 70, 64, 58, 52, 46)

	result, err := curator.Curate(context.Background(), g, batch, nil)
	require.NoError(t, err)

	// 10 photos at the default 0.35 ratio rounds to a target of 4.
	require.Equal(t, 4, result.SelectedCount)
	require.ElementsMatch(t, []string{"photo00", "photo01", "photo02", "photo03"}, selectedIDs(batch))

	// Threshold is the lower of the top-10% cutoff (100) and the absolute
	// floor (90), so the 100 and 94 photos are highlights.
	require.Equal(t, 2, result.HighlightCount)
	require.True(t, batch[0].Photo.IsHighlight)
	require.True(t, batch[1].Photo.IsHighlight)
	require.False(t, batch[2].Photo.IsHighlight)

	require.Equal(t, 10, g.TotalPhotos)
	require.Equal(t, 4, g.SelectedPhotos)
	require.True(t, g.AICurated)
	require.NotNil(t, g.CurationData)
	require.Equal(t, 4, g.CurationData.TargetCount)
	require.Equal(t, 4, g.CurationData.AutoSelected)
	require.Equal(t, 90.0, g.CurationData.HighlightThreshold)
	require.Equal(t, 0, g.CurationData.SkippedErrors)

	for _, input := range batch {
		require.NotNil(t, input.Photo.QualityScore)
		require.NotNil(t, input.Photo.TechnicalQuality)
		require.NotNil(t, input.Photo.EmotionalImpact)
		require.NotEmpty(t, input.Photo.AIReasoning)
		require.False(t, input.Photo.Selected && input.Photo.Rejected)
	}
}

func TestCurator_ExplicitTarget(t *testing.T) {
	curator := newTestCurator()
	batch := qualityBatch(100, 94, 88, 82, 76)

	target := 2
	result, err := curator.Curate(context.Background(), testGallery(), batch, &target)
	require.NoError(t, err)
	require.Equal(t, 2, result.SelectedCount)
	require.Equal(t, []string{"photo00", "photo01"}, selectedIDs(batch))
}

func TestCurator_TopFractionThreshold(t *testing.T) {
	curator := newTestCurator()
	g := testGallery()
	batch := qualityBatch(88, 82, 76, 70)

	// All four selected; every quality sits below the absolute floor, so the
	// top-10% cutoff (the single best photo) sets the threshold.
	target := 4
	result, err := curator.Curate(context.Background(), g, batch, &target)
	require.NoError(t, err)
	require.Equal(t, 4, result.SelectedCount)
	require.Equal(t, 1, result.HighlightCount)
	require.True(t, batch[0].Photo.IsHighlight)
	require.False(t, batch[1].Photo.IsHighlight)
	require.Equal(t, 88.0, g.CurationData.HighlightThreshold)
}

func TestCurator_HumanDecisionsPreserved(t *testing.T) {
	curator := newTestCurator()
	batch := qualityBatch(100, 94, 88, 82, 76, 70)

	// A human already kept the worst photo and rejected the best.
	batch[5].Photo.Selected = true
	batch[0].Photo.Rejected = true
	batch[0].Photo.RejectionReason = "eyes closed"

	target := 4
	result, err := curator.Curate(context.Background(), testGallery(), batch, &target)
	require.NoError(t, err)

	require.Equal(t, 4, result.SelectedCount)
	// The kept photo counts against the target, leaving three auto slots for
	// the best undecided photos.
	require.ElementsMatch(t, []string{"photo01", "photo02", "photo03", "photo05"}, selectedIDs(batch))
	require.True(t, batch[0].Photo.Rejected)
	require.False(t, batch[0].Photo.Selected)
	// Scoring still runs on decided photos.
	require.NotNil(t, batch[0].Photo.QualityScore)
	require.NotNil(t, batch[5].Photo.QualityScore)
}

func TestCurator_PerPhotoErrorsTolerated(t *testing.T) {
	curator := newTestCurator()
	batch := qualityBatch(100, 94, 88, 82)
	batch[1].Metrics.Sharpness = nil
	batch[3].Metrics = scoring.RawPhotoMetrics{}

	target := 2
	result, err := curator.Curate(context.Background(), testGallery(), batch, &target)
	require.NoError(t, err)

	require.Len(t, result.Errors, 2)
	var failedIDs []string
	for _, pe := range result.Errors {
		failedIDs = append(failedIDs, pe.PhotoID)
		require.NotEmpty(t, pe.Reason)
	}
	require.ElementsMatch(t, []string{"photo01", "photo03"}, failedIDs)

	// Failed photos stay unscored and out of the ranking.
	require.Nil(t, batch[1].Photo.QualityScore)
	require.Nil(t, batch[3].Photo.QualityScore)
	require.Equal(t, []string{"photo00", "photo02"}, selectedIDs(batch))
}

func TestCurator_RerunIsStable(t *testing.T) {
	curator := newTestCurator()
	g := testGallery()
	batch := qualityBatch(100, 94, 88, 82, 76, 70, 64, 58)

	first, err := curator.Curate(context.Background(), g, batch, nil)
	require.NoError(t, err)
	firstSelected := selectedIDs(batch)

	second, err := curator.Curate(context.Background(), g, batch, nil)
	require.NoError(t, err)

	require.Equal(t, first.SelectedCount, second.SelectedCount)
	require.Equal(t, firstSelected, selectedIDs(batch))
}

func TestCurator_EmptyBatch(t *testing.T) {
	curator := newTestCurator()
	_, err := curator.Curate(context.Background(), testGallery(), nil, nil)
	require.ErrorIs(t, err, ErrCurationAborted)
}

func TestCurator_NegativeTarget(t *testing.T) {
	curator := newTestCurator()
	batch := qualityBatch(100)
	target := -1
	_, err := curator.Curate(context.Background(), testGallery(), batch, &target)
	require.ErrorIs(t, err, ErrCurationAborted)
}

func TestCurator_CanceledContextLeavesPhotosUntouched(t *testing.T) {
	curator := newTestCurator()
	batch := qualityBatch(100, 94, 88, 82)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := curator.Curate(ctx, testGallery(), batch, nil)
	require.ErrorIs(t, err, ErrCurationAborted)
	require.ErrorIs(t, err, context.Canceled)

	for _, input := range batch {
		require.Nil(t, input.Photo.QualityScore)
		require.False(t, input.Photo.Selected)
		require.False(t, input.Photo.IsHighlight)
	}
}

func TestCurator_HighlightClearedWhenUnselected(t *testing.T) {
	curator := newTestCurator()
	batch := qualityBatch(100, 94, 88, 82, 76, 70)

	// Stale highlight from an earlier run on a photo that won't make the cut.
	batch[5].Photo.IsHighlight = true

	target := 2
	_, err := curator.Curate(context.Background(), testGallery(), batch, &target)
	require.NoError(t, err)
	require.False(t, batch[5].Photo.Selected)
	require.False(t, batch[5].Photo.IsHighlight)
}

func TestRankCandidates(t *testing.T) {
	at := func(min int) time.Time { return batchBase.Add(time.Duration(min) * time.Minute) }
	photos := []*gallery.Photo{
		{ID: "d", QualityScore: fp(80), EmotionalImpact: fp(5), TakenAt: at(0)},
		{ID: "a", QualityScore: fp(90), EmotionalImpact: fp(5), TakenAt: at(3)},
		{ID: "c", QualityScore: fp(90), EmotionalImpact: fp(5), TakenAt: at(1)},
		{ID: "b", QualityScore: fp(90), EmotionalImpact: fp(8), TakenAt: at(2)},
		{ID: "f", QualityScore: fp(80), EmotionalImpact: fp(5), TakenAt: at(0)},
		{ID: "e", QualityScore: nil, EmotionalImpact: nil, TakenAt: at(0)},
	}

	rankCandidates(photos)

	var order []string
	for _, p := range photos {
		order = append(order, p.ID)
	}
	// Quality desc, then emotional desc, then capture time asc, then ID asc;
	// an unscored photo sorts last.
	require.Equal(t, []string{"b", "c", "a", "d", "f", "e"}, order)
}
