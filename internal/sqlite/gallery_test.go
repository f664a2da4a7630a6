package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumafolio/studio-core/internal/domain/gallery"
	"github.com/lumafolio/studio-core/internal/domain/scoring"
	"github.com/lumafolio/studio-core/internal/repository"
)

func insertGallery(t *testing.T, db *DB, id, tenantID string) *gallery.Gallery {
	t.Helper()
	now := time.Now().UTC()
	g := &gallery.Gallery{
		ID:         id,
		ShootID:    "shoot1",
		Status:     gallery.StatusProcessing,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	require.NoError(t, NewGalleryRepository(db).Create(context.Background(), tenantID, g))
	return g
}

func scoredPhoto(id, galleryID string, takenAt time.Time) *gallery.Photo {
	quality := 91.5
	emotional := 7.0
	return &gallery.Photo{
		ID:               id,
		GalleryID:        galleryID,
		TakenAt:          takenAt,
		Camera:           "R5",
		Lens:             "RF 50mm",
		Settings:         gallery.CameraSettings{Aperture: 1.8, ShutterSpeed: "1/200", ISO: 400, FocalLength: 50},
		QualityScore:     &quality,
		TechnicalQuality: &scoring.TechnicalQuality{Sharpness: 95, Exposure: 90, Composition: 89.5},
		EmotionalImpact:  &emotional,
		Category:         "portrait",
		IsHighlight:      true,
		AIReasoning:      "quality 91.5 led by sharpness 95.0",
		Selected:         true,
	}
}

func TestGalleryRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	insertGallery(t, db, "g1", "tenant1")

	loaded, err := NewGalleryRepository(db).Get(ctx, "tenant1", "g1")
	require.NoError(t, err)
	require.Equal(t, "tenant1", loaded.TenantID)
	require.Equal(t, "shoot1", loaded.ShootID)
	require.Equal(t, gallery.StatusProcessing, loaded.Status)
	require.False(t, loaded.AICurated)
	require.Nil(t, loaded.CurationData)

	_, err = NewGalleryRepository(db).Get(ctx, "tenant2", "g1")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestGalleryRepository_SaveCurationRun(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewGalleryRepository(db)
	photoRepo := NewPhotoRepository(db)

	g := insertGallery(t, db, "g1", "tenant1")
	takenAt := time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)

	// One photo exists before the run; the second arrives with the batch.
	existing := &gallery.Photo{ID: "p1", GalleryID: "g1", TakenAt: takenAt}
	require.NoError(t, photoRepo.Create(ctx, "tenant1", existing))

	ranAt := time.Now().UTC()
	g.Status = gallery.StatusReady
	g.TotalPhotos = 2
	g.SelectedPhotos = 1
	g.AICurated = true
	g.ModifiedAt = ranAt
	g.CurationData = &gallery.CurationData{
		RanAt:              ranAt,
		Weights:            scoring.Weights{Sharpness: 1, Exposure: 1, Composition: 1},
		HighlightThreshold: 90,
		TargetCount:        1,
		AutoSelected:       1,
	}

	scored := scoredPhoto("p1", "g1", takenAt)
	fresh := scoredPhoto("p2", "g1", takenAt.Add(time.Minute))
	fresh.Selected = false
	fresh.IsHighlight = false

	err := repo.SaveCurationRun(ctx, "tenant1", g, []*gallery.Photo{scored, fresh})
	require.NoError(t, err)

	loaded, err := repo.Get(ctx, "tenant1", "g1")
	require.NoError(t, err)
	require.Equal(t, gallery.StatusReady, loaded.Status)
	require.Equal(t, 2, loaded.TotalPhotos)
	require.Equal(t, 1, loaded.SelectedPhotos)
	require.True(t, loaded.AICurated)
	require.NotNil(t, loaded.CurationData)
	require.Equal(t, 90.0, loaded.CurationData.HighlightThreshold)
	require.Equal(t, 1, loaded.CurationData.TargetCount)
	require.True(t, loaded.CurationData.RanAt.Equal(ranAt))

	photos, err := photoRepo.ListByGallery(ctx, "tenant1", "g1")
	require.NoError(t, err)
	require.Len(t, photos, 2)
	require.NotNil(t, photos[0].QualityScore)
	require.Equal(t, 91.5, *photos[0].QualityScore)
	require.Equal(t, &scoring.TechnicalQuality{Sharpness: 95, Exposure: 90, Composition: 89.5}, photos[0].TechnicalQuality)
	require.True(t, photos[0].Selected)
	require.Equal(t, "p2", photos[1].ID)
	require.False(t, photos[1].Selected)
}

func TestGalleryRepository_SaveCurationRunMissingGallery(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	g := &gallery.Gallery{ID: "missing", Status: gallery.StatusReady}
	err := NewGalleryRepository(db).SaveCurationRun(ctx, "tenant1", g, nil)
	require.Equal(t, repository.ErrNotFound, err)
}

func TestGalleryRepository_ListSummaries(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewGalleryRepository(db)
	photoRepo := NewPhotoRepository(db)

	insertGallery(t, db, "g1", "tenant1")
	insertGallery(t, db, "g2", "tenant1")
	insertGallery(t, db, "g3", "tenant2")

	takenAt := time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)
	p1 := scoredPhoto("p1", "g1", takenAt)
	p2 := scoredPhoto("p2", "g1", takenAt.Add(time.Minute))
	p2.Selected = false
	p2.IsHighlight = false
	require.NoError(t, photoRepo.Create(ctx, "tenant1", p1))
	require.NoError(t, photoRepo.Create(ctx, "tenant1", p2))

	summaries, err := repo.List(ctx, "tenant1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := make(map[string]repository.GallerySummary)
	for _, s := range summaries {
		byID[s.ID] = s
	}
	require.Equal(t, 2, byID["g1"].TotalPhotos)
	require.Equal(t, 1, byID["g1"].SelectedPhotos)
	require.Equal(t, 1, byID["g1"].HighlightCount)
	require.Equal(t, 0, byID["g2"].TotalPhotos)
}
