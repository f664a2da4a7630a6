package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumafolio/studio-core/internal/domain/gallery"
	"github.com/lumafolio/studio-core/internal/repository"
)

func TestPhotoRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewPhotoRepository(db)

	insertGallery(t, db, "g1", "tenant1")
	takenAt := time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)

	photo := &gallery.Photo{
		ID:        "p1",
		GalleryID: "g1",
		TakenAt:   takenAt,
		Camera:    "R5",
		Lens:      "RF 50mm",
		Settings:  gallery.CameraSettings{Aperture: 1.8, ShutterSpeed: "1/200", ISO: 400, FocalLength: 50},
	}
	require.NoError(t, repo.Create(ctx, "tenant1", photo))

	loaded, err := repo.Get(ctx, "tenant1", "p1")
	require.NoError(t, err)
	require.Equal(t, "tenant1", loaded.TenantID)
	require.Equal(t, "g1", loaded.GalleryID)
	require.Equal(t, photo.Settings, loaded.Settings)
	// Unscored until the first curation run.
	require.Nil(t, loaded.QualityScore)
	require.Nil(t, loaded.TechnicalQuality)
	require.Nil(t, loaded.EmotionalImpact)
	require.False(t, loaded.Selected)
	require.False(t, loaded.Rejected)

	_, err = repo.Get(ctx, "tenant2", "p1")
	require.Equal(t, repository.ErrNotFound, err)

	require.Equal(t, repository.ErrDuplicate, repo.Create(ctx, "tenant1", photo))
}

func TestPhotoRepository_CreateUnknownGallery(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewPhotoRepository(db)

	photo := &gallery.Photo{ID: "p1", GalleryID: "missing", TakenAt: time.Now().UTC()}
	err := repo.Create(ctx, "tenant1", photo)
	require.Equal(t, repository.ErrForeignKeyViolation, err)
}

func TestPhotoRepository_ListByGalleryOrder(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewPhotoRepository(db)

	insertGallery(t, db, "g1", "tenant1")
	base := time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)

	// Inserted out of capture order, with a tie broken by ID.
	for _, p := range []*gallery.Photo{
		{ID: "p3", GalleryID: "g1", TakenAt: base.Add(2 * time.Minute)},
		{ID: "p1", GalleryID: "g1", TakenAt: base},
		{ID: "p2b", GalleryID: "g1", TakenAt: base.Add(time.Minute)},
		{ID: "p2a", GalleryID: "g1", TakenAt: base.Add(time.Minute)},
	} {
		require.NoError(t, repo.Create(ctx, "tenant1", p))
	}

	photos, err := repo.ListByGallery(ctx, "tenant1", "g1")
	require.NoError(t, err)

	var ids []string
	for _, p := range photos {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"p1", "p2a", "p2b", "p3"}, ids)
}

func TestPhotoRepository_SetHumanDecision(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewPhotoRepository(db)

	insertGallery(t, db, "g1", "tenant1")
	photo := &gallery.Photo{ID: "p1", GalleryID: "g1", TakenAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, "tenant1", photo))

	require.NoError(t, repo.SetHumanDecision(ctx, "tenant1", "p1", false, true, "eyes closed"))

	loaded, err := repo.Get(ctx, "tenant1", "p1")
	require.NoError(t, err)
	require.False(t, loaded.Selected)
	require.True(t, loaded.Rejected)
	require.Equal(t, "eyes closed", loaded.RejectionReason)

	// Selected and rejected are mutually exclusive.
	err = repo.SetHumanDecision(ctx, "tenant1", "p1", true, true, "")
	require.Equal(t, repository.ErrInvalidInput, err)

	err = repo.SetHumanDecision(ctx, "tenant1", "missing", true, false, "")
	require.Equal(t, repository.ErrNotFound, err)
}
