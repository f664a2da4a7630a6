package repository

import (
	"context"

	"github.com/lumafolio/studio-core/internal/domain/gallery"
	"github.com/lumafolio/studio-core/internal/domain/runlog"
	"github.com/lumafolio/studio-core/internal/domain/shotlist"
)

// ShotListRepository manages shot list persistence
type ShotListRepository interface {
	Create(ctx context.Context, tenantID string, list *shotlist.ShotList) error
	Get(ctx context.Context, tenantID, id string) (*shotlist.ShotList, error)
	GetByShoot(ctx context.Context, tenantID, shootID string) (*shotlist.ShotList, error)
	Update(ctx context.Context, tenantID string, list *shotlist.ShotList) error
}

// GalleryRepository manages gallery persistence and the curation save path
type GalleryRepository interface {
	Create(ctx context.Context, tenantID string, g *gallery.Gallery) error
	Get(ctx context.Context, tenantID, id string) (*gallery.Gallery, error)
	List(ctx context.Context, tenantID string) ([]GallerySummary, error)
	SaveCurationRun(ctx context.Context, tenantID string, g *gallery.Gallery, photos []*gallery.Photo) error
}

// GallerySummary is a lightweight gallery listing with derived photo counts
type GallerySummary struct {
	ID             string         `json:"id"`
	ShootID        string         `json:"shoot_id"`
	Status         gallery.Status `json:"status"`
	TotalPhotos    int            `json:"total_photos"`
	SelectedPhotos int            `json:"selected_photos"`
	HighlightCount int            `json:"highlight_count"`
	AICurated      bool           `json:"ai_curated"`
}

// PhotoRepository manages gallery photo persistence
type PhotoRepository interface {
	Create(ctx context.Context, tenantID string, photo *gallery.Photo) error
	Get(ctx context.Context, tenantID, id string) (*gallery.Photo, error)
	ListByGallery(ctx context.Context, tenantID, galleryID string) ([]*gallery.Photo, error)
	SetHumanDecision(ctx context.Context, tenantID, id string, selected, rejected bool, rejectionReason string) error
}

// RunLogRepository manages run provenance persistence
type RunLogRepository interface {
	Log(ctx context.Context, tenantID string, entry *runlog.Entry) error
	List(ctx context.Context, tenantID string, opts runlog.ListOptions) ([]runlog.Entry, error)
}
