package curation

import (
	"context"

	"github.com/lumafolio/studio-core/internal/domain/gallery"
	"github.com/lumafolio/studio-core/internal/domain/runlog"
)

// GalleryRepository provides the persistence the coordinator needs. The
// coordinator calls SaveCurationRun exactly once per run, only on success.
type GalleryRepository interface {
	Get(ctx context.Context, tenantID, id string) (*gallery.Gallery, error)
	SaveCurationRun(ctx context.Context, tenantID string, g *gallery.Gallery, photos []*gallery.Photo) error
}

// RunLogRepository records run provenance entries.
type RunLogRepository interface {
	Log(ctx context.Context, tenantID string, entry *runlog.Entry) error
}
