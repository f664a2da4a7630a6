package curation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lumafolio/studio-core/internal/domain/gallery"
	"github.com/lumafolio/studio-core/internal/domain/runlog"
	"github.com/lumafolio/studio-core/internal/repository"
)

// Coordinator owns per-gallery run exclusivity and the all-or-nothing
// persistence boundary around curation runs.
type Coordinator struct {
	curator    *Curator
	galleries  GalleryRepository
	runs       RunLogRepository
	locks      *runLocks
	runTimeout time.Duration
	logger     *slog.Logger
}

// NewCoordinator creates a coordinator. runTimeout bounds a whole run; zero
// disables it. The run log repository is optional.
func NewCoordinator(curator *Curator, galleries GalleryRepository, runs RunLogRepository, runTimeout time.Duration, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		curator:    curator,
		galleries:  galleries,
		runs:       runs,
		locks:      newRunLocks(),
		runTimeout: runTimeout,
		logger:     logger,
	}
}

// RunState reports the current run state for a gallery.
func (c *Coordinator) RunState(galleryID string) RunState {
	return c.locks.state(galleryID)
}

// StartRun executes one curation run for a gallery. A second call for a
// gallery whose run is still in flight fails with ErrRunInProgress. On
// success the result is persisted in a single save; on any failure or
// cancellation nothing is written and a later StartRun retries from scratch.
func (c *Coordinator) StartRun(ctx context.Context, tenantID, galleryID string, batch []PhotoInput, target *int) (*Result, error) {
	if err := c.locks.acquire(galleryID); err != nil {
		return nil, err
	}

	result, err := c.run(ctx, tenantID, galleryID, batch, target)
	if err != nil {
		c.locks.release(galleryID, true)
		c.logger.Error("curation run failed", "gallery_id", galleryID, "error", err)
		c.logRun(ctx, tenantID, galleryID, runlog.TypeCurationFailed, err.Error(), nil)
		return nil, err
	}

	c.locks.release(galleryID, false)
	c.logRun(ctx, tenantID, galleryID, runlog.TypeCurationCompleted,
		fmt.Sprintf("curated gallery %s", galleryID), result)
	return result, nil
}

func (c *Coordinator) run(ctx context.Context, tenantID, galleryID string, batch []PhotoInput, target *int) (*Result, error) {
	g, err := c.galleries.Get(ctx, tenantID, galleryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrGalleryNotFound, galleryID)
		}
		return nil, fmt.Errorf("loading gallery: %w", err)
	}

	runCtx := ctx
	if c.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.runTimeout)
		defer cancel()
	}

	result, err := c.curator.Curate(runCtx, g, batch, target)
	if err != nil {
		return nil, err
	}

	if g.Status == gallery.StatusProcessing {
		if err := g.Transition(gallery.StatusReady); err != nil {
			return nil, fmt.Errorf("advancing gallery status: %w", err)
		}
	}

	photos := make([]*gallery.Photo, len(batch))
	for i, input := range batch {
		photos[i] = input.Photo
	}
	if err := c.galleries.SaveCurationRun(ctx, tenantID, g, photos); err != nil {
		return nil, fmt.Errorf("persisting curation run: %w", err)
	}
	return result, nil
}

// logRun records provenance best-effort; a log failure never fails the run.
func (c *Coordinator) logRun(ctx context.Context, tenantID, galleryID string, entryType runlog.EntryType, summary string, result *Result) {
	if c.runs == nil {
		return
	}
	details := ""
	if result != nil {
		if data, err := json.Marshal(result); err == nil {
			details = string(data)
		}
	}
	_ = c.runs.Log(ctx, tenantID, &runlog.Entry{
		GalleryID: &galleryID,
		EntryType: entryType,
		Summary:   summary,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	})
}
