package curation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lumafolio/studio-core/internal/domain/gallery"
	"github.com/lumafolio/studio-core/internal/domain/scoring"
)

// CuratorConfig tunes selection and highlight behavior.
type CuratorConfig struct {
	// SelectionRatio sets the default selection target as a fraction of the
	// gallery size when no explicit target is given.
	SelectionRatio float64
	// HighlightQuality is the absolute quality floor for highlights.
	HighlightQuality float64
	// HighlightTopFraction marks the top fraction of selected photos as
	// highlights. The effective threshold is whichever of the two rules
	// highlights more photos.
	HighlightTopFraction float64
	// PhotoTimeout bounds a single photo's scoring; timeouts become
	// per-photo errors, not run failures.
	PhotoTimeout time.Duration
	// MaxParallelScores bounds scoring concurrency within a run.
	MaxParallelScores int
}

// DefaultCuratorConfig returns the stock tuning.
func DefaultCuratorConfig() CuratorConfig {
	return CuratorConfig{
		SelectionRatio:       0.35,
		HighlightQuality:     90,
		HighlightTopFraction: 0.10,
		PhotoTimeout:         2 * time.Second,
		MaxParallelScores:    4,
	}
}

// Curator runs batch curation passes over a gallery's photos.
type Curator struct {
	scorer *scoring.Scorer
	cfg    CuratorConfig
	logger *slog.Logger
}

// NewCurator creates a curator. Zero config fields fall back to defaults.
func NewCurator(scorer *scoring.Scorer, cfg CuratorConfig, logger *slog.Logger) *Curator {
	def := DefaultCuratorConfig()
	if cfg.SelectionRatio <= 0 || cfg.SelectionRatio > 1 {
		cfg.SelectionRatio = def.SelectionRatio
	}
	if cfg.HighlightQuality <= 0 {
		cfg.HighlightQuality = def.HighlightQuality
	}
	if cfg.HighlightTopFraction <= 0 || cfg.HighlightTopFraction > 1 {
		cfg.HighlightTopFraction = def.HighlightTopFraction
	}
	if cfg.PhotoTimeout <= 0 {
		cfg.PhotoTimeout = def.PhotoTimeout
	}
	if cfg.MaxParallelScores <= 0 {
		cfg.MaxParallelScores = def.MaxParallelScores
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Curator{scorer: scorer, cfg: cfg, logger: logger}
}

// Curate scores the batch, ranks the undecided photos, and applies selection
// and highlight flags. Human selected/rejected decisions are never altered.
// Per-photo scoring failures are collected in the result; only gallery-level
// problems (empty batch, negative target, cancellation) abort the run.
func (c *Curator) Curate(ctx context.Context, g *gallery.Gallery, batch []PhotoInput, target *int) (*Result, error) {
	if len(batch) == 0 {
		return nil, fmt.Errorf("%w: gallery %s has no photos", ErrCurationAborted, g.ID)
	}
	if target != nil && *target < 0 {
		return nil, fmt.Errorf("%w: negative target %d", ErrCurationAborted, *target)
	}

	scores, photoErrs, err := c.scoreBatch(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCurationAborted, err)
	}

	// Scores are applied only after the whole batch finished, so a canceled
	// run leaves every photo untouched.
	result := &Result{}
	var candidates []*gallery.Photo
	humanSelected := 0
	for i, input := range batch {
		photo := input.Photo
		if photoErrs[i] != nil {
			result.Errors = append(result.Errors, PhotoError{
				PhotoID: photo.ID,
				Reason:  photoErrs[i].Error(),
			})
			continue
		}
		photo.ApplyScore(*scores[i])
		if photo.HumanDecided() {
			if photo.Selected {
				humanSelected++
			}
			continue
		}
		candidates = append(candidates, photo)
	}
	// Unscored human selections still count against the target.
	for i, input := range batch {
		if photoErrs[i] != nil && input.Photo.Selected {
			humanSelected++
		}
	}

	g.TotalPhotos = len(batch)
	effectiveTarget := c.effectiveTarget(g, target)
	remaining := effectiveTarget - humanSelected
	if remaining < 0 {
		remaining = 0
	}

	rankCandidates(candidates)
	for i, photo := range candidates {
		photo.Selected = i < remaining
	}

	selected := selectedPhotos(batch)
	threshold := c.highlightThreshold(selected)
	highlights := 0
	for _, input := range batch {
		photo := input.Photo
		if !photo.Selected {
			photo.IsHighlight = false
			continue
		}
		if photo.QualityScore != nil {
			photo.IsHighlight = *photo.QualityScore >= threshold
		}
		if photo.IsHighlight {
			highlights++
		}
	}

	result.SelectedCount = len(selected)
	result.HighlightCount = highlights

	now := time.Now().UTC()
	g.SelectedPhotos = result.SelectedCount
	g.AICurated = true
	g.ModifiedAt = now
	g.CurationData = &gallery.CurationData{
		RanAt:              now,
		Weights:            c.scorer.Weights(),
		HighlightThreshold: threshold,
		TargetCount:        effectiveTarget,
		AutoSelected:       remaining,
		SkippedErrors:      len(result.Errors),
	}
	if remaining > len(candidates) {
		g.CurationData.AutoSelected = len(candidates)
	}

	c.logger.Info("curation pass complete",
		"gallery_id", g.ID,
		"selected", result.SelectedCount,
		"highlights", result.HighlightCount,
		"skipped", len(result.Errors))

	return result, nil
}

// scoreBatch scores every photo concurrently with bounded parallelism.
// Returned slices are indexed by batch position; only context cancellation
// produces a non-nil error.
func (c *Curator) scoreBatch(ctx context.Context, batch []PhotoInput) ([]*scoring.Score, []error, error) {
	scores := make([]*scoring.Score, len(batch))
	photoErrs := make([]error, len(batch))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.cfg.MaxParallelScores)
	for i := range batch {
		i := i
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			score, err := c.scoreOne(groupCtx, batch[i].Metrics)
			if err != nil {
				if groupCtx.Err() != nil {
					return groupCtx.Err()
				}
				photoErrs[i] = err
				return nil
			}
			scores[i] = score
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return scores, photoErrs, nil
}

// scoreOne applies the per-photo timeout. The scorer is pure, so a timed-out
// invocation is simply abandoned.
func (c *Curator) scoreOne(ctx context.Context, metrics scoring.RawPhotoMetrics) (*scoring.Score, error) {
	type outcome struct {
		score scoring.Score
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		score, err := c.scorer.Score(metrics)
		done <- outcome{score: score, err: err}
	}()

	timer := time.NewTimer(c.cfg.PhotoTimeout)
	defer timer.Stop()

	select {
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		return &out.score, nil
	case <-timer.C:
		return nil, fmt.Errorf("scoring timed out after %s", c.cfg.PhotoTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Curator) effectiveTarget(g *gallery.Gallery, target *int) int {
	if target != nil {
		return *target
	}
	return int(math.Round(float64(g.TotalPhotos) * c.cfg.SelectionRatio))
}

// highlightThreshold picks the more permissive of the top-fraction cutoff and
// the absolute quality floor.
func (c *Curator) highlightThreshold(selected []*gallery.Photo) float64 {
	var qualities []float64
	for _, photo := range selected {
		if photo.QualityScore != nil {
			qualities = append(qualities, *photo.QualityScore)
		}
	}
	if len(qualities) == 0 {
		return c.cfg.HighlightQuality
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(qualities)))
	k := int(math.Ceil(float64(len(qualities)) * c.cfg.HighlightTopFraction))
	if k < 1 {
		k = 1
	}
	cutoff := qualities[k-1]
	return math.Min(cutoff, c.cfg.HighlightQuality)
}

func selectedPhotos(batch []PhotoInput) []*gallery.Photo {
	var out []*gallery.Photo
	for _, input := range batch {
		if input.Photo.Selected {
			out = append(out, input.Photo)
		}
	}
	return out
}
