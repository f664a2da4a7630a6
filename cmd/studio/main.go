package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lumafolio/studio-core/internal/config"
	"github.com/lumafolio/studio-core/internal/domain/curation"
	"github.com/lumafolio/studio-core/internal/domain/runlog"
	"github.com/lumafolio/studio-core/internal/domain/scoring"
	"github.com/lumafolio/studio-core/internal/domain/shotlist"
	"github.com/lumafolio/studio-core/internal/sqlite"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	catalog := shotlist.DefaultCatalog()
	if cfg.Catalog.Path != "" {
		catalog, err = shotlist.LoadCatalog(cfg.Catalog.Path)
		if err != nil {
			logger.Error("failed to load catalog", "path", cfg.Catalog.Path, "error", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "plan":
		err = runPlan(ctx, db, catalog, logger, os.Args[2:])
	case "curate":
		err = runCurate(ctx, db, cfg, logger, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("job failed", "job", os.Args[1], "error", err)
		os.Exit(1)
	}
}

// runPlan builds and persists a shot list for a booking.
func runPlan(ctx context.Context, db *sqlite.DB, catalog *shotlist.Catalog, logger *slog.Logger, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: studio plan <tenant-id> <event-type> <shot-count>")
	}
	tenantID, eventType := args[0], args[1]
	target, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid shot count %q: %w", args[2], err)
	}

	planner := shotlist.NewPlanner(catalog, logger)
	list, err := planner.Plan(ctx, shotlist.Profile{
		TenantID:        tenantID,
		EventType:       eventType,
		ShotCountTarget: target,
	})
	if err != nil {
		return err
	}

	lists := sqlite.NewShotListRepository(db)
	if err := lists.Create(ctx, tenantID, list); err != nil {
		return err
	}

	runs := runlog.NewService(sqlite.NewRunLogRepository(db), logger)
	_ = runs.Record(ctx, tenantID, &runlog.Entry{
		ShotListID: &list.ID,
		EntryType:  runlog.TypePlanCompleted,
		Summary:    fmt.Sprintf("planned %d shots for %s", list.TotalShots, eventType),
	})

	fmt.Printf("shot list %s: %d shots, %d must-have, %d minutes\n",
		list.ID, list.TotalShots, list.MustHaveCount, list.EstimatedTime)
	return nil
}

// runCurate runs one curation pass over a gallery, with per-photo metrics
// supplied by the analysis pipeline as a JSON file keyed by photo ID.
func runCurate(ctx context.Context, db *sqlite.DB, cfg config.Config, logger *slog.Logger, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: studio curate <tenant-id> <gallery-id> <metrics.json>")
	}
	tenantID, galleryID, metricsPath := args[0], args[1], args[2]

	data, err := os.ReadFile(metricsPath)
	if err != nil {
		return fmt.Errorf("read metrics file: %w", err)
	}
	var metrics map[string]scoring.RawPhotoMetrics
	if err := json.Unmarshal(data, &metrics); err != nil {
		return fmt.Errorf("parse metrics file: %w", err)
	}

	photos, err := sqlite.NewPhotoRepository(db).ListByGallery(ctx, tenantID, galleryID)
	if err != nil {
		return err
	}
	batch := make([]curation.PhotoInput, len(photos))
	for i, photo := range photos {
		batch[i] = curation.PhotoInput{Photo: photo, Metrics: metrics[photo.ID]}
	}

	curator := curation.NewCurator(scoring.NewScorer(cfg.Scoring), cfg.CuratorConfig(), logger)
	coordinator := curation.NewCoordinator(
		curator,
		sqlite.NewGalleryRepository(db),
		sqlite.NewRunLogRepository(db),
		cfg.RunTimeout(),
		logger,
	)

	result, err := coordinator.StartRun(ctx, tenantID, galleryID, batch, nil)
	if err != nil {
		return err
	}

	fmt.Printf("gallery %s: %d selected, %d highlights, %d skipped\n",
		galleryID, result.SelectedCount, result.HighlightCount, len(result.Errors))
	return nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: studio <plan|curate> ...")
}
