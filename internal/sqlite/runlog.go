package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumafolio/studio-core/internal/domain/runlog"
)

// RunLogRepository implements repository.RunLogRepository for SQLite
type RunLogRepository struct {
	db *DB
}

// NewRunLogRepository creates a new RunLogRepository
func NewRunLogRepository(db *DB) *RunLogRepository {
	return &RunLogRepository{db: db}
}

// Log appends a run entry
func (r *RunLogRepository) Log(ctx context.Context, tenantID string, entry *runlog.Entry) error {
	query := `
		INSERT INTO curation_log (tenant_id, gallery_id, shot_list_id, entry_type, summary, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		tenantID,
		entry.GalleryID,
		entry.ShotListID,
		entry.EntryType,
		entry.Summary,
		entry.Details,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log run entry: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}

// List returns run entries with filtering, newest first
func (r *RunLogRepository) List(ctx context.Context, tenantID string, opts runlog.ListOptions) ([]runlog.Entry, error) {
	var conditions []string
	var args []interface{}

	conditions = append(conditions, "tenant_id = ?")
	args = append(args, tenantID)

	if opts.GalleryID != nil {
		conditions = append(conditions, "gallery_id = ?")
		args = append(args, *opts.GalleryID)
	}
	if opts.EntryType != nil {
		conditions = append(conditions, "entry_type = ?")
		args = append(args, *opts.EntryType)
	}

	query := `
		SELECT id, tenant_id, gallery_id, shot_list_id, entry_type, summary, details, created_at
		FROM curation_log
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY created_at DESC, id DESC
	`
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list run entries: %w", err)
	}
	defer rows.Close()

	var entries []runlog.Entry
	for rows.Next() {
		var entry runlog.Entry
		err := rows.Scan(
			&entry.ID,
			&entry.TenantID,
			&entry.GalleryID,
			&entry.ShotListID,
			&entry.EntryType,
			&entry.Summary,
			&entry.Details,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run entry rows: %w", err)
	}

	return entries, nil
}
