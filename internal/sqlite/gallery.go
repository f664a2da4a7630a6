package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lumafolio/studio-core/internal/domain/gallery"
	"github.com/lumafolio/studio-core/internal/repository"
)

// GalleryRepository implements repository.GalleryRepository for SQLite
type GalleryRepository struct {
	db *DB
}

// NewGalleryRepository creates a new GalleryRepository
func NewGalleryRepository(db *DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// Create creates a new gallery
func (r *GalleryRepository) Create(ctx context.Context, tenantID string, g *gallery.Gallery) error {
	curationData, err := marshalCurationData(g.CurationData)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO galleries (
			id, tenant_id, shoot_id, status, total_photos, selected_photos,
			ai_curated, curation_data, created_at, modified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		g.ID,
		tenantID,
		g.ShootID,
		g.Status,
		g.TotalPhotos,
		g.SelectedPhotos,
		g.AICurated,
		curationData,
		g.CreatedAt,
		g.ModifiedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create gallery: %w", err)
	}

	return nil
}

// Get retrieves a gallery by ID
func (r *GalleryRepository) Get(ctx context.Context, tenantID, id string) (*gallery.Gallery, error) {
	query := `
		SELECT id, tenant_id, shoot_id, status, total_photos, selected_photos,
		       ai_curated, curation_data, created_at, modified_at
		FROM galleries
		WHERE id = ? AND tenant_id = ?
	`

	var g gallery.Gallery
	var curationData sql.NullString
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&g.ID,
		&g.TenantID,
		&g.ShootID,
		&g.Status,
		&g.TotalPhotos,
		&g.SelectedPhotos,
		&g.AICurated,
		&curationData,
		&g.CreatedAt,
		&g.ModifiedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}

	if curationData.Valid && curationData.String != "" {
		var data gallery.CurationData
		if err := json.Unmarshal([]byte(curationData.String), &data); err != nil {
			return nil, fmt.Errorf("failed to decode curation data: %w", err)
		}
		g.CurationData = &data
	}

	return &g, nil
}

// List returns gallery summaries for a tenant with photo counts derived from
// the photo rows, not the stored aggregates.
func (r *GalleryRepository) List(ctx context.Context, tenantID string) ([]repository.GallerySummary, error) {
	query := `
		SELECT
			g.id,
			g.shoot_id,
			g.status,
			g.ai_curated,
			COUNT(p.id) as total_photos,
			COUNT(CASE WHEN p.selected = 1 THEN p.id END) as selected_photos,
			COUNT(CASE WHEN p.is_highlight = 1 THEN p.id END) as highlight_count
		FROM galleries g
		LEFT JOIN gallery_photos p ON p.gallery_id = g.id AND p.tenant_id = g.tenant_id
		WHERE g.tenant_id = ?
		GROUP BY g.id, g.shoot_id, g.status, g.ai_curated
		ORDER BY g.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list galleries: %w", err)
	}
	defer rows.Close()

	var summaries []repository.GallerySummary
	for rows.Next() {
		var summary repository.GallerySummary
		err := rows.Scan(
			&summary.ID,
			&summary.ShootID,
			&summary.Status,
			&summary.AICurated,
			&summary.TotalPhotos,
			&summary.SelectedPhotos,
			&summary.HighlightCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gallery summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gallery rows: %w", err)
	}

	return summaries, nil
}

// SaveCurationRun persists a completed curation run in one transaction: the
// gallery aggregates plus every photo's curation fields. A failed run never
// reaches this method, so photo rows only change on a run's success path.
func (r *GalleryRepository) SaveCurationRun(ctx context.Context, tenantID string, g *gallery.Gallery, photos []*gallery.Photo) error {
	curationData, err := marshalCurationData(g.CurationData)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	galleryQuery := `
		UPDATE galleries
		SET status = ?, total_photos = ?, selected_photos = ?,
		    ai_curated = ?, curation_data = ?, modified_at = ?
		WHERE id = ? AND tenant_id = ?
	`
	result, err := tx.ExecContext(ctx, galleryQuery,
		g.Status,
		g.TotalPhotos,
		g.SelectedPhotos,
		g.AICurated,
		curationData,
		g.ModifiedAt,
		g.ID,
		tenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update gallery: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	for _, photo := range photos {
		if err := saveCurationPhoto(ctx, tx, tenantID, photo); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit curation run: %w", err)
	}
	return nil
}

func saveCurationPhoto(ctx context.Context, tx *sql.Tx, tenantID string, photo *gallery.Photo) error {
	technical, err := marshalTechnicalQuality(photo)
	if err != nil {
		return err
	}

	query := `
		UPDATE gallery_photos
		SET quality_score = ?, technical_quality = ?, emotional_impact = ?,
		    category = ?, is_highlight = ?, ai_reasoning = ?,
		    selected = ?, rejected = ?, rejection_reason = ?
		WHERE id = ? AND tenant_id = ?
	`
	result, err := tx.ExecContext(ctx, query,
		photo.QualityScore,
		technical,
		photo.EmotionalImpact,
		photo.Category,
		photo.IsHighlight,
		photo.AIReasoning,
		photo.Selected,
		photo.Rejected,
		photo.RejectionReason,
		photo.ID,
		tenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update photo %s: %w", photo.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		// Photos delivered with the batch may not have rows yet.
		return insertPhoto(ctx, tx, tenantID, photo)
	}
	return nil
}

func marshalCurationData(data *gallery.CurationData) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode curation data: %w", err)
	}
	return string(encoded), nil
}
