package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lumafolio/studio-core/internal/domain/gallery"
	"github.com/lumafolio/studio-core/internal/domain/scoring"
	"github.com/lumafolio/studio-core/internal/repository"
)

// PhotoRepository implements repository.PhotoRepository for SQLite
type PhotoRepository struct {
	db *DB
}

// NewPhotoRepository creates a new PhotoRepository
func NewPhotoRepository(db *DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Create creates a new gallery photo
func (r *PhotoRepository) Create(ctx context.Context, tenantID string, photo *gallery.Photo) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertPhoto(ctx, tx, tenantID, photo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit photo: %w", err)
	}
	return nil
}

// Get retrieves a photo by ID
func (r *PhotoRepository) Get(ctx context.Context, tenantID, id string) (*gallery.Photo, error) {
	query := selectPhoto + ` WHERE id = ? AND tenant_id = ?`

	photo, err := scanPhoto(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return photo, nil
}

// ListByGallery returns a gallery's photos ordered by capture time then ID,
// matching the curation rank tie-break so listings are stable.
func (r *PhotoRepository) ListByGallery(ctx context.Context, tenantID, galleryID string) ([]*gallery.Photo, error) {
	query := selectPhoto + `
		WHERE gallery_id = ? AND tenant_id = ?
		ORDER BY taken_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, galleryID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []*gallery.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photo rows: %w", err)
	}

	return photos, nil
}

// SetHumanDecision records a human select/reject override. Selected and
// rejected are mutually exclusive.
func (r *PhotoRepository) SetHumanDecision(ctx context.Context, tenantID, id string, selected, rejected bool, rejectionReason string) error {
	if selected && rejected {
		return repository.ErrInvalidInput
	}

	query := `
		UPDATE gallery_photos
		SET selected = ?, rejected = ?, rejection_reason = ?
		WHERE id = ? AND tenant_id = ?
	`
	result, err := r.db.ExecContext(ctx, query, selected, rejected, rejectionReason, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to set human decision: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

const selectPhoto = `
	SELECT
		id, tenant_id, gallery_id, taken_at, camera, lens, settings,
		quality_score, technical_quality, emotional_impact, category,
		is_highlight, ai_reasoning, selected, rejected, rejection_reason
	FROM gallery_photos
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPhoto(row rowScanner) (*gallery.Photo, error) {
	var photo gallery.Photo
	var settings string
	var technical sql.NullString

	err := row.Scan(
		&photo.ID,
		&photo.TenantID,
		&photo.GalleryID,
		&photo.TakenAt,
		&photo.Camera,
		&photo.Lens,
		&settings,
		&photo.QualityScore,
		&technical,
		&photo.EmotionalImpact,
		&photo.Category,
		&photo.IsHighlight,
		&photo.AIReasoning,
		&photo.Selected,
		&photo.Rejected,
		&photo.RejectionReason,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(settings), &photo.Settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if technical.Valid && technical.String != "" {
		var tech scoring.TechnicalQuality
		if err := json.Unmarshal([]byte(technical.String), &tech); err != nil {
			return nil, fmt.Errorf("failed to decode technical quality: %w", err)
		}
		photo.TechnicalQuality = &tech
	}

	return &photo, nil
}

func insertPhoto(ctx context.Context, tx *sql.Tx, tenantID string, photo *gallery.Photo) error {
	settings, err := json.Marshal(photo.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	technical, err := marshalTechnicalQuality(photo)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO gallery_photos (
			id, tenant_id, gallery_id, taken_at, camera, lens, settings,
			quality_score, technical_quality, emotional_impact, category,
			is_highlight, ai_reasoning, selected, rejected, rejection_reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		photo.ID,
		tenantID,
		photo.GalleryID,
		photo.TakenAt,
		photo.Camera,
		photo.Lens,
		string(settings),
		photo.QualityScore,
		technical,
		photo.EmotionalImpact,
		photo.Category,
		photo.IsHighlight,
		photo.AIReasoning,
		photo.Selected,
		photo.Rejected,
		photo.RejectionReason,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create photo %s: %w", photo.ID, err)
	}
	return nil
}

func marshalTechnicalQuality(photo *gallery.Photo) (interface{}, error) {
	if photo.TechnicalQuality == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(photo.TechnicalQuality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode technical quality: %w", err)
	}
	return string(encoded), nil
}
