package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lumafolio/studio-core/internal/domain/shotlist"
	"github.com/lumafolio/studio-core/internal/repository"
)

// ShotListRepository implements repository.ShotListRepository for SQLite
type ShotListRepository struct {
	db *DB
}

// NewShotListRepository creates a new ShotListRepository
func NewShotListRepository(db *DB) *ShotListRepository {
	return &ShotListRepository{db: db}
}

// Create creates a new shot list. Aggregates are recomputed from the section
// document before writing; stored values are never trusted.
func (r *ShotListRepository) Create(ctx context.Context, tenantID string, list *shotlist.ShotList) error {
	list.Recompute()

	sections, equipment, backups, err := marshalShotListDocs(list)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO shot_lists (
			id, tenant_id, package_id, shoot_id, event_type, ai_generated,
			sections, total_shots, must_have_count, estimated_time,
			equipment_list, lighting_plan, backup_plans, created_at, modified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		list.ID,
		tenantID,
		list.PackageID,
		list.ShootID,
		list.EventType,
		list.AIGenerated,
		sections,
		list.TotalShots,
		list.MustHaveCount,
		list.EstimatedTime,
		equipment,
		list.LightingPlan,
		backups,
		list.CreatedAt,
		list.ModifiedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create shot list: %w", err)
	}

	return nil
}

// Get retrieves a shot list by ID
func (r *ShotListRepository) Get(ctx context.Context, tenantID, id string) (*shotlist.ShotList, error) {
	query := selectShotList + ` WHERE id = ? AND tenant_id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, tenantID))
}

// GetByShoot retrieves the shot list owned by a shoot
func (r *ShotListRepository) GetByShoot(ctx context.Context, tenantID, shootID string) (*shotlist.ShotList, error) {
	query := selectShotList + ` WHERE shoot_id = ? AND tenant_id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, shootID, tenantID))
}

// Update replaces a shot list's contents, recomputing aggregates first.
func (r *ShotListRepository) Update(ctx context.Context, tenantID string, list *shotlist.ShotList) error {
	list.Recompute()

	sections, equipment, backups, err := marshalShotListDocs(list)
	if err != nil {
		return err
	}

	query := `
		UPDATE shot_lists
		SET package_id = ?, shoot_id = ?, event_type = ?, ai_generated = ?,
		    sections = ?, total_shots = ?, must_have_count = ?, estimated_time = ?,
		    equipment_list = ?, lighting_plan = ?, backup_plans = ?, modified_at = ?
		WHERE id = ? AND tenant_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		list.PackageID,
		list.ShootID,
		list.EventType,
		list.AIGenerated,
		sections,
		list.TotalShots,
		list.MustHaveCount,
		list.EstimatedTime,
		equipment,
		list.LightingPlan,
		backups,
		list.ModifiedAt,
		list.ID,
		tenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shot list: %w", err)
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

const selectShotList = `
	SELECT
		id, tenant_id, package_id, shoot_id, event_type, ai_generated,
		sections, total_shots, must_have_count, estimated_time,
		equipment_list, lighting_plan, backup_plans, created_at, modified_at
	FROM shot_lists
`

func (r *ShotListRepository) scanOne(row *sql.Row) (*shotlist.ShotList, error) {
	var list shotlist.ShotList
	var sections, equipment, backups string

	err := row.Scan(
		&list.ID,
		&list.TenantID,
		&list.PackageID,
		&list.ShootID,
		&list.EventType,
		&list.AIGenerated,
		&sections,
		&list.TotalShots,
		&list.MustHaveCount,
		&list.EstimatedTime,
		&equipment,
		&list.LightingPlan,
		&backups,
		&list.CreatedAt,
		&list.ModifiedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shot list: %w", err)
	}

	if err := json.Unmarshal([]byte(sections), &list.Sections); err != nil {
		return nil, fmt.Errorf("failed to decode sections: %w", err)
	}
	if err := json.Unmarshal([]byte(equipment), &list.EquipmentList); err != nil {
		return nil, fmt.Errorf("failed to decode equipment list: %w", err)
	}
	if err := json.Unmarshal([]byte(backups), &list.BackupPlans); err != nil {
		return nil, fmt.Errorf("failed to decode backup plans: %w", err)
	}

	return &list, nil
}

func marshalShotListDocs(list *shotlist.ShotList) (sections, equipment, backups string, err error) {
	sectionsData, err := json.Marshal(list.Sections)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode sections: %w", err)
	}
	equipmentData, err := json.Marshal(list.EquipmentList)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode equipment list: %w", err)
	}
	backupsData, err := json.Marshal(list.BackupPlans)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode backup plans: %w", err)
	}
	return string(sectionsData), string(equipmentData), string(backupsData), nil
}
