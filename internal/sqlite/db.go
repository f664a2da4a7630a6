package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Shot lists: sections is a JSON document; aggregate columns are derived
-- from it on every save.
CREATE TABLE shot_lists (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    package_id TEXT,
    shoot_id TEXT,
    event_type TEXT NOT NULL,
    ai_generated INTEGER NOT NULL DEFAULT 0,
    sections TEXT NOT NULL,
    total_shots INTEGER NOT NULL DEFAULT 0,
    must_have_count INTEGER NOT NULL DEFAULT 0,
    estimated_time INTEGER NOT NULL DEFAULT 0,
    equipment_list TEXT NOT NULL DEFAULT '[]',
    lighting_plan TEXT NOT NULL DEFAULT '',
    backup_plans TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX idx_tenant_shot_lists ON shot_lists(tenant_id);
CREATE INDEX idx_shoot_shot_lists ON shot_lists(shoot_id);

-- Galleries
CREATE TABLE galleries (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    shoot_id TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('processing', 'ready', 'delivered')),
    total_photos INTEGER NOT NULL DEFAULT 0,
    selected_photos INTEGER NOT NULL DEFAULT 0,
    ai_curated INTEGER NOT NULL DEFAULT 0,
    curation_data TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX idx_tenant_galleries ON galleries(tenant_id);
CREATE INDEX idx_shoot_galleries ON galleries(shoot_id);

-- Gallery photos: settings and technical_quality are JSON documents;
-- score columns stay NULL until the first scoring run.
CREATE TABLE gallery_photos (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    gallery_id TEXT NOT NULL,
    taken_at TIMESTAMP NOT NULL,
    camera TEXT NOT NULL DEFAULT '',
    lens TEXT NOT NULL DEFAULT '',
    settings TEXT NOT NULL DEFAULT '{}',
    quality_score REAL,
    technical_quality TEXT,
    emotional_impact REAL,
    category TEXT NOT NULL DEFAULT '',
    is_highlight INTEGER NOT NULL DEFAULT 0,
    ai_reasoning TEXT NOT NULL DEFAULT '',
    selected INTEGER NOT NULL DEFAULT 0,
    rejected INTEGER NOT NULL DEFAULT 0,
    rejection_reason TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (gallery_id) REFERENCES galleries(id)
);
CREATE INDEX idx_tenant_photos ON gallery_photos(tenant_id);
CREATE INDEX idx_gallery_photos ON gallery_photos(gallery_id);
CREATE INDEX idx_photo_taken_at ON gallery_photos(taken_at);

-- Run provenance log
CREATE TABLE curation_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tenant_id TEXT NOT NULL,
    gallery_id TEXT,
    shot_list_id TEXT,
    entry_type TEXT NOT NULL,
    summary TEXT NOT NULL,
    details TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX idx_tenant_curation_log ON curation_log(tenant_id);
CREATE INDEX idx_gallery_curation_log ON curation_log(gallery_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
