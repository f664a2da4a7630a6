package runlog

import "time"

// EntryType represents the kind of engine run being recorded.
type EntryType string

const (
	TypePlanCompleted     EntryType = "plan_completed"
	TypeCurationCompleted EntryType = "curation_completed"
	TypeCurationFailed    EntryType = "curation_failed"
)

// Entry is one record in the engine's run provenance log.
type Entry struct {
	ID         int64     `json:"id"`
	TenantID   string    `json:"tenant_id"`
	GalleryID  *string   `json:"gallery_id,omitempty"`
	ShotListID *string   `json:"shot_list_id,omitempty"`
	EntryType  EntryType `json:"type"`
	Summary    string    `json:"summary"`
	Details    string    `json:"details,omitempty"` // JSON string
	CreatedAt  time.Time `json:"created_at"`
}

// ListOptions provides filtering options for listing run entries.
type ListOptions struct {
	GalleryID *string
	EntryType *EntryType
	Limit     int
	Offset    int
}
