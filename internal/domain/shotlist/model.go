package shotlist

import "time"

// Priority indicates how important a planned shot is.
type Priority string

const (
	PriorityMustHave   Priority = "must_have"
	PriorityNiceToHave Priority = "nice_to_have"
)

// Origin tags who owns a shot item. AI-owned shots are regenerated on
// re-plans; manual shots are preserved verbatim.
type Origin string

const (
	OriginAI     Origin = "ai"
	OriginManual Origin = "manual"
)

// ShotItem is one planned shot within a section.
type ShotItem struct {
	Description      string   `json:"description"`
	Priority         Priority `json:"priority"`
	EstimatedMinutes int      `json:"estimated_minutes"`
	EquipmentTags    []string `json:"equipment_tags,omitempty"`
	Origin           Origin   `json:"origin"`
}

// Section is a named, ordered grouping of shots.
type Section struct {
	Name  string     `json:"name"`
	Shots []ShotItem `json:"shots"`
}

// ShotList is the structured plan of shots for a shoot or package.
// TotalShots, MustHaveCount and EstimatedTime are derived from Sections;
// stored values are never trusted (see Recompute).
type ShotList struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	PackageID     *string   `json:"package_id,omitempty"`
	ShootID       *string   `json:"shoot_id,omitempty"`
	EventType     string    `json:"event_type"`
	AIGenerated   bool      `json:"ai_generated"`
	Sections      []Section `json:"sections"`
	TotalShots    int       `json:"total_shots"`
	MustHaveCount int       `json:"must_have_count"`
	EstimatedTime int       `json:"estimated_time"`
	EquipmentList []string  `json:"equipment_list,omitempty"`
	LightingPlan  string    `json:"lighting_plan,omitempty"`
	BackupPlans   []string  `json:"backup_plans,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	ModifiedAt    time.Time `json:"modified_at"`
}

// Recompute derives the aggregate fields from the section list.
func (l *ShotList) Recompute() {
	total := 0
	mustHave := 0
	minutes := 0
	for _, sec := range l.Sections {
		total += len(sec.Shots)
		for _, shot := range sec.Shots {
			if shot.Priority == PriorityMustHave {
				mustHave++
			}
			minutes += shot.EstimatedMinutes
		}
	}
	l.TotalShots = total
	l.MustHaveCount = mustHave
	l.EstimatedTime = minutes
}

// fullyAIOwned reports whether every shot in the list is AI-owned.
func (l *ShotList) fullyAIOwned() bool {
	for _, sec := range l.Sections {
		for _, shot := range sec.Shots {
			if shot.Origin != OriginAI {
				return false
			}
		}
	}
	return true
}
