package shotlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Profile captures the booking inputs a plan is built from.
type Profile struct {
	TenantID        string
	PackageID       *string
	ShootID         *string
	EventType       string
	StyleTags       []string
	Equipment       []string
	ShotCountTarget int
	DeliveryDays    int
	Existing        *ShotList
}

// Planner builds and re-builds shot lists from a catalog.
type Planner struct {
	catalog *Catalog
	logger  *slog.Logger
}

// NewPlanner creates a planner over the given catalog.
func NewPlanner(catalog *Catalog, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{catalog: catalog, logger: logger}
}

// styleBoost multiplies archetype weight when its style tags match the profile.
const styleBoost = 1.5

// Plan builds a shot list for the profile. AI-owned shots from any existing
// list are discarded and regenerated; manually edited shots are preserved and
// re-merged into their original sections. Output is deterministic for an
// unchanged profile.
func (p *Planner) Plan(ctx context.Context, profile Profile) (*ShotList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if profile.ShotCountTarget <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShotCountTarget, profile.ShotCountTarget)
	}

	tmpl, err := p.catalog.TemplateFor(profile.EventType)
	if err != nil {
		if !errors.Is(err, ErrUnknownEventType) {
			return nil, err
		}
		// Unknown event types fall back to a generic empty template so a
		// booking with a novel event type still gets a (manual-only) list.
		p.logger.Warn("no archetypes for event type, using generic template",
			"event_type", profile.EventType)
		tmpl = &Template{EventType: profile.EventType}
	}

	pinned := partitionPinned(profile.Existing)
	sections := p.generate(tmpl, profile)
	sections = mergePinned(sections, pinned)

	now := time.Now().UTC()
	list := &ShotList{
		ID:           uuid.NewString(),
		TenantID:     profile.TenantID,
		PackageID:    profile.PackageID,
		ShootID:      profile.ShootID,
		EventType:    profile.EventType,
		Sections:     sections,
		LightingPlan: tmpl.LightingPlan,
		BackupPlans:  append([]string(nil), tmpl.BackupPlans...),
		CreatedAt:    now,
		ModifiedAt:   now,
	}
	if profile.Existing != nil {
		list.ID = profile.Existing.ID
		list.CreatedAt = profile.Existing.CreatedAt
	}

	list.EquipmentList = equipmentUnion(profile.Equipment, sections)
	list.Recompute()
	list.AIGenerated = list.fullyAIOwned()

	return list, nil
}

// generate produces the AI-owned sections from the template, apportioning the
// shot count target across archetypes by weight.
func (p *Planner) generate(tmpl *Template, profile Profile) []Section {
	if len(tmpl.Archetypes) == 0 {
		return nil
	}

	weights := make([]float64, len(tmpl.Archetypes))
	for i, arch := range tmpl.Archetypes {
		w := arch.Weight
		if w <= 0 {
			w = 1
		}
		if matchesStyle(arch.StyleTags, profile.StyleTags) {
			w *= styleBoost
		}
		weights[i] = w
	}
	counts := apportion(profile.ShotCountTarget, weights)

	var sections []Section
	index := make(map[string]int)
	for i, arch := range tmpl.Archetypes {
		n := counts[i]
		if n == 0 {
			continue
		}
		pos, ok := index[arch.Section]
		if !ok {
			pos = len(sections)
			index[arch.Section] = pos
			sections = append(sections, Section{Name: arch.Section})
		}
		for j := 0; j < n; j++ {
			desc := arch.Description
			if n > 1 {
				desc = fmt.Sprintf("%s (%d of %d)", arch.Description, j+1, n)
			}
			sections[pos].Shots = append(sections[pos].Shots, ShotItem{
				Description:      desc,
				Priority:         arch.Priority,
				EstimatedMinutes: arch.EstimatedMinutes,
				EquipmentTags:    append([]string(nil), arch.EquipmentTags...),
				Origin:           OriginAI,
			})
		}
	}
	return sections
}

// partitionPinned extracts manually owned shots from an existing list,
// keeping section order and in-section order.
func partitionPinned(existing *ShotList) []Section {
	if existing == nil {
		return nil
	}
	var pinned []Section
	for _, sec := range existing.Sections {
		var kept []ShotItem
		for _, shot := range sec.Shots {
			if shot.Origin == OriginManual {
				kept = append(kept, shot)
			}
		}
		if len(kept) > 0 {
			pinned = append(pinned, Section{Name: sec.Name, Shots: kept})
		}
	}
	return pinned
}

// mergePinned appends pinned shots to their original sections by name,
// recreating removed sections at the end of the list.
func mergePinned(sections []Section, pinned []Section) []Section {
	for _, pin := range pinned {
		merged := false
		for i := range sections {
			if sections[i].Name == pin.Name {
				sections[i].Shots = append(sections[i].Shots, pin.Shots...)
				merged = true
				break
			}
		}
		if !merged {
			sections = append(sections, pin)
		}
	}
	return sections
}

func matchesStyle(archTags, profileTags []string) bool {
	for _, at := range archTags {
		for _, pt := range profileTags {
			if at == pt {
				return true
			}
		}
	}
	return false
}

// equipmentUnion merges profile equipment with every shot's equipment tags,
// deduplicated and sorted for stable output.
func equipmentUnion(base []string, sections []Section) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(item string) {
		if item == "" || seen[item] {
			return
		}
		seen[item] = true
		out = append(out, item)
	}
	for _, item := range base {
		add(item)
	}
	for _, sec := range sections {
		for _, shot := range sec.Shots {
			for _, tag := range shot.EquipmentTags {
				add(tag)
			}
		}
	}
	sort.Strings(out)
	return out
}
