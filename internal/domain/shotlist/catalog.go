package shotlist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Archetype is a reusable shot pattern for one event type. Weight controls
// how many of the target shots are apportioned to it relative to its siblings.
type Archetype struct {
	Section          string   `yaml:"section"`
	Description      string   `yaml:"description"`
	Priority         Priority `yaml:"priority"`
	EstimatedMinutes int      `yaml:"estimated_minutes"`
	Weight           float64  `yaml:"weight"`
	EquipmentTags    []string `yaml:"equipment_tags,omitempty"`
	StyleTags        []string `yaml:"style_tags,omitempty"`
}

// Template is the full planning knowledge for one event type.
type Template struct {
	EventType    string      `yaml:"event_type"`
	Archetypes   []Archetype `yaml:"archetypes"`
	LightingPlan string      `yaml:"lighting_plan,omitempty"`
	BackupPlans  []string    `yaml:"backup_plans,omitempty"`
}

// Catalog is a read-only lookup of event templates, ordered by registration.
type Catalog struct {
	templates map[string]*Template
	order     []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{templates: make(map[string]*Template)}
}

// Register adds or replaces the template for its event type.
func (c *Catalog) Register(tmpl Template) {
	if _, exists := c.templates[tmpl.EventType]; !exists {
		c.order = append(c.order, tmpl.EventType)
	}
	copied := tmpl
	c.templates[tmpl.EventType] = &copied
}

// EventTypes lists registered event types in registration order.
func (c *Catalog) EventTypes() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// TemplateFor returns the template for an event type.
func (c *Catalog) TemplateFor(eventType string) (*Template, error) {
	tmpl, ok := c.templates[eventType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}
	return tmpl, nil
}

// ArchetypesFor returns the archetypes for an event type in registration order.
func (c *Catalog) ArchetypesFor(eventType string) ([]Archetype, error) {
	tmpl, err := c.TemplateFor(eventType)
	if err != nil {
		return nil, err
	}
	out := make([]Archetype, len(tmpl.Archetypes))
	copy(out, tmpl.Archetypes)
	return out, nil
}

// catalogFile is the on-disk YAML shape.
type catalogFile struct {
	Events []Template `yaml:"events"`
}

// LoadCatalog reads a catalog from a YAML file. Template order in the file
// becomes registration order, which planning depends on for determinism.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(file.Events) == 0 {
		return nil, ErrEmptyCatalog
	}
	cat := NewCatalog()
	for _, tmpl := range file.Events {
		if tmpl.EventType == "" {
			return nil, fmt.Errorf("catalog template missing event_type")
		}
		cat.Register(tmpl)
	}
	return cat, nil
}

// DefaultCatalog returns the built-in event templates.
func DefaultCatalog() *Catalog {
	cat := NewCatalog()

	cat.Register(Template{
		EventType:    "wedding",
		LightingPlan: "Natural light for prep and ceremony; off-camera flash for reception",
		BackupPlans: []string{
			"Indoor ceremony fallback at venue chapel",
			"Second body with 35mm prime charged and synced",
		},
		Archetypes: []Archetype{
			{Section: "Bridal Prep", Description: "Getting-ready detail", Priority: PriorityNiceToHave, EstimatedMinutes: 4, Weight: 10, EquipmentTags: []string{"50mm", "reflector"}},
			{Section: "Ceremony", Description: "Processional candid", Priority: PriorityMustHave, EstimatedMinutes: 3, Weight: 20, EquipmentTags: []string{"70-200mm"}},
			{Section: "Ceremony", Description: "Vow exchange close-up", Priority: PriorityMustHave, EstimatedMinutes: 5, Weight: 15, EquipmentTags: []string{"70-200mm"}},
			{Section: "Formal Portraits", Description: "Family grouping", Priority: PriorityMustHave, EstimatedMinutes: 6, Weight: 20, EquipmentTags: []string{"24-70mm", "tripod"}},
			{Section: "Reception", Description: "First dance moment", Priority: PriorityMustHave, EstimatedMinutes: 4, Weight: 15, EquipmentTags: []string{"flash", "35mm"}},
			{Section: "Reception", Description: "Candid guest reaction", Priority: PriorityNiceToHave, EstimatedMinutes: 2, Weight: 20, EquipmentTags: []string{"35mm"}},
		},
	})

	cat.Register(Template{
		EventType:    "portrait",
		LightingPlan: "Single key with silver reflector fill",
		BackupPlans:  []string{"Studio slot held for weather fallback"},
		Archetypes: []Archetype{
			{Section: "Headshots", Description: "Clean headshot", Priority: PriorityMustHave, EstimatedMinutes: 5, Weight: 40, EquipmentTags: []string{"85mm", "reflector"}},
			{Section: "Environmental", Description: "Environmental portrait", Priority: PriorityNiceToHave, EstimatedMinutes: 6, Weight: 35, EquipmentTags: []string{"35mm"}},
			{Section: "Details", Description: "Hands and wardrobe detail", Priority: PriorityNiceToHave, EstimatedMinutes: 3, Weight: 25, EquipmentTags: []string{"50mm"}},
		},
	})

	cat.Register(Template{
		EventType:    "corporate_event",
		LightingPlan: "Bounce flash for interiors; stage lit as-is",
		BackupPlans:  []string{"Keynote audio recording as caption reference"},
		Archetypes: []Archetype{
			{Section: "Keynote", Description: "Speaker at podium", Priority: PriorityMustHave, EstimatedMinutes: 3, Weight: 30, EquipmentTags: []string{"70-200mm", "monopod"}},
			{Section: "Networking", Description: "Attendee conversation candid", Priority: PriorityNiceToHave, EstimatedMinutes: 2, Weight: 40, EquipmentTags: []string{"35mm", "flash"}},
			{Section: "Branding", Description: "Signage and venue branding", Priority: PriorityMustHave, EstimatedMinutes: 3, Weight: 30, EquipmentTags: []string{"24-70mm"}},
		},
	})

	return cat
}
