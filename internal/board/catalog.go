package board

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the fixed library of mission templates grouped by slot.
// It is built once at startup and read-only afterwards.
type Catalog struct {
	bySlot map[Slot][]MissionTemplate
}

// NewCatalog groups templates by slot. Templates with an unknown slot
// or a non-positive first objective target are rejected so the engine
// never has to re-validate them per request.
func NewCatalog(templates []MissionTemplate) (*Catalog, error) {
	c := &Catalog{bySlot: make(map[Slot][]MissionTemplate)}
	for _, t := range templates {
		if !t.Slot.IsValid() {
			return nil, fmt.Errorf("template %s: %w: %q", t.TemplateID, ErrUnknownSlot, t.Slot)
		}
		if len(t.Objectives) == 0 {
			return nil, fmt.Errorf("template %s has no objectives", t.TemplateID)
		}
		for _, o := range t.Objectives {
			if o.Target <= 0 {
				return nil, fmt.Errorf("template %s objective %s: target must be positive", t.TemplateID, o.ID)
			}
		}
		c.bySlot[t.Slot] = append(c.bySlot[t.Slot], t)
	}
	for _, slot := range Slots {
		if len(c.bySlot[slot]) == 0 {
			return nil, fmt.Errorf("catalog has no templates for slot %q", slot)
		}
	}
	return c, nil
}

// TemplatesFor returns the templates for a slot. The returned slice is
// shared; callers must not mutate it.
func (c *Catalog) TemplatesFor(slot Slot) []MissionTemplate {
	return c.bySlot[slot]
}

// catalogFile is the on-disk YAML shape for a catalog override.
type catalogFile struct {
	Templates []MissionTemplate `yaml:"templates"`
}

// LoadCatalog reads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return NewCatalog(f.Templates)
}

// DefaultCatalog returns the built-in template library used when no
// catalog file is configured.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultTemplates())
	if err != nil {
		// The built-in set is static; a failure here is a programming error.
		panic(err)
	}
	return c
}

func defaultTemplates() []MissionTemplate {
	return []MissionTemplate{
		{
			TemplateID: "main-consistency",
			Slot:       SlotMain,
			Title:      "Keep the Chain",
			Summary:    "Complete your full daily list five times this week.",
			Difficulty: DifficultyMedium,
			Reward:     Reward{XP: 120, Currency: 40},
			Objectives: []Objective{{ID: "full-days", Label: "Perfect days", Target: 5, Unit: "days"}},
			Tags:       map[string]string{"theme": "consistency"},
		},
		{
			TemplateID: "main-comeback",
			Slot:       SlotMain,
			Title:      "Back on Track",
			Summary:    "Log at least one completion on three separate days.",
			Difficulty: DifficultyLow,
			Reward:     Reward{XP: 60, Currency: 20},
			Objectives: []Objective{{ID: "active-days", Label: "Active days", Target: 3, Unit: "days"}},
			Tags:       map[string]string{"theme": "recovery"},
		},
		{
			TemplateID: "main-overdrive",
			Slot:       SlotMain,
			Title:      "Overdrive Week",
			Summary:    "Finish every task, every day, all week.",
			Difficulty: DifficultyHigh,
			Reward:     Reward{XP: 250, Currency: 80},
			Objectives: []Objective{{ID: "perfect-week", Label: "Perfect days", Target: 7, Unit: "days"}},
			Tags:       map[string]string{"theme": "consistency"},
		},
		{
			TemplateID:        "hunt-focus",
			Slot:              SlotHunt,
			Title:             "Focus Hunt",
			Summary:           "Complete your linked habit on distinct days to pierce the shield.",
			Difficulty:        DifficultyMedium,
			Reward:            Reward{XP: 100, Currency: 30},
			Objectives:        []Objective{{ID: "linked-hits", Label: "Linked completions", Target: 3, Unit: "days"}},
			Tags:              map[string]string{"theme": "boss"},
			BoosterMultiplier: 1.5,
		},
		{
			TemplateID:        "hunt-grind",
			Slot:              SlotHunt,
			Title:             "Long Grind",
			Summary:           "Chip away at the boss with steady linked completions.",
			Difficulty:        DifficultyHigh,
			Reward:            Reward{XP: 180, Currency: 60},
			Objectives:        []Objective{{ID: "linked-hits", Label: "Linked completions", Target: 5, Unit: "days"}},
			Tags:              map[string]string{"theme": "boss"},
			BoosterMultiplier: 2.0,
		},
		{
			TemplateID:        "hunt-sprint",
			Slot:              SlotHunt,
			Title:             "Quick Strike",
			Summary:           "A short burst of linked completions.",
			Difficulty:        DifficultyLow,
			Reward:            Reward{XP: 50, Currency: 15},
			Objectives:        []Objective{{ID: "linked-hits", Label: "Linked completions", Target: 2, Unit: "days"}},
			Tags:              map[string]string{"theme": "boss"},
			BoosterMultiplier: 1.25,
		},
		{
			TemplateID: "skill-morning",
			Slot:       SlotSkill,
			Title:      "Morning Ritual",
			Summary:    "Finish a task before 9am on several days.",
			Difficulty: DifficultyMedium,
			Reward:     Reward{XP: 90, Currency: 25},
			Objectives: []Objective{{ID: "early-days", Label: "Early starts", Target: 4, Unit: "days"}},
			Tags:       map[string]string{"theme": "timing"},
		},
		{
			TemplateID: "skill-variety",
			Slot:       SlotSkill,
			Title:      "Branch Out",
			Summary:    "Complete tasks from three different categories.",
			Difficulty: DifficultyLow,
			Reward:     Reward{XP: 70, Currency: 20},
			Objectives: []Objective{{ID: "categories", Label: "Categories touched", Target: 3, Unit: "categories"}},
			Tags:       map[string]string{"theme": "variety"},
		},
		{
			TemplateID: "skill-marathon",
			Slot:       SlotSkill,
			Title:      "Two-Week Marathon",
			Summary:    "Stay active for ten days inside the fortnight window.",
			Difficulty: DifficultyHigh,
			Reward:     Reward{XP: 200, Currency: 70},
			Objectives: []Objective{{ID: "active-days", Label: "Active days", Target: 10, Unit: "days"}},
			Tags:       map[string]string{"theme": "endurance"},
		},
	}
}
