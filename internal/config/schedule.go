package config

import (
	"github.com/fegodi/homekeep/internal/model"
)

// Schedule holds the scheduling and urgency tuning knobs.
type Schedule struct {
	// Category ordering for initial scheduling; lower runs first.
	CategoryPriority map[model.Category]int `yaml:"category_priority" json:"category_priority"`
	DefaultPriority  int                    `yaml:"default_priority" json:"default_priority"`

	// Days from setup until the first task of a category is due.
	BaseDelayDays    map[model.Category]int `yaml:"base_delay_days" json:"base_delay_days"`
	DefaultBaseDelay int                    `yaml:"default_base_delay_days" json:"default_base_delay_days"`

	// Intra-category stagger: each subsequent task is pushed out by
	// min(StaggerCapDays, frequencyDays/StaggerDivisor) extra days.
	StaggerCapDays int `yaml:"stagger_cap_days" json:"stagger_cap_days"`
	StaggerDivisor int `yaml:"stagger_divisor" json:"stagger_divisor"`

	// Urgency windows.
	DueSoonDays        int `yaml:"due_soon_days" json:"due_soon_days"`
	RecentDoneDays     int `yaml:"recent_done_days" json:"recent_done_days"`
	SafetyCriticalDays int `yaml:"safety_critical_days" json:"safety_critical_days"`

	// Undo stack depth for reversible actions.
	UndoDepth int `yaml:"undo_depth" json:"undo_depth"`
}

// Default returns the stock schedule configuration.
func Default() Schedule {
	return Schedule{
		CategoryPriority: map[model.Category]int{
			model.CategorySafety:     1,
			model.CategoryHVAC:       2,
			model.CategoryPlumbing:   3,
			model.CategoryElectrical: 4,
			model.CategoryKitchen:    5,
			model.CategoryLaundry:    6,
			model.CategoryExterior:   7,
			model.CategorySeasonal:   8,
			model.CategoryEquipment:  9,
		},
		DefaultPriority: 10,
		BaseDelayDays: map[model.Category]int{
			model.CategorySafety:     3,
			model.CategoryHVAC:       14,
			model.CategoryPlumbing:   21,
			model.CategoryElectrical: 30,
			model.CategoryKitchen:    45,
			model.CategoryLaundry:    60,
			model.CategoryExterior:   30,
			model.CategorySeasonal:   14,
			model.CategoryEquipment:  45,
		},
		DefaultBaseDelay:   30,
		StaggerCapDays:     7,
		StaggerDivisor:     10,
		DueSoonDays:        14,
		RecentDoneDays:     7,
		SafetyCriticalDays: 7,
		UndoDepth:          10,
	}
}

// Priority returns the scheduling priority for a category.
func (s Schedule) Priority(c model.Category) int {
	if p, ok := s.CategoryPriority[c]; ok {
		return p
	}
	return s.DefaultPriority
}

// BaseDelay returns the base delay in days for a category.
func (s Schedule) BaseDelay(c model.Category) int {
	if d, ok := s.BaseDelayDays[c]; ok {
		return d
	}
	return s.DefaultBaseDelay
}

// ApplyDefaults fills zero-valued fields from Default. A YAML file may
// override only the knobs it cares about.
func (s *Schedule) ApplyDefaults() {
	d := Default()
	if len(s.CategoryPriority) == 0 {
		s.CategoryPriority = d.CategoryPriority
	}
	if s.DefaultPriority == 0 {
		s.DefaultPriority = d.DefaultPriority
	}
	if len(s.BaseDelayDays) == 0 {
		s.BaseDelayDays = d.BaseDelayDays
	}
	if s.DefaultBaseDelay == 0 {
		s.DefaultBaseDelay = d.DefaultBaseDelay
	}
	if s.StaggerCapDays == 0 {
		s.StaggerCapDays = d.StaggerCapDays
	}
	if s.StaggerDivisor == 0 {
		s.StaggerDivisor = d.StaggerDivisor
	}
	if s.DueSoonDays == 0 {
		s.DueSoonDays = d.DueSoonDays
	}
	if s.RecentDoneDays == 0 {
		s.RecentDoneDays = d.RecentDoneDays
	}
	if s.SafetyCriticalDays == 0 {
		s.SafetyCriticalDays = d.SafetyCriticalDays
	}
	if s.UndoDepth == 0 {
		s.UndoDepth = d.UndoDepth
	}
}
