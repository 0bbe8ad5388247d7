package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/fegodi/homekeep/internal/model"
)

//go:embed catalog.yaml
var catalogYAML []byte

// SurveyOption is one selectable answer for a survey dimension.
type SurveyOption struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Catalog is the fixed set of task templates plus the survey option
// lists the onboarding flow presents.
type Catalog struct {
	Templates []model.TaskTemplate              `yaml:"templates" json:"templates"`
	Survey    map[model.Dimension][]SurveyOption `yaml:"survey" json:"survey"`
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load parses the embedded catalog. The result is shared; callers must
// treat templates as read-only.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		var c Catalog
		if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
			loadErr = fmt.Errorf("parse embedded catalog: %w", err)
			return
		}
		for i, t := range c.Templates {
			if t.Title == "" || t.FrequencyDays <= 0 || !t.Category.Valid() {
				loadErr = fmt.Errorf("invalid catalog template at index %d: %q", i, t.Title)
				return
			}
		}
		loaded = &c
	})
	return loaded, loadErr
}

// SelectApplicable filters templates against a household profile.
//
// A template with no requirements is universal. Otherwise every listed
// dimension must pass: an unanswered dimension imposes no constraint,
// a multi-select answer passes on any intersection with the allowed
// values, a single-select answer must be a member of them. Output keeps
// catalog order.
func SelectApplicable(templates []model.TaskTemplate, profile model.HouseholdProfile) []model.TaskTemplate {
	out := make([]model.TaskTemplate, 0, len(templates))
	for _, t := range templates {
		if matchesProfile(t, profile) {
			out = append(out, t)
		}
	}
	return out
}

func matchesProfile(t model.TaskTemplate, profile model.HouseholdProfile) bool {
	for dim, allowed := range t.Requires {
		selected := profile.Values(dim)
		if len(selected) == 0 {
			// "Don't know" tolerance: unanswered never rejects.
			continue
		}
		if !intersects(selected, allowed) {
			return false
		}
	}
	return true
}

func intersects(selected, allowed []string) bool {
	for _, s := range selected {
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
	}
	return false
}

// Essentials returns the universally recommended templates.
func (c *Catalog) Essentials() []model.TaskTemplate {
	out := make([]model.TaskTemplate, 0)
	for _, t := range c.Templates {
		if t.Essential {
			out = append(out, t)
		}
	}
	return out
}

// ByTitle looks a template up by exact title.
func (c *Catalog) ByTitle(title string) (model.TaskTemplate, bool) {
	for _, t := range c.Templates {
		if t.Title == title {
			return t, true
		}
	}
	return model.TaskTemplate{}, false
}
