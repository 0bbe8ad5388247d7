package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fegodi/homekeep/internal/config"
	"github.com/fegodi/homekeep/internal/model"
)

// Scheduler assigns initial due dates to selected templates. It is
// pure aside from ID generation: given the same templates, config and
// instant it produces the same dates.
type Scheduler struct {
	Cfg config.Schedule
}

func NewScheduler(cfg config.Schedule) Scheduler {
	return Scheduler{Cfg: cfg}
}

// ScheduleInitial turns selected templates into tasks with staggered
// first due dates.
//
// Templates are grouped by category, categories run in priority order
// (safety first), and each category starts at its base delay. Within a
// category, task i is pushed out by i * min(cap, frequencyDays/divisor)
// extra days so same-category tasks land a few days apart. Seasonal
// templates with a recognizable title get a calendar-anchored date
// instead of the stagger arithmetic.
func (s Scheduler) ScheduleInitial(templates []model.TaskTemplate, now time.Time) []model.Task {
	groups := make(map[model.Category][]model.TaskTemplate)
	order := make([]model.Category, 0)
	for _, t := range templates {
		if _, seen := groups[t.Category]; !seen {
			order = append(order, t.Category)
		}
		groups[t.Category] = append(groups[t.Category], t)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return s.Cfg.Priority(order[i]) < s.Cfg.Priority(order[j])
	})

	tasks := make([]model.Task, 0, len(templates))
	for _, cat := range order {
		baseDelay := s.Cfg.BaseDelay(cat)
		for idx, tpl := range groups[cat] {
			stagger := tpl.FrequencyDays / s.Cfg.StaggerDivisor
			if stagger > s.Cfg.StaggerCapDays {
				stagger = s.Cfg.StaggerCapDays
			}
			due := now.AddDate(0, 0, baseDelay+idx*stagger)

			if cat == model.CategorySeasonal {
				if seasonal, ok := seasonalDue(InferSeasonalHint(tpl.Title), now); ok {
					due = seasonal
				}
			}

			tasks = append(tasks, NewTask(tpl, due, now))
		}
	}
	return tasks
}

// NewTask instantiates a task from a template with an explicit due
// date. Safety tasks are flagged as user priority at creation.
func NewTask(tpl model.TaskTemplate, due, now time.Time) model.Task {
	return model.Task{
		ID:            NewTaskID(),
		Title:         tpl.Title,
		Category:      tpl.Category,
		FrequencyDays: tpl.FrequencyDays,
		Notes:         tpl.Notes,
		LastDone:      nil,
		NextDue:       due,
		Completions:   []time.Time{},
		Parts:         []model.Part{},
		UserPriority:  tpl.Category == model.CategorySafety,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// FromTemplate schedules a single catalog add: due one full recurrence
// interval from now.
func FromTemplate(tpl model.TaskTemplate, now time.Time) model.Task {
	return NewTask(tpl, now.AddDate(0, 0, tpl.FrequencyDays), now)
}

func NewTaskID() model.TaskID {
	return model.TaskID("t_" + uuid.NewString())
}

func NewPartID() model.PartID {
	return model.PartID("p_" + uuid.NewString())
}
