package model

import (
	"time"
)

type TaskID string

type PartID string

// Part is a consumable or replacement item tied to a task,
// e.g. a filter size or a battery type.
type Part struct {
	ID   PartID `json:"id"`
	Name string `json:"name"`
	Spec string `json:"spec,omitempty"`
	Qty  int    `json:"qty"`
}

// Task is the unit persisted and displayed. Title, category, frequency
// and notes are copied from the template at creation and editable
// independently afterwards.
type Task struct {
	ID            TaskID   `json:"id"`
	Title         string   `json:"title"`
	Category      Category `json:"category"`
	FrequencyDays int      `json:"frequencyDays"`
	Notes         string   `json:"notes,omitempty"`

	LastDone    *time.Time  `json:"lastDone"`
	NextDue     time.Time   `json:"nextDue"`
	Completions []time.Time `json:"completions"`
	Parts       []Part      `json:"parts"`

	// UserPriority is set at creation for Safety tasks; it is
	// independent of the template's essential flag.
	UserPriority bool `json:"priority"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy. Undo snapshots depend on this: restoring
// a snapshot must not alias slices still reachable from the store.
func (t Task) Clone() Task {
	c := t
	if t.LastDone != nil {
		ld := *t.LastDone
		c.LastDone = &ld
	}
	c.Completions = append([]time.Time(nil), t.Completions...)
	c.Parts = append([]Part(nil), t.Parts...)
	return c
}
