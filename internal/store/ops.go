package store

import (
	"context"
	"errors"
	"time"

	"github.com/fegodi/homekeep/internal/model"
	"github.com/fegodi/homekeep/internal/schedule"
)

var (
	ErrNotFound           = errors.New("task not found")
	ErrCompletionInFlight = errors.New("completion already in flight")
)

// Patch is a partial task edit. nil pointer => "no change". Edits never
// touch scheduling state: nextDue, lastDone, completions and parts are
// out of reach.
type Patch struct {
	Title         *string         `json:"title,omitempty"`
	Category      *model.Category `json:"category,omitempty"`
	FrequencyDays *int            `json:"frequencyDays,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
}

func applyPatch(t *model.Task, p Patch) {
	if p.Title != nil && *p.Title != "" {
		t.Title = *p.Title
	}
	if p.Category != nil && p.Category.Valid() {
		t.Category = *p.Category
	}
	if p.FrequencyDays != nil && *p.FrequencyDays > 0 {
		t.FrequencyDays = *p.FrequencyDays
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
}

// Complete marks a task done now: lastDone = now, nextDue = now plus
// one recurrence interval (always from completion time, never from the
// prior scheduled date), and the completion is appended to history.
//
// A per-task in-flight marker guards the window between the in-memory
// mutation and the storage write: a second Complete for the same id
// during that window returns ErrCompletionInFlight instead of applying
// twice.
func (s *Store) Complete(id model.TaskID) (model.Task, error) {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return model.Task{}, ErrNotFound
	}
	if _, busy := s.completing[id]; busy {
		s.mu.Unlock()
		return model.Task{}, ErrCompletionInFlight
	}
	s.completing[id] = struct{}{}
	s.pushUndoLocked(ActionComplete, t.Clone())

	now := s.clock.Now()
	done := now
	t.LastDone = &done
	t.NextDue = now.AddDate(0, 0, t.FrequencyDays)
	t.Completions = append(t.Completions, now)
	t.UpdatedAt = now
	s.tasks[id] = t
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snap)

	s.mu.Lock()
	delete(s.completing, id)
	s.mu.Unlock()
	return t, nil
}

// Completing reports whether a completion is in flight for the id.
func (s *Store) Completing(id model.TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.completing[id]
	return busy
}

// BulkComplete applies single-task completion to each id independently.
// There is no atomicity across the batch; ids that fail (missing or in
// flight) are skipped and the rest proceed.
func (s *Store) BulkComplete(ids []model.TaskID) (completed int) {
	for _, id := range ids {
		if _, err := s.Complete(id); err == nil {
			completed++
		}
	}
	return completed
}

// Snooze pushes the due date days from now. The displacement is always
// computed from the current time, not from the previous due date.
// Completion history is untouched.
func (s *Store) Snooze(id model.TaskID, days int) (model.Task, bool) {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return model.Task{}, false
	}
	now := s.clock.Now()
	t.NextDue = now.AddDate(0, 0, days)
	t.UpdatedAt = now
	s.tasks[id] = t
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.persist(snap)
	return t, true
}

// Edit applies a partial update. Editing a task that no longer exists
// is a no-op, not an error.
func (s *Store) Edit(id model.TaskID, p Patch) (model.Task, bool) {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return model.Task{}, false
	}
	applyPatch(&t, p)
	t.UpdatedAt = s.clock.Now()
	s.tasks[id] = t
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.persist(snap)
	return t, true
}

// Delete removes a task permanently, completions included. The prior
// state is snapshotted onto the undo stack. Deleting a missing id is a
// no-op.
func (s *Store) Delete(id model.TaskID) bool {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.pushUndoLocked(ActionDelete, t.Clone())
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.persist(snap)
	return true
}

// AddPart appends a part to a task. Quantities below one are clamped.
func (s *Store) AddPart(id model.TaskID, name, spec string, qty int) (model.Part, bool) {
	if qty < 1 {
		qty = 1
	}
	part := model.Part{ID: schedule.NewPartID(), Name: name, Spec: spec, Qty: qty}
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return model.Part{}, false
	}
	t.Parts = append(t.Parts, part)
	t.UpdatedAt = s.clock.Now()
	s.tasks[id] = t
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.persist(snap)
	return part, true
}

func (s *Store) RemovePart(id model.TaskID, partID model.PartID) bool {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	removed := false
	kept := make([]model.Part, 0, len(t.Parts))
	for _, p := range t.Parts {
		if p.ID == partID {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		s.mu.Unlock()
		return false
	}
	t.Parts = kept
	t.UpdatedAt = s.clock.Now()
	s.tasks[id] = t
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.persist(snap)
	return true
}

// PartDue is a shopping-list row: a part on a task coming due.
type PartDue struct {
	model.Part
	TaskID    model.TaskID
	TaskTitle string
	DaysUntil int
}

// PartsDueWithin flattens the parts of every task due within the given
// number of days, in task order.
func (s *Store) PartsDueWithin(days int, now time.Time) []PartDue {
	out := make([]PartDue, 0)
	for _, t := range s.List() {
		d := schedule.DaysUntilDue(t.NextDue, now)
		if d > days || len(t.Parts) == 0 {
			continue
		}
		for _, p := range t.Parts {
			out = append(out, PartDue{Part: p, TaskID: t.ID, TaskTitle: t.Title, DaysUntil: d})
		}
	}
	return out
}

// Clear removes every task, the undo history and the persisted records.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.tasks = map[model.TaskID]model.Task{}
	s.order = []model.TaskID{}
	s.undo = nil
	s.mu.Unlock()
	if err := s.kv.Delete(ctx, TasksKey); err != nil {
		s.logf("homekeep: clear tasks: %v", err)
	}
	if err := s.kv.Delete(ctx, UndoKey); err != nil {
		s.logf("homekeep: clear undo history: %v", err)
	}
}
