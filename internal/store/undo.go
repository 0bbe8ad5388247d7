package store

import (
	"github.com/fegodi/homekeep/internal/model"
)

type ActionType string

const (
	ActionComplete ActionType = "complete"
	ActionDelete   ActionType = "delete"
)

// undoRecord carries a full copy of the mutated task, so reversal is a
// pure restore rather than inverse-operation logic. Records are
// persisted with the collection: the stack written by one command
// invocation is popped by a later one.
type undoRecord struct {
	Type     ActionType `json:"type"`
	Snapshot model.Task `json:"snapshot"`
}

// pushUndoLocked appends a reversible-action record, dropping the
// oldest once the stack is at depth.
func (s *Store) pushUndoLocked(typ ActionType, snap model.Task) {
	if len(s.undo) >= s.undoDepth {
		s.undo = s.undo[len(s.undo)-s.undoDepth+1:]
	}
	s.undo = append(s.undo, undoRecord{Type: typ, Snapshot: snap})
}

// Undo reverses the most recent completion or deletion by restoring the
// snapshot taken before the action. It reports the action undone and
// the restored task; ok is false when the stack is empty.
func (s *Store) Undo() (ActionType, model.Task, bool) {
	s.mu.Lock()
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return "", model.Task{}, false
	}
	rec := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	restored := rec.Snapshot.Clone()
	switch rec.Type {
	case ActionComplete:
		// Restore only if the task still exists; it may have been
		// deleted since.
		if _, ok := s.tasks[restored.ID]; ok {
			s.tasks[restored.ID] = restored
		}
	case ActionDelete:
		if _, ok := s.tasks[restored.ID]; !ok {
			s.tasks[restored.ID] = restored
			s.order = append(s.order, restored.ID)
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.persist(snap)
	return rec.Type, restored, true
}

// UndoDepthRemaining reports how many reversible actions are held.
func (s *Store) UndoDepthRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo)
}
