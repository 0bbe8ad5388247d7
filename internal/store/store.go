// Package store holds the task collection. The in-memory state is the
// single source of truth: it is loaded from the key-value store once at
// startup and written through on every mutation. A failed write never
// corrupts in-memory state; it is logged and the next mutation retries
// the full snapshot.
package store

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fegodi/homekeep/internal/kv"
	"github.com/fegodi/homekeep/internal/model"
	"github.com/fegodi/homekeep/internal/schedule"
)

const (
	TasksKey = "homekeep_tasks"
	UndoKey  = "homekeep_undo"
)

type Store struct {
	mu    sync.Mutex
	kv    kv.Store
	clock schedule.Clock

	tasks map[model.TaskID]model.Task
	order []model.TaskID

	completing map[model.TaskID]struct{}

	undo      []undoRecord
	undoDepth int

	logf func(format string, args ...any)
}

type Option func(*Store)

func WithClock(c schedule.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithUndoDepth(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.undoDepth = n
		}
	}
}

func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Store) { s.logf = logf }
}

func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:         store,
		clock:      schedule.SystemClock{},
		tasks:      map[model.TaskID]model.Task{},
		order:      []model.TaskID{},
		completing: map[model.TaskID]struct{}{},
		undoDepth:  10,
		logf:       log.Printf,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads the persisted collection and undo history. Persistence
// failures are tolerated: the store starts empty and logs the problem.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, TasksKey)
	if err != nil {
		s.logf("homekeep: load tasks: storage unavailable: %v", err)
		return nil
	}
	if ok {
		var tasks []model.Task
		if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
			s.logf("homekeep: load tasks: unreadable record: %v", err)
		} else {
			s.mu.Lock()
			s.replaceLocked(tasks)
			s.mu.Unlock()
		}
	}
	s.loadUndo(ctx)
	return nil
}

// loadUndo restores the reversible-action stack. Undo must survive
// process boundaries: each command runs in its own invocation, and the
// stack written by "delete" is what a later "undo" pops.
func (s *Store) loadUndo(ctx context.Context) {
	raw, ok, err := s.kv.Get(ctx, UndoKey)
	if err != nil || !ok {
		return
	}
	var undo []undoRecord
	if err := json.Unmarshal([]byte(raw), &undo); err != nil {
		s.logf("homekeep: load undo history: unreadable record: %v", err)
		return
	}
	s.mu.Lock()
	if len(undo) > s.undoDepth {
		undo = undo[len(undo)-s.undoDepth:]
	}
	s.undo = undo
	s.mu.Unlock()
}

func (s *Store) replaceLocked(tasks []model.Task) {
	now := s.clock.Now()
	s.tasks = make(map[model.TaskID]model.Task, len(tasks))
	s.order = make([]model.TaskID, 0, len(tasks))
	for _, t := range tasks {
		normalizeTask(&t, now)
		if _, dup := s.tasks[t.ID]; dup {
			continue
		}
		s.tasks[t.ID] = t
		s.order = append(s.order, t.ID)
	}
}

func normalizeTask(t *model.Task, now time.Time) {
	if t.Completions == nil {
		t.Completions = []time.Time{}
	}
	if t.Parts == nil {
		t.Parts = []model.Part{}
	}
	if t.NextDue.IsZero() {
		t.NextDue = now
	}
	if t.ID == "" {
		t.ID = schedule.NewTaskID()
	}
}

// snapshot carries the serialized records a mutation writes through:
// the collection and the undo stack that reverses it.
type snapshot struct {
	tasks []byte
	undo  []byte
}

func (s *Store) snapshotLocked() snapshot {
	var snap snapshot
	b, err := json.Marshal(s.listLocked())
	if err != nil {
		s.logf("homekeep: marshal tasks: %v", err)
	} else {
		snap.tasks = b
	}
	b, err = json.Marshal(s.undo)
	if err != nil {
		s.logf("homekeep: marshal undo history: %v", err)
	} else {
		snap.undo = b
	}
	return snap
}

// persist writes a snapshot through to the key-value store. Failures
// are logged only; in-memory state stays authoritative.
func (s *Store) persist(snap snapshot) {
	if snap.tasks != nil {
		if err := s.kv.Set(context.Background(), TasksKey, string(snap.tasks)); err != nil {
			s.logf("homekeep: persist tasks: %v", err)
		}
	}
	if snap.undo != nil {
		if err := s.kv.Set(context.Background(), UndoKey, string(snap.undo)); err != nil {
			s.logf("homekeep: persist undo history: %v", err)
		}
	}
}

func (s *Store) listLocked() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, id := range s.order {
		if t, ok := s.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// List returns all tasks in insertion order.
func (s *Store) List() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

func (s *Store) Get(id model.TaskID) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	return t, ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Add appends tasks to the collection and persists.
func (s *Store) Add(tasks ...model.Task) {
	s.mu.Lock()
	now := s.clock.Now()
	for _, t := range tasks {
		normalizeTask(&t, now)
		if _, dup := s.tasks[t.ID]; dup {
			continue
		}
		s.tasks[t.ID] = t
		s.order = append(s.order, t.ID)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.persist(snap)
}

// Search filters by free-text query (title, category, notes) and an
// optional category. Empty arguments match everything.
func (s *Store) Search(query string, category model.Category) []model.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Task, 0)
	for _, t := range s.List() {
		if category != "" && t.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(string(t.Category)), q) &&
			!strings.Contains(strings.ToLower(t.Notes), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}
