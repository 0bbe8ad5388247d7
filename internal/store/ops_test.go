package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fegodi/homekeep/internal/kv"
	"github.com/fegodi/homekeep/internal/model"
	"github.com/fegodi/homekeep/internal/schedule"
)

func TestCompleteReschedulesFromNow(t *testing.T) {
	s, _, clock := newTestStore(t)
	// Ten days overdue.
	s.Add(testTask("t_1", "Replace HVAC Filter", 90, testNow.AddDate(0, 0, -10)))

	done, err := s.Complete("t_1")
	require.NoError(t, err)

	// Next due counts from the completion instant, not the missed date.
	assert.Equal(t, testNow.AddDate(0, 0, 90), done.NextDue)
	require.NotNil(t, done.LastDone)
	assert.True(t, done.LastDone.Equal(testNow))
	require.Len(t, done.Completions, 1)

	// Complete again later: the interval restarts from the new instant.
	later := testNow.AddDate(0, 0, 40)
	clock.Set(later)
	done, err = s.Complete("t_1")
	require.NoError(t, err)
	assert.Equal(t, later.AddDate(0, 0, 90), done.NextDue)
	assert.Len(t, done.Completions, 2)
}

// gatedSetStore blocks writes while a gate is armed, holding a
// completion inside its persist window.
type gatedSetStore struct {
	kv.Store

	mu   sync.Mutex
	gate chan struct{}
}

func (g *gatedSetStore) arm() chan struct{} {
	gate := make(chan struct{})
	g.mu.Lock()
	g.gate = gate
	g.mu.Unlock()
	return gate
}

func (g *gatedSetStore) Set(ctx context.Context, key, value string) error {
	g.mu.Lock()
	gate := g.gate
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return g.Store.Set(ctx, key, value)
}

func TestCompleteRejectsSecondWhileInFlight(t *testing.T) {
	gated := &gatedSetStore{Store: kv.NewMemoryStore()}
	s := New(gated, WithClock(schedule.NewManualClock(testNow)))
	require.NoError(t, s.Load(context.Background()))
	s.Add(testTask("t_1", "Replace HVAC Filter", 90, testNow))

	gate := gated.arm()
	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Complete("t_1")
		firstDone <- err
	}()

	// Wait for the first completion to enter its persist window.
	require.Eventually(t, func() bool { return s.Completing("t_1") },
		time.Second, time.Millisecond)

	_, err := s.Complete("t_1")
	assert.ErrorIs(t, err, ErrCompletionInFlight)

	close(gate)
	require.NoError(t, <-firstDone)
	assert.False(t, s.Completing("t_1"))

	// Only the first completion applied.
	got, _ := s.Get("t_1")
	assert.Len(t, got.Completions, 1)
	assert.Equal(t, testNow.AddDate(0, 0, 90), got.NextDue)
}

func TestCompleteMissing(t *testing.T) {
	s, _, _ := newTestStore(t)
	_, err := s.Complete("t_nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBulkCompleteSkipsFailures(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Add(
		testTask("t_1", "Replace HVAC Filter", 90, testNow),
		testTask("t_2", "Clean Air Vents", 90, testNow),
	)

	n := s.BulkComplete([]model.TaskID{"t_1", "t_missing", "t_2"})
	assert.Equal(t, 2, n)
	for _, id := range []model.TaskID{"t_1", "t_2"} {
		got, _ := s.Get(id)
		assert.NotNil(t, got.LastDone, string(id))
	}
}

func TestSnoozeFromNow(t *testing.T) {
	s, _, _ := newTestStore(t)
	// Overdue by a week; snoozing 3 days lands 3 days out, not -4.
	s.Add(testTask("t_1", "Replace HVAC Filter", 90, testNow.AddDate(0, 0, -7)))

	got, ok := s.Snooze("t_1", 3)
	require.True(t, ok)
	assert.Equal(t, testNow.AddDate(0, 0, 3), got.NextDue)
	assert.Nil(t, got.LastDone, "snooze is not a completion")
	assert.Empty(t, got.Completions)

	_, ok = s.Snooze("t_missing", 3)
	assert.False(t, ok)
}

func TestEditLeavesSchedulingAlone(t *testing.T) {
	s, _, _ := newTestStore(t)
	done := testNow.AddDate(0, 0, -5)
	task := testTask("t_1", "Replace HVAC Filter", 90, testNow.AddDate(0, 0, 85))
	task.LastDone = &done
	task.Completions = []time.Time{done}
	s.Add(task)

	title := "Replace Furnace Filter"
	freq := 60
	got, ok := s.Edit("t_1", Patch{Title: &title, FrequencyDays: &freq})
	require.True(t, ok)

	assert.Equal(t, "Replace Furnace Filter", got.Title)
	assert.Equal(t, 60, got.FrequencyDays)
	// Due date and history untouched; the new frequency only applies on
	// the next completion.
	assert.Equal(t, task.NextDue, got.NextDue)
	require.NotNil(t, got.LastDone)
	assert.Len(t, got.Completions, 1)
}

func TestEditSkipsInvalidValues(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Add(testTask("t_1", "Replace HVAC Filter", 90, testNow))

	empty := ""
	zero := 0
	bad := model.Category("Garage")
	got, ok := s.Edit("t_1", Patch{Title: &empty, FrequencyDays: &zero, Category: &bad})
	require.True(t, ok)
	assert.Equal(t, "Replace HVAC Filter", got.Title)
	assert.Equal(t, 90, got.FrequencyDays)
	assert.Equal(t, model.CategoryHVAC, got.Category)
}

func TestEditMissingIsNoOp(t *testing.T) {
	s, _, _ := newTestStore(t)
	title := "anything"
	_, ok := s.Edit("t_missing", Patch{Title: &title})
	assert.False(t, ok)
}

func TestDeleteRemovesPermanently(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Add(
		testTask("t_1", "Replace HVAC Filter", 90, testNow),
		testTask("t_2", "Clean Air Vents", 90, testNow),
	)

	require.True(t, s.Delete("t_1"))
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("t_1")
	assert.False(t, ok)
	assert.False(t, s.Delete("t_1"), "second delete is a no-op")
}

func TestParts(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Add(testTask("t_1", "Replace HVAC Filter", 90, testNow.AddDate(0, 0, 10)))

	part, ok := s.AddPart("t_1", "furnace filter", "16x25x1 MERV 11", 0)
	require.True(t, ok)
	assert.Equal(t, 1, part.Qty, "quantity clamps to at least one")
	assert.NotEmpty(t, part.ID)

	got, _ := s.Get("t_1")
	require.Len(t, got.Parts, 1)

	assert.False(t, s.RemovePart("t_1", "p_missing"))
	assert.True(t, s.RemovePart("t_1", part.ID))
	got, _ = s.Get("t_1")
	assert.Empty(t, got.Parts)
}

func TestPartsDueWithin(t *testing.T) {
	s, _, _ := newTestStore(t)
	soon := testTask("t_1", "Replace HVAC Filter", 90, testNow.AddDate(0, 0, 10))
	soon.Parts = []model.Part{{ID: "p_1", Name: "filter", Qty: 1}}
	far := testTask("t_2", "Flush Water Heater", 365, testNow.AddDate(0, 0, 200))
	far.Parts = []model.Part{{ID: "p_2", Name: "drain hose", Qty: 1}}
	bare := testTask("t_3", "Clean Air Vents", 90, testNow.AddDate(0, 0, 5))
	s.Add(soon, far, bare)

	due := s.PartsDueWithin(30, testNow)
	require.Len(t, due, 1)
	assert.Equal(t, "filter", due[0].Name)
	assert.Equal(t, "Replace HVAC Filter", due[0].TaskTitle)
	assert.Equal(t, 10, due[0].DaysUntil)
}

func TestClear(t *testing.T) {
	s, mem, _ := newTestStore(t)
	s.Add(testTask("t_1", "Replace HVAC Filter", 90, testNow))
	_, err := s.Complete("t_1")
	require.NoError(t, err)

	s.Clear(context.Background())
	assert.Zero(t, s.Len())
	_, _, ok := s.Undo()
	assert.False(t, ok, "clear empties the undo stack")

	_, found, err := mem.Get(context.Background(), TasksKey)
	require.NoError(t, err)
	assert.False(t, found, "persisted record removed")
	_, found, err = mem.Get(context.Background(), UndoKey)
	require.NoError(t, err)
	assert.False(t, found, "persisted undo history removed")
}
