package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fegodi/homekeep/internal/model"
)

func TestExportShape(t *testing.T) {
	s, _, _ := newTestStore(t)
	done := testNow.AddDate(0, 0, -1)
	task := testTask("t_1", "Replace HVAC Filter", 90, testNow.AddDate(0, 0, 89))
	task.LastDone = &done
	task.Completions = []time.Time{done}
	s.Add(task)

	data, err := s.Export()
	require.NoError(t, err)

	var doc struct {
		Version string       `json:"version"`
		Tasks   []model.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, ExportVersion, doc.Version)
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, model.TaskID("t_1"), doc.Tasks[0].ID)
	require.Len(t, doc.Tasks[0].Completions, 1)
}

func TestImportReplacesCollection(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Add(testTask("t_old", "Old Task", 30, testNow))

	data := []byte(`{
	  "version": "2.0",
	  "tasks": [
	    {"id": "t_a", "title": "Imported A", "category": "Safety", "frequencyDays": 30, "nextDue": "2026-06-10T00:00:00Z"},
	    {"id": "t_b", "title": "Imported B", "category": "HVAC", "frequencyDays": 90, "nextDue": "2026-07-01T00:00:00Z"}
	  ]
	}`)
	n, err := s.Import(data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("t_old")
	assert.False(t, ok, "import replaces, never merges")
}

func TestImportDropsUndoHistory(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Add(testTask("t_old", "Old Task", 30, testNow))
	require.True(t, s.Delete("t_old"))

	_, err := s.Import([]byte(`{"version": "2.0", "tasks": []}`))
	require.NoError(t, err)

	// The delete record describes a pre-import task; undoing it would
	// leak that task into the imported collection.
	_, _, ok := s.Undo()
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestImportExportRoundTrip(t *testing.T) {
	s, mem, _ := newTestStore(t)
	s.Add(
		testTask("t_1", "Replace HVAC Filter", 90, testNow.AddDate(0, 0, 14)),
		testTask("t_2", "Clean Gutters", 180, testNow.AddDate(0, 0, 30)),
	)
	data, err := s.Export()
	require.NoError(t, err)

	other := New(mem)
	n, err := other.Import(data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, s.List(), other.List())
}

func TestImportUnreadable(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Add(testTask("t_1", "Replace HVAC Filter", 90, testNow))

	_, err := s.Import([]byte("this is not json"))
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.Equal(t, 1, s.Len(), "failed import leaves the store untouched")
}

func TestImportInvalidFormat(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Add(testTask("t_1", "Replace HVAC Filter", 90, testNow))

	// Valid JSON, wrong shape.
	_, err := s.Import([]byte(`{"version": "2.0"}`))
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = s.Import([]byte(`{"tasks": "nope"}`))
	assert.ErrorIs(t, err, ErrInvalidFormat)

	// Parseable JSON that is not an object reads as a format problem,
	// not an unreadable document.
	_, err = s.Import([]byte(`[{"id": "t_a"}]`))
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = s.Import([]byte(`"tasks"`))
	assert.ErrorIs(t, err, ErrInvalidFormat)

	assert.Equal(t, 1, s.Len())
}

func TestImportIgnoresUnknownVersion(t *testing.T) {
	s, _, _ := newTestStore(t)
	n, err := s.Import([]byte(`{"version": "9.9", "tasks": []}`))
	require.NoError(t, err)
	assert.Zero(t, n)
}
