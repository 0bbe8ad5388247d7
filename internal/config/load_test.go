package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fegodi/homekeep/internal/model"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg.Schedule)
}

func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
schedule:
  due_soon_days: 21
  undo_depth: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 21, cfg.Schedule.DueSoonDays)
	assert.Equal(t, 5, cfg.Schedule.UndoDepth)
	// Untouched knobs keep their defaults.
	assert.Equal(t, 7, cfg.Schedule.StaggerCapDays)
	assert.Equal(t, 3, cfg.Schedule.BaseDelay(model.CategorySafety))
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schedule: [nope"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultsOrdering(t *testing.T) {
	d := Default()
	assert.Less(t, d.Priority(model.CategorySafety), d.Priority(model.CategoryHVAC))
	assert.Equal(t, d.DefaultPriority, d.Priority(model.Category("Unknown")))
	assert.Equal(t, d.DefaultBaseDelay, d.BaseDelay(model.Category("Unknown")))
}
