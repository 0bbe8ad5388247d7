// Package settings persists the small user preferences record and the
// one-time setup flag. Loads merge defaults so records written by older
// versions keep working.
package settings

import (
	"context"
	"encoding/json"

	"github.com/fegodi/homekeep/internal/kv"
)

const (
	SettingsKey = "homekeep_settings"
	SetupKey    = "homekeep_setup"

	setupDone = "done"
)

type Settings struct {
	DarkMode     bool   `json:"darkMode"`
	ReminderTime string `json:"reminderTime"` // "HH:MM"
}

func Defaults() Settings {
	return Settings{DarkMode: false, ReminderTime: "09:00"}
}

// Load reads the settings record, merging defaults for missing fields.
// Storage failures or an unreadable record yield the defaults.
func Load(ctx context.Context, store kv.Store) Settings {
	s := Defaults()
	raw, ok, err := store.Get(ctx, SettingsKey)
	if err != nil || !ok {
		return s
	}
	// Unmarshal over the defaults: absent fields keep their default.
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Defaults()
	}
	if s.ReminderTime == "" {
		s.ReminderTime = Defaults().ReminderTime
	}
	return s
}

func Save(ctx context.Context, store kv.Store, s Settings) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return store.Set(ctx, SettingsKey, string(b))
}

// SetupCompleted reports whether onboarding has run on this install.
func SetupCompleted(ctx context.Context, store kv.Store) bool {
	v, ok, err := store.Get(ctx, SetupKey)
	return err == nil && ok && v == setupDone
}

func MarkSetupCompleted(ctx context.Context, store kv.Store) error {
	return store.Set(ctx, SetupKey, setupDone)
}
