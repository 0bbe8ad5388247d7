package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fegodi/homekeep/internal/config"
	"github.com/fegodi/homekeep/internal/kv"
	"github.com/fegodi/homekeep/internal/schedule"
	"github.com/fegodi/homekeep/internal/store"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "homekeep",
		Short:   "HomeKeep - recurring home maintenance tracker",
		Version: Version,
	}

	rootCmd.PersistentFlags().String("data-dir", defaultDataDir(), "Data directory")
	rootCmd.PersistentFlags().String("store", "file", "Storage backend (file, sqlite, memory)")
	rootCmd.PersistentFlags().String("config", "", "Optional YAML config file")

	rootCmd.AddCommand(setupCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(completeCmd())
	rootCmd.AddCommand(snoozeCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(undoCmd())
	rootCmd.AddCommand(partsCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(clearCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(backupCmd())
	rootCmd.AddCommand(restoreCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".homekeep"
	}
	return filepath.Join(home, ".homekeep")
}

type app struct {
	kv         kv.Store
	cfg        *config.Config
	tasks      *store.Store
	scheduler  schedule.Scheduler
	classifier schedule.Classifier
	clock      schedule.Clock

	close func() error
}

func openApp(cmd *cobra.Command) (*app, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	backend, _ := cmd.Flags().GetString("store")
	cfgPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var (
		kvStore kv.Store
		closer  = func() error { return nil }
	)
	switch backend {
	case "file":
		kvStore, err = kv.NewFileStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
	case "sqlite":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, err
		}
		s, err := kv.NewSQLiteStore(filepath.Join(dataDir, "homekeep.db"))
		if err != nil {
			return nil, err
		}
		kvStore = s
		closer = s.Close
	case "memory":
		kvStore = kv.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}

	clock := schedule.SystemClock{}
	tasks := store.New(kvStore,
		store.WithClock(clock),
		store.WithUndoDepth(cfg.Schedule.UndoDepth),
	)
	if err := tasks.Load(context.Background()); err != nil {
		return nil, err
	}

	return &app{
		kv:         kvStore,
		cfg:        cfg,
		tasks:      tasks,
		scheduler:  schedule.NewScheduler(cfg.Schedule),
		classifier: schedule.NewClassifier(cfg.Schedule),
		clock:      clock,
		close:      closer,
	}, nil
}
