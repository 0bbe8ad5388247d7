package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fegodi/homekeep/internal/ical"
	"github.com/fegodi/homekeep/internal/ops"
)

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Export due dates as an iCalendar (.ics) feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.close()

			feed := ical.Calendar(app.tasks.List(), app.clock.Now())
			out, _ := cmd.Flags().GetString("out")
			if out == "" || out == "-" {
				fmt.Print(feed)
				return nil
			}
			if err := os.WriteFile(out, []byte(feed), 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote calendar for %d tasks to %s.\n", app.tasks.Len(), out)
			return nil
		},
	}
	cmd.Flags().String("out", "", "Output file (default stdout)")
	return cmd
}

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the data directory as a tar.gz",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = ops.ArchiveName(time.Now())
			}
			if err := ops.Backup(dataDir, out); err != nil {
				return err
			}
			abs, err := filepath.Abs(out)
			if err != nil {
				abs = out
			}
			fmt.Printf("Backed up %s to %s.\n", dataDir, abs)
			return nil
		},
	}
	cmd.Flags().String("out", "", "Archive path (default timestamped file in the working directory)")
	return cmd
}

func restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <archive>",
		Short: "Restore the data directory from a backup archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			if err := ops.Restore(args[0], dataDir); err != nil {
				return err
			}
			fmt.Printf("Restored %s from %s.\n", dataDir, args[0])
			return nil
		},
	}
}
