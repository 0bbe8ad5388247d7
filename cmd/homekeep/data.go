package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fegodi/homekeep/internal/settings"
	"github.com/fegodi/homekeep/internal/store"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks to a JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.close()

			data, err := app.tasks.Export()
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			if out == "" || out == "-" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("Exported %d tasks to %s.\n", app.tasks.Len(), out)
			return nil
		},
	}
	cmd.Flags().String("out", "", "Output file (default stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all tasks from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			n, err := app.tasks.Import(data)
			switch {
			case errors.Is(err, store.ErrUnreadable):
				return fmt.Errorf("%s is not a readable backup", args[0])
			case errors.Is(err, store.ErrInvalidFormat):
				return fmt.Errorf("%s does not look like a task backup", args[0])
			case err != nil:
				return err
			}
			fmt.Printf("Imported %d tasks. Existing tasks were replaced.\n", n)
			return nil
		},
	}
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.close()

			ctx := context.Background()
			s := settings.Load(ctx, app.kv)

			changed := false
			if cmd.Flags().Changed("dark-mode") {
				s.DarkMode, _ = cmd.Flags().GetBool("dark-mode")
				changed = true
			}
			if cmd.Flags().Changed("reminder-time") {
				s.ReminderTime, _ = cmd.Flags().GetString("reminder-time")
				changed = true
			}
			if changed {
				if err := settings.Save(ctx, app.kv, s); err != nil {
					return err
				}
			}

			fmt.Printf("dark-mode:     %v\n", s.DarkMode)
			fmt.Printf("reminder-time: %s\n", s.ReminderTime)
			return nil
		},
	}
	cmd.Flags().Bool("dark-mode", false, "Enable dark mode")
	cmd.Flags().String("reminder-time", "", "Daily reminder time (HH:MM)")
	return cmd
}

func clearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return errors.New("refusing to delete all tasks without --yes")
			}
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.close()

			n := app.tasks.Len()
			app.tasks.Clear(context.Background())
			fmt.Printf("Deleted %d tasks.\n", n)
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "Confirm deletion")
	return cmd
}
