package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fegodi/homekeep/internal/catalog"
	"github.com/fegodi/homekeep/internal/model"
	"github.com/fegodi/homekeep/internal/schedule"
	"github.com/fegodi/homekeep/internal/store"
)

// Recurrence presets accepted wherever a frequency flag takes a value.
var frequencyPresets = map[string]int{
	"weekly":    7,
	"biweekly":  14,
	"monthly":   30,
	"quarterly": 90,
	"biannual":  180,
	"yearly":    365,
}

// parseFrequency accepts a preset name or a positive day count.
func parseFrequency(v string) (int, error) {
	if days, ok := frequencyPresets[strings.ToLower(strings.TrimSpace(v))]; ok {
		return days, nil
	}
	days, err := strconv.Atoi(v)
	if err != nil || days <= 0 {
		return 0, fmt.Errorf("frequency must be a positive day count or one of weekly, biweekly, monthly, quarterly, biannual, yearly (got %q)", v)
	}
	return days, nil
}

func shortID(id model.TaskID) string {
	s := string(id)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// resolveTask accepts a full id, a unique id prefix, or an exact title.
func resolveTask(app *app, arg string) (model.Task, error) {
	if t, ok := app.tasks.Get(model.TaskID(arg)); ok {
		return t, nil
	}
	var matches []model.Task
	for _, t := range app.tasks.List() {
		if strings.HasPrefix(string(t.ID), arg) || strings.EqualFold(t.Title, arg) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.Task{}, fmt.Errorf("no task matches %q", arg)
	default:
		return model.Task{}, fmt.Errorf("%q is ambiguous (%d matches)", arg, len(matches))
	}
}

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task from the catalog or a custom one",
		RunE:  runAdd,
	}

	cmd.Flags().String("from-template", "", "Exact catalog template title")
	cmd.Flags().String("title", "", "Custom task title")
	cmd.Flags().String("category", string(model.CategoryKitchen), "Category for a custom task")
	cmd.Flags().String("frequency", "quarterly", "Recurrence: days or a preset (weekly, monthly, yearly, ...)")
	cmd.Flags().String("notes", "", "Notes")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	now := app.clock.Now()

	if tplTitle, _ := cmd.Flags().GetString("from-template"); tplTitle != "" {
		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		tpl, ok := cat.ByTitle(tplTitle)
		if !ok {
			return fmt.Errorf("no catalog template titled %q", tplTitle)
		}
		t := schedule.FromTemplate(tpl, now)
		app.tasks.Add(t)
		fmt.Printf("Added %q, due %s.\n", t.Title, t.NextDue.Format("2006-01-02"))
		return nil
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		return errors.New("either --from-template or --title is required")
	}
	catFlag, _ := cmd.Flags().GetString("category")
	category := model.Category(catFlag)
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", catFlag)
	}
	freqFlag, _ := cmd.Flags().GetString("frequency")
	freq, err := parseFrequency(freqFlag)
	if err != nil {
		return err
	}
	notes, _ := cmd.Flags().GetString("notes")

	tpl := model.TaskTemplate{Title: title, Category: category, FrequencyDays: freq, Notes: notes}
	t := schedule.FromTemplate(tpl, now)
	app.tasks.Add(t)
	fmt.Printf("Added %q, due %s.\n", t.Title, t.NextDue.Format("2006-01-02"))
	return nil
}

func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task> [task...]",
		Short: "Mark one or more tasks done",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.close()

			for _, arg := range args {
				t, err := resolveTask(app, arg)
				if err != nil {
					return err
				}
				done, err := app.tasks.Complete(t.ID)
				if errors.Is(err, store.ErrCompletionInFlight) {
					continue
				}
				if err != nil {
					return err
				}
				fmt.Printf("Completed %q. Next due %s.\n", done.Title, done.NextDue.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func snoozeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snooze <task>",
		Short: "Push a task's due date out from today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.close()

			days, _ := cmd.Flags().GetInt("days")
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			snoozed, ok := app.tasks.Snooze(t.ID, days)
			if !ok {
				return fmt.Errorf("no task matches %q", args[0])
			}
			fmt.Printf("Snoozed %q until %s.\n", snoozed.Title, snoozed.NextDue.Format("2006-01-02"))
			return nil
		},
	}
	cmd.Flags().Int("days", 7, "Days from today")
	return cmd
}

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <task>",
		Short: "Edit a task's title, category, frequency or notes",
		Long: `Edits never touch scheduling state: the due date, completion
history and parts list stay as they are.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.close()

			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}

			var patch store.Patch
			if cmd.Flags().Changed("title") {
				v, _ := cmd.Flags().GetString("title")
				patch.Title = &v
			}
			if cmd.Flags().Changed("category") {
				v, _ := cmd.Flags().GetString("category")
				c := model.Category(v)
				if !c.Valid() {
					return fmt.Errorf("unknown category %q", v)
				}
				patch.Category = &c
			}
			if cmd.Flags().Changed("frequency") {
				v, _ := cmd.Flags().GetString("frequency")
				days, err := parseFrequency(v)
				if err != nil {
					return err
				}
				patch.FrequencyDays = &days
			}
			if cmd.Flags().Changed("notes") {
				v, _ := cmd.Flags().GetString("notes")
				patch.Notes = &v
			}

			updated, ok := app.tasks.Edit(t.ID, patch)
			if !ok {
				return fmt.Errorf("no task matches %q", args[0])
			}
			fmt.Printf("Updated %q.\n", updated.Title)
			return nil
		},
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("category", "", "New category")
	cmd.Flags().String("frequency", "", "New recurrence: days or a preset")
	cmd.Flags().String("notes", "", "New notes")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task>",
		Short: "Delete a task (undoable)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.close()

			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			app.tasks.Delete(t.ID)
			fmt.Printf("Deleted %q. Run \"homekeep undo\" to restore it.\n", t.Title)
			return nil
		},
	}
}

func undoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the most recent completion or deletion",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.close()

			action, t, ok := app.tasks.Undo()
			if !ok {
				fmt.Println("Nothing to undo.")
				return nil
			}
			switch action {
			case store.ActionComplete:
				fmt.Printf("Undid completion of %q.\n", t.Title)
			case store.ActionDelete:
				fmt.Printf("Restored %q.\n", t.Title)
			}
			return nil
		},
	}
}
