package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fegodi/homekeep/internal/model"
	"github.com/fegodi/homekeep/internal/schedule"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show tasks grouped by urgency or category",
		RunE:  runList,
	}

	cmd.Flags().String("view", "status", "View mode (status, category, critical)")
	cmd.Flags().String("search", "", "Filter by title, category or notes")
	cmd.Flags().String("category", "", "Filter by category")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	view, _ := cmd.Flags().GetString("view")
	query, _ := cmd.Flags().GetString("search")
	catFlag, _ := cmd.Flags().GetString("category")

	category := model.Category(catFlag)
	if catFlag != "" && !category.Valid() {
		return fmt.Errorf("unknown category %q", catFlag)
	}

	tasks := app.tasks.Search(query, category)
	if len(tasks) == 0 {
		fmt.Println("No tasks. Run \"homekeep setup\" or \"homekeep add\" to get started.")
		return nil
	}
	now := app.clock.Now()

	switch view {
	case "status":
		buckets := app.classifier.Categorize(tasks, now)
		printSection("Overdue", buckets.Overdue, now)
		printSection("Due Soon", buckets.DueSoon, now)
		printSection("Later", buckets.Later, now)
		printSection("Done", buckets.Done, now)
	case "category":
		for _, cat := range model.Categories {
			group := make([]model.Task, 0)
			for _, t := range tasks {
				if t.Category == cat {
					group = append(group, t)
				}
			}
			printSection(string(cat), group, now)
		}
	case "critical":
		critical := app.classifier.Critical(tasks, now)
		if len(critical) == 0 {
			fmt.Println("Nothing critical. Nice.")
			return nil
		}
		printSection("Needs Attention", critical, now)
	default:
		return fmt.Errorf("unknown view %q (want status, category or critical)", view)
	}
	return nil
}

func printSection(title string, tasks []model.Task, now time.Time) {
	if len(tasks) == 0 {
		return
	}
	fmt.Printf("\n%s (%d)\n", title, len(tasks))
	for _, t := range tasks {
		days := schedule.DaysUntilDue(t.NextDue, now)
		marker := " "
		if t.UserPriority {
			marker = "!"
		}
		fmt.Printf("  %s %-42s %-12s %-10s %s\n", marker, t.Title, t.Category, schedule.DueText(days), shortID(t.ID))
	}
}
