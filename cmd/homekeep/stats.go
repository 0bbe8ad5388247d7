package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fegodi/homekeep/internal/analytics"
	"github.com/fegodi/homekeep/internal/links"
	"github.com/fegodi/homekeep/internal/model"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Home health score, streak and completion history",
		RunE:  runStats,
	}
	cmd.Flags().Bool("pros", false, "Print find-a-pro links per category")
	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	now := app.clock.Now()
	sum := analytics.Calculate(app.tasks.List(), now)

	fmt.Printf("Home health:  %d/100\n", sum.HealthScore)
	fmt.Printf("Streak:       %s\n", plural(sum.Streak, "day"))
	fmt.Printf("Last 30 days: %s\n", plural(sum.Completions30, "completion"))
	fmt.Printf("All time:     %s across %s\n",
		plural(sum.TotalCompletions, "completion"), plural(sum.TaskCount, "task"))
	if sum.OverdueCount > 0 {
		fmt.Printf("Overdue:      %d\n", sum.OverdueCount)
	}

	fmt.Println("\nBy category:")
	showPros, _ := cmd.Flags().GetBool("pros")
	for _, cat := range model.Categories {
		cs, ok := sum.Categories[cat]
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %-12s %d tasks, %d done", cat, cs.Tasks, cs.Completions)
		if cs.Overdue > 0 {
			line += fmt.Sprintf(", %d overdue", cs.Overdue)
		}
		fmt.Println(line)
		if showPros {
			fmt.Printf("      %s\n", links.FindPro(cat))
		}
	}

	fmt.Println("\nMonthly activity:")
	for _, m := range sum.Monthly {
		fmt.Printf("  %s %-3d %s\n", m.Label, m.Count, strings.Repeat("#", m.Count))
	}
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
