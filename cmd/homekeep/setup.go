package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fegodi/homekeep/internal/catalog"
	"github.com/fegodi/homekeep/internal/model"
	"github.com/fegodi/homekeep/internal/schedule"
	"github.com/fegodi/homekeep/internal/settings"
)

func setupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Run the home survey and schedule recommended tasks",
		Long: `Answers a short survey about your home, selects the applicable
maintenance tasks from the catalog and schedules them with staggered
due dates (safety checks first, seasonal work anchored to the calendar).

Unanswered dimensions never exclude a task. Multi-select dimensions
(features, equipment) take comma-separated values; run "setup --options"
to see the valid answers.`,
		RunE: runSetup,
	}

	cmd.Flags().String("home-type", "", "house, townhouse, condo or apartment")
	cmd.Flags().String("heating", "", "Heating system")
	cmd.Flags().String("cooling", "", "Cooling system")
	cmd.Flags().String("water-heater", "", "Water heater type")
	cmd.Flags().StringSlice("features", nil, "Home features (comma separated)")
	cmd.Flags().StringSlice("equipment", nil, "Owned equipment (comma separated)")
	cmd.Flags().Bool("options", false, "Print the survey options and exit")
	cmd.Flags().Bool("force", false, "Re-run even if setup already completed")

	return cmd
}

func runSetup(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	if opt, _ := cmd.Flags().GetBool("options"); opt {
		printSurveyOptions(cat)
		return nil
	}

	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	ctx := context.Background()
	force, _ := cmd.Flags().GetBool("force")
	if settings.SetupCompleted(ctx, app.kv) && !force {
		fmt.Println("Setup already completed. Re-run with --force to schedule again.")
		return nil
	}

	homeType, _ := cmd.Flags().GetString("home-type")
	heating, _ := cmd.Flags().GetString("heating")
	cooling, _ := cmd.Flags().GetString("cooling")
	waterHeater, _ := cmd.Flags().GetString("water-heater")
	features, _ := cmd.Flags().GetStringSlice("features")
	equipment, _ := cmd.Flags().GetStringSlice("equipment")

	profile := model.HouseholdProfile{
		HomeType:    homeType,
		Heating:     heating,
		Cooling:     cooling,
		WaterHeater: waterHeater,
		Features:    features,
		Equipment:   equipment,
	}

	selected := catalog.SelectApplicable(cat.Templates, profile)
	tasks := app.scheduler.ScheduleInitial(selected, app.clock.Now())
	app.tasks.Add(tasks...)

	if err := settings.MarkSetupCompleted(ctx, app.kv); err != nil {
		fmt.Printf("warning: could not record setup flag: %v\n", err)
	}

	fmt.Printf("Scheduled %d tasks for your home.\n", len(tasks))
	buckets := app.classifier.Categorize(tasks, app.clock.Now())
	if len(buckets.DueSoon) > 0 {
		fmt.Println("\nComing up first:")
		for i, t := range buckets.DueSoon {
			if i == 5 {
				break
			}
			days := schedule.DaysUntilDue(t.NextDue, app.clock.Now())
			fmt.Printf("  %-40s %s\n", t.Title, schedule.DueText(days))
		}
	}
	return nil
}

func printSurveyOptions(cat *catalog.Catalog) {
	for _, dim := range model.Dimensions {
		opts := cat.Survey[dim]
		if len(opts) == 0 {
			continue
		}
		kind := "single"
		if dim.Multi() {
			kind = "multi"
		}
		fmt.Printf("%s (%s):\n", dim, kind)
		for _, o := range opts {
			fmt.Printf("  %-18s %s\n", o.ID, o.Label)
		}
		fmt.Println(strings.Repeat("-", 32))
	}
}
