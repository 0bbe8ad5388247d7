package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fegodi/homekeep/internal/links"
	"github.com/fegodi/homekeep/internal/model"
)

func partsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parts",
		Short: "Shopping list of parts for tasks coming due",
		RunE:  runPartsList,
	}
	cmd.Flags().Int("within", 7, "Include tasks due within this many days")
	cmd.Flags().Bool("links", false, "Print shopping links per part")

	add := &cobra.Command{
		Use:   "add <task>",
		Short: "Attach a part to a task",
		Args:  cobra.ExactArgs(1),
		RunE:  runPartsAdd,
	}
	add.Flags().String("name", "", "Part name (e.g. furnace filter)")
	add.Flags().String("spec", "", "Size or model number")
	add.Flags().Int("qty", 1, "Quantity")
	_ = add.MarkFlagRequired("name")

	remove := &cobra.Command{
		Use:   "remove <task> <part-id>",
		Short: "Remove a part from a task",
		Args:  cobra.ExactArgs(2),
		RunE:  runPartsRemove,
	}

	cmd.AddCommand(add, remove)
	return cmd
}

func runPartsList(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	within, _ := cmd.Flags().GetInt("within")
	showLinks, _ := cmd.Flags().GetBool("links")

	due := app.tasks.PartsDueWithin(within, app.clock.Now())
	if len(due) == 0 {
		fmt.Printf("No parts needed for tasks due in the next %d days.\n", within)
		return nil
	}

	fmt.Printf("Shopping list (%d items):\n", len(due))
	for _, d := range due {
		spec := d.Spec
		if spec != "" {
			spec = " (" + spec + ")"
		}
		fmt.Printf("  %dx %s%s  for %q  %s\n", d.Qty, d.Name, spec, d.TaskTitle, dueInText(d.DaysUntil))
		if showLinks {
			fmt.Printf("      %s\n", links.AmazonSearch(d.Part))
			fmt.Printf("      %s\n", links.GoogleShopping(d.Part))
		}
	}
	return nil
}

func dueInText(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("(%dd overdue)", -days)
	case days == 0:
		return "(due today)"
	default:
		return fmt.Sprintf("(in %dd)", days)
	}
}

func runPartsAdd(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	t, err := resolveTask(app, args[0])
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")
	spec, _ := cmd.Flags().GetString("spec")
	qty, _ := cmd.Flags().GetInt("qty")

	part, ok := app.tasks.AddPart(t.ID, name, spec, qty)
	if !ok {
		return fmt.Errorf("no task matches %q", args[0])
	}
	fmt.Printf("Added part %q to %q (id %s).\n", part.Name, t.Title, part.ID)
	return nil
}

func runPartsRemove(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer app.close()

	t, err := resolveTask(app, args[0])
	if err != nil {
		return err
	}
	if !app.tasks.RemovePart(t.ID, model.PartID(args[1])) {
		return fmt.Errorf("no part %q on task %q", args[1], t.Title)
	}
	fmt.Printf("Removed part from %q.\n", t.Title)
	return nil
}
