package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/vaccination-hubs/pkg/core/services"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Record the current weekly plan as a new run in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.requireDatabase()
			if err != nil {
				return err
			}

			if err := app.ensureAllocated(); err != nil {
				return err
			}

			result, err := services.PublishPlan(app.Ctx, database, app.Campaign, app.Logger, app.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Plan published!\n\n")
			fmt.Printf("Run ID:    %s\n", result.Run.ID)
			fmt.Printf("Allocated: %d of %d people\n", result.Run.AllocatedCount, result.Run.PeopleCount)
			fmt.Printf("Records:   %d\n\n", len(result.Allocations))

			return nil
		},
	}
}

// RunsCmd creates the runs command
func RunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List published runs, latest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.requireDatabase()
			if err != nil {
				return err
			}

			runs, err := services.ListRuns(app.Ctx, database, app.Logger)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No runs published yet.")
				return nil
			}

			fmt.Printf("\n%d runs:\n\n", len(runs))
			for _, run := range runs {
				fmt.Printf("  %s  %s  year %d  %d/%d allocated\n",
					run.ID,
					run.CreatedAt.Format("2006-01-02 15:04"),
					run.ReferenceYear,
					run.AllocatedCount,
					run.PeopleCount)
			}
			fmt.Println()

			return nil
		},
	}
}

// ShowRunCmd creates the showRun command
func ShowRunCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "showRun [run_id]",
		Short: "Show a published run (defaults to the latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.requireDatabase()
			if err != nil {
				return err
			}

			var runID string
			if len(args) > 0 {
				runID = args[0]
			}

			view, err := services.ViewRun(app.Ctx, database, app.Logger, runID)
			if err != nil {
				return err
			}

			fmt.Printf("\nRun %s (%s)\n\n", view.Run.ID, view.Run.CreatedAt.Format("2006-01-02 15:04"))
			for day, hubs := range view.Days {
				if len(hubs) == 0 {
					continue
				}
				fmt.Printf("%s:\n", dayName(day))
				for _, hub := range sortedKeys(hubs) {
					fmt.Printf("  %-20s %d people\n", hub, len(hubs[hub]))
				}
			}
			fmt.Println()

			return nil
		},
	}
}
