package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/vaccination-hubs/pkg/core/services"
)

// ReportCmd creates the report command
func ReportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the share of people allocated, overall and per age interval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ensureAllocated(); err != nil {
				return err
			}

			report, err := services.ReportAllocation(app.Campaign, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nAllocated: %.1f%% of %d people\n\n", report.PropAllocated*100, app.Campaign.CountPeople())
			fmt.Printf("  %-10s %12s %14s\n", "Interval", "Of everyone", "Of allocated")
			for _, label := range report.Intervals {
				fmt.Printf("  %-10s %11.1f%% %13.1f%%\n", label,
					report.PropAllocatedAge[label]*100,
					report.DistributionAllocated[label]*100)
			}
			fmt.Println()

			return nil
		},
	}
}
