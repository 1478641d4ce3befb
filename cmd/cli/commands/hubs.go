package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

// HubsCmd creates the hubs command
func HubsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "hubs",
		Short: "List hubs with their staffing and hourly capacity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hubs := app.Campaign.Hubs()
			fmt.Printf("\n%d hubs:\n\n", len(hubs))
			fmt.Printf("  %-20s %8s %8s %8s %10s\n", "Hub", "Doctors", "Nurses", "Others", "Per hour")

			for _, name := range hubs {
				hub, err := app.Campaign.Hub(name)
				if err != nil {
					return err
				}

				capacity, err := app.Campaign.EstimateHourlyCapacity(name)
				if errors.Is(err, model.ErrUnstaffedHub) {
					fmt.Printf("  %-20s %8s %8s %8s %10s\n", name, "-", "-", "-", "unstaffed")
					continue
				}
				if err != nil {
					return err
				}
				fmt.Printf("  %-20s %8d %8d %8d %10d\n", name, hub.Doctors, hub.Nurses, hub.Others, capacity)
			}
			fmt.Println()

			return nil
		},
	}
}
