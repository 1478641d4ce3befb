package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/vaccination-hubs/pkg/core/calendar"
	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

// AvailableCmd creates the available command
func AvailableCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "Show the slots available at each hub for every day of the week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			available, err := app.Campaign.Available()
			if err != nil {
				return err
			}

			hours, err := app.Campaign.Hours()
			if err != nil {
				return err
			}

			header := []string{fmt.Sprintf("%-20s", "Hub")}
			for day := 0; day < model.DaysPerWeek; day++ {
				header = append(header, fmt.Sprintf("%9.9s", dayName(day)))
			}
			fmt.Printf("\n  %s\n", strings.Join(header, " "))

			hoursRow := []string{fmt.Sprintf("%-20s", "(hours)")}
			for _, h := range hours {
				hoursRow = append(hoursRow, fmt.Sprintf("%9d", h))
			}
			fmt.Printf("  %s\n", strings.Join(hoursRow, " "))

			for _, hub := range app.Campaign.Hubs() {
				row := []string{fmt.Sprintf("%-20s", hub)}
				for _, slots := range available[hub] {
					if slots == calendar.Unavailable {
						row = append(row, fmt.Sprintf("%9s", "-"))
						continue
					}
					row = append(row, fmt.Sprintf("%9d", slots))
				}
				fmt.Printf("  %s\n", strings.Join(row, " "))
			}
			fmt.Println()

			return nil
		},
	}
}
