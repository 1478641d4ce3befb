package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/pkg/core/services"
)

// PeopleCmd creates the people command
func PeopleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "people [ssn]",
		Short: "Show how many people are registered, or one person's details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Printf("\n%d people registered\n\n", app.Campaign.CountPeople())
				return nil
			}

			ssn := args[0]
			person, err := app.Campaign.Person(ssn)
			if err != nil {
				return err
			}
			age, err := app.Campaign.Age(ssn)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s (age %d)\n", person, age)
			if placement, ok := app.Campaign.AllocationOf(ssn); ok {
				fmt.Printf("Allocated to %s on %s\n\n", placement.Hub, dayName(placement.Day))
			} else {
				fmt.Printf("Not allocated\n\n")
			}

			return nil
		},
	}
}

// LoadCmd creates the load command
func LoadCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Load people from a .csv or .xlsx file (header SSN,LAST,FIRST,YEAR)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			added, rejected, err := loadPeople(app, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Loaded %d people", added)
			if rejected > 0 {
				fmt.Printf(" (%d rows skipped)", rejected)
			}
			fmt.Printf("\n\n")

			return nil
		},
	}
}

// loadPeople loads a people file into the campaign, printing every skipped row
func loadPeople(app *AppContext, path string) (int, int, error) {
	rejected := 0
	added, err := services.LoadPeople(path, app.Campaign, app.Logger, func(line int, row string) {
		rejected++
		app.Logger.Warn("Skipped row", zap.String("file", path), zap.Int("line", line), zap.String("row", row))
		fmt.Printf("  ✗ line %d: %s\n", line, row)
	})
	return added, rejected, err
}
