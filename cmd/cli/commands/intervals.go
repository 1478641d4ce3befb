package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// IntervalsCmd creates the intervals command
func IntervalsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "intervals [label]",
		Short: "List the age intervals with their population, or the people in one interval",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ssns, err := app.Campaign.InInterval(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("\n%d people in %s:\n\n", len(ssns), args[0])
				for _, ssn := range ssns {
					person, err := app.Campaign.Person(ssn)
					if err != nil {
						return err
					}
					fmt.Printf("  %s\n", person)
				}
				fmt.Println()
				return nil
			}

			fmt.Printf("\nAge intervals (reference year %d):\n\n", app.Campaign.ReferenceYear())
			for _, label := range app.Campaign.AgeIntervals() {
				ssns, err := app.Campaign.InInterval(label)
				if err != nil {
					return err
				}
				fmt.Printf("  %-10s %6d people\n", label, len(ssns))
			}
			fmt.Println()

			return nil
		},
	}
}
