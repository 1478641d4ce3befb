package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/pkg/core/services"
)

// AllocateCmd creates the allocate command
func AllocateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "allocate <hub> <day>",
		Short: "Fill a hub's slots for one day (adds to any existing allocation)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hub := args[0]
			day, err := parseDay(args[1])
			if err != nil {
				return err
			}

			app.Logger.Info("allocate command", zap.String("hub", hub), zap.Int("day", day))

			ssns, err := app.Campaign.Allocate(hub, day)
			if err != nil {
				return err
			}

			available, err := app.Campaign.DailyAvailable(hub, day)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s on %s: %d of %d slots filled\n\n", hub, dayName(day), len(ssns), available)
			printSSNs(app, ssns)

			return nil
		},
	}
}

// WeekAllocateCmd creates the weekAllocate command
func WeekAllocateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "weekAllocate",
		Short: "Clear the allocation and allocate every hub for every day of the week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.AllocateWeek(app.Campaign, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Week allocated: %d of %d people\n\n", result.Allocated, result.People)
			for day, hubs := range result.Plan {
				fmt.Printf("%s:\n", dayName(day))
				for _, hub := range app.Campaign.Hubs() {
					fmt.Printf("  %-20s %d\n", hub, len(hubs[hub]))
				}
			}
			fmt.Println()

			return nil
		},
	}
}

// ClearCmd creates the clear command
func ClearCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear every allocation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Campaign.ClearAllocation()
			fmt.Printf("\n✓ Allocation cleared\n\n")
			return nil
		},
	}
}

func printSSNs(app *AppContext, ssns []string) {
	for i, ssn := range ssns {
		person, err := app.Campaign.Person(ssn)
		if err != nil {
			person = ssn
		}
		age, _ := app.Campaign.Age(ssn)
		fmt.Printf("  %4d. %s (age %d)\n", i+1, person, age)
	}
	if len(ssns) > 0 {
		fmt.Println()
	}
}
