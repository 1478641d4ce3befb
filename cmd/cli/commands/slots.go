package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// SlotsCmd creates the slots command
func SlotsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "slots [day]",
		Short: "Show the time slot labels of one day, or of the whole week",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := app.Campaign.TimeSlots()
			if err != nil {
				return err
			}

			days := []int{0, 1, 2, 3, 4, 5, 6}
			if len(args) > 0 {
				day, err := parseDay(args[0])
				if err != nil {
					return err
				}
				days = []int{day}
			}

			fmt.Println()
			for _, day := range days {
				if len(slots[day]) == 0 {
					fmt.Printf("%-10s closed\n", dayName(day))
					continue
				}
				fmt.Printf("%-10s %s\n", dayName(day), strings.Join(slots[day], " "))
			}
			fmt.Println()

			return nil
		},
	}
}
