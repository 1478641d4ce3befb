package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/vaccination-hubs/pkg/core/services"
)

// ExportCmd creates the export command
func ExportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the weekly plan to an .xlsx workbook, one sheet per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = app.Cfg.ExportDir
			}

			if err := app.ensureAllocated(); err != nil {
				return err
			}

			path, err := services.ExportPlan(app.Campaign, dir, app.Now(), app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Plan exported to %s\n\n", path)
			return nil
		},
	}

	cmd.Flags().String("dir", "", "Directory to write the workbook to (default: exportDir from config)")

	return cmd
}
