package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/cmd/cli/commands"
	"github.com/jakechorley/vaccination-hubs/internal/config"
	"github.com/jakechorley/vaccination-hubs/pkg/core/services"
	"github.com/jakechorley/vaccination-hubs/pkg/postgres"
	"github.com/jakechorley/vaccination-hubs/pkg/utils/logging"
)

var (
	env        string
	configPath string
	verbose    bool
	app        = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Vaccination hubs CLI - Allocate vaccination slots across hubs",
		Long: `A CLI tool for planning a vaccination campaign: hub capacity, weekly slots,
age-prioritised allocation of registered people, reporting and publishing of the plan.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the campaign config (default: campaign_config.<env>.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.HubsCmd(app))
	rootCmd.AddCommand(commands.AvailableCmd(app))
	rootCmd.AddCommand(commands.SlotsCmd(app))
	rootCmd.AddCommand(commands.IntervalsCmd(app))
	rootCmd.AddCommand(commands.PeopleCmd(app))
	rootCmd.AddCommand(commands.LoadCmd(app))
	rootCmd.AddCommand(commands.AllocateCmd(app))
	rootCmd.AddCommand(commands.WeekAllocateCmd(app))
	rootCmd.AddCommand(commands.ClearCmd(app))
	rootCmd.AddCommand(commands.ReportCmd(app))
	rootCmd.AddCommand(commands.ExportCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.RunsCmd(app))
	rootCmd.AddCommand(commands.ShowRunCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, campaign, people and database
func initApp() error {
	var err error
	app.Ctx = context.Background()
	app.Now = time.Now

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, logging.Options{Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	// Build the campaign
	referenceYear := app.Cfg.EffectiveReferenceYear(app.Now())
	app.Campaign, err = services.BuildCampaign(app.Cfg, referenceYear, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to build campaign: %w", err)
	}

	// Load people
	if app.Cfg.PeopleFile != "" {
		app.Logger.Info("Loading people", zap.String("file", app.Cfg.PeopleFile))
		added, err := services.LoadPeople(app.Cfg.PeopleFile, app.Campaign, app.Logger, func(line int, row string) {
			app.Logger.Warn("Skipped row", zap.Int("line", line), zap.String("row", row))
		})
		if err != nil {
			return fmt.Errorf("failed to load people: %w", err)
		}
		app.Logger.Debug("People loaded successfully", zap.Int("added", added))
	}

	// Connect to the database
	if app.Cfg.DatabaseURL != "" {
		app.Logger.Info("Connecting to database")
		database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.RunMigrations(app.Ctx); err != nil {
			database.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Database = database
		app.Logger.Info("Database initialized successfully")
	}

	return nil
}
