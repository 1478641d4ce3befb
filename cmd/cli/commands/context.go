package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/internal/config"
	"github.com/jakechorley/vaccination-hubs/pkg/core/campaign"
	"github.com/jakechorley/vaccination-hubs/pkg/core/services"
	"github.com/jakechorley/vaccination-hubs/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Campaign *campaign.Campaign
	// Database is nil when no databaseURL is configured
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
	Now      func() time.Time
}

// requireDatabase returns the database or an error if none is configured
func (app *AppContext) requireDatabase() (db.Database, error) {
	if app.Database == nil {
		return nil, fmt.Errorf("no database configured: set databaseURL in the campaign config")
	}
	return app.Database, nil
}

// ensureAllocated runs a weekly allocation if nobody has been allocated yet
func (app *AppContext) ensureAllocated() error {
	if len(app.Campaign.AllocatedSSNs()) > 0 {
		return nil
	}

	app.Logger.Info("No allocation yet, allocating the week")
	if _, err := services.AllocateWeek(app.Campaign, app.Logger); err != nil {
		return err
	}
	return nil
}
