package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/internal/config"
	"github.com/jakechorley/vaccination-hubs/pkg/core/campaign"
)

// BuildCampaign creates a campaign from the configuration: hubs and their staffing,
// the weekly hours with overrides applied, and the age intervals.
// People are loaded separately with LoadPeople.
func BuildCampaign(cfg *config.Config, referenceYear int, logger *zap.Logger) (*campaign.Campaign, error) {
	logger.Debug("Building campaign",
		zap.Int("reference_year", referenceYear),
		zap.Int("hubs", len(cfg.Hubs)))

	c := campaign.New(referenceYear, logger)

	// Step 1: Hubs and staffing
	for _, hub := range cfg.Hubs {
		if err := c.DefineHub(hub.Name); err != nil {
			return nil, fmt.Errorf("failed to define hub %s: %w", hub.Name, err)
		}
		if err := c.SetStaff(hub.Name, hub.Doctors, hub.Nurses, hub.Others); err != nil {
			return nil, fmt.Errorf("failed to set staff for hub %s: %w", hub.Name, err)
		}
	}

	// Step 2: Working hours
	hours, err := cfg.WeeklyHours()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve weekly hours: %w", err)
	}
	if err := c.SetHours(hours...); err != nil {
		return nil, fmt.Errorf("failed to set hours: %w", err)
	}

	// Step 3: Age intervals
	c.SetAgeIntervals(cfg.AgeIntervals...)

	logger.Info("Campaign built",
		zap.Strings("hubs", c.Hubs()),
		zap.Ints("hours", hours),
		zap.Strings("intervals", c.AgeIntervals()))

	return c, nil
}
