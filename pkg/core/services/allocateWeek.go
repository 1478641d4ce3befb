package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/pkg/core/campaign"
	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

// WeekResult is the outcome of a weekly allocation pass
type WeekResult struct {
	// Plan maps hub names to allocated SSNs, one map per day
	Plan      []map[string][]string
	People    int
	Allocated int
}

// AllocateWeek clears any previous allocation and allocates every hub for every day
func AllocateWeek(c *campaign.Campaign, logger *zap.Logger) (*WeekResult, error) {
	logger.Debug("Starting weekly allocation", zap.Int("people", c.CountPeople()))

	c.ClearAllocation()
	plan, err := c.WeekAllocate()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate week: %w", err)
	}

	result := &WeekResult{
		Plan:      plan,
		People:    c.CountPeople(),
		Allocated: len(c.AllocatedSSNs()),
	}

	logger.Info("Weekly allocation complete",
		zap.Int("people", result.People),
		zap.Int("allocated", result.Allocated))

	return result, nil
}

// AllocationReport summarises how the current allocation covers the registry
type AllocationReport struct {
	PropAllocated         float64
	PropAllocatedAge      map[string]float64
	DistributionAllocated map[string]float64
	// Intervals lists the interval labels lowest first, for stable display
	Intervals []string
}

// ReportAllocation computes the allocation proportions. With nobody allocated the
// proportions are zero and the distribution is empty.
func ReportAllocation(c *campaign.Campaign, logger *zap.Logger) (*AllocationReport, error) {
	report := &AllocationReport{Intervals: c.AgeIntervals()}

	var err error
	report.PropAllocated, err = c.PropAllocated()
	if err != nil {
		return nil, fmt.Errorf("failed to compute allocated share: %w", err)
	}

	report.PropAllocatedAge, err = c.PropAllocatedAge()
	if err != nil {
		return nil, fmt.Errorf("failed to compute allocated share per interval: %w", err)
	}

	report.DistributionAllocated, err = c.DistributionAllocated()
	if errors.Is(err, model.ErrNothingAllocated) {
		logger.Warn("Nobody allocated yet, distribution is empty")
		report.DistributionAllocated = map[string]float64{}
	} else if err != nil {
		return nil, fmt.Errorf("failed to compute distribution: %w", err)
	}

	return report, nil
}
