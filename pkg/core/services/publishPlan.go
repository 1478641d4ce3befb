package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/pkg/core/campaign"
	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
	"github.com/jakechorley/vaccination-hubs/pkg/db"
)

// PublishPlanStore defines the database operations needed for publishing a plan
type PublishPlanStore interface {
	PublishRun(ctx context.Context, run *db.AllocationRun, allocations []db.Allocation) error
}

// PublishResult represents a published allocation run
type PublishResult struct {
	Run         *db.AllocationRun
	Allocations []db.Allocation
}

// PublishPlan records the current allocation as a new run.
// Returns ErrNothingAllocated when there is nothing to publish.
func PublishPlan(ctx context.Context, database PublishPlanStore, c *campaign.Campaign, logger *zap.Logger, now time.Time) (*PublishResult, error) {
	allocated := c.AllocatedSSNs()
	if len(allocated) == 0 {
		return nil, fmt.Errorf("cannot publish plan: %w", model.ErrNothingAllocated)
	}

	run := &db.AllocationRun{
		ID:             uuid.New().String(),
		ReferenceYear:  c.ReferenceYear(),
		PeopleCount:    c.CountPeople(),
		AllocatedCount: len(allocated),
		CreatedAt:      now,
	}

	// Step 1: Build one record per placed person
	people := peopleBySSN(c.People())
	intervals := c.Intervals()
	var allocations []db.Allocation
	for day, hubs := range c.Plan() {
		for _, hub := range c.Hubs() {
			for position, ssn := range hubs[hub] {
				label := ""
				if interval, ok := intervals.Classify(people[ssn].Age(run.ReferenceYear)); ok {
					label = interval.Label()
				}
				allocations = append(allocations, db.Allocation{
					ID:          uuid.New().String(),
					RunID:       run.ID,
					Hub:         hub,
					Day:         day,
					Position:    position,
					SSN:         ssn,
					AgeInterval: label,
				})
			}
		}
	}

	logger.Debug("Publishing plan",
		zap.String("run_id", run.ID),
		zap.Int("allocations", len(allocations)))

	// Step 2: Store the run and its records together
	if err := database.PublishRun(ctx, run, allocations); err != nil {
		return nil, fmt.Errorf("failed to publish run: %w", err)
	}

	logger.Info("Plan published",
		zap.String("run_id", run.ID),
		zap.Int("allocated", run.AllocatedCount),
		zap.Int("people", run.PeopleCount))

	return &PublishResult{Run: run, Allocations: allocations}, nil
}
