package services

import (
	"context"
	"cmp"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
	"github.com/jakechorley/vaccination-hubs/pkg/db"
)

// ListRunsStore defines the database operations needed for listing published runs
type ListRunsStore interface {
	GetRuns(ctx context.Context) ([]db.AllocationRun, error)
}

// ViewRunStore defines the database operations needed for reading published runs
type ViewRunStore interface {
	ListRunsStore
	GetAllocations(ctx context.Context, runID string) ([]db.Allocation, error)
}

// RunView is a published run with its allocations grouped by day and hub
type RunView struct {
	Run  db.AllocationRun
	Days [model.DaysPerWeek]map[string][]string
}

// ListRuns returns every published run, latest first
func ListRuns(ctx context.Context, database ListRunsStore, logger *zap.Logger) ([]db.AllocationRun, error) {
	logger.Debug("Fetching runs")
	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	slices.SortStableFunc(runs, func(a, b db.AllocationRun) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	logger.Debug("Found runs", zap.Int("count", len(runs)))
	return runs, nil
}

// ViewRun loads a published run. If runID is empty, it defaults to the latest run.
func ViewRun(ctx context.Context, database ViewRunStore, logger *zap.Logger, runID string) (*RunView, error) {
	runs, err := ListRuns(ctx, database, logger)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs found")
	}

	var target *db.AllocationRun
	if runID == "" {
		target = &runs[0]
		logger.Debug("No run ID provided, using latest run", zap.String("id", target.ID))
	} else {
		for i := range runs {
			if runs[i].ID == runID {
				target = &runs[i]
				break
			}
		}
		if target == nil {
			return nil, fmt.Errorf("run not found: %s", runID)
		}
	}

	allocations, err := database.GetAllocations(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocations: %w", err)
	}

	view := &RunView{Run: *target}
	for day := range view.Days {
		view.Days[day] = make(map[string][]string)
	}

	// Group in day, hub, position order
	slices.SortStableFunc(allocations, func(a, b db.Allocation) int {
		return cmp.Or(
			cmp.Compare(a.Day, b.Day),
			cmp.Compare(a.Hub, b.Hub),
			cmp.Compare(a.Position, b.Position),
		)
	})
	for _, allocation := range allocations {
		if !model.ValidDay(allocation.Day) {
			logger.Warn("Skipping allocation with invalid day",
				zap.String("id", allocation.ID),
				zap.Int("day", allocation.Day))
			continue
		}
		view.Days[allocation.Day][allocation.Hub] = append(view.Days[allocation.Day][allocation.Hub], allocation.SSN)
	}

	logger.Debug("Loaded run",
		zap.String("id", target.ID),
		zap.Int("allocations", len(allocations)))

	return view, nil
}
