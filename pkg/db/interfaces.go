package db

import "context"

// RunStore defines the interface for allocation run operations
type RunStore interface {
	GetRuns(ctx context.Context) ([]AllocationRun, error)
	InsertRun(ctx context.Context, run *AllocationRun) error
}

// AllocationStore defines the interface for allocation record operations
type AllocationStore interface {
	GetAllocations(ctx context.Context, runID string) ([]Allocation, error)
	InsertAllocations(ctx context.Context, allocations []Allocation) error
}

// PublishStore records a run together with its allocations, all or nothing
type PublishStore interface {
	PublishRun(ctx context.Context, run *AllocationRun, allocations []Allocation) error
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	RunStore
	AllocationStore
	PublishStore
	Close()
}
