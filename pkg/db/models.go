package db

import "time"

// AllocationRun represents one published weekly allocation
type AllocationRun struct {
	ID             string
	ReferenceYear  int
	PeopleCount    int
	AllocatedCount int
	CreatedAt      time.Time
}

// Allocation represents a person placed at a hub on a day within a run
type Allocation struct {
	ID          string
	RunID       string
	Hub         string
	Day         int
	Position    int
	SSN         string
	AgeInterval string
}
