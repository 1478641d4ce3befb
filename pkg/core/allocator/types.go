package allocator

import "github.com/jakechorley/vaccination-hubs/pkg/core/model"

// BucketSharePercent is the share of the remaining slots offered to each age bucket
const BucketSharePercent = 40

// Placement records where a person has been allocated
type Placement struct {
	Hub string
	Day int
}

// Registry provides the people and hubs the allocator works over
type Registry interface {
	People() []model.Person
	HubNames() []string
}

// SlotSource reports how many vaccination slots a hub offers on a day
type SlotSource interface {
	DailyAvailable(hubName string, day int) (int, error)
}

// AllocationState is the authoritative record of who is allocated where.
// A person is allocated iff they have a placement, and every placement
// corresponds to exactly one entry in the hub-day tables.
type AllocationState struct {
	// Placements maps SSN to the hub-day the person is allocated to
	Placements map[string]Placement

	// Tables maps hub name to the ordered SSNs allocated on each day
	Tables map[string]*[model.DaysPerWeek][]string
}

func newAllocationState() *AllocationState {
	return &AllocationState{
		Placements: make(map[string]Placement),
		Tables:     make(map[string]*[model.DaysPerWeek][]string),
	}
}

// IsAllocated returns true if the person has been allocated to any hub-day
func (s *AllocationState) IsAllocated(ssn string) bool {
	_, ok := s.Placements[ssn]
	return ok
}

// Assigned returns the SSNs allocated to a hub on a day
func (s *AllocationState) Assigned(hub string, day int) []string {
	table, ok := s.Tables[hub]
	if !ok || !model.ValidDay(day) {
		return []string{}
	}
	return append([]string{}, table[day]...)
}

// assign records a person against a hub-day
func (s *AllocationState) assign(ssn, hub string, day int) {
	table, ok := s.Tables[hub]
	if !ok {
		table = &[model.DaysPerWeek][]string{}
		s.Tables[hub] = table
	}
	table[day] = append(table[day], ssn)
	s.Placements[ssn] = Placement{Hub: hub, Day: day}
}

// candidate is an unallocated person with their age in the reference year
type candidate struct {
	ssn string
	age int
}
