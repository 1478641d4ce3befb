package reporting

import (
	"fmt"

	"github.com/jakechorley/vaccination-hubs/pkg/core/ageinterval"
	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

// PeopleSource lists the registered people
type PeopleSource interface {
	People() []model.Person
}

// AllocationSource answers whether a person is allocated
type AllocationSource interface {
	IsAllocated(ssn string) bool
}

// Reporter derives proportions from the current allocation state. It never mutates it.
type Reporter struct {
	people        PeopleSource
	allocation    AllocationSource
	intervals     *ageinterval.Intervals
	referenceYear int
}

// New creates a Reporter
func New(people PeopleSource, allocation AllocationSource, intervals *ageinterval.Intervals, referenceYear int) *Reporter {
	if intervals == nil {
		intervals = ageinterval.New()
	}
	return &Reporter{
		people:        people,
		allocation:    allocation,
		intervals:     intervals,
		referenceYear: referenceYear,
	}
}

// tally holds allocation counts over the registry
type tally struct {
	total      int
	allocated  int
	byInterval map[string]int
}

func (r *Reporter) count() tally {
	t := tally{byInterval: make(map[string]int)}
	for _, label := range r.intervals.Labels() {
		t.byInterval[label] = 0
	}

	for _, person := range r.people.People() {
		t.total++
		if !r.allocation.IsAllocated(person.SSN) {
			continue
		}
		t.allocated++
		if interval, ok := r.intervals.Classify(person.Age(r.referenceYear)); ok {
			t.byInterval[interval.Label()]++
		}
	}
	return t
}

// PropAllocated returns the share of registered people who are allocated.
// Returns ErrEmptyRegistry when nobody is registered.
func (r *Reporter) PropAllocated() (float64, error) {
	t := r.count()
	if t.total == 0 {
		return 0, fmt.Errorf("cannot compute allocated proportion: %w", model.ErrEmptyRegistry)
	}
	return float64(t.allocated) / float64(t.total), nil
}

// PropAllocatedAge returns, per age interval, the allocated people in that interval
// divided by all registered people. Returns ErrEmptyRegistry when nobody is registered.
func (r *Reporter) PropAllocatedAge() (map[string]float64, error) {
	t := r.count()
	if t.total == 0 {
		return nil, fmt.Errorf("cannot compute allocated proportion by age: %w", model.ErrEmptyRegistry)
	}
	return divide(t.byInterval, t.total), nil
}

// DistributionAllocated returns, per age interval, the allocated people in that interval
// divided by all allocated people. Returns ErrNothingAllocated when nobody is allocated.
func (r *Reporter) DistributionAllocated() (map[string]float64, error) {
	t := r.count()
	if t.allocated == 0 {
		return nil, fmt.Errorf("cannot compute allocation distribution: %w", model.ErrNothingAllocated)
	}
	return divide(t.byInterval, t.allocated), nil
}

func divide(counts map[string]int, denominator int) map[string]float64 {
	result := make(map[string]float64, len(counts))
	for label, count := range counts {
		result[label] = float64(count) / float64(denominator)
	}
	return result
}
