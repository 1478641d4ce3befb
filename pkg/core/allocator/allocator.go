package allocator

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/pkg/core/ageinterval"
	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

// Allocator assigns unallocated people to hub-day slots, oldest age bucket first
type Allocator struct {
	registry      Registry
	slots         SlotSource
	intervals     *ageinterval.Intervals
	referenceYear int
	logger        *zap.Logger
	state         *AllocationState
}

// Config contains the collaborators needed to create an Allocator
type Config struct {
	// Registry supplies people and hub names
	Registry Registry

	// Slots supplies the daily availability of each hub
	Slots SlotSource

	// Intervals are the age buckets used for prioritisation
	Intervals *ageinterval.Intervals

	// ReferenceYear is the year ages are computed against
	ReferenceYear int

	// Logger is optional, defaults to a no-op logger
	Logger *zap.Logger
}

// New creates an Allocator with an empty allocation state
func New(cfg Config) *Allocator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	intervals := cfg.Intervals
	if intervals == nil {
		intervals = ageinterval.New()
	}

	return &Allocator{
		registry:      cfg.Registry,
		slots:         cfg.Slots,
		intervals:     intervals,
		referenceYear: cfg.ReferenceYear,
		logger:        logger,
		state:         newAllocationState(),
	}
}

// Allocate fills the available slots of a hub on a day and returns every SSN
// allocated to that hub-day.
//
// Algorithm:
//  1. n = daily availability minus the people already allocated to the hub-day
//  2. Age buckets are visited from oldest to youngest. Each bucket receives up to
//     floor(n * 40%) of its unallocated members, in ascending SSN order, and n is
//     reduced by the number actually assigned.
//  3. Any slots still left are filled from all unallocated people, oldest first
//     (ties by SSN).
//
// Calling Allocate again on the same hub-day tops it up to its capacity: only
// the slots not already taken are offered.
func (a *Allocator) Allocate(hub string, day int) ([]string, error) {
	if !model.ValidDay(day) {
		return nil, fmt.Errorf("day %d: %w", day, model.ErrInvalidDay)
	}

	available, err := a.slots.DailyAvailable(hub, day)
	if err != nil {
		return nil, fmt.Errorf("failed to compute availability for hub %q day %d: %w", hub, day, err)
	}

	// Step 1: slots still open on this hub-day
	n := max(available-len(a.state.Assigned(hub, day)), 0)

	a.logger.Debug("Allocating hub day",
		zap.String("hub", hub),
		zap.Int("day", day),
		zap.Int("available", available),
		zap.Int("open", n))

	candidates := a.unallocatedCandidates()

	// Step 2: buckets from oldest to youngest
	intervals := a.intervals.Intervals()
	for i := len(intervals) - 1; i >= 0; i-- {
		interval := intervals[i]
		quota := n * BucketSharePercent / 100

		// The topmost interval is unbounded, so Contains only tests the lower bound there
		assigned := 0
		for _, c := range candidates {
			if assigned >= quota {
				break
			}
			if a.state.IsAllocated(c.ssn) || !interval.Contains(c.age) {
				continue
			}
			a.state.assign(c.ssn, hub, day)
			assigned++
		}
		n -= assigned

		a.logger.Debug("Bucket allocated",
			zap.String("hub", hub),
			zap.Int("day", day),
			zap.String("interval", interval.Label()),
			zap.Int("quota", quota),
			zap.Int("assigned", assigned),
			zap.Int("remaining", n))
	}

	// Step 3: fill what rounding and exhausted buckets left over, oldest first
	if n > 0 {
		leftover := slices.Clone(candidates)
		slices.SortStableFunc(leftover, func(x, y candidate) int {
			return cmp.Compare(y.age, x.age)
		})

		filled := 0
		for _, c := range leftover {
			if filled >= n {
				break
			}
			if a.state.IsAllocated(c.ssn) {
				continue
			}
			a.state.assign(c.ssn, hub, day)
			filled++
		}
		n -= filled

		a.logger.Debug("Leftover slots filled",
			zap.String("hub", hub),
			zap.Int("day", day),
			zap.Int("filled", filled),
			zap.Int("unfilled", n))
	}

	return a.state.Assigned(hub, day), nil
}

// WeekAllocate allocates every hub for every day of the week, day by day and
// hubs in name order. Returns one map per day from hub name to allocated SSNs.
// Hubs without staffing have no slots and get empty lists.
func (a *Allocator) WeekAllocate() ([]map[string][]string, error) {
	hubs := a.registry.HubNames()
	slices.Sort(hubs)

	week := make([]map[string][]string, model.DaysPerWeek)
	for day := range week {
		daily := make(map[string][]string, len(hubs))
		for _, hub := range hubs {
			assigned, err := a.Allocate(hub, day)
			if errors.Is(err, model.ErrUnstaffedHub) {
				a.logger.Warn("Skipping hub without staffing", zap.String("hub", hub), zap.Int("day", day))
				daily[hub] = []string{}
				continue
			}
			if err != nil {
				return nil, err
			}
			daily[hub] = assigned
		}
		week[day] = daily
	}

	a.logger.Info("Week allocation complete",
		zap.Int("hubs", len(hubs)),
		zap.Int("allocated", len(a.state.Placements)))

	return week, nil
}

// ClearAllocation empties every hub-day table and marks everyone unallocated
func (a *Allocator) ClearAllocation() {
	a.state = newAllocationState()
	a.logger.Debug("Allocation cleared")
}

// IsAllocated returns true if the person has been allocated
func (a *Allocator) IsAllocated(ssn string) bool {
	return a.state.IsAllocated(ssn)
}

// AllocationOf returns where a person has been allocated
func (a *Allocator) AllocationOf(ssn string) (Placement, bool) {
	placement, ok := a.state.Placements[ssn]
	return placement, ok
}

// Assigned returns the SSNs allocated to a hub on a day
func (a *Allocator) Assigned(hub string, day int) []string {
	return a.state.Assigned(hub, day)
}

// AllocatedCount returns the number of allocated people
func (a *Allocator) AllocatedCount() int {
	return len(a.state.Placements)
}

// AllocatedSSNs returns the SSNs of all allocated people in ascending order
func (a *Allocator) AllocatedSSNs() []string {
	return slices.Sorted(maps.Keys(a.state.Placements))
}

// unallocatedCandidates lists the people not yet allocated, ordered by SSN.
// People whose age falls in no interval (born after the reference year) are never candidates.
func (a *Allocator) unallocatedCandidates() []candidate {
	people := a.registry.People()
	candidates := make([]candidate, 0, len(people))
	for _, person := range people {
		if a.state.IsAllocated(person.SSN) {
			continue
		}
		age := person.Age(a.referenceYear)
		if _, ok := a.intervals.Classify(age); !ok {
			continue
		}
		candidates = append(candidates, candidate{ssn: person.SSN, age: age})
	}
	slices.SortFunc(candidates, func(x, y candidate) int {
		return strings.Compare(x.ssn, y.ssn)
	})
	return candidates
}
