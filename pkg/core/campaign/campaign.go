package campaign

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/pkg/core/ageinterval"
	"github.com/jakechorley/vaccination-hubs/pkg/core/allocator"
	"github.com/jakechorley/vaccination-hubs/pkg/core/calendar"
	"github.com/jakechorley/vaccination-hubs/pkg/core/capacity"
	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
	"github.com/jakechorley/vaccination-hubs/pkg/core/registry"
	"github.com/jakechorley/vaccination-hubs/pkg/core/reporting"
)

// Campaign ties together the registry, the weekly schedule, the age intervals,
// the allocator and the reporter for one vaccination campaign.
//
// A Campaign is not safe for concurrent use.
type Campaign struct {
	registry      *registry.Registry
	schedule      *calendar.Schedule
	intervals     *ageinterval.Intervals
	allocator     *allocator.Allocator
	reporter      *reporting.Reporter
	referenceYear int
	logger        *zap.Logger
}

// New creates an empty campaign. Ages are computed against referenceYear.
func New(referenceYear int, logger *zap.Logger) *Campaign {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Campaign{
		registry:      registry.New(),
		intervals:     ageinterval.New(),
		referenceYear: referenceYear,
		logger:        logger,
	}
	c.allocator = allocator.New(allocator.Config{
		Registry:      c.registry,
		Slots:         c,
		Intervals:     c.intervals,
		ReferenceYear: referenceYear,
		Logger:        logger.Named("allocator"),
	})
	c.reporter = reporting.New(c.registry, c.allocator, c.intervals, referenceYear)

	return c
}

// ReferenceYear returns the year ages are computed against
func (c *Campaign) ReferenceYear() int {
	return c.referenceYear
}

// People

// AddPerson registers a person. Returns ErrDuplicatePerson if the SSN exists
// and ErrInvalidBirthYear if the person is born after the reference year.
func (c *Campaign) AddPerson(firstName, lastName, ssn string, birthYear int) error {
	if birthYear > c.referenceYear {
		return fmt.Errorf("ssn %q born %d, reference year %d: %w", ssn, birthYear, c.referenceYear, model.ErrInvalidBirthYear)
	}
	return c.registry.AddPerson(model.Person{
		SSN:       ssn,
		FirstName: firstName,
		LastName:  lastName,
		BirthYear: birthYear,
	})
}

// CountPeople returns the number of registered people
func (c *Campaign) CountPeople() int {
	return c.registry.CountPeople()
}

// Person returns a person formatted as "ssn,last,first"
func (c *Campaign) Person(ssn string) (string, error) {
	person, err := c.registry.Person(ssn)
	if err != nil {
		return "", err
	}
	return person.String(), nil
}

// People returns every registered person ordered by SSN
func (c *Campaign) People() []model.Person {
	return c.registry.People()
}

// Age returns a person's age in the reference year
func (c *Campaign) Age(ssn string) (int, error) {
	person, err := c.registry.Person(ssn)
	if err != nil {
		return 0, err
	}
	return person.Age(c.referenceYear), nil
}

// Age intervals

// SetAgeIntervals merges breakpoints into the age intervals
func (c *Campaign) SetAgeIntervals(breaks ...int) {
	c.intervals.Set(breaks...)
	c.logger.Debug("Age intervals updated",
		zap.Ints("breaks", c.intervals.Breaks()),
		zap.Strings("intervals", c.intervals.Labels()))
}

// AgeIntervals returns the interval labels, lowest first
func (c *Campaign) AgeIntervals() []string {
	return c.intervals.Labels()
}

// Intervals exposes the interval set
func (c *Campaign) Intervals() *ageinterval.Intervals {
	return c.intervals
}

// InInterval returns the SSNs of people whose age falls in the labelled interval
func (c *Campaign) InInterval(label string) ([]string, error) {
	interval, ok := c.intervals.ByLabel(label)
	if !ok {
		return nil, fmt.Errorf("unknown age interval %q (defined: %v)", label, c.intervals.Labels())
	}

	ssns := []string{}
	for _, person := range c.registry.People() {
		if interval.Contains(person.Age(c.referenceYear)) {
			ssns = append(ssns, person.SSN)
		}
	}
	return ssns, nil
}

// Hubs

// DefineHub registers a hub. Returns ErrDuplicateHub if the name exists.
func (c *Campaign) DefineHub(name string) error {
	return c.registry.DefineHub(name)
}

// Hubs returns the hub names in order
func (c *Campaign) Hubs() []string {
	return c.registry.HubNames()
}

// Hub returns a hub's record
func (c *Campaign) Hub(name string) (model.Hub, error) {
	return c.registry.Hub(name)
}

// SetStaff sets a hub's staffing. Returns ErrUnknownHub or ErrInvalidStaffing.
func (c *Campaign) SetStaff(name string, doctors, nurses, others int) error {
	return c.registry.SetStaff(name, doctors, nurses, others)
}

// EstimateHourlyCapacity returns a hub's hourly vaccination capacity
func (c *Campaign) EstimateHourlyCapacity(name string) (int, error) {
	hub, err := c.registry.Hub(name)
	if err != nil {
		return 0, err
	}
	return capacity.EstimateHourly(hub)
}

// Schedule

// SetHours sets the working hours of the 7 days of the week
func (c *Campaign) SetHours(hours ...int) error {
	schedule, err := calendar.New(hours...)
	if err != nil {
		return err
	}
	c.schedule = schedule
	c.logger.Debug("Working hours set", zap.Ints("hours", hours))
	return nil
}

// Hours returns the working hours profile
func (c *Campaign) Hours() ([]int, error) {
	if c.schedule == nil {
		return nil, model.ErrScheduleNotSet
	}
	return c.schedule.Hours(), nil
}

// TimeSlots returns the time slot labels for each day of the week
func (c *Campaign) TimeSlots() ([][]string, error) {
	if c.schedule == nil {
		return nil, model.ErrScheduleNotSet
	}
	return c.schedule.TimeSlots(), nil
}

// DailyAvailable returns the slots available at a hub on a day
func (c *Campaign) DailyAvailable(hubName string, day int) (int, error) {
	if c.schedule == nil {
		return 0, model.ErrScheduleNotSet
	}
	hub, err := c.registry.Hub(hubName)
	if err != nil {
		return 0, err
	}
	return c.schedule.DailyAvailable(hub, day)
}

// Available returns every hub's availability for the 7 days of the week.
// Unstaffed hubs report calendar.Unavailable.
func (c *Campaign) Available() (map[string][]int, error) {
	if c.schedule == nil {
		return nil, model.ErrScheduleNotSet
	}
	return c.schedule.Available(c.registry.Hubs()), nil
}

// Allocation

// Allocate fills a hub's slots for a day and returns every SSN allocated there
func (c *Campaign) Allocate(hubName string, day int) ([]string, error) {
	return c.allocator.Allocate(hubName, day)
}

// WeekAllocate allocates every hub for every day of the week
func (c *Campaign) WeekAllocate() ([]map[string][]string, error) {
	return c.allocator.WeekAllocate()
}

// ClearAllocation resets every allocation
func (c *Campaign) ClearAllocation() {
	c.allocator.ClearAllocation()
}

// IsAllocated returns true if the person is allocated
func (c *Campaign) IsAllocated(ssn string) bool {
	return c.allocator.IsAllocated(ssn)
}

// AllocationOf returns where a person is allocated
func (c *Campaign) AllocationOf(ssn string) (allocator.Placement, bool) {
	return c.allocator.AllocationOf(ssn)
}

// Assigned returns the SSNs allocated to a hub on a day
func (c *Campaign) Assigned(hubName string, day int) []string {
	return c.allocator.Assigned(hubName, day)
}

// Plan returns the current allocation as one map per day from hub name to SSNs
func (c *Campaign) Plan() []map[string][]string {
	hubs := c.registry.HubNames()
	plan := make([]map[string][]string, model.DaysPerWeek)
	for day := range plan {
		plan[day] = make(map[string][]string, len(hubs))
		for _, hub := range hubs {
			plan[day][hub] = c.allocator.Assigned(hub, day)
		}
	}
	return plan
}

// AllocatedSSNs returns every allocated SSN in order
func (c *Campaign) AllocatedSSNs() []string {
	return c.allocator.AllocatedSSNs()
}

// Reporting

// PropAllocated returns the share of people allocated
func (c *Campaign) PropAllocated() (float64, error) {
	return c.reporter.PropAllocated()
}

// PropAllocatedAge returns the share of all people allocated, per age interval
func (c *Campaign) PropAllocatedAge() (map[string]float64, error) {
	return c.reporter.PropAllocatedAge()
}

// DistributionAllocated returns how allocated people are spread across age intervals
func (c *Campaign) DistributionAllocated() (map[string]float64, error) {
	return c.reporter.DistributionAllocated()
}
