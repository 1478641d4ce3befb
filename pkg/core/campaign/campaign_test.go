package campaign

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/pkg/core/allocator"
	"github.com/jakechorley/vaccination-hubs/pkg/core/calendar"
	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

const testYear = 2024

// newTestCampaign builds a campaign with two staffed hubs, one unstaffed hub,
// hours [8,8,8,8,8,4,0] and intervals [0,40),[40,60),[60,+)
func newTestCampaign(t *testing.T) *Campaign {
	t.Helper()

	c := New(testYear, zap.NewNop())
	require.NoError(t, c.DefineHub("central"))
	require.NoError(t, c.DefineHub("north"))
	require.NoError(t, c.DefineHub("pending"))
	require.NoError(t, c.SetStaff("central", 1, 1, 1)) // 10/hour
	require.NoError(t, c.SetStaff("north", 2, 1, 1))   // 12/hour
	require.NoError(t, c.SetHours(8, 8, 8, 8, 8, 4, 0))
	c.SetAgeIntervals(40, 60)

	return c
}

func addPeople(t *testing.T, c *Campaign, prefix string, count, age int) {
	t.Helper()
	for i := 0; i < count; i++ {
		require.NoError(t, c.AddPerson("First", "Last", fmt.Sprintf("%s%04d", prefix, i), testYear-age))
	}
}

func TestPeople(t *testing.T) {
	c := New(testYear, nil)
	require.NoError(t, c.AddPerson("Mario", "Rossi", "RSSMRA", 1950))

	err := c.AddPerson("Other", "Person", "RSSMRA", 1960)
	assert.ErrorIs(t, err, model.ErrDuplicatePerson)
	assert.Equal(t, 1, c.CountPeople())

	info, err := c.Person("RSSMRA")
	require.NoError(t, err)
	assert.Equal(t, "RSSMRA,Rossi,Mario", info)

	age, err := c.Age("RSSMRA")
	require.NoError(t, err)
	assert.Equal(t, 74, age)

	_, err = c.Age("missing")
	assert.ErrorIs(t, err, model.ErrUnknownPerson)
}

func TestAddPerson_BornAfterReferenceYear(t *testing.T) {
	c := New(testYear, nil)

	err := c.AddPerson("Future", "Person", "FUT", testYear+6)
	assert.ErrorIs(t, err, model.ErrInvalidBirthYear)
	assert.Equal(t, 0, c.CountPeople())

	// Born in the reference year is age 0, the lowest interval
	require.NoError(t, c.AddPerson("New", "Born", "NEW", testYear))
	age, err := c.Age("NEW")
	require.NoError(t, err)
	assert.Equal(t, 0, age)
}

func TestInInterval(t *testing.T) {
	c := New(testYear, nil)
	c.SetAgeIntervals(40, 60)
	require.NoError(t, c.AddPerson("A", "A", "A", testYear-39))
	require.NoError(t, c.AddPerson("B", "B", "B", testYear-40))
	require.NoError(t, c.AddPerson("C", "C", "C", testYear-60))

	assert.Equal(t, []string{"[0,40)", "[40,60)", "[60,+)"}, c.AgeIntervals())

	ssns, err := c.InInterval("[40,60)")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, ssns)

	ssns, err = c.InInterval("[60,+)")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, ssns)

	_, err = c.InInterval("[10,20)")
	assert.Error(t, err)
}

func TestEstimateHourlyCapacity(t *testing.T) {
	c := newTestCampaign(t)

	capacity, err := c.EstimateHourlyCapacity("central")
	require.NoError(t, err)
	assert.Equal(t, 10, capacity)

	_, err = c.EstimateHourlyCapacity("pending")
	assert.ErrorIs(t, err, model.ErrUnstaffedHub)

	_, err = c.EstimateHourlyCapacity("missing")
	assert.ErrorIs(t, err, model.ErrUnknownHub)
}

func TestSchedule_NotSet(t *testing.T) {
	c := New(testYear, nil)
	require.NoError(t, c.DefineHub("central"))
	require.NoError(t, c.SetStaff("central", 1, 1, 1))

	_, err := c.DailyAvailable("central", 0)
	assert.ErrorIs(t, err, model.ErrScheduleNotSet)

	_, err = c.Available()
	assert.ErrorIs(t, err, model.ErrScheduleNotSet)

	_, err = c.TimeSlots()
	assert.ErrorIs(t, err, model.ErrScheduleNotSet)

	_, err = c.WeekAllocate()
	assert.ErrorIs(t, err, model.ErrScheduleNotSet)
}

func TestSetHours_InvalidKeepsPrevious(t *testing.T) {
	c := newTestCampaign(t)

	err := c.SetHours(1, 2, 3)
	assert.ErrorIs(t, err, model.ErrInvalidScheduleConfig)

	hours, err := c.Hours()
	require.NoError(t, err)
	assert.Equal(t, []int{8, 8, 8, 8, 8, 4, 0}, hours)
}

func TestAvailable(t *testing.T) {
	c := newTestCampaign(t)

	available, err := c.Available()
	require.NoError(t, err)

	assert.Equal(t, []int{80, 80, 80, 80, 80, 40, 0}, available["central"])
	assert.Equal(t, []int{96, 96, 96, 96, 96, 48, 0}, available["north"])
	assert.Equal(t, []int{
		calendar.Unavailable, calendar.Unavailable, calendar.Unavailable, calendar.Unavailable,
		calendar.Unavailable, calendar.Unavailable, calendar.Unavailable,
	}, available["pending"])

	daily, err := c.DailyAvailable("central", 0)
	require.NoError(t, err)
	assert.Equal(t, 80, daily)

	_, err = c.DailyAvailable("missing", 0)
	assert.ErrorIs(t, err, model.ErrUnknownHub)

	_, err = c.DailyAvailable("central", 9)
	assert.ErrorIs(t, err, model.ErrInvalidDay)
}

func TestWeekAllocate_EndToEnd(t *testing.T) {
	c := newTestCampaign(t)
	addPeople(t, c, "O", 300, 70)
	addPeople(t, c, "M", 300, 50)
	addPeople(t, c, "Y", 600, 20)

	week, err := c.WeekAllocate()
	require.NoError(t, err)
	require.Len(t, week, 7)

	// Every allocated person appears in exactly one hub-day list
	seen := make(map[string]allocator.Placement)
	for day, daily := range week {
		for hub, ssns := range daily {
			for _, ssn := range ssns {
				_, dup := seen[ssn]
				require.False(t, dup, "%s allocated twice", ssn)
				seen[ssn] = allocator.Placement{Hub: hub, Day: day}
			}
		}
	}

	// Capacity: central 440, north 528
	assert.Len(t, seen, 968)
	for _, person := range c.People() {
		placement, ok := c.AllocationOf(person.SSN)
		assert.Equal(t, ok, c.IsAllocated(person.SSN))
		if ok {
			assert.Equal(t, seen[person.SSN], placement)
		} else {
			assert.NotContains(t, seen, person.SSN)
		}
	}

	prop, err := c.PropAllocated()
	require.NoError(t, err)
	assert.InDelta(t, 968.0/1200.0, prop, 1e-9)

	dist, err := c.DistributionAllocated()
	require.NoError(t, err)
	sum := 0.0
	for _, v := range dist {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// Oldest first: everyone 60+ gets a slot before the week is out
	ageProps, err := c.PropAllocatedAge()
	require.NoError(t, err)
	assert.InDelta(t, 300.0/1200.0, ageProps["[60,+)"], 1e-9)
}

func TestWeekAllocate_SameCountsAfterClear(t *testing.T) {
	c := newTestCampaign(t)
	addPeople(t, c, "O", 90, 81)
	addPeople(t, c, "M", 150, 45)
	addPeople(t, c, "Y", 400, 30)

	countPerInterval := func(week []map[string][]string) map[string]int {
		counts := make(map[string]int)
		for day, daily := range week {
			for hub, ssns := range daily {
				for _, ssn := range ssns {
					age, err := c.Age(ssn)
					require.NoError(t, err)
					interval, ok := c.Intervals().Classify(age)
					require.True(t, ok)
					counts[fmt.Sprintf("%d/%s/%s", day, hub, interval.Label())]++
				}
			}
		}
		return counts
	}

	first, err := c.WeekAllocate()
	require.NoError(t, err)

	c.ClearAllocation()
	second, err := c.WeekAllocate()
	require.NoError(t, err)

	assert.Equal(t, countPerInterval(first), countPerInterval(second))
	assert.Equal(t, first, second)
}

func TestClearAllocation_ResetsEverything(t *testing.T) {
	c := newTestCampaign(t)
	addPeople(t, c, "P", 100, 50)

	_, err := c.WeekAllocate()
	require.NoError(t, err)
	require.NotEmpty(t, c.AllocatedSSNs())

	c.ClearAllocation()

	prop, err := c.PropAllocated()
	require.NoError(t, err)
	assert.Equal(t, 0.0, prop)

	for _, daily := range c.Plan() {
		for _, ssns := range daily {
			assert.Empty(t, ssns)
		}
	}

	_, err = c.DistributionAllocated()
	assert.ErrorIs(t, err, model.ErrNothingAllocated)
}

func TestAllocate_TwoBucketDay(t *testing.T) {
	c := New(testYear, nil)
	require.NoError(t, c.DefineHub("central"))
	require.NoError(t, c.SetStaff("central", 1, 1, 1))
	require.NoError(t, c.SetHours(8, 8, 8, 8, 8, 4, 0))
	c.SetAgeIntervals(40)
	addPeople(t, c, "O", 50, 65)
	addPeople(t, c, "Y", 50, 25)

	assigned, err := c.Allocate("central", 0)
	require.NoError(t, err)
	assert.Len(t, assigned, 80)

	inOld, err := c.InInterval("[40,+)")
	require.NoError(t, err)
	oldAllocated := 0
	for _, ssn := range inOld {
		if c.IsAllocated(ssn) {
			oldAllocated++
		}
	}
	// 32 from the bucket pass plus the 18 left over after the young bucket's 19
	assert.Equal(t, 50, oldAllocated)
	assert.Equal(t, assigned, c.Assigned("central", 0))
}
