package reporting

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/vaccination-hubs/pkg/core/ageinterval"
	"github.com/jakechorley/vaccination-hubs/pkg/core/allocator"
	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

const testYear = 2024

type mockPeople struct {
	people []model.Person
}

func (m *mockPeople) People() []model.Person {
	return m.people
}

type mockAllocation struct {
	allocated map[string]bool
}

func (m *mockAllocation) IsAllocated(ssn string) bool {
	return m.allocated[ssn]
}

// fixture: 4 people aged 20, 4 aged 50, 2 aged 80; allocates 1 young, 2 middle, 2 old
func newFixture() (*mockPeople, *mockAllocation) {
	people := &mockPeople{}
	allocation := &mockAllocation{allocated: make(map[string]bool)}

	add := func(prefix string, count, age, allocated int) {
		for i := 0; i < count; i++ {
			ssn := fmt.Sprintf("%s%d", prefix, i)
			people.people = append(people.people, model.Person{SSN: ssn, BirthYear: testYear - age})
			if i < allocated {
				allocation.allocated[ssn] = true
			}
		}
	}
	add("y", 4, 20, 1)
	add("m", 4, 50, 2)
	add("o", 2, 80, 2)

	return people, allocation
}

func TestPropAllocated(t *testing.T) {
	people, allocation := newFixture()
	r := New(people, allocation, ageinterval.New(40, 60), testYear)

	prop, err := r.PropAllocated()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, prop, 1e-9)
}

func TestPropAllocated_EmptyRegistry(t *testing.T) {
	r := New(&mockPeople{}, &mockAllocation{}, ageinterval.New(40), testYear)

	_, err := r.PropAllocated()
	assert.ErrorIs(t, err, model.ErrEmptyRegistry)

	_, err = r.PropAllocatedAge()
	assert.ErrorIs(t, err, model.ErrEmptyRegistry)
}

func TestPropAllocated_NothingAllocated(t *testing.T) {
	people, _ := newFixture()
	r := New(people, &mockAllocation{}, ageinterval.New(40), testYear)

	prop, err := r.PropAllocated()
	require.NoError(t, err)
	assert.Equal(t, 0.0, prop)
}

func TestPropAllocatedAge(t *testing.T) {
	people, allocation := newFixture()
	r := New(people, allocation, ageinterval.New(40, 60), testYear)

	props, err := r.PropAllocatedAge()
	require.NoError(t, err)

	assert.Len(t, props, 3)
	assert.InDelta(t, 0.1, props["[0,40)"], 1e-9)
	assert.InDelta(t, 0.2, props["[40,60)"], 1e-9)
	assert.InDelta(t, 0.2, props["[60,+)"], 1e-9)
}

func TestPropAllocatedAge_IncludesEmptyIntervals(t *testing.T) {
	people, allocation := newFixture()
	r := New(people, allocation, ageinterval.New(10, 40, 60, 100), testYear)

	props, err := r.PropAllocatedAge()
	require.NoError(t, err)

	assert.Len(t, props, 5)
	assert.Equal(t, 0.0, props["[0,10)"])
	assert.Equal(t, 0.0, props["[100,+)"])
}

func TestDistributionAllocated(t *testing.T) {
	people, allocation := newFixture()
	r := New(people, allocation, ageinterval.New(40, 60), testYear)

	dist, err := r.DistributionAllocated()
	require.NoError(t, err)

	assert.InDelta(t, 0.2, dist["[0,40)"], 1e-9)
	assert.InDelta(t, 0.4, dist["[40,60)"], 1e-9)
	assert.InDelta(t, 0.4, dist["[60,+)"], 1e-9)

	sum := 0.0
	for _, v := range dist {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestDistributionAllocated_NothingAllocated(t *testing.T) {
	people, _ := newFixture()
	r := New(people, &mockAllocation{}, ageinterval.New(40), testYear)

	_, err := r.DistributionAllocated()
	assert.ErrorIs(t, err, model.ErrNothingAllocated)
}

// mockHubRegistry implements allocator.Registry with a single hub
type mockHubRegistry struct {
	people []model.Person
}

func (r *mockHubRegistry) People() []model.Person {
	return r.people
}

func (r *mockHubRegistry) HubNames() []string {
	return []string{"hub"}
}

type mockSlots struct {
	perDay int
}

func (s *mockSlots) DailyAvailable(hubName string, day int) (int, error) {
	return s.perDay, nil
}

func TestDistributionAllocated_SumsToOneWithPersonBornAfterReferenceYear(t *testing.T) {
	registry := &mockHubRegistry{people: []model.Person{
		{SSN: "OLD", BirthYear: 1950},
		{SSN: "FUT", BirthYear: 2030},
	}}
	intervals := ageinterval.New(40)
	a := allocator.New(allocator.Config{
		Registry:      registry,
		Slots:         &mockSlots{perDay: 5},
		Intervals:     intervals,
		ReferenceYear: testYear,
	})

	_, err := a.WeekAllocate()
	require.NoError(t, err)
	assert.True(t, a.IsAllocated("OLD"))
	assert.False(t, a.IsAllocated("FUT"))

	r := New(registry, a, intervals, testYear)

	distribution, err := r.DistributionAllocated()
	require.NoError(t, err)
	sum := 0.0
	for _, share := range distribution {
		sum += share
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	prop, err := r.PropAllocated()
	require.NoError(t, err)
	byAge, err := r.PropAllocatedAge()
	require.NoError(t, err)
	ageSum := 0.0
	for _, share := range byAge {
		ageSum += share
	}
	assert.InDelta(t, prop, ageSum, 1e-9)
}
