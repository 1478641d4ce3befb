package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

func TestAddPerson(t *testing.T) {
	r := New()

	require.NoError(t, r.AddPerson(model.Person{SSN: "B2", FirstName: "Mario", LastName: "Rossi", BirthYear: 1950}))
	require.NoError(t, r.AddPerson(model.Person{SSN: "A1", FirstName: "Anna", LastName: "Bianchi", BirthYear: 1990}))

	assert.Equal(t, 2, r.CountPeople())

	person, err := r.Person("B2")
	require.NoError(t, err)
	assert.Equal(t, "B2,Rossi,Mario", person.String())

	people := r.People()
	require.Len(t, people, 2)
	assert.Equal(t, "A1", people[0].SSN)
	assert.Equal(t, "B2", people[1].SSN)
}

func TestAddPerson_Duplicate(t *testing.T) {
	r := New()
	require.NoError(t, r.AddPerson(model.Person{SSN: "A1", BirthYear: 1950}))

	err := r.AddPerson(model.Person{SSN: "A1", BirthYear: 1960})
	assert.ErrorIs(t, err, model.ErrDuplicatePerson)
	assert.Equal(t, 1, r.CountPeople())

	person, err := r.Person("A1")
	require.NoError(t, err)
	assert.Equal(t, 1950, person.BirthYear)
}

func TestAddPerson_EmptySSN(t *testing.T) {
	r := New()
	assert.Error(t, r.AddPerson(model.Person{SSN: "  "}))
}

func TestPerson_Unknown(t *testing.T) {
	r := New()
	_, err := r.Person("missing")
	assert.ErrorIs(t, err, model.ErrUnknownPerson)
}

func TestDefineHub(t *testing.T) {
	r := New()
	require.NoError(t, r.DefineHub("north"))
	require.NoError(t, r.DefineHub("central"))

	err := r.DefineHub("north")
	assert.ErrorIs(t, err, model.ErrDuplicateHub)

	assert.Equal(t, []string{"central", "north"}, r.HubNames())

	hub, err := r.Hub("north")
	require.NoError(t, err)
	assert.False(t, hub.IsStaffed())
}

func TestSetStaff(t *testing.T) {
	r := New()
	require.NoError(t, r.DefineHub("central"))
	require.NoError(t, r.SetStaff("central", 2, 3, 4))

	hub, err := r.Hub("central")
	require.NoError(t, err)
	assert.Equal(t, model.Hub{Name: "central", Doctors: 2, Nurses: 3, Others: 4}, hub)
	assert.True(t, hub.IsStaffed())
}

func TestSetStaff_Errors(t *testing.T) {
	r := New()
	require.NoError(t, r.DefineHub("central"))

	err := r.SetStaff("missing", 1, 1, 1)
	assert.ErrorIs(t, err, model.ErrUnknownHub)

	for _, staff := range [][3]int{{0, 1, 1}, {1, 0, 1}, {1, 1, -2}} {
		err := r.SetStaff("central", staff[0], staff[1], staff[2])
		assert.ErrorIs(t, err, model.ErrInvalidStaffing)
	}

	hub, err := r.Hub("central")
	require.NoError(t, err)
	assert.False(t, hub.IsStaffed(), "failed SetStaff must not modify the hub")
}
