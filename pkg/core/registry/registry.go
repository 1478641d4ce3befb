package registry

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

// Registry holds the people and hubs known to the campaign, keyed by SSN and hub name
type Registry struct {
	people map[string]model.Person
	hubs   map[string]model.Hub
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		people: make(map[string]model.Person),
		hubs:   make(map[string]model.Hub),
	}
}

// AddPerson registers a person. Returns ErrDuplicatePerson if the SSN already exists.
func (r *Registry) AddPerson(person model.Person) error {
	if strings.TrimSpace(person.SSN) == "" {
		return fmt.Errorf("person SSN must not be empty")
	}
	if _, exists := r.people[person.SSN]; exists {
		return fmt.Errorf("ssn %q: %w", person.SSN, model.ErrDuplicatePerson)
	}
	r.people[person.SSN] = person
	return nil
}

// CountPeople returns the number of registered people
func (r *Registry) CountPeople() int {
	return len(r.people)
}

// Person looks up a person by SSN
func (r *Registry) Person(ssn string) (model.Person, error) {
	person, ok := r.people[ssn]
	if !ok {
		return model.Person{}, fmt.Errorf("ssn %q: %w", ssn, model.ErrUnknownPerson)
	}
	return person, nil
}

// People returns every registered person ordered by SSN
func (r *Registry) People() []model.Person {
	people := slices.Collect(maps.Values(r.people))
	slices.SortFunc(people, func(a, b model.Person) int {
		return strings.Compare(a.SSN, b.SSN)
	})
	return people
}

// DefineHub registers a hub with no staffing. Returns ErrDuplicateHub if the name exists.
func (r *Registry) DefineHub(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("hub name must not be empty")
	}
	if _, exists := r.hubs[name]; exists {
		return fmt.Errorf("hub %q: %w", name, model.ErrDuplicateHub)
	}
	r.hubs[name] = model.Hub{Name: name}
	return nil
}

// SetStaff sets the staffing of a hub. All counts must be positive.
func (r *Registry) SetStaff(name string, doctors, nurses, others int) error {
	hub, ok := r.hubs[name]
	if !ok {
		return fmt.Errorf("hub %q: %w", name, model.ErrUnknownHub)
	}
	if doctors <= 0 || nurses <= 0 || others <= 0 {
		return fmt.Errorf("hub %q staffing %d/%d/%d: %w", name, doctors, nurses, others, model.ErrInvalidStaffing)
	}

	hub.Doctors = doctors
	hub.Nurses = nurses
	hub.Others = others
	r.hubs[name] = hub
	return nil
}

// Hub looks up a hub by name
func (r *Registry) Hub(name string) (model.Hub, error) {
	hub, ok := r.hubs[name]
	if !ok {
		return model.Hub{}, fmt.Errorf("hub %q: %w", name, model.ErrUnknownHub)
	}
	return hub, nil
}

// Hubs returns every hub ordered by name
func (r *Registry) Hubs() []model.Hub {
	hubs := slices.Collect(maps.Values(r.hubs))
	slices.SortFunc(hubs, func(a, b model.Hub) int {
		return strings.Compare(a.Name, b.Name)
	})
	return hubs
}

// HubNames returns the hub names in order
func (r *Registry) HubNames() []string {
	return slices.Sorted(maps.Keys(r.hubs))
}
