package model

import "fmt"

// Person represents someone registered for vaccination
type Person struct {
	SSN       string
	FirstName string
	LastName  string
	BirthYear int
}

// String formats the person as "ssn,last,first"
func (p Person) String() string {
	return fmt.Sprintf("%s,%s,%s", p.SSN, p.LastName, p.FirstName)
}

// Age returns the person's age in the given reference year
func (p Person) Age(referenceYear int) int {
	return referenceYear - p.BirthYear
}

// Hub represents a vaccination site and its staffing
type Hub struct {
	Name    string
	Doctors int
	Nurses  int
	Others  int
}

// IsStaffed reports whether staffing has been configured for the hub.
// Staffing counts are validated as positive, so zero doctors means "never set".
func (h Hub) IsStaffed() bool {
	return h.Doctors > 0
}

// DaysPerWeek is the number of day indices in a weekly profile (0 = first day of the week)
const DaysPerWeek = 7

// ValidDay reports whether day is a valid day index
func ValidDay(day int) bool {
	return day >= 0 && day < DaysPerWeek
}
