package model

import "errors"

// Sentinel errors for the allocation engine.
//
// Callers check them with errors.Is; components wrap them with
// fmt.Errorf("...: %w", err) to add the offending hub, day or value.

// Registry errors.
var (
	// ErrUnknownHub is returned when a hub name is not registered.
	ErrUnknownHub = errors.New("unknown hub")

	// ErrDuplicateHub is returned when defining a hub whose name already exists.
	ErrDuplicateHub = errors.New("duplicate hub")

	// ErrInvalidStaffing is returned when a staffing count is not positive.
	ErrInvalidStaffing = errors.New("invalid staffing")

	// ErrDuplicatePerson is returned when adding a person whose SSN already exists.
	ErrDuplicatePerson = errors.New("duplicate person")

	// ErrUnknownPerson is returned when an SSN is not registered.
	ErrUnknownPerson = errors.New("unknown person")

	// ErrInvalidBirthYear is returned when a person is born after the reference year.
	ErrInvalidBirthYear = errors.New("birth year after reference year")
)

// Capacity and calendar errors.
var (
	// ErrUnstaffedHub is returned when capacity is requested for a hub whose staffing was never set.
	ErrUnstaffedHub = errors.New("hub staffing not set")

	// ErrInvalidScheduleConfig is returned for an hours profile that is not 7 values in [0,12].
	ErrInvalidScheduleConfig = errors.New("invalid schedule configuration")

	// ErrScheduleNotSet is returned when availability is requested before hours are configured.
	ErrScheduleNotSet = errors.New("schedule not set")

	// ErrInvalidDay is returned for a day index outside 0-6.
	ErrInvalidDay = errors.New("invalid day index")
)

// Reporting errors.
var (
	// ErrEmptyRegistry is returned when a proportion is requested with no people registered.
	ErrEmptyRegistry = errors.New("no people registered")

	// ErrNothingAllocated is returned when a distribution is requested with nobody allocated.
	ErrNothingAllocated = errors.New("nobody allocated")
)

// Ingestion errors.
var (
	// ErrInvalidHeader is returned when a people file does not start with SSN,LAST,FIRST,YEAR.
	ErrInvalidHeader = errors.New("invalid people file header")
)
