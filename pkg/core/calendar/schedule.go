package calendar

import (
	"fmt"
	"slices"

	"github.com/jakechorley/vaccination-hubs/pkg/core/capacity"
	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

const (
	// MaxDailyHours is the longest working day a schedule accepts
	MaxDailyHours = 12

	// SlotsPerHour is the number of 15 minute time slots in an hour
	SlotsPerHour = 4

	// Unavailable marks a hub-day whose availability cannot be computed
	Unavailable = -1

	anchorHour    = 9
	slotMinutes   = 60 / SlotsPerHour
	minutesPerDay = 24 * 60
)

// Schedule is a validated weekly working hours profile
type Schedule struct {
	hours [model.DaysPerWeek]int
}

// New validates the hours for the 7 days of the week (index 0 = first day)
func New(hours ...int) (*Schedule, error) {
	if len(hours) != model.DaysPerWeek {
		return nil, fmt.Errorf("expected %d days, got %d: %w", model.DaysPerWeek, len(hours), model.ErrInvalidScheduleConfig)
	}

	s := &Schedule{}
	for day, h := range hours {
		if h < 0 || h > MaxDailyHours {
			return nil, fmt.Errorf("day %d has %d hours (allowed 0-%d): %w", day, h, MaxDailyHours, model.ErrInvalidScheduleConfig)
		}
		s.hours[day] = h
	}
	return s, nil
}

// Hours returns a copy of the weekly profile
func (s *Schedule) Hours() []int {
	return slices.Clone(s.hours[:])
}

// HoursOn returns the working hours for a day
func (s *Schedule) HoursOn(day int) (int, error) {
	if !model.ValidDay(day) {
		return 0, fmt.Errorf("day %d: %w", day, model.ErrInvalidDay)
	}
	return s.hours[day], nil
}

// TimeSlots returns the slot labels for each day of the week. Slots start at 09:00
// and occur every 15 minutes for the configured hours.
func (s *Schedule) TimeSlots() [][]string {
	week := make([][]string, model.DaysPerWeek)
	for day, h := range s.hours {
		slots := make([]string, 0, h*SlotsPerHour)
		for i := 0; i < h*SlotsPerHour; i++ {
			minutes := (anchorHour*60 + i*slotMinutes) % minutesPerDay
			slots = append(slots, fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
		}
		week[day] = slots
	}
	return week
}

// DailyAvailable returns the number of vaccination slots a hub offers on a day
func (s *Schedule) DailyAvailable(hub model.Hub, day int) (int, error) {
	hours, err := s.HoursOn(day)
	if err != nil {
		return 0, err
	}

	hourly, err := capacity.EstimateHourly(hub)
	if err != nil {
		return 0, err
	}

	return hours * hourly, nil
}

// Available returns the daily availability of every hub for the whole week.
// Days that cannot be computed (unstaffed hub) hold Unavailable.
func (s *Schedule) Available(hubs []model.Hub) map[string][]int {
	result := make(map[string][]int, len(hubs))
	for _, hub := range hubs {
		week := make([]int, model.DaysPerWeek)
		for day := range week {
			available, err := s.DailyAvailable(hub, day)
			if err != nil {
				available = Unavailable
			}
			week[day] = available
		}
		result[hub.Name] = week
	}
	return result
}
