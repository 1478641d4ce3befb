package commands

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
	"github.com/jakechorley/vaccination-hubs/pkg/export"
)

// parseDay accepts a day index (0 = Monday) or a day name such as "mon" or "Monday"
func parseDay(arg string) (int, error) {
	if day, err := strconv.Atoi(arg); err == nil {
		if !model.ValidDay(day) {
			return 0, fmt.Errorf("day %d: %w", day, model.ErrInvalidDay)
		}
		return day, nil
	}

	name := strings.ToLower(strings.TrimSpace(arg))
	if len(name) >= 3 {
		for day, full := range export.DayNames {
			if strings.HasPrefix(strings.ToLower(full), name) {
				return day, nil
			}
		}
	}

	return 0, fmt.Errorf("day %q: %w", arg, model.ErrInvalidDay)
}

// dayName returns the display name of a day index
func dayName(day int) string {
	if !model.ValidDay(day) {
		return fmt.Sprintf("day %d", day)
	}
	return export.DayNames[day]
}

func sortedKeys(m map[string][]string) []string {
	return slices.Sorted(maps.Keys(m))
}
