package capacity

import (
	"fmt"

	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

// Hourly vaccinations each member of staff can support
const (
	PerDoctor = 10
	PerNurse  = 12
	PerOther  = 20
)

// EstimateHourly returns the hourly vaccination capacity of a hub: the bottleneck
// among doctors, nurses and other personnel.
func EstimateHourly(hub model.Hub) (int, error) {
	if !hub.IsStaffed() {
		return 0, fmt.Errorf("hub %q: %w", hub.Name, model.ErrUnstaffedHub)
	}
	return min(PerDoctor*hub.Doctors, PerNurse*hub.Nurses, PerOther*hub.Others), nil
}
