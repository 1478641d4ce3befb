package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

func TestEstimateHourly_Bottleneck(t *testing.T) {
	tests := []struct {
		name     string
		hub      model.Hub
		expected int
	}{
		{"doctors limit", model.Hub{Name: "a", Doctors: 1, Nurses: 5, Others: 5}, 10},
		{"nurses limit", model.Hub{Name: "b", Doctors: 5, Nurses: 2, Others: 5}, 24},
		{"others limit", model.Hub{Name: "c", Doctors: 5, Nurses: 5, Others: 2}, 40},
		{"tie", model.Hub{Name: "d", Doctors: 6, Nurses: 5, Others: 3}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateHourly(tt.hub)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEstimateHourly_Unstaffed(t *testing.T) {
	_, err := EstimateHourly(model.Hub{Name: "empty"})
	assert.ErrorIs(t, err, model.ErrUnstaffedHub)
	assert.Contains(t, err.Error(), "empty")
}

func TestEstimateHourly_Monotonic(t *testing.T) {
	base := model.Hub{Name: "hub", Doctors: 4, Nurses: 4, Others: 4}
	baseCap, err := EstimateHourly(base)
	require.NoError(t, err)

	more := []model.Hub{
		{Name: "hub", Doctors: 5, Nurses: 4, Others: 4},
		{Name: "hub", Doctors: 4, Nurses: 5, Others: 4},
		{Name: "hub", Doctors: 4, Nurses: 4, Others: 5},
	}
	for _, hub := range more {
		got, err := EstimateHourly(hub)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, baseCap)
	}

	fewer := []model.Hub{
		{Name: "hub", Doctors: 3, Nurses: 4, Others: 4},
		{Name: "hub", Doctors: 4, Nurses: 3, Others: 4},
		{Name: "hub", Doctors: 4, Nurses: 4, Others: 1},
	}
	for _, hub := range fewer {
		got, err := EstimateHourly(hub)
		require.NoError(t, err)
		assert.LessOrEqual(t, got, baseCap)
	}
}
