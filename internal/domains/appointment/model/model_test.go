package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagespark/internal/domains/appointment/model"
	"pagespark/internal/domains/availability/engine"
)

func TestBlockDerivation(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	serviceStart := start.Add(20 * time.Minute)
	travel := 15

	tests := []struct {
		name                 string
		appointment          model.Appointment
		expectedServiceStart time.Time
	}{
		{
			name: "stored service start is authoritative",
			appointment: model.Appointment{
				ID:               "a1",
				StartTime:        start,
				ServiceStartTime: &serviceStart,
				EndTime:          end,
				TravelMinutes:    &travel,
			},
			expectedServiceStart: serviceStart,
		},
		{
			name: "service start derived from travel minutes",
			appointment: model.Appointment{
				ID:            "a1",
				StartTime:     start,
				EndTime:       end,
				TravelMinutes: &travel,
			},
			expectedServiceStart: start.Add(15 * time.Minute),
		},
		{
			name: "no travel data",
			appointment: model.Appointment{
				ID:        "a1",
				StartTime: start,
				EndTime:   end,
			},
			expectedServiceStart: start,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := tt.appointment.Block()

			assert.True(t, block.Start.Equal(start))
			assert.True(t, block.End.Equal(end))
			assert.True(t, block.ServiceStart.Equal(tt.expectedServiceStart))
		})
	}
}

func TestBlocksSkipsCancelled(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	models := []model.Appointment{
		{ID: "a1", StartTime: start, EndTime: start.Add(time.Hour), Status: model.StatusConfirmed},
		{ID: "a2", StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour), Status: model.StatusCancelled},
		{ID: "a3", StartTime: start.Add(4 * time.Hour), EndTime: start.Add(5 * time.Hour), Status: model.StatusPending},
	}

	blocks := model.Blocks(models)

	require.Len(t, blocks, 2)
	assert.Equal(t, "a1", blocks[0].AppointmentID)
	assert.Equal(t, "a3", blocks[1].AppointmentID)
}

func TestBlockPhases(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	travel := 15

	appointment := model.Appointment{
		ID:            "a1",
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		TravelMinutes: &travel,
		Status:        model.StatusConfirmed,
	}

	block := appointment.Block()

	assert.Equal(t, engine.PhaseTravel, block.PhaseAt(start))
	assert.Equal(t, engine.PhaseService, block.PhaseAt(start.Add(30*time.Minute)))
}
