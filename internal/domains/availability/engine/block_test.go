package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pagespark/internal/domains/availability/engine"
)

func TestNewBlock(t *testing.T) {
	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	start := monday.Add(10 * time.Hour)
	end := monday.Add(11 * time.Hour)

	tests := []struct {
		name                 string
		serviceStart         *time.Time
		travelMinutes        *int
		expectedServiceStart time.Time
		expectedUniform      bool
	}{
		{
			name:                 "explicit service start wins",
			serviceStart:         timePtr(start.Add(20 * time.Minute)),
			travelMinutes:        intPtr(15),
			expectedServiceStart: start.Add(20 * time.Minute),
		},
		{
			name:                 "service start derived from travel minutes",
			travelMinutes:        intPtr(15),
			expectedServiceStart: start.Add(15 * time.Minute),
		},
		{
			name:                 "no travel data collapses to the start",
			expectedServiceStart: start,
		},
		{
			name:                 "service start before the interval degrades to uniform",
			serviceStart:         timePtr(start.Add(-10 * time.Minute)),
			expectedServiceStart: start,
			expectedUniform:      true,
		},
		{
			name:                 "service start past the end degrades to uniform",
			travelMinutes:        intPtr(90),
			expectedServiceStart: start,
			expectedUniform:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := engine.NewBlock("a1", "Dana", start, end, tt.serviceStart, tt.travelMinutes)

			assert.True(t, block.ServiceStart.Equal(tt.expectedServiceStart))
			assert.Equal(t, tt.expectedUniform, block.Uniform)
		})
	}
}

func TestBlockPhaseAt(t *testing.T) {
	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	start := monday.Add(10 * time.Hour)
	end := monday.Add(11 * time.Hour)

	block := engine.NewBlock("a1", "Dana", start, end, nil, intPtr(15))

	tests := []struct {
		name     string
		at       time.Time
		expected engine.Phase
	}{
		{name: "travel leg", at: start, expected: engine.PhaseTravel},
		{name: "last travel minute", at: start.Add(14 * time.Minute), expected: engine.PhaseTravel},
		{name: "service boundary", at: start.Add(15 * time.Minute), expected: engine.PhaseService},
		{name: "mid service", at: start.Add(30 * time.Minute), expected: engine.PhaseService},
		{name: "end is exclusive", at: end, expected: engine.PhaseNone},
		{name: "before the block", at: start.Add(-time.Minute), expected: engine.PhaseNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, block.PhaseAt(tt.at))
		})
	}
}

func TestUniformBlockPhase(t *testing.T) {
	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	start := monday.Add(10 * time.Hour)

	block := engine.NewBlock("a1", "Dana", start, start.Add(time.Hour), nil, intPtr(90))

	assert.True(t, block.Uniform)
	assert.Equal(t, engine.PhaseService, block.PhaseAt(start), "uniform blocks report service throughout")
	assert.Equal(t, engine.PhaseService, block.PhaseAt(start.Add(45*time.Minute)))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "travel", engine.PhaseTravel.String())
	assert.Equal(t, "service", engine.PhaseService.String())
	assert.Equal(t, "none", engine.PhaseNone.String())
}
