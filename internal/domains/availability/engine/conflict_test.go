package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pagespark/internal/domains/availability/engine"
)

func TestIntervalConflict(t *testing.T) {
	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	blocks := []engine.Block{
		engine.NewBlock("a1", "Dana", monday.Add(10*time.Hour), monday.Add(11*time.Hour), nil, intPtr(15)),
	}

	tests := []struct {
		name     string
		start    time.Time
		duration time.Duration
		expected bool
	}{
		{
			name:     "clear interval before the appointment",
			start:    monday.Add(9 * time.Hour),
			duration: time.Hour,
			expected: false,
		},
		{
			name:     "interval ending exactly at the appointment start",
			start:    monday.Add(9*time.Hour + 30*time.Minute),
			duration: 30 * time.Minute,
			expected: false,
		},
		{
			name:     "free start running into the appointment",
			start:    monday.Add(9*time.Hour + 30*time.Minute),
			duration: time.Hour,
			expected: true,
		},
		{
			name:     "start inside the appointment",
			start:    monday.Add(10*time.Hour + 30*time.Minute),
			duration: 15 * time.Minute,
			expected: true,
		},
		{
			name:     "interval swallowing the appointment",
			start:    monday.Add(9*time.Hour + 45*time.Minute),
			duration: 2 * time.Hour,
			expected: true,
		},
		{
			name:     "interval starting at the appointment end",
			start:    monday.Add(11 * time.Hour),
			duration: time.Hour,
			expected: false,
		},
		{
			name:     "same wall-clock time on another day",
			start:    monday.AddDate(0, 0, 1).Add(10 * time.Hour),
			duration: time.Hour,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.IntervalConflict(tt.start, tt.duration, blocks))
		})
	}
}

func TestIntervalConflictNoBlocks(t *testing.T) {
	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.False(t, engine.IntervalConflict(monday.Add(10*time.Hour), time.Hour, nil))
}
