package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagespark/internal/domains/availability/engine"
	"pagespark/internal/domains/workhour/model"
)

func TestEngineRule(t *testing.T) {
	rule := model.WorkHour{
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:30",
		IsEnabled: true,
	}

	engineRule, ok := rule.EngineRule()

	require.True(t, ok)
	assert.Equal(t, time.Monday, engineRule.Day)
	assert.Equal(t, 9, engineRule.Start.Hour)
	assert.Equal(t, 17, engineRule.End.Hour)
	assert.Equal(t, 30, engineRule.End.Minute)
	assert.True(t, engineRule.Enabled)
}

func TestEngineRuleMalformedTime(t *testing.T) {
	tests := []struct {
		name string
		rule model.WorkHour
	}{
		{
			name: "bad start time",
			rule: model.WorkHour{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00"},
		},
		{
			name: "bad end time",
			rule: model.WorkHour{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:99"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.rule.EngineRule()

			assert.False(t, ok)
		})
	}
}

func TestEngineRulesDisablesMalformed(t *testing.T) {
	models := []model.WorkHour{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsEnabled: true},
		{DayOfWeek: 2, StartTime: "whenever", EndTime: "17:00", IsEnabled: true},
		{DayOfWeek: 3, StartTime: "10:00", EndTime: "16:00", IsEnabled: true},
	}

	rules := model.EngineRules(models)

	require.Len(t, rules, 3)
	assert.Equal(t, time.Monday, rules[0].Day)
	assert.True(t, rules[0].Enabled)
	assert.Equal(t, time.Tuesday, rules[1].Day)
	assert.False(t, rules[1].Enabled)
	assert.Equal(t, time.Wednesday, rules[2].Day)
	assert.True(t, rules[2].Enabled)
}

// A business whose only rule for a day has unparseable times is configured
// but broken: the day must read as closed, not fall back to the default
// window shown to unconfigured businesses.
func TestEngineRulesMalformedDayStaysClosed(t *testing.T) {
	models := []model.WorkHour{
		{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00", IsEnabled: true},
	}

	rules := model.EngineRules(models)
	require.Len(t, rules, 1)

	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)

	_, open := engine.ComputeWindow(monday, rules, nil, now, engine.Config{})

	assert.False(t, open)
}
