package model

import (
	"time"

	"pagespark/internal/domains/availability/engine"
	"pagespark/shared/model"
)

const (
	TableName  = "business_work_hours"
	EntityName = "work_hour"

	FieldID         = "id"
	FieldBusinessID = "business_id"
	FieldDayOfWeek  = "day_of_week"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldIsEnabled  = "is_enabled"
)

// WorkHour is one weekday's bookable range for a business. DayOfWeek follows
// time.Weekday numbering (0 = Sunday). StartTime and EndTime are wall-clock
// "HH:MM" strings, interpreted in the business timezone.
type WorkHour struct {
	ID         string `db:"id"`
	BusinessID string `db:"business_id"`
	DayOfWeek  int    `db:"day_of_week"`
	StartTime  string `db:"start_time"`
	EndTime    string `db:"end_time"`
	IsEnabled  bool   `db:"is_enabled"`
	model.Metadata
}

// EngineRule converts the stored rule for slot computation. Malformed time
// strings return false so the caller can skip the rule, which reads as a
// closed day downstream.
func (w WorkHour) EngineRule() (engine.WorkHour, bool) {
	start, err := engine.ParseTimeOfDay(w.StartTime)
	if err != nil {
		return engine.WorkHour{}, false
	}

	end, err := engine.ParseTimeOfDay(w.EndTime)
	if err != nil {
		return engine.WorkHour{}, false
	}

	return engine.WorkHour{
		Day:     time.Weekday(w.DayOfWeek),
		Start:   start,
		End:     end,
		Enabled: w.IsEnabled,
	}, true
}

// EngineRules maps a rule set. Entries whose time strings fail to parse
// become disabled rules rather than being dropped: the business stays
// "configured", so a day whose only rule is malformed reads as closed
// instead of falling back to the unconfigured-preview window.
func EngineRules(models []WorkHour) []engine.WorkHour {
	rules := make([]engine.WorkHour, 0, len(models))

	for _, m := range models {
		rule, ok := m.EngineRule()
		if !ok {
			rule = engine.WorkHour{Day: time.Weekday(m.DayOfWeek)}
		}

		rules = append(rules, rule)
	}

	return rules
}
