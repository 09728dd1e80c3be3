package engine

import "time"

// Selectable reports whether a booking of the evaluated duration may start at
// t: the day is open, travel time is known, t is not in the past, the full
// interval is conflict-free, and t falls within work hours (or after an early
// start).
func (e Evaluation) Selectable(t time.Time) bool {
	if !e.Open || e.in.TravelMinutes == nil {
		return false
	}

	if sameDay(t, e.in.Now) && t.Before(e.in.Now) {
		return false
	}

	if IntervalConflict(t, e.in.Duration, e.in.Blocks) {
		return false
	}

	return withinWorkHours(t, e.Window, e.in.EarlyStart)
}

// Select applies the widget's toggle semantics: picking the current selection
// again clears it, picking a valid other start replaces it, and picking an
// invalid start leaves the selection untouched.
func (e Evaluation) Select(current *time.Time, candidate time.Time) *time.Time {
	if current != nil && current.Equal(candidate) {
		return nil
	}

	if !e.Selectable(candidate) {
		return current
	}

	selected := candidate

	return &selected
}
