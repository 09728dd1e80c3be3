package engine

import (
	"fmt"
	"time"
)

const (
	// DefaultSlotInterval is the grid the booking widget renders.
	DefaultSlotInterval = 15 * time.Minute
)

// TimeOfDay is a wall-clock time without a date, as stored on work-hour rules.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", value, err)
	}

	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// At anchors the time of day on the given date, in the date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	year, month, day := date.Date()

	return time.Date(year, month, day, t.Hour, t.Minute, 0, 0, date.Location())
}

// WorkHour is one weekday's bookable range for a business. Disabled rules are
// treated as closed days.
type WorkHour struct {
	Day     time.Weekday
	Start   TimeOfDay
	End     TimeOfDay
	Enabled bool
}

// Window is the resolved bookable range [Start, End) for a single day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Config carries the engine knobs: the slot grid size and the fallback window
// used when a business has no work-hour configuration yet.
type Config struct {
	SlotInterval    time.Duration
	DefaultDayStart TimeOfDay
	DefaultDayEnd   TimeOfDay
}

// NewConfig builds a Config from the app's settings. Malformed time strings
// fall back to the built-in defaults.
func NewConfig(slotIntervalMinutes int, defaultDayStart, defaultDayEnd string) Config {
	cfg := Config{SlotInterval: time.Duration(slotIntervalMinutes) * time.Minute}

	start, startErr := ParseTimeOfDay(defaultDayStart)
	end, endErr := ParseTimeOfDay(defaultDayEnd)

	if startErr == nil && endErr == nil {
		cfg.DefaultDayStart = start
		cfg.DefaultDayEnd = end
	}

	return cfg.normalized()
}

func (c Config) normalized() Config {
	if c.SlotInterval <= 0 {
		c.SlotInterval = DefaultSlotInterval
	}

	if c.DefaultDayStart == (TimeOfDay{}) && c.DefaultDayEnd == (TimeOfDay{}) {
		c.DefaultDayStart = TimeOfDay{Hour: 6}
		c.DefaultDayEnd = TimeOfDay{Hour: 22}
	}

	return c
}

// RoundUp rounds t forward to the next interval boundary within the hour.
// Times already on a boundary are unchanged.
func RoundUp(t time.Time, interval time.Duration) time.Time {
	if interval <= 0 {
		interval = DefaultSlotInterval
	}

	t = t.Truncate(time.Minute)

	step := int(interval / time.Minute)

	remainder := t.Minute() % step
	if remainder == 0 {
		return t
	}

	return t.Add(time.Duration(step-remainder) * time.Minute)
}

// ComputeWindow resolves the bookable window for a date from the business's
// weekly rules and an optional "work started early" instant. The second return
// is false when the day is closed: the date is in the past, or no rule and no
// matching early start apply.
//
// The cases form a small decision table over {has rule, early start matches}:
//
//	rule + matching early start  -> [min(roundUp(early), rule start), rule end]
//	rule only                    -> [rule start, rule end]
//	matching early start only    -> [roundUp(early), default end]
//	non-matching early start     -> default window
//	no rules supplied at all     -> default window (unconfigured preview)
//	otherwise                    -> closed
func ComputeWindow(date time.Time, rules []WorkHour, earlyStart *time.Time, now time.Time, cfg Config) (Window, bool) {
	cfg = cfg.normalized()

	if startOfDay(date).Before(startOfDay(now)) {
		return Window{}, false
	}

	rule, hasRule := enabledRuleFor(rules, date.Weekday())
	earlyMatches := earlyStart != nil && sameDay(*earlyStart, date)

	defaultWindow := Window{Start: cfg.DefaultDayStart.At(date), End: cfg.DefaultDayEnd.At(date)}

	switch {
	case hasRule && earlyMatches:
		start := rule.Start.At(date)
		if rounded := RoundUp(*earlyStart, cfg.SlotInterval); !rounded.After(start) {
			start = rounded
		}

		return Window{Start: start, End: rule.End.At(date)}, true
	case hasRule:
		return Window{Start: rule.Start.At(date), End: rule.End.At(date)}, true
	case earlyMatches:
		return Window{Start: RoundUp(*earlyStart, cfg.SlotInterval), End: cfg.DefaultDayEnd.At(date)}, true
	case earlyStart != nil:
		return defaultWindow, true
	case len(rules) == 0:
		return defaultWindow, true
	default:
		return Window{}, false
	}
}

func enabledRuleFor(rules []WorkHour, day time.Weekday) (WorkHour, bool) {
	for _, rule := range rules {
		if rule.Enabled && rule.Day == day {
			return rule, true
		}
	}

	return WorkHour{}, false
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// sameDay reports whether both instants fall on the same calendar day. All
// engine inputs are expected to share one location.
func sameDay(a, b time.Time) bool {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()

	return aYear == bYear && aMonth == bMonth && aDay == bDay
}
