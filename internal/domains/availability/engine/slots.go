package engine

import "time"

// Slot is one fixed-width candidate start time within a day's window. Slots
// are regenerated on every evaluation and never persisted.
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
	Phase     Phase
	Block     *Block
}

// Input is everything one evaluation needs. Now is read once by the caller so
// a whole evaluation sees a single consistent clock.
type Input struct {
	Date          time.Time
	Rules         []WorkHour
	Blocks        []Block
	Duration      time.Duration
	TravelMinutes *int
	EarlyStart    *time.Time
	Now           time.Time
	Config        Config
}

// Evaluation is the result of one slot computation. Open is false when the
// day resolved to closed (past date, or no applicable rule or early start).
type Evaluation struct {
	Window Window
	Open   bool
	Slots  []Slot

	in Input
}

// Evaluate resolves the day's window and generates its slot grid. It is a
// pure function of its input and always returns a usable (possibly empty)
// result.
func Evaluate(in Input) Evaluation {
	in.Config = in.Config.normalized()

	window, open := ComputeWindow(in.Date, in.Rules, in.EarlyStart, in.Now, in.Config)

	ev := Evaluation{Window: window, Open: open, in: in}
	if !open {
		return ev
	}

	ev.Slots = GenerateSlots(window, in.Blocks, in.TravelMinutes, in.EarlyStart, in.Now, in.Config)

	return ev
}

// GenerateSlots tiles [window.Start, window.End) with interval-sized slots and
// marks each one available or not. A nil travelMinutes yields no slots at all:
// the widget shows a "waiting for travel time" state rather than a dead grid.
func GenerateSlots(window Window, blocks []Block, travelMinutes *int, earlyStart *time.Time, now time.Time, cfg Config) []Slot {
	cfg = cfg.normalized()

	if travelMinutes == nil {
		return nil
	}

	if !window.End.After(window.Start) {
		return nil
	}

	var slots []Slot

	for start := window.Start; start.Before(window.End); start = start.Add(cfg.SlotInterval) {
		end := start.Add(cfg.SlotInterval)
		if end.After(window.End) {
			end = window.End
		}

		var blocking *Block

		for i := range blocks {
			if !sameDay(blocks[i].Start, start) {
				continue
			}

			if overlapsBlock(start, end, blocks[i]) {
				blocking = &blocks[i]

				break
			}
		}

		past := sameDay(start, now) && start.Before(now)
		withinHours := withinWorkHours(start, window, earlyStart)

		slot := Slot{
			Start:     start,
			End:       end,
			Available: blocking == nil && withinHours && !past,
		}

		if blocking != nil {
			slot.Block = blocking
			slot.Phase = blocking.PhaseAt(start)
		}

		slots = append(slots, slot)
	}

	return slots
}

// withinWorkHours accepts a start inside the resolved window, or at/after the
// early-start instant when work began before configured hours that day.
func withinWorkHours(start time.Time, window Window, earlyStart *time.Time) bool {
	if !start.Before(window.Start) && start.Before(window.End) {
		return true
	}

	return earlyStart != nil && !start.Before(*earlyStart)
}
