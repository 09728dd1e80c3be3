package engine

import "time"

// IntervalConflict reports whether the full requested interval
// [start, start+duration) overlaps any block on the same calendar day as
// start. This is the selection-time re-check: a multi-slot booking can start
// on an available slot and still run into an appointment beginning
// mid-duration.
func IntervalConflict(start time.Time, duration time.Duration, blocks []Block) bool {
	end := start.Add(duration)

	for _, block := range blocks {
		if !sameDay(block.Start, start) {
			continue
		}

		if overlapsBlock(start, end, block) {
			return true
		}
	}

	return false
}
