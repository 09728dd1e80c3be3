package engine

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Phase classifies a point in time inside a blocked interval: the technician
// is either driving to the job or performing it.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseTravel
	PhaseService
)

func (p Phase) String() string {
	switch p {
	case PhaseTravel:
		return "travel"
	case PhaseService:
		return "service"
	default:
		return "none"
	}
}

// Block is an appointment's blocked interval [Start, End) with its travel and
// service sub-phases resolved up front, so slot rendering never has to reason
// about optional fields.
type Block struct {
	AppointmentID string
	CustomerName  string
	Start         time.Time
	ServiceStart  time.Time
	End           time.Time
	Uniform       bool
}

// NewBlock derives the two-phase interval for an appointment. When
// serviceStart is present it is authoritative; otherwise it is derived from
// travelMinutes, or collapses to Start when no travel data exists. Records
// violating Start <= ServiceStart <= End are logged and degraded to a single
// uniform block instead of failing the computation.
func NewBlock(appointmentID, customerName string, start, end time.Time, serviceStart *time.Time, travelMinutes *int) Block {
	block := Block{
		AppointmentID: appointmentID,
		CustomerName:  customerName,
		Start:         start,
		End:           end,
	}

	switch {
	case serviceStart != nil:
		block.ServiceStart = *serviceStart
	case travelMinutes != nil:
		block.ServiceStart = start.Add(time.Duration(*travelMinutes) * time.Minute)
	default:
		block.ServiceStart = start
	}

	if block.ServiceStart.Before(block.Start) || block.End.Before(block.ServiceStart) {
		log.Warn().
			Str("appointment_id", appointmentID).
			Time("start_time", block.Start).
			Time("service_start_time", block.ServiceStart).
			Time("end_time", block.End).
			Msg("appointment phase boundaries are inconsistent, treating interval as a single block")

		block.ServiceStart = block.Start
		block.Uniform = true
	}

	return block
}

// PhaseAt classifies t within the block. Uniform blocks report the whole
// interval as service time.
func (b Block) PhaseAt(t time.Time) Phase {
	switch {
	case !t.Before(b.ServiceStart) && t.Before(b.End):
		return PhaseService
	case !t.Before(b.Start) && t.Before(b.ServiceStart):
		return PhaseTravel
	default:
		return PhaseNone
	}
}

// overlapsBlock is the widget's three-way overlap test between the half-open
// interval [start, end) and the block's full [Start, End): either endpoint
// falls inside the block, or the interval swallows the block whole.
func overlapsBlock(start, end time.Time, b Block) bool {
	switch {
	case !start.Before(b.Start) && start.Before(b.End):
		return true
	case end.After(b.Start) && !end.After(b.End):
		return true
	case !start.After(b.Start) && !end.Before(b.End):
		return true
	default:
		return false
	}
}
