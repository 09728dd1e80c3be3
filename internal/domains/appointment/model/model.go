package model

import (
	"time"

	"pagespark/internal/domains/availability/engine"
	"pagespark/shared/model"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID               = "id"
	FieldBusinessID       = "business_id"
	FieldCustomerName     = "customer_name"
	FieldCustomerPhone    = "customer_phone"
	FieldAddress          = "address"
	FieldStartTime        = "start_time"
	FieldServiceStartTime = "service_start_time"
	FieldEndTime          = "end_time"
	FieldTravelMinutes    = "travel_minutes"
	FieldStatus           = "status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Appointment is one booked job. StartTime marks when the technician leaves
// for the job, ServiceStartTime when work begins on site; both bound the
// blocked interval [StartTime, EndTime).
type Appointment struct {
	ID               string     `db:"id"`
	BusinessID       string     `db:"business_id"`
	CustomerName     string     `db:"customer_name"`
	CustomerPhone    string     `db:"customer_phone"`
	Address          string     `db:"address"`
	StartTime        time.Time  `db:"start_time"`
	ServiceStartTime *time.Time `db:"service_start_time"`
	EndTime          time.Time  `db:"end_time"`
	TravelMinutes    *int       `db:"travel_minutes"`
	Status           string     `db:"status"`
	model.Metadata
}

// Blocks reports whether the appointment occupies calendar time. Cancelled
// appointments never do.
func (a Appointment) Blocks() bool {
	return a.Status != StatusCancelled
}

// Block converts the appointment into its blocked interval for slot
// computation.
func (a Appointment) Block() engine.Block {
	return engine.NewBlock(a.ID, a.CustomerName, a.StartTime, a.EndTime, a.ServiceStartTime, a.TravelMinutes)
}

// Blocks maps the blocking appointments of a day into engine intervals,
// skipping cancelled ones.
func Blocks(models []Appointment) []engine.Block {
	blocks := make([]engine.Block, 0, len(models))

	for _, m := range models {
		if !m.Blocks() {
			continue
		}

		blocks = append(blocks, m.Block())
	}

	return blocks
}
