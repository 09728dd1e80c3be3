package dto

import (
	"time"

	"pagespark/internal/domains/availability/engine"
)

type AvailabilityRequest struct {
	BusinessID      string `json:"business_id"      validate:"required"`
	Date            string `json:"date"             validate:"required,datetime=2006-01-02"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=15,max=480"`
	TravelMinutes   *int   `json:"travel_minutes"   validate:"omitempty,min=0,max=240"`
	EarlyStart      string `json:"early_start"      validate:"omitempty"`
}

type SlotResponse struct {
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Available     bool   `json:"available"`
	Phase         string `json:"phase,omitempty"`
	AppointmentID string `json:"appointment_id,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
}

type WindowResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityResponse struct {
	BusinessID string          `json:"business_id"`
	Date       string          `json:"date"`
	Open       bool            `json:"open"`
	Window     *WindowResponse `json:"window,omitempty"`
	Slots      []SlotResponse  `json:"slots"`
}

func (r *AvailabilityResponse) FromEvaluation(businessID string, date time.Time, ev engine.Evaluation) {
	r.BusinessID = businessID
	r.Date = date.Format("2006-01-02")
	r.Open = ev.Open
	r.Slots = make([]SlotResponse, len(ev.Slots))

	if ev.Open {
		r.Window = &WindowResponse{
			StartTime: ev.Window.Start.Format(time.RFC3339),
			EndTime:   ev.Window.End.Format(time.RFC3339),
		}
	}

	for i, slot := range ev.Slots {
		res := SlotResponse{
			StartTime: slot.Start.Format(time.RFC3339),
			EndTime:   slot.End.Format(time.RFC3339),
			Available: slot.Available,
		}

		if slot.Block != nil {
			res.Phase = slot.Phase.String()
			res.AppointmentID = slot.Block.AppointmentID
			res.CustomerName = slot.Block.CustomerName
		}

		r.Slots[i] = res
	}
}

type CheckAvailabilityRequest struct {
	BusinessID      string `json:"business_id"      validate:"required"`
	StartTime       string `json:"start_time"       validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=15,max=480"`
	TravelMinutes   *int   `json:"travel_minutes"   validate:"omitempty,min=0,max=240"`
	EarlyStart      string `json:"early_start"      validate:"omitempty"`
}

type CheckAvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
