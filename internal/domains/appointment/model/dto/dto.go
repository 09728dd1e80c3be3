package dto

import (
	"time"

	"github.com/google/uuid"

	"pagespark/internal/domains/appointment/model"
	"pagespark/shared"
	gDto "pagespark/shared/dto"
	gModel "pagespark/shared/model"
	"pagespark/shared/timezone"
)

type CreateAppointmentRequest struct {
	BusinessID      string `json:"business_id"      validate:"required"`
	CustomerName    string `json:"customer_name"    validate:"required,max=100"`
	CustomerPhone   string `json:"customer_phone"   validate:"omitempty,max=20"`
	Address         string `json:"address"          validate:"required,max=255"`
	StartTime       string `json:"start_time"       validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=15,max=480"`
	TravelMinutes   *int   `json:"travel_minutes"   validate:"omitempty,min=0,max=240"`
	Status          string `json:"status"           validate:"omitempty,oneof=pending confirmed"`
	// EarlyStart mirrors the availability query: when the technician started
	// the day early, slots before the regular window are bookable too.
	EarlyStart string `json:"early_start" validate:"omitempty"`
}

// ToModel builds the appointment interval: EndTime is StartTime plus the
// service duration plus travel, ServiceStartTime is StartTime plus travel.
func (c *CreateAppointmentRequest) ToModel(user string) (model.Appointment, error) {
	startTime, err := time.Parse(time.RFC3339, c.StartTime)
	if err != nil {
		return model.Appointment{}, err
	}

	startTime = startTime.In(timezone.GetLocation())

	var serviceStart *time.Time

	endTime := startTime.Add(time.Duration(c.DurationMinutes) * time.Minute)
	if c.TravelMinutes != nil {
		travel := time.Duration(*c.TravelMinutes) * time.Minute
		at := startTime.Add(travel)
		serviceStart = &at
		endTime = endTime.Add(travel)
	}

	status := model.StatusPending
	if c.Status != "" {
		status = c.Status
	}

	return model.Appointment{
		ID:               uuid.NewString(),
		BusinessID:       c.BusinessID,
		CustomerName:     c.CustomerName,
		CustomerPhone:    c.CustomerPhone,
		Address:          c.Address,
		StartTime:        startTime,
		ServiceStartTime: serviceStart,
		EndTime:          endTime,
		TravelMinutes:    c.TravelMinutes,
		Status:           status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type AppointmentResponse struct {
	ID               string  `json:"id"`
	BusinessID       string  `json:"business_id"`
	CustomerName     string  `json:"customer_name"`
	CustomerPhone    string  `json:"customer_phone"`
	Address          string  `json:"address"`
	StartTime        string  `json:"start_time"`
	ServiceStartTime *string `json:"service_start_time"`
	EndTime          string  `json:"end_time"`
	TravelMinutes    *int    `json:"travel_minutes"`
	Status           string  `json:"status"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(model model.Appointment) {
	r.ID = model.ID
	r.BusinessID = model.BusinessID
	r.CustomerName = model.CustomerName
	r.CustomerPhone = model.CustomerPhone
	r.Address = model.Address
	r.StartTime = model.StartTime.Format(time.RFC3339)
	r.EndTime = model.EndTime.Format(time.RFC3339)
	r.TravelMinutes = model.TravelMinutes
	r.Status = model.Status

	if model.ServiceStartTime != nil {
		formatted := model.ServiceStartTime.Format(time.RFC3339)
		r.ServiceStartTime = &formatted
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod)
	}
}

// AppointmentCreatedEvent is the payload published after a booking succeeds.
type AppointmentCreatedEvent struct {
	AppointmentID string `json:"appointment_id"`
	BusinessID    string `json:"business_id"`
	CustomerName  string `json:"customer_name"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
}
