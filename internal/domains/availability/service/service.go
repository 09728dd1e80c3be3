package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"pagespark/config"
	"pagespark/infras/otel"
	apptModel "pagespark/internal/domains/appointment/model"
	apptRepo "pagespark/internal/domains/appointment/repository"
	"pagespark/internal/domains/availability/engine"
	"pagespark/internal/domains/availability/model/dto"
	whModel "pagespark/internal/domains/workhour/model"
	whRepo "pagespark/internal/domains/workhour/repository"
	"pagespark/shared"
	"pagespark/shared/constant"
	gDto "pagespark/shared/dto"
	"pagespark/shared/failure"
	"pagespark/shared/timezone"
)

type Availability interface {
	GetDay(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Check(ctx context.Context, req dto.CheckAvailabilityRequest) (dto.CheckAvailabilityResponse, error)
}

// serviceImpl has no repository of its own: it reads work hours and
// appointments and feeds them to the slot engine. Responses depend on the
// wall clock, so they are never cached.
type serviceImpl struct {
	workHourRepo    whRepo.WorkHour
	appointmentRepo apptRepo.Appointment
	cfg             *config.Config
	otel            otel.Otel
}

func New(workHourRepo whRepo.WorkHour, appointmentRepo apptRepo.Appointment, cfg *config.Config, otel otel.Otel) Availability {
	return &serviceImpl{
		workHourRepo:    workHourRepo,
		appointmentRepo: appointmentRepo,
		cfg:             cfg,
		otel:            otel,
	}
}

// GetDay computes the slot grid the booking widget renders for one date.
func (s *serviceImpl) GetDay(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDay")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, err := time.ParseInLocation(constant.DateOnlyFormat, req.Date, timezone.GetLocation())
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", req.Date)) // nolint:wrapcheck
	}

	earlyStart, err := parseEarlyStart(req.EarlyStart)
	if err != nil {
		return res, err
	}

	in, err := s.buildInput(ctx, req.BusinessID, date, req.DurationMinutes, req.TravelMinutes, earlyStart)
	if err != nil {
		return res, err
	}

	res.FromEvaluation(req.BusinessID, date, engine.Evaluate(in))

	return res, nil
}

// Check re-validates one candidate interval right before booking.
func (s *serviceImpl) Check(ctx context.Context, req dto.CheckAvailabilityRequest) (res dto.CheckAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Check")
	defer scope.End()
	defer scope.TraceIfError(err)

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid start_time, expected RFC3339: %v", err)) // nolint:wrapcheck
	}

	startTime = startTime.In(timezone.GetLocation())

	earlyStart, err := parseEarlyStart(req.EarlyStart)
	if err != nil {
		return res, err
	}

	travel := req.TravelMinutes
	if travel == nil {
		zero := 0
		travel = &zero
	}

	in, err := s.buildInput(ctx, req.BusinessID, startTime, req.DurationMinutes, travel, earlyStart)
	if err != nil {
		return res, err
	}

	ev := engine.Evaluate(in)

	switch {
	case !ev.Open:
		res.Reason = "business is closed on the requested day"
	case ev.Selectable(startTime):
		res.Available = true
	case startTime.Before(in.Now):
		res.Reason = "requested time is in the past"
	case engine.IntervalConflict(startTime, in.Duration, in.Blocks):
		res.Reason = "requested time overlaps an existing appointment"
	default:
		res.Reason = "requested time is outside work hours"
	}

	return res, nil
}

func (s *serviceImpl) buildInput(
	ctx context.Context,
	businessID string,
	date time.Time,
	durationMinutes int,
	travelMinutes *int,
	earlyStart *time.Time,
) (engine.Input, error) {
	workHours, err := s.workHourRepo.GetAll(
		ctx,
		gDto.QueryParams{SortBy: whModel.FieldDayOfWeek, SortDir: "ASC"},
		shared.FilterByID(businessID, whModel.FieldBusinessID, whModel.TableName),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load work hours")

		return engine.Input{}, fmt.Errorf("failed to load work hours: %w", err)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	appointments, err := s.appointmentRepo.GetAll(
		ctx,
		gDto.QueryParams{SortBy: apptModel.FieldStartTime, SortDir: "ASC"},
		apptRepo.DayFilter(businessID, dayStart, dayStart.AddDate(0, 0, 1)),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load appointments")

		return engine.Input{}, fmt.Errorf("failed to load appointments: %w", err)
	}

	booking := s.cfg.App.Booking

	return engine.Input{
		Date:          date,
		Rules:         whModel.EngineRules(workHours),
		Blocks:        apptModel.Blocks(appointments),
		Duration:      time.Duration(durationMinutes) * time.Minute,
		TravelMinutes: travelMinutes,
		EarlyStart:    earlyStart,
		Now:           timezone.Now(),
		Config:        engine.NewConfig(booking.SlotIntervalMinutes, booking.DefaultDayStart, booking.DefaultDayEnd),
	}, nil
}

func parseEarlyStart(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, failure.BadRequestFromString(fmt.Sprintf("invalid early_start, expected RFC3339: %v", err)) // nolint:wrapcheck
	}

	localized := parsed.In(timezone.GetLocation())

	return &localized, nil
}
