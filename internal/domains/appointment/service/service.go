package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"pagespark/config"
	"pagespark/infras/kafka"
	"pagespark/infras/otel"
	"pagespark/internal/domains/appointment/model"
	"pagespark/internal/domains/appointment/model/dto"
	"pagespark/internal/domains/appointment/repository"
	"pagespark/internal/domains/availability/engine"
	whModel "pagespark/internal/domains/workhour/model"
	whRepo "pagespark/internal/domains/workhour/repository"
	"pagespark/shared"
	"pagespark/shared/cache"
	"pagespark/shared/constant"
	gDto "pagespark/shared/dto"
	"pagespark/shared/failure"
	"pagespark/shared/timezone"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
	cacheCountAppointment  = "appointment:count"
)

type Appointment interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Appointment
	workHourRepo whRepo.WorkHour
	cfg          *config.Config
	cache        cache.RedisCache
	kafka        kafka.Client
	otel         otel.Otel
}

func New(
	repo repository.Appointment,
	workHourRepo whRepo.WorkHour,
	cfg *config.Config,
	cache cache.RedisCache,
	kafkaClient kafka.Client,
	otel otel.Otel,
) Appointment {
	return &serviceImpl{
		repo:         repo,
		workHourRepo: workHourRepo,
		cfg:          cfg,
		cache:        cache,
		kafka:        kafkaClient,
		otel:         otel,
	}
}

// Create books an appointment after re-validating the requested interval
// against the live calendar: the slot the widget showed may have been taken
// between render and submit.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	appointment, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse appointment request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid start_time, expected RFC3339: %v", err)) // nolint:wrapcheck
	}

	now := timezone.Now()
	if appointment.StartTime.Before(now) {
		return res, failure.BadRequestFromString("start_time is in the past") // nolint:wrapcheck
	}

	earlyStart, err := parseEarlyStart(req.EarlyStart)
	if err != nil {
		return res, err
	}

	if err = s.checkCalendar(ctx, appointment, earlyStart, now); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, appointment); err != nil {
		log.Error().Err(err).Msg("failed to create appointment")

		return res, fmt.Errorf("failed to create appointment: %w", err)
	}

	go s.publishCreated(context.WithoutCancel(ctx), appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()

	res.FromModel(appointment)

	return res, nil
}

// checkCalendar re-runs the widget's availability rules server side: the
// day must resolve to an open window, the interval must stay inside it, and
// it must not overlap any existing non-cancelled appointment. An early start
// widens the window the same way it does on the availability endpoints.
func (s *serviceImpl) checkCalendar(ctx context.Context, appointment model.Appointment, earlyStart *time.Time, now time.Time) error {
	rules, err := s.dayRules(ctx, appointment.BusinessID)
	if err != nil {
		return err
	}

	booking := s.cfg.App.Booking
	cfg := engine.NewConfig(booking.SlotIntervalMinutes, booking.DefaultDayStart, booking.DefaultDayEnd)

	window, open := engine.ComputeWindow(appointment.StartTime, rules, earlyStart, now, cfg)
	if !open {
		return failure.Conflict("business is closed on the requested day") // nolint:wrapcheck
	}

	if appointment.StartTime.Before(window.Start) || appointment.EndTime.After(window.End) {
		return failure.Conflict("requested time is outside work hours") // nolint:wrapcheck
	}

	dayStart := time.Date(
		appointment.StartTime.Year(), appointment.StartTime.Month(), appointment.StartTime.Day(),
		0, 0, 0, 0, appointment.StartTime.Location(),
	)

	sameDayModels, err := s.repo.GetAll(
		ctx,
		gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: "ASC"},
		repository.DayFilter(appointment.BusinessID, dayStart, dayStart.AddDate(0, 0, 1)),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load same-day appointments")

		return fmt.Errorf("failed to load same-day appointments: %w", err)
	}

	duration := appointment.EndTime.Sub(appointment.StartTime)
	if engine.IntervalConflict(appointment.StartTime, duration, model.Blocks(sameDayModels)) {
		return failure.Conflict("requested time overlaps an existing appointment") // nolint:wrapcheck
	}

	return nil
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

func (s *serviceImpl) dayRules(ctx context.Context, businessID string) ([]engine.WorkHour, error) {
	models, err := s.workHourRepo.GetAll(
		ctx,
		gDto.QueryParams{SortBy: whModel.FieldDayOfWeek, SortDir: "ASC"},
		shared.FilterByID(businessID, whModel.FieldBusinessID, whModel.TableName),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load work hours")

		return nil, fmt.Errorf("failed to load work hours: %w", err)
	}

	return whModel.EngineRules(models), nil
}

func (s *serviceImpl) publishCreated(ctx context.Context, appointment model.Appointment) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := dto.AppointmentCreatedEvent{
		AppointmentID: appointment.ID,
		BusinessID:    appointment.BusinessID,
		CustomerName:  appointment.CustomerName,
		StartTime:     appointment.StartTime.Format(time.RFC3339),
		EndTime:       appointment.EndTime.Format(time.RFC3339),
		Status:        appointment.Status,
	}

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.AppointmentCreated, kafka.Message{
		Key:   appointment.ID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("appointment_id", appointment.ID).Msg("failed to publish appointment created event")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

// Cancel marks the appointment cancelled rather than deleting the row, so
// past jobs stay in reports while their calendar time is freed.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	appointment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		log.Error().Msg("appointment not found")

		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if appointment.Status == model.StatusCancelled {
		return failure.Conflict("appointment is already cancelled") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(model.Appointment{Status: model.StatusCancelled}, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel appointment")

		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()

	return nil
}
