package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"pagespark/config"
	"pagespark/infras/otel"
	"pagespark/internal/domains/availability/engine"
	"pagespark/internal/domains/workhour/model"
	"pagespark/internal/domains/workhour/model/dto"
	"pagespark/internal/domains/workhour/repository"
	"pagespark/shared"
	"pagespark/shared/cache"
	"pagespark/shared/constant"
	gDto "pagespark/shared/dto"
	"pagespark/shared/failure"
)

const (
	cacheGetWorkHours = "workhour:gets"
)

type WorkHour interface {
	Upsert(ctx context.Context, businessID string, req dto.UpsertWorkHoursRequest) error
	Get(ctx context.Context, businessID string) (dto.GetWorkHoursResponse, error)
}

type serviceImpl struct {
	repo  repository.WorkHour
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.WorkHour, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) WorkHour {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Upsert replaces the business's weekly schedule. At most one enabled rule
// may exist per weekday, and every rule's range must be well formed.
func (s *serviceImpl) Upsert(ctx context.Context, businessID string, req dto.UpsertWorkHoursRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validateRules(req.Rules); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(businessID, model.FieldBusinessID, model.TableName)

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to clear existing work hours")

		return fmt.Errorf("failed to clear existing work hours: %w", err)
	}

	if err = s.repo.InsertBulk(ctx, req.ToModels(businessID, user)); err != nil {
		log.Error().Err(err).Msg("failed to save work hours")

		return fmt.Errorf("failed to save work hours: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetWorkHours)
	}()

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, businessID string) (res dto.GetWorkHoursResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetWorkHours, businessID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for work hours")

		return res, nil
	}

	models, err := s.repo.GetAll(
		ctx,
		gDto.QueryParams{SortBy: model.FieldDayOfWeek, SortDir: "ASC"},
		shared.FilterByID(businessID, model.FieldBusinessID, model.TableName),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get work hours")

		return res, fmt.Errorf("failed to get work hours: %w", err)
	}

	res.FromModels(businessID, models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save work hours to cache")
		}
	}()

	return res, nil
}

func validateRules(rules []dto.WorkHourRuleRequest) error {
	enabledDays := map[int]bool{}

	for _, rule := range rules {
		start, err := engine.ParseTimeOfDay(rule.StartTime)
		if err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid start_time %q, expected HH:MM", rule.StartTime)) // nolint:wrapcheck
		}

		end, err := engine.ParseTimeOfDay(rule.EndTime)
		if err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid end_time %q, expected HH:MM", rule.EndTime)) // nolint:wrapcheck
		}

		if end.Hour*60+end.Minute <= start.Hour*60+start.Minute {
			return failure.BadRequestFromString(fmt.Sprintf("end_time %s must be after start_time %s", rule.EndTime, rule.StartTime)) // nolint:wrapcheck
		}

		if rule.IsEnabled {
			if enabledDays[rule.DayOfWeek] {
				return failure.BadRequestFromString(fmt.Sprintf("duplicate enabled rule for day_of_week %d", rule.DayOfWeek)) // nolint:wrapcheck
			}

			enabledDays[rule.DayOfWeek] = true
		}
	}

	return nil
}
