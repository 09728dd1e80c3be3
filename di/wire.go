//go:build wireinject
// +build wireinject

package di

import (
	"pagespark/config"
	"pagespark/infras/jwt"
	"pagespark/infras/kafka"
	"pagespark/infras/otel"
	"pagespark/infras/postgres"
	"pagespark/infras/redis"
	appointmentHandler "pagespark/internal/handlers/appointment"
	availabilityHandler "pagespark/internal/handlers/availability"
	healthHandler "pagespark/internal/handlers/health"
	workhourHandler "pagespark/internal/handlers/workhour"
	"pagespark/permissions"
	"pagespark/shared/cache"
	"pagespark/transport/http"
	"pagespark/transport/http/middleware"
	"pagespark/transport/http/router"

	appointmentRepository "pagespark/internal/domains/appointment/repository"
	appointmentService "pagespark/internal/domains/appointment/service"
	availabilityService "pagespark/internal/domains/availability/service"
	workhourRepository "pagespark/internal/domains/workhour/repository"
	workhourService "pagespark/internal/domains/workhour/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var workHourDomain = wire.NewSet(
	workhourRepository.New,
	workhourService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityService.New,
)

var domains = wire.NewSet(
	workHourDomain,
	appointmentDomain,
	availabilityDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	workhourHandler.New,
	appointmentHandler.New,
	availabilityHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
