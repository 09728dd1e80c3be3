package router

import (
	"github.com/go-chi/chi/v5"

	"pagespark/internal/handlers/appointment"
	"pagespark/internal/handlers/availability"
	"pagespark/internal/handlers/health"
	"pagespark/internal/handlers/workhour"
)

type DomainHandlers struct {
	Health       health.Handler
	WorkHour     workhour.Handler
	Appointment  appointment.Handler
	Availability availability.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.WorkHour.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
