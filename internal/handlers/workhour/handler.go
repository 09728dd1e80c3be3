package workhour

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pagespark/infras/otel"
	"pagespark/internal/domains/workhour/model/dto"
	"pagespark/internal/domains/workhour/service"
	"pagespark/shared/constant"
	"pagespark/shared/failure"
	"pagespark/shared/validator"
	"pagespark/transport/http/middleware"
	"pagespark/transport/http/response"
)

type Handler struct {
	service    service.WorkHour
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.WorkHour, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/work-hours", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetWorkHours)
		routerGroup.Put("/", handler.UpsertWorkHours)
	})
}

// GetWorkHours returns a business's weekly schedule.
// @Summary Get work hours
// @Description Retrieve the weekly work-hour rules for a business.
// @Tags WorkHour
// @Produce json
// @Param business_id query string true "Business ID"
// @Success 200 {object} dto.GetWorkHoursResponse "Weekly schedule"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/work-hours [get]
func (handler *Handler) GetWorkHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWorkHours")
	defer scope.End()

	businessID := r.URL.Query().Get("business_id")
	if businessID == "" {
		response.WithError(w, failure.BadRequestFromString("business_id is required"))

		return
	}

	res, err := handler.service.Get(ctx, businessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get work hours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Work hours retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// UpsertWorkHours replaces a business's weekly schedule.
// @Summary Upsert work hours
// @Description Replace the weekly work-hour rules for a business. At most one enabled rule per weekday.
// @Tags WorkHour
// @Accept json
// @Produce json
// @Param business_id query string true "Business ID"
// @Param request body dto.UpsertWorkHoursRequest true "Upsert Work Hours Request"
// @Success 200 {object} response.Message "Work hours saved successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/work-hours [put]
// @Security BearerAuth
func (handler *Handler) UpsertWorkHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertWorkHours")
	defer scope.End()

	businessID := r.URL.Query().Get("business_id")
	if businessID == "" {
		response.WithError(w, failure.BadRequestFromString("business_id is required"))

		return
	}

	req := dto.UpsertWorkHoursRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Upsert(ctx, businessID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert work hours")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Work hours saved successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Work hours saved successfully")
}
