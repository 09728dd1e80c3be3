package availability

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pagespark/infras/otel"
	"pagespark/internal/domains/availability/model/dto"
	"pagespark/internal/domains/availability/service"
	"pagespark/shared/constant"
	"pagespark/shared/validator"
	"pagespark/transport/http/response"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAvailability)
		routerGroup.Post("/check", handler.CheckAvailability)
	})
}

// GetAvailability returns the slot grid for one date.
// @Summary Get availability for a date
// @Description Compute the bookable time slots for a business on one date, given the booking's duration and travel time.
// @Tags Availability
// @Produce json
// @Param business_id query string true "Business ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param duration_minutes query int true "Service duration in minutes"
// @Param travel_minutes query int false "Travel time in minutes; slots are withheld until known"
// @Param early_start query string false "RFC3339 instant when work started before configured hours"
// @Success 200 {object} dto.AvailabilityResponse "Day availability"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	query := r.URL.Query()

	req := dto.AvailabilityRequest{
		BusinessID: query.Get("business_id"),
		Date:       query.Get("date"),
		EarlyStart: query.Get("early_start"),
	}

	if duration := query.Get("duration_minutes"); duration != "" {
		parsed, err := strconv.Atoi(duration)
		if err == nil {
			req.DurationMinutes = parsed
		}
	}

	if travel := query.Get("travel_minutes"); travel != "" {
		parsed, err := strconv.Atoi(travel)
		if err == nil {
			req.TravelMinutes = &parsed
		}
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.GetDay(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability computed successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CheckAvailability re-validates one candidate interval.
// @Summary Check a candidate booking interval
// @Description Verify that a full interval is still free right before booking it.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.CheckAvailabilityRequest true "Check Availability Request"
// @Success 200 {object} dto.CheckAvailabilityResponse "Check result"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/check [post]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.CheckAvailabilityRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Check(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability check completed")

	response.WithJSON(w, http.StatusOK, res)
}
