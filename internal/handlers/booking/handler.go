package booking

import (
	"net/http"

	"weekgrid/infras/otel"
	"weekgrid/internal/domains/booking/model/dto"
	"weekgrid/internal/domains/booking/service"
	"weekgrid/shared/constant"
	"weekgrid/shared/failure"
	"weekgrid/shared/validator"
	"weekgrid/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.MethodNotAllowed(handler.MethodNotAllowed)
		routerGroup.Get("/", handler.GetWeekBookings)
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Delete("/", handler.DeleteBooking)
		routerGroup.Get("/export", handler.ExportWeek)
	})
}

// MethodNotAllowed answers unsupported verbs with the Allow header set so
// clients can discover the supported surface.
func (handler *Handler) MethodNotAllowed(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set(constant.RequestHeaderAllow, constant.AllowedBookingMethods)

	response.WithError(writer, failure.MethodNotAllowed(request.Method))
}

// GetWeekBookings lists the bookings of one week as a bare JSON array. The
// weekKey query parameter is mandatory.
func (handler *Handler) GetWeekBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWeekBookings")
	defer scope.End()

	weekKey := request.URL.Query().Get(constant.RequestParamWeekKey)
	if weekKey == "" {
		response.WithError(writer, failure.BadRequestFromString("weekKey query parameter is required"))

		return
	}

	scope.SetAttribute(constant.OtelWeekKeyAttribute, weekKey)

	bookings, err := handler.service.ListWeek(ctx, weekKey)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list week bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// CreateBooking stores a new booking and echoes the created record.
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	created, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created for " + created.Title)

	response.WithJSON(writer, http.StatusCreated, created)
}

// DeleteBooking removes a booking by id. The weekKey parameter is an
// optional hint that narrows the lookup; deleting an unknown id succeeds.
func (handler *Handler) DeleteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := request.URL.Query().Get(constant.RequestParamID)
	if id == "" {
		response.WithError(writer, failure.BadRequestFromString("id query parameter is required"))

		return
	}

	weekKey := request.URL.Query().Get(constant.RequestParamWeekKey)

	if err := handler.service.Delete(ctx, id, weekKey); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.DeleteResponse{Ok: true})
}

// ExportWeek streams one week of bookings as CSV.
func (handler *Handler) ExportWeek(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportWeek")
	defer scope.End()

	weekKey := request.URL.Query().Get(constant.RequestParamWeekKey)
	if weekKey == "" {
		response.WithError(writer, failure.BadRequestFromString("weekKey query parameter is required"))

		return
	}

	payload, err := handler.service.ExportWeekCSV(ctx, weekKey)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export week bookings")

		response.WithError(writer, err)

		return
	}

	response.WithCSV(writer, payload)
}
