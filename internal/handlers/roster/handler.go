package roster

import (
	"net/http"

	"weekgrid/infras/otel"
	"weekgrid/internal/domains/roster/model/dto"
	"weekgrid/internal/domains/roster/service"
	"weekgrid/shared/constant"
	"weekgrid/shared/validator"
	"weekgrid/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Roster
	otel    otel.Otel
}

func New(service service.Roster, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/people", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPeople)
		routerGroup.Post("/", handler.AddPerson)
		routerGroup.Delete("/{id}", handler.RemovePerson)
	})
}

func (handler *Handler) GetPeople(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPeople")
	defer scope.End()

	people, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list people")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, people)
}

func (handler *Handler) AddPerson(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddPerson")
	defer scope.End()

	req := dto.AddPersonRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	added, err := handler.service.Add(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add person")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Person added to roster: " + added.Name)

	response.WithJSON(writer, http.StatusCreated, added)
}

func (handler *Handler) RemovePerson(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemovePerson")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Remove(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove person")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.DeleteResponse{Ok: true})
}
