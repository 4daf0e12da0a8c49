package week

import (
	"fmt"
	"net/http"

	"weekgrid/infras/otel"
	"weekgrid/internal/domains/booking/model/dto"
	"weekgrid/shared/constant"
	"weekgrid/shared/failure"
	"weekgrid/shared/timezone"
	"weekgrid/shared/weekcal"
	"weekgrid/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	otel otel.Otel
}

func New(otel otel.Otel) Handler {
	return Handler{
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/weeks", func(routerGroup chi.Router) {
		routerGroup.Get("/{date}", handler.GetWeek)
	})
}

// GetWeek resolves any calendar date to its ISO week: the key plus the
// seven dates of that week, Monday first.
func (handler *Handler) GetWeek(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWeek")
	defer scope.End()

	raw := chi.URLParam(request, constant.RequestParamDate)

	date, err := timezone.Parse(constant.DateOnlyFormat, raw)
	if err != nil {
		response.WithError(writer, failure.BadRequestFromString(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", raw)))

		return
	}

	weekKey := weekcal.Key(date)
	dates := weekcal.Dates(weekcal.StartOfWeek(date))

	scope.SetAttribute(constant.OtelWeekKeyAttribute, weekKey)

	response.WithJSON(writer, http.StatusOK, dto.NewWeekResponse(weekKey, dates))
}
