package week_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekgrid/infras/otel/mocks"
	"weekgrid/internal/domains/booking/model/dto"
	"weekgrid/internal/handlers/week"
)

func newTestRouter() chi.Router {
	handler := week.New(mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func TestWeekHandler_GetWeek(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name      string
		date      string
		wantKey   string
		wantStart string
	}{
		{name: "thursday resolves to its monday", date: "2025-11-13", wantKey: "2025-W46", wantStart: "2025-11-10"},
		{name: "monday resolves to itself", date: "2025-11-10", wantKey: "2025-W46", wantStart: "2025-11-10"},
		{name: "january date in previous iso year", date: "2021-01-01", wantKey: "2020-W53", wantStart: "2020-12-28"},
		{name: "december date in next iso year", date: "2024-12-30", wantKey: "2025-W01", wantStart: "2024-12-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/weeks/"+tt.date, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var body dto.WeekResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

			assert.Equal(t, tt.wantKey, body.WeekKey)
			assert.Equal(t, tt.wantStart, body.Start)
			require.Len(t, body.Dates, 7)
			assert.Equal(t, tt.wantStart, body.Dates[0])
		})
	}
}

func TestWeekHandler_RejectsMalformedDate(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/weeks/13.11.2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
