package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekgrid/config"
	"weekgrid/infras/otel/mocks"
	"weekgrid/internal/domains/booking/model/dto"
	"weekgrid/internal/domains/booking/policy"
	"weekgrid/internal/domains/booking/service"
	"weekgrid/internal/domains/booking/store"
	"weekgrid/internal/handlers/booking"
	"weekgrid/shared/cache"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	ot := mocks.NewOtel()

	pol := policy.Policy{
		OnePerWeek:    true,
		StartHourMin:  8,
		StartHourMax:  16,
		DayEndHour:    20,
		DurationHours: 4,
	}

	cfg := &config.Config{}
	svc := service.New(store.NewMemory(ot), pol, cfg, cache.NewRedisCache(nil, ot), ot)
	handler := booking.New(svc, ot)

	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func createBooking(t *testing.T, router chi.Router, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestBookingHandler_CreateAndList(t *testing.T) {
	router := newTestRouter(t)

	rec := createBooking(t, router, `{"weekKey":"2025-W46","title":"Alex","dayDate":"2025-11-12","startHour":8,"durationHours":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "12:00", created.End)

	req := httptest.NewRequest(http.MethodGet, "/bookings?weekKey=2025-W46", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	// The list body is a bare array, not an envelope.
	var listed []dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestBookingHandler_ListRequiresWeekKey(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "weekKey")
}

func TestBookingHandler_ListRejectsMalformedWeekKey(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/bookings?weekKey=2025-46", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingHandler_CreateValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"weekKey":`},
		{name: "missing title", body: `{"weekKey":"2025-W46","dayDate":"2025-11-12","startHour":8,"durationHours":4}`},
		{name: "bad week key", body: `{"weekKey":"week-46","title":"Alex","dayDate":"2025-11-12","startHour":8,"durationHours":4}`},
		{name: "bad date", body: `{"weekKey":"2025-W46","title":"Alex","dayDate":"12.11.2025","startHour":8,"durationHours":4}`},
		{name: "start hour past policy", body: `{"weekKey":"2025-W46","title":"Alex","dayDate":"2025-11-12","startHour":18,"durationHours":4}`},
		{name: "date outside week", body: `{"weekKey":"2025-W46","title":"Alex","dayDate":"2025-11-03","startHour":8,"durationHours":4}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := createBooking(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestBookingHandler_OnePerWeekConflict(t *testing.T) {
	router := newTestRouter(t)

	rec := createBooking(t, router, `{"weekKey":"2025-W46","title":"Alex","dayDate":"2025-11-10","startHour":8,"durationHours":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = createBooking(t, router, `{"weekKey":"2025-W46","title":"Alex","dayDate":"2025-11-12","startHour":12,"durationHours":4}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Alex")
}

func TestBookingHandler_Delete(t *testing.T) {
	router := newTestRouter(t)

	rec := createBooking(t, router, `{"weekKey":"2025-W46","title":"Alex","dayDate":"2025-11-10","startHour":8,"durationHours":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodDelete, "/bookings?id="+created.ID+"&weekKey=2025-W46", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	// Missing id is the caller's mistake.
	req = httptest.NewRequest(http.MethodDelete, "/bookings", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Deleting an unknown id still reports ok.
	req = httptest.NewRequest(http.MethodDelete, "/bookings?id=ghost", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestBookingHandler_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST, DELETE", rec.Header().Get("Allow"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestBookingHandler_ExportCSV(t *testing.T) {
	router := newTestRouter(t)

	rec := createBooking(t, router, `{"weekKey":"2025-W46","title":"Sam","dayDate":"2025-11-10","startHour":8,"durationHours":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = createBooking(t, router, `{"weekKey":"2025-W46","title":"Alex","dayDate":"2025-11-12","startHour":12,"durationHours":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/bookings/export?weekKey=2025-W46", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Person,Day,Date,Start,End", lines[0])
	assert.Equal(t, "Alex,Wednesday,2025-11-12,12:00,16:00", lines[2])
	assert.Equal(t, "Sam,Monday,2025-11-10,08:00,12:00", lines[3])
}
