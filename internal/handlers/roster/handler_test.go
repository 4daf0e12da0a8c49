package roster_test

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
	"weekgrid/internal/domains/roster/model/dto"
	"weekgrid/internal/domains/roster/service"
	"weekgrid/internal/domains/roster/store"
	"weekgrid/internal/handlers/roster"
	"weekgrid/shared/cache"
)

func newTestRouter() chi.Router {
	ot := mocks.NewOtel()
	svc := service.New(store.NewMemory(ot), &config.Config{}, cache.NewRedisCache(nil, ot), ot)
	handler := roster.New(svc, ot)

	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func TestRosterHandler_AddListRemove(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/people", strings.NewReader(`{"name":"Alex"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var added dto.PersonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Alex", added.Name)

	req = httptest.NewRequest(http.MethodGet, "/people", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var people []dto.PersonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &people))
	require.Len(t, people, 1)

	req = httptest.NewRequest(http.MethodDelete, "/people/"+added.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestRosterHandler_DuplicateName(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/people", strings.NewReader(`{"name":"Alex"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/people", strings.NewReader(`{"name":"Alex"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRosterHandler_MissingName(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/people", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
