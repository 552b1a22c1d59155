package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

func newTestRouter() (http.Handler, *memoryRepo) {
	svc, repo, _ := newTestService()
	r := chi.NewRouter()
	r.Route("/bookings", NewHandler(nil, svc, nil).MountRoutes)
	return r, repo
}

const createBody = `{"mode":"SEA","shipper":"한빛상사","consignee":"Pacific Imports","carrier_code":"MAEU",
"pol":"KRPUS","pod":"NLRTM","container_type":"20GP","container_qty":1,"booking_date":"2024-03-01"}`

func TestHandlerCRUD(t *testing.T) {
	router, repo := newTestRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(createBody)))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created Booking
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/bookings/1", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	update := strings.Replace(createBody, `"MAEU"`, `"HDMU"`, 1)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/bookings/1", strings.NewReader(update)))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "HDMU", repo.items[1].CarrierCode)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/bookings/1", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/bookings/1", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlerValidationProblem(t *testing.T) {
	router, _ := newTestRouter()

	body := strings.Replace(createBody, `"NLRTM"`, `"ROTTERDAM"`, 1)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body)))
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
	assert.Contains(t, problem.Errors, "pod")
}

func TestHandlerRejectsUnknownFields(t *testing.T) {
	router, _ := newTestRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"vessel":"x"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
