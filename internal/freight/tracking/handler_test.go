package tracking

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

const createBody = `{"mode":"AIR","pol":"KRICN","pod":"USLAX","booking_date":"2024-03-14","etd":"2024-03-16"}`

func newTestRouter(t *testing.T) (http.Handler, *auditSpy) {
	t.Helper()
	svc, spy := newTestService()
	r := chi.NewRouter()
	r.Route("/shipments", NewHandler(nil, svc, nil).MountRoutes)
	rr := serve(r, http.MethodPost, "/shipments", createBody)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return r, spy
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func timelineOf(t *testing.T, router http.Handler, id string) Timeline {
	t.Helper()
	rr := serve(router, http.MethodGet, "/shipments/"+id+"/timeline", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var tl Timeline
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tl))
	return tl
}

func TestHandlerTimelineFollowsEvents(t *testing.T) {
	router, spy := newTestRouter(t)

	tl := timelineOf(t, router, "1")
	assert.Equal(t, StageBooked, tl.Stage)
	assert.Equal(t, 25, tl.Progress)

	rr := serve(router, http.MethodPost, "/shipments/1/events", `{"stage":"DEPARTED","date":"2024-03-16"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var sh Shipment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sh))
	require.NotNil(t, sh.ATD)

	tl = timelineOf(t, router, "1")
	assert.Equal(t, StageDeparted, tl.Stage)
	assert.Equal(t, 50, tl.Progress)
	require.Len(t, tl.Milestones, 4)
	assert.Equal(t, StateCurrent, tl.Milestones[2].State)

	require.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/shipments/1/events", `{"stage":"arrived","date":"2024-03-17"}`).Code)
	require.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/shipments/1/events", `{"stage":"DELIVERED","date":"2024-03-18"}`).Code)

	tl = timelineOf(t, router, "1")
	assert.Equal(t, StageDelivered, tl.Stage)
	assert.Equal(t, 100, tl.Progress)
	for _, m := range tl.Milestones {
		assert.Equal(t, StateDone, m.State, m.Stage)
	}
	assert.Equal(t, []string{"shipment.created", "shipment.departed", "shipment.arrived", "shipment.delivered"}, spy.actions)
}

func TestHandlerEventRejectsOutOfOrderDates(t *testing.T) {
	router, spy := newTestRouter(t)

	rr := serve(router, http.MethodPost, "/shipments/1/events", `{"stage":"ARRIVED","date":"2024-03-17"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
	assert.Contains(t, problem.Errors, "atd")

	require.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/shipments/1/events", `{"stage":"DEPARTED","date":"2024-03-16"}`).Code)
	rr = serve(router, http.MethodPost, "/shipments/1/events", `{"stage":"ARRIVED","date":"2024-03-10"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, StageDeparted, timelineOf(t, router, "1").Stage)
	assert.Equal(t, []string{"shipment.created", "shipment.departed"}, spy.actions)
}

func TestHandlerEventRejectsBadPayloads(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := serve(router, http.MethodPost, "/shipments/1/events", `{"stage":"LOADED","date":"2024-03-16"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
	assert.Contains(t, problem.Errors, "stage")

	rr = serve(router, http.MethodPost, "/shipments/1/events", `{"stage":"DEPARTED","date":"16/03/2024"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/shipments/1/events", `{"stage":`).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/shipments/7/events", `{"stage":"DEPARTED","date":"2024-03-16"}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/shipments/7/timeline", "").Code)
}
