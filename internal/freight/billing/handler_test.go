package billing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createBody = `{"invoice_type":"AP","customer":"Maersk Korea","currency":"USD","amount":100,"invoice_date":"2024-03-15"}`

func newTestRouter() (http.Handler, *memoryRepo, *auditSpy) {
	svc, repo, _, spy := newTestService()
	r := chi.NewRouter()
	r.Route("/invoices", NewHandler(nil, svc, nil).MountRoutes)
	return r, repo, spy
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

func TestHandlerPayLocksInvoice(t *testing.T) {
	router, repo, spy := newTestRouter()

	rr := serve(router, http.MethodPost, "/invoices", createBody)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = serve(router, http.MethodPost, "/invoices/1/pay", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var paid Invoice
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &paid))
	assert.Equal(t, StatusPaid, paid.Status)
	assert.Equal(t, 138000.0, paid.AmountKRW)
	assert.Equal(t, StatusPaid, repo.items[1].Status)

	rr = serve(router, http.MethodPost, "/invoices/1/pay", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"invoice.issued", "invoice.paid"}, spy.actions)

	update := strings.Replace(createBody, `"amount":100`, `"amount":200`, 1)
	rr = serve(router, http.MethodPut, "/invoices/1", update)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 100.0, repo.items[1].Amount)

	rr = serve(router, http.MethodDelete, "/invoices/1", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, repo.items, int64(1))
}

func TestHandlerPayUnknownInvoice(t *testing.T) {
	router, _, _ := newTestRouter()

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/invoices/9/pay", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/invoices/abc/pay", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(router, http.MethodGet, "/invoices/1/pay", "").Code)
}

func TestHandlerCRUDBeforePayment(t *testing.T) {
	router, repo, _ := newTestRouter()

	require.Equal(t, http.StatusCreated, serve(router, http.MethodPost, "/invoices", createBody).Code)

	rr := serve(router, http.MethodGet, "/invoices/1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	update := strings.Replace(createBody, `"amount":100`, `"amount":200`, 1)
	rr = serve(router, http.MethodPut, "/invoices/1", update)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 276000.0, repo.items[1].AmountKRW)

	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/invoices/1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/invoices/1", "").Code)
}

func TestHandlerRejectsInvalidInvoice(t *testing.T) {
	router, _, _ := newTestRouter()

	body := strings.Replace(createBody, `"USD"`, `"ZZZ"`, 1)
	assert.Equal(t, http.StatusUnprocessableEntity, serve(router, http.MethodPost, "/invoices", body).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/invoices", `{"amount":"lots"}`).Code)
}
