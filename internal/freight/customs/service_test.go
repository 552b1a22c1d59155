package customs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargodesk/cargodesk/internal/platform/httpx"
	"github.com/cargodesk/cargodesk/internal/shared"
)

type memoryRepo struct {
	items []Declaration
}

func (m *memoryRepo) List(context.Context) ([]Declaration, error) { return m.items, nil }

func (m *memoryRepo) Get(_ context.Context, id int64) (Declaration, error) {
	for _, d := range m.items {
		if d.ID == id {
			return d, nil
		}
	}
	return Declaration{}, httpx.ErrNotFound
}

func (m *memoryRepo) Create(_ context.Context, d Declaration) (Declaration, error) {
	d.ID = int64(len(m.items) + 1)
	m.items = append(m.items, d)
	return d, nil
}

func (m *memoryRepo) Update(_ context.Context, d Declaration) (Declaration, error) {
	m.items[d.ID-1] = d
	return d, nil
}

func (m *memoryRepo) SoftDelete(_ context.Context, id int64) error {
	m.items[id-1].DeclarationNo = "deleted"
	return nil
}

type auditSpy struct{ actions []string }

func (a *auditSpy) Record(_ context.Context, log shared.AuditLog) error {
	a.actions = append(a.actions, log.Action)
	return nil
}

func value(v float64) *float64 { return &v }

func importRequest() Request {
	return Request{
		DeclarationType: "import",
		BLNo:            "hdmuPUSA1234567",
		Declarant:       "세관사무소 김관세사",
		HSCode:          "8471.30-0000",
		DeclaredValue:   value(12500),
		Currency:        "USD",
		DeclarationDate: "2024-04-02",
	}
}

func TestFileDeclaration(t *testing.T) {
	spy := &auditSpy{}
	svc := NewService(&memoryRepo{}, spy, nil)

	d, err := svc.Create(context.Background(), importRequest())
	require.NoError(t, err)
	assert.Equal(t, "8471300000", d.HSCode)
	assert.Equal(t, "HDMUPUSA1234567", d.BLNo)
	assert.Equal(t, StatusFiled, d.Status)
	assert.Regexp(t, `^CD-20240402-`, d.DeclarationNo)
	assert.Equal(t, "8471.30-0000", d.Record()["hs_code"].Text())
	assert.Equal(t, []string{"customs.filed"}, spy.actions)
}

func TestDeclarationValidation(t *testing.T) {
	svc := NewService(&memoryRepo{}, nil, nil)

	short := importRequest()
	short.HSCode = "8471"
	_, err := svc.Create(context.Background(), short)
	var verr *httpx.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "hs_code")

	cleared := importRequest()
	cleared.Status = "CLEARED"
	cleared.DeclaredValue = nil
	_, err = svc.Create(context.Background(), cleared)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "declared_value")
}

func TestClearedDeclarationsAreLocked(t *testing.T) {
	svc := NewService(&memoryRepo{}, nil, nil)
	req := importRequest()
	req.Status = "CLEARED"
	d, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), d.ID, importRequest())
	assert.ErrorIs(t, err, httpx.ErrValidation)
	assert.ErrorIs(t, svc.Delete(context.Background(), d.ID), httpx.ErrValidation)
}

func TestFormatHSCode(t *testing.T) {
	assert.Equal(t, "8471", FormatHSCode("8471"))
	assert.Equal(t, "8471.30", FormatHSCode("847130"))
	assert.Equal(t, "8471.30-0000", FormatHSCode("8471300000"))
}

func TestDeclarationHandlerNotFound(t *testing.T) {
	r := chi.NewRouter()
	r.Route("/customs-declarations", NewHandler(nil, NewService(&memoryRepo{}, nil, nil), nil).MountRoutes)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/customs-declarations/3", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	body := `{"declaration_type":"EXPORT","bl_no":"X1","declarant":"A","hs_code":"850440","currency":"KRW","declaration_date":"2024-04-02"}`
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/customs-declarations", strings.NewReader(body)))
	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}
