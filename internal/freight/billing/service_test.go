package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargodesk/cargodesk/internal/exchangerate"
	"github.com/cargodesk/cargodesk/internal/platform/httpx"
	"github.com/cargodesk/cargodesk/internal/shared"
)

type memoryRepo struct {
	nextID int64
	items  map[int64]Invoice
}

func (m *memoryRepo) List(context.Context) ([]Invoice, error) {
	out := make([]Invoice, 0, len(m.items))
	for _, inv := range m.items {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Invoice, error) {
	inv, ok := m.items[id]
	if !ok {
		return Invoice{}, fmt.Errorf("invoice %d: %w", id, httpx.ErrNotFound)
	}
	return inv, nil
}

func (m *memoryRepo) Create(_ context.Context, inv Invoice) (Invoice, error) {
	m.nextID++
	inv.ID = m.nextID
	m.items[inv.ID] = inv
	return inv, nil
}

func (m *memoryRepo) Update(_ context.Context, inv Invoice) (Invoice, error) {
	if _, ok := m.items[inv.ID]; !ok {
		return Invoice{}, httpx.ErrNotFound
	}
	m.items[inv.ID] = inv
	return inv, nil
}

func (m *memoryRepo) SetStatus(_ context.Context, id int64, status Status) (Invoice, error) {
	inv, ok := m.items[id]
	if !ok {
		return Invoice{}, httpx.ErrNotFound
	}
	inv.Status = status
	m.items[id] = inv
	return inv, nil
}

func (m *memoryRepo) SoftDelete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type fixedRates struct {
	calls int
	err   error
}

func (f *fixedRates) Rate(_ context.Context, from, to string) (float64, exchangerate.Rates, error) {
	f.calls++
	if f.err != nil {
		return 0, exchangerate.Rates{}, f.err
	}
	rates := exchangerate.Demo("USD", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	rate, err := rates.Rate(from, to)
	return rate, rates, err
}

type auditSpy struct{ actions []string }

func (a *auditSpy) Record(_ context.Context, log shared.AuditLog) error {
	a.actions = append(a.actions, log.Action)
	return nil
}

func strPtr(s string) *string { return &s }

func newTestService() (*Service, *memoryRepo, *fixedRates, *auditSpy) {
	repo := &memoryRepo{items: map[int64]Invoice{}}
	rates := &fixedRates{}
	spy := &auditSpy{}
	kst := time.FixedZone("KST", 9*3600)
	svc := NewService(repo, rates, spy, nil, kst)
	svc.clock = func() time.Time { return time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC) }
	return svc, repo, rates, spy
}

func validRequest() Request {
	return Request{
		InvoiceType: "ar",
		Customer:    "한빛상사",
		BLNo:        strPtr("hbl-20240301-0a1b2c"),
		Currency:    "usd",
		Amount:      1250.5,
		InvoiceDate: "2024-03-10",
		DueDate:     strPtr("2024-04-10"),
	}
}

func TestCreateConvertsToKRW(t *testing.T) {
	svc, _, rates, spy := newTestService()

	inv, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^INV-20240315-[0-9A-F]{6}$`, inv.InvoiceNo)
	assert.Equal(t, TypeReceivable, inv.InvoiceType)
	assert.Equal(t, "USD", inv.Currency)
	assert.Equal(t, "HBL-20240301-0A1B2C", *inv.BLNo)
	assert.Equal(t, 1380.0, inv.ExchangeRate)
	assert.Equal(t, 1725690.0, inv.AmountKRW)
	assert.Equal(t, exchangerate.SourceDemo, inv.RateSource)
	assert.Equal(t, StatusUnpaid, inv.Status)
	assert.Equal(t, 1, rates.calls)
	assert.Equal(t, []string{"invoice.issued"}, spy.actions)
}

func TestManualRateAndLocalCurrencySkipLookup(t *testing.T) {
	svc, _, rates, _ := newTestService()

	req := validRequest()
	rate := 1300.0
	req.ExchangeRate = &rate
	inv, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1625650.0, inv.AmountKRW)
	assert.Equal(t, RateManual, inv.RateSource)

	req = validRequest()
	req.Currency = "KRW"
	req.Amount = 500000
	inv, err = svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1.0, inv.ExchangeRate)
	assert.Equal(t, 500000.0, inv.AmountKRW)

	assert.Zero(t, rates.calls)
}

func TestCreatePropagatesRateErrors(t *testing.T) {
	svc, _, rates, _ := newTestService()
	rates.err = fmt.Errorf("%w: no rate for VND", httpx.ErrBadRequest)

	req := validRequest()
	req.Currency = "VND"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, httpx.ErrBadRequest)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	cases := map[string]struct {
		mutate func(*Request)
		field  string
	}{
		"bad type":        {func(r *Request) { r.InvoiceType = "AX" }, "invoice_type"},
		"bad currency":    {func(r *Request) { r.Currency = "DOLLAR" }, "currency"},
		"negative amount": {func(r *Request) { r.Amount = -1 }, "amount"},
		"zero rate":       {func(r *Request) { zero := 0.0; r.ExchangeRate = &zero }, "exchange_rate"},
		"due before":      {func(r *Request) { r.DueDate = strPtr("2024-03-01") }, "due_date"},
		"no customer":     {func(r *Request) { r.Customer = "" }, "customer"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			var verr *httpx.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestOverdueIsDerived(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validRequest()
	req.Status = "OVERDUE"
	req.InvoiceDate = "2024-02-01"
	req.DueDate = strPtr("2024-03-14")
	inv, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, StatusUnpaid, inv.Status)

	records, err := svc.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "OVERDUE", records[0].Get("status").Text())

	paid, err := svc.MarkPaid(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.EffectiveStatus(svc.today()))
}

func TestPaidInvoicesAreLocked(t *testing.T) {
	svc, _, _, spy := newTestService()
	inv, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	_, err = svc.MarkPaid(context.Background(), inv.ID)
	require.NoError(t, err)
	_, err = svc.MarkPaid(context.Background(), inv.ID)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), inv.ID, validRequest())
	assert.ErrorIs(t, err, httpx.ErrBadRequest)
	assert.ErrorIs(t, svc.Delete(context.Background(), inv.ID), httpx.ErrBadRequest)
	assert.Equal(t, []string{"invoice.issued", "invoice.paid"}, spy.actions)
}

func TestUpdateReconverts(t *testing.T) {
	svc, _, _, _ := newTestService()
	inv, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Currency = "EUR"
	req.Amount = 92
	updated, err := svc.Update(context.Background(), inv.ID, req)
	require.NoError(t, err)
	assert.Equal(t, inv.InvoiceNo, updated.InvoiceNo)
	assert.Equal(t, 138000.0, updated.AmountKRW)
}

func TestNilRateSourceNeedsManualRate(t *testing.T) {
	svc := NewService(&memoryRepo{items: map[int64]Invoice{}}, nil, nil, nil, time.UTC)
	_, err := svc.Create(context.Background(), validRequest())
	var verr *httpx.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "exchange_rate")
}
