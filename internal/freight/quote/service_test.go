package quote

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargodesk/cargodesk/internal/platform/httpx"
	"github.com/cargodesk/cargodesk/internal/shared"
)

type memoryRepo struct {
	nextID int64
	items  map[int64]Quote
}

func (m *memoryRepo) List(context.Context) ([]Quote, error) {
	out := make([]Quote, 0, len(m.items))
	for _, q := range m.items {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Quote, error) {
	q, ok := m.items[id]
	if !ok {
		return Quote{}, fmt.Errorf("quote %d: %w", id, httpx.ErrNotFound)
	}
	return q, nil
}

func (m *memoryRepo) Create(_ context.Context, q Quote) (Quote, error) {
	m.nextID++
	q.ID = m.nextID
	m.items[q.ID] = q
	return q, nil
}

func (m *memoryRepo) Update(_ context.Context, q Quote) (Quote, error) {
	if _, ok := m.items[q.ID]; !ok {
		return Quote{}, httpx.ErrNotFound
	}
	m.items[q.ID] = q
	return q, nil
}

func (m *memoryRepo) SoftDelete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

var kst = time.FixedZone("KST", 9*60*60)

func newTestService() (*Service, *memoryRepo) {
	repo := &memoryRepo{items: map[int64]Quote{}}
	svc := NewService(repo, shared.NopAudit{}, nil, kst)
	// 2024-03-15 00:30 KST is still 2024-03-14 in UTC.
	svc.clock = func() time.Time { return time.Date(2024, 3, 14, 15, 30, 0, 0, time.UTC) }
	return svc, repo
}

func amount(v float64) *float64 { return &v }
func str(s string) *string      { return &s }

func validRequest() Request {
	return Request{
		Customer:   "삼성물산",
		Mode:       "SEA",
		POL:        "KRPUS",
		POD:        "DEHAM",
		Currency:   "usd",
		Amount:     amount(1850),
		QuoteDate:  "2024-03-01",
		ValidUntil: str("2024-03-31"),
	}
}

func TestCreateQuoteUsesBusinessDay(t *testing.T) {
	svc, _ := newTestService()

	q, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Regexp(t, `^QT-20240315-`, q.QuoteNo)
	assert.Equal(t, "USD", q.Currency)
	assert.Equal(t, StatusDraft, q.Status)
}

func TestQuoteValidation(t *testing.T) {
	svc, _ := newTestService()

	req := validRequest()
	req.Currency = "WON"
	_, err := svc.Create(context.Background(), req)
	var verr *httpx.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "currency")

	req = validRequest()
	req.ValidUntil = str("2024-02-01")
	_, err = svc.Create(context.Background(), req)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "valid_until")

	req = validRequest()
	req.Status = "SENT"
	req.Amount = nil
	_, err = svc.Create(context.Background(), req)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "amount")

	req = validRequest()
	req.Amount = amount(-1)
	_, err = svc.Create(context.Background(), req)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "amount")
}

func TestRecordsDeriveExpiry(t *testing.T) {
	svc, _ := newTestService()

	sent := validRequest()
	sent.Status = "SENT"
	sent.ValidUntil = str("2024-03-14")
	_, err := svc.Create(context.Background(), sent)
	require.NoError(t, err)

	stillValid := validRequest()
	stillValid.Status = "SENT"
	stillValid.ValidUntil = str("2024-03-15")
	_, err = svc.Create(context.Background(), stillValid)
	require.NoError(t, err)

	unpriced := validRequest()
	unpriced.Amount = nil
	_, err = svc.Create(context.Background(), unpriced)
	require.NoError(t, err)

	records, err := svc.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "EXPIRED", records[0].Get("status").Text())
	assert.Equal(t, "SENT", records[1].Get("status").Text())
	assert.True(t, records[2].Get("amount").IsNull())
	assert.Equal(t, "1850", records[0].Get("amount").Text())
}

func TestUpdateAndDeleteQuote(t *testing.T) {
	svc, repo := newTestService()
	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Amount = amount(2100)
	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.QuoteNo, updated.QuoteNo)
	assert.Equal(t, 2100.0, *repo.items[created.ID].Amount)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
