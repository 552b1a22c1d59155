package tracking

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
	items  map[int64]Shipment
}

func (m *memoryRepo) List(context.Context) ([]Shipment, error) {
	out := make([]Shipment, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Shipment, error) {
	s, ok := m.items[id]
	if !ok {
		return Shipment{}, fmt.Errorf("shipment %d: %w", id, httpx.ErrNotFound)
	}
	return s, nil
}

func (m *memoryRepo) Create(_ context.Context, s Shipment) (Shipment, error) {
	m.nextID++
	s.ID = m.nextID
	m.items[s.ID] = s
	return s, nil
}

func (m *memoryRepo) Update(_ context.Context, s Shipment) (Shipment, error) {
	if _, ok := m.items[s.ID]; !ok {
		return Shipment{}, httpx.ErrNotFound
	}
	m.items[s.ID] = s
	return s, nil
}

func (m *memoryRepo) SoftDelete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type auditSpy struct{ actions []string }

func (a *auditSpy) Record(_ context.Context, log shared.AuditLog) error {
	a.actions = append(a.actions, log.Action)
	return nil
}

func strPtr(s string) *string { return &s }

func newTestService() (*Service, *auditSpy) {
	spy := &auditSpy{}
	svc := NewService(&memoryRepo{items: map[int64]Shipment{}}, spy, nil, time.FixedZone("KST", 9*3600))
	svc.clock = func() time.Time { return time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC) }
	return svc, spy
}

func validRequest() Request {
	return Request{
		Mode:        "sea",
		POL:         "krpus",
		POD:         "nlrtm",
		BookingDate: "2024-03-01",
		ETD:         strPtr("2024-03-08"),
		ETA:         strPtr("2024-04-12"),
	}
}

func TestCreateAndRecordEvents(t *testing.T) {
	svc, spy := newTestService()
	ctx := context.Background()

	sh, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.Regexp(t, `^SH-20240315-[0-9A-F]{6}$`, sh.ReferenceNo)
	assert.Equal(t, "KRPUS", sh.POL)

	tl, err := svc.Timeline(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, StageDeparted, tl.Stage)

	_, err = svc.RecordEvent(ctx, sh.ID, EventRequest{Stage: "arrived", Date: "2024-04-10"})
	var verr *httpx.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "atd")

	_, err = svc.RecordEvent(ctx, sh.ID, EventRequest{Stage: "departed", Date: "2024-03-09"})
	require.NoError(t, err)
	_, err = svc.RecordEvent(ctx, sh.ID, EventRequest{Stage: "arrived", Date: "2024-03-08"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ata")

	_, err = svc.RecordEvent(ctx, sh.ID, EventRequest{Stage: "loaded", Date: "2024-03-09"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "stage")

	assert.Equal(t, []string{"shipment.created", "shipment.departed"}, spy.actions)
}

func TestCreateValidatesSequence(t *testing.T) {
	svc, _ := newTestService()

	cases := map[string]struct {
		mutate func(*Request)
		field  string
	}{
		"eta before etd":       {func(r *Request) { r.ETA = strPtr("2024-03-01") }, "eta"},
		"departed before book": {func(r *Request) { r.ATD = strPtr("2024-02-20") }, "atd"},
		"arrival without atd":  {func(r *Request) { r.ATA = strPtr("2024-04-10") }, "atd"},
		"delivered early":      {func(r *Request) { r.ATD, r.ATA, r.DeliveredAt = strPtr("2024-03-09"), strPtr("2024-04-10"), strPtr("2024-04-01") }, "delivered_at"},
		"bad port":             {func(r *Request) { r.POD = "ROTTERDAM" }, "pod"},
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

func TestListRecordsExposeStage(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	req := validRequest()
	req.ETD = strPtr("2024-03-20")
	req.ETA = strPtr("2024-04-20")
	_, err = svc.Create(ctx, req)
	require.NoError(t, err)

	records, err := svc.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "DEPARTED", records[0].Get("stage").Text())
	assert.Equal(t, "BOOKED", records[1].Get("stage").Text())
}
