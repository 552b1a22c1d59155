package booking

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
	items  map[int64]Booking
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[int64]Booking{}}
}

func (m *memoryRepo) List(context.Context) ([]Booking, error) {
	out := make([]Booking, 0, len(m.items))
	for _, b := range m.items {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (Booking, error) {
	b, ok := m.items[id]
	if !ok {
		return Booking{}, fmt.Errorf("booking %d: %w", id, httpx.ErrNotFound)
	}
	return b, nil
}

func (m *memoryRepo) Create(_ context.Context, b Booking) (Booking, error) {
	for _, existing := range m.items {
		if existing.BookingNo == b.BookingNo {
			return Booking{}, httpx.ErrDuplicate
		}
	}
	m.nextID++
	b.ID = m.nextID
	m.items[b.ID] = b
	return b, nil
}

func (m *memoryRepo) Update(_ context.Context, b Booking) (Booking, error) {
	current, ok := m.items[b.ID]
	if !ok {
		return Booking{}, httpx.ErrNotFound
	}
	b.CreatedBy = current.CreatedBy
	m.items[b.ID] = b
	return b, nil
}

func (m *memoryRepo) SoftDelete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type auditSpy struct {
	logs []shared.AuditLog
}

func (a *auditSpy) Record(_ context.Context, log shared.AuditLog) error {
	a.logs = append(a.logs, log)
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func validRequest() Request {
	return Request{
		Mode:          "sea",
		Shipper:       "한빛상사",
		Consignee:     "Pacific Imports LLC",
		CarrierCode:   "hdmu",
		POL:           "krpus",
		POD:           "USLAX",
		ContainerType: strPtr("40hc"),
		ContainerQty:  intPtr(2),
		BookingDate:   "2024-03-01",
		ETD:           strPtr("2024-03-10"),
		ETA:           strPtr("2024-03-24"),
	}
}

func newTestService() (*Service, *memoryRepo, *auditSpy) {
	repo := newMemoryRepo()
	spy := &auditSpy{}
	svc := NewService(repo, spy, nil)
	svc.clock = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo, spy
}

func TestCreateNormalizesAndNumbers(t *testing.T) {
	svc, _, spy := newTestService()

	b, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^BK-20240301-[0-9A-F]{6}$`, b.BookingNo)
	assert.Equal(t, StatusDraft, b.Status)
	assert.Equal(t, "HDMU", b.CarrierCode)
	assert.Equal(t, "KRPUS", b.POL)
	assert.Equal(t, "40HC", *b.ContainerType)
	assert.Equal(t, shared.DefaultActor, b.CreatedBy)
	require.Len(t, spy.logs, 1)
	assert.Equal(t, "booking.created", spy.logs[0].Action)
	assert.Equal(t, b.BookingNo, spy.logs[0].EntityID)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := map[string]struct {
		mutate func(*Request)
		field  string
	}{
		"bad port":          {func(r *Request) { r.POD = "LA" }, "pod"},
		"same port":         {func(r *Request) { r.POD = "KRPUS" }, "pod"},
		"bad carrier":       {func(r *Request) { r.CarrierCode = "HYUNDAI" }, "carrier_code"},
		"sea no container":  {func(r *Request) { r.ContainerType = nil }, "container_type"},
		"eta before etd":    {func(r *Request) { r.ETA = strPtr("2024-03-01") }, "eta"},
		"bad date":          {func(r *Request) { r.BookingDate = "01.03.2024" }, "booking_date"},
		"unknown mode":      {func(r *Request) { r.Mode = "RAIL" }, "mode"},
		"missing consignee": {func(r *Request) { r.Consignee = " " }, "consignee"},
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

func TestAirBookingNeedsNoContainer(t *testing.T) {
	svc, _, _ := newTestService()
	req := validRequest()
	req.Mode = "AIR"
	req.CarrierCode = "KE"
	req.POD = "USJFK"
	req.ContainerType = nil
	req.ContainerQty = nil

	b, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, b.Record()["container_qty"].IsNull())
}

func TestUpdateKeepsBookingNumber(t *testing.T) {
	svc, _, spy := newTestService()
	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Status = "confirmed"
	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.BookingNo, updated.BookingNo)
	assert.Equal(t, StatusConfirmed, updated.Status)
	assert.Equal(t, "booking.updated", spy.logs[len(spy.logs)-1].Action)

	_, err = svc.Update(context.Background(), 999, req)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteAndListRecords(t *testing.T) {
	svc, _, _ := newTestService()
	first, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), first.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), first.ID), httpx.ErrNotFound)

	records, err := svc.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "2", r.Get("id").Text())
	assert.Equal(t, "2024-03-01", r.Get("booking_date").Text())
	assert.Equal(t, "2024-03-10", r.Get("etd").Text())
	assert.Equal(t, "2", r.Get("container_qty").Text())
	assert.True(t, r.Get("remarks").IsNull())
}

type collidingRepo struct {
	*memoryRepo
	collisions int
	tried      []string
}

func (c *collidingRepo) Create(ctx context.Context, b Booking) (Booking, error) {
	c.tried = append(c.tried, b.BookingNo)
	if c.collisions > 0 {
		c.collisions--
		return Booking{}, httpx.ErrDuplicate
	}
	return c.memoryRepo.Create(ctx, b)
}

func TestCreateRedrawsCollidingNumber(t *testing.T) {
	repo := &collidingRepo{memoryRepo: newMemoryRepo(), collisions: 1}
	svc := NewService(repo, &auditSpy{}, nil)

	b, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, repo.tried, 2)
	assert.NotEqual(t, repo.tried[0], repo.tried[1])
	assert.Equal(t, repo.tried[1], b.BookingNo)

	repo.collisions = 1
	repo.tried = nil
	req := validRequest()
	req.BookingNo = "BK-FIXED"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
	assert.Equal(t, []string{"BK-FIXED"}, repo.tried)
}
