package billoflading

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

type memoryRepo struct {
	items map[int64]BillOfLading
}

func (m *memoryRepo) List(context.Context) ([]BillOfLading, error) {
	out := make([]BillOfLading, 0, len(m.items))
	for id := int64(1); id <= int64(len(m.items))+10; id++ {
		if b, ok := m.items[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (BillOfLading, error) {
	b, ok := m.items[id]
	if !ok {
		return BillOfLading{}, httpx.ErrNotFound
	}
	return b, nil
}

func (m *memoryRepo) Create(_ context.Context, b BillOfLading) (BillOfLading, error) {
	b.ID = int64(len(m.items) + 1)
	m.items[b.ID] = b
	return b, nil
}

func (m *memoryRepo) Update(_ context.Context, b BillOfLading) (BillOfLading, error) {
	m.items[b.ID] = b
	return b, nil
}

func (m *memoryRepo) SoftDelete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

func newTestService() *Service {
	svc := NewService(&memoryRepo{items: map[int64]BillOfLading{}}, nil, nil, time.FixedZone("KST", 9*60*60))
	svc.clock = func() time.Time { return time.Date(2024, 5, 31, 16, 0, 0, 0, time.UTC) }
	return svc
}

func str(s string) *string { return &s }

func houseRequest() Request {
	return Request{
		BLType:    "house",
		BookingNo: str("BK-20240520-1A2B3C"),
		Shipper:   "대한통운",
		Consignee: "Hamburg Trading GmbH",
		Vessel:    "HMM Algeciras",
		VoyageNo:  "0012W",
		POL:       "KRPUS",
		POD:       "DEHAM",
	}
}

func TestCreateDefaultsIssueDateToBusinessDay(t *testing.T) {
	svc := newTestService()

	b, err := svc.Create(context.Background(), houseRequest())
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", b.IssueDate.Format("2006-01-02"))
	assert.Regexp(t, `^HBL-20240601-`, b.BLNo)
	assert.Equal(t, StatusDraft, b.Status)
}

func TestHouseBillNeedsBooking(t *testing.T) {
	svc := newTestService()
	req := houseRequest()
	req.BookingNo = str(" ")

	_, err := svc.Create(context.Background(), req)
	var verr *httpx.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "booking_no")

	req.BLType = "MASTER"
	b, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Regexp(t, `^MBL-`, b.BLNo)
	assert.True(t, b.Record()["booking_no"].IsNull())
}

func TestStatusFlow(t *testing.T) {
	svc := newTestService()
	b, err := svc.Create(context.Background(), houseRequest())
	require.NoError(t, err)

	req := houseRequest()
	req.Status = "SURRENDERED"
	_, err = svc.Update(context.Background(), b.ID, req)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	req.Status = "ISSUED"
	_, err = svc.Update(context.Background(), b.ID, req)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), b.ID), httpx.ErrValidation)

	req.Status = ""
	kept, err := svc.Update(context.Background(), b.ID, req)
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, kept.Status)
	assert.Equal(t, b.BLNo, kept.BLNo)

	req.Status = "SURRENDERED"
	_, err = svc.Update(context.Background(), b.ID, req)
	require.NoError(t, err)

	req.Status = "DRAFT"
	_, err = svc.Update(context.Background(), b.ID, req)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, canTransition(StatusDraft, StatusIssued))
	assert.False(t, canTransition(StatusDraft, StatusSurrendered))
	assert.True(t, canTransition(StatusIssued, StatusDraft))
	assert.False(t, canTransition(StatusSurrendered, StatusIssued))
	assert.True(t, canTransition(StatusSurrendered, StatusSurrendered))
}
