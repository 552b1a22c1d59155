// Package booking manages sea and air space bookings with carriers.
package booking

import (
	"time"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
	"github.com/cargodesk/cargodesk/internal/listview"
)

// Status is the lifecycle of a booking.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusRequested Status = "REQUESTED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// Booking is a space reservation on a carrier service.
type Booking struct {
	ID            int64      `json:"id"`
	BookingNo     string     `json:"booking_no"`
	Mode          codes.Mode `json:"mode"`
	Status        Status     `json:"status"`
	Shipper       string     `json:"shipper"`
	Consignee     string     `json:"consignee"`
	CarrierCode   string     `json:"carrier_code"`
	POL           string     `json:"pol"`
	POD           string     `json:"pod"`
	ContainerType *string    `json:"container_type,omitempty"`
	ContainerQty  *int       `json:"container_qty,omitempty"`
	BookingDate   time.Time  `json:"booking_date"`
	ETD           *time.Time `json:"etd,omitempty"`
	ETA           *time.Time `json:"eta,omitempty"`
	Remarks       *string    `json:"remarks,omitempty"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Record flattens the booking into a list row.
func (b Booking) Record() listview.Record {
	qty := listview.Null()
	if b.ContainerQty != nil {
		qty = listview.Int(int64(*b.ContainerQty))
	}
	return listview.Record{
		"id":             listview.Int(b.ID),
		"booking_no":     listview.String(b.BookingNo),
		"mode":           listview.String(string(b.Mode)),
		"status":         listview.String(string(b.Status)),
		"shipper":        listview.String(b.Shipper),
		"consignee":      listview.String(b.Consignee),
		"carrier_code":   listview.String(b.CarrierCode),
		"pol":            listview.String(b.POL),
		"pod":            listview.String(b.POD),
		"container_type": listview.StringPtr(b.ContainerType),
		"container_qty":  qty,
		"booking_date":   listview.Date(b.BookingDate),
		"etd":            listview.DatePtr(b.ETD),
		"eta":            listview.DatePtr(b.ETA),
		"remarks":        listview.StringPtr(b.Remarks),
	}
}
