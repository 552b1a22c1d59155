// Package tracking follows shipments from booking to delivery.
package tracking

import (
	"time"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
	"github.com/cargodesk/cargodesk/internal/listview"
)

// Shipment is a consignment moving between two ports. Actual dates stay nil
// until the event is reported.
type Shipment struct {
	ID          int64      `json:"id"`
	ReferenceNo string     `json:"reference_no"`
	BookingNo   *string    `json:"booking_no,omitempty"`
	Mode        codes.Mode `json:"mode"`
	POL         string     `json:"pol"`
	POD         string     `json:"pod"`
	BookingDate time.Time  `json:"booking_date"`
	ETD         *time.Time `json:"etd,omitempty"`
	ATD         *time.Time `json:"atd,omitempty"`
	ETA         *time.Time `json:"eta,omitempty"`
	ATA         *time.Time `json:"ata,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	Remarks     *string    `json:"remarks,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Record flattens the shipment into a list row with its derived stage.
func (s Shipment) Record(today time.Time) listview.Record {
	tl := s.Timeline(today)
	return listview.Record{
		"id":           listview.Int(s.ID),
		"reference_no": listview.String(s.ReferenceNo),
		"mode":         listview.String(string(s.Mode)),
		"pol":          listview.String(s.POL),
		"pod":          listview.String(s.POD),
		"booking_date": listview.Date(s.BookingDate),
		"etd":          listview.DatePtr(s.ETD),
		"atd":          listview.DatePtr(s.ATD),
		"eta":          listview.DatePtr(s.ETA),
		"ata":          listview.DatePtr(s.ATA),
		"delivered_at": listview.DatePtr(s.DeliveredAt),
		"stage":        listview.String(string(tl.Stage)),
		"progress":     listview.Int(int64(tl.Progress)),
	}
}
