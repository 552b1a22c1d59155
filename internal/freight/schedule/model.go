// Package schedule keeps the carrier sailing schedules used when booking.
package schedule

import (
	"time"

	"github.com/cargodesk/cargodesk/internal/listview"
)

// Schedule is one sailing of a vessel voyage between two ports.
type Schedule struct {
	ID          int64      `json:"id"`
	CarrierCode string     `json:"carrier_code"`
	Vessel      string     `json:"vessel"`
	VoyageNo    string     `json:"voyage_no"`
	POL         string     `json:"pol"`
	POD         string     `json:"pod"`
	CutOff      *time.Time `json:"cut_off,omitempty"`
	ETD         time.Time  `json:"etd"`
	ETA         time.Time  `json:"eta"`
	TransitDays int        `json:"transit_days"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TransitDays counts calendar days between departure and arrival.
func TransitDays(etd, eta time.Time) int {
	d := eta.Sub(etd).Hours() / 24
	if d < 0 {
		return 0
	}
	return int(d + 0.5)
}

// Record flattens the schedule into a list row.
func (s Schedule) Record() listview.Record {
	return listview.Record{
		"id":           listview.Int(s.ID),
		"carrier_code": listview.String(s.CarrierCode),
		"vessel":       listview.String(s.Vessel),
		"voyage_no":    listview.String(s.VoyageNo),
		"pol":          listview.String(s.POL),
		"pod":          listview.String(s.POD),
		"cut_off":      listview.DatePtr(s.CutOff),
		"etd":          listview.Date(s.ETD),
		"eta":          listview.Date(s.ETA),
		"transit_days": listview.Int(int64(s.TransitDays)),
	}
}
