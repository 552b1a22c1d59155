// Package billoflading manages master and house bills of lading.
package billoflading

import (
	"time"

	"github.com/cargodesk/cargodesk/internal/listview"
)

// Type distinguishes carrier-issued masters from forwarder-issued houses.
type Type string

const (
	TypeMaster Type = "MASTER"
	TypeHouse  Type = "HOUSE"
)

// Status is the release state of the original documents.
type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusIssued      Status = "ISSUED"
	StatusSurrendered Status = "SURRENDERED"
)

// BillOfLading is a transport document covering one booking.
type BillOfLading struct {
	ID          int64     `json:"id"`
	BLNo        string    `json:"bl_no"`
	BLType      Type      `json:"bl_type"`
	BookingNo   *string   `json:"booking_no,omitempty"`
	Shipper     string    `json:"shipper"`
	Consignee   string    `json:"consignee"`
	NotifyParty *string   `json:"notify_party,omitempty"`
	Vessel      string    `json:"vessel"`
	VoyageNo    string    `json:"voyage_no"`
	POL         string    `json:"pol"`
	POD         string    `json:"pod"`
	IssueDate   time.Time `json:"issue_date"`
	Status      Status    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Record flattens the B/L into a list row.
func (b BillOfLading) Record() listview.Record {
	return listview.Record{
		"id":           listview.Int(b.ID),
		"bl_no":        listview.String(b.BLNo),
		"bl_type":      listview.String(string(b.BLType)),
		"booking_no":   listview.StringPtr(b.BookingNo),
		"shipper":      listview.String(b.Shipper),
		"consignee":    listview.String(b.Consignee),
		"notify_party": listview.StringPtr(b.NotifyParty),
		"vessel":       listview.String(b.Vessel),
		"voyage_no":    listview.String(b.VoyageNo),
		"pol":          listview.String(b.POL),
		"pod":          listview.String(b.POD),
		"issue_date":   listview.Date(b.IssueDate),
		"status":       listview.String(string(b.Status)),
	}
}
