package billoflading

import (
	"strings"
	"time"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
)

// toModel validates req. A missing issue date falls back to today.
func toModel(req Request, today time.Time) (BillOfLading, error) {
	req.BLNo = codes.Normalize(req.BLNo)
	req.BLType = codes.Normalize(req.BLType)
	req.BookingNo = codes.StringPtr(req.BookingNo)
	req.Shipper = strings.TrimSpace(req.Shipper)
	req.Consignee = strings.TrimSpace(req.Consignee)
	req.NotifyParty = codes.StringPtr(req.NotifyParty)
	req.Vessel = strings.ToUpper(strings.TrimSpace(req.Vessel))
	req.VoyageNo = codes.Normalize(req.VoyageNo)
	req.POL = codes.Normalize(req.POL)
	req.POD = codes.Normalize(req.POD)
	req.IssueDate = codes.StringPtr(req.IssueDate)
	req.Status = codes.Normalize(req.Status)
	if err := codes.Check(req); err != nil {
		return BillOfLading{}, err
	}
	issueDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if req.IssueDate != nil {
		d, err := codes.ParseDate("issue_date", *req.IssueDate)
		if err != nil {
			return BillOfLading{}, err
		}
		issueDate = d
	}
	status := Status(req.Status)
	if status == "" {
		status = StatusDraft
	}
	blType := Type(req.BLType)
	if blType == TypeHouse && req.BookingNo == nil {
		return BillOfLading{}, codes.Invalid("booking_no", "is required for house bills")
	}
	return BillOfLading{
		BLNo:        req.BLNo,
		BLType:      blType,
		BookingNo:   req.BookingNo,
		Shipper:     req.Shipper,
		Consignee:   req.Consignee,
		NotifyParty: req.NotifyParty,
		Vessel:      req.Vessel,
		VoyageNo:    req.VoyageNo,
		POL:         req.POL,
		POD:         req.POD,
		IssueDate:   issueDate,
		Status:      status,
	}, nil
}

// canTransition reports whether a B/L may move from one status to another.
// Surrendered originals are final.
func canTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusDraft:
		return to == StatusIssued
	case StatusIssued:
		return to == StatusSurrendered || to == StatusDraft
	default:
		return false
	}
}
