package tracking

import (
	"strings"
	"time"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
)

func toModel(req Request) (Shipment, error) {
	req.ReferenceNo = strings.TrimSpace(req.ReferenceNo)
	req.BookingNo = codes.NormalizePtr(req.BookingNo)
	req.Mode = codes.Normalize(req.Mode)
	req.POL = codes.Normalize(req.POL)
	req.POD = codes.Normalize(req.POD)
	req.ETD = codes.StringPtr(req.ETD)
	req.ATD = codes.StringPtr(req.ATD)
	req.ETA = codes.StringPtr(req.ETA)
	req.ATA = codes.StringPtr(req.ATA)
	req.DeliveredAt = codes.StringPtr(req.DeliveredAt)
	req.Remarks = codes.StringPtr(req.Remarks)
	if err := codes.Check(req); err != nil {
		return Shipment{}, err
	}

	bookingDate, err := codes.ParseDate("booking_date", req.BookingDate)
	if err != nil {
		return Shipment{}, err
	}
	s := Shipment{
		ReferenceNo: req.ReferenceNo,
		BookingNo:   req.BookingNo,
		Mode:        codes.Mode(req.Mode),
		POL:         req.POL,
		POD:         req.POD,
		BookingDate: bookingDate,
		Remarks:     req.Remarks,
	}
	dates := []struct {
		field string
		raw   *string
		dest  **time.Time
	}{
		{"etd", req.ETD, &s.ETD},
		{"atd", req.ATD, &s.ATD},
		{"eta", req.ETA, &s.ETA},
		{"ata", req.ATA, &s.ATA},
		{"delivered_at", req.DeliveredAt, &s.DeliveredAt},
	}
	for _, d := range dates {
		parsed, err := codes.ParseOptionalDate(d.field, d.raw)
		if err != nil {
			return Shipment{}, err
		}
		*d.dest = parsed
	}
	if err := checkSequence(s); err != nil {
		return Shipment{}, err
	}
	return s, nil
}

// checkSequence enforces the chronological order of estimates and events.
func checkSequence(s Shipment) error {
	if before(s.ETA, s.ETD) {
		return codes.Invalid("eta", "must not be before etd")
	}
	if before(s.ATD, &s.BookingDate) {
		return codes.Invalid("atd", "must not be before booking_date")
	}
	if before(s.ATA, s.ATD) {
		return codes.Invalid("ata", "must not be before atd")
	}
	if s.ATA != nil && s.ATD == nil {
		return codes.Invalid("atd", "is required once the shipment has arrived")
	}
	if before(s.DeliveredAt, s.ATA) {
		return codes.Invalid("delivered_at", "must not be before ata")
	}
	if s.DeliveredAt != nil && s.ATA == nil {
		return codes.Invalid("ata", "is required once the shipment is delivered")
	}
	return nil
}

func before(a, b *time.Time) bool {
	return a != nil && b != nil && a.Before(*b)
}
