package booking

import (
	"strings"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
)

func normalize(req Request) Request {
	req.BookingNo = strings.TrimSpace(req.BookingNo)
	req.Mode = codes.Normalize(req.Mode)
	req.Status = codes.Normalize(req.Status)
	req.Shipper = strings.TrimSpace(req.Shipper)
	req.Consignee = strings.TrimSpace(req.Consignee)
	req.CarrierCode = codes.Normalize(req.CarrierCode)
	req.POL = codes.Normalize(req.POL)
	req.POD = codes.Normalize(req.POD)
	req.ContainerType = codes.NormalizePtr(req.ContainerType)
	req.ETD = codes.StringPtr(req.ETD)
	req.ETA = codes.StringPtr(req.ETA)
	req.Remarks = codes.StringPtr(req.Remarks)
	return req
}

// toModel validates req and converts it into a Booking without identity fields.
func toModel(req Request) (Booking, error) {
	req = normalize(req)
	if err := codes.Check(req); err != nil {
		return Booking{}, err
	}
	if codes.Mode(req.Mode) == codes.ModeSea && req.ContainerType == nil {
		return Booking{}, codes.Invalid("container_type", "is required for sea bookings")
	}
	bookingDate, err := codes.ParseDate("booking_date", req.BookingDate)
	if err != nil {
		return Booking{}, err
	}
	etd, err := codes.ParseOptionalDate("etd", req.ETD)
	if err != nil {
		return Booking{}, err
	}
	eta, err := codes.ParseOptionalDate("eta", req.ETA)
	if err != nil {
		return Booking{}, err
	}
	if etd != nil && eta != nil && eta.Before(*etd) {
		return Booking{}, codes.Invalid("eta", "must not be before etd")
	}
	status := Status(req.Status)
	if status == "" {
		status = StatusDraft
	}
	return Booking{
		BookingNo:     req.BookingNo,
		Mode:          codes.Mode(req.Mode),
		Status:        status,
		Shipper:       req.Shipper,
		Consignee:     req.Consignee,
		CarrierCode:   req.CarrierCode,
		POL:           req.POL,
		POD:           req.POD,
		ContainerType: req.ContainerType,
		ContainerQty:  req.ContainerQty,
		BookingDate:   bookingDate,
		ETD:           etd,
		ETA:           eta,
		Remarks:       req.Remarks,
	}, nil
}
