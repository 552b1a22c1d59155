package schedule

import (
	"strings"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
)

func toModel(req Request) (Schedule, error) {
	req.CarrierCode = codes.Normalize(req.CarrierCode)
	req.Vessel = strings.ToUpper(strings.TrimSpace(req.Vessel))
	req.VoyageNo = codes.Normalize(req.VoyageNo)
	req.POL = codes.Normalize(req.POL)
	req.POD = codes.Normalize(req.POD)
	req.CutOff = codes.StringPtr(req.CutOff)
	if err := codes.Check(req); err != nil {
		return Schedule{}, err
	}
	etd, err := codes.ParseDate("etd", req.ETD)
	if err != nil {
		return Schedule{}, err
	}
	eta, err := codes.ParseDate("eta", req.ETA)
	if err != nil {
		return Schedule{}, err
	}
	if eta.Before(etd) {
		return Schedule{}, codes.Invalid("eta", "must not be before etd")
	}
	cutOff, err := codes.ParseOptionalDate("cut_off", req.CutOff)
	if err != nil {
		return Schedule{}, err
	}
	if cutOff != nil && cutOff.After(etd) {
		return Schedule{}, codes.Invalid("cut_off", "must not be after etd")
	}
	transit := TransitDays(etd, eta)
	if req.TransitDays != nil {
		transit = *req.TransitDays
	}
	return Schedule{
		CarrierCode: req.CarrierCode,
		Vessel:      req.Vessel,
		VoyageNo:    req.VoyageNo,
		POL:         req.POL,
		POD:         req.POD,
		CutOff:      cutOff,
		ETD:         etd,
		ETA:         eta,
		TransitDays: transit,
	}, nil
}
