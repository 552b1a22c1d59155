package quote

import (
	"strings"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
)

func toModel(req Request) (Quote, error) {
	req.QuoteNo = strings.TrimSpace(req.QuoteNo)
	req.Status = codes.Normalize(req.Status)
	req.Customer = strings.TrimSpace(req.Customer)
	req.Mode = codes.Normalize(req.Mode)
	req.POL = codes.Normalize(req.POL)
	req.POD = codes.Normalize(req.POD)
	req.Currency = codes.Normalize(req.Currency)
	req.ValidUntil = codes.StringPtr(req.ValidUntil)
	if err := codes.Check(req); err != nil {
		return Quote{}, err
	}
	quoteDate, err := codes.ParseDate("quote_date", req.QuoteDate)
	if err != nil {
		return Quote{}, err
	}
	validUntil, err := codes.ParseOptionalDate("valid_until", req.ValidUntil)
	if err != nil {
		return Quote{}, err
	}
	if validUntil != nil && validUntil.Before(quoteDate) {
		return Quote{}, codes.Invalid("valid_until", "must not be before quote_date")
	}
	status := Status(req.Status)
	if status == "" {
		status = StatusDraft
	}
	if (status == StatusSent || status == StatusAccepted) && req.Amount == nil {
		return Quote{}, codes.Invalid("amount", "is required once the quote is sent")
	}
	return Quote{
		QuoteNo:    req.QuoteNo,
		Status:     status,
		Customer:   req.Customer,
		Mode:       codes.Mode(req.Mode),
		POL:        req.POL,
		POD:        req.POD,
		Currency:   req.Currency,
		Amount:     req.Amount,
		QuoteDate:  quoteDate,
		ValidUntil: validUntil,
	}, nil
}
