package billing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cargodesk/cargodesk/internal/exchangerate"
	"github.com/cargodesk/cargodesk/internal/freight/codes"
	"github.com/cargodesk/cargodesk/internal/listview"
	"github.com/cargodesk/cargodesk/internal/platform/httpx"
	"github.com/cargodesk/cargodesk/internal/shared"
)

const (
	docPrefix     = "INV"
	localCurrency = "KRW"

	// RateManual marks an exchange rate typed in by the user.
	RateManual = "manual"
)

// RateSource resolves conversion factors. *exchangerate.Service satisfies it.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (float64, exchangerate.Rates, error)
}

// Service implements invoice use cases.
type Service struct {
	repo   Repository
	rates  RateSource
	audit  shared.AuditRecorder
	logger *slog.Logger
	loc    *time.Location
	clock  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, rates RateSource, audit shared.AuditRecorder, logger *slog.Logger, loc *time.Location) *Service {
	if audit == nil {
		audit = shared.NopAudit{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, rates: rates, audit: audit, logger: logger, loc: loc, clock: time.Now}
}

func (s *Service) today() time.Time {
	return s.clock().In(s.loc)
}

// List returns every live invoice in id order.
func (s *Service) List(ctx context.Context) ([]Invoice, error) {
	return s.repo.List(ctx)
}

// ListRecords feeds the billing list screen.
func (s *Service) ListRecords(ctx context.Context) ([]listview.Record, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	today := s.today()
	out := make([]listview.Record, 0, len(items))
	for _, inv := range items {
		out = append(out, inv.Record(today))
	}
	return out, nil
}

// Get loads an invoice.
func (s *Service) Get(ctx context.Context, id int64) (Invoice, error) {
	return s.repo.Get(ctx, id)
}

// Create validates, converts and stores a new invoice.
func (s *Service) Create(ctx context.Context, req Request) (Invoice, error) {
	inv, err := toModel(req)
	if err != nil {
		return Invoice{}, err
	}
	if err := s.convert(ctx, &inv); err != nil {
		return Invoice{}, err
	}
	inv.CreatedBy = shared.ActorFromContext(ctx)
	created, err := codes.InsertNumbered(&inv.InvoiceNo,
		func() string { return codes.DocNumber(docPrefix, s.today()) },
		func() (Invoice, error) { return s.repo.Create(ctx, inv) })
	if err != nil {
		return Invoice{}, err
	}
	s.record(ctx, "invoice.issued", created)
	return created, nil
}

// Update replaces an invoice and re-converts its amount. Paid invoices are
// locked.
func (s *Service) Update(ctx context.Context, id int64, req Request) (Invoice, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if current.Status == StatusPaid {
		return Invoice{}, fmt.Errorf("%w: invoice %s is already paid", httpx.ErrBadRequest, current.InvoiceNo)
	}
	inv, err := toModel(req)
	if err != nil {
		return Invoice{}, err
	}
	if err := s.convert(ctx, &inv); err != nil {
		return Invoice{}, err
	}
	inv.ID = id
	if inv.InvoiceNo == "" {
		inv.InvoiceNo = current.InvoiceNo
	}
	updated, err := s.repo.Update(ctx, inv)
	if err != nil {
		return Invoice{}, err
	}
	s.record(ctx, "invoice.updated", updated)
	return updated, nil
}

// MarkPaid settles an invoice.
func (s *Service) MarkPaid(ctx context.Context, id int64) (Invoice, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if current.Status == StatusPaid {
		return current, nil
	}
	paid, err := s.repo.SetStatus(ctx, id, StatusPaid)
	if err != nil {
		return Invoice{}, err
	}
	s.record(ctx, "invoice.paid", paid)
	return paid, nil
}

// Delete soft-deletes an unpaid invoice.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == StatusPaid {
		return fmt.Errorf("%w: invoice %s is already paid", httpx.ErrBadRequest, current.InvoiceNo)
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "invoice.voided", current)
	return nil
}

// convert fills ExchangeRate, AmountKRW and RateSource. KRW has no minor
// unit so the converted amount is rounded to whole won.
func (s *Service) convert(ctx context.Context, inv *Invoice) error {
	switch {
	case inv.Currency == localCurrency:
		inv.ExchangeRate = 1
		inv.RateSource = RateManual
	case inv.ExchangeRate > 0:
		inv.RateSource = RateManual
	default:
		if s.rates == nil {
			return codes.Invalid("exchange_rate", "is required when rates are unavailable")
		}
		rate, rates, err := s.rates.Rate(ctx, inv.Currency, localCurrency)
		if err != nil {
			return err
		}
		inv.ExchangeRate = rate
		inv.RateSource = rates.Source
	}
	inv.AmountKRW = math.Round(inv.Amount * inv.ExchangeRate)
	return nil
}

func (s *Service) record(ctx context.Context, action string, inv Invoice) {
	err := s.audit.Record(ctx, shared.AuditLog{
		Actor:    shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "invoice",
		EntityID: inv.InvoiceNo,
		Meta: map[string]any{
			"id":         inv.ID,
			"currency":   inv.Currency,
			"amount":     inv.Amount,
			"amount_krw": inv.AmountKRW,
		},
	})
	if err != nil {
		s.logger.Warn("audit invoice", slog.String("action", action), slog.Any("error", err))
	}
}
