package quote

import (
	"context"
	"log/slog"
	"time"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
	"github.com/cargodesk/cargodesk/internal/listview"
	"github.com/cargodesk/cargodesk/internal/shared"
)

const docPrefix = "QT"

// Service implements quote use cases.
type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
	loc    *time.Location
	clock  func() time.Time
}

// NewService constructs a Service. loc decides which calendar day counts as
// today when deriving expiry.
func NewService(repo Repository, audit shared.AuditRecorder, logger *slog.Logger, loc *time.Location) *Service {
	if audit == nil {
		audit = shared.NopAudit{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, audit: audit, logger: logger, loc: loc, clock: time.Now}
}

func (s *Service) today() time.Time {
	return s.clock().In(s.loc)
}

// List returns every live quote in id order.
func (s *Service) List(ctx context.Context) ([]Quote, error) {
	return s.repo.List(ctx)
}

// ListRecords feeds the quotes list screen.
func (s *Service) ListRecords(ctx context.Context) ([]listview.Record, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	today := s.today()
	out := make([]listview.Record, 0, len(items))
	for _, q := range items {
		out = append(out, q.Record(today))
	}
	return out, nil
}

// Get loads a quote.
func (s *Service) Get(ctx context.Context, id int64) (Quote, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new quote.
func (s *Service) Create(ctx context.Context, req Request) (Quote, error) {
	q, err := toModel(req)
	if err != nil {
		return Quote{}, err
	}
	q.CreatedBy = shared.ActorFromContext(ctx)
	created, err := codes.InsertNumbered(&q.QuoteNo,
		func() string { return codes.DocNumber(docPrefix, s.today()) },
		func() (Quote, error) { return s.repo.Create(ctx, q) })
	if err != nil {
		return Quote{}, err
	}
	s.record(ctx, "quote.created", created)
	return created, nil
}

// Update replaces the editable fields of a quote.
func (s *Service) Update(ctx context.Context, id int64, req Request) (Quote, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quote{}, err
	}
	q, err := toModel(req)
	if err != nil {
		return Quote{}, err
	}
	q.ID = id
	if q.QuoteNo == "" {
		q.QuoteNo = current.QuoteNo
	}
	updated, err := s.repo.Update(ctx, q)
	if err != nil {
		return Quote{}, err
	}
	s.record(ctx, "quote.updated", updated)
	return updated, nil
}

// Delete soft-deletes a quote.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "quote.deleted", current)
	return nil
}

func (s *Service) record(ctx context.Context, action string, q Quote) {
	err := s.audit.Record(ctx, shared.AuditLog{
		Actor:    shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "quote",
		EntityID: q.QuoteNo,
		Meta:     map[string]any{"id": q.ID, "status": q.Status, "amount": q.Amount, "currency": q.Currency},
	})
	if err != nil {
		s.logger.Warn("audit quote", slog.String("action", action), slog.Any("error", err))
	}
}
