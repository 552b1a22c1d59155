package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
	"github.com/cargodesk/cargodesk/internal/listview"
	"github.com/cargodesk/cargodesk/internal/shared"
)

const docPrefix = "BK"

// Service implements booking use cases.
type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
	clock  func() time.Time
}

// NewService constructs a Service. A nil audit recorder discards entries.
func NewService(repo Repository, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	if audit == nil {
		audit = shared.NopAudit{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, audit: audit, logger: logger, clock: time.Now}
}

// List returns every live booking in id order.
func (s *Service) List(ctx context.Context) ([]Booking, error) {
	return s.repo.List(ctx)
}

// ListRecords feeds the bookings list screen.
func (s *Service) ListRecords(ctx context.Context) ([]listview.Record, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]listview.Record, 0, len(items))
	for _, b := range items {
		out = append(out, b.Record())
	}
	return out, nil
}

// Get loads a booking.
func (s *Service) Get(ctx context.Context, id int64) (Booking, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new booking.
func (s *Service) Create(ctx context.Context, req Request) (Booking, error) {
	b, err := toModel(req)
	if err != nil {
		return Booking{}, err
	}
	b.CreatedBy = shared.ActorFromContext(ctx)
	created, err := codes.InsertNumbered(&b.BookingNo,
		func() string { return codes.DocNumber(docPrefix, s.clock()) },
		func() (Booking, error) { return s.repo.Create(ctx, b) })
	if err != nil {
		return Booking{}, err
	}
	s.record(ctx, "booking.created", created)
	return created, nil
}

// Update replaces the editable fields of a booking.
func (s *Service) Update(ctx context.Context, id int64, req Request) (Booking, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	b, err := toModel(req)
	if err != nil {
		return Booking{}, err
	}
	b.ID = id
	if b.BookingNo == "" {
		b.BookingNo = current.BookingNo
	}
	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return Booking{}, err
	}
	s.record(ctx, "booking.updated", updated)
	return updated, nil
}

// Delete soft-deletes a booking.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "booking.deleted", current)
	return nil
}

func (s *Service) record(ctx context.Context, action string, b Booking) {
	err := s.audit.Record(ctx, shared.AuditLog{
		Actor:    shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "booking",
		EntityID: b.BookingNo,
		Meta:     map[string]any{"id": b.ID, "status": b.Status},
	})
	if err != nil {
		s.logger.Warn("audit booking", slog.String("action", action), slog.Any("error", err))
	}
}
