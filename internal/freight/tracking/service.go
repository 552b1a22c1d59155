package tracking

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
	"github.com/cargodesk/cargodesk/internal/listview"
	"github.com/cargodesk/cargodesk/internal/shared"
)

const docPrefix = "SH"

// Service implements shipment tracking use cases.
type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
	loc    *time.Location
	clock  func() time.Time
}

// NewService constructs a Service. loc decides which calendar day counts as
// today when deriving milestones.
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

// List returns every live shipment in id order.
func (s *Service) List(ctx context.Context) ([]Shipment, error) {
	return s.repo.List(ctx)
}

// ListRecords feeds the tracking list screen.
func (s *Service) ListRecords(ctx context.Context) ([]listview.Record, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	today := s.today()
	out := make([]listview.Record, 0, len(items))
	for _, sh := range items {
		out = append(out, sh.Record(today))
	}
	return out, nil
}

// Get loads a shipment.
func (s *Service) Get(ctx context.Context, id int64) (Shipment, error) {
	return s.repo.Get(ctx, id)
}

// Timeline loads a shipment and derives its milestones as of today.
func (s *Service) Timeline(ctx context.Context, id int64) (Timeline, error) {
	sh, err := s.repo.Get(ctx, id)
	if err != nil {
		return Timeline{}, err
	}
	return sh.Timeline(s.today()), nil
}

// Create validates and stores a new shipment.
func (s *Service) Create(ctx context.Context, req Request) (Shipment, error) {
	sh, err := toModel(req)
	if err != nil {
		return Shipment{}, err
	}
	sh.CreatedBy = shared.ActorFromContext(ctx)
	created, err := codes.InsertNumbered(&sh.ReferenceNo,
		func() string { return codes.DocNumber(docPrefix, s.today()) },
		func() (Shipment, error) { return s.repo.Create(ctx, sh) })
	if err != nil {
		return Shipment{}, err
	}
	s.record(ctx, "shipment.created", created)
	return created, nil
}

// Update replaces a shipment.
func (s *Service) Update(ctx context.Context, id int64, req Request) (Shipment, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Shipment{}, err
	}
	sh, err := toModel(req)
	if err != nil {
		return Shipment{}, err
	}
	sh.ID = id
	if sh.ReferenceNo == "" {
		sh.ReferenceNo = current.ReferenceNo
	}
	updated, err := s.repo.Update(ctx, sh)
	if err != nil {
		return Shipment{}, err
	}
	s.record(ctx, "shipment.updated", updated)
	return updated, nil
}

// RecordEvent stores the actual date of a departure, arrival or delivery.
func (s *Service) RecordEvent(ctx context.Context, id int64, req EventRequest) (Shipment, error) {
	req.Stage = codes.Normalize(req.Stage)
	if err := codes.Check(req); err != nil {
		return Shipment{}, err
	}
	date, err := codes.ParseDate("date", req.Date)
	if err != nil {
		return Shipment{}, err
	}
	sh, err := s.repo.Get(ctx, id)
	if err != nil {
		return Shipment{}, err
	}
	switch Stage(req.Stage) {
	case StageDeparted:
		sh.ATD = &date
	case StageArrived:
		sh.ATA = &date
	case StageDelivered:
		sh.DeliveredAt = &date
	}
	if err := checkSequence(sh); err != nil {
		return Shipment{}, err
	}
	updated, err := s.repo.Update(ctx, sh)
	if err != nil {
		return Shipment{}, err
	}
	s.record(ctx, "shipment."+strings.ToLower(req.Stage), updated)
	return updated, nil
}

// Delete soft-deletes a shipment.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "shipment.deleted", current)
	return nil
}

func (s *Service) record(ctx context.Context, action string, sh Shipment) {
	err := s.audit.Record(ctx, shared.AuditLog{
		Actor:    shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "shipment",
		EntityID: sh.ReferenceNo,
		Meta:     map[string]any{"id": sh.ID, "stage": sh.Timeline(s.today()).Stage},
	})
	if err != nil {
		s.logger.Warn("audit shipment", slog.String("action", action), slog.Any("error", err))
	}
}
