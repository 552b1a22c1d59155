package billoflading

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
	"github.com/cargodesk/cargodesk/internal/listview"
	"github.com/cargodesk/cargodesk/internal/shared"
)

// Service implements bill of lading use cases.
type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
	loc    *time.Location
	clock  func() time.Time
}

// NewService constructs a Service.
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

// ListRecords feeds the bills of lading list screen.
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

// Get loads a bill of lading.
func (s *Service) Get(ctx context.Context, id int64) (BillOfLading, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a bill of lading.
func (s *Service) Create(ctx context.Context, req Request) (BillOfLading, error) {
	b, err := toModel(req, s.today())
	if err != nil {
		return BillOfLading{}, err
	}
	b.CreatedBy = shared.ActorFromContext(ctx)
	created, err := codes.InsertNumbered(&b.BLNo,
		func() string { return codes.DocNumber(blPrefix(b.BLType), s.today()) },
		func() (BillOfLading, error) { return s.repo.Create(ctx, b) })
	if err != nil {
		return BillOfLading{}, err
	}
	s.record(ctx, "bl.created", created)
	return created, nil
}

// Update replaces a bill of lading, enforcing the status flow.
func (s *Service) Update(ctx context.Context, id int64, req Request) (BillOfLading, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return BillOfLading{}, err
	}
	b, err := toModel(req, s.today())
	if err != nil {
		return BillOfLading{}, err
	}
	if req.Status == "" {
		b.Status = current.Status
	}
	if !canTransition(current.Status, b.Status) {
		return BillOfLading{}, codes.Invalid("status", fmt.Sprintf("cannot change from %s to %s", current.Status, b.Status))
	}
	b.ID = id
	if b.BLNo == "" {
		b.BLNo = current.BLNo
	}
	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return BillOfLading{}, err
	}
	s.record(ctx, "bl.updated", updated)
	return updated, nil
}

// Delete soft-deletes a draft bill of lading.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != StatusDraft {
		return codes.Invalid("status", "only draft bills can be deleted")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "bl.deleted", current)
	return nil
}

func blPrefix(t Type) string {
	if t == TypeHouse {
		return "HBL"
	}
	return "MBL"
}

func (s *Service) record(ctx context.Context, action string, b BillOfLading) {
	err := s.audit.Record(ctx, shared.AuditLog{
		Actor:    shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "bill_of_lading",
		EntityID: b.BLNo,
		Meta:     map[string]any{"id": b.ID, "status": b.Status, "type": b.BLType},
	})
	if err != nil {
		s.logger.Warn("audit bill of lading", slog.String("action", action), slog.Any("error", err))
	}
}
