package customs

import (
	"context"
	"log/slog"
	"time"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
	"github.com/cargodesk/cargodesk/internal/listview"
	"github.com/cargodesk/cargodesk/internal/shared"
)

const docPrefix = "CD"

// Service implements declaration use cases.
type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
	clock  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	if audit == nil {
		audit = shared.NopAudit{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, audit: audit, logger: logger, clock: time.Now}
}

// ListRecords feeds the declarations list screen.
func (s *Service) ListRecords(ctx context.Context) ([]listview.Record, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]listview.Record, 0, len(items))
	for _, d := range items {
		out = append(out, d.Record())
	}
	return out, nil
}

// Get loads a declaration.
func (s *Service) Get(ctx context.Context, id int64) (Declaration, error) {
	return s.repo.Get(ctx, id)
}

// Create files a new declaration.
func (s *Service) Create(ctx context.Context, req Request) (Declaration, error) {
	d, err := toModel(req)
	if err != nil {
		return Declaration{}, err
	}
	d.CreatedBy = shared.ActorFromContext(ctx)
	created, err := codes.InsertNumbered(&d.DeclarationNo,
		func() string { return codes.DocNumber(docPrefix, d.DeclarationDate) },
		func() (Declaration, error) { return s.repo.Create(ctx, d) })
	if err != nil {
		return Declaration{}, err
	}
	s.record(ctx, "customs.filed", created)
	return created, nil
}

// Update amends a declaration. Cleared declarations are locked.
func (s *Service) Update(ctx context.Context, id int64, req Request) (Declaration, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Declaration{}, err
	}
	if current.Status == StatusCleared {
		return Declaration{}, codes.Invalid("status", "cleared declarations cannot be amended")
	}
	d, err := toModel(req)
	if err != nil {
		return Declaration{}, err
	}
	d.ID = id
	if d.DeclarationNo == "" {
		d.DeclarationNo = current.DeclarationNo
	}
	updated, err := s.repo.Update(ctx, d)
	if err != nil {
		return Declaration{}, err
	}
	s.record(ctx, "customs.amended", updated)
	return updated, nil
}

// Delete withdraws a declaration that has not been cleared.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == StatusCleared {
		return codes.Invalid("status", "cleared declarations cannot be withdrawn")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "customs.withdrawn", current)
	return nil
}

func (s *Service) record(ctx context.Context, action string, d Declaration) {
	err := s.audit.Record(ctx, shared.AuditLog{
		Actor:    shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "customs_declaration",
		EntityID: d.DeclarationNo,
		Meta:     map[string]any{"id": d.ID, "status": d.Status, "bl_no": d.BLNo},
	})
	if err != nil {
		s.logger.Warn("audit declaration", slog.String("action", action), slog.Any("error", err))
	}
}
