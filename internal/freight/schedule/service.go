package schedule

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/cargodesk/cargodesk/internal/listview"
	"github.com/cargodesk/cargodesk/internal/shared"
)

// Service implements schedule use cases.
type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	if audit == nil {
		audit = shared.NopAudit{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, audit: audit, logger: logger}
}

// ListRecords feeds the schedules list screen.
func (s *Service) ListRecords(ctx context.Context) ([]listview.Record, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]listview.Record, 0, len(items))
	for _, item := range items {
		out = append(out, item.Record())
	}
	return out, nil
}

// Get loads a schedule.
func (s *Service) Get(ctx context.Context, id int64) (Schedule, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a schedule.
func (s *Service) Create(ctx context.Context, req Request) (Schedule, error) {
	item, err := toModel(req)
	if err != nil {
		return Schedule{}, err
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return Schedule{}, err
	}
	s.record(ctx, "schedule.created", created)
	return created, nil
}

// Update replaces a schedule.
func (s *Service) Update(ctx context.Context, id int64, req Request) (Schedule, error) {
	item, err := toModel(req)
	if err != nil {
		return Schedule{}, err
	}
	item.ID = id
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return Schedule{}, err
	}
	s.record(ctx, "schedule.updated", updated)
	return updated, nil
}

// Delete soft-deletes a schedule.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "schedule.deleted", Schedule{ID: id})
	return nil
}

func (s *Service) record(ctx context.Context, action string, item Schedule) {
	err := s.audit.Record(ctx, shared.AuditLog{
		Actor:    shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "schedule",
		EntityID: strconv.FormatInt(item.ID, 10),
		Meta:     map[string]any{"vessel": item.Vessel, "voyage_no": item.VoyageNo},
	})
	if err != nil {
		s.logger.Warn("audit schedule", slog.String("action", action), slog.Any("error", err))
	}
}
