package schedule

import (
	"context"
	"fmt"

	"github.com/cargodesk/cargodesk/internal/platform/db"
	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

// Repository persists schedules.
type Repository interface {
	List(ctx context.Context) ([]Schedule, error)
	Get(ctx context.Context, id int64) (Schedule, error)
	Create(ctx context.Context, s Schedule) (Schedule, error)
	Update(ctx context.Context, s Schedule) (Schedule, error)
	SoftDelete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository returns a PostgreSQL backed Repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const columns = `id, carrier_code, vessel, voyage_no, pol, pod, cut_off, etd, eta, transit_days, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (Schedule, error) {
	var s Schedule
	err := row.Scan(&s.ID, &s.CarrierCode, &s.Vessel, &s.VoyageNo, &s.POL, &s.POD, &s.CutOff, &s.ETD, &s.ETA,
		&s.TransitDays, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *repository) List(ctx context.Context) ([]Schedule, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM schedules WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("schedule: list: %w", err)
	}
	defer rows.Close()

	var out []Schedule
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("schedule: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Schedule, error) {
	s, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM schedules WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return Schedule{}, classify(id, err)
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, s Schedule) (Schedule, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO schedules (carrier_code, vessel, voyage_no, pol, pod, cut_off, etd, eta, transit_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+columns,
		s.CarrierCode, s.Vessel, s.VoyageNo, s.POL, s.POD, s.CutOff, s.ETD, s.ETA, s.TransitDays)
	created, err := scan(row)
	if err != nil {
		return Schedule{}, classify(0, err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, s Schedule) (Schedule, error) {
	row := r.db.QueryRow(ctx, `UPDATE schedules SET carrier_code = $2, vessel = $3, voyage_no = $4, pol = $5, pod = $6,
		cut_off = $7, etd = $8, eta = $9, transit_days = $10, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+columns,
		s.ID, s.CarrierCode, s.Vessel, s.VoyageNo, s.POL, s.POD, s.CutOff, s.ETD, s.ETA, s.TransitDays)
	updated, err := scan(row)
	if err != nil {
		return Schedule{}, classify(s.ID, err)
	}
	return updated, nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE schedules SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("schedule: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("schedule %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func classify(id int64, err error) error {
	switch {
	case db.IsNoRows(err):
		return fmt.Errorf("schedule %d: %w", id, httpx.ErrNotFound)
	case db.IsUniqueViolation(err):
		return fmt.Errorf("voyage already scheduled on this lane: %w", httpx.ErrDuplicate)
	default:
		return fmt.Errorf("schedule: %w", err)
	}
}
