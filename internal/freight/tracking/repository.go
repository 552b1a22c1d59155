package tracking

import (
	"context"
	"fmt"

	"github.com/cargodesk/cargodesk/internal/platform/db"
	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

// Repository persists shipments.
type Repository interface {
	List(ctx context.Context) ([]Shipment, error)
	Get(ctx context.Context, id int64) (Shipment, error)
	Create(ctx context.Context, s Shipment) (Shipment, error)
	Update(ctx context.Context, s Shipment) (Shipment, error)
	SoftDelete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository returns a PostgreSQL backed Repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const columns = `id, reference_no, booking_no, mode, pol, pod, booking_date, etd, atd, eta, ata, delivered_at,
	remarks, created_by, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (Shipment, error) {
	var s Shipment
	err := row.Scan(&s.ID, &s.ReferenceNo, &s.BookingNo, &s.Mode, &s.POL, &s.POD, &s.BookingDate,
		&s.ETD, &s.ATD, &s.ETA, &s.ATA, &s.DeliveredAt, &s.Remarks, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *repository) List(ctx context.Context) ([]Shipment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM shipments WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("tracking: list: %w", err)
	}
	defer rows.Close()

	var out []Shipment
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("tracking: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Shipment, error) {
	s, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM shipments WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return Shipment{}, classify(id, err)
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, s Shipment) (Shipment, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO shipments (reference_no, booking_no, mode, pol, pod, booking_date,
		etd, atd, eta, ata, delivered_at, remarks, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+columns,
		s.ReferenceNo, s.BookingNo, s.Mode, s.POL, s.POD, s.BookingDate,
		s.ETD, s.ATD, s.ETA, s.ATA, s.DeliveredAt, s.Remarks, s.CreatedBy)
	created, err := scan(row)
	if err != nil {
		return Shipment{}, classify(0, err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, s Shipment) (Shipment, error) {
	row := r.db.QueryRow(ctx, `UPDATE shipments SET reference_no = $2, booking_no = $3, mode = $4, pol = $5, pod = $6,
		booking_date = $7, etd = $8, atd = $9, eta = $10, ata = $11, delivered_at = $12, remarks = $13,
		updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+columns,
		s.ID, s.ReferenceNo, s.BookingNo, s.Mode, s.POL, s.POD, s.BookingDate,
		s.ETD, s.ATD, s.ETA, s.ATA, s.DeliveredAt, s.Remarks)
	updated, err := scan(row)
	if err != nil {
		return Shipment{}, classify(s.ID, err)
	}
	return updated, nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE shipments SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("tracking: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shipment %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func classify(id int64, err error) error {
	switch {
	case db.IsNoRows(err):
		return fmt.Errorf("shipment %d: %w", id, httpx.ErrNotFound)
	case db.IsUniqueViolation(err):
		return fmt.Errorf("reference number already used: %w", httpx.ErrDuplicate)
	default:
		return fmt.Errorf("tracking: %w", err)
	}
}
