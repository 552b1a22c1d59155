package booking

import (
	"context"
	"fmt"

	"github.com/cargodesk/cargodesk/internal/platform/db"
	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

// Repository persists bookings.
type Repository interface {
	List(ctx context.Context) ([]Booking, error)
	Get(ctx context.Context, id int64) (Booking, error)
	Create(ctx context.Context, b Booking) (Booking, error)
	Update(ctx context.Context, b Booking) (Booking, error)
	SoftDelete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository returns a PostgreSQL backed Repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const columns = `id, booking_no, mode, status, shipper, consignee, carrier_code, pol, pod,
	container_type, container_qty, booking_date, etd, eta, remarks, created_by, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.BookingNo, &b.Mode, &b.Status, &b.Shipper, &b.Consignee, &b.CarrierCode,
		&b.POL, &b.POD, &b.ContainerType, &b.ContainerQty, &b.BookingDate, &b.ETD, &b.ETA, &b.Remarks,
		&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *repository) List(ctx context.Context) ([]Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM bookings WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("booking: list: %w", err)
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("booking: scan: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Booking, error) {
	b, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM bookings WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return Booking{}, classify(id, err)
	}
	return b, nil
}

func (r *repository) Create(ctx context.Context, b Booking) (Booking, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO bookings (booking_no, mode, status, shipper, consignee, carrier_code, pol, pod,
		container_type, container_qty, booking_date, etd, eta, remarks, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+columns,
		b.BookingNo, b.Mode, b.Status, b.Shipper, b.Consignee, b.CarrierCode, b.POL, b.POD,
		b.ContainerType, b.ContainerQty, b.BookingDate, b.ETD, b.ETA, b.Remarks, b.CreatedBy)
	created, err := scan(row)
	if err != nil {
		return Booking{}, classify(0, err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, b Booking) (Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET booking_no = $2, mode = $3, status = $4, shipper = $5, consignee = $6,
		carrier_code = $7, pol = $8, pod = $9, container_type = $10, container_qty = $11, booking_date = $12,
		etd = $13, eta = $14, remarks = $15, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+columns,
		b.ID, b.BookingNo, b.Mode, b.Status, b.Shipper, b.Consignee, b.CarrierCode, b.POL, b.POD,
		b.ContainerType, b.ContainerQty, b.BookingDate, b.ETD, b.ETA, b.Remarks)
	updated, err := scan(row)
	if err != nil {
		return Booking{}, classify(b.ID, err)
	}
	return updated, nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE bookings SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("booking: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func classify(id int64, err error) error {
	switch {
	case db.IsNoRows(err):
		return fmt.Errorf("booking %d: %w", id, httpx.ErrNotFound)
	case db.IsUniqueViolation(err):
		return fmt.Errorf("booking number already used: %w", httpx.ErrDuplicate)
	default:
		return fmt.Errorf("booking: %w", err)
	}
}
