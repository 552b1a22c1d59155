package billoflading

import (
	"context"
	"fmt"

	"github.com/cargodesk/cargodesk/internal/platform/db"
	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

// Repository persists bills of lading.
type Repository interface {
	List(ctx context.Context) ([]BillOfLading, error)
	Get(ctx context.Context, id int64) (BillOfLading, error)
	Create(ctx context.Context, b BillOfLading) (BillOfLading, error)
	Update(ctx context.Context, b BillOfLading) (BillOfLading, error)
	SoftDelete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository returns a PostgreSQL backed Repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const columns = `id, bl_no, bl_type, booking_no, shipper, consignee, notify_party, vessel, voyage_no, pol, pod,
	issue_date, status, created_by, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (BillOfLading, error) {
	var b BillOfLading
	err := row.Scan(&b.ID, &b.BLNo, &b.BLType, &b.BookingNo, &b.Shipper, &b.Consignee, &b.NotifyParty, &b.Vessel,
		&b.VoyageNo, &b.POL, &b.POD, &b.IssueDate, &b.Status, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *repository) List(ctx context.Context) ([]BillOfLading, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM bills_of_lading WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("billoflading: list: %w", err)
	}
	defer rows.Close()

	var out []BillOfLading
	for rows.Next() {
		b, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("billoflading: scan: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (BillOfLading, error) {
	b, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM bills_of_lading WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return BillOfLading{}, classify(id, err)
	}
	return b, nil
}

func (r *repository) Create(ctx context.Context, b BillOfLading) (BillOfLading, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO bills_of_lading (bl_no, bl_type, booking_no, shipper, consignee, notify_party,
		vessel, voyage_no, pol, pod, issue_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+columns,
		b.BLNo, b.BLType, b.BookingNo, b.Shipper, b.Consignee, b.NotifyParty, b.Vessel, b.VoyageNo, b.POL, b.POD,
		b.IssueDate, b.Status, b.CreatedBy)
	created, err := scan(row)
	if err != nil {
		return BillOfLading{}, classify(0, err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, b BillOfLading) (BillOfLading, error) {
	row := r.db.QueryRow(ctx, `UPDATE bills_of_lading SET bl_no = $2, bl_type = $3, booking_no = $4, shipper = $5,
		consignee = $6, notify_party = $7, vessel = $8, voyage_no = $9, pol = $10, pod = $11, issue_date = $12,
		status = $13, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+columns,
		b.ID, b.BLNo, b.BLType, b.BookingNo, b.Shipper, b.Consignee, b.NotifyParty, b.Vessel, b.VoyageNo, b.POL,
		b.POD, b.IssueDate, b.Status)
	updated, err := scan(row)
	if err != nil {
		return BillOfLading{}, classify(b.ID, err)
	}
	return updated, nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE bills_of_lading SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("billoflading: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bill of lading %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func classify(id int64, err error) error {
	switch {
	case db.IsNoRows(err):
		return fmt.Errorf("bill of lading %d: %w", id, httpx.ErrNotFound)
	case db.IsUniqueViolation(err):
		return fmt.Errorf("B/L number already used: %w", httpx.ErrDuplicate)
	default:
		return fmt.Errorf("billoflading: %w", err)
	}
}
