package billing

import (
	"context"
	"fmt"

	"github.com/cargodesk/cargodesk/internal/platform/db"
	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

// Repository persists invoices.
type Repository interface {
	List(ctx context.Context) ([]Invoice, error)
	Get(ctx context.Context, id int64) (Invoice, error)
	Create(ctx context.Context, inv Invoice) (Invoice, error)
	Update(ctx context.Context, inv Invoice) (Invoice, error)
	SetStatus(ctx context.Context, id int64, status Status) (Invoice, error)
	SoftDelete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository returns a PostgreSQL backed Repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const columns = `id, invoice_no, invoice_type, customer, bl_no, currency, amount, exchange_rate, amount_krw,
	rate_source, status, invoice_date, due_date, remarks, created_by, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNo, &inv.InvoiceType, &inv.Customer, &inv.BLNo, &inv.Currency,
		&inv.Amount, &inv.ExchangeRate, &inv.AmountKRW, &inv.RateSource, &inv.Status, &inv.InvoiceDate,
		&inv.DueDate, &inv.Remarks, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

func (r *repository) List(ctx context.Context) ([]Invoice, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM invoices WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("billing: list: %w", err)
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		inv, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("billing: scan: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Invoice, error) {
	inv, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM invoices WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return Invoice{}, classify(id, err)
	}
	return inv, nil
}

func (r *repository) Create(ctx context.Context, inv Invoice) (Invoice, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO invoices (invoice_no, invoice_type, customer, bl_no, currency, amount,
		exchange_rate, amount_krw, rate_source, status, invoice_date, due_date, remarks, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+columns,
		inv.InvoiceNo, inv.InvoiceType, inv.Customer, inv.BLNo, inv.Currency, inv.Amount,
		inv.ExchangeRate, inv.AmountKRW, inv.RateSource, inv.Status, inv.InvoiceDate, inv.DueDate, inv.Remarks, inv.CreatedBy)
	created, err := scan(row)
	if err != nil {
		return Invoice{}, classify(0, err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, inv Invoice) (Invoice, error) {
	row := r.db.QueryRow(ctx, `UPDATE invoices SET invoice_no = $2, invoice_type = $3, customer = $4, bl_no = $5,
		currency = $6, amount = $7, exchange_rate = $8, amount_krw = $9, rate_source = $10, status = $11,
		invoice_date = $12, due_date = $13, remarks = $14, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+columns,
		inv.ID, inv.InvoiceNo, inv.InvoiceType, inv.Customer, inv.BLNo, inv.Currency, inv.Amount,
		inv.ExchangeRate, inv.AmountKRW, inv.RateSource, inv.Status, inv.InvoiceDate, inv.DueDate, inv.Remarks)
	updated, err := scan(row)
	if err != nil {
		return Invoice{}, classify(inv.ID, err)
	}
	return updated, nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status Status) (Invoice, error) {
	row := r.db.QueryRow(ctx, `UPDATE invoices SET status = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+columns, id, status)
	inv, err := scan(row)
	if err != nil {
		return Invoice{}, classify(id, err)
	}
	return inv, nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE invoices SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("billing: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func classify(id int64, err error) error {
	switch {
	case db.IsNoRows(err):
		return fmt.Errorf("invoice %d: %w", id, httpx.ErrNotFound)
	case db.IsUniqueViolation(err):
		return fmt.Errorf("invoice number already used: %w", httpx.ErrDuplicate)
	default:
		return fmt.Errorf("billing: %w", err)
	}
}
