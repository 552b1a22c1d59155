package quote

import (
	"context"
	"fmt"

	"github.com/cargodesk/cargodesk/internal/platform/db"
	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

// Repository persists quotes.
type Repository interface {
	List(ctx context.Context) ([]Quote, error)
	Get(ctx context.Context, id int64) (Quote, error)
	Create(ctx context.Context, q Quote) (Quote, error)
	Update(ctx context.Context, q Quote) (Quote, error)
	SoftDelete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository returns a PostgreSQL backed Repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const columns = `id, quote_no, status, customer, mode, pol, pod, currency, amount, quote_date, valid_until,
	created_by, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (Quote, error) {
	var q Quote
	err := row.Scan(&q.ID, &q.QuoteNo, &q.Status, &q.Customer, &q.Mode, &q.POL, &q.POD, &q.Currency,
		&q.Amount, &q.QuoteDate, &q.ValidUntil, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt)
	return q, err
}

func (r *repository) List(ctx context.Context) ([]Quote, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM quotes WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("quote: list: %w", err)
	}
	defer rows.Close()

	var out []Quote
	for rows.Next() {
		q, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("quote: scan: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Quote, error) {
	q, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM quotes WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return Quote{}, classify(id, err)
	}
	return q, nil
}

func (r *repository) Create(ctx context.Context, q Quote) (Quote, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO quotes (quote_no, status, customer, mode, pol, pod, currency, amount,
		quote_date, valid_until, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+columns,
		q.QuoteNo, q.Status, q.Customer, q.Mode, q.POL, q.POD, q.Currency, q.Amount, q.QuoteDate, q.ValidUntil, q.CreatedBy)
	created, err := scan(row)
	if err != nil {
		return Quote{}, classify(0, err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, q Quote) (Quote, error) {
	row := r.db.QueryRow(ctx, `UPDATE quotes SET quote_no = $2, status = $3, customer = $4, mode = $5, pol = $6,
		pod = $7, currency = $8, amount = $9, quote_date = $10, valid_until = $11, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+columns,
		q.ID, q.QuoteNo, q.Status, q.Customer, q.Mode, q.POL, q.POD, q.Currency, q.Amount, q.QuoteDate, q.ValidUntil)
	updated, err := scan(row)
	if err != nil {
		return Quote{}, classify(q.ID, err)
	}
	return updated, nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE quotes SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("quote: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quote %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func classify(id int64, err error) error {
	switch {
	case db.IsNoRows(err):
		return fmt.Errorf("quote %d: %w", id, httpx.ErrNotFound)
	case db.IsUniqueViolation(err):
		return fmt.Errorf("quote number already used: %w", httpx.ErrDuplicate)
	default:
		return fmt.Errorf("quote: %w", err)
	}
}
