package customs

import (
	"context"
	"fmt"

	"github.com/cargodesk/cargodesk/internal/platform/db"
	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

// Repository persists declarations.
type Repository interface {
	List(ctx context.Context) ([]Declaration, error)
	Get(ctx context.Context, id int64) (Declaration, error)
	Create(ctx context.Context, d Declaration) (Declaration, error)
	Update(ctx context.Context, d Declaration) (Declaration, error)
	SoftDelete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

// NewRepository returns a PostgreSQL backed Repository.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const columns = `id, declaration_no, declaration_type, bl_no, declarant, hs_code, declared_value, currency, status,
	declaration_date, created_by, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (Declaration, error) {
	var d Declaration
	err := row.Scan(&d.ID, &d.DeclarationNo, &d.DeclarationType, &d.BLNo, &d.Declarant, &d.HSCode, &d.DeclaredValue,
		&d.Currency, &d.Status, &d.DeclarationDate, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *repository) List(ctx context.Context) ([]Declaration, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM customs_declarations WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("customs: list: %w", err)
	}
	defer rows.Close()

	var out []Declaration
	for rows.Next() {
		d, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("customs: scan: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Declaration, error) {
	d, err := scan(r.db.QueryRow(ctx, `SELECT `+columns+` FROM customs_declarations WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		return Declaration{}, classify(id, err)
	}
	return d, nil
}

func (r *repository) Create(ctx context.Context, d Declaration) (Declaration, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO customs_declarations (declaration_no, declaration_type, bl_no, declarant,
		hs_code, declared_value, currency, status, declaration_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+columns,
		d.DeclarationNo, d.DeclarationType, d.BLNo, d.Declarant, d.HSCode, d.DeclaredValue, d.Currency, d.Status,
		d.DeclarationDate, d.CreatedBy)
	created, err := scan(row)
	if err != nil {
		return Declaration{}, classify(0, err)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, d Declaration) (Declaration, error) {
	row := r.db.QueryRow(ctx, `UPDATE customs_declarations SET declaration_no = $2, declaration_type = $3, bl_no = $4,
		declarant = $5, hs_code = $6, declared_value = $7, currency = $8, status = $9, declaration_date = $10,
		updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+columns,
		d.ID, d.DeclarationNo, d.DeclarationType, d.BLNo, d.Declarant, d.HSCode, d.DeclaredValue, d.Currency,
		d.Status, d.DeclarationDate)
	updated, err := scan(row)
	if err != nil {
		return Declaration{}, classify(d.ID, err)
	}
	return updated, nil
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE customs_declarations SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("customs: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("declaration %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

func classify(id int64, err error) error {
	switch {
	case db.IsNoRows(err):
		return fmt.Errorf("declaration %d: %w", id, httpx.ErrNotFound)
	case db.IsUniqueViolation(err):
		return fmt.Errorf("declaration number already used: %w", httpx.ErrDuplicate)
	default:
		return fmt.Errorf("customs: %w", err)
	}
}
