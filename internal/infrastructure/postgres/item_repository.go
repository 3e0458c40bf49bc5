package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

var (
	_ repository.MaterialRepository = (*MaterialRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
)

// materials y products comparten columnas; itemTable concentra el SQL de ambas.
type itemTable struct {
	q     Querier
	table string
}

// itemRow es la fila común de materials/products.
type itemRow = entity.Material

const itemColumns = `id, name, code, description, unit, stock_quantity, unit_price, is_active, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*itemRow, error) {
	var it itemRow
	err := row.Scan(&it.ID, &it.Name, &it.Code, &it.Description, &it.Unit, &it.StockQuantity, &it.UnitPrice, &it.IsActive, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (t itemTable) create(ctx context.Context, it *itemRow) error {
	_, err := t.q.Exec(ctx, `
		INSERT INTO `+t.table+` (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.Name, it.Code, it.Description, it.Unit, it.StockQuantity, it.UnitPrice, it.IsActive, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", t.table, err)
	}
	return nil
}

func (t itemTable) getOne(ctx context.Context, where string, arg any) (*itemRow, error) {
	it, err := scanItem(t.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM `+t.table+` WHERE `+where, arg))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.table, err)
	}
	return it, nil
}

func (t itemTable) list(ctx context.Context) ([]*itemRow, error) {
	rows, err := t.q.Query(ctx, `SELECT `+itemColumns+` FROM `+t.table+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()
	var list []*itemRow
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// update no toca stock_quantity: solo el libro de stock lo modifica.
func (t itemTable) update(ctx context.Context, it *itemRow) error {
	cmd, err := t.q.Exec(ctx, `
		UPDATE `+t.table+` SET name = $2, code = $3, description = $4, unit = $5, unit_price = $6, is_active = $7, updated_at = $8
		WHERE id = $1`,
		it.ID, it.Name, it.Code, it.Description, it.Unit, it.UnitPrice, it.IsActive, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update %s: %w", t.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	t itemTable
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{t: itemTable{q: q, table: "materials"}}
}

func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	return r.t.create(ctx, m)
}

func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.t.getOne(ctx, "id = $1", id)
}

func (r *MaterialRepo) GetByCode(ctx context.Context, code string) (*entity.Material, error) {
	return r.t.getOne(ctx, "code = $1", code)
}

func (r *MaterialRepo) List(ctx context.Context) ([]*entity.Material, error) {
	return r.t.list(ctx)
}

func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	return r.t.update(ctx, m)
}

func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.t.q, r.t.table, id)
}

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	t itemTable
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{t: itemTable{q: q, table: "products"}}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.t.create(ctx, (*itemRow)(p))
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	it, err := r.t.getOne(ctx, "id = $1", id)
	return (*entity.Product)(it), err
}

func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	it, err := r.t.getOne(ctx, "code = $1", code)
	return (*entity.Product)(it), err
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	list, err := r.t.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(list))
	for _, it := range list {
		out = append(out, (*entity.Product)(it))
	}
	return out, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.t.update(ctx, (*itemRow)(p))
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.t.q, r.t.table, id)
}
