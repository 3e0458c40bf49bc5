package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo implementación de ProductionRepository sobre PostgreSQL (usable con pool o tx).
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

const productionColumns = `id, production_number, material_id, product_id, material_quantity_used, product_quantity_produced, production_date, notes, created_at, updated_at`

func scanProduction(row interface{ Scan(...any) error }) (*entity.Production, error) {
	var p entity.Production
	err := row.Scan(&p.ID, &p.ProductionNumber, &p.MaterialID, &p.ProductID, &p.MaterialQuantityUsed,
		&p.ProductQuantityProduced, &p.ProductionDate, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LastNumber implementa repository.NumberScanner.
func (r *ProductionRepo) LastNumber(ctx context.Context, dayPrefix string) (string, error) {
	return lastNumber(ctx, r.q, "productions", "production_number", dayPrefix)
}

// Create persiste la orden. Número repetido -> domain.ErrDuplicate.
func (r *ProductionRepo) Create(ctx context.Context, p *entity.Production) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO productions (`+productionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.ProductionNumber, p.MaterialID, p.ProductID, p.MaterialQuantityUsed,
		p.ProductQuantityProduced, p.ProductionDate, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production: %w", err)
	}
	return nil
}

func (r *ProductionRepo) get(ctx context.Context, id, suffix string) (*entity.Production, error) {
	p, err := scanProduction(r.q.QueryRow(ctx, `SELECT `+productionColumns+` FROM productions WHERE id = $1`+suffix, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production: %w", err)
	}
	return p, nil
}

// GetByID obtiene una orden por ID. nil si no existe.
func (r *ProductionRepo) GetByID(ctx context.Context, id string) (*entity.Production, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene la orden bloqueando la fila.
func (r *ProductionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Production, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// List devuelve todas las órdenes, más recientes primero.
func (r *ProductionRepo) List(ctx context.Context) ([]*entity.Production, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productionColumns+` FROM productions ORDER BY created_at DESC, production_number DESC`)
	if err != nil {
		return nil, fmt.Errorf("list productions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Production
	for rows.Next() {
		p, err := scanProduction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update reemplaza los datos de la orden.
func (r *ProductionRepo) Update(ctx context.Context, p *entity.Production) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE productions SET production_number = $2, material_id = $3, product_id = $4, material_quantity_used = $5,
			product_quantity_produced = $6, production_date = $7, notes = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, p.ProductionNumber, p.MaterialID, p.ProductID, p.MaterialQuantityUsed,
		p.ProductQuantityProduced, p.ProductionDate, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update production: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la orden.
func (r *ProductionRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "productions", id)
}

// CountByMaterial cuenta órdenes que consumen el material.
func (r *ProductionRepo) CountByMaterial(ctx context.Context, materialID string) (int, error) {
	return countBy(ctx, r.q, "productions", "material_id", materialID)
}

// CountByProduct cuenta órdenes que fabrican el producto.
func (r *ProductionRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	return countBy(ctx, r.q, "productions", "product_id", productID)
}
