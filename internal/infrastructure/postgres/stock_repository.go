package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func stockTable(kind domain.ItemKind) (string, error) {
	switch kind {
	case domain.ItemMaterial:
		return "materials", nil
	case domain.ItemProduct:
		return "products", nil
	}
	return "", fmt.Errorf("tipo de artículo desconocido %q", kind)
}

// GetForUpdate obtiene el artículo y bloquea la fila para update (SELECT FOR UPDATE). nil si no existe.
func (r *StockRepo) GetForUpdate(ctx context.Context, ref domain.ItemRef) (*entity.StockItem, error) {
	table, err := stockTable(ref.Kind)
	if err != nil {
		return nil, err
	}
	it := entity.StockItem{Kind: ref.Kind}
	err = r.q.QueryRow(ctx, `
		SELECT id, name, code, unit, stock_quantity, unit_price, updated_at
		FROM `+table+` WHERE id = $1
		FOR UPDATE`, ref.ID).Scan(
		&it.ID, &it.Name, &it.Code, &it.Unit, &it.StockQuantity, &it.UnitPrice, &it.UpdatedAt,
	)
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &it, nil
}

// SetQuantity escribe el nuevo saldo.
func (r *StockRepo) SetQuantity(ctx context.Context, ref domain.ItemRef, qty decimal.Decimal, at time.Time) error {
	table, err := stockTable(ref.Kind)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `UPDATE `+table+` SET stock_quantity = $2, updated_at = $3 WHERE id = $1`, ref.ID, qty, at)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
