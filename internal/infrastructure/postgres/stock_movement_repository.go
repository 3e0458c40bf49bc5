package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo persiste el historial de stock.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, item_kind, item_id, quantity, balance_after, source_type, source_id, source_number, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, string(m.ItemKind), m.ItemID, m.Quantity, m.BalanceAfter, m.SourceType, m.SourceID, m.SourceNumber, m.Reason, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByItem devuelve los últimos movimientos del artículo, más reciente primero.
func (r *StockMovementRepo) ListByItem(ctx context.Context, ref domain.ItemRef, limit int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, item_kind, item_id, quantity, balance_after, source_type, source_id, source_number, reason, created_at
		FROM stock_movements
		WHERE item_kind = $1 AND item_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3`, string(ref.Kind), ref.ID, limit)
	if err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var kind string
		if err := rows.Scan(&m.ID, &kind, &m.ItemID, &m.Quantity, &m.BalanceAfter, &m.SourceType, &m.SourceID, &m.SourceNumber, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.ItemKind = domain.ItemKind(kind)
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
