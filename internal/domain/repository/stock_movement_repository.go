package repository

import (
	"context"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el historial de stock (DIP).
// Solo se agregan filas; el historial no se edita.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByItem(ctx context.Context, ref domain.ItemRef, limit int) ([]*entity.StockMovement, error)
}
