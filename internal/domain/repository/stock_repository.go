package repository

import (
	"context"
	"time"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository define el puerto para leer y escribir el saldo de stock de materiales y productos.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE). nil si no existe.
	GetForUpdate(ctx context.Context, ref domain.ItemRef) (*entity.StockItem, error)
	// SetQuantity escribe el nuevo saldo. Solo lo invoca el libro de stock.
	SetQuantity(ctx context.Context, ref domain.ItemRef, quantity decimal.Decimal, at time.Time) error
}
