package entity

import (
	"time"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/shopspring/decimal"
)

// StockItem es la vista común de Material y Product que maneja el libro de stock.
// Se obtiene bloqueada (FOR UPDATE) dentro de la transacción de una transición.
type StockItem struct {
	Kind          domain.ItemKind
	ID            string
	Name          string
	Code          string
	Unit          string
	StockQuantity decimal.Decimal
	UnitPrice     decimal.Decimal
	UpdatedAt     time.Time
}

// Ref devuelve la referencia tipo+ID.
func (s *StockItem) Ref() domain.ItemRef {
	return domain.ItemRef{Kind: s.Kind, ID: s.ID}
}
