package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado (resultado de producción, vendido por factura).
// StockQuantity solo cambia vía el libro de stock; Update de maestro no lo toca.
type Product struct {
	ID            string
	Name          string
	Code          string // único entre productos
	Description   string
	Unit          string
	StockQuantity decimal.Decimal
	UnitPrice     decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
