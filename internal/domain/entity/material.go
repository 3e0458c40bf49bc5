package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa una materia prima. StockQuantity solo cambia vía el libro de stock.
type Material struct {
	ID            string
	Name          string
	Code          string // único entre materiales
	Description   string
	Unit          string
	StockQuantity decimal.Decimal
	UnitPrice     decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
