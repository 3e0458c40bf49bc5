package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Production representa una orden de producción: consume material y genera producto.
type Production struct {
	ID                      string
	ProductionNumber        string // PR<YYYYMMDD><seq>
	MaterialID              string
	ProductID               string
	MaterialQuantityUsed    decimal.Decimal
	ProductQuantityProduced decimal.Decimal
	ProductionDate          time.Time
	Notes                   string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
