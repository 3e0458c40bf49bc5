package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Incoming representa una entrada de materia prima; suma Quantity al stock del material.
type Incoming struct {
	ID             string
	IncomingNumber string // IN<YYYYMMDD><seq>
	CustomerID     string
	MaterialID     string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	TotalPrice     decimal.Decimal // Quantity * UnitPrice
	IncomingDate   time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ComputeTotal recalcula TotalPrice.
func (i *Incoming) ComputeTotal() {
	i.TotalPrice = i.Quantity.Mul(i.UnitPrice).Round(2)
}
