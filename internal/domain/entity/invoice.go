package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de factura. Son informativos: no tienen efecto en stock ni restricciones de transición.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// ValidInvoiceStatus indica si s es un estado conocido.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice representa una factura de venta de un producto; descuenta Quantity del stock del producto.
type Invoice struct {
	ID            string
	InvoiceNumber string // INV<YYYYMMDD><seq>
	CustomerID    string
	ProductID     string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	InvoiceDate   time.Time
	DueDate       *time.Time
	Status        string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ComputeTotal recalcula TotalPrice.
func (i *Invoice) ComputeTotal() {
	i.TotalPrice = i.Quantity.Mul(i.UnitPrice).Round(2)
}
