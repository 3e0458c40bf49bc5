package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest entrada para crear o actualizar un material o un producto.
// StockQuantity solo se usa al crear (stock inicial); en update se ignora.
type ItemRequest struct {
	Name          string          `json:"name" validate:"required,max=255"`
	Code          string          `json:"code" validate:"required,max=50"`
	Description   string          `json:"description" validate:"max=1000"`
	Unit          string          `json:"unit" validate:"required,max=20"`
	StockQuantity decimal.Decimal `json:"stock_quantity" validate:"gte=0"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"gte=0"`
	IsActive      *bool           `json:"is_active"`
}

// ItemResponse salida de un material o producto.
type ItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemSummary referencia corta a un material o producto embebida en transacciones.
type ItemSummary struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Unit          string          `json:"unit"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

// CustomerRequest entrada para crear o actualizar un cliente.
type CustomerRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Email         string `json:"email" validate:"omitempty,email,max=255"`
	Phone         string `json:"phone" validate:"max=20"`
	Address       string `json:"address" validate:"max=1000"`
	ContactPerson string `json:"contact_person" validate:"max=255"`
	IsActive      *bool  `json:"is_active"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	ContactPerson string    `json:"contact_person"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CustomerSummary referencia corta a un cliente.
type CustomerSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
