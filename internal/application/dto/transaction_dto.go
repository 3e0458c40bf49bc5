package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomingRequest entrada para crear o actualizar una entrada de material.
// IncomingNumber vacío = se genera (IN<AAAAMMDD><seq>).
type IncomingRequest struct {
	IncomingNumber string          `json:"incoming_number" validate:"max=50"`
	CustomerID     string          `json:"customer_id" validate:"required,uuid"`
	MaterialID     string          `json:"material_id" validate:"required,uuid"`
	Quantity       decimal.Decimal `json:"quantity" validate:"min=0.01"`
	UnitPrice      decimal.Decimal `json:"unit_price" validate:"gte=0"`
	IncomingDate   string          `json:"incoming_date" validate:"required,datetime=2006-01-02"`
	Notes          string          `json:"notes" validate:"max=1000"`
}

// IncomingResponse salida de una entrada con sus asociaciones.
type IncomingResponse struct {
	ID             string           `json:"id"`
	IncomingNumber string           `json:"incoming_number"`
	CustomerID     string           `json:"customer_id"`
	MaterialID     string           `json:"material_id"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	TotalPrice     decimal.Decimal  `json:"total_price"`
	IncomingDate   string           `json:"incoming_date"`
	Notes          string           `json:"notes"`
	Customer       *CustomerSummary `json:"customer,omitempty"`
	Material       *ItemSummary     `json:"material,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProductionRequest entrada para crear o actualizar una orden de producción.
type ProductionRequest struct {
	ProductionNumber        string          `json:"production_number" validate:"max=50"`
	MaterialID              string          `json:"material_id" validate:"required,uuid"`
	ProductID               string          `json:"product_id" validate:"required,uuid"`
	MaterialQuantityUsed    decimal.Decimal `json:"material_quantity_used" validate:"min=0.01"`
	ProductQuantityProduced decimal.Decimal `json:"product_quantity_produced" validate:"min=0.01"`
	ProductionDate          string          `json:"production_date" validate:"required,datetime=2006-01-02"`
	Notes                   string          `json:"notes" validate:"max=1000"`
}

// ProductionResponse salida de una orden de producción con sus asociaciones.
type ProductionResponse struct {
	ID                      string          `json:"id"`
	ProductionNumber        string          `json:"production_number"`
	MaterialID              string          `json:"material_id"`
	ProductID               string          `json:"product_id"`
	MaterialQuantityUsed    decimal.Decimal `json:"material_quantity_used"`
	ProductQuantityProduced decimal.Decimal `json:"product_quantity_produced"`
	ProductionDate          string          `json:"production_date"`
	Notes                   string          `json:"notes"`
	Material                *ItemSummary    `json:"material,omitempty"`
	Product                 *ItemSummary    `json:"product,omitempty"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// InvoiceRequest entrada para crear o actualizar una factura. Status vacío = draft.
type InvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number" validate:"max=50"`
	CustomerID    string          `json:"customer_id" validate:"required,uuid"`
	ProductID     string          `json:"product_id" validate:"required,uuid"`
	Quantity      decimal.Decimal `json:"quantity" validate:"min=0.01"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"gte=0"`
	InvoiceDate   string          `json:"invoice_date" validate:"required,datetime=2006-01-02"`
	DueDate       string          `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status        string          `json:"status" validate:"omitempty,oneof=draft sent paid cancelled"`
	Notes         string          `json:"notes" validate:"max=1000"`
}

// InvoiceStatusRequest entrada de PATCH /invoices/:id/status.
type InvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid cancelled"`
}

// InvoiceResponse salida de una factura con sus asociaciones.
type InvoiceResponse struct {
	ID            string           `json:"id"`
	InvoiceNumber string           `json:"invoice_number"`
	CustomerID    string           `json:"customer_id"`
	ProductID     string           `json:"product_id"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	TotalPrice    decimal.Decimal  `json:"total_price"`
	InvoiceDate   string           `json:"invoice_date"`
	DueDate       *string          `json:"due_date"`
	Status        string           `json:"status"`
	Notes         string           `json:"notes"`
	Customer      *CustomerSummary `json:"customer,omitempty"`
	Product       *ItemSummary     `json:"product,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
