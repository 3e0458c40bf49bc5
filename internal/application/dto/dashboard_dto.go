package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalCustomers     int             `json:"total_customers"`
	TotalMaterials     int             `json:"total_materials"`
	TotalProducts      int             `json:"total_products"`
	TodayIncomings     int             `json:"today_incomings"`
	TodayProductions   int             `json:"today_productions"`
	TodayInvoices      int             `json:"today_invoices"`
	TotalIncomingValue decimal.Decimal `json:"total_incoming_value"`
	TotalInvoiceValue  decimal.Decimal `json:"total_invoice_value"`
	LowStockMaterials  int             `json:"low_stock_materials"`
	LowStockProducts   int             `json:"low_stock_products"`
	LowStockThreshold  decimal.Decimal `json:"low_stock_threshold"`
	Date               string          `json:"date"` // AAAA-MM-DD del "hoy" usado
}

// StockLevelDTO línea del reporte de stock.
type StockLevelDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	Unit          string          `json:"unit"`
}

// StockReportDTO respuesta de GET /api/reports/stock.
type StockReportDTO struct {
	Materials []StockLevelDTO `json:"materials"`
	Products  []StockLevelDTO `json:"products"`
}

// StockMovementDTO línea del historial de stock de un artículo.
type StockMovementDTO struct {
	ID           string          `json:"id"`
	ItemKind     string          `json:"item_kind"`
	ItemID       string          `json:"item_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	SourceType   string          `json:"source_type"`
	SourceID     string          `json:"source_id"`
	SourceNumber string          `json:"source_number"`
	Reason       string          `json:"reason"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ActivityDTO una línea del feed de actividad reciente.
type ActivityDTO struct {
	Type        string           `json:"type"` // incoming | production | invoice
	ID          string           `json:"id"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	Amount      *decimal.Decimal `json:"amount"` // null en producciones
}

// ReplenishmentSuggestionDTO artículo bajo el umbral de stock con la cantidad sugerida a reponer.
type ReplenishmentSuggestionDTO struct {
	Priority           int             `json:"priority"` // 1 = más urgente
	Kind               string          `json:"kind"`     // material | product
	ID                 string          `json:"id"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	Threshold          decimal.Decimal `json:"threshold"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
}
