package repository

import (
	"context"
	"time"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MasterCounts conteo de registros maestros.
type MasterCounts struct {
	Customers int
	Materials int
	Products  int
}

// TransactionCounts conteo de transacciones creadas en un rango.
type TransactionCounts struct {
	Incomings   int
	Productions int
	Invoices    int
}

// TransactionTotals suma histórica de total_price.
type TransactionTotals struct {
	IncomingValue decimal.Decimal
	InvoiceValue  decimal.Decimal
}

// LowStockCounts artículos con stock por debajo del umbral.
type LowStockCounts struct {
	Materials int
	Products  int
}

// Activity transacción reciente para el feed de actividad; los nombres vienen resueltos por join.
// Amount es nil en producciones (no tienen importe).
type Activity struct {
	Type         string // incoming | production | invoice
	ID           string
	Number       string
	CustomerName string
	MaterialName string
	ProductName  string
	Amount       *decimal.Decimal
	CreatedAt    time.Time
}

// DashboardRepository define las consultas de solo lectura del dashboard y reportes de stock.
type DashboardRepository interface {
	GetMasterCounts(ctx context.Context) (MasterCounts, error)
	// GetTransactionCounts cuenta por created_at en [from, to).
	GetTransactionCounts(ctx context.Context, from, to time.Time) (TransactionCounts, error)
	GetTotals(ctx context.Context) (TransactionTotals, error)
	GetLowStockCounts(ctx context.Context, threshold decimal.Decimal) (LowStockCounts, error)
	// ListStockLevels devuelve id, nombre, código, stock y unidad de todos los artículos del tipo.
	ListStockLevels(ctx context.Context, kind domain.ItemKind) ([]*entity.StockItem, error)
	// ListRecentActivities devuelve hasta perKind transacciones de cada tipo, más recientes primero.
	ListRecentActivities(ctx context.Context, perKind int) ([]Activity, error)
}
