package entity

import (
	"time"

	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Origen del movimiento de stock.
const (
	MovementSourceOpening    = "opening"    // stock inicial de un maestro
	MovementSourceIncoming   = "incoming"   // entrada de material
	MovementSourceProduction = "production" // orden de producción
	MovementSourceInvoice    = "invoice"    // factura de venta
)

// Motivo dentro del ciclo de vida de la transacción origen.
const (
	MovementReasonCreate  = "create"
	MovementReasonUpdate  = "update"
	MovementReasonReverse = "reverse" // reversa del efecto previo (update/delete)
	MovementReasonApply   = "apply"   // nuevo efecto tras una reversa
	MovementReasonDelete  = "delete"
)

// StockMovement es una línea del historial de stock: exactamente una por mutación.
type StockMovement struct {
	ID           string
	ItemKind     domain.ItemKind
	ItemID       string
	Quantity     decimal.Decimal // delta con signo
	BalanceAfter decimal.Decimal
	SourceType   string
	SourceID     string
	SourceNumber string
	Reason       string
	CreatedAt    time.Time
}
