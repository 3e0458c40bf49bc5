// Package inventory contiene las reglas puras del libro de stock (sin persistencia).
// Las transiciones de la capa de aplicación solo mutan stock a través de estas funciones.
package inventory

import (
	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/shopspring/decimal"
)

// HasEnoughStock indica si current alcanza para cubrir qty (current >= qty).
func HasEnoughStock(current, qty decimal.Decimal) bool {
	return current.GreaterThanOrEqual(qty)
}

// AddStock devuelve el saldo tras sumar qty. No hay tope superior.
func AddStock(current, qty decimal.Decimal) decimal.Decimal {
	return current.Add(qty)
}

// ReduceStock devuelve el saldo tras restar qty o *domain.InsufficientStockError si current < qty.
func ReduceStock(ref domain.ItemRef, current, qty decimal.Decimal) (decimal.Decimal, error) {
	if !HasEnoughStock(current, qty) {
		return current, &domain.InsufficientStockError{
			Kind:      ref.Kind,
			ItemID:    ref.ID,
			Available: current,
			Required:  qty,
		}
	}
	return current.Sub(qty), nil
}

// ApplyDelta aplica un delta con signo: positivo suma, negativo pasa por ReduceStock
// para que ninguna disminución evite la validación de no-negatividad.
func ApplyDelta(ref domain.ItemRef, current, delta decimal.Decimal) (decimal.Decimal, error) {
	if delta.IsNegative() {
		return ReduceStock(ref, current, delta.Neg())
	}
	return AddStock(current, delta), nil
}
