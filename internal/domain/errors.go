package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError agrupa errores por campo (input mal formado, código duplicado, FK inexistente).
// errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea un error con un único campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add agrega (o sobrescribe) el mensaje de un campo.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

// HasErrors indica si se registró al menos un campo.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil devuelve nil si no hay campos; útil al final de un bloque de validación.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError se produce cuando una reducción dejaría el stock negativo.
// errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	Kind      ItemKind
	ItemID    string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient %s stock. Available: %s, Required: %s",
		e.Kind, e.Available.StringFixed(2), e.Required.StringFixed(2))
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ReferentialIntegrityError bloquea el borrado de un registro maestro con transacciones dependientes.
// errors.Is(err, ErrConflict) es true.
type ReferentialIntegrityError struct {
	Entity     string
	ID         string
	Dependents []string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("Cannot delete %s with existing %s", e.Entity, strings.Join(e.Dependents, " or "))
}

func (e *ReferentialIntegrityError) Unwrap() error { return ErrConflict }
