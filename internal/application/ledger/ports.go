package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo (registro, stock, movimientos y consecutivo).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// NumberGenerator asigna consecutivos <PREFIJO><AAAAMMDD><seq>; Next para el día de at.
// repos está atado a la transacción de la transición en curso.
// Observe registra un número asignado por el cliente para que Next no lo repita.
type NumberGenerator interface {
	Next(ctx context.Context, repos repository.Repositories, prefix string, at time.Time) (string, error)
	Observe(ctx context.Context, repos repository.Repositories, prefix, number string) error
}

// EventPublisher publica los movimientos de stock de una transición ya confirmada.
type EventPublisher interface {
	Publish(ctx context.Context, movements []*entity.StockMovement) error
}

// Clock devuelve el instante actual; los tests lo fijan para simular fechas.
type Clock func() time.Time

// NopPublisher descarta los eventos (sin broker configurado).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, []*entity.StockMovement) error { return nil }
