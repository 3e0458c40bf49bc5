package repository

import (
	"context"

	"github.com/jhoicas/superindo-api/internal/domain/entity"
)

// NumberScanner busca el último consecutivo existente con un prefijo de día
// (ej. "IN20250721"). Devuelve "" si no hay ninguno.
type NumberScanner interface {
	LastNumber(ctx context.Context, dayPrefix string) (string, error)
}

// IncomingRepository define el puerto de persistencia para entradas de material.
type IncomingRepository interface {
	NumberScanner
	Create(ctx context.Context, incoming *entity.Incoming) error
	GetByID(ctx context.Context, id string) (*entity.Incoming, error)
	// GetForUpdate bloquea la fila de la entrada para update/delete.
	GetForUpdate(ctx context.Context, id string) (*entity.Incoming, error)
	List(ctx context.Context) ([]*entity.Incoming, error)
	Update(ctx context.Context, incoming *entity.Incoming) error
	Delete(ctx context.Context, id string) error
	CountByCustomer(ctx context.Context, customerID string) (int, error)
	CountByMaterial(ctx context.Context, materialID string) (int, error)
}

// ProductionRepository define el puerto de persistencia para órdenes de producción.
type ProductionRepository interface {
	NumberScanner
	Create(ctx context.Context, production *entity.Production) error
	GetByID(ctx context.Context, id string) (*entity.Production, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Production, error)
	List(ctx context.Context) ([]*entity.Production, error)
	Update(ctx context.Context, production *entity.Production) error
	Delete(ctx context.Context, id string) error
	CountByMaterial(ctx context.Context, materialID string) (int, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}

// InvoiceRepository define el puerto de persistencia para facturas.
type InvoiceRepository interface {
	NumberScanner
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context) ([]*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	// UpdateStatus cambia solo el estado (sin efecto en stock).
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	CountByCustomer(ctx context.Context, customerID string) (int, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
