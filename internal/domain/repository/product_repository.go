package repository

import (
	"context"

	"github.com/jhoicas/superindo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Update no modifica stock_quantity (se maneja vía StockRepository).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
