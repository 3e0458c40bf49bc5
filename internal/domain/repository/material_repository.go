package repository

import (
	"context"

	"github.com/jhoicas/superindo-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
// Update no modifica stock_quantity (se maneja vía StockRepository).
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetByCode(ctx context.Context, code string) (*entity.Material, error)
	List(ctx context.Context) ([]*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	Delete(ctx context.Context, id string) error
}
