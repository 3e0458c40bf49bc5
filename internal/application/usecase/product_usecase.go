package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/superindo-api/internal/application/dto"
	"github.com/jhoicas/superindo-api/internal/application/ledger"
	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
	"github.com/jhoicas/superindo-api/pkg/logger"
	"github.com/jhoicas/superindo-api/pkg/validation"
)

// ProductUseCase casos de uso CRUD para productos terminados. El stock solo cambia vía el libro de stock.
type ProductUseCase struct {
	tx    ledger.TxRunner
	reads repository.Repositories
	log   *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx ledger.TxRunner, reads repository.Repositories, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{tx: tx, reads: reads, log: log.Component("usecase.product")}
}

// Create crea el producto terminado. Un stock inicial > 0 se registra como movimiento de apertura.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		Unit:        in.Unit,
		UnitPrice:   in.UnitPrice.Round(2),
		IsActive:    isActive(in.IsActive),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	opening := in.StockQuantity.Round(2)
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Products.GetByCode(ctx, in.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return codeTaken()
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return codeTaken()
			}
			return err
		}
		led := ledger.NewStockLedger(repos, now).For(entity.MovementSourceOpening, product.ID, product.Code)
		if err := led.AddStock(ctx, domain.ProductRef(product.ID), opening, entity.MovementReasonCreate); err != nil {
			return err
		}
		product.StockQuantity = opening
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("code", product.Code).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	product, err := uc.reads.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista todos los productos ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ItemResponse, error) {
	list, err := uc.reads.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update reemplaza los datos maestros. No modifica el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	product, err := uc.reads.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != product.Code {
		existing, err := uc.reads.Products.GetByCode(ctx, in.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, codeTaken()
		}
	}
	product.Name = in.Name
	product.Code = in.Code
	product.Description = in.Description
	product.Unit = in.Unit
	product.UnitPrice = in.UnitPrice.Round(2)
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.reads.Products.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, codeTaken()
		}
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina el producto si ninguna producción ni factura lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.reads.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	blocked := &domain.ReferentialIntegrityError{Entity: "product", ID: id, Dependents: []string{"productions", "invoices"}}
	productions, err := uc.reads.Productions.CountByProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("count productions: %w", err)
	}
	invoices, err := uc.reads.Invoices.CountByProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("count invoices: %w", err)
	}
	if productions > 0 || invoices > 0 {
		return blocked
	}
	if err := uc.reads.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return blocked
		}
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	return nil
}

func toProductResponse(p *entity.Product) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            p.ID,
		Name:          p.Name,
		Code:          p.Code,
		Description:   p.Description,
		Unit:          p.Unit,
		StockQuantity: p.StockQuantity,
		UnitPrice:     p.UnitPrice,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
