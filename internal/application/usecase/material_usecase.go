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

// MaterialUseCase casos de uso CRUD para materias primas. El stock solo cambia vía el libro de stock.
type MaterialUseCase struct {
	tx    ledger.TxRunner
	reads repository.Repositories
	log   *logger.Logger
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(tx ledger.TxRunner, reads repository.Repositories, log *logger.Logger) *MaterialUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MaterialUseCase{tx: tx, reads: reads, log: log.Component("usecase.material")}
}

// Create crea la materia prima. Un stock inicial > 0 se registra como movimiento de apertura.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	material := &entity.Material{
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
		existing, err := repos.Materials.GetByCode(ctx, in.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return codeTaken()
		}
		if err := repos.Materials.Create(ctx, material); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return codeTaken()
			}
			return err
		}
		led := ledger.NewStockLedger(repos, now).For(entity.MovementSourceOpening, material.ID, material.Code)
		if err := led.AddStock(ctx, domain.MaterialRef(material.ID), opening, entity.MovementReasonCreate); err != nil {
			return err
		}
		material.StockQuantity = opening
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("material_id", material.ID).Str("code", material.Code).Msg("material creado")
	return toMaterialResponse(material), nil
}

// GetByID obtiene una materia prima por ID.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	material, err := uc.reads.Materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(material), nil
}

// List lista todas las materias primas ordenadas por nombre.
func (uc *MaterialUseCase) List(ctx context.Context) ([]dto.ItemResponse, error) {
	list, err := uc.reads.Materials.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return items, nil
}

// Update reemplaza los datos maestros. No modifica el stock.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	material, err := uc.reads.Materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != material.Code {
		existing, err := uc.reads.Materials.GetByCode(ctx, in.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, codeTaken()
		}
	}
	material.Name = in.Name
	material.Code = in.Code
	material.Description = in.Description
	material.Unit = in.Unit
	material.UnitPrice = in.UnitPrice.Round(2)
	if in.IsActive != nil {
		material.IsActive = *in.IsActive
	}
	material.UpdatedAt = time.Now()
	if err := uc.reads.Materials.Update(ctx, material); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, codeTaken()
		}
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Delete elimina la materia prima si ninguna entrada ni producción la referencia.
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	material, err := uc.reads.Materials.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	blocked := &domain.ReferentialIntegrityError{Entity: "material", ID: id, Dependents: []string{"incoming", "productions"}}
	incomings, err := uc.reads.Incomings.CountByMaterial(ctx, id)
	if err != nil {
		return fmt.Errorf("count incomings: %w", err)
	}
	productions, err := uc.reads.Productions.CountByMaterial(ctx, id)
	if err != nil {
		return fmt.Errorf("count productions: %w", err)
	}
	if incomings > 0 || productions > 0 {
		return blocked
	}
	if err := uc.reads.Materials.Delete(ctx, id); err != nil {
		// Una transacción concurrente pudo referenciarla entre el conteo y el borrado (FK).
		if errors.Is(err, domain.ErrConflict) {
			return blocked
		}
		return err
	}
	uc.log.Info().Str("material_id", id).Msg("material eliminado")
	return nil
}

func toMaterialResponse(m *entity.Material) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            m.ID,
		Name:          m.Name,
		Code:          m.Code,
		Description:   m.Description,
		Unit:          m.Unit,
		StockQuantity: m.StockQuantity,
		UnitPrice:     m.UnitPrice,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func codeTaken() error {
	return domain.NewValidationError("code", "has already been taken")
}

func isActive(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
