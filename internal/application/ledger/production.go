package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/superindo-api/internal/application/dto"
	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/domain/numbering"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
	"github.com/jhoicas/superindo-api/pkg/validation"
)

// ProductionUseCase registra órdenes de producción: consumen material y generan producto.
type ProductionUseCase struct {
	service
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(d Deps) *ProductionUseCase {
	return &ProductionUseCase{service: newService(d, "ledger.production")}
}

type productionInput struct {
	number     string
	materialID string
	productID  string
	used       decimal.Decimal
	produced   decimal.Decimal
	date       time.Time
	notes      string
}

func parseProduction(in dto.ProductionRequest) (productionInput, error) {
	if err := validation.Struct(in); err != nil {
		return productionInput{}, err
	}
	ve := &domain.ValidationError{}
	out := productionInput{
		number:     in.ProductionNumber,
		materialID: in.MaterialID,
		productID:  in.ProductID,
		used:       in.MaterialQuantityUsed.Round(2),
		produced:   in.ProductQuantityProduced.Round(2),
		date:       parseDate(ve, "production_date", in.ProductionDate),
		notes:      in.Notes,
	}
	return out, ve.OrNil()
}

// Create verifica stock de material, asigna número, guarda la orden,
// descuenta el material usado y suma el producto fabricado.
func (uc *ProductionUseCase) Create(ctx context.Context, in dto.ProductionRequest) (*dto.ProductionResponse, error) {
	input, err := parseProduction(in)
	if err != nil {
		return nil, err
	}
	var out *dto.ProductionResponse
	err = uc.run(ctx, "create", func(repos repository.Repositories, led *StockLedger) error {
		matRef, prodRef := domain.MaterialRef(input.materialID), domain.ProductRef(input.productID)
		if err := led.Lock(ctx, matRef, prodRef); err != nil {
			return err
		}
		if err := led.EnsureAvailable(ctx, matRef, input.used); err != nil {
			return err
		}
		number, err := uc.assignNumber(ctx, repos, numbering.PrefixProduction, input.number, led.Now())
		if err != nil {
			return err
		}
		rec := &entity.Production{
			ID:                      uuid.New().String(),
			ProductionNumber:        number,
			MaterialID:              input.materialID,
			ProductID:               input.productID,
			MaterialQuantityUsed:    input.used,
			ProductQuantityProduced: input.produced,
			ProductionDate:          input.date,
			Notes:                   input.notes,
			CreatedAt:               led.Now(),
			UpdatedAt:               led.Now(),
		}
		if err := repos.Productions.Create(ctx, rec); err != nil {
			return numberTaken(err, "production_number")
		}
		led.For(entity.MovementSourceProduction, rec.ID, rec.ProductionNumber)
		if err := led.ReduceStock(ctx, matRef, rec.MaterialQuantityUsed, entity.MovementReasonCreate); err != nil {
			return err
		}
		if err := led.AddStock(ctx, prodRef, rec.ProductQuantityProduced, entity.MovementReasonCreate); err != nil {
			return err
		}
		material, _ := led.Item(ctx, matRef)
		product, _ := led.Item(ctx, prodRef)
		out = productionResponse(rec, itemSummary(material), itemSummary(product))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logFor(ctx).Info().Str("production_number", out.ProductionNumber).
		Str("material_used", out.MaterialQuantityUsed.String()).
		Str("product_produced", out.ProductQuantityProduced.String()).Msg("producción registrada")
	return out, nil
}

// Update revierte el efecto anterior, valida el material para las nuevas cantidades
// y aplica el nuevo efecto. Cualquier fallo deja todo como estaba.
func (uc *ProductionUseCase) Update(ctx context.Context, id string, in dto.ProductionRequest) (*dto.ProductionResponse, error) {
	input, err := parseProduction(in)
	if err != nil {
		return nil, err
	}
	var out *dto.ProductionResponse
	err = uc.run(ctx, "update", func(repos repository.Repositories, led *StockLedger) error {
		rec, err := repos.Productions.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		oldMat, oldProd := domain.MaterialRef(rec.MaterialID), domain.ProductRef(rec.ProductID)
		newMat, newProd := domain.MaterialRef(input.materialID), domain.ProductRef(input.productID)
		if err := led.Lock(ctx, oldMat, oldProd, newMat, newProd); err != nil {
			return err
		}

		led.For(entity.MovementSourceProduction, rec.ID, rec.ProductionNumber)
		if err := led.AddStock(ctx, oldMat, rec.MaterialQuantityUsed, entity.MovementReasonReverse); err != nil {
			return err
		}
		if err := led.ReduceStock(ctx, oldProd, rec.ProductQuantityProduced, entity.MovementReasonReverse); err != nil {
			return err
		}
		if err := led.EnsureAvailable(ctx, newMat, input.used); err != nil {
			return err
		}

		if err := uc.renumber(ctx, repos, numbering.PrefixProduction, input.number, &rec.ProductionNumber); err != nil {
			return err
		}
		rec.MaterialID = input.materialID
		rec.ProductID = input.productID
		rec.MaterialQuantityUsed = input.used
		rec.ProductQuantityProduced = input.produced
		rec.ProductionDate = input.date
		rec.Notes = input.notes
		rec.UpdatedAt = led.Now()
		if err := repos.Productions.Update(ctx, rec); err != nil {
			return numberTaken(err, "production_number")
		}

		led.For(entity.MovementSourceProduction, rec.ID, rec.ProductionNumber)
		if err := led.ReduceStock(ctx, newMat, rec.MaterialQuantityUsed, entity.MovementReasonApply); err != nil {
			return err
		}
		if err := led.AddStock(ctx, newProd, rec.ProductQuantityProduced, entity.MovementReasonApply); err != nil {
			return err
		}
		material, _ := led.Item(ctx, newMat)
		product, _ := led.Item(ctx, newProd)
		out = productionResponse(rec, itemSummary(material), itemSummary(product))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logFor(ctx).Info().Str("production_number", out.ProductionNumber).Msg("producción actualizada")
	return out, nil
}

// Delete devuelve el material usado, retira el producto fabricado y elimina la orden.
// Si el producto ya se vendió por debajo de lo fabricado no se borra nada.
func (uc *ProductionUseCase) Delete(ctx context.Context, id string) error {
	var number string
	err := uc.run(ctx, "delete", func(repos repository.Repositories, led *StockLedger) error {
		rec, err := repos.Productions.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		number = rec.ProductionNumber
		matRef, prodRef := domain.MaterialRef(rec.MaterialID), domain.ProductRef(rec.ProductID)
		if err := led.Lock(ctx, matRef, prodRef); err != nil {
			return err
		}
		led.For(entity.MovementSourceProduction, rec.ID, rec.ProductionNumber)
		if err := led.AddStock(ctx, matRef, rec.MaterialQuantityUsed, entity.MovementReasonDelete); err != nil {
			return err
		}
		if err := led.ReduceStock(ctx, prodRef, rec.ProductQuantityProduced, entity.MovementReasonDelete); err != nil {
			return err
		}
		return repos.Productions.Delete(ctx, rec.ID)
	})
	if err != nil {
		return err
	}
	uc.logFor(ctx).Info().Str("production_number", number).Msg("producción eliminada")
	return nil
}

// Get devuelve la orden con material y producto.
func (uc *ProductionUseCase) Get(ctx context.Context, id string) (*dto.ProductionResponse, error) {
	rec, err := uc.reads.Productions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get production: %w", err)
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	material, err := uc.reads.Materials.GetByID(ctx, rec.MaterialID)
	if err != nil {
		return nil, err
	}
	product, err := uc.reads.Products.GetByID(ctx, rec.ProductID)
	if err != nil {
		return nil, err
	}
	return productionResponse(rec, materialSummary(material), productSummary(product)), nil
}

// List devuelve todas las órdenes, más recientes primero.
func (uc *ProductionUseCase) List(ctx context.Context) ([]dto.ProductionResponse, error) {
	list, err := uc.reads.Productions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list productions: %w", err)
	}
	lk, err := uc.loadLookups(ctx, false, true, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, *productionResponse(rec,
			materialSummary(lk.materials[rec.MaterialID]),
			productSummary(lk.products[rec.ProductID])))
	}
	return out, nil
}

func productionResponse(rec *entity.Production, material, product *dto.ItemSummary) *dto.ProductionResponse {
	return &dto.ProductionResponse{
		ID:                      rec.ID,
		ProductionNumber:        rec.ProductionNumber,
		MaterialID:              rec.MaterialID,
		ProductID:               rec.ProductID,
		MaterialQuantityUsed:    rec.MaterialQuantityUsed,
		ProductQuantityProduced: rec.ProductQuantityProduced,
		ProductionDate:          formatDate(rec.ProductionDate),
		Notes:                   rec.Notes,
		Material:                material,
		Product:                 product,
		CreatedAt:               rec.CreatedAt,
		UpdatedAt:               rec.UpdatedAt,
	}
}
