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

// IncomingUseCase registra entradas de materia prima: cada entrada suma su cantidad al material.
type IncomingUseCase struct {
	service
}

// NewIncomingUseCase construye el caso de uso.
func NewIncomingUseCase(d Deps) *IncomingUseCase {
	return &IncomingUseCase{service: newService(d, "ledger.incoming")}
}

type incomingInput struct {
	number     string
	customerID string
	materialID string
	quantity   decimal.Decimal
	unitPrice  decimal.Decimal
	date       time.Time
	notes      string
}

func parseIncoming(in dto.IncomingRequest) (incomingInput, error) {
	if err := validation.Struct(in); err != nil {
		return incomingInput{}, err
	}
	ve := &domain.ValidationError{}
	out := incomingInput{
		number:     in.IncomingNumber,
		customerID: in.CustomerID,
		materialID: in.MaterialID,
		quantity:   in.Quantity.Round(2),
		unitPrice:  in.UnitPrice.Round(2),
		date:       parseDate(ve, "incoming_date", in.IncomingDate),
		notes:      in.Notes,
	}
	return out, ve.OrNil()
}

// Create valida, asigna número, guarda la entrada y suma la cantidad al material.
func (uc *IncomingUseCase) Create(ctx context.Context, in dto.IncomingRequest) (*dto.IncomingResponse, error) {
	input, err := parseIncoming(in)
	if err != nil {
		return nil, err
	}
	var out *dto.IncomingResponse
	err = uc.run(ctx, "create", func(repos repository.Repositories, led *StockLedger) error {
		customer, err := requireCustomer(ctx, repos, input.customerID)
		if err != nil {
			return err
		}
		ref := domain.MaterialRef(input.materialID)
		if err := led.Lock(ctx, ref); err != nil {
			return err
		}
		number, err := uc.assignNumber(ctx, repos, numbering.PrefixIncoming, input.number, led.Now())
		if err != nil {
			return err
		}
		rec := &entity.Incoming{
			ID:             uuid.New().String(),
			IncomingNumber: number,
			CustomerID:     input.customerID,
			MaterialID:     input.materialID,
			Quantity:       input.quantity,
			UnitPrice:      input.unitPrice,
			IncomingDate:   input.date,
			Notes:          input.notes,
			CreatedAt:      led.Now(),
			UpdatedAt:      led.Now(),
		}
		rec.ComputeTotal()
		if err := repos.Incomings.Create(ctx, rec); err != nil {
			return numberTaken(err, "incoming_number")
		}
		led.For(entity.MovementSourceIncoming, rec.ID, rec.IncomingNumber)
		if err := led.AddStock(ctx, ref, rec.Quantity, entity.MovementReasonCreate); err != nil {
			return err
		}
		material, _ := led.Item(ctx, ref)
		out = incomingResponse(rec, customerSummary(customer), itemSummary(material))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logFor(ctx).Info().Str("incoming_number", out.IncomingNumber).Str("material_id", out.MaterialID).
		Str("quantity", out.Quantity.String()).Msg("entrada registrada")
	return out, nil
}

// Update reemplaza los datos de la entrada y ajusta el stock por la diferencia.
// Mismo material: delta = nueva - anterior (un delta negativo se valida como reducción).
// Material distinto: se resta la cantidad anterior al material viejo y se suma la nueva al nuevo.
func (uc *IncomingUseCase) Update(ctx context.Context, id string, in dto.IncomingRequest) (*dto.IncomingResponse, error) {
	input, err := parseIncoming(in)
	if err != nil {
		return nil, err
	}
	var out *dto.IncomingResponse
	err = uc.run(ctx, "update", func(repos repository.Repositories, led *StockLedger) error {
		rec, err := repos.Incomings.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		customer, err := requireCustomer(ctx, repos, input.customerID)
		if err != nil {
			return err
		}
		oldRef, newRef := domain.MaterialRef(rec.MaterialID), domain.MaterialRef(input.materialID)
		if err := led.Lock(ctx, oldRef, newRef); err != nil {
			return err
		}
		oldQty := rec.Quantity

		if err := uc.renumber(ctx, repos, numbering.PrefixIncoming, input.number, &rec.IncomingNumber); err != nil {
			return err
		}
		rec.CustomerID = input.customerID
		rec.MaterialID = input.materialID
		rec.Quantity = input.quantity
		rec.UnitPrice = input.unitPrice
		rec.IncomingDate = input.date
		rec.Notes = input.notes
		rec.UpdatedAt = led.Now()
		rec.ComputeTotal()
		if err := repos.Incomings.Update(ctx, rec); err != nil {
			return numberTaken(err, "incoming_number")
		}

		led.For(entity.MovementSourceIncoming, rec.ID, rec.IncomingNumber)
		if oldRef == newRef {
			err = led.AdjustStock(ctx, newRef, rec.Quantity.Sub(oldQty), entity.MovementReasonUpdate)
		} else {
			if err = led.ReduceStock(ctx, oldRef, oldQty, entity.MovementReasonReverse); err == nil {
				err = led.AddStock(ctx, newRef, rec.Quantity, entity.MovementReasonApply)
			}
		}
		if err != nil {
			return err
		}
		material, _ := led.Item(ctx, newRef)
		out = incomingResponse(rec, customerSummary(customer), itemSummary(material))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logFor(ctx).Info().Str("incoming_number", out.IncomingNumber).Msg("entrada actualizada")
	return out, nil
}

// Delete resta la cantidad de la entrada al material y la elimina.
// Si el material ya se consumió por debajo de esa cantidad no se borra nada.
func (uc *IncomingUseCase) Delete(ctx context.Context, id string) error {
	var number string
	err := uc.run(ctx, "delete", func(repos repository.Repositories, led *StockLedger) error {
		rec, err := repos.Incomings.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		number = rec.IncomingNumber
		led.For(entity.MovementSourceIncoming, rec.ID, rec.IncomingNumber)
		if err := led.ReduceStock(ctx, domain.MaterialRef(rec.MaterialID), rec.Quantity, entity.MovementReasonDelete); err != nil {
			return err
		}
		return repos.Incomings.Delete(ctx, rec.ID)
	})
	if err != nil {
		return err
	}
	uc.logFor(ctx).Info().Str("incoming_number", number).Msg("entrada eliminada")
	return nil
}

// Get devuelve la entrada con cliente y material.
func (uc *IncomingUseCase) Get(ctx context.Context, id string) (*dto.IncomingResponse, error) {
	rec, err := uc.reads.Incomings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get incoming: %w", err)
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.reads.Customers.GetByID(ctx, rec.CustomerID)
	if err != nil {
		return nil, err
	}
	material, err := uc.reads.Materials.GetByID(ctx, rec.MaterialID)
	if err != nil {
		return nil, err
	}
	return incomingResponse(rec, customerSummary(customer), materialSummary(material)), nil
}

// List devuelve todas las entradas, más recientes primero.
func (uc *IncomingUseCase) List(ctx context.Context) ([]dto.IncomingResponse, error) {
	list, err := uc.reads.Incomings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list incomings: %w", err)
	}
	lk, err := uc.loadLookups(ctx, true, true, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IncomingResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, *incomingResponse(rec,
			customerSummary(lk.customers[rec.CustomerID]),
			materialSummary(lk.materials[rec.MaterialID])))
	}
	return out, nil
}

func incomingResponse(rec *entity.Incoming, customer *dto.CustomerSummary, material *dto.ItemSummary) *dto.IncomingResponse {
	return &dto.IncomingResponse{
		ID:             rec.ID,
		IncomingNumber: rec.IncomingNumber,
		CustomerID:     rec.CustomerID,
		MaterialID:     rec.MaterialID,
		Quantity:       rec.Quantity,
		UnitPrice:      rec.UnitPrice,
		TotalPrice:     rec.TotalPrice,
		IncomingDate:   formatDate(rec.IncomingDate),
		Notes:          rec.Notes,
		Customer:       customer,
		Material:       material,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}
