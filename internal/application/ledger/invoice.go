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

// InvoiceUseCase registra facturas de venta: cada factura descuenta su cantidad del producto.
type InvoiceUseCase struct {
	service
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(d Deps) *InvoiceUseCase {
	return &InvoiceUseCase{service: newService(d, "ledger.invoice")}
}

type invoiceInput struct {
	number     string
	customerID string
	productID  string
	quantity   decimal.Decimal
	unitPrice  decimal.Decimal
	date       time.Time
	dueDate    *time.Time
	status     string
	notes      string
}

func parseInvoice(in dto.InvoiceRequest) (invoiceInput, error) {
	if err := validation.Struct(in); err != nil {
		return invoiceInput{}, err
	}
	ve := &domain.ValidationError{}
	out := invoiceInput{
		number:     in.InvoiceNumber,
		customerID: in.CustomerID,
		productID:  in.ProductID,
		quantity:   in.Quantity.Round(2),
		unitPrice:  in.UnitPrice.Round(2),
		date:       parseDate(ve, "invoice_date", in.InvoiceDate),
		status:     in.Status,
		notes:      in.Notes,
	}
	if out.status == "" {
		out.status = entity.InvoiceStatusDraft
	}
	if in.DueDate != "" {
		due := parseDate(ve, "due_date", in.DueDate)
		if !ve.HasErrors() && due.Before(out.date) {
			ve.Add("due_date", "must be a date after or equal to invoice_date")
		}
		out.dueDate = &due
	}
	return out, ve.OrNil()
}

// Create verifica stock del producto, asigna número, guarda la factura y descuenta el producto.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	input, err := parseInvoice(in)
	if err != nil {
		return nil, err
	}
	var out *dto.InvoiceResponse
	err = uc.run(ctx, "create", func(repos repository.Repositories, led *StockLedger) error {
		customer, err := requireCustomer(ctx, repos, input.customerID)
		if err != nil {
			return err
		}
		ref := domain.ProductRef(input.productID)
		if err := led.EnsureAvailable(ctx, ref, input.quantity); err != nil {
			return err
		}
		number, err := uc.assignNumber(ctx, repos, numbering.PrefixInvoice, input.number, led.Now())
		if err != nil {
			return err
		}
		rec := &entity.Invoice{
			ID:            uuid.New().String(),
			InvoiceNumber: number,
			CustomerID:    input.customerID,
			ProductID:     input.productID,
			Quantity:      input.quantity,
			UnitPrice:     input.unitPrice,
			InvoiceDate:   input.date,
			DueDate:       input.dueDate,
			Status:        input.status,
			Notes:         input.notes,
			CreatedAt:     led.Now(),
			UpdatedAt:     led.Now(),
		}
		rec.ComputeTotal()
		if err := repos.Invoices.Create(ctx, rec); err != nil {
			return numberTaken(err, "invoice_number")
		}
		led.For(entity.MovementSourceInvoice, rec.ID, rec.InvoiceNumber)
		if err := led.ReduceStock(ctx, ref, rec.Quantity, entity.MovementReasonCreate); err != nil {
			return err
		}
		product, _ := led.Item(ctx, ref)
		out = invoiceResponse(rec, customerSummary(customer), itemSummary(product))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logFor(ctx).Info().Str("invoice_number", out.InvoiceNumber).Str("product_id", out.ProductID).
		Str("quantity", out.Quantity.String()).Msg("factura registrada")
	return out, nil
}

// Update reemplaza los datos de la factura y ajusta el stock del producto.
// Mismo producto: solo un aumento de cantidad se valida contra el stock actual.
// Producto distinto: se devuelve la cantidad anterior al viejo y se descuenta la nueva del nuevo.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	input, err := parseInvoice(in)
	if err != nil {
		return nil, err
	}
	var out *dto.InvoiceResponse
	err = uc.run(ctx, "update", func(repos repository.Repositories, led *StockLedger) error {
		rec, err := repos.Invoices.GetForUpdate(ctx, id)
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
		oldRef, newRef := domain.ProductRef(rec.ProductID), domain.ProductRef(input.productID)
		if err := led.Lock(ctx, oldRef, newRef); err != nil {
			return err
		}
		oldQty := rec.Quantity
		delta := input.quantity.Sub(oldQty)

		led.For(entity.MovementSourceInvoice, rec.ID, rec.InvoiceNumber)
		if oldRef == newRef {
			if delta.IsPositive() {
				if err := led.EnsureAvailable(ctx, newRef, delta); err != nil {
					return err
				}
			}
		} else {
			if err := led.AddStock(ctx, oldRef, oldQty, entity.MovementReasonReverse); err != nil {
				return err
			}
			if err := led.EnsureAvailable(ctx, newRef, input.quantity); err != nil {
				return err
			}
		}

		if err := uc.renumber(ctx, repos, numbering.PrefixInvoice, input.number, &rec.InvoiceNumber); err != nil {
			return err
		}
		rec.CustomerID = input.customerID
		rec.ProductID = input.productID
		rec.Quantity = input.quantity
		rec.UnitPrice = input.unitPrice
		rec.InvoiceDate = input.date
		rec.DueDate = input.dueDate
		rec.Status = input.status
		rec.Notes = input.notes
		rec.UpdatedAt = led.Now()
		rec.ComputeTotal()
		if err := repos.Invoices.Update(ctx, rec); err != nil {
			return numberTaken(err, "invoice_number")
		}

		led.For(entity.MovementSourceInvoice, rec.ID, rec.InvoiceNumber)
		if oldRef == newRef {
			err = led.AdjustStock(ctx, newRef, delta.Neg(), entity.MovementReasonUpdate)
		} else {
			err = led.ReduceStock(ctx, newRef, rec.Quantity, entity.MovementReasonApply)
		}
		if err != nil {
			return err
		}
		product, _ := led.Item(ctx, newRef)
		out = invoiceResponse(rec, customerSummary(customer), itemSummary(product))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logFor(ctx).Info().Str("invoice_number", out.InvoiceNumber).Msg("factura actualizada")
	return out, nil
}

// Delete devuelve la cantidad facturada al producto y elimina la factura.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	var number string
	err := uc.run(ctx, "delete", func(repos repository.Repositories, led *StockLedger) error {
		rec, err := repos.Invoices.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		number = rec.InvoiceNumber
		led.For(entity.MovementSourceInvoice, rec.ID, rec.InvoiceNumber)
		if err := led.AddStock(ctx, domain.ProductRef(rec.ProductID), rec.Quantity, entity.MovementReasonDelete); err != nil {
			return err
		}
		return repos.Invoices.Delete(ctx, rec.ID)
	})
	if err != nil {
		return err
	}
	uc.logFor(ctx).Info().Str("invoice_number", number).Msg("factura eliminada")
	return nil
}

// UpdateStatus cambia el estado de la factura. No afecta stock; cualquier estado puede pasar a cualquier otro.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, id string, in dto.InvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.reads.Invoices.UpdateStatus(ctx, id, in.Status); err != nil {
		return nil, err
	}
	uc.logFor(ctx).Info().Str("invoice_id", id).Str("status", in.Status).Msg("estado de factura actualizado")
	return uc.Get(ctx, id)
}

// Get devuelve la factura con cliente y producto.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	rec, err := uc.reads.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.reads.Customers.GetByID(ctx, rec.CustomerID)
	if err != nil {
		return nil, err
	}
	product, err := uc.reads.Products.GetByID(ctx, rec.ProductID)
	if err != nil {
		return nil, err
	}
	return invoiceResponse(rec, customerSummary(customer), productSummary(product)), nil
}

// List devuelve todas las facturas, más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]dto.InvoiceResponse, error) {
	list, err := uc.reads.Invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	lk, err := uc.loadLookups(ctx, true, false, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, *invoiceResponse(rec,
			customerSummary(lk.customers[rec.CustomerID]),
			productSummary(lk.products[rec.ProductID])))
	}
	return out, nil
}

func invoiceResponse(rec *entity.Invoice, customer *dto.CustomerSummary, product *dto.ItemSummary) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            rec.ID,
		InvoiceNumber: rec.InvoiceNumber,
		CustomerID:    rec.CustomerID,
		ProductID:     rec.ProductID,
		Quantity:      rec.Quantity,
		UnitPrice:     rec.UnitPrice,
		TotalPrice:    rec.TotalPrice,
		InvoiceDate:   formatDate(rec.InvoiceDate),
		Status:        rec.Status,
		Notes:         rec.Notes,
		Customer:      customer,
		Product:       product,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
	if rec.DueDate != nil {
		d := formatDate(*rec.DueDate)
		resp.DueDate = &d
	}
	return resp
}
