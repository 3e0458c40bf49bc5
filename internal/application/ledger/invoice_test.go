package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/superindo-api/internal/application/dto"
	"github.com/jhoicas/superindo-api/internal/application/ledger"
	"github.com/jhoicas/superindo-api/internal/domain"
	"github.com/jhoicas/superindo-api/internal/domain/entity"
)

func (f *fixture) invoiceReq(qty, price string) dto.InvoiceRequest {
	return dto.InvoiceRequest{
		CustomerID:  f.customerID,
		ProductID:   f.productID,
		Quantity:    dec(qty),
		UnitPrice:   dec(price),
		InvoiceDate: "2025-07-21",
	}
}

func TestInvoice_CreateDescuentaProducto(t *testing.T) {
	f := newFixture(t, "0", "100")
	uc := ledger.NewInvoiceUseCase(f.deps())

	out, err := uc.Create(context.Background(), f.invoiceReq("25", "3.20"))
	require.NoError(t, err)

	assert.Equal(t, "INV202507210001", out.InvoiceNumber)
	assert.Equal(t, entity.InvoiceStatusDraft, out.Status)
	assertDecimal(t, "80", out.TotalPrice)
	assertDecimal(t, "75", f.stock(t, domain.ProductRef(f.productID)))
	assert.Nil(t, out.DueDate)
}

func TestInvoice_ProductoInsuficiente(t *testing.T) {
	f := newFixture(t, "0", "10")
	uc := ledger.NewInvoiceUseCase(f.deps())

	_, err := uc.Create(context.Background(), f.invoiceReq("20", "1"))
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "Insufficient product stock. Available: 10.00, Required: 20.00", err.Error())
	assertDecimal(t, "10", f.stock(t, domain.ProductRef(f.productID)))
}

func TestInvoice_ValidaFechasYEstado(t *testing.T) {
	f := newFixture(t, "0", "10")
	uc := ledger.NewInvoiceUseCase(f.deps())

	req := f.invoiceReq("1", "1")
	req.DueDate = "2025-07-20"
	_, err := uc.Create(context.Background(), req)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "due_date")

	req = f.invoiceReq("1", "1")
	req.Status = "void"
	_, err = uc.Create(context.Background(), req)
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "status")

	req = f.invoiceReq("1", "1")
	req.DueDate = "2025-07-21"
	req.Status = entity.InvoiceStatusSent
	out, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out.DueDate)
	assert.Equal(t, "2025-07-21", *out.DueDate)
	assert.Equal(t, entity.InvoiceStatusSent, out.Status)
}

func TestInvoice_UpdateMismoProducto(t *testing.T) {
	f := newFixture(t, "0", "100")
	uc := ledger.NewInvoiceUseCase(f.deps())
	ctx := context.Background()
	ref := domain.ProductRef(f.productID)

	created, err := uc.Create(ctx, f.invoiceReq("25", "1"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, f.invoiceReq("40", "1"))
	require.NoError(t, err)
	assertDecimal(t, "60", f.stock(t, ref))

	_, err = uc.Update(ctx, created.ID, f.invoiceReq("10", "1"))
	require.NoError(t, err)
	assertDecimal(t, "90", f.stock(t, ref))

	// Aumento de 10 a 101 requiere 91 adicionales y solo hay 90.
	_, err = uc.Update(ctx, created.ID, f.invoiceReq("101", "1"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assertDecimal(t, "90", f.stock(t, ref))

	_, err = uc.Update(ctx, created.ID, f.invoiceReq("100", "1"))
	require.NoError(t, err)
	assertDecimal(t, "0", f.stock(t, ref))
}

func TestInvoice_UpdateCambiaDeProducto(t *testing.T) {
	f := newFixture(t, "0", "100")
	uc := ledger.NewInvoiceUseCase(f.deps())
	ctx := context.Background()
	other := f.addProduct(t, "Roti Gandum", "PRD-003", "30")

	created, err := uc.Create(ctx, f.invoiceReq("25", "1"))
	require.NoError(t, err)

	req := f.invoiceReq("31", "1")
	req.ProductID = other
	_, err = uc.Update(ctx, created.ID, req)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assertDecimal(t, "75", f.stock(t, domain.ProductRef(f.productID)))
	assertDecimal(t, "30", f.stock(t, domain.ProductRef(other)))

	req.Quantity = dec("30")
	_, err = uc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assertDecimal(t, "100", f.stock(t, domain.ProductRef(f.productID)))
	assertDecimal(t, "0", f.stock(t, domain.ProductRef(other)))
}

func TestInvoice_DeleteDevuelveProducto(t *testing.T) {
	f := newFixture(t, "0", "100")
	uc := ledger.NewInvoiceUseCase(f.deps())
	ctx := context.Background()

	created, err := uc.Create(ctx, f.invoiceReq("25", "1"))
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, created.ID))
	assertDecimal(t, "100", f.stock(t, domain.ProductRef(f.productID)))
}

func TestInvoice_UpdateStatusSinEfectoEnStock(t *testing.T) {
	f := newFixture(t, "0", "100")
	uc := ledger.NewInvoiceUseCase(f.deps())
	ctx := context.Background()

	created, err := uc.Create(ctx, f.invoiceReq("25", "1"))
	require.NoError(t, err)

	for _, status := range []string{entity.InvoiceStatusPaid, entity.InvoiceStatusDraft, entity.InvoiceStatusCancelled} {
		out, err := uc.UpdateStatus(ctx, created.ID, dto.InvoiceStatusRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, out.Status)
	}
	assertDecimal(t, "75", f.stock(t, domain.ProductRef(f.productID)))

	_, err = uc.UpdateStatus(ctx, created.ID, dto.InvoiceStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateStatus(ctx, "6f1c1a52-7d0e-4c7b-9a61-0d6f0e6b1a11", dto.InvoiceStatusRequest{Status: entity.InvoiceStatusPaid})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransiciones_CrearYBorrarRestauraStock(t *testing.T) {
	f := newFixture(t, "100", "50")
	ctx := context.Background()
	incomings := ledger.NewIncomingUseCase(f.deps())
	productions := ledger.NewProductionUseCase(f.deps())
	invoices := ledger.NewInvoiceUseCase(f.deps())

	in, err := incomings.Create(ctx, f.incomingReq("12.5", "1"))
	require.NoError(t, err)
	pr, err := productions.Create(ctx, f.productionReq("30", "20"))
	require.NoError(t, err)
	inv, err := invoices.Create(ctx, f.invoiceReq("7.25", "1"))
	require.NoError(t, err)

	require.NoError(t, invoices.Delete(ctx, inv.ID))
	require.NoError(t, productions.Delete(ctx, pr.ID))
	require.NoError(t, incomings.Delete(ctx, in.ID))

	assertDecimal(t, "100", f.stock(t, domain.MaterialRef(f.materialID)))
	assertDecimal(t, "50", f.stock(t, domain.ProductRef(f.productID)))
	// 1 entrada + 2 producción + 1 factura, y sus reversas.
	assert.Len(t, f.store.Movements(), 8)
}
