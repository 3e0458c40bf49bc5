package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/superindo-api/internal/application/dto"
	"github.com/jhoicas/superindo-api/internal/application/ledger"
)

// InvoiceHandler maneja las facturas de venta.
type InvoiceHandler struct {
	uc *ledger.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *ledger.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

const invoiceNotFound = "Invoice not found"

// Create POST /api/v1/invoices. Descuenta la cantidad del stock del producto.
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, invoiceNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/v1/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err, invoiceNotFound)
	}
	return c.JSON(out)
}

// GetByID GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, invoiceNotFound)
	}
	return c.JSON(out)
}

// Update PUT /api/v1/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, invoiceNotFound)
	}
	return c.JSON(out)
}

// UpdateStatus PATCH /api/v1/invoices/:id/status. Sin efecto en stock.
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.InvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, invoiceNotFound)
	}
	return c.JSON(out)
}

// Delete DELETE /api/v1/invoices/:id. Devuelve la cantidad al stock del producto.
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, invoiceNotFound)
	}
	return deleted(c, "Invoice")
}
