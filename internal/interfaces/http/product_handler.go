package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/superindo-api/internal/application/dto"
)

// itemUseCase es lo común entre MaterialUseCase y ProductUseCase.
type itemUseCase interface {
	Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ItemResponse, error)
	List(ctx context.Context) ([]dto.ItemResponse, error)
	Update(ctx context.Context, id string, in dto.ItemRequest) (*dto.ItemResponse, error)
	Delete(ctx context.Context, id string) error
}

// ItemHandler maneja las peticiones HTTP de materiales o productos (mismo contrato, distinto caso de uso).
type ItemHandler struct {
	uc    itemUseCase
	label string // "Material" / "Product"
}

// NewMaterialHandler construye el handler de materias primas.
func NewMaterialHandler(uc itemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc, label: "Material"}
}

// NewProductHandler construye el handler de productos terminados.
func NewProductHandler(uc itemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc, label: "Product"}
}

func (h *ItemHandler) notFound() string { return h.label + " not found" }

// Create POST /api/v1/{materials|products}. stock_quantity inicial queda como movimiento de apertura.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, h.notFound())
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/v1/{materials|products}
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err, h.notFound())
	}
	return c.JSON(out)
}

// GetByID GET /api/v1/{materials|products}/:id
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, h.notFound())
	}
	return c.JSON(out)
}

// Update PUT /api/v1/{materials|products}/:id. No modifica el stock.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, h.notFound())
	}
	return c.JSON(out)
}

// Delete DELETE /api/v1/{materials|products}/:id
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, h.notFound())
	}
	return deleted(c, h.label)
}
