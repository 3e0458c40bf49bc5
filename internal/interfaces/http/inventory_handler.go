package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/superindo-api/internal/application/dto"
	"github.com/jhoicas/superindo-api/internal/application/ledger"
)

// IncomingHandler maneja las entradas de materia prima.
type IncomingHandler struct {
	uc *ledger.IncomingUseCase
}

// NewIncomingHandler construye el handler.
func NewIncomingHandler(uc *ledger.IncomingUseCase) *IncomingHandler {
	return &IncomingHandler{uc: uc}
}

const incomingNotFound = "Incoming record not found"

// Create POST /api/v1/incoming. Suma la cantidad al stock del material.
func (h *IncomingHandler) Create(c *fiber.Ctx) error {
	var in dto.IncomingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, incomingNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/v1/incoming
func (h *IncomingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err, incomingNotFound)
	}
	return c.JSON(out)
}

// GetByID GET /api/v1/incoming/:id
func (h *IncomingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, incomingNotFound)
	}
	return c.JSON(out)
}

// Update PUT /api/v1/incoming/:id
func (h *IncomingHandler) Update(c *fiber.Ctx) error {
	var in dto.IncomingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, incomingNotFound)
	}
	return c.JSON(out)
}

// Delete DELETE /api/v1/incoming/:id (409 si el material ya se consumió).
func (h *IncomingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, incomingNotFound)
	}
	return deleted(c, "Incoming record")
}

// ProductionHandler maneja las órdenes de producción.
type ProductionHandler struct {
	uc *ledger.ProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *ledger.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

const productionNotFound = "Production record not found"

// Create POST /api/v1/productions
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, productionNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/v1/productions
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err, productionNotFound)
	}
	return c.JSON(out)
}

// GetByID GET /api/v1/productions/:id
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, productionNotFound)
	}
	return c.JSON(out)
}

// Update PUT /api/v1/productions/:id
func (h *ProductionHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, productionNotFound)
	}
	return c.JSON(out)
}

// Delete DELETE /api/v1/productions/:id
func (h *ProductionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, productionNotFound)
	}
	return deleted(c, "Production record")
}
