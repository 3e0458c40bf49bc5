package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/superindo-api/internal/application/analytics"
	"github.com/jhoicas/superindo-api/internal/application/inventory"
	"github.com/jhoicas/superindo-api/internal/domain"
)

// DashboardHandler maneja los endpoints de lectura: dashboard, reporte de stock e historial.
type DashboardHandler struct {
	uc            *appanalytics.DashboardUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, replenishment *inventory.ReplenishmentUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, replenishment: replenishment}
}

// GetStats devuelve conteos de maestros, transacciones de hoy, totales y stock bajo.
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(stats)
}

// GetStockReport devuelve el stock de todos los materiales y productos.
// GET /api/v1/reports/stock
func (h *DashboardHandler) GetStockReport(c *fiber.Ctx) error {
	report, err := h.uc.GetStockReport(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(report)
}

// ListMovements devuelve el historial de stock de un artículo.
// GET /api/v1/stock/:kind/:id/movements?limit=N   (kind = material | product)
func (h *DashboardHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.uc.ListMovements(c.UserContext(), domain.ItemKind(c.Params("kind")), c.Params("id"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// RecentActivities devuelve las últimas transacciones de todos los tipos.
// GET /api/v1/activities/recent
func (h *DashboardHandler) RecentActivities(c *fiber.Ctx) error {
	out, err := h.uc.RecentActivities(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// GetReplenishment devuelve los artículos bajo el umbral con la cantidad sugerida a reponer.
// GET /api/v1/reports/replenishment
func (h *DashboardHandler) GetReplenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}
