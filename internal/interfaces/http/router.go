package http

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/superindo-api/internal/application/analytics"
	"github.com/jhoicas/superindo-api/internal/application/inventory"
	"github.com/jhoicas/superindo-api/internal/application/ledger"
	"github.com/jhoicas/superindo-api/internal/application/usecase"
	"github.com/jhoicas/superindo-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC   *usecase.CustomerUseCase
	MaterialUC   *usecase.MaterialUseCase
	ProductUC    *usecase.ProductUseCase
	IncomingUC   *ledger.IncomingUseCase
	ProductionUC *ledger.ProductionUseCase
	InvoiceUC    *ledger.InvoiceUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	Replenish    *inventory.ReplenishmentUseCase
}

// NewApp crea la app Fiber con recover, log de peticiones y /health.
func NewApp(name string, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"code": "ERROR", "message": err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	return app
}

// Docs sirve la UI de Swagger en /docs a partir de un swagger.json estático.
func Docs(app *fiber.App, file string) error {
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("swagger file: %w", err)
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: file,
		Path:     "docs",
		Title:    "Superindo API",
	}))
	return nil
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	registerItem(api.Group("/materials"), NewMaterialHandler(deps.MaterialUC))
	registerItem(api.Group("/products"), NewProductHandler(deps.ProductUC))

	incoming := api.Group("/incoming")
	incomingHandler := NewIncomingHandler(deps.IncomingUC)
	incoming.Get("/", incomingHandler.List)
	incoming.Post("/", incomingHandler.Create)
	incoming.Get("/:id", incomingHandler.GetByID)
	incoming.Put("/:id", incomingHandler.Update)
	incoming.Delete("/:id", incomingHandler.Delete)

	productions := api.Group("/productions")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	productions.Get("/", productionHandler.List)
	productions.Post("/", productionHandler.Create)
	productions.Get("/:id", productionHandler.GetByID)
	productions.Put("/:id", productionHandler.Update)
	productions.Delete("/:id", productionHandler.Delete)

	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Delete("/:id", invoiceHandler.Delete)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Replenish)
	api.Get("/dashboard/stats", dashboardHandler.GetStats)
	api.Get("/activities/recent", dashboardHandler.RecentActivities)
	api.Get("/reports/stock", dashboardHandler.GetStockReport)
	api.Get("/reports/replenishment", dashboardHandler.GetReplenishment)
	api.Get("/stock/:kind/:id/movements", dashboardHandler.ListMovements)
}

func registerItem(g fiber.Router, h *ItemHandler) {
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}
