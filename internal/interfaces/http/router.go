package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/alerts"
	appanalytics "github.com/jhoicas/Bodega-api/internal/application/analytics"
	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/reports"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Engine        *inventory.MovementEngine
	ItemUC        *usecase.ItemUseCase
	ReferenceUC   *usecase.ReferenceUseCase
	Replenishment *inventory.ReplenishmentUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	Alerts        *alerts.Aggregator
	Reports       *reports.ReportUseCase
	// Ping verifica el almacenamiento para /health; nil omite la verificación.
	Ping        func(ctx context.Context) error
	ServiceName string
	JWTSecret   string
}

// referenceRoutes prefijo de ruta por tipo de referencia.
var referenceRoutes = map[string]entity.ReferenceKind{
	"/locations":  entity.ReferenceLocation,
	"/suppliers":  entity.ReferenceSupplier,
	"/customers":  entity.ReferenceCustomer,
	"/categories": entity.ReferenceCategory,
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Alerts, deps.Reports)
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)
	protected.Get("/alerts", dashboardHandler.GetAlerts)
	protected.Get("/reports/stock.pdf", dashboardHandler.StockReport)

	// Movimientos: export.xlsx va antes de /:id
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Engine, deps.Reports)
	movements.Post("/", movementHandler.Post)
	movements.Get("/", movementHandler.List)
	movements.Get("/export.xlsx", movementHandler.Export)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", adminOnly, movementHandler.Update)
	movements.Delete("/:id", adminOnly, movementHandler.Delete)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.Engine)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Delete)
	items.Post("/:id/correction", adminOnly, itemHandler.Correct)

	for prefix, kind := range referenceRoutes {
		group := protected.Group(prefix)
		h := NewReferenceHandler(deps.ReferenceUC, kind)
		group.Post("/", h.Create)
		group.Get("/", h.List)
		group.Get("/:id", h.GetByID)
	}

	reorders := protected.Group("/reorders")
	reorderHandler := NewReorderHandler(deps.Replenishment)
	reorders.Post("/", reorderHandler.Create)
	reorders.Get("/", reorderHandler.List)
	reorders.Get("/suggestions", reorderHandler.Suggestions)
	reorders.Get("/:id", reorderHandler.GetByID)
	reorders.Patch("/:id/status", reorderHandler.UpdateStatus)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			if err := deps.Ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": deps.ServiceName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
