package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Adjust        *inventory.AdjustStockUseCase
	History       *inventory.HistoryUseCase
	Products      *inventory.ProductStockUseCase
	Status        *inventory.StockStatusUseCase
	AlertSettings *inventory.AlertSettingsUseCase
	Audit         *inventory.AuditUseCase
	JWTSecret     string
	Logger        *logger.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	writers := RequireRole(RoleAdmin, RoleBodeguero)
	admins := RequireRole(RoleAdmin)
	readers := RequireRole(RoleAdmin, RoleBodeguero, RoleVendedor)

	protected := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Libro de stock
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Adjust, deps.History, deps.Status, log)
	stock.Post("/adjustments", writers, stockHandler.Adjust)
	stock.Post("/adjustments/batch", writers, stockHandler.AdjustBatch)
	stock.Post("/entries/:id/reverse", admins, stockHandler.Reverse)
	stock.Get("/entries/:id", readers, stockHandler.GetEntry)
	stock.Get("/history", readers, stockHandler.History)
	stock.Get("/causes", readers, stockHandler.Causes)
	stock.Get("/units", readers, stockHandler.Units)
	stock.Get("/alerts", readers, stockHandler.Alerts)

	// Registro de stock por producto
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Products, deps.Status, deps.Audit, log)
	products.Post("/", writers, productHandler.Register)
	products.Get("/", readers, productHandler.List)
	products.Get("/:id", readers, productHandler.GetByID)
	products.Put("/:id/policy", admins, productHandler.UpdatePolicy)
	products.Get("/:id/status", readers, productHandler.Status)
	products.Get("/:id/verify", readers, productHandler.Verify)

	// Umbrales de alerta
	settings := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.AlertSettings, log)
	settings.Get("/alerts", readers, settingsHandler.GetAlerts)
	settings.Put("/alerts", admins, settingsHandler.UpdateAlerts)
}
