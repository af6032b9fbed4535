package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC           *usecase.ItemUseCase
	RecipeUC         *usecase.RecipeUseCase
	ShipmentPDF      *usecase.ShipmentPDFUseCase
	ResolveItem      *inventory.ResolveItemUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Production       *inventory.ProductionUseCase
	Shipping         *inventory.ShippingUseCase
	StockQuery       *inventory.StockQueryUseCase
	Reports          *appanalytics.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Items; las rutas fijas van antes de /:id
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.ResolveItem, deps.StockQuery, deps.Reports)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Post("/resolve", itemHandler.Resolve)
	items.Get("/low-stock", itemHandler.LowStock)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Get("/:id/stock", itemHandler.Stock)
	items.Get("/:id/stock/verify", itemHandler.VerifyStock)

	// Movements
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)

	// Production
	productionHandler := NewProductionHandler(deps.Production)
	api.Post("/production-runs", productionHandler.Create)

	// Recipes
	recipes := api.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Delete("/:id", recipeHandler.Delete)

	// Shipments
	shipments := api.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.Shipping, deps.ShipmentPDF)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Get("/:id/pdf", shipmentHandler.PDF)

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/waste", reportHandler.Waste)
	reports.Get("/profitability", reportHandler.Profitability)
	reports.Get("/dashboard", reportHandler.Dashboard)
}
