package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/stock-ledger/docs"
	appanalytics "github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	infrapdf "github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title        Stock Ledger API
// @version      1.0
// @description  Ledger de inventario, producción y despachos para manufactura pequeña.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer store.Close()

	txRunner, repos := store.TxRunner, store.Repos
	ratio := cfg.Ledger.LowStockRatio

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, repos, log)
	resolveItemUC := inventory.NewResolveItemUseCase(txRunner, registerMovementUC, ratio, log)
	productionUC := inventory.NewProductionUseCase(txRunner, registerMovementUC, resolveItemUC, log)
	shippingUC := inventory.NewShippingUseCase(txRunner, repos, registerMovementUC, log)
	stockQueryUC := inventory.NewStockQueryUseCase(repos.Items, repos.Movements)
	reportUC := appanalytics.NewReportUseCase(repos.Items, repos.Movements, repos.Recipes, repos.Runs, cfg.Ledger.WasteReportDays)

	itemUC := usecase.NewItemUseCase(txRunner, repos, registerMovementUC, ratio)
	recipeUC := usecase.NewRecipeUseCase(txRunner, repos, resolveItemUC)

	// PDF: nota de despacho
	pdfGenerator := infrapdf.NewMarotoShippingNoteGenerator(cfg.App.Name)
	shipmentPDFUC := usecase.NewShipmentPDFUseCase(repos.Shipping, repos.Items, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Stock Ledger API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:           itemUC,
		RecipeUC:         recipeUC,
		ShipmentPDF:      shipmentPDFUC,
		ResolveItem:      resolveItemUC,
		RegisterMovement: registerMovementUC,
		Production:       productionUC,
		Shipping:         shippingUC,
		StockQuery:       stockQueryUC,
		Reports:          reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
