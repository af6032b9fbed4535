// seed carga un catálogo XML de ítems y recetas en el almacén configurado.
//
// Uso: go run ./cmd/seed [ruta/catalogo.xml]
// Por defecto lee cmd/seed/catalogo.xml. La carga es repetible: los duplicados se omiten.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/catalog"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func main() {
	path := "cmd/seed/catalogo.xml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name, Output: os.Stderr})

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir catálogo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cat, err := catalog.Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacén: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ratio := cfg.Ledger.LowStockRatio
	movements := inventory.NewRegisterMovementUseCase(store.TxRunner, store.Repos, log)
	resolver := inventory.NewResolveItemUseCase(store.TxRunner, movements, ratio, log)
	items := usecase.NewItemUseCase(store.TxRunner, store.Repos, movements, ratio)
	recipes := usecase.NewRecipeUseCase(store.TxRunner, store.Repos, resolver)

	res, err := catalog.Apply(ctx, cat, items, recipes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar catálogo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Catálogo %s: %d ítems creados (%d existentes), %d líneas de receta creadas (%d existentes)\n",
		path, res.ItemsCreated, res.ItemsSkipped, res.RecipesCreated, res.RecipesSkipped)
}
