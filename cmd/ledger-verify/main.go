// ledger-verify compara el stock materializado de cada ítem con el plegado de sus movimientos.
//
// Uso: go run ./cmd/ledger-verify [--item ID] [--json]
// Sale con código 2 si algún ítem es inconsistente.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

const exitInconsistent = 2

func main() {
	app := &cli.App{
		Name:  "ledger-verify",
		Usage: "verifica que current_stock coincida con Σ IN − Σ OUT del libro",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "item", Usage: "verificar sólo este ítem"},
			&cli.BoolFlag{Name: "json", Usage: "salida JSON"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name, Output: os.Stderr})

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	stock := inventory.NewStockQueryUseCase(store.Repos.Items, store.Repos.Movements)
	var checks []inventory.StockCheck
	if id := c.String("item"); id != "" {
		one, err := stock.VerifyStock(ctx, id)
		if err != nil {
			return err
		}
		checks = append(checks, *one)
	} else {
		if checks, err = stock.VerifyAll(ctx); err != nil {
			return err
		}
	}

	bad := 0
	for _, ch := range checks {
		if !ch.Consistent {
			bad++
		}
	}

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(checks); err != nil {
			return err
		}
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ITEM\tNOMBRE\tMATERIALIZADO\tLIBRO\tOK")
		for _, ch := range checks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", ch.ItemID, ch.ItemName, ch.Materialized, ch.Ledger, ch.Consistent)
		}
		w.Flush()
	}

	if bad > 0 {
		log.Error().Int("inconsistentes", bad).Int("total", len(checks)).Msg("ledger inconsistente")
		return cli.Exit(fmt.Sprintf("%d ítems inconsistentes", bad), exitInconsistent)
	}
	log.Info().Int("total", len(checks)).Msg("ledger consistente")
	return nil
}
