// Package storage elige el almacén del ledger según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Store agrupa el ejecutor de transacciones, los repositorios en autocommit y el cierre del almacén.
type Store struct {
	TxRunner appinventory.TxRunner
	Repos    appinventory.Repos
	Close    func()
}

// Open abre el almacén configurado. Con postgres aplica las migraciones si DB_AUTO_MIGRATE está activo.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &Store{TxRunner: s, Repos: s.Repos(), Close: func() {}}, nil
	case config.StoreDriverPostgres, "":
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				return nil, err
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Store{
			TxRunner: postgres.NewTxRunner(pool),
			Repos:    postgres.NewRepos(pool),
			Close:    pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.App.StoreDriver)
}
