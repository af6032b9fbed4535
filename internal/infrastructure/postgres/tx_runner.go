package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// NewRepos construye todos los repositorios sobre un Querier (pool o tx).
func NewRepos(q Querier) inventory.Repos {
	return inventory.Repos{
		Items:     NewItemRepository(q),
		Movements: NewMovementRepository(q),
		Recipes:   NewRecipeRepository(q),
		Runs:      NewProductionRunRepository(q),
		Shipping:  NewShippingRepository(q),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx inventory.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return persistErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return persistErr("commit transaction", err)
	}
	return nil
}
