package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Repos agrupa los repositorios del libro de stock. Fuera de una transacción cada
// llamada es atómica por sí sola; dentro de TxRunner.Run todas comparten la misma tx.
type Repos struct {
	Items     repository.ItemRepository
	Movements repository.MovementRepository
	Recipes   repository.RecipeRepository
	Runs      repository.ProductionRunRepository
	Shipping  repository.ShippingRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn retorna error se hace Rollback y ninguna escritura queda visible; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Repos) error) error
}
