package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// MovementFilter filtros de listado del libro de movimientos.
type MovementFilter struct {
	ItemID string
	Type   entity.MovementType
	Limit  int
	Offset int
}

// MovementRepository define el puerto de persistencia para el libro de movimientos (sólo inserción).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// List devuelve los movimientos más recientes primero.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	// ListByItem devuelve todos los movimientos del ítem en orden de registro.
	ListByItem(ctx context.Context, itemID string) ([]*entity.Movement, error)
	// LatestInPrice precio del IN más reciente; nil si no hay IN o si ese IN no tiene precio.
	LatestInPrice(ctx context.Context, itemID string) (*decimal.Decimal, error)
	CountByItem(ctx context.Context, itemID string) (int, error)
}
