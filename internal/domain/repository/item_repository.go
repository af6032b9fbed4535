package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ItemFilter filtros de listado de ítems.
type ItemFilter struct {
	Category entity.Category // vacío = todas
	Limit    int
	Offset   int
}

// ItemRepository define el puerto de persistencia para Item (DIP).
// Los Get retornan (nil, nil) cuando el ítem no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// CreateIfAbsent inserta salvo que ya exista un ítem con la misma (categoría, nombre).
	// Retorna false si otro escritor lo creó antes.
	CreateIfAbsent(ctx context.Context, item *entity.Item) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error)
	GetByName(ctx context.Context, category entity.Category, name string) (*entity.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, error)
	ListLowStock(ctx context.Context) ([]*entity.Item, error)
	// Update modifica metadatos; nunca CurrentStock.
	Update(ctx context.Context, item *entity.Item) error
	// UpdateStock escribe el stock materializado si la versión coincide (CAS).
	// Retorna domain.ErrConflict si otro escritor cambió la fila.
	UpdateStock(ctx context.Context, id string, quantity decimal.Decimal, expectedVersion int64) error
	Delete(ctx context.Context, id string) error
}
