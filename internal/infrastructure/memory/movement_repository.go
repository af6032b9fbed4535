package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria (sólo inserción).
type MovementRepo struct{ b binding }

// Create agrega el movimiento; el ítem debe existir.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	return r.b.do(ctx, func(t *tables) error {
		if _, ok := t.items[m.ItemID]; !ok {
			return &domain.NotFoundError{Entity: "item", ID: m.ItemID}
		}
		t.movements = append(t.movements, m.Clone())
		return nil
	})
}

// List más recientes primero.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.b.do(ctx, func(t *tables) error {
		for i := len(t.movements) - 1; i >= 0; i-- {
			m := t.movements[i]
			if filter.ItemID != "" && m.ItemID != filter.ItemID {
				continue
			}
			if filter.Type != "" {
				if mt, _ := entity.ParseMovementType(string(m.Type)); mt != filter.Type {
					continue
				}
			}
			out = append(out, m.Clone())
		}
		return nil
	})
	return paginate(out, filter.Limit, filter.Offset), err
}

// ListByItem en orden de registro.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.b.do(ctx, func(t *tables) error {
		for _, m := range t.movements {
			if m.ItemID == itemID {
				out = append(out, m.Clone())
			}
		}
		return nil
	})
	return out, err
}

// LatestInPrice precio del IN más reciente; nil si ese IN no tiene precio.
func (r *MovementRepo) LatestInPrice(ctx context.Context, itemID string) (*decimal.Decimal, error) {
	movs, err := r.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return inventory.LatestInPrice(movs), nil
}

// CountByItem cantidad de movimientos del ítem.
func (r *MovementRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	n := 0
	err := r.b.do(ctx, func(t *tables) error {
		for _, m := range t.movements {
			if m.ItemID == itemID {
				n++
			}
		}
		return nil
	})
	return n, err
}
