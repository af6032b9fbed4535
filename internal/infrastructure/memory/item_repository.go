package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo repositorio de ítems en memoria.
type ItemRepo struct{ b binding }

func (t *tables) itemByName(category entity.Category, name string) *entity.Item {
	for _, id := range t.itemOrder {
		it := t.items[id]
		if it.Category == category && it.Name == name {
			return it
		}
	}
	return nil
}

// Create inserta el ítem; domain.ErrDuplicate si el ID o (categoría, nombre) ya existen.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	return r.b.do(ctx, func(t *tables) error {
		if _, ok := t.items[item.ID]; ok {
			return domain.ErrDuplicate
		}
		if t.itemByName(item.Category, item.Name) != nil {
			return domain.ErrDuplicate
		}
		t.items[item.ID] = item.Clone()
		t.itemOrder = append(t.itemOrder, item.ID)
		return nil
	})
}

// CreateIfAbsent inserta salvo que ya exista (categoría, nombre).
func (r *ItemRepo) CreateIfAbsent(ctx context.Context, item *entity.Item) (bool, error) {
	err := r.Create(ctx, item)
	if errors.Is(err, domain.ErrDuplicate) {
		return false, nil
	}
	return err == nil, err
}

// GetByID devuelve una copia del ítem o nil.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.b.do(ctx, func(t *tables) error {
		out = t.items[id].Clone()
		return nil
	})
	return out, err
}

// GetByIDForUpdate equivale a GetByID: las transacciones en memoria ya son exclusivas.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

// GetByName busca por nombre exacto dentro de la categoría.
func (r *ItemRepo) GetByName(ctx context.Context, category entity.Category, name string) (*entity.Item, error) {
	var out *entity.Item
	err := r.b.do(ctx, func(t *tables) error {
		out = t.itemByName(category, name).Clone()
		return nil
	})
	return out, err
}

// List devuelve los ítems más recientes primero. Limit 0 = sin límite.
func (r *ItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.b.do(ctx, func(t *tables) error {
		for i := len(t.itemOrder) - 1; i >= 0; i-- {
			it := t.items[t.itemOrder[i]]
			if filter.Category != "" && it.Category != filter.Category {
				continue
			}
			out = append(out, it.Clone())
		}
		return nil
	})
	return paginate(out, filter.Limit, filter.Offset), err
}

// ListLowStock ítems con stock en o bajo el umbral, mayor déficit primero.
func (r *ItemRepo) ListLowStock(ctx context.Context) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.b.do(ctx, func(t *tables) error {
		for _, id := range t.itemOrder {
			if it := t.items[id]; it.IsLowStock() {
				out = append(out, it.Clone())
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i].LowStockThreshold.Sub(out[i].CurrentStock)
		dj := out[j].LowStockThreshold.Sub(out[j].CurrentStock)
		return di.GreaterThan(dj)
	})
	return out, err
}

// Update reemplaza los metadatos; conserva stock y versión.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	return r.b.do(ctx, func(t *tables) error {
		cur, ok := t.items[item.ID]
		if !ok {
			return &domain.NotFoundError{Entity: "item", ID: item.ID}
		}
		if other := t.itemByName(item.Category, item.Name); other != nil && other.ID != item.ID {
			return domain.ErrDuplicate
		}
		next := item.Clone()
		next.CurrentStock = cur.CurrentStock
		next.Version = cur.Version
		next.CreatedAt = cur.CreatedAt
		t.items[item.ID] = next
		return nil
	})
}

// UpdateStock escribe el stock si la versión coincide.
func (r *ItemRepo) UpdateStock(ctx context.Context, id string, quantity decimal.Decimal, expectedVersion int64) error {
	return r.b.do(ctx, func(t *tables) error {
		cur, ok := t.items[id]
		if !ok {
			return &domain.NotFoundError{Entity: "item", ID: id}
		}
		if cur.Version != expectedVersion {
			return domain.ErrConflict
		}
		if quantity.IsNegative() {
			return &domain.PersistenceError{Op: "update stock", Err: errNegativeStock}
		}
		next := cur.Clone()
		next.CurrentStock = quantity
		next.Version++
		t.items[id] = next
		return nil
	})
}

// Delete elimina el ítem.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	return r.b.do(ctx, func(t *tables) error {
		if _, ok := t.items[id]; !ok {
			return &domain.NotFoundError{Entity: "item", ID: id}
		}
		delete(t.items, id)
		t.itemOrder = removeID(t.itemOrder, id)
		return nil
	})
}
