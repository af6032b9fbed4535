// Package memory implementa los repositorios del libro de stock en memoria. Se usa como
// driver de desarrollo (STORE_DRIVER=memory) y como doble de pruebas de los casos de uso.
//
// Las transacciones se serializan con el mutex del Store: Run trabaja sobre una copia de
// las tablas y la publica sólo si fn no retorna error.
package memory

import (
	"context"
	"sync"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

var _ appinventory.TxRunner = (*Store)(nil)

type tables struct {
	items     map[string]*entity.Item
	itemOrder []string
	movements []*entity.Movement
	recipes   map[string]*entity.RecipeLine
	recOrder  []string
	runs      []*entity.ProductionRun
	docs      map[string]*entity.ShippingDocument
	docOrder  []string
}

func newTables() *tables {
	return &tables{
		items:   make(map[string]*entity.Item),
		recipes: make(map[string]*entity.RecipeLine),
		docs:    make(map[string]*entity.ShippingDocument),
	}
}

// clone copia las tablas. Las filas se tratan como inmutables: toda escritura reemplaza
// el puntero por una copia nueva, así que basta con copiar mapas y slices.
func (t *tables) clone() *tables {
	c := &tables{
		items:     make(map[string]*entity.Item, len(t.items)),
		itemOrder: append([]string(nil), t.itemOrder...),
		movements: append([]*entity.Movement(nil), t.movements...),
		recipes:   make(map[string]*entity.RecipeLine, len(t.recipes)),
		recOrder:  append([]string(nil), t.recOrder...),
		runs:      append([]*entity.ProductionRun(nil), t.runs...),
		docs:      make(map[string]*entity.ShippingDocument, len(t.docs)),
		docOrder:  append([]string(nil), t.docOrder...),
	}
	for k, v := range t.items {
		c.items[k] = v
	}
	for k, v := range t.recipes {
		c.recipes[k] = v
	}
	for k, v := range t.docs {
		c.docs[k] = v
	}
	return c
}

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu sync.Mutex
	t  *tables
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{t: newTables()}
}

// Repos devuelve repositorios en modo autocommit: cada llamada toma el lock del Store.
func (s *Store) Repos() appinventory.Repos {
	return s.bind(nil)
}

func (s *Store) bind(tx *tables) appinventory.Repos {
	b := binding{store: s, tx: tx}
	return appinventory.Repos{
		Items:     &ItemRepo{b},
		Movements: &MovementRepo{b},
		Recipes:   &RecipeRepo{b},
		Runs:      &ProductionRunRepo{b},
		Shipping:  &ShippingRepo{b},
	}
}

// Run ejecuta fn en exclusión mutua sobre una copia de las tablas y la publica si fn
// termina sin error. Los repositorios recibidos sólo son válidos dentro de fn.
func (s *Store) Run(ctx context.Context, fn func(tx appinventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.t.clone()
	if err := fn(s.bind(snapshot)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.t = snapshot
	return nil
}

// binding resuelve sobre qué tablas opera un repositorio.
type binding struct {
	store *Store
	tx    *tables
}

// do ejecuta fn sobre las tablas de la tx o, en autocommit, sobre las del Store con su lock.
func (b binding) do(ctx context.Context, fn func(t *tables) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return fn(b.store.t)
}
