package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// StockSource origen de la lectura de stock.
type StockSource string

const (
	SourceMaterialized StockSource = "materialized" // items.current_stock
	SourceLedger       StockSource = "ledger"       // Σ IN − Σ OUT del libro
)

// ParseStockSource acepta vacío como materialized.
func ParseStockSource(s string) (StockSource, error) {
	switch StockSource(s) {
	case "", SourceMaterialized:
		return SourceMaterialized, nil
	case SourceLedger:
		return SourceLedger, nil
	}
	return "", domain.NewValidationError("source", "oneof", "source debe ser materialized o ledger")
}

// StockCheck compara el stock materializado con el plegado del libro.
type StockCheck struct {
	ItemID       string
	ItemName     string
	Materialized decimal.Decimal
	Ledger       decimal.Decimal
	Consistent   bool
}

// StockQueryUseCase consultas de sólo lectura sobre el stock.
type StockQueryUseCase struct {
	items     repository.ItemRepository
	movements repository.MovementRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(items repository.ItemRepository, movements repository.MovementRepository) *StockQueryUseCase {
	return &StockQueryUseCase{items: items, movements: movements}
}

// QueryStock devuelve el stock del ítem según la fuente indicada. No tiene efectos secundarios.
func (uc *StockQueryUseCase) QueryStock(ctx context.Context, itemID string, source StockSource) (decimal.Decimal, error) {
	item, err := uc.getItem(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if source == SourceLedger {
		return uc.ledgerStock(ctx, item.ID)
	}
	return item.CurrentStock, nil
}

// VerifyStock devuelve ambos valores y si coinciden.
func (uc *StockQueryUseCase) VerifyStock(ctx context.Context, itemID string) (*StockCheck, error) {
	item, err := uc.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return uc.check(ctx, item)
}

// VerifyAll recorre todos los ítems.
func (uc *StockQueryUseCase) VerifyAll(ctx context.Context) ([]StockCheck, error) {
	items, err := uc.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]StockCheck, 0, len(items))
	for _, it := range items {
		c, err := uc.check(ctx, it)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func (uc *StockQueryUseCase) check(ctx context.Context, item *entity.Item) (*StockCheck, error) {
	ledger, err := uc.ledgerStock(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return &StockCheck{
		ItemID:       item.ID,
		ItemName:     item.Name,
		Materialized: item.CurrentStock,
		Ledger:       ledger,
		Consistent:   ledger.Equal(item.CurrentStock),
	}, nil
}

func (uc *StockQueryUseCase) ledgerStock(ctx context.Context, itemID string) (decimal.Decimal, error) {
	movs, err := uc.movements.ListByItem(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.FoldMovements(movs), nil
}

func (uc *StockQueryUseCase) getItem(ctx context.Context, itemID string) (*entity.Item, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.NotFoundError{Entity: "item", ID: itemID}
	}
	return item, nil
}
