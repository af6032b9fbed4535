package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

type harness struct {
	store      *memory.Store
	repos      appinventory.Repos
	movements  *appinventory.RegisterMovementUseCase
	resolver   *appinventory.ResolveItemUseCase
	production *appinventory.ProductionUseCase
	shipping   *appinventory.ShippingUseCase
	stock      *appinventory.StockQueryUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithRunner(t, nil)
}

// newHarnessWithRunner permite envolver el TxRunner del store (p. ej. para inyectar fallos).
func newHarnessWithRunner(t *testing.T, wrap func(appinventory.TxRunner) appinventory.TxRunner) *harness {
	t.Helper()
	store := memory.NewStore()
	var runner appinventory.TxRunner = store
	if wrap != nil {
		runner = wrap(store)
	}
	repos := store.Repos()
	log := logger.Nop()
	movements := appinventory.NewRegisterMovementUseCase(runner, repos, log)
	resolver := appinventory.NewResolveItemUseCase(runner, movements, decimal.Zero, log)
	return &harness{
		store:      store,
		repos:      repos,
		movements:  movements,
		resolver:   resolver,
		production: appinventory.NewProductionUseCase(runner, movements, resolver, log),
		shipping:   appinventory.NewShippingUseCase(runner, repos, movements, log),
		stock:      appinventory.NewStockQueryUseCase(repos.Items, repos.Movements),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// addItem crea un ítem y, si stock > 0, lo carga con un IN.
func (h *harness) addItem(t *testing.T, name string, cat entity.Category, stock string, weight *decimal.Decimal) *entity.Item {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	it := &entity.Item{
		ID: uuid.New().String(), Name: name, Category: cat, UnitType: "kg",
		WeightPerUnit: weight, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, h.repos.Items.Create(ctx, it))
	if q := dec(stock); q.IsPositive() {
		_, err := h.movements.RecordMovement(ctx, appinventory.MovementInput{ItemID: it.ID, Type: "IN", Quantity: q})
		require.NoError(t, err)
	}
	got, err := h.repos.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	return got
}

func (h *harness) stockOf(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	it, err := h.repos.Items.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.CurrentStock
}

// requireLedgerConsistent verifica que el stock materializado de todos los ítems
// coincida con el plegado del libro.
func (h *harness) requireLedgerConsistent(t *testing.T) {
	t.Helper()
	checks, err := h.stock.VerifyAll(context.Background())
	require.NoError(t, err)
	for _, c := range checks {
		require.Truef(t, c.Consistent, "%s: materializado %s, libro %s", c.ItemName, c.Materialized, c.Ledger)
		require.False(t, c.Materialized.IsNegative(), c.ItemName)
	}
}

func requireDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "se esperaba %s, se obtuvo %s %v", want, got, msgAndArgs)
}
