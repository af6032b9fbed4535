package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

type fixture struct {
	repos   appinventory.Repos
	items   *usecase.ItemUseCase
	recipes *usecase.RecipeUseCase
	ship    *appinventory.ShippingUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.Nop()
	ratio := decimal.RequireFromString("0.1")
	movements := appinventory.NewRegisterMovementUseCase(store, repos, log)
	resolver := appinventory.NewResolveItemUseCase(store, movements, ratio, log)
	return &fixture{
		repos:   repos,
		items:   usecase.NewItemUseCase(store, repos, movements, ratio),
		recipes: usecase.NewRecipeUseCase(store, repos, resolver),
		ship:    appinventory.NewShippingUseCase(store, repos, movements, log),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
