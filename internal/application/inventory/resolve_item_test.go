package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestResolve_CreaConUmbralYStockInicial(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.resolver.Resolve(ctx, appinventory.ResolveInput{
		Name: "  Resina epóxica ", Category: entity.CategoryRawMaterial, InitialQuantity: dec("100"),
	})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "Resina epóxica", res.Item.Name)
	assert.Equal(t, appinventory.DefaultRawMaterialUnit, res.Item.UnitType)
	requireDec(t, "10", res.Item.LowStockThreshold)
	requireDec(t, "100", res.Item.CurrentStock)

	movs, err := h.repos.Movements.ListByItem(ctx, res.Item.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	h.requireLedgerConsistent(t)
}

func TestResolve_UmbralRedondeaHaciaArriba(t *testing.T) {
	h := newHarness(t)
	res, err := h.resolver.Resolve(context.Background(), appinventory.ResolveInput{
		Name: "Pigmento", Category: entity.CategoryRawMaterial, InitialQuantity: dec("15"),
	})
	require.NoError(t, err)
	requireDec(t, "2", res.Item.LowStockThreshold)
}

func TestResolve_EncuentraExistente(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	existing := h.addItem(t, "Bowl", entity.CategoryFinishedProduct, "7", nil)

	res, err := h.resolver.Resolve(ctx, appinventory.ResolveInput{
		Name: "Bowl ", Category: entity.CategoryFinishedProduct, InitialQuantity: dec("50"),
	})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, existing.ID, res.Item.ID)
	requireDec(t, "7", res.Item.CurrentStock)

	// Mismo nombre en otra categoría es otro ítem.
	other, err := h.resolver.Resolve(ctx, appinventory.ResolveInput{Name: "Bowl", Category: entity.CategoryRawMaterial})
	require.NoError(t, err)
	assert.True(t, other.Created)
	assert.NotEqual(t, existing.ID, other.Item.ID)
	requireDec(t, "0", other.Item.CurrentStock)
	requireDec(t, "0", other.Item.LowStockThreshold)
}

func TestResolve_Validaciones(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.resolver.Resolve(ctx, appinventory.ResolveInput{Name: "   ", Category: entity.CategoryRawMaterial})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = h.resolver.Resolve(ctx, appinventory.ResolveInput{Name: "X", Category: "tools"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = h.resolver.Resolve(ctx, appinventory.ResolveInput{Name: "X", Category: entity.CategoryRawMaterial, InitialQuantity: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
