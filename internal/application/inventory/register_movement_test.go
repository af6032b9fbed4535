package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

func TestRecordMovement_EntradaYSalida(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	it := h.addItem(t, "PLA", entity.CategoryRawMaterial, "10", nil)

	price := dec("4.5")
	res, err := h.movements.RecordMovement(ctx, appinventory.MovementInput{
		ItemID: it.ID, Type: "in", Quantity: dec("5"), Notes: "recepción", PricePerUnit: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIN, res.Movement.Type)
	requireDec(t, "15", res.Item.CurrentStock)

	res, err = h.movements.RecordMovement(ctx, appinventory.MovementInput{ItemID: it.ID, Type: "Out", Quantity: dec("15")})
	require.NoError(t, err)
	requireDec(t, "0", res.Item.CurrentStock)
	requireDec(t, "0", h.stockOf(t, it.ID))
	h.requireLedgerConsistent(t)
}

func TestRecordMovement_SalidaMayorQueStock(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	it := h.addItem(t, "PLA", entity.CategoryRawMaterial, "3", nil)

	_, err := h.movements.RecordMovement(ctx, appinventory.MovementInput{ItemID: it.ID, Type: "OUT", Quantity: dec("3.5")})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, it.ID, ise.ItemID)
	requireDec(t, "3.5", ise.Requested)
	requireDec(t, "3", ise.Available)

	requireDec(t, "3", h.stockOf(t, it.ID))
	n, err := h.repos.Movements.CountByItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecordMovement_Validaciones(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	it := h.addItem(t, "PLA", entity.CategoryRawMaterial, "0", nil)
	neg := dec("-1")

	cases := map[string]appinventory.MovementInput{
		"cantidad cero":     {ItemID: it.ID, Type: "IN", Quantity: dec("0")},
		"cantidad negativa": {ItemID: it.ID, Type: "IN", Quantity: dec("-2")},
		"tipo desconocido":  {ItemID: it.ID, Type: "ADJUST", Quantity: dec("1")},
		"precio negativo":   {ItemID: it.ID, Type: "IN", Quantity: dec("1"), PricePerUnit: &neg},
		"sin ítem":          {Type: "IN", Quantity: dec("1")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := h.movements.RecordMovement(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	n, _ := h.repos.Movements.CountByItem(ctx, it.ID)
	assert.Zero(t, n)
}

func TestRecordMovement_ItemInexistente(t *testing.T) {
	h := newHarness(t)
	_, err := h.movements.RecordMovement(context.Background(), appinventory.MovementInput{ItemID: "nope", Type: "IN", Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	it := h.addItem(t, "PLA", entity.CategoryRawMaterial, "10", nil)
	_, err := h.movements.RecordMovement(ctx, appinventory.MovementInput{ItemID: it.ID, Type: "OUT", Quantity: dec("4")})
	require.NoError(t, err)

	outs, err := h.movements.ListMovements(ctx, repository.MovementFilter{Type: "out"})
	require.NoError(t, err)
	require.Len(t, outs, 1)
	requireDec(t, "4", outs[0].Quantity)

	all, err := h.movements.ListMovements(ctx, repository.MovementFilter{ItemID: it.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, entity.MovementTypeOUT, all[0].Type)

	_, err = h.movements.ListMovements(ctx, repository.MovementFilter{Type: "ajuste"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
