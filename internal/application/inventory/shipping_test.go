package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

func TestRunShipment_DescuentaYAnota(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p1 := h.addItem(t, "Taza", entity.CategoryFinishedProduct, "10", nil)
	p2 := h.addItem(t, "Plato", entity.CategoryFinishedProduct, "5", nil)

	doc, err := h.shipping.RunShipment(ctx, appinventory.ShipmentInput{
		CustomerName: " Café Central ", DocNumber: "SD-001",
		Lines: []appinventory.ShipmentLine{{ProductID: p1.ID, Quantity: dec("4")}, {ProductID: p2.ID, Quantity: dec("5")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ShippingStatusCompleted, doc.Status)
	assert.Equal(t, "Café Central", doc.CustomerName)
	requireDec(t, "9", doc.TotalQuantity())

	requireDec(t, "6", h.stockOf(t, p1.ID))
	requireDec(t, "0", h.stockOf(t, p2.ID))

	outs, err := h.repos.Movements.List(ctx, repository.MovementFilter{ItemID: p1.ID, Type: entity.MovementTypeOUT})
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, "Shipping Doc: SD-001", outs[0].Notes)
	assert.Equal(t, doc.ID, outs[0].Reference)

	got, err := h.shipping.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	h.requireLedgerConsistent(t)
}

func TestRunShipment_UnaLineaInsuficienteRevierteTodo(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p1 := h.addItem(t, "Taza", entity.CategoryFinishedProduct, "10", nil)
	p2 := h.addItem(t, "Plato", entity.CategoryFinishedProduct, "2", nil)

	_, err := h.shipping.RunShipment(ctx, appinventory.ShipmentInput{
		CustomerName: "Cliente", DocNumber: "SD-002",
		Lines: []appinventory.ShipmentLine{{ProductID: p1.ID, Quantity: dec("4")}, {ProductID: p2.ID, Quantity: dec("3")}},
	})
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, p2.ID, ise.ItemID)
	assert.Equal(t, "Plato", ise.ItemName)

	requireDec(t, "10", h.stockOf(t, p1.ID))
	requireDec(t, "2", h.stockOf(t, p2.ID))
	docs, err := h.shipping.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRunShipment_NumeroDuplicadoEsConflicto(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.addItem(t, "Taza", entity.CategoryFinishedProduct, "10", nil)
	in := appinventory.ShipmentInput{
		CustomerName: "Cliente", DocNumber: "SD-003",
		Lines: []appinventory.ShipmentLine{{ProductID: p.ID, Quantity: dec("1")}},
	}
	_, err := h.shipping.RunShipment(ctx, in)
	require.NoError(t, err)

	_, err = h.shipping.RunShipment(ctx, in)
	assert.ErrorIs(t, err, domain.ErrConflict)
	requireDec(t, "9", h.stockOf(t, p.ID))
}

func TestRunShipment_Validaciones(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.addItem(t, "Taza", entity.CategoryFinishedProduct, "10", nil)
	line := appinventory.ShipmentLine{ProductID: p.ID, Quantity: dec("1")}

	cases := map[string]appinventory.ShipmentInput{
		"sin cliente":       {DocNumber: "X", Lines: []appinventory.ShipmentLine{line}},
		"sin documento":     {CustomerName: "C", Lines: []appinventory.ShipmentLine{line}},
		"sin líneas":        {CustomerName: "C", DocNumber: "X"},
		"cantidad cero":     {CustomerName: "C", DocNumber: "X", Lines: []appinventory.ShipmentLine{{ProductID: p.ID, Quantity: dec("0")}}},
		"producto repetido": {CustomerName: "C", DocNumber: "X", Lines: []appinventory.ShipmentLine{line, line}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := h.shipping.RunShipment(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := h.shipping.RunShipment(ctx, appinventory.ShipmentInput{
		CustomerName: "C", DocNumber: "X", Lines: []appinventory.ShipmentLine{{ProductID: "nope", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunShipment_ConcurrentesSobreMismoProducto(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.addItem(t, "Taza", entity.CategoryFinishedProduct, "10", nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.shipping.RunShipment(ctx, appinventory.ShipmentInput{
				CustomerName: "Cliente", DocNumber: []string{"SD-A", "SD-B"}[i],
				Lines: []appinventory.ShipmentLine{{ProductID: p.ID, Quantity: dec("7")}},
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	requireDec(t, "3", h.stockOf(t, p.ID))
	h.requireLedgerConsistent(t)
}

func TestGetShipment_Inexistente(t *testing.T) {
	h := newHarness(t)
	_, err := h.shipping.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
