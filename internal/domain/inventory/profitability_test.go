package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

func TestComputeProfitability_VectorReferencia(t *testing.T) {
	price := d("20")
	product := &entity.Item{ID: "fp", Name: "Bowl", SellingPrice: &price}
	lines := []*entity.RecipeLine{
		{FinishedProductID: "fp", RawMaterialID: "a", RequiredQuantity: d("2")},
		{FinishedProductID: "fp", RawMaterialID: "b", RequiredQuantity: d("1")},
	}
	prices := map[string]decimal.Decimal{"a": d("5"), "b": d("3")}

	got := inventory.ComputeProfitability(product, lines, func(id string) decimal.Decimal { return prices[id] })

	assertDec(t, "13", got.ProductionCost)
	assertDec(t, "20", got.SellingPrice)
	assertDec(t, "7", got.GrossProfit)
	assertDec(t, "35", got.MarginPct)
	assert.True(t, got.IsProfitable)
	assert.Equal(t, 2, got.RecipeLines)
}

func TestComputeProfitability_SinPrecioDeVenta(t *testing.T) {
	product := &entity.Item{ID: "fp"}
	lines := []*entity.RecipeLine{{RawMaterialID: "a", RequiredQuantity: d("2")}}

	got := inventory.ComputeProfitability(product, lines, func(string) decimal.Decimal { return d("1.5") })

	assertDec(t, "3", got.ProductionCost)
	assertDec(t, "-3", got.GrossProfit)
	assertDec(t, "0", got.MarginPct)
	assert.False(t, got.IsProfitable)
}

func TestScaleRecipe(t *testing.T) {
	lines := []*entity.RecipeLine{
		{RawMaterialID: "a", RequiredQuantity: d("0.2")},
		{RawMaterialID: "b", RequiredQuantity: d("1")},
		{RawMaterialID: "a", RequiredQuantity: d("0.05")},
	}
	got := inventory.ScaleRecipe(lines, d("40"))
	assertDec(t, "10", got["a"])
	assertDec(t, "40", got["b"])
}
