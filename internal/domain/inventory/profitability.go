package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Profitability rentabilidad de un producto terminado según su receta.
type Profitability struct {
	ProductID      string
	ProductName    string
	ProductionCost decimal.Decimal
	SellingPrice   decimal.Decimal
	GrossProfit    decimal.Decimal
	MarginPct      decimal.Decimal
	IsProfitable   bool
	RecipeLines    int
}

// ComputeProfitability:
//
//	costo   = Σ(cantidad requerida × precio más reciente del material)
//	utilidad = precio de venta − costo
//	margen% = utilidad / precio × 100   (0 si precio = 0)
//
// priceOf devuelve cero para materiales sin entradas con precio.
func ComputeProfitability(product *entity.Item, lines []*entity.RecipeLine, priceOf func(materialID string) decimal.Decimal) Profitability {
	cost := decimal.Zero
	for _, l := range lines {
		cost = cost.Add(l.RequiredQuantity.Mul(priceOf(l.RawMaterialID)))
	}
	price := product.Price()
	profit := price.Sub(cost)
	margin := decimal.Zero
	if !price.IsZero() {
		margin = profit.Div(price).Mul(hundred)
	}
	return Profitability{
		ProductID:      product.ID,
		ProductName:    product.Name,
		ProductionCost: cost,
		SellingPrice:   price,
		GrossProfit:    profit,
		MarginPct:      margin,
		IsProfitable:   profit.IsPositive(),
		RecipeLines:    len(lines),
	}
}

// ScaleRecipe devuelve el consumo planificado por material: requerido × producido.
// Líneas repetidas del mismo material se acumulan.
func ScaleRecipe(lines []*entity.RecipeLine, produced decimal.Decimal) map[string]decimal.Decimal {
	planned := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		planned[l.RawMaterialID] = planned[l.RawMaterialID].Add(l.RequiredQuantity.Mul(produced))
	}
	return planned
}
