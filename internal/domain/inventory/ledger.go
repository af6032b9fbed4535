// Package inventory contiene los servicios de dominio puros del libro de stock:
// plegado de movimientos, aplicación de deltas, merma de producción y costeo por receta.
package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// DefaultLowStockRatio es la fracción de la cantidad inicial usada como umbral de stock bajo
// para ítems auto-creados.
var DefaultLowStockRatio = decimal.NewFromFloat(0.1)

// FoldMovements calcula el stock desde el libro: Σ(IN) − Σ(OUT). El tipo se compara sin
// distinguir mayúsculas; tipos desconocidos se ignoran.
func FoldMovements(movements []*entity.Movement) decimal.Decimal {
	stock := decimal.Zero
	for _, m := range movements {
		t, ok := entity.ParseMovementType(string(m.Type))
		if !ok {
			continue
		}
		if t == entity.MovementTypeIN {
			stock = stock.Add(m.Quantity)
		} else {
			stock = stock.Sub(m.Quantity)
		}
	}
	return stock
}

// ApplyMovement devuelve el nuevo stock del ítem tras aplicar el movimiento.
// Una salida mayor que el stock disponible retorna *domain.InsufficientStockError sin
// modificar nada; nunca se acota a cero.
func ApplyMovement(item *entity.Item, t entity.MovementType, quantity decimal.Decimal) (decimal.Decimal, error) {
	switch t {
	case entity.MovementTypeIN:
		return item.CurrentStock.Add(quantity), nil
	case entity.MovementTypeOUT:
		if item.CurrentStock.LessThan(quantity) {
			return decimal.Zero, &domain.InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Requested: quantity,
				Available: item.CurrentStock,
			}
		}
		return item.CurrentStock.Sub(quantity), nil
	}
	return decimal.Zero, domain.NewValidationError("type", "oneof", "tipo debe ser IN u OUT")
}

// LowStockThreshold = ceil(basis × ratio). Con ratio cero usa DefaultLowStockRatio.
func LowStockThreshold(basis, ratio decimal.Decimal) decimal.Decimal {
	if ratio.IsZero() {
		ratio = DefaultLowStockRatio
	}
	if !basis.IsPositive() {
		return decimal.Zero
	}
	return basis.Mul(ratio).Ceil()
}

// LatestInPrice devuelve el precio del IN más reciente (por CreatedAt).
// Ante empate de fecha gana el registrado después. nil si no hay IN o si el último IN no
// tiene precio; un IN sin precio no hereda el precio de uno anterior.
func LatestInPrice(movements []*entity.Movement) *decimal.Decimal {
	var latest *entity.Movement
	for _, m := range movements {
		t, _ := entity.ParseMovementType(string(m.Type))
		if t != entity.MovementTypeIN {
			continue
		}
		if latest == nil || !m.CreatedAt.Before(latest.CreatedAt) {
			latest = m
		}
	}
	if latest == nil || latest.PricePerUnit == nil {
		return nil
	}
	p := *latest.PricePerUnit
	return &p
}

// NormalizeName recorta espacios y aplica normalización Unicode NFC, de modo que nombres
// tecleados con distinta composición (p. ej. hebreo con niqqud) coincidan exactamente.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
