package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLine es una línea de la lista de materiales (BOM): cuánta materia prima
// requiere una unidad de producto terminado.
type RecipeLine struct {
	ID                string
	FinishedProductID string
	RawMaterialID     string
	RequiredQuantity  decimal.Decimal
	UnitType          string
	CreatedAt         time.Time
}
