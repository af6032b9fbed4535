package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un ítem almacenable (materia prima o producto terminado).
// CurrentStock es el valor materializado del libro de movimientos; sólo cambia
// junto con la inserción de un Movement, dentro de la misma transacción.
type Item struct {
	ID                string
	Name              string
	Category          Category
	UnitType          string
	CurrentStock      decimal.Decimal
	LowStockThreshold decimal.Decimal
	WeightPerUnit     *decimal.Decimal // kg por unidad; convierte unidades a masa para el cálculo de merma
	SellingPrice      *decimal.Decimal
	Version           int64 // control de concurrencia optimista sobre CurrentStock
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Weight devuelve el peso por unidad o cero si no está definido.
func (i *Item) Weight() decimal.Decimal {
	if i.WeightPerUnit == nil {
		return decimal.Zero
	}
	return *i.WeightPerUnit
}

// Price devuelve el precio de venta o cero si no está definido.
func (i *Item) Price() decimal.Decimal {
	if i.SellingPrice == nil {
		return decimal.Zero
	}
	return *i.SellingPrice
}

// IsLowStock indica si el stock actual está en o bajo el umbral.
func (i *Item) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.LowStockThreshold)
}

// Clone devuelve una copia independiente (los punteros se duplican).
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	if i.WeightPerUnit != nil {
		w := *i.WeightPerUnit
		c.WeightPerUnit = &w
	}
	if i.SellingPrice != nil {
		p := *i.SellingPrice
		c.SellingPrice = &p
	}
	return &c
}
