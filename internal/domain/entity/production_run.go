package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionMode distingue la producción libre de un solo material de la guiada por receta.
type ProductionMode string

const (
	ProductionModeSingle ProductionMode = "single"
	ProductionModeRecipe ProductionMode = "recipe"
)

// ProductionRun registra una transacción de fabricación (unifica production_runs y waste_logs).
// Se guardan la merma cruda (puede ser negativa: sobreproducción o error de medición)
// y la merma acotada a >= 0; el consumidor elige cuál mostrar.
type ProductionRun struct {
	ID                      string
	Mode                    ProductionMode
	RawMaterialID           string // sólo en modo single
	RawMaterialQuantity     decimal.Decimal
	FinishedProductID       string
	FinishedProductQuantity decimal.Decimal
	TheoreticalOutputWeight decimal.Decimal
	WasteQuantity           decimal.Decimal
	WastePercentage         decimal.Decimal
	ClampedWasteQuantity    decimal.Decimal
	ClampedWastePercentage  decimal.Decimal
	Lines                   []ProductionLine
	CreatedAt               time.Time
}

// ProductionLine es el consumo de una materia prima dentro de una corrida.
type ProductionLine struct {
	RunID           string
	RawMaterialID   string
	PlannedQuantity decimal.Decimal // receta × cantidad producida
	ActualQuantity  decimal.Decimal
}

// Clone devuelve una copia independiente.
func (r *ProductionRun) Clone() *ProductionRun {
	if r == nil {
		return nil
	}
	c := *r
	c.Lines = append([]ProductionLine(nil), r.Lines...)
	return &c
}
