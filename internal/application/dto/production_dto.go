package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRefRequest referencia un ítem por id o por nombre (find-or-create).
type ItemRefRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// SingleMaterialRequest modo de una sola materia prima.
type SingleMaterialRequest struct {
	RawMaterial ItemRefRequest  `json:"raw_material"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gte=0"`
}

// RecipeModeRequest modo receta; overrides por id de material.
type RecipeModeRequest struct {
	Overrides map[string]decimal.Decimal `json:"overrides,omitempty"`
}

// CreateProductionRunRequest body de POST /api/production-runs.
type CreateProductionRunRequest struct {
	FinishedProduct  ItemRefRequest         `json:"finished_product"`
	ProducedQuantity decimal.Decimal        `json:"produced_quantity" validate:"gt=0"`
	Single           *SingleMaterialRequest `json:"single,omitempty"`
	Recipe           *RecipeModeRequest     `json:"recipe,omitempty"`
}

// ProductionLineResponse consumo de un material en la corrida.
type ProductionLineResponse struct {
	RawMaterialID   string          `json:"raw_material_id"`
	RawMaterialName string          `json:"raw_material_name,omitempty"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity"`
	ActualQuantity  decimal.Decimal `json:"actual_quantity"`
}

// ProductionRunResponse corrida registrada.
type ProductionRunResponse struct {
	ID                      string                   `json:"id"`
	Mode                    string                   `json:"mode"`
	FinishedProductID       string                   `json:"finished_product_id"`
	FinishedProductName     string                   `json:"finished_product_name"`
	FinishedProductQuantity decimal.Decimal          `json:"finished_product_quantity"`
	FinishedProductStock    decimal.Decimal          `json:"finished_product_stock"`
	RawMaterialID           string                   `json:"raw_material_id,omitempty"`
	RawMaterialQuantity     decimal.Decimal          `json:"raw_material_quantity"`
	TheoreticalOutputWeight decimal.Decimal          `json:"theoretical_output_weight"`
	WasteQuantity           decimal.Decimal          `json:"waste_quantity"`
	WastePercentage         decimal.Decimal          `json:"waste_percentage"`
	ClampedWasteQuantity    decimal.Decimal          `json:"clamped_waste_quantity"`
	ClampedWastePercentage  decimal.Decimal          `json:"clamped_waste_percentage"`
	Lines                   []ProductionLineResponse `json:"lines"`
	CreatedAt               time.Time                `json:"created_at"`
}
