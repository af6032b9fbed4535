package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRecipeLineRequest body de POST /api/recipes. Producto y material por id o nombre.
type CreateRecipeLineRequest struct {
	FinishedProduct  ItemRefRequest  `json:"finished_product"`
	RawMaterial      ItemRefRequest  `json:"raw_material"`
	RequiredQuantity decimal.Decimal `json:"required_quantity" validate:"gt=0"`
	UnitType         string          `json:"unit_type,omitempty" validate:"max=30"`
}

// RecipeLineResponse línea de receta.
type RecipeLineResponse struct {
	ID                string          `json:"id"`
	FinishedProductID string          `json:"finished_product_id"`
	RawMaterialID     string          `json:"raw_material_id"`
	RawMaterialName   string          `json:"raw_material_name,omitempty"`
	RequiredQuantity  decimal.Decimal `json:"required_quantity"`
	UnitType          string          `json:"unit_type"`
	CreatedAt         time.Time       `json:"created_at"`
}
