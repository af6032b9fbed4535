package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem. InitialStock > 0 se registra como un IN.
type CreateItemRequest struct {
	Name              string           `json:"name" validate:"required,max=200"`
	Category          string           `json:"category" validate:"required,oneof=raw_material finished_product"`
	UnitType          string           `json:"unit_type" validate:"omitempty,max=30"`
	InitialStock      decimal.Decimal  `json:"initial_stock" validate:"gte=0"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold,omitempty" validate:"omitempty,gte=0"`
	WeightPerUnit     *decimal.Decimal `json:"weight_per_unit,omitempty" validate:"omitempty,gte=0"`
	SellingPrice      *decimal.Decimal `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
	PricePerUnit      *decimal.Decimal `json:"price_per_unit,omitempty" validate:"omitempty,gte=0"`
}

// UpdateItemRequest entrada para actualizar metadatos (nunca el stock).
type UpdateItemRequest struct {
	Name              *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	UnitType          *string          `json:"unit_type,omitempty" validate:"omitempty,max=30"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold,omitempty" validate:"omitempty,gte=0"`
	WeightPerUnit     *decimal.Decimal `json:"weight_per_unit,omitempty" validate:"omitempty,gte=0"`
	SellingPrice      *decimal.Decimal `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
}

// ResolveItemRequest body de POST /api/items/resolve.
type ResolveItemRequest struct {
	Name            string          `json:"name" validate:"required"`
	Category        string          `json:"category" validate:"required,oneof=raw_material finished_product"`
	InitialQuantity decimal.Decimal `json:"initial_quantity" validate:"gte=0"`
}

// ResolveItemResponse resultado de find-or-create.
type ResolveItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Created      bool            `json:"created"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	UnitType          string           `json:"unit_type"`
	CurrentStock      decimal.Decimal  `json:"current_stock"`
	LowStockThreshold decimal.Decimal  `json:"low_stock_threshold"`
	WeightPerUnit     *decimal.Decimal `json:"weight_per_unit,omitempty"`
	SellingPrice      *decimal.Decimal `json:"selling_price,omitempty"`
	IsLowStock        bool             `json:"is_low_stock"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
