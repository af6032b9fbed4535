package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements. Type acepta IN/OUT sin distinguir mayúsculas.
type RegisterMovementRequest struct {
	ItemID       string           `json:"item_id" validate:"required"`
	Type         string           `json:"type" validate:"required"`
	Quantity     decimal.Decimal  `json:"quantity" validate:"gt=0"`
	Notes        string           `json:"notes,omitempty" validate:"max=500"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit,omitempty" validate:"omitempty,gte=0"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID           string           `json:"id"`
	ItemID       string           `json:"item_id"`
	Type         string           `json:"type"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Notes        string           `json:"notes,omitempty"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit,omitempty"`
	Reference    string           `json:"reference,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// RegisterMovementResponse movimiento persistido y stock resultante.
type RegisterMovementResponse struct {
	Movement     MovementResponse `json:"movement"`
	CurrentStock decimal.Decimal  `json:"current_stock"`
}

// MovementListResponse lista paginada del libro.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockResponse salida de GET /api/items/:id/stock.
type StockResponse struct {
	ItemID string          `json:"item_id"`
	Source string          `json:"source"`
	Stock  decimal.Decimal `json:"stock"`
}

// StockCheckResponse comparación materializado vs. libro.
type StockCheckResponse struct {
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Materialized decimal.Decimal `json:"materialized"`
	Ledger       decimal.Decimal `json:"ledger"`
	Consistent   bool            `json:"consistent"`
}
