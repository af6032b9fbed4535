package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentLineRequest línea de envío.
type ShipmentLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
}

// CreateShipmentRequest body de POST /api/shipments.
type CreateShipmentRequest struct {
	CustomerName string                `json:"customer_name" validate:"required,max=200"`
	DocNumber    string                `json:"doc_number" validate:"required,max=60"`
	Items        []ShipmentLineRequest `json:"items" validate:"required,min=1,dive"`
}

// ShipmentItemResponse línea persistida.
type ShipmentItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ShipmentResponse documento de envío.
type ShipmentResponse struct {
	ID            string                 `json:"id"`
	CustomerName  string                 `json:"customer_name"`
	DocNumber     string                 `json:"doc_number"`
	Status        string                 `json:"status"`
	TotalQuantity decimal.Decimal        `json:"total_quantity"`
	Items         []ShipmentItemResponse `json:"items"`
	CreatedAt     time.Time              `json:"created_at"`
}

// ShipmentListResponse lista paginada de envíos.
type ShipmentListResponse struct {
	Items []ShipmentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
