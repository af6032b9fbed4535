package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un documento de envío.
const (
	ShippingStatusCompleted = "COMPLETED"
)

// ShippingDocument es el manifiesto de despacho a un cliente.
type ShippingDocument struct {
	ID           string
	CustomerName string
	DocNumber    string
	Status       string
	Items        []ShippingItem
	CreatedAt    time.Time
}

// ShippingItem es una línea del documento de envío.
type ShippingItem struct {
	DocID     string
	ProductID string
	Quantity  decimal.Decimal
}

// TotalQuantity suma las cantidades de todas las líneas.
func (d *ShippingDocument) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.Quantity)
	}
	return total
}

// Clone devuelve una copia independiente.
func (d *ShippingDocument) Clone() *ShippingDocument {
	if d == nil {
		return nil
	}
	c := *d
	c.Items = append([]ShippingItem(nil), d.Items...)
	return &c
}
