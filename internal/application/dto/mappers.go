package dto

import (
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

// ToItemResponse convierte la entidad a su salida.
func ToItemResponse(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:                it.ID,
		Name:              it.Name,
		Category:          string(it.Category),
		UnitType:          it.UnitType,
		CurrentStock:      it.CurrentStock,
		LowStockThreshold: it.LowStockThreshold,
		WeightPerUnit:     it.WeightPerUnit,
		SellingPrice:      it.SellingPrice,
		IsLowStock:        it.IsLowStock(),
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
}

// ToItemResponses convierte una lista de ítems.
func ToItemResponses(list []*entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, ToItemResponse(it))
	}
	return out
}

// ToMovementResponse convierte un movimiento.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		ItemID:       m.ItemID,
		Type:         string(m.Type),
		Quantity:     m.Quantity,
		Notes:        m.Notes,
		PricePerUnit: m.PricePerUnit,
		Reference:    m.Reference,
		CreatedAt:    m.CreatedAt,
	}
}

// ToShipmentResponse convierte un documento de envío.
func ToShipmentResponse(d *entity.ShippingDocument) ShipmentResponse {
	items := make([]ShipmentItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, ShipmentItemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return ShipmentResponse{
		ID:            d.ID,
		CustomerName:  d.CustomerName,
		DocNumber:     d.DocNumber,
		Status:        d.Status,
		TotalQuantity: d.TotalQuantity(),
		Items:         items,
		CreatedAt:     d.CreatedAt,
	}
}

// ToWasteRows convierte el resumen diario de merma.
func ToWasteRows(rows []inventory.DailyWasteSummary) []WasteDayResponse {
	out := make([]WasteDayResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, WasteDayResponse{
			Day:               r.Day.Format("2006-01-02"),
			RunCount:          r.RunCount,
			TotalWaste:        r.TotalWaste,
			TotalClampedWaste: r.TotalClampedWaste,
			AvgWastePercent:   r.AvgWastePercent,
			MinWastePercent:   r.MinWastePercent,
			MaxWastePercent:   r.MaxWastePercent,
		})
	}
	return out
}

// ToProfitabilityRows convierte el reporte de rentabilidad.
func ToProfitabilityRows(rows []inventory.Profitability) []ProfitabilityResponse {
	out := make([]ProfitabilityResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProfitabilityResponse{
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			ProductionCost: r.ProductionCost,
			SellingPrice:   r.SellingPrice,
			GrossProfit:    r.GrossProfit,
			MarginPct:      r.MarginPct,
			IsProfitable:   r.IsProfitable,
			RecipeLines:    r.RecipeLines,
		})
	}
	return out
}
