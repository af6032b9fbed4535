package dto

import "github.com/shopspring/decimal"

// WasteDayResponse fila del reporte de merma diaria.
type WasteDayResponse struct {
	Day               string          `json:"day"` // YYYY-MM-DD (UTC)
	RunCount          int             `json:"run_count"`
	TotalWaste        decimal.Decimal `json:"total_waste"`
	TotalClampedWaste decimal.Decimal `json:"total_clamped_waste"`
	AvgWastePercent   decimal.Decimal `json:"avg_waste_percent"`
	MinWastePercent   decimal.Decimal `json:"min_waste_percent"`
	MaxWastePercent   decimal.Decimal `json:"max_waste_percent"`
}

// WasteReportResponse respuesta de GET /api/reports/waste.
type WasteReportResponse struct {
	Days int                `json:"days"`
	Rows []WasteDayResponse `json:"rows"`
}

// ProfitabilityResponse rentabilidad de un producto terminado.
type ProfitabilityResponse struct {
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	ProductionCost decimal.Decimal `json:"production_cost"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	GrossProfit    decimal.Decimal `json:"gross_profit"`
	MarginPct      decimal.Decimal `json:"margin_pct"`
	IsProfitable   bool            `json:"is_profitable"`
	RecipeLines    int             `json:"recipe_lines"`
}

// DashboardResponse respuesta de GET /api/reports/dashboard.
type DashboardResponse struct {
	Waste         []WasteDayResponse      `json:"waste"`
	Profitability []ProfitabilityResponse `json:"profitability"`
	LowStock      []ItemResponse          `json:"low_stock"`
}
