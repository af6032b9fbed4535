package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

// ReportHandler maneja los reportes de merma, rentabilidad y el tablero.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Waste godoc
// @Summary      Merma diaria de producción
// @Tags         reports
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"  default(14)
// @Success      200   {object}  dto.WasteReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/waste [get]
func (h *ReportHandler) Waste(c *fiber.Ctx) error {
	days := c.QueryInt("days", 0)
	rows, err := h.uc.ReportWaste(c.UserContext(), days)
	if err != nil {
		return writeError(c, err)
	}
	if days == 0 {
		days = h.uc.WasteDays()
	}
	return c.JSON(dto.WasteReportResponse{Days: days, Rows: dto.ToWasteRows(rows)})
}

// Profitability godoc
// @Summary      Rentabilidad por producto terminado
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.ProfitabilityResponse
// @Router       /api/reports/profitability [get]
func (h *ReportHandler) Profitability(c *fiber.Ctx) error {
	rows, err := h.uc.ReportProfitability(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProfitabilityRows(rows))
}

// Dashboard godoc
// @Summary      Tablero: merma, rentabilidad y stock bajo
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DashboardResponse{
		Waste:         dto.ToWasteRows(d.Waste),
		Profitability: dto.ToProfitabilityRows(d.Profitability),
		LowStock:      dto.ToItemResponses(d.LowStock),
	})
}
