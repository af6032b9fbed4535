package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/validation"
)

// ProductionHandler maneja las corridas de producción.
type ProductionHandler struct {
	uc *inventory.ProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *inventory.ProductionUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar corrida de producción
// @Description  Consume materias primas (modo single o recipe), ingresa el producto terminado
//
//	y calcula la merma, todo en una sola transacción.
//
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionRunRequest  true  "Corrida"
// @Success      201   {object}  dto.ProductionRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-runs [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionRunRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validation.Struct(in); err != nil {
		return writeError(c, err)
	}
	input := inventory.ProductionInput{
		FinishedProduct:  inventory.ItemRef{ID: in.FinishedProduct.ID, Name: in.FinishedProduct.Name},
		ProducedQuantity: in.ProducedQuantity,
	}
	if in.Single != nil {
		input.Single = &inventory.SingleMaterial{
			RawMaterial: inventory.ItemRef{ID: in.Single.RawMaterial.ID, Name: in.Single.RawMaterial.Name},
			Quantity:    in.Single.Quantity,
		}
	}
	if in.Recipe != nil {
		input.Recipe = &inventory.RecipeMode{Overrides: in.Recipe.Overrides}
	}
	res, err := h.uc.RunProduction(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductionRunResponse(res))
}

func toProductionRunResponse(res *inventory.ProductionResult) dto.ProductionRunResponse {
	run := res.Run
	lines := make([]dto.ProductionLineResponse, 0, len(run.Lines))
	for _, l := range run.Lines {
		lines = append(lines, dto.ProductionLineResponse{
			RawMaterialID:   l.RawMaterialID,
			RawMaterialName: res.MaterialNames[l.RawMaterialID],
			PlannedQuantity: l.PlannedQuantity,
			ActualQuantity:  l.ActualQuantity,
		})
	}
	return dto.ProductionRunResponse{
		ID:                      run.ID,
		Mode:                    string(run.Mode),
		FinishedProductID:       run.FinishedProductID,
		FinishedProductName:     res.FinishedProductName,
		FinishedProductQuantity: run.FinishedProductQuantity,
		FinishedProductStock:    res.FinishedProductStock,
		RawMaterialID:           run.RawMaterialID,
		RawMaterialQuantity:     run.RawMaterialQuantity,
		TheoreticalOutputWeight: run.TheoreticalOutputWeight,
		WasteQuantity:           run.WasteQuantity,
		WastePercentage:         run.WastePercentage,
		ClampedWasteQuantity:    run.ClampedWasteQuantity,
		ClampedWastePercentage:  run.ClampedWastePercentage,
		Lines:                   lines,
		CreatedAt:               run.CreatedAt,
	}
}
