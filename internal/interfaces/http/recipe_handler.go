package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
)

// RecipeHandler maneja las líneas de receta (BOM).
type RecipeHandler struct {
	uc *usecase.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *usecase.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// Create godoc
// @Summary      Agregar línea de receta
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeLineRequest  true  "Producto, material y cantidad por unidad"
// @Success      201   {object}  dto.RecipeLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipeLineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Add(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar líneas de receta
// @Tags         recipes
// @Produce      json
// @Param        finished_product_id  query  string  false  "Filtrar por producto terminado"
// @Success      200  {array}  dto.RecipeLineResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.UserContext(), c.Query("finished_product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar línea de receta
// @Tags         recipes
// @Param        id   path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
