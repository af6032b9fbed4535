package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/application/validation"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ItemHandler maneja las peticiones HTTP de ítems y de consulta de stock.
type ItemHandler struct {
	items    *usecase.ItemUseCase
	resolver *inventory.ResolveItemUseCase
	stock    *inventory.StockQueryUseCase
	reports  *appanalytics.ReportUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(
	items *usecase.ItemUseCase,
	resolver *inventory.ResolveItemUseCase,
	stock *inventory.StockQueryUseCase,
	reports *appanalytics.ReportUseCase,
) *ItemHandler {
	return &ItemHandler{items: items, resolver: resolver, stock: stock, reports: reports}
}

// Create godoc
// @Summary      Crear ítem
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.items.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem por ID
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.items.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Produce      json
// @Param        category  query  string  false  "raw_material | finished_product"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200       {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.items.List(c.UserContext(), c.Query("category"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar metadatos del ítem (nunca el stock)
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.items.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ítem sin historial
// @Tags         items
// @Param        id   path  string  true  "ID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.items.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Resolve godoc
// @Summary      Buscar o crear ítem por nombre
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolveItemRequest  true  "nombre, categoría y cantidad inicial"
// @Success      200   {object}  dto.ResolveItemResponse
// @Success      201   {object}  dto.ResolveItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/resolve [post]
func (h *ItemHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validation.Struct(in); err != nil {
		return writeError(c, err)
	}
	category, _ := entity.ParseCategory(in.Category)
	res, err := h.resolver.Resolve(c.UserContext(), inventory.ResolveInput{
		Name:            in.Name,
		Category:        category,
		InitialQuantity: in.InitialQuantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if res.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.ResolveItemResponse{
		ID:           res.Item.ID,
		Name:         res.Item.Name,
		CurrentStock: res.Item.CurrentStock,
		Created:      res.Created,
	})
}

// Stock godoc
// @Summary      Stock actual del ítem
// @Tags         items
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        source  query  string  false  "materialized | ledger"  default(materialized)
// @Success      200     {object}  dto.StockResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/items/{id}/stock [get]
func (h *ItemHandler) Stock(c *fiber.Ctx) error {
	source, err := inventory.ParseStockSource(c.Query("source"))
	if err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	qty, err := h.stock.QueryStock(c.UserContext(), id, source)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockResponse{ItemID: id, Source: string(source), Stock: qty})
}

// VerifyStock godoc
// @Summary      Comparar stock materializado con el libro
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.StockCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/stock/verify [get]
func (h *ItemHandler) VerifyStock(c *fiber.Ctx) error {
	chk, err := h.stock.VerifyStock(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockCheckResponse{
		ItemID:       chk.ItemID,
		ItemName:     chk.ItemName,
		Materialized: chk.Materialized,
		Ledger:       chk.Ledger,
		Consistent:   chk.Consistent,
	})
}

// LowStock godoc
// @Summary      Ítems en o bajo su umbral de stock
// @Tags         items
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items/low-stock [get]
func (h *ItemHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.reports.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToItemResponses(list))
}
