package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos.
type MovementHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.RegisterMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento IN/OUT
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "item_id, type, quantity, notes, price_per_unit"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.RecordMovement(c.UserContext(), inventory.MovementInput{
		ItemID:       in.ItemID,
		Type:         in.Type,
		Quantity:     in.Quantity,
		Notes:        in.Notes,
		PricePerUnit: in.PricePerUnit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterMovementResponse{
		Movement:     dto.ToMovementResponse(res.Movement),
		CurrentStock: res.Item.CurrentStock,
	})
}

// List godoc
// @Summary      Listar movimientos (más recientes primero)
// @Tags         movements
// @Produce      json
// @Param        item_id  query  string  false  "Filtrar por ítem"
// @Param        type     query  string  false  "IN | OUT"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200      {object}  dto.MovementListResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	filter := repository.MovementFilter{
		ItemID: c.Query("item_id"),
		Type:   entity.MovementType(c.Query("type")),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	list, err := h.uc.ListMovements(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ToMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	})
}
