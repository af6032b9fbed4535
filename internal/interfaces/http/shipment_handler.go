package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/application/validation"
)

// ShipmentHandler maneja los documentos de envío.
type ShipmentHandler struct {
	uc  *inventory.ShippingUseCase
	pdf *usecase.ShipmentPDFUseCase
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc *inventory.ShippingUseCase, pdf *usecase.ShipmentPDFUseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Despachar productos a un cliente
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "Cliente, número de documento y líneas"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validation.Struct(in); err != nil {
		return writeError(c, err)
	}
	lines := make([]inventory.ShipmentLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, inventory.ShipmentLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	doc, err := h.uc.RunShipment(c.UserContext(), inventory.ShipmentInput{
		CustomerName: in.CustomerName,
		DocNumber:    in.DocNumber,
		Lines:        lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToShipmentResponse(doc))
}

// GetByID godoc
// @Summary      Obtener documento de envío
// @Tags         shipments
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToShipmentResponse(doc))
}

// List godoc
// @Summary      Listar documentos de envío
// @Tags         shipments
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ShipmentListResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	docs, err := h.uc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.ShipmentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, dto.ToShipmentResponse(d))
	}
	return c.JSON(dto.ShipmentListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// PDF godoc
// @Summary      Descargar nota de entrega en PDF
// @Tags         shipments
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/pdf [get]
func (h *ShipmentHandler) PDF(c *fiber.Ctx) error {
	out, filename, err := h.pdf.DownloadShipmentPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(filename))
	return c.Send(out)
}
