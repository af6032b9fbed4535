package usecase

import (
	"context"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ShippingLineForPDF línea del documento enriquecida con el nombre y unidad del producto.
type ShippingLineForPDF struct {
	ProductName string
	UnitType    string
	Quantity    decimal.Decimal
}

// ShippingNoteGenerator genera la nota de entrega en PDF.
type ShippingNoteGenerator interface {
	GenerateShippingNote(ctx context.Context, doc *entity.ShippingDocument, lines []ShippingLineForPDF) ([]byte, error)
}

// ShipmentPDFUseCase genera la nota de entrega (manifiesto para el cliente) de un envío.
type ShipmentPDFUseCase struct {
	shipping  repository.ShippingRepository
	items     repository.ItemRepository
	generator ShippingNoteGenerator
}

// NewShipmentPDFUseCase construye el caso de uso.
func NewShipmentPDFUseCase(shipping repository.ShippingRepository, items repository.ItemRepository, generator ShippingNoteGenerator) *ShipmentPDFUseCase {
	return &ShipmentPDFUseCase{shipping: shipping, items: items, generator: generator}
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DownloadShipmentPDF devuelve (pdfBytes, filename, nil) o domain.ErrNotFound si el envío no existe.
func (uc *ShipmentPDFUseCase) DownloadShipmentPDF(ctx context.Context, docID string) ([]byte, string, error) {
	doc, err := uc.shipping.GetByID(ctx, docID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener envío: %w", err)
	}
	if doc == nil {
		return nil, "", &domain.NotFoundError{Entity: "shipping_doc", ID: docID}
	}

	lines := make([]ShippingLineForPDF, 0, len(doc.Items))
	for _, it := range doc.Items {
		name, unit := "Producto "+it.ProductID, ""
		if p, pErr := uc.items.GetByID(ctx, it.ProductID); pErr == nil && p != nil {
			name, unit = p.Name, p.UnitType
		}
		lines = append(lines, ShippingLineForPDF{ProductName: name, UnitType: unit, Quantity: it.Quantity})
	}

	pdfBytes, err := uc.generator.GenerateShippingNote(ctx, doc, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, "envio_" + unsafeFilename.ReplaceAllString(doc.DocNumber, "_") + ".pdf", nil
}
