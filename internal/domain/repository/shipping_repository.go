package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ShippingRepository persiste documentos de envío y sus líneas.
type ShippingRepository interface {
	// CreateDocument inserta la cabecera; domain.ErrDuplicate si el número de documento ya existe.
	CreateDocument(ctx context.Context, doc *entity.ShippingDocument) error
	AddItem(ctx context.Context, item *entity.ShippingItem) error
	// GetByID devuelve el documento con sus líneas.
	GetByID(ctx context.Context, id string) (*entity.ShippingDocument, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ShippingDocument, error)
}
