package memory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ShippingRepository = (*ShippingRepo)(nil)

// ShippingRepo documentos de envío en memoria.
type ShippingRepo struct{ b binding }

// CreateDocument inserta la cabecera; DocNumber es único.
func (r *ShippingRepo) CreateDocument(ctx context.Context, doc *entity.ShippingDocument) error {
	return r.b.do(ctx, func(t *tables) error {
		if _, ok := t.docs[doc.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, existing := range t.docs {
			if existing.DocNumber == doc.DocNumber {
				return domain.ErrDuplicate
			}
		}
		c := doc.Clone()
		c.Items = nil
		t.docs[doc.ID] = c
		t.docOrder = append(t.docOrder, doc.ID)
		return nil
	})
}

// AddItem agrega una línea a un documento existente.
func (r *ShippingRepo) AddItem(ctx context.Context, item *entity.ShippingItem) error {
	return r.b.do(ctx, func(t *tables) error {
		doc, ok := t.docs[item.DocID]
		if !ok {
			return &domain.NotFoundError{Entity: "shipping_doc", ID: item.DocID}
		}
		if _, ok := t.items[item.ProductID]; !ok {
			return &domain.NotFoundError{Entity: "item", ID: item.ProductID}
		}
		next := doc.Clone()
		next.Items = append(next.Items, *item)
		t.docs[item.DocID] = next
		return nil
	})
}

// GetByID devuelve el documento con sus líneas o nil.
func (r *ShippingRepo) GetByID(ctx context.Context, id string) (*entity.ShippingDocument, error) {
	var out *entity.ShippingDocument
	err := r.b.do(ctx, func(t *tables) error {
		out = t.docs[id].Clone()
		return nil
	})
	return out, err
}

// List más recientes primero.
func (r *ShippingRepo) List(ctx context.Context, limit, offset int) ([]*entity.ShippingDocument, error) {
	var out []*entity.ShippingDocument
	err := r.b.do(ctx, func(t *tables) error {
		for i := len(t.docOrder) - 1; i >= 0; i-- {
			out = append(out, t.docs[t.docOrder[i]].Clone())
		}
		return nil
	})
	return paginate(out, limit, offset), err
}
