package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ShippingRepository = (*ShippingRepo)(nil)

// ShippingRepo documentos de envío sobre PostgreSQL.
type ShippingRepo struct {
	q Querier
}

// NewShippingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShippingRepository(q Querier) *ShippingRepo {
	return &ShippingRepo{q: q}
}

// CreateDocument inserta la cabecera. doc_number es único.
func (r *ShippingRepo) CreateDocument(ctx context.Context, doc *entity.ShippingDocument) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO shipping_docs (id, customer_name, doc_number, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		doc.ID, doc.CustomerName, doc.DocNumber, doc.Status, doc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return persistErr("insert shipping doc", err)
	}
	return nil
}

// AddItem inserta una línea al final del documento.
func (r *ShippingRepo) AddItem(ctx context.Context, item *entity.ShippingItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO shipping_items (doc_id, position, product_id, quantity)
		VALUES ($1, (SELECT count(*) FROM shipping_items WHERE doc_id = $1), $2, $3)`,
		item.DocID, item.ProductID, item.Quantity,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return &domain.NotFoundError{Entity: "shipping_item", ID: item.DocID + "/" + item.ProductID}
		}
		return persistErr("insert shipping item", err)
	}
	return nil
}

func (r *ShippingRepo) loadItems(ctx context.Context, doc *entity.ShippingDocument) error {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, quantity FROM shipping_items WHERE doc_id = $1 ORDER BY position`, doc.ID)
	if err != nil {
		return persistErr("list shipping items", err)
	}
	defer rows.Close()
	for rows.Next() {
		it := entity.ShippingItem{DocID: doc.ID}
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return persistErr("scan shipping item", err)
		}
		doc.Items = append(doc.Items, it)
	}
	if err := rows.Err(); err != nil {
		return persistErr("list shipping items", err)
	}
	return nil
}

// GetByID documento con sus líneas.
func (r *ShippingRepo) GetByID(ctx context.Context, id string) (*entity.ShippingDocument, error) {
	var doc entity.ShippingDocument
	err := r.q.QueryRow(ctx, `
		SELECT id, customer_name, doc_number, status, created_at FROM shipping_docs WHERE id = $1`, id).
		Scan(&doc.ID, &doc.CustomerName, &doc.DocNumber, &doc.Status, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("get shipping doc", err)
	}
	if err := r.loadItems(ctx, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// List documentos más recientes primero, con sus líneas.
func (r *ShippingRepo) List(ctx context.Context, limit, offset int) ([]*entity.ShippingDocument, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, customer_name, doc_number, status, created_at FROM shipping_docs
		ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, persistErr("list shipping docs", err)
	}
	var list []*entity.ShippingDocument
	for rows.Next() {
		var doc entity.ShippingDocument
		if err := rows.Scan(&doc.ID, &doc.CustomerName, &doc.DocNumber, &doc.Status, &doc.CreatedAt); err != nil {
			rows.Close()
			return nil, persistErr("scan shipping doc", err)
		}
		list = append(list, &doc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, persistErr("list shipping docs", err)
	}
	for _, doc := range list {
		if err := r.loadItems(ctx, doc); err != nil {
			return nil, err
		}
	}
	return list, nil
}
