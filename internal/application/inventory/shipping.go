package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

const defaultShipmentPage = 20

// ShipmentLine línea solicitada de un envío.
type ShipmentLine struct {
	ProductID string
	Quantity  decimal.Decimal
}

// ShipmentInput entrada de un documento de envío.
type ShipmentInput struct {
	CustomerName string
	DocNumber    string
	Lines        []ShipmentLine
}

// ShippingUseCase despacha productos a clientes: cabecera, líneas y salidas de stock en una transacción.
type ShippingUseCase struct {
	txRunner  TxRunner
	repos     Repos
	movements *RegisterMovementUseCase
	log       *logger.Logger
}

// NewShippingUseCase construye el caso de uso.
func NewShippingUseCase(txRunner TxRunner, repos Repos, movements *RegisterMovementUseCase, log *logger.Logger) *ShippingUseCase {
	return &ShippingUseCase{txRunner: txRunner, repos: repos, movements: movements, log: log.Named("shipping")}
}

func (in *ShipmentInput) normalize() error {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.DocNumber = strings.TrimSpace(in.DocNumber)

	verr := &domain.ValidationError{}
	add := func(field, rule, msg string) {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: field, Rule: rule, Message: msg})
	}
	if in.CustomerName == "" {
		add("customer_name", "required", "cliente requerido")
	}
	if in.DocNumber == "" {
		add("doc_number", "required", "número de documento requerido")
	}
	if len(in.Lines) == 0 {
		add("items", "min", "el envío debe tener al menos una línea")
	}
	seen := make(map[string]bool, len(in.Lines))
	for i, l := range in.Lines {
		field := fmt.Sprintf("items[%d]", i)
		id := strings.TrimSpace(l.ProductID)
		if id == "" {
			add(field+".product_id", "required", "producto requerido")
		} else if seen[id] {
			add(field+".product_id", "unique", "producto repetido en el documento")
		}
		seen[id] = true
		in.Lines[i].ProductID = id
		if !l.Quantity.IsPositive() {
			add(field+".quantity", "gt", "la cantidad debe ser mayor que 0")
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// RunShipment registra el documento y descuenta el stock de cada línea. Si alguna línea no
// tiene stock suficiente se revierte el documento completo.
func (uc *ShippingUseCase) RunShipment(ctx context.Context, in ShipmentInput) (*entity.ShippingDocument, error) {
	in.Lines = append([]ShipmentLine(nil), in.Lines...)
	if err := in.normalize(); err != nil {
		return nil, err
	}
	doc := &entity.ShippingDocument{
		ID:           uuid.New().String(),
		CustomerName: in.CustomerName,
		DocNumber:    in.DocNumber,
		Status:       entity.ShippingStatusCompleted,
		CreatedAt:    time.Now().UTC(),
	}
	note := "Shipping Doc: " + in.DocNumber

	err := uc.txRunner.Run(ctx, func(tx Repos) error {
		if err := tx.Shipping.CreateDocument(ctx, doc); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("documento %s ya existe: %w", in.DocNumber, domain.ErrConflict)
			}
			return err
		}
		for _, l := range in.Lines {
			if _, err := uc.movements.ApplyInTx(ctx, tx, l.ProductID, entity.MovementTypeOUT, l.Quantity, note, nil, doc.ID); err != nil {
				return err
			}
			item := entity.ShippingItem{DocID: doc.ID, ProductID: l.ProductID, Quantity: l.Quantity}
			if err := tx.Shipping.AddItem(ctx, &item); err != nil {
				return err
			}
			doc.Items = append(doc.Items, item)
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("doc_number", in.DocNumber).Msg("envío rechazado")
		return nil, err
	}
	uc.log.Info().Str("doc_id", doc.ID).Str("doc_number", doc.DocNumber).
		Int("lines", len(doc.Items)).Str("total", doc.TotalQuantity().String()).Msg("envío registrado")
	return doc, nil
}

// Get obtiene un documento de envío con sus líneas.
func (uc *ShippingUseCase) Get(ctx context.Context, id string) (*entity.ShippingDocument, error) {
	doc, err := uc.repos.Shipping.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &domain.NotFoundError{Entity: "shipping_doc", ID: id}
	}
	return doc, nil
}

// List lista documentos de envío, más recientes primero.
func (uc *ShippingUseCase) List(ctx context.Context, limit, offset int) ([]*entity.ShippingDocument, error) {
	if limit <= 0 {
		limit = defaultShipmentPage
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repos.Shipping.List(ctx, limit, offset)
}
