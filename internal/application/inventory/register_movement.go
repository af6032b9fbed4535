package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

const defaultMovementPage = 50

// RegisterMovementUseCase registra movimientos IN/OUT de forma transaccional: bloqueo de la
// fila del ítem (SELECT FOR UPDATE), inserción del movimiento y escritura del stock con CAS
// sobre la versión. Cualquier fallo revierte ambas escrituras.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	repos    Repos
	log      *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, repos Repos, log *logger.Logger) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, repos: repos, log: log.Named("movements")}
}

// MovementInput entrada para registrar un movimiento. Type se acepta sin distinguir mayúsculas.
type MovementInput struct {
	ItemID       string
	Type         string
	Quantity     decimal.Decimal
	Notes        string
	PricePerUnit *decimal.Decimal
	Reference    string
}

// MovementResult movimiento persistido y stock resultante del ítem.
type MovementResult struct {
	Movement *entity.Movement
	Item     *entity.Item
}

func (in MovementInput) validate() (entity.MovementType, error) {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(in.ItemID) == "" {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "item_id", Rule: "required", Message: "ítem requerido"})
	}
	t, ok := entity.ParseMovementType(in.Type)
	if !ok {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "type", Rule: "oneof", Message: "tipo debe ser IN u OUT"})
	}
	if !in.Quantity.IsPositive() {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "quantity", Rule: "gt", Message: "la cantidad debe ser mayor que 0"})
	}
	if in.PricePerUnit != nil && in.PricePerUnit.IsNegative() {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "price_per_unit", Rule: "gte", Message: "el precio no puede ser negativo"})
	}
	if len(verr.Fields) > 0 {
		return "", verr
	}
	return t, nil
}

// RecordMovement valida la entrada y aplica el movimiento en una transacción propia.
func (uc *RegisterMovementUseCase) RecordMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	t, err := in.validate()
	if err != nil {
		return nil, err
	}
	var res *MovementResult
	err = uc.txRunner.Run(ctx, func(tx Repos) error {
		var applyErr error
		res, applyErr = uc.ApplyInTx(ctx, tx, in.ItemID, t, in.Quantity, in.Notes, in.PricePerUnit, in.Reference)
		return applyErr
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("item_id", in.ItemID).Str("type", string(t)).
			Str("quantity", in.Quantity.String()).Msg("movimiento rechazado")
		return nil, err
	}
	uc.log.Info().Str("item_id", in.ItemID).Str("type", string(t)).
		Str("quantity", in.Quantity.String()).Str("stock", res.Item.CurrentStock.String()).
		Msg("movimiento registrado")
	return res, nil
}

// ApplyInTx aplica un movimiento usando los repositorios de la transacción del caller.
// Bloquea la fila del ítem, verifica la salida contra el stock, inserta el movimiento
// y escribe el nuevo stock. El caller decide Commit/Rollback.
func (uc *RegisterMovementUseCase) ApplyInTx(
	ctx context.Context,
	tx Repos,
	itemID string,
	t entity.MovementType,
	quantity decimal.Decimal,
	notes string,
	price *decimal.Decimal,
	reference string,
) (*MovementResult, error) {
	item, err := tx.Items.GetByIDForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.NotFoundError{Entity: "item", ID: itemID}
	}
	newQty, err := inventory.ApplyMovement(item, t, quantity)
	if err != nil {
		return nil, err
	}
	mov := &entity.Movement{
		ID:           uuid.New().String(),
		ItemID:       item.ID,
		Type:         t,
		Quantity:     quantity,
		Notes:        notes,
		PricePerUnit: price,
		Reference:    reference,
		CreatedAt:    time.Now().UTC(),
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := tx.Items.UpdateStock(ctx, item.ID, newQty, item.Version); err != nil {
		return nil, fmt.Errorf("actualizar stock de %s: %w", item.ID, err)
	}
	item.CurrentStock = newQty
	item.Version++
	return &MovementResult{Movement: mov, Item: item}, nil
}

// ListMovements lista el libro de movimientos, más recientes primero.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.Type != "" {
		t, ok := entity.ParseMovementType(string(filter.Type))
		if !ok {
			return nil, domain.NewValidationError("type", "oneof", "tipo debe ser IN u OUT")
		}
		filter.Type = t
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultMovementPage
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.repos.Movements.List(ctx, filter)
}
