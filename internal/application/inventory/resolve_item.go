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
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Unidades por defecto de ítems auto-creados.
const (
	DefaultRawMaterialUnit     = "kg"
	DefaultFinishedProductUnit = "units"
)

const initialStockNote = "stock inicial"

// ResolveItemUseCase busca un ítem por nombre exacto dentro de su categoría y lo crea si no existe.
type ResolveItemUseCase struct {
	txRunner  TxRunner
	movements *RegisterMovementUseCase
	ratio     decimal.Decimal
	log       *logger.Logger
}

// NewResolveItemUseCase construye el caso de uso. ratio es la fracción usada para el umbral
// de stock bajo (cero = inventory.DefaultLowStockRatio).
func NewResolveItemUseCase(txRunner TxRunner, movements *RegisterMovementUseCase, ratio decimal.Decimal, log *logger.Logger) *ResolveItemUseCase {
	return &ResolveItemUseCase{txRunner: txRunner, movements: movements, ratio: ratio, log: log.Named("resolve")}
}

// ResolveInput entrada de find-or-create.
type ResolveInput struct {
	Name            string
	Category        entity.Category
	InitialQuantity decimal.Decimal
	// ThresholdBasis cantidad sobre la que se calcula el umbral; nil = InitialQuantity.
	ThresholdBasis *decimal.Decimal
	UnitType       string
}

// ResolveResult ítem encontrado o creado.
type ResolveResult struct {
	Item    *entity.Item
	Created bool
}

// Resolve ejecuta find-or-create en una transacción propia.
func (uc *ResolveItemUseCase) Resolve(ctx context.Context, in ResolveInput) (*ResolveResult, error) {
	var res *ResolveResult
	err := uc.txRunner.Run(ctx, func(tx Repos) error {
		var rErr error
		res, rErr = uc.ResolveInTx(ctx, tx, in)
		return rErr
	})
	if err != nil {
		return nil, err
	}
	if res.Created {
		uc.log.Info().Str("item_id", res.Item.ID).Str("name", res.Item.Name).
			Str("category", string(res.Item.Category)).Msg("ítem auto-creado")
	}
	return res, nil
}

// ResolveInTx hace find-or-create dentro de la transacción del caller.
// Un ítem nuevo nace con stock 0 y, si InitialQuantity > 0, con un IN "stock inicial"
// de modo que el libro y el stock materializado coincidan desde el origen.
func (uc *ResolveItemUseCase) ResolveInTx(ctx context.Context, tx Repos, in ResolveInput) (*ResolveResult, error) {
	name := inventory.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "required", "nombre requerido")
	}
	if !in.Category.Valid() {
		return nil, domain.NewValidationError("category", "oneof", "categoría debe ser raw_material o finished_product")
	}
	if in.InitialQuantity.IsNegative() {
		return nil, domain.NewValidationError("initial_quantity", "gte", "la cantidad inicial no puede ser negativa")
	}

	existing, err := tx.Items.GetByName(ctx, in.Category, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &ResolveResult{Item: existing}, nil
	}

	basis := in.InitialQuantity
	if in.ThresholdBasis != nil {
		basis = *in.ThresholdBasis
	}
	unit := in.UnitType
	if unit == "" {
		unit = DefaultRawMaterialUnit
		if in.Category == entity.CategoryFinishedProduct {
			unit = DefaultFinishedProductUnit
		}
	}
	now := time.Now().UTC()
	item := &entity.Item{
		ID:                uuid.New().String(),
		Name:              name,
		Category:          in.Category,
		UnitType:          unit,
		CurrentStock:      decimal.Zero,
		LowStockThreshold: inventory.LowStockThreshold(basis, uc.ratio),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	created, err := tx.Items.CreateIfAbsent(ctx, item)
	if err != nil {
		return nil, err
	}
	if !created {
		// Otro escritor lo creó entre la búsqueda y la inserción.
		existing, err = tx.Items.GetByName(ctx, in.Category, name)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("re-leer ítem %q: %w", name, domain.ErrConflict)
		}
		return &ResolveResult{Item: existing}, nil
	}

	if in.InitialQuantity.IsPositive() {
		res, err := uc.movements.ApplyInTx(ctx, tx, item.ID, entity.MovementTypeIN, in.InitialQuantity, initialStockNote, nil, "")
		if err != nil {
			return nil, err
		}
		item = res.Item
	}
	return &ResolveResult{Item: item, Created: true}, nil
}

// ResolveRefInTx carga el ítem por ID (verificando la categoría) o lo busca/crea por nombre.
// initial es el stock inicial y basis la base del umbral si se crea.
func (uc *ResolveItemUseCase) ResolveRefInTx(
	ctx context.Context,
	tx Repos,
	ref ItemRef,
	category entity.Category,
	initial, basis decimal.Decimal,
) (*entity.Item, error) {
	if id := strings.TrimSpace(ref.ID); id != "" {
		item, err := tx.Items.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, &domain.NotFoundError{Entity: "item", ID: id}
		}
		if item.Category != category {
			return nil, domain.NewValidationError("category", "eq", "el ítem "+item.Name+" no es "+string(category))
		}
		return item, nil
	}
	res, err := uc.ResolveInTx(ctx, tx, ResolveInput{
		Name:            ref.Name,
		Category:        category,
		InitialQuantity: initial,
		ThresholdBasis:  &basis,
	})
	if err != nil {
		return nil, err
	}
	return res.Item, nil
}
