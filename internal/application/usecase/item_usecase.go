package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/validation"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para ítems. El stock sólo cambia vía movimientos.
type ItemUseCase struct {
	txRunner  appinventory.TxRunner
	repos     appinventory.Repos
	movements *appinventory.RegisterMovementUseCase
	ratio     decimal.Decimal
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(txRunner appinventory.TxRunner, repos appinventory.Repos, movements *appinventory.RegisterMovementUseCase, ratio decimal.Decimal) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, repos: repos, movements: movements, ratio: ratio}
}

// Create crea un ítem. Si InitialStock > 0 se registra un IN en la misma transacción.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	name := inventory.NormalizeName(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "required", "nombre requerido")
	}
	category, _ := entity.ParseCategory(in.Category)
	unit := in.UnitType
	if unit == "" {
		unit = appinventory.DefaultRawMaterialUnit
		if category == entity.CategoryFinishedProduct {
			unit = appinventory.DefaultFinishedProductUnit
		}
	}
	threshold := inventory.LowStockThreshold(in.InitialStock, uc.ratio)
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	now := time.Now().UTC()
	item := &entity.Item{
		ID:                uuid.New().String(),
		Name:              name,
		Category:          category,
		UnitType:          unit,
		CurrentStock:      decimal.Zero,
		LowStockThreshold: threshold,
		WeightPerUnit:     in.WeightPerUnit,
		SellingPrice:      in.SellingPrice,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err := uc.txRunner.Run(ctx, func(tx appinventory.Repos) error {
		if err := tx.Items.Create(ctx, item); err != nil {
			return err
		}
		if !in.InitialStock.IsPositive() {
			return nil
		}
		res, err := uc.movements.ApplyInTx(ctx, tx, item.ID, entity.MovementTypeIN, in.InitialStock, "stock inicial", in.PricePerUnit, "")
		if err != nil {
			return err
		}
		item = res.Item
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToItemResponse(item)
	return &out, nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repos.Items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.NotFoundError{Entity: "item", ID: id}
	}
	out := dto.ToItemResponse(item)
	return &out, nil
}

// List lista ítems, opcionalmente filtrados por categoría.
func (uc *ItemUseCase) List(ctx context.Context, category string, page dto.PageRequest) (*dto.ItemListResponse, error) {
	filter := repository.ItemFilter{Limit: page.Limit, Offset: page.Offset}
	if category != "" {
		c, ok := entity.ParseCategory(category)
		if !ok {
			return nil, domain.NewValidationError("category", "oneof", "categoría debe ser raw_material o finished_product")
		}
		filter.Category = c
	}
	list, err := uc.repos.Items.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ItemListResponse{
		Items: dto.ToItemResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza metadatos. El stock nunca se modifica aquí.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	item, err := uc.repos.Items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.NotFoundError{Entity: "item", ID: id}
	}
	if in.Name != nil {
		name := inventory.NormalizeName(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "required", "nombre requerido")
		}
		item.Name = name
	}
	if in.UnitType != nil {
		item.UnitType = *in.UnitType
	}
	if in.LowStockThreshold != nil {
		item.LowStockThreshold = *in.LowStockThreshold
	}
	if in.WeightPerUnit != nil {
		item.WeightPerUnit = in.WeightPerUnit
	}
	if in.SellingPrice != nil {
		item.SellingPrice = in.SellingPrice
	}
	item.UpdatedAt = time.Now().UTC()
	if err := uc.repos.Items.Update(ctx, item); err != nil {
		return nil, err
	}
	updated, err := uc.repos.Items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &domain.NotFoundError{Entity: "item", ID: id}
	}
	out := dto.ToItemResponse(updated)
	return &out, nil
}

// Delete elimina un ítem sin historial. Con movimientos o usado en recetas retorna ErrConflict.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(tx appinventory.Repos) error {
		item, err := tx.Items.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return &domain.NotFoundError{Entity: "item", ID: id}
		}
		n, err := tx.Movements.CountByItem(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("el ítem %s tiene %d movimientos: %w", item.Name, n, domain.ErrConflict)
		}
		lines, err := tx.Recipes.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if l.FinishedProductID == id || l.RawMaterialID == id {
				return fmt.Errorf("el ítem %s se usa en recetas: %w", item.Name, domain.ErrConflict)
			}
		}
		return tx.Items.Delete(ctx, id)
	})
}
