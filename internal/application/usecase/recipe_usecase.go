package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/validation"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// RecipeUseCase administra las líneas de receta (BOM) de los productos terminados.
type RecipeUseCase struct {
	txRunner appinventory.TxRunner
	repos    appinventory.Repos
	resolver *appinventory.ResolveItemUseCase
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(txRunner appinventory.TxRunner, repos appinventory.Repos, resolver *appinventory.ResolveItemUseCase) *RecipeUseCase {
	return &RecipeUseCase{txRunner: txRunner, repos: repos, resolver: resolver}
}

// Add agrega una línea. Producto y material por nombre se crean con stock 0 si no existen.
func (uc *RecipeUseCase) Add(ctx context.Context, in dto.CreateRecipeLineRequest) (*dto.RecipeLineResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	fpRef := appinventory.ItemRef{ID: in.FinishedProduct.ID, Name: in.FinishedProduct.Name}
	rmRef := appinventory.ItemRef{ID: in.RawMaterial.ID, Name: in.RawMaterial.Name}
	if fpRef.ID == "" && fpRef.Name == "" {
		return nil, domain.NewValidationError("finished_product", "required", "producto terminado requerido")
	}
	if rmRef.ID == "" && rmRef.Name == "" {
		return nil, domain.NewValidationError("raw_material", "required", "materia prima requerida")
	}

	var line *entity.RecipeLine
	var rmName string
	err := uc.txRunner.Run(ctx, func(tx appinventory.Repos) error {
		fp, err := uc.resolver.ResolveRefInTx(ctx, tx, fpRef, entity.CategoryFinishedProduct, decimal.Zero, decimal.Zero)
		if err != nil {
			return err
		}
		rm, err := uc.resolver.ResolveRefInTx(ctx, tx, rmRef, entity.CategoryRawMaterial, decimal.Zero, decimal.Zero)
		if err != nil {
			return err
		}
		unit := in.UnitType
		if unit == "" {
			unit = rm.UnitType
		}
		line = &entity.RecipeLine{
			ID:                uuid.New().String(),
			FinishedProductID: fp.ID,
			RawMaterialID:     rm.ID,
			RequiredQuantity:  in.RequiredQuantity,
			UnitType:          unit,
			CreatedAt:         time.Now().UTC(),
		}
		rmName = rm.Name
		return tx.Recipes.Create(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	out := toRecipeLineResponse(line, rmName)
	return &out, nil
}

// ListByProduct líneas de receta del producto con el nombre de cada material.
func (uc *RecipeUseCase) ListByProduct(ctx context.Context, finishedProductID string) ([]dto.RecipeLineResponse, error) {
	var (
		lines []*entity.RecipeLine
		err   error
	)
	if finishedProductID == "" {
		lines, err = uc.repos.Recipes.ListAll(ctx)
	} else {
		lines, err = uc.repos.Recipes.ListByFinishedProduct(ctx, finishedProductID)
	}
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	out := make([]dto.RecipeLineResponse, 0, len(lines))
	for _, l := range lines {
		name, ok := names[l.RawMaterialID]
		if !ok {
			if rm, err := uc.repos.Items.GetByID(ctx, l.RawMaterialID); err == nil && rm != nil {
				name = rm.Name
			}
			names[l.RawMaterialID] = name
		}
		out = append(out, toRecipeLineResponse(l, name))
	}
	return out, nil
}

// Delete elimina una línea de receta.
func (uc *RecipeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repos.Recipes.Delete(ctx, id)
}

func toRecipeLineResponse(l *entity.RecipeLine, rmName string) dto.RecipeLineResponse {
	return dto.RecipeLineResponse{
		ID:                l.ID,
		FinishedProductID: l.FinishedProductID,
		RawMaterialID:     l.RawMaterialID,
		RawMaterialName:   rmName,
		RequiredQuantity:  l.RequiredQuantity,
		UnitType:          l.UnitType,
		CreatedAt:         l.CreatedAt,
	}
}
