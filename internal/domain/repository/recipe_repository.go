package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// RecipeRepository define el puerto de persistencia para las líneas de receta (BOM).
type RecipeRepository interface {
	Create(ctx context.Context, line *entity.RecipeLine) error
	GetByID(ctx context.Context, id string) (*entity.RecipeLine, error)
	ListByFinishedProduct(ctx context.Context, finishedProductID string) ([]*entity.RecipeLine, error)
	ListAll(ctx context.Context) ([]*entity.RecipeLine, error)
	Delete(ctx context.Context, id string) error
}
