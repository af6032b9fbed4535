package memory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo líneas de receta en memoria.
type RecipeRepo struct{ b binding }

// Create inserta la línea; (producto, material) es único.
func (r *RecipeRepo) Create(ctx context.Context, line *entity.RecipeLine) error {
	return r.b.do(ctx, func(t *tables) error {
		if _, ok := t.items[line.FinishedProductID]; !ok {
			return &domain.NotFoundError{Entity: "item", ID: line.FinishedProductID}
		}
		if _, ok := t.items[line.RawMaterialID]; !ok {
			return &domain.NotFoundError{Entity: "item", ID: line.RawMaterialID}
		}
		for _, id := range t.recOrder {
			l := t.recipes[id]
			if l.FinishedProductID == line.FinishedProductID && l.RawMaterialID == line.RawMaterialID {
				return domain.ErrDuplicate
			}
		}
		c := *line
		t.recipes[line.ID] = &c
		t.recOrder = append(t.recOrder, line.ID)
		return nil
	})
}

// GetByID devuelve la línea o nil.
func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.RecipeLine, error) {
	var out *entity.RecipeLine
	err := r.b.do(ctx, func(t *tables) error {
		if l, ok := t.recipes[id]; ok {
			c := *l
			out = &c
		}
		return nil
	})
	return out, err
}

// ListByFinishedProduct líneas del producto en orden de registro.
func (r *RecipeRepo) ListByFinishedProduct(ctx context.Context, finishedProductID string) ([]*entity.RecipeLine, error) {
	return r.list(ctx, func(l *entity.RecipeLine) bool { return l.FinishedProductID == finishedProductID })
}

// ListAll todas las líneas.
func (r *RecipeRepo) ListAll(ctx context.Context) ([]*entity.RecipeLine, error) {
	return r.list(ctx, func(*entity.RecipeLine) bool { return true })
}

func (r *RecipeRepo) list(ctx context.Context, keep func(*entity.RecipeLine) bool) ([]*entity.RecipeLine, error) {
	var out []*entity.RecipeLine
	err := r.b.do(ctx, func(t *tables) error {
		for _, id := range t.recOrder {
			if l := t.recipes[id]; keep(l) {
				c := *l
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}

// Delete elimina la línea.
func (r *RecipeRepo) Delete(ctx context.Context, id string) error {
	return r.b.do(ctx, func(t *tables) error {
		if _, ok := t.recipes[id]; !ok {
			return &domain.NotFoundError{Entity: "recipe_line", ID: id}
		}
		delete(t.recipes, id)
		t.recOrder = removeID(t.recOrder, id)
		return nil
	})
}
