package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

const recipeColumns = `id, finished_product_id, raw_material_id, required_quantity, unit_type, created_at`

// RecipeRepo líneas de receta sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste una línea de receta. (producto, material) es único.
func (r *RecipeRepo) Create(ctx context.Context, l *entity.RecipeLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO recipe_lines (`+recipeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.FinishedProductID, l.RawMaterialID, l.RequiredQuantity, l.UnitType, l.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return &domain.NotFoundError{Entity: "item", ID: l.FinishedProductID + "/" + l.RawMaterialID}
		}
		return persistErr("insert recipe line", err)
	}
	return nil
}

func scanRecipe(row pgx.Row) (*entity.RecipeLine, error) {
	var l entity.RecipeLine
	err := row.Scan(&l.ID, &l.FinishedProductID, &l.RawMaterialID, &l.RequiredQuantity, &l.UnitType, &l.CreatedAt)
	return &l, err
}

// GetByID obtiene una línea por ID.
func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.RecipeLine, error) {
	l, err := scanRecipe(r.q.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipe_lines WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("get recipe line", err)
	}
	return l, nil
}

func (r *RecipeRepo) list(ctx context.Context, query string, args ...any) ([]*entity.RecipeLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistErr("list recipe lines", err)
	}
	defer rows.Close()
	var list []*entity.RecipeLine
	for rows.Next() {
		l, err := scanRecipe(rows)
		if err != nil {
			return nil, persistErr("scan recipe line", err)
		}
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list recipe lines", err)
	}
	return list, nil
}

// ListByFinishedProduct líneas del producto en orden de creación.
func (r *RecipeRepo) ListByFinishedProduct(ctx context.Context, finishedProductID string) ([]*entity.RecipeLine, error) {
	return r.list(ctx, `SELECT `+recipeColumns+` FROM recipe_lines
		WHERE finished_product_id = $1 ORDER BY created_at, id`, finishedProductID)
}

// ListAll todas las líneas.
func (r *RecipeRepo) ListAll(ctx context.Context) ([]*entity.RecipeLine, error) {
	return r.list(ctx, `SELECT `+recipeColumns+` FROM recipe_lines ORDER BY finished_product_id, created_at, id`)
}

// Delete elimina una línea.
func (r *RecipeRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM recipe_lines WHERE id = $1`, id)
	if err != nil {
		return persistErr("delete recipe line", err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "recipe_line", ID: id}
	}
	return nil
}
