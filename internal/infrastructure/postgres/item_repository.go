package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, category, unit_type, current_stock, low_stock_threshold,
	weight_per_unit, selling_price, version, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var category string
	if err := row.Scan(
		&it.ID, &it.Name, &category, &it.UnitType, &it.CurrentStock, &it.LowStockThreshold,
		&it.WeightPerUnit, &it.SellingPrice, &it.Version, &it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	it.Category = entity.Category(category)
	return &it, nil
}

func (r *ItemRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr(op, err)
	}
	return it, nil
}

func (r *ItemRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistErr(op, err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, persistErr("scan item", err)
		}
		list = append(list, it)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr(op, err)
	}
	return list, nil
}

// Create persiste un nuevo ítem.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, string(item.Category), item.UnitType, item.CurrentStock, item.LowStockThreshold,
		item.WeightPerUnit, item.SellingPrice, item.Version, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return persistErr("insert item", err)
	}
	return nil
}

// CreateIfAbsent inserta con ON CONFLICT DO NOTHING sobre (category, name).
func (r *ItemRepo) CreateIfAbsent(ctx context.Context, item *entity.Item) (bool, error) {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (category, name) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, string(item.Category), item.UnitType, item.CurrentStock, item.LowStockThreshold,
		item.WeightPerUnit, item.SellingPrice, item.Version, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrDuplicate
		}
		return false, persistErr("insert item if absent", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, "get item", `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, "get item for update", `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// GetByName busca por nombre exacto dentro de la categoría.
func (r *ItemRepo) GetByName(ctx context.Context, category entity.Category, name string) (*entity.Item, error) {
	return r.getOne(ctx, "get item by name",
		`SELECT `+itemColumns+` FROM items WHERE category = $1 AND name = $2`, string(category), name)
}

// List lista ítems más recientes primero. Limit 0 = sin límite.
func (r *ItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	args := []any{}
	pos := 1
	if filter.Category != "" {
		query += fmt.Sprintf(" WHERE category = $%d", pos)
		args = append(args, string(filter.Category))
		pos++
	}
	query += " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, filter.Limit)
		pos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", pos)
		args = append(args, filter.Offset)
	}
	return r.list(ctx, "list items", query, args...)
}

// ListLowStock ítems con stock en o bajo el umbral, mayor déficit primero.
func (r *ItemRepo) ListLowStock(ctx context.Context) ([]*entity.Item, error) {
	return r.list(ctx, "list low stock", `
		SELECT `+itemColumns+` FROM items
		WHERE current_stock <= low_stock_threshold
		ORDER BY (low_stock_threshold - current_stock) DESC, created_at`)
}

// Update actualiza metadatos. No modifica current_stock ni version.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, unit_type = $3, low_stock_threshold = $4,
			weight_per_unit = $5, selling_price = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.UnitType, item.LowStockThreshold,
		item.WeightPerUnit, item.SellingPrice, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return persistErr("update item", err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "item", ID: item.ID}
	}
	return nil
}

// UpdateStock escribe el stock materializado si la versión coincide e incrementa la versión.
func (r *ItemRepo) UpdateStock(ctx context.Context, id string, quantity decimal.Decimal, expectedVersion int64) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE items SET current_stock = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $3`,
		id, quantity, expectedVersion,
	)
	if err != nil {
		if isCheckViolation(err) {
			return persistErr("update stock", fmt.Errorf("stock negativo rechazado para %s: %w", id, err))
		}
		return persistErr("update stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// Delete elimina un ítem. Con movimientos o recetas asociadas la FK lo impide.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return persistErr("delete item", err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "item", ID: id}
	}
	return nil
}
