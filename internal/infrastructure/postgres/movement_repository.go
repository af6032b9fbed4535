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

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, item_id, type, quantity, notes, price_per_unit, reference, created_at`

// MovementRepo libro de movimientos sobre PostgreSQL. Sólo inserción; seq fija el orden de registro.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, string(m.Type), m.Quantity, m.Notes, m.PricePerUnit, m.Reference, m.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return &domain.NotFoundError{Entity: "item", ID: m.ItemID}
		}
		return persistErr("insert movement", err)
	}
	return nil
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, persistErr("list movements", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var typ string
		if err := rows.Scan(&m.ID, &m.ItemID, &typ, &m.Quantity, &m.Notes, &m.PricePerUnit, &m.Reference, &m.CreatedAt); err != nil {
			return nil, persistErr("scan movement", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list movements", err)
	}
	return list, nil
}

// List movimientos más recientes primero, con filtros opcionales por ítem y tipo.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, string(filter.Type))
		pos++
	}
	query += " ORDER BY seq DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, filter.Limit)
		pos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", pos)
		args = append(args, filter.Offset)
	}
	return r.list(ctx, query, args...)
}

// ListByItem todos los movimientos del ítem en orden de registro.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements WHERE item_id = $1 ORDER BY seq`, itemID)
}

// LatestInPrice precio del IN más reciente; nil si no hay IN o si ese IN no tiene precio.
func (r *MovementRepo) LatestInPrice(ctx context.Context, itemID string) (*decimal.Decimal, error) {
	var price *decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT price_per_unit FROM movements
		WHERE item_id = $1 AND type = 'IN'
		ORDER BY created_at DESC, seq DESC LIMIT 1`, itemID).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("latest in price", err)
	}
	return price, nil
}

// CountByItem cantidad de movimientos del ítem.
func (r *MovementRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM movements WHERE item_id = $1`, itemID).Scan(&n); err != nil {
		return 0, persistErr("count movements", err)
	}
	return n, nil
}
