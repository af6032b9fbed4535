package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ProductionRunRepository = (*ProductionRunRepo)(nil)

const runColumns = `id, mode, raw_material_id, raw_material_quantity, finished_product_id, finished_product_quantity,
	theoretical_output_weight, waste_quantity, waste_percentage, clamped_waste_quantity, clamped_waste_percentage, created_at`

// ProductionRunRepo corridas de producción (cabecera + líneas) sobre PostgreSQL.
type ProductionRunRepo struct {
	q Querier
}

// NewProductionRunRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRunRepository(q Querier) *ProductionRunRepo {
	return &ProductionRunRepo{q: q}
}

// Create inserta la corrida y sus líneas. Debe llamarse dentro de una tx para que sea atómico.
func (r *ProductionRunRepo) Create(ctx context.Context, run *entity.ProductionRun) error {
	var rawID *string
	if run.RawMaterialID != "" {
		rawID = &run.RawMaterialID
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO production_runs (`+runColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		run.ID, string(run.Mode), rawID, run.RawMaterialQuantity, run.FinishedProductID, run.FinishedProductQuantity,
		run.TheoreticalOutputWeight, run.WasteQuantity, run.WastePercentage,
		run.ClampedWasteQuantity, run.ClampedWastePercentage, run.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return &domain.NotFoundError{Entity: "item", ID: run.FinishedProductID}
		}
		return persistErr("insert production run", err)
	}
	for i, l := range run.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO production_run_lines (run_id, position, raw_material_id, planned_quantity, actual_quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			run.ID, i, l.RawMaterialID, l.PlannedQuantity, l.ActualQuantity,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return &domain.NotFoundError{Entity: "item", ID: l.RawMaterialID}
			}
			return persistErr("insert production run line", err)
		}
	}
	return nil
}

func scanRun(row pgx.Row) (*entity.ProductionRun, error) {
	var run entity.ProductionRun
	var mode string
	var rawID *string
	if err := row.Scan(
		&run.ID, &mode, &rawID, &run.RawMaterialQuantity, &run.FinishedProductID, &run.FinishedProductQuantity,
		&run.TheoreticalOutputWeight, &run.WasteQuantity, &run.WastePercentage,
		&run.ClampedWasteQuantity, &run.ClampedWastePercentage, &run.CreatedAt,
	); err != nil {
		return nil, err
	}
	run.Mode = entity.ProductionMode(mode)
	if rawID != nil {
		run.RawMaterialID = *rawID
	}
	return &run, nil
}

func (r *ProductionRunRepo) loadLines(ctx context.Context, run *entity.ProductionRun) error {
	rows, err := r.q.Query(ctx, `
		SELECT raw_material_id, planned_quantity, actual_quantity
		FROM production_run_lines WHERE run_id = $1 ORDER BY position`, run.ID)
	if err != nil {
		return persistErr("list production run lines", err)
	}
	defer rows.Close()
	for rows.Next() {
		l := entity.ProductionLine{RunID: run.ID}
		if err := rows.Scan(&l.RawMaterialID, &l.PlannedQuantity, &l.ActualQuantity); err != nil {
			return persistErr("scan production run line", err)
		}
		run.Lines = append(run.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return persistErr("list production run lines", err)
	}
	return nil
}

// GetByID obtiene la corrida con sus líneas.
func (r *ProductionRunRepo) GetByID(ctx context.Context, id string) (*entity.ProductionRun, error) {
	run, err := scanRun(r.q.QueryRow(ctx, `SELECT `+runColumns+` FROM production_runs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistErr("get production run", err)
	}
	if err := r.loadLines(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListSince corridas con created_at >= since, más recientes primero.
func (r *ProductionRunRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.ProductionRun, error) {
	rows, err := r.q.Query(ctx, `SELECT `+runColumns+` FROM production_runs
		WHERE created_at >= $1 ORDER BY created_at DESC`, since)
	if err != nil {
		return nil, persistErr("list production runs", err)
	}
	var list []*entity.ProductionRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, persistErr("scan production run", err)
		}
		list = append(list, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, persistErr("list production runs", err)
	}
	// las líneas se cargan después de cerrar el cursor: una tx pgx no admite consultas anidadas
	for _, run := range list {
		if err := r.loadLines(ctx, run); err != nil {
			return nil, err
		}
	}
	return list, nil
}
