package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.ProductionRunRepository = (*ProductionRunRepo)(nil)

// ProductionRunRepo corridas de producción en memoria.
type ProductionRunRepo struct{ b binding }

// Create inserta la corrida con sus líneas.
func (r *ProductionRunRepo) Create(ctx context.Context, run *entity.ProductionRun) error {
	return r.b.do(ctx, func(t *tables) error {
		for _, existing := range t.runs {
			if existing.ID == run.ID {
				return domain.ErrDuplicate
			}
		}
		t.runs = append(t.runs, run.Clone())
		return nil
	})
}

// GetByID devuelve la corrida o nil.
func (r *ProductionRunRepo) GetByID(ctx context.Context, id string) (*entity.ProductionRun, error) {
	var out *entity.ProductionRun
	err := r.b.do(ctx, func(t *tables) error {
		for _, run := range t.runs {
			if run.ID == id {
				out = run.Clone()
				break
			}
		}
		return nil
	})
	return out, err
}

// ListSince corridas con CreatedAt >= since, más recientes primero.
func (r *ProductionRunRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.ProductionRun, error) {
	var out []*entity.ProductionRun
	err := r.b.do(ctx, func(t *tables) error {
		for _, run := range t.runs {
			if !run.CreatedAt.Before(since) {
				out = append(out, run.Clone())
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}
