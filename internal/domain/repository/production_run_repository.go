package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ProductionRunRepository persiste corridas de producción junto con sus líneas.
type ProductionRunRepository interface {
	Create(ctx context.Context, run *entity.ProductionRun) error
	GetByID(ctx context.Context, id string) (*entity.ProductionRun, error)
	// ListSince devuelve las corridas con CreatedAt >= since, más recientes primero.
	ListSince(ctx context.Context, since time.Time) ([]*entity.ProductionRun, error)
}
