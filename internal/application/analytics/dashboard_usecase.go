package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

// Dashboard resumen de la pantalla principal: merma de la ventana configurada,
// rentabilidad por receta y alertas de stock bajo.
type Dashboard struct {
	Waste         []inventory.DailyWasteSummary
	Profitability []inventory.Profitability
	LowStock      []*entity.Item
}

// Summary ejecuta los tres reportes en paralelo.
func (uc *ReportUseCase) Summary(ctx context.Context) (*Dashboard, error) {
	type wasteResult struct {
		rows []inventory.DailyWasteSummary
		err  error
	}
	type profitResult struct {
		rows []inventory.Profitability
		err  error
	}
	type lowResult struct {
		items []*entity.Item
		err   error
	}

	wasteCh := make(chan wasteResult, 1)
	profitCh := make(chan profitResult, 1)
	lowCh := make(chan lowResult, 1)

	go func() {
		rows, err := uc.ReportWaste(ctx, 0)
		wasteCh <- wasteResult{rows, err}
	}()
	go func() {
		rows, err := uc.ReportProfitability(ctx)
		profitCh <- profitResult{rows, err}
	}()
	go func() {
		items, err := uc.LowStock(ctx)
		lowCh <- lowResult{items, err}
	}()

	waste := <-wasteCh
	profit := <-profitCh
	low := <-lowCh

	if waste.err != nil {
		return nil, fmt.Errorf("dashboard: merma: %w", waste.err)
	}
	if profit.err != nil {
		return nil, fmt.Errorf("dashboard: rentabilidad: %w", profit.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	return &Dashboard{Waste: waste.rows, Profitability: profit.rows, LowStock: low.items}, nil
}
