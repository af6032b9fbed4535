// Package analytics contiene los reportes de sólo lectura del libro de stock:
// merma diaria de producción, rentabilidad por receta y stock bajo.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// DefaultWasteDays ventana por defecto del reporte de merma.
const DefaultWasteDays = 14

const maxWasteDays = 366

// ReportUseCase genera los reportes a partir de los repositorios (consultas read-only).
type ReportUseCase struct {
	items     repository.ItemRepository
	movements repository.MovementRepository
	recipes   repository.RecipeRepository
	runs      repository.ProductionRunRepository
	wasteDays int
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. wasteDays <= 0 usa DefaultWasteDays.
func NewReportUseCase(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	recipes repository.RecipeRepository,
	runs repository.ProductionRunRepository,
	wasteDays int,
) *ReportUseCase {
	if wasteDays <= 0 {
		wasteDays = DefaultWasteDays
	}
	return &ReportUseCase{
		items:     items,
		movements: movements,
		recipes:   recipes,
		runs:      runs,
		wasteDays: wasteDays,
		now:       time.Now,
	}
}

// SetClock reemplaza el reloj usado para calcular la ventana del reporte de merma.
func (uc *ReportUseCase) SetClock(now func() time.Time) { uc.now = now }

// WasteDays ventana por defecto del reporte de merma.
func (uc *ReportUseCase) WasteDays() int { return uc.wasteDays }

// WasteWindowStart inicio (UTC) de una ventana de days días que incluye hoy.
func WasteWindowStart(now time.Time, days int) time.Time {
	t := now.UTC()
	today := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -(days - 1))
}

// ReportWaste agrega por día UTC las corridas de los últimos days días, la más reciente primero.
// days = 0 usa la ventana configurada.
func (uc *ReportUseCase) ReportWaste(ctx context.Context, days int) ([]inventory.DailyWasteSummary, error) {
	if days == 0 {
		days = uc.wasteDays
	}
	if days < 0 || days > maxWasteDays {
		return nil, domain.NewValidationError("days", "range", fmt.Sprintf("days debe estar entre 1 y %d", maxWasteDays))
	}
	runs, err := uc.runs.ListSince(ctx, WasteWindowStart(uc.now(), days))
	if err != nil {
		return nil, fmt.Errorf("reporte de merma: %w", err)
	}
	return inventory.SummarizeWasteByDay(runs), nil
}

// ReportProfitability calcula costo, utilidad y margen de cada producto terminado con receta,
// usando el precio del IN más reciente de cada material. Ordenado por nombre de producto.
func (uc *ReportUseCase) ReportProfitability(ctx context.Context) ([]inventory.Profitability, error) {
	lines, err := uc.recipes.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("rentabilidad: recetas: %w", err)
	}
	byProduct := make(map[string][]*entity.RecipeLine)
	order := make([]string, 0)
	for _, l := range lines {
		if _, ok := byProduct[l.FinishedProductID]; !ok {
			order = append(order, l.FinishedProductID)
		}
		byProduct[l.FinishedProductID] = append(byProduct[l.FinishedProductID], l)
	}

	prices := make(map[string]decimal.Decimal)
	var priceErr error
	priceOf := func(materialID string) decimal.Decimal {
		if p, ok := prices[materialID]; ok {
			return p
		}
		p, err := uc.movements.LatestInPrice(ctx, materialID)
		if err != nil && priceErr == nil {
			priceErr = err
		}
		v := decimal.Zero
		if p != nil {
			v = *p
		}
		prices[materialID] = v
		return v
	}

	out := make([]inventory.Profitability, 0, len(order))
	for _, id := range order {
		product, err := uc.items.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("rentabilidad: producto %s: %w", id, err)
		}
		if product == nil || product.Category != entity.CategoryFinishedProduct {
			continue
		}
		out = append(out, inventory.ComputeProfitability(product, byProduct[id], priceOf))
		if priceErr != nil {
			return nil, fmt.Errorf("rentabilidad: precios: %w", priceErr)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

// LowStock ítems en o bajo su umbral, mayor déficit primero.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]*entity.Item, error) {
	return uc.items.ListLowStock(ctx)
}
