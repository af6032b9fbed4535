package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// WasteResult resultado del cálculo de merma de una corrida.
type WasteResult struct {
	TheoreticalOutputWeight decimal.Decimal
	WasteQuantity           decimal.Decimal // puede ser negativa
	WastePercentage         decimal.Decimal // puede ser negativa
	ClampedWasteQuantity    decimal.Decimal // max(0, WasteQuantity)
	ClampedWastePercentage  decimal.Decimal // max(0, WastePercentage)
}

// ComputeWaste calcula:
//
//	teórico = producido × pesoPorUnidad
//	merma   = consumido − teórico
//	%merma  = merma / consumido × 100   (0 si consumido = 0)
func ComputeWaste(rawConsumed, produced, weightPerUnit decimal.Decimal) WasteResult {
	theoretical := produced.Mul(weightPerUnit)
	waste := rawConsumed.Sub(theoretical)
	pct := decimal.Zero
	if rawConsumed.IsPositive() {
		pct = waste.Div(rawConsumed).Mul(hundred)
	}
	return WasteResult{
		TheoreticalOutputWeight: theoretical,
		WasteQuantity:           waste,
		WastePercentage:         pct,
		ClampedWasteQuantity:    decimal.Max(decimal.Zero, waste),
		ClampedWastePercentage:  decimal.Max(decimal.Zero, pct),
	}
}

// DailyWasteSummary agregado diario de corridas de producción.
type DailyWasteSummary struct {
	Day               time.Time
	RunCount          int
	TotalWaste        decimal.Decimal
	TotalClampedWaste decimal.Decimal
	AvgWastePercent   decimal.Decimal
	MinWastePercent   decimal.Decimal
	MaxWastePercent   decimal.Decimal
}

// SummarizeWasteByDay agrupa las corridas por día calendario UTC, del más reciente al más antiguo.
// Sólo las corridas de modo single aportan merma.
func SummarizeWasteByDay(runs []*entity.ProductionRun) []DailyWasteSummary {
	byDay := make(map[time.Time]*DailyWasteSummary)
	sums := make(map[time.Time]decimal.Decimal)
	for _, r := range runs {
		if r.Mode != entity.ProductionModeSingle {
			continue
		}
		t := r.CreatedAt.UTC()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		s, ok := byDay[day]
		if !ok {
			s = &DailyWasteSummary{
				Day:             day,
				MinWastePercent: r.WastePercentage,
				MaxWastePercent: r.WastePercentage,
			}
			byDay[day] = s
		}
		s.RunCount++
		s.TotalWaste = s.TotalWaste.Add(r.WasteQuantity)
		s.TotalClampedWaste = s.TotalClampedWaste.Add(r.ClampedWasteQuantity)
		s.MinWastePercent = decimal.Min(s.MinWastePercent, r.WastePercentage)
		s.MaxWastePercent = decimal.Max(s.MaxWastePercent, r.WastePercentage)
		sums[day] = sums[day].Add(r.WastePercentage)
	}

	out := make([]DailyWasteSummary, 0, len(byDay))
	for day, s := range byDay {
		s.AvgWastePercent = sums[day].Div(decimal.NewFromInt(int64(s.RunCount))).Round(2)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.After(out[j].Day) })
	return out
}
