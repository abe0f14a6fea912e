package dataprocessing

import (
	"sort"

	"github.com/shopspring/decimal"

	"stpflow/pkg/contracts/domain"
)

var hundred = decimal.NewFromInt(100)

// PercentChange returns (current - previous) / previous * 100 rounded to one
// decimal place, half away from zero. A zero previous value returns 0 since no
// change can be expressed from a zero base.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	cur := decimal.NewFromFloat(current)
	prev := decimal.NewFromFloat(previous)
	return cur.Sub(prev).Div(prev).Mul(hundred).Round(1).InexactFloat64()
}

// Field names a numeric MonthlyAggregate field that can be compared.
type Field string

const (
	FieldTotalTankerVolume       Field = "total_tanker_volume"
	FieldTotalDirectSewageVolume Field = "total_direct_sewage_volume"
	FieldTotalInletVolume        Field = "total_inlet_volume"
	FieldTotalTreatedVolume      Field = "total_treated_volume"
	FieldTotalOutputVolume       Field = "total_output_volume"
	FieldAvgTankerCount          Field = "avg_tanker_count"
	FieldAvgEfficiencyPct        Field = "avg_efficiency_pct"
	FieldAvgUtilizationPct       Field = "avg_utilization_pct"
	FieldDaysInMonth             Field = "days_in_month"
)

// Fields lists every comparable field.
var Fields = []Field{
	FieldTotalTankerVolume,
	FieldTotalDirectSewageVolume,
	FieldTotalInletVolume,
	FieldTotalTreatedVolume,
	FieldTotalOutputVolume,
	FieldAvgTankerCount,
	FieldAvgEfficiencyPct,
	FieldAvgUtilizationPct,
	FieldDaysInMonth,
}

// Value returns the numeric value of f on agg, and false for an unknown field.
func (f Field) Value(agg domain.MonthlyAggregate) (float64, bool) {
	switch f {
	case FieldTotalTankerVolume:
		return float64(agg.TotalTankerVolume), true
	case FieldTotalDirectSewageVolume:
		return float64(agg.TotalDirectSewageVolume), true
	case FieldTotalInletVolume:
		return float64(agg.TotalInletVolume), true
	case FieldTotalTreatedVolume:
		return float64(agg.TotalTreatedVolume), true
	case FieldTotalOutputVolume:
		return float64(agg.TotalOutputVolume), true
	case FieldAvgTankerCount:
		return agg.AvgTankerCount, true
	case FieldAvgEfficiencyPct:
		return agg.AvgEfficiencyPct, true
	case FieldAvgUtilizationPct:
		return agg.AvgUtilizationPct, true
	case FieldDaysInMonth:
		return float64(agg.DaysInMonth), true
	default:
		return 0, false
	}
}

// CompareField returns the percent change of f between current and previous.
// A nil previous (no preceding month) or an unknown field returns 0.
func CompareField(current domain.MonthlyAggregate, previous *domain.MonthlyAggregate, f Field) float64 {
	if previous == nil {
		return 0
	}
	cur, ok := f.Value(current)
	if !ok {
		return 0
	}
	prev, _ := f.Value(*previous)
	return PercentChange(cur, prev)
}

// PeriodDeltas are the headline period-over-period changes.
type PeriodDeltas struct {
	Inflow       float64
	Treated      float64
	Outflow      float64
	Efficiency   float64
	Utilization  float64
	TankerVolume float64
}

// ComparePeriods computes the headline deltas of current against previous.
func ComparePeriods(current domain.MonthlyAggregate, previous *domain.MonthlyAggregate) PeriodDeltas {
	return PeriodDeltas{
		Inflow:       CompareField(current, previous, FieldTotalInletVolume),
		Treated:      CompareField(current, previous, FieldTotalTreatedVolume),
		Outflow:      CompareField(current, previous, FieldTotalOutputVolume),
		Efficiency:   CompareField(current, previous, FieldAvgEfficiencyPct),
		Utilization:  CompareField(current, previous, FieldAvgUtilizationPct),
		TankerVolume: CompareField(current, previous, FieldTotalTankerVolume),
	}
}

// FindWithPrevious locates monthKey in aggregates, which must be sorted by
// month key, and returns it with the entry that precedes it in that order.
// The predecessor is the previous entry present in the data, not the calendar
// month before, so a gap in the data is skipped over.
func FindWithPrevious(aggregates []domain.MonthlyAggregate, monthKey string) (current, previous *domain.MonthlyAggregate) {
	i := sort.Search(len(aggregates), func(i int) bool {
		return aggregates[i].MonthKey >= monthKey
	})
	if i == len(aggregates) || aggregates[i].MonthKey != monthKey {
		return nil, nil
	}
	current = &aggregates[i]
	if i > 0 {
		previous = &aggregates[i-1]
	}
	return current, previous
}
