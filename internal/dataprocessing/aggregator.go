package dataprocessing

import (
	"github.com/samber/lo"

	"stpflow/pkg/contracts/domain"
)

// AggregateMonth reduces one month's records into a MonthlyAggregate.
//
// The efficiency and utilization averages are the mean of the per-record
// percentages. Do not replace them with totalTreated/totalInlet: the two
// disagree whenever daily inlet volumes differ, and the dashboard reports the
// mean of daily ratios.
func AggregateMonth(monthKey string, records []domain.DailyRecord) domain.MonthlyAggregate {
	agg := domain.MonthlyAggregate{
		MonthKey:     monthKey,
		DisplayLabel: DisplayLabel(monthKey),
		DaysInMonth:  len(records),
	}
	if len(records) == 0 {
		return agg
	}

	agg.TotalTankerVolume = lo.SumBy(records, func(r domain.DailyRecord) int64 { return r.TankerVolume })
	agg.TotalDirectSewageVolume = lo.SumBy(records, func(r domain.DailyRecord) int64 { return r.DirectSewageVolume })
	agg.TotalInletVolume = lo.SumBy(records, func(r domain.DailyRecord) int64 { return r.TotalInletVolume })
	agg.TotalTreatedVolume = lo.SumBy(records, func(r domain.DailyRecord) int64 { return r.TotalTreatedVolume })
	agg.TotalOutputVolume = lo.SumBy(records, func(r domain.DailyRecord) int64 { return r.TotalOutputVolume })

	n := float64(len(records))
	agg.AvgTankerCount = float64(lo.SumBy(records, func(r domain.DailyRecord) int64 { return r.TankerCount })) / n
	agg.AvgEfficiencyPct = lo.SumBy(records, func(r domain.DailyRecord) float64 { return r.EfficiencyPct }) / n
	agg.AvgUtilizationPct = lo.SumBy(records, func(r domain.DailyRecord) float64 { return r.UtilizationPct }) / n

	return agg
}

// AggregateMonths produces one aggregate per month present in groups, sorted
// ascending by month key.
func AggregateMonths(groups MonthGroups) []domain.MonthlyAggregate {
	return lo.Map(groups.Keys(), func(key string, _ int) domain.MonthlyAggregate {
		return AggregateMonth(key, groups[key])
	})
}
