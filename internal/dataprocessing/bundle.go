package dataprocessing

import (
	"github.com/samber/lo"

	"stpflow/pkg/contracts/domain"
)

// BuildMonthBundle assembles the month view for monthKey. It is total: an
// unknown key (or a nil dataset) yields Found=false, zero KPIs, an all-zero
// flow graph and empty month rows, while MonthlySeries still covers the
// whole dataset.
func BuildMonthBundle(ds *Dataset, monthKey string) domain.MonthBundle {
	bundle := domain.MonthBundle{
		MonthKey:             monthKey,
		DisplayLabel:         DisplayLabel(monthKey),
		DailySeries:          []domain.DailyPoint{},
		MonthlySeries:        MonthlySeries(ds),
		RawRows:              []domain.RawRow{},
		PreviousMonthRawRows: []domain.RawRow{},
	}

	current, previous := ds.Aggregate(monthKey)
	bundle.FlowGraph = DeriveFlowGraph(current)
	if current == nil {
		return bundle
	}

	bundle.Found = true
	bundle.KPIs = buildKPIs(*current, previous)
	bundle.DailySeries = DailySeries(ds.Groups[monthKey])
	bundle.RawRows = RawRows(ds.Groups[monthKey])
	if previous != nil {
		bundle.PreviousMonthKey = previous.MonthKey
		bundle.PreviousMonthRawRows = RawRows(ds.Groups[previous.MonthKey])
	}
	return bundle
}

func buildKPIs(current domain.MonthlyAggregate, previous *domain.MonthlyAggregate) domain.KPIs {
	deltas := ComparePeriods(current, previous)
	return domain.KPIs{
		TotalInflow:        current.TotalInletVolume,
		TotalTankerVolume:  current.TotalTankerVolume,
		TotalDirectSewage:  current.TotalDirectSewageVolume,
		TotalTreated:       current.TotalTreatedVolume,
		TotalOutflow:       current.TotalOutputVolume,
		AvgEfficiencyPct:   current.AvgEfficiencyPct,
		AvgUtilizationPct:  current.AvgUtilizationPct,
		AvgTankerCount:     current.AvgTankerCount,
		DaysReported:       current.DaysInMonth,
		InflowChange:       deltas.Inflow,
		TreatedChange:      deltas.Treated,
		OutflowChange:      deltas.Outflow,
		EfficiencyChange:   deltas.Efficiency,
		UtilizationChange:  deltas.Utilization,
		TankerVolumeChange: deltas.TankerVolume,
	}
}

// DailySeries reduces a month's records to chart points, in record order.
func DailySeries(records []domain.DailyRecord) []domain.DailyPoint {
	return lo.Map(records, func(r domain.DailyRecord, _ int) domain.DailyPoint {
		return domain.DailyPoint{
			Day:              r.DayOfMonth(),
			EfficiencyPct:    r.EfficiencyPct,
			TotalInletVolume: r.TotalInletVolume,
		}
	})
}

// RawRows reduces a month's records to display table rows. Effluent flow is
// the treated volume.
func RawRows(records []domain.DailyRecord) []domain.RawRow {
	return lo.Map(records, func(r domain.DailyRecord, _ int) domain.RawRow {
		return domain.RawRow{
			Date:          r.Date,
			InfluentFlow:  r.TotalInletVolume,
			EffluentFlow:  r.TotalTreatedVolume,
			EfficiencyPct: r.EfficiencyPct,
		}
	})
}

// MonthlySeries reduces every aggregate in the dataset to a trend point.
func MonthlySeries(ds *Dataset) []domain.MonthlyPoint {
	if ds == nil {
		return []domain.MonthlyPoint{}
	}
	return lo.Map(ds.Aggregates, func(a domain.MonthlyAggregate, _ int) domain.MonthlyPoint {
		return domain.MonthlyPoint{
			MonthKey:            a.MonthKey,
			ShortMonthLabel:     ShortMonthLabel(a.MonthKey),
			AvgEfficiencyPct:    a.AvgEfficiencyPct,
			AvgDailyInletVolume: a.AvgDailyInletVolume(),
		}
	})
}

// MonthOptions lists the selectable months in ascending order.
func MonthOptions(ds *Dataset) []domain.MonthOption {
	if ds == nil {
		return []domain.MonthOption{}
	}
	return lo.Map(ds.Aggregates, func(a domain.MonthlyAggregate, _ int) domain.MonthOption {
		return domain.MonthOption{MonthKey: a.MonthKey, DisplayLabel: a.DisplayLabel}
	})
}
