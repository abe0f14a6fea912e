package dataprocessing

import "stpflow/pkg/contracts/domain"

// DefaultCapacityPerDay is the plant's nominal treatment capacity in m3/day.
const DefaultCapacityPerDay = 750.0

// Metrics are the per-record values derived from the raw volumes.
type Metrics struct {
	EfficiencyPct  float64
	UtilizationPct float64
}

// DeriveMetrics computes efficiency (treated / inlet) and utilization
// (treated / capacity) as percentages. A zero inlet or non-positive capacity
// yields 0 for the affected ratio. Values above 100 are kept as reported.
func DeriveMetrics(record domain.DailyRecord, capacity float64) Metrics {
	var m Metrics
	treated := float64(record.TotalTreatedVolume)
	if record.TotalInletVolume != 0 {
		m.EfficiencyPct = treated / float64(record.TotalInletVolume) * 100
	}
	if capacity > 0 {
		m.UtilizationPct = treated / capacity * 100
	}
	return m
}

// WithMetrics returns a copy of records with the derived fields recomputed.
func WithMetrics(records []domain.DailyRecord, capacity float64) []domain.DailyRecord {
	out := make([]domain.DailyRecord, len(records))
	for i, r := range records {
		m := DeriveMetrics(r, capacity)
		r.EfficiencyPct = m.EfficiencyPct
		r.UtilizationPct = m.UtilizationPct
		out[i] = r
	}
	return out
}
