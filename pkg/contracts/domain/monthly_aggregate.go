package domain

// MonthlyAggregate summarizes one calendar-month cohort of daily records.
//
// AvgEfficiencyPct and AvgUtilizationPct are means of the per-day derived
// percentages. They are not recomputed from the monthly sums; the two differ
// whenever daily inlet volumes vary.
type MonthlyAggregate struct {
	MonthKey                string  `json:"month_key" validate:"required,len=7"`
	DisplayLabel            string  `json:"display_label"`
	DaysInMonth             int     `json:"days_in_month" validate:"min=0"` // observed records, not calendar days
	TotalTankerVolume       int64   `json:"total_tanker_volume"`
	TotalDirectSewageVolume int64   `json:"total_direct_sewage_volume"`
	TotalInletVolume        int64   `json:"total_inlet_volume"`
	TotalTreatedVolume      int64   `json:"total_treated_volume"`
	TotalOutputVolume       int64   `json:"total_output_volume"`
	AvgTankerCount          float64 `json:"avg_tanker_count"`
	AvgEfficiencyPct        float64 `json:"avg_efficiency_pct"`
	AvgUtilizationPct       float64 `json:"avg_utilization_pct"`
}

// AvgDailyInletVolume returns the inlet volume per observed day.
func (m MonthlyAggregate) AvgDailyInletVolume() float64 {
	if m.DaysInMonth == 0 {
		return 0
	}
	return float64(m.TotalInletVolume) / float64(m.DaysInMonth)
}

// MonthOption is one entry of the month selector.
type MonthOption struct {
	MonthKey     string `json:"month_key"`
	DisplayLabel string `json:"display_label"`
}
