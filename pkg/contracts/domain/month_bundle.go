package domain

// KPIs holds the headline figures of the selected month together with the
// period-over-period deltas against the preceding month in the dataset.
// Deltas are percentages rounded to one decimal; they are 0 when there is no
// preceding month or the preceding value is 0.
type KPIs struct {
	TotalInflow       int64   `json:"total_inflow"`
	TotalTankerVolume int64   `json:"total_tanker_volume"`
	TotalDirectSewage int64   `json:"total_direct_sewage"`
	TotalTreated      int64   `json:"total_treated"`
	TotalOutflow      int64   `json:"total_outflow"`
	AvgEfficiencyPct  float64 `json:"avg_efficiency_pct"`
	AvgUtilizationPct float64 `json:"avg_utilization_pct"`
	AvgTankerCount    float64 `json:"avg_tanker_count"`
	DaysReported      int     `json:"days_reported"`

	InflowChange       float64 `json:"inflow_change"`
	TreatedChange      float64 `json:"treated_change"`
	OutflowChange      float64 `json:"outflow_change"`
	EfficiencyChange   float64 `json:"efficiency_change"`
	UtilizationChange  float64 `json:"utilization_change"`
	TankerVolumeChange float64 `json:"tanker_volume_change"`
}

// DailyPoint is one entry of the selected month's daily chart series.
type DailyPoint struct {
	Day              int     `json:"day"`
	EfficiencyPct    float64 `json:"efficiency_pct"`
	TotalInletVolume int64   `json:"total_inlet_volume"`
}

// MonthlyPoint is one entry of the whole-dataset trend series.
type MonthlyPoint struct {
	MonthKey            string  `json:"month_key"`
	ShortMonthLabel     string  `json:"short_month_label"`
	AvgEfficiencyPct    float64 `json:"avg_efficiency_pct"`
	AvgDailyInletVolume float64 `json:"avg_daily_inlet_volume"`
}

// RawRow is a display-ready daily table row.
type RawRow struct {
	Date          string  `json:"date"`
	InfluentFlow  int64   `json:"influent_flow"`
	EffluentFlow  int64   `json:"effluent_flow"`
	EfficiencyPct float64 `json:"efficiency_pct"`
}

// MonthBundle is everything the dashboard needs to render one selected month.
// An unknown month yields Found=false, zero KPIs, a zero-valued flow graph and
// empty (non-nil) slices.
type MonthBundle struct {
	MonthKey             string         `json:"month_key"`
	DisplayLabel         string         `json:"display_label"`
	Found                bool           `json:"found"`
	PreviousMonthKey     string         `json:"previous_month_key,omitempty"`
	KPIs                 KPIs           `json:"kpis"`
	FlowGraph            FlowGraph      `json:"flow_graph"`
	DailySeries          []DailyPoint   `json:"daily_series"`
	MonthlySeries        []MonthlyPoint `json:"monthly_series"`
	RawRows              []RawRow       `json:"raw_rows"`
	PreviousMonthRawRows []RawRow       `json:"previous_month_raw_rows"`
}
