package domain

// DailyRecord represents one calendar day of sewage treatment plant operation.
// Volumes are cubic metres as reported by the plant log. The derived
// percentages are always recomputed from the volumes and never read from input.
type DailyRecord struct {
	Date               string  `json:"date" validate:"required,len=10"` // YYYY-MM-DD, zero padded, not calendar validated
	TankerCount        int64   `json:"tanker_count" validate:"min=0"`
	TankerVolume       int64   `json:"tanker_volume" validate:"min=0"`
	DirectSewageVolume int64   `json:"direct_sewage_volume" validate:"min=0"`
	TotalInletVolume   int64   `json:"total_inlet_volume" validate:"min=0"`
	TotalTreatedVolume int64   `json:"total_treated_volume" validate:"min=0"`
	TotalOutputVolume  int64   `json:"total_output_volume" validate:"min=0"`
	EfficiencyPct      float64 `json:"efficiency_pct"`
	UtilizationPct     float64 `json:"utilization_pct"`
}

// MonthKey returns the YYYY-MM cohort key of the record.
func (r DailyRecord) MonthKey() string {
	if len(r.Date) < 7 {
		return r.Date
	}
	return r.Date[:7]
}

// DayOfMonth returns the day component of the normalized date, or 0 when the
// date is too short to carry one.
func (r DailyRecord) DayOfMonth() int {
	if len(r.Date) < 10 {
		return 0
	}
	day := 0
	for _, c := range r.Date[8:] {
		if c < '0' || c > '9' {
			return 0
		}
		day = day*10 + int(c-'0')
	}
	return day
}

// ParseReport counts the data defects tolerated while parsing a raw block.
// None of them abort parsing; they are surfaced for data-quality reporting.
// A row with several defects counts once in MalformedRows and once per
// defect kind in the detailed counters.
type ParseReport struct {
	DataLines      int `json:"data_lines"`
	MalformedRows  int `json:"malformed_rows"`
	MalformedDates int `json:"malformed_dates"`
	ShortRows      int `json:"short_rows"`
	BadNumbers     int `json:"bad_numbers"`
	DuplicateDates int `json:"duplicate_dates"`
}
