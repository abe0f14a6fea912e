package dataprocessing

import "time"

const monthKeyLayout = "2006-01"

// DisplayLabel renders a YYYY-MM key as "July 2024". Keys that are not a
// valid year and month are returned unchanged.
func DisplayLabel(monthKey string) string {
	t, err := time.Parse(monthKeyLayout, monthKey)
	if err != nil {
		return monthKey
	}
	return t.Format("January 2006")
}

// ShortMonthLabel renders a YYYY-MM key as "Jul 24" for chart axes.
func ShortMonthLabel(monthKey string) string {
	t, err := time.Parse(monthKeyLayout, monthKey)
	if err != nil {
		return monthKey
	}
	return t.Format("Jan 06")
}
