package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stpflow/pkg/contracts/domain"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"increase", 110, 100, 10},
		{"decrease", 90, 100, -10},
		{"no change", 100, 100, 0},
		{"rounded to one decimal", 19724, 19830, -0.5},
		{"rounds half away from zero", 100.05, 100, 0.1},
		{"positive half", 409, 400, 2.3},
		{"negative half rounds away from zero", 391, 400, -2.3},
		{"small negative half", 99.95, 100, -0.1},
		{"third", 4, 3, 33.3},
		{"doubling", 200, 100, 100},
		{"zero current", 0, 50, -100},
		{"zero base", 500, 0, 0},
		{"zero base negative current", -5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentChange(tt.current, tt.previous))
		})
	}
}

func TestPercentChange_ZeroBaseAlwaysZero(t *testing.T) {
	for _, x := range []float64{-1e9, -1, 0, 0.5, 1, 339, 1e12} {
		assert.Zero(t, PercentChange(x, 0), x)
	}
}

func TestField_Value(t *testing.T) {
	agg := domain.MonthlyAggregate{
		DaysInMonth:             31,
		TotalTankerVolume:       1,
		TotalDirectSewageVolume: 2,
		TotalInletVolume:        3,
		TotalTreatedVolume:      4,
		TotalOutputVolume:       5,
		AvgTankerCount:          6.5,
		AvgEfficiencyPct:        7.5,
		AvgUtilizationPct:       8.5,
	}

	want := map[Field]float64{
		FieldTotalTankerVolume:       1,
		FieldTotalDirectSewageVolume: 2,
		FieldTotalInletVolume:        3,
		FieldTotalTreatedVolume:      4,
		FieldTotalOutputVolume:       5,
		FieldAvgTankerCount:          6.5,
		FieldAvgEfficiencyPct:        7.5,
		FieldAvgUtilizationPct:       8.5,
		FieldDaysInMonth:             31,
	}
	require.Len(t, Fields, len(want))
	for _, f := range Fields {
		got, ok := f.Value(agg)
		assert.True(t, ok, f)
		assert.Equal(t, want[f], got, f)
	}

	_, ok := Field("unknown").Value(agg)
	assert.False(t, ok)
}

func TestComparePeriods(t *testing.T) {
	previous := domain.MonthlyAggregate{
		MonthKey:           "2024-07",
		TotalInletVolume:   1000,
		TotalTreatedVolume: 900,
		TotalOutputVolume:  800,
		TotalTankerVolume:  0,
		AvgEfficiencyPct:   90,
		AvgUtilizationPct:  40,
	}
	current := domain.MonthlyAggregate{
		MonthKey:           "2024-08",
		TotalInletVolume:   1100,
		TotalTreatedVolume: 900,
		TotalOutputVolume:  600,
		TotalTankerVolume:  50,
		AvgEfficiencyPct:   81,
		AvgUtilizationPct:  50,
	}

	t.Run("with predecessor", func(t *testing.T) {
		d := ComparePeriods(current, &previous)
		assert.Equal(t, 10.0, d.Inflow)
		assert.Equal(t, 0.0, d.Treated)
		assert.Equal(t, -25.0, d.Outflow)
		assert.Equal(t, -10.0, d.Efficiency)
		assert.Equal(t, 25.0, d.Utilization)
		assert.Equal(t, 0.0, d.TankerVolume, "zero base")
	})

	t.Run("first month has zero deltas", func(t *testing.T) {
		assert.Equal(t, PeriodDeltas{}, ComparePeriods(current, nil))
	})

	t.Run("unknown field", func(t *testing.T) {
		assert.Zero(t, CompareField(current, &previous, Field("nope")))
	})
}

func TestFindWithPrevious(t *testing.T) {
	aggregates := []domain.MonthlyAggregate{
		{MonthKey: "2024-05"},
		{MonthKey: "2024-07"}, // June missing
		{MonthKey: "2024-08"},
	}

	tests := []struct {
		key      string
		wantCur  string
		wantPrev string
	}{
		{"2024-05", "2024-05", ""},
		{"2024-07", "2024-07", "2024-05"},
		{"2024-08", "2024-08", "2024-07"},
		{"2024-06", "", ""},
		{"2025-01", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cur, prev := FindWithPrevious(aggregates, tt.key)
			if tt.wantCur == "" {
				assert.Nil(t, cur)
				assert.Nil(t, prev)
				return
			}
			require.NotNil(t, cur)
			assert.Equal(t, tt.wantCur, cur.MonthKey)
			if tt.wantPrev == "" {
				assert.Nil(t, prev)
			} else {
				require.NotNil(t, prev)
				assert.Equal(t, tt.wantPrev, prev.MonthKey)
			}
		})
	}
}
