package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stpflow/internal/shared/testutil"
)

func TestNewPipeline(t *testing.T) {
	tests := []struct {
		name         string
		cfg          PipelineConfig
		wantCapacity float64
	}{
		{"default capacity", PipelineConfig{}, DefaultCapacityPerDay},
		{"negative capacity uses default", PipelineConfig{CapacityPerDay: -1}, DefaultCapacityPerDay},
		{"custom capacity", PipelineConfig{CapacityPerDay: 1200}, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPipeline(nil, tt.cfg)
			require.NotNil(t, p)
			assert.Equal(t, tt.wantCapacity, p.Capacity())
		})
	}
}

func TestPipeline_RunText_ScenarioRow(t *testing.T) {
	ds := NewPipeline(nil, PipelineConfig{CapacityPerDay: 750}).
		RunText(context.Background(), testHeader+"\n1/7/2024\t10\t200\t139\t339\t385\t340")

	require.Len(t, ds.Records, 1)
	r := ds.Records[0]
	assert.Equal(t, "2024-07-01", r.Date)
	assert.InDelta(t, 113.57, r.EfficiencyPct, 0.005)
	assert.InDelta(t, 51.33, r.UtilizationPct, 0.005)
	assert.Equal(t, []string{"2024-07"}, ds.MonthKeys())
	assert.Equal(t, 750.0, ds.Capacity)
}

func TestPipeline_RunRows_MatchesRunText(t *testing.T) {
	p := NewPipeline(nil, PipelineConfig{})
	rows := [][]string{
		{"Date", "Tankers", "Tanker Volume", "Direct", "Inlet", "Treated", "Output"},
		{"1/7/2024", "10", "200", "139", "339", "385", "340"},
		{"2/7/2024", "4", "80", "420", "500", "470", "430"},
	}

	fromRows := p.RunRows(context.Background(), rows)
	fromText := p.RunText(context.Background(),
		"Date\tTankers\tTanker Volume\tDirect\tInlet\tTreated\tOutput\n"+
			"1/7/2024\t10\t200\t139\t339\t385\t340\n"+
			"2/7/2024\t4\t80\t420\t500\t470\t430\n")

	assert.Equal(t, fromText.Records, fromRows.Records)
	assert.Equal(t, fromText.Aggregates, fromRows.Aggregates)
	assert.Equal(t, fromText.Report, fromRows.Report)
}

func TestPipeline_MalformedRowsFormSentinelCohort(t *testing.T) {
	ds := NewPipeline(nil, PipelineConfig{}).RunText(context.Background(),
		testHeader+"\n1/7/2024\t1\t2\t3\t4\t5\t6\n??\t1\t2\t3\t4\t5\t6")

	assert.Equal(t, []string{"1970-01", "2024-07"}, ds.MonthKeys())
	assert.Equal(t, 1, ds.Report.MalformedDates)
	assert.Equal(t, 1, ds.Report.MalformedRows)
}

func TestPipeline_LogsSummary(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)

	NewPipeline(logger, PipelineConfig{}).RunText(context.Background(), julyAugustText())

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "stp pipeline completed")
	testutil.AssertLogAttr(t, handler, "records", int64(62))
	testutil.AssertLogAttr(t, handler, "months", int64(2))
	testutil.AssertLogAttr(t, handler, "malformed_rows", int64(0))
	testutil.AssertNoErrors(t, handler)
}

func TestDataset_NilSafe(t *testing.T) {
	var ds *Dataset
	cur, prev := ds.Aggregate("2024-07")
	assert.Nil(t, cur)
	assert.Nil(t, prev)
	assert.Empty(t, ds.MonthKeys())
}
