package dataprocessing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stpflow/internal/shared/testutil"
	"stpflow/pkg/contracts/domain"
)

const testHeader = "Date\tTankers\tTanker Volume\tDirect Sewage\tTotal Inlet\tTotal Treated\tTotal Output"

func TestParser_ParseText_ScenarioRow(t *testing.T) {
	p := NewParser(nil)
	records, report := p.ParseText(context.Background(), testHeader+"\n1/7/2024\t10\t200\t139\t339\t385\t340")

	require.Len(t, records, 1)
	assert.Equal(t, domain.DailyRecord{
		Date:               "2024-07-01",
		TankerCount:        10,
		TankerVolume:       200,
		DirectSewageVolume: 139,
		TotalInletVolume:   339,
		TotalTreatedVolume: 385,
		TotalOutputVolume:  340,
	}, records[0])
	assert.Equal(t, 1, report.DataLines)
	assert.Zero(t, report.MalformedRows)
}

func TestParser_ParseText_Tolerance(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantRecords   int
		wantMalformed int
		check         func(t *testing.T, records []domain.DailyRecord, report domain.ParseReport)
	}{
		{
			name:        "header only",
			raw:         testHeader,
			wantRecords: 0,
		},
		{
			name:        "empty input",
			raw:         "",
			wantRecords: 0,
		},
		{
			name:        "crlf and trailing newline",
			raw:         testHeader + "\r\n1/7/2024\t1\t2\t3\t4\t5\t6\r\n2/7/2024\t1\t2\t3\t4\t5\t6\r\n",
			wantRecords: 2,
		},
		{
			name:        "blank lines skipped",
			raw:         testHeader + "\n\n1/7/2024\t1\t2\t3\t4\t5\t6\n   \n2/7/2024\t1\t2\t3\t4\t5\t6",
			wantRecords: 2,
		},
		{
			name:          "malformed date uses sentinel",
			raw:           testHeader + "\n2024-07-01\t1\t2\t3\t4\t5\t6",
			wantRecords:   1,
			wantMalformed: 1,
			check: func(t *testing.T, records []domain.DailyRecord, report domain.ParseReport) {
				assert.Equal(t, SentinelDate, records[0].Date)
				assert.Equal(t, int64(4), records[0].TotalInletVolume)
				assert.Equal(t, 1, report.MalformedDates)
			},
		},
		{
			name:          "unparsable numbers become zero",
			raw:           testHeader + "\n1/7/2024\tabc\t-5\t3.5\t\t5\t6",
			wantRecords:   1,
			wantMalformed: 1,
			check: func(t *testing.T, records []domain.DailyRecord, report domain.ParseReport) {
				r := records[0]
				assert.Zero(t, r.TankerCount)
				assert.Zero(t, r.TankerVolume)
				assert.Zero(t, r.DirectSewageVolume)
				assert.Zero(t, r.TotalInletVolume)
				assert.Equal(t, int64(5), r.TotalTreatedVolume)
				assert.Equal(t, 4, report.BadNumbers)
			},
		},
		{
			name:          "short row keeps its place",
			raw:           testHeader + "\n1/7/2024\t1\t2\n2/7/2024\t1\t2\t3\t4\t5\t6",
			wantRecords:   2,
			wantMalformed: 1,
			check: func(t *testing.T, records []domain.DailyRecord, report domain.ParseReport) {
				assert.Equal(t, "2024-07-01", records[0].Date)
				assert.Zero(t, records[0].TotalOutputVolume)
				assert.Equal(t, "2024-07-02", records[1].Date)
				assert.Equal(t, 1, report.ShortRows)
				assert.Zero(t, report.BadNumbers)
			},
		},
		{
			name:        "duplicate dates are kept",
			raw:         testHeader + "\n14/9/2024\t1\t2\t3\t4\t5\t6\n14/9/2024\t7\t8\t9\t10\t11\t12",
			wantRecords: 2,
			check: func(t *testing.T, records []domain.DailyRecord, report domain.ParseReport) {
				assert.Equal(t, records[0].Date, records[1].Date)
				assert.Equal(t, int64(10), records[1].TotalInletVolume)
				assert.Equal(t, 1, report.DuplicateDates)
			},
		},
		{
			name:        "thousands separators and padding",
			raw:         testHeader + "\n 01/07/2024 \t 1 \t1,200\t3\t4\t5\t6",
			wantRecords: 1,
			check: func(t *testing.T, records []domain.DailyRecord, _ domain.ParseReport) {
				assert.Equal(t, "2024-07-01", records[0].Date)
				assert.Equal(t, int64(1200), records[0].TankerVolume)
			},
		},
		{
			name:        "input order preserved",
			raw:         testHeader + "\n3/8/2024\t1\t2\t3\t4\t5\t6\n1/7/2024\t1\t2\t3\t4\t5\t6",
			wantRecords: 2,
			check: func(t *testing.T, records []domain.DailyRecord, _ domain.ParseReport) {
				assert.Equal(t, "2024-08-03", records[0].Date)
				assert.Equal(t, "2024-07-01", records[1].Date)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, report := NewParser(nil).ParseText(context.Background(), tt.raw)

			require.Len(t, records, tt.wantRecords)
			assert.Equal(t, tt.wantRecords, report.DataLines)
			assert.Equal(t, tt.wantMalformed, report.MalformedRows)
			if tt.check != nil {
				tt.check(t, records, report)
			}
		})
	}
}

func TestParser_ParseRows_SkipsHeaderRow(t *testing.T) {
	rows := [][]string{
		{},
		{"Date", "Tankers", "Tanker Volume", "Direct", "Inlet", "Treated", "Output"},
		{"5/7/2024", "3", "60", "400", "460", "430", "390"},
	}

	records, report := NewParser(nil).ParseRows(context.Background(), rows)

	require.Len(t, records, 1)
	assert.Equal(t, "2024-07-05", records[0].Date)
	assert.Equal(t, int64(460), records[0].TotalInletVolume)
	assert.Equal(t, 1, report.DataLines)
}

func TestParser_LogsMalformedRows(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	p := NewParser(logger)

	p.ParseText(context.Background(), testHeader+"\n1/7/2024\t1\t2\t3\t4\t5\t6\nbad\t1")

	entries := handler.GetRecordsByMessage("tolerated malformed row")
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].Attrs["line"])
	assert.Contains(t, entries[0].Attrs["reason"], "malformed date")
	assert.Contains(t, entries[0].Attrs["reason"], "missing columns")
	assert.Equal(t, "stp_parser", entries[0].Attrs["component"])
}

func TestParser_Idempotent(t *testing.T) {
	raw := julyAugustText()
	p := NewParser(nil)

	first, firstReport := p.ParseText(context.Background(), raw)
	second, secondReport := p.ParseText(context.Background(), raw)

	assert.Equal(t, first, second)
	assert.Equal(t, firstReport, secondReport)
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"1/7/2024", "2024-07-01", true},
		{"01/07/2024", "2024-07-01", true},
		{"31/12/1999", "1999-12-31", true},
		{"31/2/2024", "2024-02-31", true},
		{"7/1/24", "0024-01-07", true},
		{"1-7-2024", SentinelDate, false},
		{"1/7", SentinelDate, false},
		{"1/7/2024/1", SentinelDate, false},
		{"a/7/2024", SentinelDate, false},
		{"-1/7/2024", SentinelDate, false},
		{"", SentinelDate, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeDate(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestNormalizeDate_RoundTrip(t *testing.T) {
	for _, year := range []int{1999, 2024, 2031} {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= 31; day++ {
				got, ok := NormalizeDate(fmt.Sprintf("%d/%d/%d", day, month, year))
				require.True(t, ok)

				parts := strings.Split(got, "-")
				require.Len(t, parts, 3)
				y, _ := strconv.Atoi(parts[0])
				m, _ := strconv.Atoi(parts[1])
				d, _ := strconv.Atoi(parts[2])
				assert.Equal(t, []int{day, month, year}, []int{d, m, y})
			}
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"0", 0, true},
		{"339", 339, true},
		{" 42 ", 42, true},
		{"12,345", 12345, true},
		{"-1", 0, false},
		{"1.5", 0, false},
		{"n/a", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCount(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
