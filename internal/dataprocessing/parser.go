package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"stpflow/pkg/contracts/domain"
)

// SentinelDate replaces any date that does not split into day/month/year.
// Rows carrying it form their own 1970-01 cohort instead of polluting a real month.
const SentinelDate = "1970-01-01"

// ColumnCount is the number of columns in a daily readings row.
const ColumnCount = 7

// Column positions in a daily readings row.
const (
	colDate = iota
	colTankerCount
	colTankerVolume
	colDirectSewage
	colTotalInlet
	colTotalTreated
	colTotalOutput
)

// Parser converts raw daily readings into DailyRecords. It never fails on
// bad data: every non-blank data line yields exactly one record, in input order.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser. A nil logger falls back to slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger.With(slog.String("component", "stp_parser"))}
}

// ParseText parses a header line followed by tab separated data lines.
// CRLF line endings, blank lines and a trailing newline are tolerated.
func (p *Parser) ParseText(ctx context.Context, raw string) ([]domain.DailyRecord, domain.ParseReport) {
	return p.ParseRows(ctx, SplitText(raw))
}

// SplitText splits a tab separated block into rows of cells. Blank lines are
// kept as single empty cells so row numbers match line numbers.
func SplitText(raw string) [][]string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows
}

// ParseRows parses pre-split rows, as read from a spreadsheet. The first
// non-blank row is the header and is skipped. Derived metrics are left zero;
// see DeriveMetrics.
func (p *Parser) ParseRows(ctx context.Context, rows [][]string) ([]domain.DailyRecord, domain.ParseReport) {
	var report domain.ParseReport
	records := make([]domain.DailyRecord, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	headerSkipped := false

	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if !headerSkipped {
			headerSkipped = true
			continue
		}
		line := i + 1
		report.DataLines++

		record, defects := parseRow(row)
		if defects.any() {
			report.MalformedRows++
			p.logger.DebugContext(ctx, "tolerated malformed row",
				slog.Int("line", line),
				slog.String("reason", defects.String()))
		}
		if defects.badDate {
			report.MalformedDates++
		} else if _, dup := seen[record.Date]; dup {
			report.DuplicateDates++
		} else {
			seen[record.Date] = struct{}{}
		}
		if defects.short {
			report.ShortRows++
		}
		report.BadNumbers += defects.badNumbers

		records = append(records, record)
	}

	return records, report
}

type rowDefects struct {
	badDate    bool
	short      bool
	badNumbers int
}

func (d rowDefects) any() bool {
	return d.badDate || d.short || d.badNumbers > 0
}

func (d rowDefects) String() string {
	var reasons []string
	if d.badDate {
		reasons = append(reasons, "malformed date")
	}
	if d.short {
		reasons = append(reasons, "missing columns")
	}
	if d.badNumbers > 0 {
		reasons = append(reasons, fmt.Sprintf("%d unparsable numbers", d.badNumbers))
	}
	return strings.Join(reasons, ", ")
}

func parseRow(row []string) (domain.DailyRecord, rowDefects) {
	var defects rowDefects
	if len(row) < ColumnCount {
		defects.short = true
	}

	cell := func(idx int) string {
		if idx < len(row) {
			return row[idx]
		}
		return ""
	}
	count := func(idx int) int64 {
		if idx >= len(row) {
			// Already counted as a short row.
			return 0
		}
		n, ok := ParseCount(row[idx])
		if !ok {
			defects.badNumbers++
		}
		return n
	}

	date, ok := NormalizeDate(cell(colDate))
	if !ok {
		defects.badDate = true
	}

	return domain.DailyRecord{
		Date:               date,
		TankerCount:        count(colTankerCount),
		TankerVolume:       count(colTankerVolume),
		DirectSewageVolume: count(colDirectSewage),
		TotalInletVolume:   count(colTotalInlet),
		TotalTreatedVolume: count(colTotalTreated),
		TotalOutputVolume:  count(colTotalOutput),
	}, defects
}

// NormalizeDate converts a day-first D/M/YYYY date into zero padded
// YYYY-MM-DD. Fields are taken positionally and not checked against the
// calendar, so 31/2/2024 becomes 2024-02-31. Anything that does not split
// into three non-negative integers returns SentinelDate and false.
func NormalizeDate(s string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return SentinelDate, false
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return SentinelDate, false
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// ParseCount parses a non-negative integer cell. Thousands separators and
// surrounding whitespace are accepted. Negative, fractional, empty or
// otherwise unparsable values return 0 and false.
func ParseCount(s string) (int64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
