package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"stpflow/pkg/contracts/domain"
)

// PipelineConfig holds the tunables of a pipeline run.
type PipelineConfig struct {
	CapacityPerDay float64 // m3/day; <= 0 uses DefaultCapacityPerDay
}

// Dataset is the immutable result of one pipeline run.
type Dataset struct {
	Records    []domain.DailyRecord
	Groups     MonthGroups
	Aggregates []domain.MonthlyAggregate // sorted by MonthKey
	Report     domain.ParseReport
	Capacity   float64
	Duration   time.Duration
}

// Aggregate returns the aggregate for monthKey together with its predecessor.
func (d *Dataset) Aggregate(monthKey string) (current, previous *domain.MonthlyAggregate) {
	if d == nil {
		return nil, nil
	}
	return FindWithPrevious(d.Aggregates, monthKey)
}

// MonthKeys returns the month keys present in the dataset in ascending order.
func (d *Dataset) MonthKeys() []string {
	if d == nil {
		return []string{}
	}
	keys := make([]string, len(d.Aggregates))
	for i, a := range d.Aggregates {
		keys[i] = a.MonthKey
	}
	return keys
}

// Pipeline runs parse, derive, group and aggregate in order.
type Pipeline struct {
	parser   *Parser
	capacity float64
	logger   *slog.Logger
}

// NewPipeline creates a pipeline. A nil logger falls back to slog.Default().
func NewPipeline(logger *slog.Logger, cfg PipelineConfig) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.CapacityPerDay <= 0 {
		cfg.CapacityPerDay = DefaultCapacityPerDay
	}
	return &Pipeline{
		parser:   NewParser(logger),
		capacity: cfg.CapacityPerDay,
		logger:   logger.With(slog.String("component", "stp_pipeline")),
	}
}

// Capacity returns the plant capacity used for utilization.
func (p *Pipeline) Capacity() float64 {
	return p.capacity
}

// RunText runs the pipeline over a raw tab separated block.
func (p *Pipeline) RunText(ctx context.Context, raw string) *Dataset {
	start := time.Now()
	records, report := p.parser.ParseText(ctx, raw)
	return p.build(ctx, records, report, start)
}

// RunRows runs the pipeline over pre-split rows, header first.
func (p *Pipeline) RunRows(ctx context.Context, rows [][]string) *Dataset {
	start := time.Now()
	records, report := p.parser.ParseRows(ctx, rows)
	return p.build(ctx, records, report, start)
}

func (p *Pipeline) build(ctx context.Context, records []domain.DailyRecord, report domain.ParseReport, start time.Time) *Dataset {
	records = WithMetrics(records, p.capacity)
	groups := GroupByMonth(records)
	ds := &Dataset{
		Records:    records,
		Groups:     groups,
		Aggregates: AggregateMonths(groups),
		Report:     report,
		Capacity:   p.capacity,
	}
	ds.Duration = time.Since(start)

	p.logger.InfoContext(ctx, "stp pipeline completed",
		slog.Int("records", len(ds.Records)),
		slog.Int("months", len(ds.Aggregates)),
		slog.Int("malformed_rows", report.MalformedRows),
		slog.Int("duplicate_dates", report.DuplicateDates),
		slog.Duration("duration", ds.Duration))

	return ds
}
