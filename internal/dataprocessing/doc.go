// Package dataprocessing turns raw sewage treatment plant daily readings into
// the monthly figures shown on the STP dashboard.
//
// # Architecture
//
// The pipeline runs strictly forward, each stage a pure function of the
// previous stage's output:
//
//  1. Parser: tab separated text (or pre-split rows) to DailyRecords
//  2. Metric deriver: efficiency and utilization per record
//  3. Grouper: records partitioned into YYYY-MM cohorts
//  4. Aggregator: one MonthlyAggregate per cohort, sorted by month key
//  5. Comparator: period-over-period percentage change
//  6. Flow deriver: fixed eight-node flow graph per month
//
// BuildMonthBundle sits on top of a Dataset and assembles everything a month
// view needs.
//
// # Usage
//
//	p := dataprocessing.NewPipeline(logger, dataprocessing.PipelineConfig{CapacityPerDay: 750})
//	ds := p.RunText(ctx, raw)
//	bundle := dataprocessing.BuildMonthBundle(ds, "2024-08")
//
// # Error Handling
//
// Nothing in this package returns an error for bad data. Malformed dates are
// replaced by SentinelDate, unparsable numbers by 0, and the defects are
// counted in the Dataset's ParseReport. An unknown month key produces a zero
// bundle.
package dataprocessing
