package infrastructure

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics holds the instruments for dataset loads, bundle queries
// and HTTP traffic. A nil *PipelineMetrics records nothing.
type PipelineMetrics struct {
	recordsParsed    metric.Int64Counter
	rowsMalformed    metric.Int64Counter
	pipelineDuration metric.Float64Histogram
	bundleRequests   metric.Int64Counter
	httpRequests     metric.Int64Counter
	httpDuration     metric.Float64Histogram
}

// NewPipelineMetrics creates the instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	recordsParsed, err := meter.Int64Counter(
		"stp_records_parsed_total",
		metric.WithDescription("Daily records produced by the parser"),
	)
	if err != nil {
		return nil, err
	}

	rowsMalformed, err := meter.Int64Counter(
		"stp_rows_malformed_total",
		metric.WithDescription("Rows that needed a fallback for a date, column or numeric cell"),
	)
	if err != nil {
		return nil, err
	}

	pipelineDuration, err := meter.Float64Histogram(
		"stp_pipeline_duration_seconds",
		metric.WithDescription("Time to parse, derive, group and aggregate a dataset"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	bundleRequests, err := meter.Int64Counter(
		"stp_bundle_requests_total",
		metric.WithDescription("Month bundle queries, split by whether the month exists"),
	)
	if err != nil {
		return nil, err
	}

	httpRequests, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	httpDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		recordsParsed:    recordsParsed,
		rowsMalformed:    rowsMalformed,
		pipelineDuration: pipelineDuration,
		bundleRequests:   bundleRequests,
		httpRequests:     httpRequests,
		httpDuration:     httpDuration,
	}, nil
}

// RecordPipelineRun records one dataset load from source
func (m *PipelineMetrics) RecordPipelineRun(ctx context.Context, source string, records, malformed int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("source", source))
	m.recordsParsed.Add(ctx, int64(records), attrs)
	m.rowsMalformed.Add(ctx, int64(malformed), attrs)
	m.pipelineDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordBundleRequest counts one month bundle query
func (m *PipelineMetrics) RecordBundleRequest(ctx context.Context, known bool) {
	if m == nil {
		return
	}
	m.bundleRequests.Add(ctx, 1, metric.WithAttributes(attribute.Bool("known", known)))
}

// RecordHTTPRequest records a served request against its route pattern
func (m *PipelineMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.httpRequests.Add(ctx, 1, attrs)
	m.httpDuration.Record(ctx, duration.Seconds(), attrs)
}
