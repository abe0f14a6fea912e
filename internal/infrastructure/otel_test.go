package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stpflow/internal/config"
	"stpflow/internal/shared/testutil"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestInitializeOTel(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.TelemetryConfig
		wantMetrics bool
		wantTracing bool
		wantErr     bool
	}{
		{
			name:        "metrics only",
			cfg:         config.TelemetryConfig{MetricsEnabled: true, TraceExporter: "none"},
			wantMetrics: true,
		},
		{
			name:        "metrics and stdout tracing",
			cfg:         config.TelemetryConfig{ServiceName: "stp-test", MetricsEnabled: true, TracingEnabled: true, TraceExporter: "stdout"},
			wantMetrics: true,
			wantTracing: true,
		},
		{
			name: "everything disabled",
			cfg:  config.TelemetryConfig{TraceExporter: "none"},
		},
		{
			name:    "unknown exporter",
			cfg:     config.TelemetryConfig{TracingEnabled: true, TraceExporter: "jaeger"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)

			providers, err := InitializeOTel(tt.cfg, logger)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.NotNil(t, providers.Meter)
			assert.NotNil(t, providers.Tracer)
			assert.Equal(t, tt.wantMetrics, providers.PrometheusHTTP != nil)
			assert.Equal(t, tt.wantMetrics, providers.MeterProvider != nil)
			assert.Equal(t, tt.wantTracing, providers.TracerProvider != nil)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			assert.NoError(t, providers.Shutdown(ctx))
		})
	}
}

func TestPipelineMetrics_Exported(t *testing.T) {
	providers, err := InitializeOTel(config.TelemetryConfig{MetricsEnabled: true, TraceExporter: "none"}, nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := NewPipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordPipelineRun(ctx, "embedded", 125, 2, 40*time.Millisecond)
	metrics.RecordBundleRequest(ctx, true)
	metrics.RecordBundleRequest(ctx, false)
	metrics.RecordHTTPRequest(ctx, http.MethodGet, "/api/stp/months", http.StatusOK, time.Millisecond)

	body := scrape(t, providers.PrometheusHTTP)
	assert.Contains(t, body, "stp_records_parsed_total")
	assert.Contains(t, body, "stp_rows_malformed_total")
	assert.Contains(t, body, "stp_pipeline_duration_seconds")
	assert.Contains(t, body, "stp_bundle_requests_total")
	assert.Contains(t, body, `known="false"`)
	assert.Contains(t, body, "http_requests_total")
}

func TestPipelineMetrics_NilIsNoop(t *testing.T) {
	var metrics *PipelineMetrics
	assert.NotPanics(t, func() {
		metrics.RecordPipelineRun(context.Background(), "file", 1, 0, time.Second)
		metrics.RecordBundleRequest(context.Background(), true)
		metrics.RecordHTTPRequest(context.Background(), http.MethodGet, "/", http.StatusOK, time.Second)
	})
}

func TestSystemMetrics(t *testing.T) {
	providers, err := InitializeOTel(config.TelemetryConfig{MetricsEnabled: true, TraceExporter: "none"}, nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	sm, err := NewSystemMetrics(providers.Meter, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	stats := sm.Collect()
	assert.Positive(t, stats.GoRoutines)
	assert.Positive(t, stats.CPUCount)
	assert.GreaterOrEqual(t, stats.ProcessUptime, time.Minute)

	formatted := stats.FormatStats()
	assert.Contains(t, formatted, "goroutines")
	assert.Contains(t, formatted, "uptime_seconds")

	body := scrape(t, providers.PrometheusHTTP)
	assert.Contains(t, body, "system_goroutines")

	assert.NoError(t, sm.Stop())
	assert.NoError(t, (*SystemMetrics)(nil).Stop())
}

func TestTraceHelpers(t *testing.T) {
	providers, err := InitializeOTel(config.TelemetryConfig{TracingEnabled: true, TraceExporter: "stdout"}, nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	ctx, span := providers.Tracer.Start(context.Background(), "load-dataset")
	defer span.End()

	assert.Equal(t, span.SpanContext().TraceID().String(), TraceIDFromContext(ctx))
	assert.Empty(t, TraceIDFromContext(context.Background()))

	assert.NotPanics(t, func() {
		RecordError(ctx, errors.New("sheet missing"))
		RecordError(ctx, nil)
		RecordError(context.Background(), errors.New("no span"))
	})
}
