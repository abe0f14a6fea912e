package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// SystemMetrics reports Go runtime gauges through the meter on every
// collection cycle.
type SystemMetrics struct {
	startTime    time.Time
	registration metric.Registration
}

// SystemStats holds a runtime snapshot
type SystemStats struct {
	GoRoutines    int64
	MemoryUsage   int64
	MemorySystem  int64
	GCCount       uint32
	CPUCount      int
	ProcessUptime time.Duration
	Timestamp     time.Time
}

// NewSystemMetrics registers observable gauges for goroutines, heap usage and
// uptime, measured from startTime.
func NewSystemMetrics(meter metric.Meter, startTime time.Time) (*SystemMetrics, error) {
	goRoutines, err := meter.Int64ObservableGauge(
		"system_goroutines",
		metric.WithDescription("Number of active goroutines"),
	)
	if err != nil {
		return nil, err
	}

	memoryUsage, err := meter.Int64ObservableGauge(
		"system_memory_usage_bytes",
		metric.WithDescription("Heap bytes allocated and in use"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	uptime, err := meter.Float64ObservableGauge(
		"system_process_uptime_seconds",
		metric.WithDescription("Process uptime in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	sm := &SystemMetrics{startTime: startTime}
	sm.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sm.Collect()
		o.ObserveInt64(goRoutines, stats.GoRoutines)
		o.ObserveInt64(memoryUsage, stats.MemoryUsage)
		o.ObserveFloat64(uptime, stats.ProcessUptime.Seconds())
		return nil
	}, goRoutines, memoryUsage, uptime)
	if err != nil {
		return nil, err
	}

	return sm, nil
}

// Collect takes a runtime snapshot without recording anything
func (sm *SystemMetrics) Collect() *SystemStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &SystemStats{
		GoRoutines:    int64(runtime.NumGoroutine()),
		MemoryUsage:   int64(memStats.Alloc),
		MemorySystem:  int64(memStats.Sys),
		GCCount:       memStats.NumGC,
		CPUCount:      runtime.NumCPU(),
		ProcessUptime: time.Since(sm.startTime),
		Timestamp:     time.Now(),
	}
}

// Stop unregisters the gauge callback
func (sm *SystemMetrics) Stop() error {
	if sm == nil || sm.registration == nil {
		return nil
	}
	return sm.registration.Unregister()
}

// FormatStats returns the snapshot in the shape used by the verbose health
// endpoint.
func (stats *SystemStats) FormatStats() map[string]interface{} {
	return map[string]interface{}{
		"goroutines":       stats.GoRoutines,
		"memory_usage_mb":  stats.MemoryUsage / 1024 / 1024,
		"memory_system_mb": stats.MemorySystem / 1024 / 1024,
		"gc_count":         stats.GCCount,
		"cpu_count":        stats.CPUCount,
		"uptime_seconds":   stats.ProcessUptime.Seconds(),
		"timestamp":        stats.Timestamp.Format(time.RFC3339),
	}
}
