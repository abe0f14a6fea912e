package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"stpflow/internal/dataprocessing"
	"stpflow/internal/infrastructure"
	"stpflow/pkg/contracts"
)

// DatasetProbe is the part of DashboardService the readiness check needs.
type DatasetProbe interface {
	Dataset(ctx context.Context) (*dataprocessing.Dataset, error)
	SourceName() string
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	probe     DatasetProbe
	system    *infrastructure.SystemMetrics
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Source  string `json:"source,omitempty"`
	Records int    `json:"records,omitempty"`
	Months  int    `json:"months,omitempty"`
}

// NewHealthService creates a health service. probe and system may be nil.
func NewHealthService(version string, probe DatasetProbe, system *infrastructure.SystemMetrics, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	if version == "" {
		version = contracts.Version
	}
	return &HealthService{
		version:   version,
		probe:     probe,
		system:    system,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck loads the dataset if needed and reports whether queries
// can be answered.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  map[string]interface{}{"dataset": hs.checkDatasetHealth(ctx)},
	}

	for _, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}

	if status.Status != "ready" {
		hs.logger.WarnContext(ctx, "readiness check failed", slog.Any("services", status.Services))
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
	if hs.system != nil {
		status.Runtime = hs.system.Collect().FormatStats()
		status.Runtime["go_version"] = runtime.Version()
	}
	return status
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"version":             hs.version,
		"data_format_version": info.DataFormat,
		"api_version":         info.APIVersion,
		"build_time":          info.BuildTime,
		"git_commit":          info.GitCommit,
		"go_version":          runtime.Version(),
		"os":                  runtime.GOOS,
		"arch":                runtime.GOARCH,
		"uptime":              time.Since(hs.startTime).Seconds(),
		"start_time":          hs.startTime.Format(time.RFC3339),
	}
}

func (hs *HealthService) checkDatasetHealth(ctx context.Context) ServiceHealth {
	if hs.probe == nil {
		return ServiceHealth{Status: "not_ready", Message: "dataset service not initialized"}
	}

	ds, err := hs.probe.Dataset(ctx)
	if err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: err.Error(),
			Source:  hs.probe.SourceName(),
		}
	}

	return ServiceHealth{
		Status:  "ready",
		Source:  hs.probe.SourceName(),
		Records: len(ds.Records),
		Months:  len(ds.Aggregates),
	}
}
