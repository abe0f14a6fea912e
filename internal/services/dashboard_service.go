package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"stpflow/internal/config"
	"stpflow/internal/dataprocessing"
	"stpflow/internal/dataset"
	"stpflow/internal/infrastructure"
	"stpflow/pkg/contracts/domain"
)

var (
	monthKeyPattern = regexp.MustCompile(`^\d{4,}-\d{2,}$`)
	keyValidator    = newKeyValidator()
)

func newKeyValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("monthkey", func(fl validator.FieldLevel) bool {
		return monthKeyPattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidateMonthKey reports whether key is shaped like the zero padded
// YYYY-MM keys the parser produces. Digits are not range checked: dates are
// parsed positionally, so cohorts such as 2024-13 or 2024-00 can exist in a
// dataset and must stay addressable.
func ValidateMonthKey(key string) error {
	if err := keyValidator.Var(key, "required,monthkey"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMonthKey, key)
	}
	return nil
}

// DashboardService answers month queries over a dataset that is loaded from
// its source on first use and kept until Reload.
type DashboardService struct {
	source   dataset.Source
	pipeline *dataprocessing.Pipeline
	metrics  *infrastructure.PipelineMetrics
	logger   *slog.Logger

	mu       sync.RWMutex
	ds       *dataprocessing.Dataset
	loadedAt time.Time
	sfGroup  singleflight.Group
}

// NewDashboardService creates the service. metrics may be nil.
func NewDashboardService(source dataset.Source, pipeline *dataprocessing.Pipeline, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		source:   source,
		pipeline: pipeline,
		metrics:  metrics,
		logger:   logger.With(slog.String("component", "dashboard_service")),
	}
}

// Dataset returns the loaded dataset, loading it if this is the first call.
// Concurrent first callers share a single load.
func (s *DashboardService) Dataset(ctx context.Context) (*dataprocessing.Dataset, error) {
	s.mu.RLock()
	ds := s.ds
	s.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}
	return s.load(ctx, false)
}

// Reload discards the loaded dataset and reads the source again. The old
// dataset is kept if the reload fails.
func (s *DashboardService) Reload(ctx context.Context) (*dataprocessing.Dataset, error) {
	return s.load(ctx, true)
}

// Loaded reports whether a dataset is held and when it was loaded.
func (s *DashboardService) Loaded() (bool, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds != nil, s.loadedAt
}

// SourceName names the configured readings source
func (s *DashboardService) SourceName() string {
	return s.source.Name()
}

func (s *DashboardService) load(ctx context.Context, force bool) (*dataprocessing.Dataset, error) {
	v, err, shared := s.sfGroup.Do("dataset", func() (interface{}, error) {
		if !force {
			s.mu.RLock()
			ds := s.ds
			s.mu.RUnlock()
			if ds != nil {
				return ds, nil
			}
		}

		// The load is shared by every waiter, so it outlives the first caller.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.DatasetLoadTimeout)
		defer cancel()

		rows, err := s.source.Rows(loadCtx)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to load dataset",
				slog.String("source", s.source.Name()),
				slog.String("error", err.Error()))
			infrastructure.RecordError(ctx, err)
			return nil, fmt.Errorf("%w: %w", ErrDatasetUnavailable, err)
		}

		ds := s.pipeline.RunRows(loadCtx, rows)
		s.metrics.RecordPipelineRun(ctx, s.source.Name(), len(ds.Records), ds.Report.MalformedRows, ds.Duration)

		s.mu.Lock()
		s.ds = ds
		s.loadedAt = time.Now()
		s.mu.Unlock()

		s.logger.InfoContext(ctx, "dataset loaded",
			slog.String("source", s.source.Name()),
			slog.Int("records", len(ds.Records)),
			slog.Int("months", len(ds.Aggregates)))
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.DebugContext(ctx, "dataset load shared with concurrent caller")
	}
	return v.(*dataprocessing.Dataset), nil
}

// GetMonthBundle returns the dashboard bundle for monthKey. A well formed key
// absent from the dataset yields a zero bundle with Found=false, not an error.
func (s *DashboardService) GetMonthBundle(ctx context.Context, monthKey string) (domain.MonthBundle, error) {
	if err := ValidateMonthKey(monthKey); err != nil {
		return domain.MonthBundle{}, err
	}

	ds, err := s.Dataset(ctx)
	if err != nil {
		return domain.MonthBundle{}, err
	}

	bundle := dataprocessing.BuildMonthBundle(ds, monthKey)
	s.metrics.RecordBundleRequest(ctx, bundle.Found)

	s.logger.DebugContext(ctx, "month bundle built",
		slog.String("month_key", monthKey),
		slog.Bool("found", bundle.Found),
		slog.Int("days", bundle.KPIs.DaysReported))

	return bundle, nil
}

// MonthOptions lists the months present, ascending, for the month selector.
func (s *DashboardService) MonthOptions(ctx context.Context) ([]domain.MonthOption, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return dataprocessing.MonthOptions(ds), nil
}

// MonthlySeries returns the whole-dataset trend series.
func (s *DashboardService) MonthlySeries(ctx context.Context) ([]domain.MonthlyPoint, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return dataprocessing.MonthlySeries(ds), nil
}

// FlowGraph returns the flow graph of monthKey, zero-valued when the month
// is absent.
func (s *DashboardService) FlowGraph(ctx context.Context, monthKey string) (domain.FlowGraph, error) {
	if err := ValidateMonthKey(monthKey); err != nil {
		return domain.FlowGraph{}, err
	}

	ds, err := s.Dataset(ctx)
	if err != nil {
		return domain.FlowGraph{}, err
	}
	current, _ := ds.Aggregate(monthKey)
	return dataprocessing.DeriveFlowGraph(current), nil
}

// Report returns the data quality counters of the loaded dataset.
func (s *DashboardService) Report(ctx context.Context) (domain.ParseReport, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return domain.ParseReport{}, err
	}
	return ds.Report, nil
}
