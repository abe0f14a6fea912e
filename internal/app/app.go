package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"stpflow/internal/config"
	"stpflow/internal/dataprocessing"
	"stpflow/internal/dataset"
	apierrors "stpflow/internal/errors"
	"stpflow/internal/infrastructure"
	customMiddleware "stpflow/internal/middleware"
	"stpflow/internal/services"
	handlers "stpflow/internal/transport/http"
	"stpflow/pkg/contracts"
)

// AppName is reported in startup logs
const AppName = "STP Flow - Treatment Plant Dashboard API"

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Services      *ServiceContainer
	OTelProviders *infrastructure.OTelProviders

	startTime time.Time
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Source    dataset.Source
	Pipeline  *dataprocessing.Pipeline
	Dashboard *services.DashboardService
	Health    *services.HealthService
	Metrics   *infrastructure.PipelineMetrics
	System    *infrastructure.SystemMetrics
}

// NewApplication loads configuration, initializes the process logger and
// wires the application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires an application from an already loaded configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version),
		slog.String("source_kind", cfg.Plant.SourceKind))

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		startTime:     time.Now(),
	}

	if err := a.initializeServices(context.Background()); err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices(ctx context.Context) error {
	metrics, err := infrastructure.NewPipelineMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	system, err := infrastructure.NewSystemMetrics(a.OTelProviders.Meter, a.startTime)
	if err != nil {
		return fmt.Errorf("failed to create system metrics: %w", err)
	}

	source, err := dataset.NewSource(ctx, a.Config.Plant, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create dataset source: %w", err)
	}

	pipeline := dataprocessing.NewPipeline(a.Logger, dataprocessing.PipelineConfig{
		CapacityPerDay: a.Config.Plant.CapacityPerDay,
	})

	dashboard := services.NewDashboardService(source, pipeline, metrics, a.Logger)

	a.Services = &ServiceContainer{
		Source:    source,
		Pipeline:  pipeline,
		Dashboard: dashboard,
		Health:    services.NewHealthService(contracts.Version, dashboard, system, a.Logger),
		Metrics:   metrics,
		System:    system,
	}
	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)

	// RequestID → RealIP → OTel → Logger/Recoverer → headers → CORS → rate limit
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	// Prometheus metrics endpoint stays outside the instrumented group
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Services.Metrics, a.Logger).Handler)
		r.Use(apierrors.NewErrorMiddleware(errorHandler, a.Logger).Handler)
		r.Use(customMiddleware.DefaultSecureHeaders(a.Config.Logging.Development).Handler)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfigFrom(a.Config.Security, a.Logger)))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				errorHandler,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r, errorHandler)

		r.NotFound(errorHandler.NotFound)
		r.MethodNotAllowed(errorHandler.MethodNotAllowed)
	})

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router, errorHandler *apierrors.ErrorHandler) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		dashboardHandler := handlers.NewDashboardHandler(a.Services.Dashboard, a.Logger, errorHandler)
		r.Mount("/stp", dashboardHandler.Routes())
	})
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts serving in the background. A listener failure calls cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", contracts.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("source", a.Services.Source.Name()))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	go a.warmDataset(ctx)

	return nil
}

// warmDataset loads the dataset ahead of the first request. A failure is
// only logged; the next query retries.
func (a *Application) warmDataset(ctx context.Context) {
	ds, err := a.Services.Dashboard.Dataset(ctx)
	if err != nil {
		a.Logger.WarnContext(ctx, "Startup dataset load failed", slog.String("error", err.Error()))
		return
	}
	a.Logger.InfoContext(ctx, "Startup dataset load complete",
		slog.Int("records", len(ds.Records)),
		slog.Int("months", len(ds.Aggregates)),
		slog.Int("malformed_rows", ds.Report.MalformedRows))
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.Services.System != nil {
		if err := a.Services.System.Stop(); err != nil {
			a.Logger.ErrorContext(ctx, "Error unregistering system metrics", slog.String("error", err.Error()))
		}
	}

	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx, stop); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.Info("Received interrupt signal")

	return a.Stop(context.Background())
}
