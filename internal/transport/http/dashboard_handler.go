package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "stpflow/internal/errors"
	"stpflow/internal/services"
)

type monthKeyCtxKey struct{}

// DashboardHandler serves the STP dashboard queries with RFC 7807 errors
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// MonthOptionsResponse wraps the month selector list
type MonthOptionsResponse struct {
	Months []MonthOptionItem `json:"months"`
	Count  int               `json:"count"`
}

// MonthOptionItem is one selector entry
type MonthOptionItem struct {
	MonthKey     string `json:"month_key"`
	DisplayLabel string `json:"display_label"`
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if errorHandler == nil {
		errorHandler = apierrors.NewErrorHandler(logger, false)
	}
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes, mounted under /api/stp
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/months", h.ListMonths)
	r.Route("/months/{monthKey}", func(r chi.Router) {
		r.Use(h.MonthCtx)
		r.Get("/", h.GetMonthBundle)
		r.Get("/flow", h.GetFlowGraph)
	})
	r.Get("/series/monthly", h.GetMonthlySeries)
	r.Get("/report", h.GetReport)

	return r
}

// MonthCtx validates the monthKey URL parameter and stores it in the context
func (h *DashboardHandler) MonthCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		monthKey := chi.URLParam(r, "monthKey")
		if err := services.ValidateMonthKey(monthKey); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InvalidMonthKeyError(monthKey))
			return
		}
		ctx := context.WithValue(r.Context(), monthKeyCtxKey{}, monthKey)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func monthKeyFrom(r *http.Request) string {
	if key, ok := r.Context().Value(monthKeyCtxKey{}).(string); ok {
		return key
	}
	return chi.URLParam(r, "monthKey")
}

// ListMonths handles GET /api/stp/months
func (h *DashboardHandler) ListMonths(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.MonthOptions(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	items := make([]MonthOptionItem, len(options))
	for i, o := range options {
		items[i] = MonthOptionItem{MonthKey: o.MonthKey, DisplayLabel: o.DisplayLabel}
	}
	render.JSON(w, r, MonthOptionsResponse{Months: items, Count: len(items)})
}

// GetMonthBundle handles GET /api/stp/months/{monthKey}. Unknown months are
// answered with a zero bundle and 200.
func (h *DashboardHandler) GetMonthBundle(w http.ResponseWriter, r *http.Request) {
	monthKey := monthKeyFrom(r)

	bundle, err := h.service.GetMonthBundle(r.Context(), monthKey)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if !bundle.Found {
		h.logger.InfoContext(r.Context(), "month not in dataset",
			slog.String("month_key", monthKey),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	}
	render.JSON(w, r, bundle)
}

// GetFlowGraph handles GET /api/stp/months/{monthKey}/flow
func (h *DashboardHandler) GetFlowGraph(w http.ResponseWriter, r *http.Request) {
	graph, err := h.service.FlowGraph(r.Context(), monthKeyFrom(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, graph)
}

// GetMonthlySeries handles GET /api/stp/series/monthly
func (h *DashboardHandler) GetMonthlySeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.MonthlySeries(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"series": series, "count": len(series)})
}

// GetReport handles GET /api/stp/report
func (h *DashboardHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Report(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// handleServiceError maps service errors to API errors
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidMonthKey):
		h.errorHandler.HandleError(w, r, apierrors.InvalidMonthKeyError(monthKeyFrom(r)))
	case errors.Is(err, services.ErrDatasetUnavailable):
		// Source failures carry an AppError that picks the problem type; a
		// missing source and anything else get the generic 503.
		var appErr *apierrors.AppError
		if errors.As(err, &appErr) && appErr.Type != apierrors.ErrTypeNotFound {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrDatasetUnavailable)
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
