package http

import (
	"context"

	"stpflow/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard queries the handler serves
type DashboardServiceInterface interface {
	GetMonthBundle(ctx context.Context, monthKey string) (domain.MonthBundle, error)
	MonthOptions(ctx context.Context) ([]domain.MonthOption, error)
	MonthlySeries(ctx context.Context) ([]domain.MonthlyPoint, error)
	FlowGraph(ctx context.Context, monthKey string) (domain.FlowGraph, error)
	Report(ctx context.Context) (domain.ParseReport, error)
}
