package services

import (
	"bizdash-backend/internal/models"
	"bizdash-backend/internal/projection"
	"bizdash-backend/internal/store"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Products shown in the sales concentration chart; they are excluded from
// the expense breakdown.
var concentrationProducts = []struct {
	key  string
	name string
}{
	{"producto_a", "Producto A"},
	{"producto_b", "Producto B"},
}

// DashboardService serves the static dashboard datasets. The data is read
// once by LoadDashboardService and shared read-only between requests.
type DashboardService struct {
	view      models.DashboardResponse
	companies []models.CompanySummary
}

// LoadDashboardService reads the snapshot and company list from st. A store
// without a snapshot yields an empty dashboard with the default financial base.
func LoadDashboardService(ctx context.Context, st store.DashboardStore, logger *slog.Logger) (*DashboardService, error) {
	logger = logger.With("component", "dashboard_service")

	snapshot, err := st.LoadSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed to load dashboard snapshot: %w", err)
		}
		logger.Warn("no dashboard snapshot available, serving an empty dashboard")
		snapshot = &models.DashboardSnapshot{}
	}

	companies, err := st.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}

	svc := &DashboardService{
		view:      buildDashboardView(snapshot),
		companies: companies,
	}
	logger.Info("dashboard data loaded",
		"metrics", len(svc.view.Metrics),
		"navigation_items", len(svc.view.NavigationItems),
		"companies", len(companies))
	return svc, nil
}

func buildDashboardView(s *models.DashboardSnapshot) models.DashboardResponse {
	header := s.HeaderInfo
	if header.Title == "" {
		header = models.HeaderInfo{Title: "Dashboard", Subtitle: "Welcome"}
	}

	metrics := make([]models.Metric, len(s.Metrics))
	for i, m := range s.Metrics {
		m.Icon = m.Icon.Or(models.IconDollarSign)
		metrics[i] = m
	}

	nav := make([]models.NavigationItem, len(s.NavigationItems))
	for i, item := range s.NavigationItems {
		item.Icon = item.Icon.Or(models.IconLayoutDashboard)
		nav[i] = item
	}

	concentration := make([]models.CategoryValue, 0, len(concentrationProducts))
	excluded := make(map[string]bool, len(concentrationProducts))
	for _, p := range concentrationProducts {
		concentration = append(concentration, models.CategoryValue{
			Category: p.name,
			Value:    s.ProductSalesPerformance[p.key].Concentration,
		})
		excluded[p.name] = true
	}

	expenses := make([]models.CategoryValue, 0, len(s.PerformanceData))
	for _, d := range s.PerformanceData {
		if !excluded[d.Category] {
			expenses = append(expenses, d)
		}
	}

	breakdown := s.MonthlyBreakdown
	if breakdown == nil {
		breakdown = []models.MonthlyBreakdown{}
	}

	return models.DashboardResponse{
		HeaderInfo:           header,
		Metrics:              metrics,
		NavigationItems:      nav,
		FinancialBase:        financialBase(s.FinancialBase),
		MonthlyBreakdown:     breakdown,
		ProductConcentration: concentration,
		ExpenseBreakdown:     expenses,
		RevenueData:          s.RevenueData,
		TrafficData:          s.TrafficData,
		TopExpenseCategory:   s.TopExpenseCategory,
	}
}

func financialBase(fb *models.FinancialBase) models.FinancialBase {
	out := models.FinancialBase{
		BaseRevenue: projection.DefaultBaseRevenue,
		BaseCost:    projection.DefaultBaseCost,
	}
	if fb == nil {
		return out
	}
	if fb.BaseRevenue > 0 {
		out.BaseRevenue = fb.BaseRevenue
	}
	if fb.BaseCost > 0 {
		out.BaseCost = fb.BaseCost
	}
	return out
}

// Dashboard returns the prepared dashboard view.
func (s *DashboardService) Dashboard() models.DashboardResponse {
	return s.view
}

// Companies returns the company summaries.
func (s *DashboardService) Companies() []models.CompanySummary {
	if s.companies == nil {
		return []models.CompanySummary{}
	}
	return s.companies
}

// FinancialBase returns the simulator's default base amounts.
func (s *DashboardService) FinancialBase() models.FinancialBase {
	return s.view.FinancialBase
}
