package models

import "encoding/json"

// DashboardSnapshot is the static dataset behind the dashboard. It is loaded
// once at startup and never mutated afterwards.
type DashboardSnapshot struct {
	HeaderInfo              HeaderInfo                    `json:"headerInfo"`
	Metrics                 []Metric                      `json:"metrics"`
	NavigationItems         []NavigationItem              `json:"navigationItems"`
	FinancialBase           *FinancialBase                `json:"financialBase,omitempty"`
	RevenueData             json.RawMessage               `json:"revenueData,omitempty"`
	TrafficData             json.RawMessage               `json:"trafficData,omitempty"`
	PerformanceData         []CategoryValue               `json:"performanceData,omitempty"`
	MonthlyBreakdown        []MonthlyBreakdown            `json:"monthlyBreakdown,omitempty"`
	ProductSalesPerformance map[string]ProductPerformance `json:"productSalesPerformance,omitempty"`
	TopExpenseCategory      json.RawMessage               `json:"topExpenseCategory,omitempty"`
}

type HeaderInfo struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// Trend is the direction of a metric compared to the previous month.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = ""
)

type Metric struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  Trend  `json:"trend"`
	Icon   Icon   `json:"icon"`
}

type NavigationItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon Icon   `json:"icon"`
}

// FinancialBase seeds the financial simulator.
type FinancialBase struct {
	BaseRevenue float64 `json:"baseRevenue"`
	BaseCost    float64 `json:"baseCost"`
}

type CategoryValue struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type MonthlyBreakdown struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

type ProductPerformance struct {
	Concentration float64 `json:"concentration"`
}

// CompanySummary is one entry of the company selector.
type CompanySummary struct {
	ID string `json:"empresa_id"`
}

// DashboardResponse is returned by GET /v1/dashboard.
type DashboardResponse struct {
	HeaderInfo           HeaderInfo         `json:"headerInfo"`
	Metrics              []Metric           `json:"metrics"`
	NavigationItems      []NavigationItem   `json:"navigationItems"`
	FinancialBase        FinancialBase      `json:"financialBase"`
	MonthlyBreakdown     []MonthlyBreakdown `json:"monthlyBreakdown"`
	ProductConcentration []CategoryValue    `json:"productConcentration"`
	ExpenseBreakdown     []CategoryValue    `json:"expenseBreakdown"`
	RevenueData          json.RawMessage    `json:"revenueData,omitempty"`
	TrafficData          json.RawMessage    `json:"trafficData,omitempty"`
	TopExpenseCategory   json.RawMessage    `json:"topExpenseCategory,omitempty"`
}
