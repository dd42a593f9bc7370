package models

// --- Request Structs ---

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	Messages []UIMessage `json:"messages"`
}

// ProjectionRequest is the body of POST /v1/projections. Missing base
// amounts are filled from the dashboard's financial base.
type ProjectionRequest struct {
	RevenueGrowthPct float64  `json:"revenueGrowthPct"`
	CostIncreasePct  float64  `json:"costIncreasePct"`
	InflationRatePct float64  `json:"inflationRatePct"`
	BaseRevenue      *float64 `json:"baseRevenue,omitempty"`
	BaseCost         *float64 `json:"baseCost,omitempty"`
}

// InsightRequest is the body of POST /v1/insights. A nil ProfitChangePct
// means the change is undefined (current profit of zero).
type InsightRequest struct {
	RevenueGrowthPct float64  `json:"revenueGrowthPct"`
	CostIncreasePct  float64  `json:"costIncreasePct"`
	ProfitChangePct  *float64 `json:"profitChangePct"`
}

// --- Response Structs ---

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ProjectionPeriodResponse is one month of a projection.
type ProjectionPeriodResponse struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
	Cost    int64  `json:"cost"`
	Profit  int64  `json:"profit"`
}

// ProjectionResponse is returned by POST /v1/projections.
type ProjectionResponse struct {
	Periods             []ProjectionPeriodResponse `json:"periods"`
	BaseRevenue         float64                    `json:"baseRevenue"`
	BaseCost            float64                    `json:"baseCost"`
	CurrentProfit       float64                    `json:"currentProfit"`
	ProjectedProfit     int64                      `json:"projectedProfit"`
	ProfitChangePct     *float64                   `json:"profitChangePct"`
	ProfitChangeDefined bool                       `json:"profitChangeDefined"`
	Summary             string                     `json:"summary"`
}

// InsightResponse is returned by POST /v1/insights; State is "succeeded" or "failed".
type InsightResponse struct {
	State    string `json:"state"`
	Text     string `json:"text"`
	Attempts int    `json:"attempts"`
}
