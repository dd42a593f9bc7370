package services

import (
	"bizdash-backend/internal/models"
	"bizdash-backend/internal/projection"
)

// ProjectionService runs the financial simulator with defaults taken from
// the dashboard's financial base.
type ProjectionService struct {
	defaults models.FinancialBase
}

func NewProjectionService(defaults models.FinancialBase) *ProjectionService {
	return &ProjectionService{defaults: defaults}
}

// Project fills missing base amounts and computes the projection.
// Returned errors wrap projection.ErrInvalidInput.
func (s *ProjectionService) Project(req models.ProjectionRequest) (*projection.Projection, error) {
	in := projection.Input{
		RevenueGrowthPct: req.RevenueGrowthPct,
		CostIncreasePct:  req.CostIncreasePct,
		InflationRatePct: req.InflationRatePct,
		BaseRevenue:      s.defaults.BaseRevenue,
		BaseCost:         s.defaults.BaseCost,
	}
	if req.BaseRevenue != nil {
		in.BaseRevenue = *req.BaseRevenue
	}
	if req.BaseCost != nil {
		in.BaseCost = *req.BaseCost
	}
	return projection.Project(in)
}

// ToProjectionResponse maps a projection onto its API representation.
func ToProjectionResponse(p *projection.Projection) models.ProjectionResponse {
	periods := make([]models.ProjectionPeriodResponse, len(p.Periods))
	for i, period := range p.Periods {
		periods[i] = models.ProjectionPeriodResponse{
			Month:   period.Month,
			Revenue: period.Revenue,
			Cost:    period.Cost,
			Profit:  period.Profit,
		}
	}

	resp := models.ProjectionResponse{
		Periods:             periods,
		BaseRevenue:         p.Input.BaseRevenue,
		BaseCost:            p.Input.BaseCost,
		CurrentProfit:       p.CurrentProfit,
		ProjectedProfit:     p.ProjectedProfit,
		ProfitChangeDefined: p.ProfitChange.Defined,
		Summary:             p.Summary().Describe(),
	}
	if p.ProfitChange.Defined {
		pct := p.ProfitChange.Pct
		resp.ProfitChangePct = &pct
	}
	return resp
}

// SummaryFromInsightRequest rebuilds the projection summary an insight
// request describes.
func SummaryFromInsightRequest(req models.InsightRequest) projection.Summary {
	s := projection.Summary{
		RevenueGrowthPct: req.RevenueGrowthPct,
		CostIncreasePct:  req.CostIncreasePct,
	}
	if req.ProfitChangePct != nil {
		s.ProfitChange = projection.ProfitChange{Pct: *req.ProfitChangePct, Defined: true}
	}
	return s
}
