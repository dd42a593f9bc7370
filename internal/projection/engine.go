package projection

import (
	"errors"
	"fmt"
	"math"
)

// Months is the fixed projection horizon.
const Months = 12

// Default base values used when neither the caller nor the dashboard
// snapshot supplies them.
const (
	DefaultBaseRevenue = 100000
	DefaultBaseCost    = 70000
)

// Slider bounds accepted for each percentage input.
const (
	MinRevenueGrowthPct = -20
	MaxRevenueGrowthPct = 50
	MinCostIncreasePct  = -10
	MaxCostIncreasePct  = 30
	MinInflationRatePct = 0
	MaxInflationRatePct = 15
)

// ErrInvalidInput is wrapped by every validation failure from Project.
var ErrInvalidInput = errors.New("invalid projection input")

// Input holds the caller-supplied rates (in percent per year) and base amounts.
type Input struct {
	RevenueGrowthPct float64
	CostIncreasePct  float64
	InflationRatePct float64
	BaseRevenue      float64
	BaseCost         float64
}

// Period is one projected month. All values are rounded half-up.
type Period struct {
	Index   int
	Month   string
	Revenue int64
	Cost    int64
	Profit  int64
}

// ProfitChange is the year-end profit change relative to the current profit.
// Defined is false when the current profit is zero and no percentage exists.
type ProfitChange struct {
	Pct     float64
	Defined bool
}

// Projection is the full result of a 12 month simulation.
type Projection struct {
	Input           Input
	Periods         []Period
	CurrentProfit   float64
	ProjectedProfit int64
	ProfitChange    ProfitChange
}

// Validate checks the rates against the simulator bounds and the base amounts
// for positivity.
func (in Input) Validate() error {
	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"revenueGrowthPct", in.RevenueGrowthPct, MinRevenueGrowthPct, MaxRevenueGrowthPct},
		{"costIncreasePct", in.CostIncreasePct, MinCostIncreasePct, MaxCostIncreasePct},
		{"inflationRatePct", in.InflationRatePct, MinInflationRatePct, MaxInflationRatePct},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || c.value < c.min || c.value > c.max {
			return fmt.Errorf("%w: %s must be between %g and %g", ErrInvalidInput, c.name, c.min, c.max)
		}
	}
	if !isPositiveFinite(in.BaseRevenue) {
		return fmt.Errorf("%w: baseRevenue must be a positive number", ErrInvalidInput)
	}
	if !isPositiveFinite(in.BaseCost) {
		return fmt.Errorf("%w: baseCost must be a positive number", ErrInvalidInput)
	}
	return nil
}

// Project computes the linear monthly projection for in.
//
// Revenue, cost and the inflation impact are computed unrounded; each output
// value is rounded half-up only when stored in the Period. The inflation
// impact is taken on the unrounded revenue.
func Project(in Input) (*Projection, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	monthlyRevenueGrowth := in.RevenueGrowthPct / 100 / 12
	monthlyCostIncrease := in.CostIncreasePct / 100 / 12
	monthlyInflation := in.InflationRatePct / 100 / 12

	periods := make([]Period, 0, Months)
	for i := 0; i < Months; i++ {
		n := float64(i)
		revenue := in.BaseRevenue * (1 + monthlyRevenueGrowth*n)
		cost := in.BaseCost * (1 + monthlyCostIncrease*n)
		inflationImpact := revenue * monthlyInflation * n
		profit := revenue - cost - inflationImpact

		periods = append(periods, Period{
			Index:   i,
			Month:   fmt.Sprintf("Month %d", i+1),
			Revenue: roundHalfUp(revenue),
			Cost:    roundHalfUp(cost),
			Profit:  roundHalfUp(profit),
		})
	}

	currentProfit := in.BaseRevenue - in.BaseCost
	projected := periods[Months-1].Profit

	return &Projection{
		Input:           in,
		Periods:         periods,
		CurrentProfit:   currentProfit,
		ProjectedProfit: projected,
		ProfitChange:    profitChange(currentProfit, float64(projected)),
	}, nil
}

func profitChange(current, projected float64) ProfitChange {
	if current == 0 {
		return ProfitChange{}
	}
	pct := (projected - current) / current * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return ProfitChange{}
	}
	return ProfitChange{Pct: pct, Defined: true}
}

// roundHalfUp matches the dashboard's rounding: ties go towards +Inf.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
