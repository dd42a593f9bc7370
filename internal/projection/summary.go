package projection

import (
	"fmt"
	"math"
	"strconv"
)

// Summary is the part of a projection the insight relay needs.
type Summary struct {
	RevenueGrowthPct float64
	CostIncreasePct  float64
	ProfitChange     ProfitChange
}

// Summary reduces p to the scenario description used for insights.
func (p *Projection) Summary() Summary {
	return Summary{
		RevenueGrowthPct: p.Input.RevenueGrowthPct,
		CostIncreasePct:  p.Input.CostIncreasePct,
		ProfitChange:     p.ProfitChange,
	}
}

// Describe renders the one-line outcome shown next to the projection chart.
func (s Summary) Describe() string {
	head := fmt.Sprintf("With a %s%% increase in revenue and %s%% higher costs",
		formatPct(s.RevenueGrowthPct), formatPct(s.CostIncreasePct))
	if !s.ProfitChange.Defined {
		return head + ", the change in projected profit cannot be expressed as a percentage because current profit is zero."
	}
	direction := "decline"
	if s.ProfitChange.Pct > 0 {
		direction = "grow"
	}
	return fmt.Sprintf("%s, your projected profit is expected to %s by %.1f%%.",
		head, direction, math.Abs(s.ProfitChange.Pct))
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
