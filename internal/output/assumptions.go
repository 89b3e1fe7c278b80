package output

import (
	"fmt"

	"github.com/rgehrsitz/readiness/internal/calculation"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// Assumptions lists the modeling assumptions behind a scenario's projection.
func Assumptions(s *domain.Scenario, assets []domain.Asset) []string {
	pre, post := calculation.EffectiveRates(s.Plan, assets, s.Overlay)
	hundred := decimal.NewFromInt(100)

	out := []string{
		fmt.Sprintf("Pre-retirement growth: %s annually (average of account histories)", FormatPercentage(pre.Mul(hundred))),
		fmt.Sprintf("Post-retirement growth: %s annually", FormatPercentage(post.Mul(hundred))),
		fmt.Sprintf("Income inflation after retirement: %s annually", FormatPercentage(s.Plan.InflationRate)),
		fmt.Sprintf("Contributions: %s per month including extra savings",
			FormatCurrency(calculation.TotalMonthlyContribution(assets, s.Overlay))),
		fmt.Sprintf("Projection horizon: age %d to %d", s.Plan.CurrentAge, s.Plan.HorizonEndAge()),
	}
	if !s.Overlay.InvestmentReturnAdjustment.IsZero() {
		out = append(out, fmt.Sprintf("Return adjustment: %s points applied to both phases",
			s.Overlay.InvestmentReturnAdjustment.StringFixed(2)))
	}
	return out
}
