package calculation

import (
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// TotalCurrentValue sums the current value of all assets
func TotalCurrentValue(assets []domain.Asset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.CurrentValue)
	}
	return total
}

// TotalMonthlyContribution sums asset contributions plus the overlay's extra savings
func TotalMonthlyContribution(assets []domain.Asset, overlay domain.ScenarioInputs) decimal.Decimal {
	total := overlay.AdditionalMonthlySavings
	for _, a := range assets {
		total = total.Add(a.MonthlyContribution)
	}
	return total
}

// AnnualContribution is twelve months of the combined monthly contribution
func AnnualContribution(assets []domain.Asset, overlay domain.ScenarioInputs) decimal.Decimal {
	return TotalMonthlyContribution(assets, overlay).Mul(monthsInYear)
}

// AverageHistoricalReturn is the unweighted mean of asset returns in percent.
// An empty asset list averages to zero.
func AverageHistoricalReturn(assets []domain.Asset) decimal.Decimal {
	if len(assets) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, a := range assets {
		sum = sum.Add(a.HistoricalReturn)
	}
	return sum.Div(decimal.NewFromInt(int64(len(assets))))
}

// EffectiveRates returns the pre- and post-retirement growth rates as
// fractions, both shifted by the overlay's return adjustment.
func EffectiveRates(plan domain.PlanInputs, assets []domain.Asset, overlay domain.ScenarioInputs) (pre, post decimal.Decimal) {
	pre = AverageHistoricalReturn(assets).Add(overlay.InvestmentReturnAdjustment).Div(hundred)
	post = plan.PostRetirementReturn.Add(overlay.InvestmentReturnAdjustment).Div(hundred)
	return pre, post
}
