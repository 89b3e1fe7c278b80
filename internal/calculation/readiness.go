package calculation

import (
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// RetirementAge is the age of the first year that draws income, or the first
// projected age when no year does.
func RetirementAge(projections []domain.YearlyProjection) int {
	for _, y := range projections {
		if y.IsRetired() {
			return y.Age
		}
	}
	if len(projections) == 0 {
		return 0
	}
	return projections[0].Age
}

// FundsEndAge is the last age that still holds assets, or 0 if none does
func FundsEndAge(projections []domain.YearlyProjection) int {
	for i := len(projections) - 1; i >= 0; i-- {
		if projections[i].TotalAssets.IsPositive() {
			return projections[i].Age
		}
	}
	return 0
}

// ReadinessScore reduces a projection to the share (0-100) of the retirement
// years up to life expectancy that the assets are projected to cover.
func ReadinessScore(projections []domain.YearlyProjection, lifeExpectancy int) int {
	retirementAge := RetirementAge(projections)
	fundsEndAge := FundsEndAge(projections)

	switch {
	case fundsEndAge >= lifeExpectancy:
		return 100
	case fundsEndAge < retirementAge:
		return 0
	case lifeExpectancy <= retirementAge:
		return 100
	}

	covered := decimal.NewFromInt(int64(fundsEndAge - retirementAge))
	required := decimal.NewFromInt(int64(lifeExpectancy - retirementAge))
	score := covered.Mul(hundred).Div(required).Round(0).IntPart()
	if score > 100 {
		return 100
	}
	return int(score)
}
