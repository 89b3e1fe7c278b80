package calculation

import (
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// depletedTailYears is how far past retirement a depleted projection must run
// (and be past life expectancy) before it stops early.
const depletedTailYears = 5

// Project simulates the aggregate asset balance year by year from the current
// age to the plan's horizon. Lump sums at an age are applied before that
// year's growth or drawdown. The balance is clamped at zero every year.
//
// Project is a pure function: none of its arguments are modified.
func Project(plan domain.PlanInputs, overlay domain.ScenarioInputs, assets []domain.Asset) []domain.YearlyProjection {
	endAge := plan.HorizonEndAge()
	if plan.CurrentAge > endAge {
		return []domain.YearlyProjection{}
	}

	preReturn, postReturn := EffectiveRates(plan, assets, overlay)
	preGrowth := decimal.NewFromInt(1).Add(preReturn)
	postGrowth := decimal.NewFromInt(1).Add(postReturn)
	inflation := decimal.NewFromInt(1).Add(plan.InflationRate.Div(hundred))
	annualContribution := AnnualContribution(assets, overlay)

	totalAssets := TotalCurrentValue(assets)
	income := plan.DesiredAnnualIncome

	projections := make([]domain.YearlyProjection, 0, endAge-plan.CurrentAge+1)
	for age := plan.CurrentAge; age <= endAge; age++ {
		for _, event := range overlay.LumpSumEvents {
			if event.Age == age {
				totalAssets = totalAssets.Add(event.SignedAmount())
			}
		}

		year := domain.YearlyProjection{
			Age:            age,
			AnnualIncome:   decimal.Zero,
			AnnualExpenses: decimal.Zero,
		}

		retired := age >= plan.TargetRetirementAge
		if !retired {
			totalAssets = totalAssets.Add(annualContribution).Mul(preGrowth)
		} else {
			if age > plan.TargetRetirementAge {
				income = income.Mul(inflation)
			}
			year.AnnualIncome = income
			year.AnnualExpenses = income
			totalAssets = totalAssets.Sub(income).Mul(postGrowth)
		}

		if totalAssets.IsNegative() {
			totalAssets = decimal.Zero
		}
		year.TotalAssets = totalAssets
		year.Status = classify(retired, totalAssets, year.AnnualExpenses)
		projections = append(projections, year)

		if retired && !totalAssets.IsPositive() &&
			age > plan.TargetRetirementAge+depletedTailYears && age > plan.LifeExpectancy {
			break
		}
	}

	return projections
}

func classify(retired bool, totalAssets, expenses decimal.Decimal) domain.Status {
	if !retired {
		return domain.StatusOK
	}
	if !totalAssets.IsPositive() {
		return domain.StatusCritical
	}
	if totalAssets.LessThan(expenses.Mul(decimal.NewFromInt(2))) {
		return domain.StatusWarning
	}
	return domain.StatusOK
}
