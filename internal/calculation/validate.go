package calculation

import (
	"fmt"

	"github.com/rgehrsitz/readiness/internal/domain"
)

// Validate flags implausible inputs. It never blocks a projection: the
// projector accepts anything and degrades to trivial output instead.
func Validate(plan domain.PlanInputs, overlay domain.ScenarioInputs, assets []domain.Asset) []domain.Warning {
	var warnings []domain.Warning
	add := func(field, format string, args ...any) {
		warnings = append(warnings, domain.Warning{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if plan.CurrentAge < 0 {
		add("current_age", "age %d is negative", plan.CurrentAge)
	}
	if plan.CurrentAge >= plan.TargetRetirementAge {
		add("target_retirement_age", "retirement age %d is not after current age %d; accumulation is skipped",
			plan.TargetRetirementAge, plan.CurrentAge)
	}
	if plan.TargetRetirementAge > plan.LifeExpectancy {
		add("life_expectancy", "life expectancy %d is before retirement age %d", plan.LifeExpectancy, plan.TargetRetirementAge)
	}
	if !plan.DesiredAnnualIncome.IsPositive() {
		add("desired_annual_income", "desired income %s is not positive; retirement years will show no income",
			plan.DesiredAnnualIncome.String())
	}
	if plan.PostRetirementReturn.Add(overlay.InvestmentReturnAdjustment).LessThanOrEqual(hundred.Neg()) {
		add("post_retirement_return", "effective return wipes out the balance every year")
	}

	if len(assets) == 0 {
		add("assets", "no assets; the projection starts from a zero balance")
	}
	for i, a := range assets {
		if a.CurrentValue.IsNegative() {
			add(fmt.Sprintf("assets[%d].current_value", i), "%s has a negative balance", a.Name)
		}
		if a.MonthlyContribution.IsNegative() {
			add(fmt.Sprintf("assets[%d].monthly_contribution", i), "%s has a negative contribution", a.Name)
		}
	}

	if overlay.AdditionalMonthlySavings.IsNegative() {
		add("additional_monthly_savings", "extra savings %s reduce the regular contribution", overlay.AdditionalMonthlySavings.String())
	}

	endAge := plan.HorizonEndAge()
	for i, e := range overlay.LumpSumEvents {
		field := fmt.Sprintf("lump_sum_events[%d]", i)
		if !e.Type.Valid() {
			add(field+".type", "unknown event type %q is treated as a withdrawal", e.Type)
		}
		if e.Amount.IsNegative() {
			add(field+".amount", "amount %s is negative", e.Amount.String())
		}
		if e.Age < plan.CurrentAge || e.Age > endAge {
			add(field+".age", "age %d is outside the projection (%d-%d) and has no effect", e.Age, plan.CurrentAge, endAge)
		}
	}

	return warnings
}
