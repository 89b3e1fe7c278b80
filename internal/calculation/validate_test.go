package calculation

import (
	"testing"

	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func warningFields(warnings []domain.Warning) []string {
	fields := make([]string, 0, len(warnings))
	for _, w := range warnings {
		fields = append(fields, w.Field)
	}
	return fields
}

func TestValidate_CleanPlan(t *testing.T) {
	assert.Empty(t, Validate(samplePlan(), domain.ScenarioInputs{}, sampleAssets()))
}

func TestValidate_Flags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.PlanInputs, *domain.ScenarioInputs, []domain.Asset)
		field  string
	}{
		{
			name:   "negative age",
			mutate: func(p *domain.PlanInputs, _ *domain.ScenarioInputs, _ []domain.Asset) { p.CurrentAge = -1 },
			field:  "current_age",
		},
		{
			name:   "already retired",
			mutate: func(p *domain.PlanInputs, _ *domain.ScenarioInputs, _ []domain.Asset) { p.CurrentAge = 60 },
			field:  "target_retirement_age",
		},
		{
			name:   "life expectancy before retirement",
			mutate: func(p *domain.PlanInputs, _ *domain.ScenarioInputs, _ []domain.Asset) { p.LifeExpectancy = 55 },
			field:  "life_expectancy",
		},
		{
			name: "zero income",
			mutate: func(p *domain.PlanInputs, _ *domain.ScenarioInputs, _ []domain.Asset) {
				p.DesiredAnnualIncome = decimal.Zero
			},
			field: "desired_annual_income",
		},
		{
			name: "return wipes out balance",
			mutate: func(p *domain.PlanInputs, o *domain.ScenarioInputs, _ []domain.Asset) {
				p.PostRetirementReturn = decimal.NewFromInt(-95)
				o.InvestmentReturnAdjustment = decimal.NewFromInt(-5)
			},
			field: "post_retirement_return",
		},
		{
			name: "negative balance",
			mutate: func(_ *domain.PlanInputs, _ *domain.ScenarioInputs, a []domain.Asset) {
				a[1].CurrentValue = decimal.NewFromInt(-1)
			},
			field: "assets[1].current_value",
		},
		{
			name: "negative contribution",
			mutate: func(_ *domain.PlanInputs, _ *domain.ScenarioInputs, a []domain.Asset) {
				a[2].MonthlyContribution = decimal.NewFromInt(-10)
			},
			field: "assets[2].monthly_contribution",
		},
		{
			name: "negative extra savings",
			mutate: func(_ *domain.PlanInputs, o *domain.ScenarioInputs, _ []domain.Asset) {
				o.AdditionalMonthlySavings = decimal.NewFromInt(-100)
			},
			field: "additional_monthly_savings",
		},
		{
			name: "unknown event type",
			mutate: func(_ *domain.PlanInputs, o *domain.ScenarioInputs, _ []domain.Asset) {
				o.LumpSumEvents = []domain.LumpSumEvent{{ID: "x", Age: 40, Amount: decimal.NewFromInt(1), Type: "gift"}}
			},
			field: "lump_sum_events[0].type",
		},
		{
			name: "negative event amount",
			mutate: func(_ *domain.PlanInputs, o *domain.ScenarioInputs, _ []domain.Asset) {
				o.LumpSumEvents = []domain.LumpSumEvent{{ID: "x", Age: 40, Amount: decimal.NewFromInt(-1), Type: domain.EventDeposit}}
			},
			field: "lump_sum_events[0].amount",
		},
		{
			name: "event after horizon",
			mutate: func(_ *domain.PlanInputs, o *domain.ScenarioInputs, _ []domain.Asset) {
				o.LumpSumEvents = []domain.LumpSumEvent{{ID: "x", Age: 91, Amount: decimal.NewFromInt(1), Type: domain.EventDeposit}}
			},
			field: "lump_sum_events[0].age",
		},
		{
			name: "event before current age",
			mutate: func(_ *domain.PlanInputs, o *domain.ScenarioInputs, _ []domain.Asset) {
				o.LumpSumEvents = []domain.LumpSumEvent{{ID: "x", Age: 31, Amount: decimal.NewFromInt(1), Type: domain.EventDeposit}}
			},
			field: "lump_sum_events[0].age",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := samplePlan()
			var overlay domain.ScenarioInputs
			assets := sampleAssets()
			tt.mutate(&plan, &overlay, assets)

			warnings := Validate(plan, overlay, assets)
			assert.Contains(t, warningFields(warnings), tt.field)
		})
	}
}

func TestValidate_NoAssets(t *testing.T) {
	warnings := Validate(samplePlan(), domain.ScenarioInputs{}, nil)
	assert.Equal(t, []string{"assets"}, warningFields(warnings))
}

func TestValidate_DoesNotBlockProjection(t *testing.T) {
	plan := samplePlan()
	plan.DesiredAnnualIncome = decimal.NewFromInt(-1)
	result := Evaluate(&domain.Scenario{Name: "odd", Plan: plan}, sampleAssets())

	assert.NotEmpty(t, result.Warnings)
	assert.NotEmpty(t, result.Projections)
}
