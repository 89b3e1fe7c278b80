package breakeven

import (
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// shortfallScenario runs out of money at 79 and scores 76 before any change.
func shortfallScenario() *domain.Scenario {
	return &domain.Scenario{
		Name: "Base",
		Plan: domain.PlanInputs{
			CurrentAge:           32,
			TargetRetirementAge:  60,
			LifeExpectancy:       85,
			DesiredAnnualIncome:  decimal.NewFromInt(90000),
			InflationRate:        decimal.NewFromInt(3),
			PostRetirementReturn: decimal.NewFromInt(5),
		},
	}
}

func fundedScenario() *domain.Scenario {
	s := shortfallScenario()
	s.Plan.DesiredAnnualIncome = decimal.NewFromInt(60000)
	return s
}

func testAssets() []domain.Asset {
	return []domain.Asset{
		{ID: "epf", Name: "EPF Account 1", Kind: domain.AssetEPF,
			CurrentValue: decimal.NewFromInt(120000), MonthlyContribution: decimal.NewFromInt(400),
			HistoricalReturn: decimal.NewFromInt(6)},
		{ID: "prs", Name: "PRS Growth Fund", Kind: domain.AssetPRS,
			CurrentValue: decimal.RequireFromString("25650.50"), MonthlyContribution: decimal.NewFromInt(150),
			HistoricalReturn: decimal.NewFromInt(5), CanEdit: true},
		{ID: "unit-trust", Name: "Unit Trust Portfolio", Kind: domain.AssetInvestment,
			CurrentValue: decimal.NewFromInt(40000), MonthlyContribution: decimal.NewFromInt(100),
			HistoricalReturn: decimal.NewFromInt(7), CanEdit: true},
	}
}

func emptyAssets() []domain.Asset {
	return []domain.Asset{{ID: "epf", Name: "EPF", Kind: domain.AssetEPF}}
}
