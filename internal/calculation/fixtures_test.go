package calculation

import (
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// samplePlan is the reference client: 32 years old, retiring at 60.
func samplePlan() domain.PlanInputs {
	return domain.PlanInputs{
		CurrentAge:           32,
		TargetRetirementAge:  60,
		LifeExpectancy:       85,
		DesiredAnnualIncome:  decimal.NewFromInt(60000),
		InflationRate:        decimal.NewFromInt(3),
		PostRetirementReturn: decimal.NewFromInt(5),
	}
}

// sampleAssets total RM185,650.50 with RM650/month of contributions and a
// 6% average historical return.
func sampleAssets() []domain.Asset {
	return []domain.Asset{
		{
			ID:                  "epf",
			Name:                "EPF Account 1",
			Kind:                domain.AssetEPF,
			CurrentValue:        dec("120000.00"),
			MonthlyContribution: decimal.NewFromInt(400),
			HistoricalReturn:    decimal.NewFromInt(6),
		},
		{
			ID:                  "prs",
			Name:                "PRS Growth Fund",
			Kind:                domain.AssetPRS,
			CurrentValue:        dec("25650.50"),
			MonthlyContribution: decimal.NewFromInt(150),
			HistoricalReturn:    decimal.NewFromInt(5),
			CanEdit:             true,
		},
		{
			ID:                  "unit-trust",
			Name:                "Unit Trust Portfolio",
			Kind:                domain.AssetInvestment,
			CurrentValue:        dec("40000.00"),
			MonthlyContribution: decimal.NewFromInt(100),
			HistoricalReturn:    decimal.NewFromInt(7),
			CanEdit:             true,
		},
	}
}

func zeroAssets() []domain.Asset {
	return []domain.Asset{
		{ID: "epf", Name: "EPF", Kind: domain.AssetEPF, HistoricalReturn: dec("5.5")},
	}
}

func yearAt(t interface{ Fatalf(string, ...any) }, projections []domain.YearlyProjection, age int) domain.YearlyProjection {
	for _, y := range projections {
		if y.Age == age {
			return y
		}
	}
	t.Fatalf("age %d not in projection", age)
	return domain.YearlyProjection{}
}
