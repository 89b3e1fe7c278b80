package calculation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_ReferencePlanSnapshot(t *testing.T) {
	projections := Project(samplePlan(), domain.ScenarioInputs{}, sampleAssets())

	require.Len(t, projections, 59, "ages 32 through 90 inclusive")
	assert.Equal(t, 32, projections[0].Age)
	assert.Equal(t, 90, projections[len(projections)-1].Age)

	tests := []struct {
		age    int
		assets string
		income string
		status domain.Status
	}{
		{32, "205057.53", "0.00", domain.StatusOK},
		{33, "225628.98", "0.00", domain.StatusOK},
		{59, "1515577.62", "0.00", domain.StatusOK},
		{60, "1528356.50", "60000.00", domain.StatusOK},
		{61, "1539884.32", "61800.00", domain.StatusOK},
		{85, "981791.47", "125626.68", domain.StatusOK},
		{90, "458179.77", "145635.75", domain.StatusOK},
	}
	for _, tt := range tests {
		y := yearAt(t, projections, tt.age)
		assert.Equal(t, tt.assets, y.TotalAssets.StringFixed(2), "assets at %d", tt.age)
		assert.Equal(t, tt.income, y.AnnualIncome.StringFixed(2), "income at %d", tt.age)
		assert.True(t, y.AnnualIncome.Equal(y.AnnualExpenses), "expenses mirror income at %d", tt.age)
		assert.Equal(t, tt.status, y.Status, "status at %d", tt.age)
	}
}

func TestProject_RetirementYearIncomeIsUninflated(t *testing.T) {
	projections := Project(samplePlan(), domain.ScenarioInputs{}, sampleAssets())

	assert.True(t, yearAt(t, projections, 59).AnnualIncome.IsZero())
	assert.True(t, yearAt(t, projections, 60).AnnualIncome.Equal(decimal.NewFromInt(60000)))
	assert.True(t, yearAt(t, projections, 61).AnnualIncome.Equal(decimal.NewFromInt(61800)))
	assert.True(t, yearAt(t, projections, 62).AnnualIncome.Equal(dec("63654")))
}

func TestProject_ShortfallStatusesAndEarlyExit(t *testing.T) {
	plan := samplePlan()
	plan.DesiredAnnualIncome = decimal.NewFromInt(90000)

	projections := Project(plan, domain.ScenarioInputs{}, sampleAssets())

	assert.Equal(t, 86, projections[len(projections)-1].Age, "stops once depleted past retirement+5 and life expectancy")

	assert.Equal(t, domain.StatusOK, yearAt(t, projections, 77).Status)

	y78 := yearAt(t, projections, 78)
	assert.Equal(t, "175265.59", y78.TotalAssets.StringFixed(2))
	assert.Equal(t, domain.StatusWarning, y78.Status)

	y79 := yearAt(t, projections, 79)
	assert.Equal(t, "18322.54", y79.TotalAssets.StringFixed(2))
	assert.Equal(t, domain.StatusWarning, y79.Status)

	for _, age := range []int{80, 81, 86} {
		y := yearAt(t, projections, age)
		assert.True(t, y.TotalAssets.IsZero(), "clamped at %d", age)
		assert.Equal(t, domain.StatusCritical, y.Status, "critical at %d", age)
	}
}

func TestProject_NeverNegative(t *testing.T) {
	plans := []domain.PlanInputs{samplePlan()}
	lean := samplePlan()
	lean.DesiredAnnualIncome = decimal.NewFromInt(250000)
	plans = append(plans, lean)
	crash := samplePlan()
	crash.PostRetirementReturn = decimal.NewFromInt(-40)
	plans = append(plans, crash)

	overlays := []domain.ScenarioInputs{
		{},
		{InvestmentReturnAdjustment: decimal.NewFromInt(-10)},
		{LumpSumEvents: []domain.LumpSumEvent{
			{ID: "a", Age: 45, Amount: decimal.NewFromInt(5000000), Type: domain.EventWithdrawal},
		}},
	}

	for _, plan := range plans {
		for _, overlay := range overlays {
			for _, y := range Project(plan, overlay, sampleAssets()) {
				assert.False(t, y.TotalAssets.IsNegative(), "negative balance at age %d", y.Age)
			}
		}
	}
}

func TestProject_Idempotent(t *testing.T) {
	plan := samplePlan()
	overlay := domain.ScenarioInputs{
		AdditionalMonthlySavings:   decimal.NewFromInt(250),
		InvestmentReturnAdjustment: dec("-0.5"),
		LumpSumEvents: []domain.LumpSumEvent{
			{ID: "car", Age: 45, Amount: decimal.NewFromInt(30000), Type: domain.EventWithdrawal},
			{ID: "bonus", Age: 50, Amount: decimal.NewFromInt(20000), Type: domain.EventDeposit},
		},
	}
	assets := sampleAssets()

	first := Project(plan, overlay, assets)
	second := Project(plan, overlay, assets)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("projection changed between calls (-first +second):\n%s", diff)
	}
}

func TestProject_DoesNotMutateInputs(t *testing.T) {
	plan := samplePlan()
	overlay := domain.ScenarioInputs{
		LumpSumEvents: []domain.LumpSumEvent{
			{ID: "x", Age: 40, Amount: decimal.NewFromInt(1000), Type: domain.EventDeposit},
		},
	}
	assets := sampleAssets()
	overlayBefore := overlay.DeepCopy()
	assetsBefore := domain.CopyAssets(assets)

	Project(plan, overlay, assets)

	if diff := cmp.Diff(overlayBefore, overlay); diff != "" {
		t.Errorf("overlay mutated:\n%s", diff)
	}
	if diff := cmp.Diff(assetsBefore, assets); diff != "" {
		t.Errorf("assets mutated:\n%s", diff)
	}
}

func TestProject_LumpSumDepositAdditivity(t *testing.T) {
	plan := samplePlan()
	amount := decimal.NewFromInt(50000)
	withDeposit := domain.ScenarioInputs{LumpSumEvents: []domain.LumpSumEvent{
		{ID: "inheritance", Age: 40, Amount: amount, Type: domain.EventDeposit},
	}}

	base := Project(plan, domain.ScenarioInputs{}, sampleAssets())
	boosted := Project(plan, withDeposit, sampleAssets())
	require.Equal(t, len(base), len(boosted))

	assert.Equal(t, "53000.00", yearAt(t, boosted, 40).TotalAssets.Sub(yearAt(t, base, 40).TotalAssets).StringFixed(2),
		"deposit is applied before that year's growth")

	for i := range base {
		diff := boosted[i].TotalAssets.Sub(base[i].TotalAssets)
		if base[i].Age < 40 {
			assert.True(t, diff.IsZero(), "no effect before age 40 (age %d)", base[i].Age)
			continue
		}
		assert.True(t, diff.GreaterThanOrEqual(amount), "age %d gains only %s", base[i].Age, diff)
	}
}

func TestProject_SameAgeEventsAreOrderIndependent(t *testing.T) {
	plan := samplePlan()
	a := domain.LumpSumEvent{ID: "a", Age: 62, Amount: decimal.NewFromInt(40000), Type: domain.EventWithdrawal}
	b := domain.LumpSumEvent{ID: "b", Age: 62, Amount: decimal.NewFromInt(15000), Type: domain.EventDeposit}
	c := domain.LumpSumEvent{ID: "c", Age: 62, Amount: decimal.NewFromInt(5000), Type: domain.EventSellAsset}

	forward := Project(plan, domain.ScenarioInputs{LumpSumEvents: []domain.LumpSumEvent{a, b, c}}, sampleAssets())
	reverse := Project(plan, domain.ScenarioInputs{LumpSumEvents: []domain.LumpSumEvent{c, b, a}}, sampleAssets())

	if diff := cmp.Diff(forward, reverse); diff != "" {
		t.Errorf("event order changed the projection:\n%s", diff)
	}
}

func TestProject_SellAssetMatchesWithdrawal(t *testing.T) {
	plan := samplePlan()
	sell := domain.ScenarioInputs{LumpSumEvents: []domain.LumpSumEvent{
		{ID: "s", Age: 55, Amount: decimal.NewFromInt(80000), Type: domain.EventSellAsset},
	}}
	withdraw := domain.ScenarioInputs{LumpSumEvents: []domain.LumpSumEvent{
		{ID: "s", Age: 55, Amount: decimal.NewFromInt(80000), Type: domain.EventWithdrawal},
	}}

	if diff := cmp.Diff(Project(plan, withdraw, sampleAssets()), Project(plan, sell, sampleAssets())); diff != "" {
		t.Errorf("sell_asset differs from withdrawal:\n%s", diff)
	}
}

func TestProject_OverlayAdjustsBothReturns(t *testing.T) {
	plan := samplePlan()
	plan.CurrentAge = 59
	assets := []domain.Asset{{CurrentValue: decimal.NewFromInt(100000), HistoricalReturn: decimal.NewFromInt(6)}}
	overlay := domain.ScenarioInputs{InvestmentReturnAdjustment: decimal.NewFromInt(-1)}

	projections := Project(plan, overlay, assets)

	// 59: 100000 * 1.05; 60: (105000 - 60000) * 1.04
	assert.Equal(t, "105000.00", yearAt(t, projections, 59).TotalAssets.StringFixed(2))
	assert.Equal(t, "46800.00", yearAt(t, projections, 60).TotalAssets.StringFixed(2))
}

func TestProject_ExtraSavingsAreAnnualized(t *testing.T) {
	plan := samplePlan()
	plan.CurrentAge = 59
	assets := []domain.Asset{{MonthlyContribution: decimal.NewFromInt(100)}}
	overlay := domain.ScenarioInputs{AdditionalMonthlySavings: decimal.NewFromInt(400)}

	projections := Project(plan, overlay, assets)

	// 0% return: twelve months of 100 + 400, no growth.
	assert.Equal(t, "6000.00", yearAt(t, projections, 59).TotalAssets.StringFixed(2))
}

func TestProject_EdgeCases(t *testing.T) {
	t.Run("zero assets stay zero through accumulation", func(t *testing.T) {
		projections := Project(samplePlan(), domain.ScenarioInputs{}, zeroAssets())
		for _, y := range projections {
			assert.True(t, y.TotalAssets.IsZero(), "age %d", y.Age)
			if y.Age < 60 {
				assert.Equal(t, domain.StatusOK, y.Status)
			} else {
				assert.Equal(t, domain.StatusCritical, y.Status)
			}
		}
	})

	t.Run("retirement at current age skips accumulation", func(t *testing.T) {
		plan := samplePlan()
		plan.CurrentAge = 60

		projections := Project(plan, domain.ScenarioInputs{}, sampleAssets())

		require.NotEmpty(t, projections)
		assert.Equal(t, 60, projections[0].Age)
		assert.True(t, projections[0].AnnualIncome.Equal(decimal.NewFromInt(60000)))
		assert.Equal(t, "131933.03", projections[0].TotalAssets.StringFixed(2))
		assert.Equal(t, 86, projections[len(projections)-1].Age)
	})

	t.Run("horizon extends twenty years past a late retirement", func(t *testing.T) {
		plan := domain.PlanInputs{CurrentAge: 50, TargetRetirementAge: 70, LifeExpectancy: 75,
			DesiredAnnualIncome: decimal.NewFromInt(1)}
		assets := []domain.Asset{{CurrentValue: decimal.NewFromInt(1000000)}}

		projections := Project(plan, domain.ScenarioInputs{}, assets)

		assert.Equal(t, 90, projections[len(projections)-1].Age)
	})

	t.Run("current age past horizon yields empty projection", func(t *testing.T) {
		plan := domain.PlanInputs{CurrentAge: 100, TargetRetirementAge: 60, LifeExpectancy: 80}
		projections := Project(plan, domain.ScenarioInputs{}, sampleAssets())
		assert.NotNil(t, projections)
		assert.Empty(t, projections)
	})

	t.Run("multiple lump sums at one age all apply first", func(t *testing.T) {
		plan := samplePlan()
		plan.CurrentAge = 59
		assets := []domain.Asset{{CurrentValue: decimal.NewFromInt(1000)}}
		overlay := domain.ScenarioInputs{LumpSumEvents: []domain.LumpSumEvent{
			{ID: "1", Age: 59, Amount: decimal.NewFromInt(500), Type: domain.EventDeposit},
			{ID: "2", Age: 59, Amount: decimal.NewFromInt(200), Type: domain.EventWithdrawal},
			{ID: "3", Age: 59, Amount: decimal.NewFromInt(300), Type: domain.EventDeposit},
		}}

		projections := Project(plan, overlay, assets)
		assert.Equal(t, "1600.00", yearAt(t, projections, 59).TotalAssets.StringFixed(2))
	})
}
