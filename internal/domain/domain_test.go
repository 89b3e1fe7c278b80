package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePlan() PlanInputs {
	return PlanInputs{
		CurrentAge:           32,
		TargetRetirementAge:  60,
		LifeExpectancy:       85,
		DesiredAnnualIncome:  decimal.NewFromInt(60000),
		InflationRate:        decimal.NewFromInt(3),
		PostRetirementReturn: decimal.NewFromInt(5),
	}
}

func TestPlanInputs_HorizonEndAge(t *testing.T) {
	tests := []struct {
		name       string
		retire     int
		expectancy int
		want       int
	}{
		{"life expectancy dominates", 60, 85, 90},
		{"late retirement extends horizon", 70, 80, 90},
		{"retirement plus twenty", 75, 85, 95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := basePlan()
			p.TargetRetirementAge = tt.retire
			p.LifeExpectancy = tt.expectancy
			assert.Equal(t, tt.want, p.HorizonEndAge())
		})
	}
}

func TestPlanInputs_YearsToRetirement(t *testing.T) {
	p := basePlan()
	assert.Equal(t, 28, p.YearsToRetirement())

	p.TargetRetirementAge = 30
	assert.Equal(t, 0, p.YearsToRetirement(), "already past the target age")
}

func TestPlanInputs_Equal(t *testing.T) {
	a := basePlan()
	b := basePlan()
	b.InflationRate = decimal.RequireFromString("3.00")
	assert.True(t, a.Equal(b), "decimals compare by value")

	b.DesiredAnnualIncome = decimal.NewFromInt(60001)
	assert.False(t, a.Equal(b))
}

func TestAssetKind_Valid(t *testing.T) {
	for _, k := range []AssetKind{AssetEPF, AssetPRS, AssetInvestment, AssetOther} {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, AssetKind("crypto").Valid())
}

func TestClientProfile_DeepCopy(t *testing.T) {
	c := &ClientProfile{
		ID:   "c1",
		Name: "Aisyah",
		Assets: []Asset{
			{ID: "epf", Kind: AssetEPF, CurrentValue: decimal.NewFromInt(1000)},
			{ID: "prs", Kind: AssetPRS, CanEdit: true},
		},
	}
	cp := c.DeepCopy()
	cp.Assets[0].CurrentValue = decimal.Zero

	assert.True(t, c.Assets[0].CurrentValue.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 1, cp.FindAsset("prs"))
	assert.Equal(t, -1, cp.FindAsset("missing"))

	var nilProfile *ClientProfile
	assert.Nil(t, nilProfile.DeepCopy())
	assert.Nil(t, CopyAssets(nil))
}

func TestEventType(t *testing.T) {
	assert.True(t, EventDeposit.Valid())
	assert.True(t, EventSellAsset.Valid())
	assert.False(t, EventType("gift").Valid())

	assert.Equal(t, int64(1), EventDeposit.Sign())
	assert.Equal(t, int64(-1), EventWithdrawal.Sign())
	assert.Equal(t, int64(-1), EventSellAsset.Sign())

	e := LumpSumEvent{Amount: decimal.NewFromInt(50000), Type: EventSellAsset}
	assert.True(t, e.SignedAmount().Equal(decimal.NewFromInt(-50000)))
}

func TestScenarioInputs_CopyAndEqual(t *testing.T) {
	s := ScenarioInputs{
		AdditionalMonthlySavings: decimal.NewFromInt(500),
		LumpSumEvents: []LumpSumEvent{
			{ID: "e1", Age: 45, Amount: decimal.NewFromInt(50000), Type: EventWithdrawal},
			{ID: "e2", Age: 50, Amount: decimal.NewFromInt(20000), Type: EventDeposit},
		},
	}
	cp := s.DeepCopy()
	assert.True(t, s.Equal(cp))

	cp.LumpSumEvents[0].Amount = decimal.NewFromInt(1)
	assert.False(t, s.Equal(cp))
	assert.True(t, s.LumpSumEvents[0].Amount.Equal(decimal.NewFromInt(50000)), "copy shares no events")

	assert.Len(t, s.EventsAt(45), 1)
	assert.Empty(t, s.EventsAt(46))
	assert.Equal(t, 1, s.FindEvent("e2"))
	assert.Equal(t, -1, s.FindEvent("e3"))
}

func TestScenario_DeepCopy(t *testing.T) {
	s := &Scenario{
		Name:    "Base",
		Plan:    basePlan(),
		Overlay: ScenarioInputs{LumpSumEvents: []LumpSumEvent{{ID: "e1", Age: 45}}},
		Notes:   "notes",
	}
	cp := s.DeepCopy()
	cp.Overlay.LumpSumEvents[0].Age = 50
	cp.Plan.LifeExpectancy = 90

	assert.Equal(t, 45, s.Overlay.LumpSumEvents[0].Age)
	assert.Equal(t, 85, s.Plan.LifeExpectancy)

	var nilScenario *Scenario
	assert.Nil(t, nilScenario.DeepCopy())
}

func TestSavedScenario_Scenario(t *testing.T) {
	saved := SavedScenario{
		ID:             "s1",
		Name:           "Comfortable",
		PlanInputs:     basePlan(),
		ScenarioInputs: ScenarioInputs{AdditionalMonthlySavings: decimal.NewFromInt(1000)},
		PlannerNotes:   "travel",
	}
	s := saved.Scenario()
	assert.Equal(t, "Comfortable", s.Name)
	assert.Equal(t, "travel", s.Notes)
	assert.True(t, s.Plan.Equal(saved.PlanInputs))
	assert.True(t, s.Overlay.Equal(saved.ScenarioInputs))
}

func TestConfiguration_BuildScenario(t *testing.T) {
	income := decimal.NewFromInt(90000)
	age := 55
	cfg := &Configuration{
		Plan: basePlan(),
		Scenarios: []ScenarioConfig{
			{Name: "Base"},
			{Name: "Comfortable", DesiredAnnualIncome: &income},
			{Name: "Early", TargetRetirementAge: &age},
		},
	}

	assert.Equal(t, []string{"Base", "Comfortable", "Early"}, cfg.ScenarioNames())

	first, err := cfg.BuildScenario("")
	require.NoError(t, err)
	assert.Equal(t, "Base", first.Name)

	comfy, err := cfg.BuildScenario("comfortable")
	require.NoError(t, err)
	assert.True(t, comfy.Plan.DesiredAnnualIncome.Equal(income))
	assert.Equal(t, 60, comfy.Plan.TargetRetirementAge, "unset fields inherit the base plan")

	early, err := cfg.BuildScenario("Early")
	require.NoError(t, err)
	assert.Equal(t, 55, early.Plan.TargetRetirementAge)

	_, err = cfg.BuildScenario("Sabbatical")
	assert.Error(t, err)

	all, err := cfg.BuildScenarios()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestConfiguration_ImpliedBase(t *testing.T) {
	cfg := &Configuration{Plan: basePlan()}
	assert.Equal(t, []string{BaseScenarioName}, cfg.ScenarioNames())

	s, err := cfg.BuildScenario("base")
	require.NoError(t, err)
	assert.Equal(t, BaseScenarioName, s.Name)

	_, err = cfg.BuildScenario("Other")
	assert.Error(t, err)
}

func TestProjectionResult_Helpers(t *testing.T) {
	r := &ProjectionResult{
		Projections: []YearlyProjection{
			{Age: 59, TotalAssets: decimal.NewFromInt(900)},
			{Age: 60, TotalAssets: decimal.NewFromInt(1000), AnnualIncome: decimal.NewFromInt(100)},
			{Age: 61, TotalAssets: decimal.Zero, AnnualIncome: decimal.NewFromInt(100)},
		},
	}
	assert.True(t, r.PeakAssets().Equal(decimal.NewFromInt(1000)))
	assert.True(t, r.FinalAssets().IsZero())

	v, ok := r.AssetsAtAge(59)
	assert.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromInt(900)))
	_, ok = r.AssetsAtAge(99)
	assert.False(t, ok)

	assert.False(t, r.Projections[0].IsRetired())
	assert.True(t, r.Projections[1].IsRetired())
	assert.True(t, r.Projections[2].IsDepleted())

	assert.True(t, (&ProjectionResult{}).FinalAssets().IsZero())
	assert.Equal(t, "age: too high", Warning{Field: "age", Message: "too high"}.String())
}
