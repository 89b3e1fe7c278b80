package scenario

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rgehrsitz/readiness/internal/calculation"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func testClient() domain.ClientProfile {
	return domain.ClientProfile{
		ID:   "client-1",
		Name: "Aisyah Rahman",
		Assets: []domain.Asset{
			{ID: "epf", Name: "EPF Account 1", Kind: domain.AssetEPF, CurrentValue: decimal.NewFromInt(120000),
				MonthlyContribution: decimal.NewFromInt(400), HistoricalReturn: decimal.NewFromInt(6)},
			{ID: "prs", Name: "PRS Growth Fund", Kind: domain.AssetPRS, CurrentValue: decimal.RequireFromString("25650.50"),
				MonthlyContribution: decimal.NewFromInt(150), HistoricalReturn: decimal.NewFromInt(5), CanEdit: true},
			{ID: "unit-trust", Name: "Unit Trust Portfolio", Kind: domain.AssetInvestment, CurrentValue: decimal.NewFromInt(40000),
				MonthlyContribution: decimal.NewFromInt(100), HistoricalReturn: decimal.NewFromInt(7), CanEdit: true},
		},
	}
}

func testPlan() domain.PlanInputs {
	return domain.PlanInputs{
		CurrentAge:           32,
		TargetRetirementAge:  60,
		LifeExpectancy:       85,
		DesiredAnnualIncome:  decimal.NewFromInt(90000),
		InflationRate:        decimal.NewFromInt(3),
		PostRetirementReturn: decimal.NewFromInt(5),
	}
}

func newTestWorkbench(t *testing.T) *Workbench {
	t.Helper()
	n := 0
	w, err := New(context.Background(), calculation.NewEngine(), testClient(), testPlan(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("s%d", n) }),
	)
	require.NoError(t, err)
	return w
}

type failingEvaluator struct{}

func (failingEvaluator) Evaluate(context.Context, *domain.Scenario, []domain.Asset) (*domain.ProjectionResult, error) {
	return nil, errors.New("engine unavailable")
}

func TestNew_CreatesSavedBaseScenario(t *testing.T) {
	w := newTestWorkbench(t)

	scenarios := w.Scenarios()
	require.Len(t, scenarios, 1)
	assert.Equal(t, "s1", scenarios[0].ID)
	assert.Equal(t, domain.BaseScenarioName, scenarios[0].Name)
	assert.Equal(t, 76, scenarios[0].ReadinessScore)
	assert.Equal(t, 79, scenarios[0].FundsEndAge)
	assert.Equal(t, fixedNow, scenarios[0].SavedAt)
	assert.Equal(t, "s1", w.ActiveID())
	assert.Equal(t, StateSaved, w.State())
}

func TestNew_EvaluatorFailure(t *testing.T) {
	_, err := New(context.Background(), failingEvaluator{}, testClient(), testPlan())
	assert.Error(t, err)
}

func TestWorkbench_EditThenSave(t *testing.T) {
	w := newTestWorkbench(t)

	require.NoError(t, w.Apply(&transform.AddSavings{Monthly: decimal.NewFromInt(1000)}))
	w.SetNotes("Client can afford RM1,000 more per month")
	assert.Equal(t, StateEditing, w.State())

	before, err := w.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, 76, before.ReadinessScore, "saved score is not live")

	saved, err := w.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, saved.ReadinessScore)
	assert.Equal(t, "Client can afford RM1,000 more per month", saved.PlannerNotes)
	assert.True(t, saved.ScenarioInputs.AdditionalMonthlySavings.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, StateSaved, w.State())
}

func TestWorkbench_LoadDiscardsUnsavedEdits(t *testing.T) {
	w := newTestWorkbench(t)
	other, err := w.New(context.Background(), "Retire later")
	require.NoError(t, err)

	require.NoError(t, w.Apply(&transform.PostponeRetirement{Years: 5}))
	w.SetNotes("unsaved")

	require.NoError(t, w.Load("s1"))
	require.NoError(t, w.Load(other.ID))

	working := w.Working()
	assert.Equal(t, 60, working.Plan.TargetRetirementAge)
	assert.Empty(t, working.Notes)
	assert.Equal(t, StateSaved, w.State())
}

func TestWorkbench_LoadReplacesWholeTuple(t *testing.T) {
	w := newTestWorkbench(t)
	require.NoError(t, w.Apply(
		&transform.AddSavings{Monthly: decimal.NewFromInt(300)},
		&transform.SetIncome{Amount: decimal.NewFromInt(70000)},
		transform.NewAddLumpSum(45, decimal.NewFromInt(20000), domain.EventWithdrawal, "Renovation"),
	))
	w.SetNotes("Plan A")
	_, err := w.Save(context.Background())
	require.NoError(t, err)

	_, err = w.New(context.Background(), "Fresh")
	require.NoError(t, err)

	working := w.Working()
	assert.Equal(t, "Fresh", working.Name)
	assert.True(t, working.Plan.DesiredAnnualIncome.Equal(decimal.NewFromInt(90000)))
	assert.True(t, working.Overlay.AdditionalMonthlySavings.IsZero())
	assert.Empty(t, working.Overlay.LumpSumEvents)
	assert.Empty(t, working.Notes)

	require.NoError(t, w.Load("s1"))
	working = w.Working()
	assert.True(t, working.Plan.DesiredAnnualIncome.Equal(decimal.NewFromInt(70000)))
	assert.Len(t, working.Overlay.LumpSumEvents, 1)
	assert.Equal(t, "Plan A", working.Notes)
}

func TestWorkbench_LoadUnknown(t *testing.T) {
	w := newTestWorkbench(t)
	assert.ErrorIs(t, w.Load("nope"), ErrNotFound)
	assert.Equal(t, "s1", w.ActiveID())
}

func TestWorkbench_Clone(t *testing.T) {
	w := newTestWorkbench(t)
	require.NoError(t, w.Apply(&transform.AddSavings{Monthly: decimal.NewFromInt(500)}))
	_, err := w.Save(context.Background())
	require.NoError(t, err)

	// Unsaved edits are not part of the clone
	require.NoError(t, w.Apply(&transform.AddSavings{Monthly: decimal.NewFromInt(500)}))

	clone, err := w.Clone(context.Background(), "s1", "")
	require.NoError(t, err)
	assert.Equal(t, "s2", clone.ID)
	assert.Equal(t, "Copy of Base", clone.Name)
	assert.True(t, clone.ScenarioInputs.AdditionalMonthlySavings.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "s2", w.ActiveID())

	_, err = w.Clone(context.Background(), "missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkbench_NewDefaultsName(t *testing.T) {
	w := newTestWorkbench(t)
	s, err := w.New(context.Background(), "  ")
	require.NoError(t, err)
	assert.Equal(t, "Scenario 2", s.Name)
}

func TestWorkbench_CreateRollsBackOnFailure(t *testing.T) {
	w := newTestWorkbench(t)
	w.evaluator = failingEvaluator{}

	_, err := w.New(context.Background(), "Broken")
	require.Error(t, err)
	assert.Len(t, w.Scenarios(), 1)
	assert.Equal(t, "s1", w.ActiveID())
	assert.Equal(t, domain.BaseScenarioName, w.Working().Name)
}

func TestWorkbench_Delete(t *testing.T) {
	w := newTestWorkbench(t)

	assert.ErrorIs(t, w.Delete("s1"), ErrLastScenario)

	_, err := w.New(context.Background(), "Second")
	require.NoError(t, err)
	_, err = w.New(context.Background(), "Third")
	require.NoError(t, err)
	require.Equal(t, "s3", w.ActiveID())

	require.NoError(t, w.Delete("s2"))
	assert.Equal(t, "s3", w.ActiveID(), "deleting another scenario keeps the active one")

	require.NoError(t, w.Delete("s3"))
	assert.Equal(t, "s1", w.ActiveID(), "deleting the active scenario activates the first remaining")
	assert.Equal(t, domain.BaseScenarioName, w.Working().Name)

	assert.ErrorIs(t, w.Delete("s1"), ErrLastScenario)
	assert.ErrorIs(t, w.Delete("s9"), ErrNotFound)
}

func TestWorkbench_Rename(t *testing.T) {
	w := newTestWorkbench(t)

	assert.Error(t, w.Rename(""))
	require.NoError(t, w.Rename("Current path"))
	assert.Equal(t, StateEditing, w.State())

	saved, err := w.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Current path", saved.Name)
}

func TestWorkbench_SetPlanAndOverlay(t *testing.T) {
	w := newTestWorkbench(t)

	plan := testPlan()
	plan.DesiredAnnualIncome = decimal.NewFromInt(60000)
	w.SetPlan(plan)
	overlay := domain.ScenarioInputs{LumpSumEvents: []domain.LumpSumEvent{
		{ID: "gift", Age: 40, Amount: decimal.NewFromInt(50000), Type: domain.EventDeposit},
	}}
	w.SetOverlay(overlay)
	overlay.LumpSumEvents[0].Age = 99

	result, err := w.Project(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, result.ReadinessScore)
	assert.Equal(t, 40, w.Working().Overlay.LumpSumEvents[0].Age, "overlay is copied in")
}

func TestWorkbench_UpdateEvent(t *testing.T) {
	w := newTestWorkbench(t)
	add := transform.NewAddLumpSum(45, decimal.NewFromInt(20000), domain.EventWithdrawal, "Car")
	require.NoError(t, w.Apply(add))

	require.NoError(t, w.UpdateEvent(add.Event.ID, transform.SetEventAmount{Amount: decimal.NewFromInt(15000)}))
	assert.True(t, w.Working().Overlay.LumpSumEvents[0].Amount.Equal(decimal.NewFromInt(15000)))

	assert.ErrorIs(t, w.UpdateEvent("nope", transform.SetEventAge{Age: 50}), transform.ErrEventNotFound)
}

func TestWorkbench_ApplyErrorLeavesWorkingUnchanged(t *testing.T) {
	w := newTestWorkbench(t)
	err := w.Apply(&transform.AddSavings{Monthly: decimal.NewFromInt(100)}, &transform.SetSavings{Monthly: decimal.NewFromInt(-1)})
	require.Error(t, err)
	assert.True(t, w.Working().Overlay.AdditionalMonthlySavings.IsZero())
	assert.Equal(t, StateSaved, w.State())
}

func TestWorkbench_SetAssetContribution(t *testing.T) {
	w := newTestWorkbench(t)

	assert.ErrorIs(t, w.SetAssetContribution("epf", decimal.NewFromInt(500)), ErrAssetLocked)
	assert.ErrorIs(t, w.SetAssetContribution("missing", decimal.NewFromInt(500)), ErrNotFound)
	assert.Error(t, w.SetAssetContribution("prs", decimal.NewFromInt(-1)))

	require.NoError(t, w.SetAssetContribution("prs", decimal.NewFromInt(1150)))
	assert.True(t, w.Client().Assets[1].MonthlyContribution.Equal(decimal.NewFromInt(1150)))

	result, err := w.Project(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, result.ReadinessScore, "an extra 1000/month of contributions funds the plan")
}

func TestWorkbench_ReturnsCopies(t *testing.T) {
	w := newTestWorkbench(t)

	working := w.Working()
	working.Plan.TargetRetirementAge = 99
	assert.Equal(t, 60, w.Working().Plan.TargetRetirementAge)

	client := w.Client()
	client.Assets[0].CurrentValue = decimal.Zero
	assert.False(t, w.Client().Assets[0].CurrentValue.IsZero())

	scenarios := w.Scenarios()
	scenarios[0].Name = "mutated"
	assert.Equal(t, domain.BaseScenarioName, w.Scenarios()[0].Name)
}

func TestRestore(t *testing.T) {
	saved := []domain.SavedScenario{
		{ID: "a", Name: "Base", PlanInputs: testPlan(), ReadinessScore: 76},
		{ID: "b", Name: "Save more", PlanInputs: testPlan(),
			ScenarioInputs: domain.ScenarioInputs{AdditionalMonthlySavings: decimal.NewFromInt(1000)}, ReadinessScore: 100},
	}

	w, err := Restore(calculation.NewEngine(), testClient(), testPlan(), saved, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", w.ActiveID())
	assert.Equal(t, "Save more", w.Working().Name)
	assert.Equal(t, StateSaved, w.State())

	w, err = Restore(calculation.NewEngine(), testClient(), testPlan(), saved, "zzz")
	require.NoError(t, err)
	assert.Equal(t, "a", w.ActiveID())

	_, err = Restore(calculation.NewEngine(), testClient(), testPlan(), nil, "")
	assert.Error(t, err)
}
