package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/readiness/internal/breakeven"
	"github.com/rgehrsitz/readiness/internal/cache"
	"github.com/rgehrsitz/readiness/internal/calculation"
	"github.com/rgehrsitz/readiness/internal/compare"
	"github.com/rgehrsitz/readiness/internal/config"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/output"
	"github.com/rgehrsitz/readiness/internal/store"
)

const examplePlan = "../testdata/example_plan.yaml"

func loadExample(t *testing.T) *domain.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(examplePlan)
	require.NoError(t, err)
	return cfg
}

// TestIntegrationSuite runs all integration tests
func TestIntegrationSuite(t *testing.T) {
	t.Run("Basic_Integration", TestBasicIntegration)
	t.Run("Error_Handling", TestErrorHandling)
	t.Run("Data_Consistency", TestDataConsistency)
}

// TestIntegrationSmokeTest runs a quick smoke test of core functionality
func TestIntegrationSmokeTest(t *testing.T) {
	cfg := loadExample(t)

	results, err := calculation.NewEngine().RunConfiguration(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, 4)

	base := results[0]
	assert.Equal(t, 100, base.ReadinessScore)
	assert.Equal(t, 90, base.FundsEndAge)
	assert.Len(t, base.Projections, 59)

	comfortable := results[1]
	assert.Equal(t, 76, comfortable.ReadinessScore)
	assert.Equal(t, 79, comfortable.FundsEndAge)

	assert.Equal(t, 100, results[2].ReadinessScore, "extra RM1,000 a month funds the comfortable plan")
}

// TestWorkbenchRoundTrip saves a workbench, edits it and restores it from
// the database
func TestWorkbenchRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := loadExample(t)
	engine := calculation.NewEngineWithCache(cache.NewMemoryCache(64))

	st, err := store.Open(filepath.Join(t.TempDir(), "readiness.db"))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.SaveClient(ctx, cfg.Client, cfg.Plan))
	wb, err := st.LoadWorkbench(ctx, engine, cfg.Client.ID)
	require.NoError(t, err)
	require.Len(t, wb.Scenarios(), 1)

	comfortable, err := wb.New(ctx, "Comfortable")
	require.NoError(t, err)
	plan := wb.Working().Plan
	plan.DesiredAnnualIncome = decimal.NewFromInt(90000)
	wb.SetPlan(plan)
	require.NoError(t, wb.SetAssetContribution("prs", decimal.NewFromInt(300)))
	saved, err := wb.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, comfortable.ID, saved.ID)
	require.NoError(t, st.SaveWorkbench(ctx, wb))

	restored, err := st.LoadWorkbench(ctx, engine, cfg.Client.ID)
	require.NoError(t, err)
	assert.Equal(t, comfortable.ID, restored.ActiveID())
	assert.Len(t, restored.Scenarios(), 2)
	assert.True(t, restored.Working().Plan.DesiredAnnualIncome.Equal(decimal.NewFromInt(90000)))

	var prs domain.Asset
	for _, a := range restored.Client().Assets {
		if a.ID == "prs" {
			prs = a
		}
	}
	assert.True(t, prs.MonthlyContribution.Equal(decimal.NewFromInt(300)))

	result, err := restored.Project(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ReadinessScore, result.ReadinessScore)
}

// TestCompareAndSolve runs templates and the break-even solver against the
// comfortable scenario
func TestCompareAndSolve(t *testing.T) {
	ctx := context.Background()
	cfg := loadExample(t)
	engine := calculation.NewEngine()

	s, err := cfg.BuildScenario("Comfortable")
	require.NoError(t, err)

	set, err := compare.NewCompareEngine(engine).Compare(ctx, s, cfg.Client.Assets,
		[]string{"save_more_1000", "conservative_returns"})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 2)
	assert.Equal(t, 76, set.BaseResult.ReadinessScore)
	assert.Equal(t, 100, set.AlternativeResults[0].ReadinessScore)
	assert.Positive(t, set.AlternativeResults[0].ScoreDiffFromBase)
	assert.Less(t, set.AlternativeResults[1].ScoreDiffFromBase, 1)

	solved, err := breakeven.NewDefaultSolver(engine).Optimize(ctx, breakeven.OptimizationRequest{
		BaseScenario: s,
		Assets:       cfg.Client.Assets,
		Target:       breakeven.OptimizeSavings,
		Constraints:  breakeven.DefaultConstraints(100),
	})
	require.NoError(t, err)
	assert.True(t, solved.Success)
	assert.GreaterOrEqual(t, solved.ReadinessScore, 100)
	require.NotNil(t, solved.OptimalMonthlySavings)
	assert.True(t, solved.OptimalMonthlySavings.LessThanOrEqual(decimal.NewFromInt(1000)),
		"the solver never needs more than the RM1,000 that already works")
}

// TestIntegrationDataValidation checks the example plan against the
// validators and that every report format renders it
func TestIntegrationDataValidation(t *testing.T) {
	cfg := loadExample(t)
	require.NoError(t, config.NewInputParser().ValidateConfiguration(cfg))

	for _, sc := range cfg.Scenarios {
		assert.NotEmpty(t, sc.Name)
	}
	for _, a := range cfg.Client.Assets {
		assert.True(t, a.CurrentValue.GreaterThanOrEqual(decimal.Zero), "asset %s", a.ID)
	}

	s, err := cfg.BuildScenario("")
	require.NoError(t, err)
	result, err := calculation.NewEngine().Evaluate(context.Background(), s, cfg.Client.Assets)
	require.NoError(t, err)
	report := output.NewReport(cfg.Client, s, result, time.Now())

	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			data, err := output.GetFormatterByName(name).Format(report)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}
