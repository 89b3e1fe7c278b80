package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/readiness/internal/calculation"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/scenario"
	"github.com/rgehrsitz/readiness/internal/tui/tuimsg"
)

type fakePersister struct {
	saves int
	err   error
}

func (f *fakePersister) SaveWorkbench(ctx context.Context, wb *scenario.Workbench) error {
	f.saves++
	return f.err
}

func testClient() domain.ClientProfile {
	return domain.ClientProfile{
		ID:   "client-aisyah",
		Name: "Aisyah Rahman",
		Assets: []domain.Asset{
			{ID: "epf", Name: "EPF", Kind: domain.AssetEPF, CurrentValue: decimal.NewFromInt(120000),
				MonthlyContribution: decimal.NewFromInt(400), HistoricalReturn: decimal.NewFromInt(6)},
			{ID: "prs", Name: "PRS Growth", Kind: domain.AssetPRS, CurrentValue: decimal.RequireFromString("25650.50"),
				MonthlyContribution: decimal.NewFromInt(150), HistoricalReturn: decimal.NewFromInt(5), CanEdit: true},
			{ID: "ut", Name: "Unit trust", Kind: domain.AssetInvestment, CurrentValue: decimal.NewFromInt(40000),
				MonthlyContribution: decimal.NewFromInt(100), HistoricalReturn: decimal.NewFromInt(7), CanEdit: true},
		},
	}
}

func testPlan(income int64) domain.PlanInputs {
	return domain.PlanInputs{
		CurrentAge:           32,
		TargetRetirementAge:  60,
		LifeExpectancy:       85,
		DesiredAnnualIncome:  decimal.NewFromInt(income),
		InflationRate:        decimal.NewFromInt(3),
		PostRetirementReturn: decimal.NewFromInt(5),
	}
}

func newTestModel(t *testing.T, income int64, opts ...Option) Model {
	t.Helper()
	ctx := context.Background()
	engine := calculation.NewEngine()
	n := 0
	wb, err := scenario.New(ctx, engine, testClient(), testPlan(income),
		scenario.WithIDGenerator(func() string { n++; return fmt.Sprintf("s%d", n) }))
	require.NoError(t, err)

	m := NewModel(ctx, engine, wb, opts...)
	return drain(t, m, m.evaluateCmd())
}

// drain runs cmd and feeds every resulting message back into the model
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 200, "command chain does not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		updated, out := m.Update(msg)
		m = updated.(Model)
		queue = append(queue, out)
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys and settles every command they produce
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, cmd := m.Update(keyMsg(k))
		m = drain(t, updated.(Model), cmd)
	}
	return m
}

// typeText sends keys to a focused text input without running the cursor
// blink commands it returns
func typeText(m Model, keys ...string) Model {
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}

func TestInitialProjection(t *testing.T) {
	m := newTestModel(t, 60000)

	require.NotNil(t, m.Result())
	assert.Equal(t, 100, m.Result().ReadinessScore)
	assert.Equal(t, 90, m.Result().FundsEndAge)
	assert.False(t, m.loading)

	view := m.View()
	assert.Contains(t, view, "Aisyah Rahman")
	assert.Contains(t, view, "100 / 100")
	assert.Contains(t, view, "Unit trust")
}

func TestInitBatchesSpinnerAndProjection(t *testing.T) {
	ctx := context.Background()
	engine := calculation.NewEngine()
	wb, err := scenario.New(ctx, engine, testClient(), testPlan(60000))
	require.NoError(t, err)

	m := NewModel(ctx, engine, wb)
	assert.True(t, m.loading)
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Projecting")
}

func TestNavigation(t *testing.T) {
	m := newTestModel(t, 60000)

	tests := []struct {
		key  string
		want Scene
	}{
		{"s", SceneScenarios},
		{"p", SceneParameters},
		{"c", SceneCompare},
		{"o", SceneOptimize},
		{"r", SceneResults},
		{"?", SceneHelp},
		{"h", SceneHome},
	}
	for _, tt := range tests {
		m = press(t, m, tt.key)
		assert.Equal(t, tt.want, m.CurrentScene(), "after %q", tt.key)
		assert.Contains(t, m.View(), tt.want.String())
	}

	m = press(t, m, "r", "esc")
	assert.Equal(t, SceneHome, m.CurrentScene(), "esc returns to the previous scene")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, 60000)
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(k))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestParameterEditReprojects(t *testing.T) {
	p := &fakePersister{}
	m := newTestModel(t, 60000, WithPersister(p))
	m = press(t, m, "p", "down", "down")
	require.Equal(t, string(tuimsg.ParamDesiredIncome), m.parametersModel.Focused().Key)

	for i := 0; i < 30; i++ {
		m = press(t, m, "right")
	}

	wb := m.Workbench()
	assert.True(t, wb.Working().Plan.DesiredAnnualIncome.Equal(decimal.NewFromInt(90000)))
	assert.Equal(t, scenario.StateEditing, wb.State())
	assert.Equal(t, 76, m.Result().ReadinessScore)
	assert.Equal(t, 79, m.Result().FundsEndAge)
	assert.Contains(t, m.View(), "unsaved edits")

	m = press(t, m, "ctrl+s")
	assert.Equal(t, scenario.StateSaved, wb.State())
	assert.Equal(t, 76, wb.Scenarios()[0].ReadinessScore)
	assert.Equal(t, 1, p.saves)
	assert.Contains(t, m.status, "Saved")
}

func TestResetDiscardsEdits(t *testing.T) {
	m := newTestModel(t, 90000)
	m = press(t, m, "p", "down", "down", "down", "down", "down")
	require.Equal(t, string(tuimsg.ParamExtraSavings), m.parametersModel.Focused().Key)

	for i := 0; i < 10; i++ {
		m = press(t, m, "right")
	}
	assert.Equal(t, 100, m.Result().ReadinessScore, "RM1,000 extra a month funds the plan")

	m = press(t, m, "u")
	assert.True(t, m.Workbench().Working().Overlay.AdditionalMonthlySavings.IsZero())
	assert.Equal(t, 76, m.Result().ReadinessScore)
	assert.Equal(t, scenario.StateSaved, m.Workbench().State())
}

func TestAssetContributionSlider(t *testing.T) {
	m := newTestModel(t, 60000)
	m = press(t, m, "p")
	for i := 0; i < 7; i++ {
		m = press(t, m, "down")
	}
	require.Equal(t, "asset:prs", m.parametersModel.Focused().Key)

	m = press(t, m, "right")
	assert.True(t, m.Workbench().Client().Assets[1].MonthlyContribution.Equal(decimal.NewFromInt(200)))

	m = press(t, m, "left", "left", "left", "left", "left")
	assert.True(t, m.Workbench().Client().Assets[1].MonthlyContribution.IsZero(), "contribution stops at zero")
}

func TestScenarioLifecycle(t *testing.T) {
	p := &fakePersister{}
	m := newTestModel(t, 60000, WithPersister(p))
	m = press(t, m, "s", "y")

	wb := m.Workbench()
	require.Len(t, wb.Scenarios(), 2)
	assert.Equal(t, "Copy of Base", wb.Working().Name)
	assert.Equal(t, "s2", wb.ActiveID())

	m = press(t, m, "x")
	require.Len(t, wb.Scenarios(), 1)
	assert.Equal(t, "s1", wb.ActiveID())

	m = press(t, m, "x")
	assert.Len(t, wb.Scenarios(), 1)
	assert.Equal(t, "The last scenario cannot be deleted", m.status)
	assert.Nil(t, m.err)

	updated, _ := m.Update(keyMsg("a"))
	m = updated.(Model)
	require.True(t, m.capturing())
	m = typeText(m, "R", "e", "t", "i", "r", "e", " ", "l", "a", "t", "e", "r")
	assert.Equal(t, SceneScenarios, m.CurrentScene(), "letters go to the name input")
	m = press(t, m, "enter")

	require.Len(t, wb.Scenarios(), 2)
	assert.Equal(t, "Retire later", wb.Working().Name)
	assert.False(t, m.capturing())

	m = press(t, m, "up", "enter")
	assert.Equal(t, "s1", wb.ActiveID())
	assert.Contains(t, m.status, `Loaded "Base"`)
	assert.Equal(t, 3, p.saves, "clone, delete and create are written through")
}

func TestPersistFailureIsShown(t *testing.T) {
	p := &fakePersister{err: errors.New("disk full")}
	m := newTestModel(t, 60000, WithPersister(p))
	m = press(t, m, "ctrl+s")

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "disk full")

	m = press(t, m, "j")
	assert.Nil(t, m.err, "any key dismisses the error")
}

func TestCompareScene(t *testing.T) {
	m := newTestModel(t, 60000)
	m = press(t, m, "c", "enter")

	view := m.View()
	assert.Contains(t, view, "Base_conservative_returns")
	assert.Contains(t, view, "Base_lean_retirement")
}

func TestOptimizeScene(t *testing.T) {
	m := newTestModel(t, 90000)
	m = press(t, m, "o", "enter")

	view := m.View()
	assert.Contains(t, view, "BREAK-EVEN SOLVER RESULTS")
	assert.Contains(t, view, "Target reached")

	m = press(t, m, "down", "down", "enter")
	assert.Contains(t, m.View(), "BREAK-EVEN OPTIONS")
}

func TestOptimizeTargetScoreInput(t *testing.T) {
	m := newTestModel(t, 90000)
	m = press(t, m, "o")

	updated, _ := m.Update(keyMsg("t"))
	m = updated.(Model)
	require.True(t, m.capturing())
	m = typeText(m, "backspace", "backspace", "backspace", "8", "0")
	m = press(t, m, "enter")
	assert.Equal(t, 80, m.optimizeModel.TargetScore())
	assert.False(t, m.capturing())

	updated, _ = m.Update(keyMsg("t"))
	m = updated.(Model)
	m = typeText(m, "backspace", "backspace", "x")
	m = press(t, m, "enter")
	require.Error(t, m.err)
	assert.Equal(t, 80, m.optimizeModel.TargetScore())
}

func TestResultsScrolling(t *testing.T) {
	m := newTestModel(t, 60000)
	m = press(t, m, "r", "down", "down", "down")
	assert.Equal(t, 3, m.resultsModel.Offset())

	m = press(t, m, "G")
	assert.Equal(t, 59-12, m.resultsModel.Offset())

	m = press(t, m, "g")
	assert.Equal(t, 0, m.resultsModel.Offset())
	assert.Contains(t, m.View(), "rows 1-12 of 59")
}

func TestStaleProjectionIsDropped(t *testing.T) {
	m := newTestModel(t, 60000)
	m.projectSeq = 5

	updated, _ := m.Update(ProjectionCompleteMsg{Seq: 4, Result: &domain.ProjectionResult{ReadinessScore: 1}})
	m = updated.(Model)
	assert.Equal(t, 100, m.Result().ReadinessScore)
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t, 60000)
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	m = updated.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, 140, m.width)
	assert.Equal(t, 50, m.height)
}
