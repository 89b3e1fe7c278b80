// Package tui is the interactive scenario workbench: a bubbletea program
// that edits a client's working scenario and re-projects it live.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/readiness/internal/breakeven"
	"github.com/rgehrsitz/readiness/internal/calculation"
	"github.com/rgehrsitz/readiness/internal/compare"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/scenario"
	"github.com/rgehrsitz/readiness/internal/tui/scenes"
)

// Persister stores the workbench. *store.Store implements it.
type Persister interface {
	SaveWorkbench(ctx context.Context, wb *scenario.Workbench) error
}

// Option configures a Model
type Option func(*Model)

// WithPersister writes the workbench to p on every save
func WithPersister(p Persister) Option {
	return func(m *Model) { m.persister = p }
}

// Model represents the entire application state. The workbench is only
// touched from Update; commands work on copies.
type Model struct {
	ctx       context.Context
	wb        *scenario.Workbench
	engine    *calculation.Engine
	comparer  *compare.CompareEngine
	solver    *breakeven.Solver
	persister Persister

	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Live projection of the working scenario
	result     *domain.ProjectionResult
	projectSeq int

	status  string
	err     error
	loading bool
	spinner spinner.Model

	homeModel       *scenes.HomeModel
	scenariosModel  *scenes.ScenariosModel
	parametersModel *scenes.ParametersModel
	compareModel    *scenes.CompareModel
	optimizeModel   *scenes.OptimizeModel
	resultsModel    *scenes.ResultsModel
}

// NewModel creates the application model around a workbench
func NewModel(ctx context.Context, engine *calculation.Engine, wb *scenario.Workbench, opts ...Option) Model {
	comparer := compare.NewCompareEngine(engine)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SubtitleStyle

	m := Model{
		ctx:             ctx,
		wb:              wb,
		engine:          engine,
		comparer:        comparer,
		solver:          breakeven.NewDefaultSolver(engine),
		currentScene:    SceneHome,
		width:           100,
		height:          30,
		spinner:         sp,
		homeModel:       scenes.NewHomeModel(),
		scenariosModel:  scenes.NewScenariosModel(),
		parametersModel: scenes.NewParametersModel(),
		compareModel:    scenes.NewCompareModel(comparer.TemplateRegistry),
		optimizeModel:   scenes.NewOptimizeModel(),
		resultsModel:    scenes.NewResultsModel(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.syncScenes()
	m.projectSeq = 1
	m.loading = true
	return m
}

// Init starts the first projection
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.evaluateCmd())
}

// Workbench returns the workbench the model edits
func (m Model) Workbench() *scenario.Workbench {
	return m.wb
}

// Result returns the latest projection of the working scenario
func (m Model) Result() *domain.ProjectionResult {
	return m.result
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// project starts evaluating the working scenario. Results of earlier
// requests still in flight are dropped.
func (m *Model) project() tea.Cmd {
	m.projectSeq++
	m.loading = true
	return m.evaluateCmd()
}

func (m Model) evaluateCmd() tea.Cmd {
	seq := m.projectSeq
	ctx, engine := m.ctx, m.engine
	working, assets := m.wb.Working(), m.wb.Client().Assets
	return func() tea.Msg {
		result, err := engine.Evaluate(ctx, working, assets)
		return ProjectionCompleteMsg{Seq: seq, Result: result, Err: err}
	}
}

func (m *Model) compareCmd(templates []string) tea.Cmd {
	ctx, comparer := m.ctx, m.comparer
	working, assets := m.wb.Working(), m.wb.Client().Assets
	return func() tea.Msg {
		set, err := comparer.Compare(ctx, working, assets, templates)
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

func (m *Model) optimizeCmd(target breakeven.OptimizationTarget, score int) tea.Cmd {
	ctx, solver := m.ctx, m.solver
	working, assets := m.wb.Working(), m.wb.Client().Assets
	constraints := breakeven.DefaultConstraints(score)
	return func() tea.Msg {
		if target == breakeven.OptimizeAll {
			multi, err := solver.OptimizeMultiDimensional(ctx, working, assets, constraints)
			return OptimizationCompleteMsg{Multi: multi, Err: err}
		}
		single, err := solver.Optimize(ctx, breakeven.OptimizationRequest{
			BaseScenario: working,
			Assets:       assets,
			Target:       target,
			Constraints:  constraints,
		})
		return OptimizationCompleteMsg{Single: single, Err: err}
	}
}

// syncScenes pushes the workbench state into the scene models
func (m *Model) syncScenes() {
	working := m.wb.Working()
	client := m.wb.Client()

	var saved *domain.SavedScenario
	if s, err := m.wb.Get(m.wb.ActiveID()); err == nil {
		saved = &s
	}
	m.homeModel.SetWorkbench(client, working, saved)
	m.scenariosModel.SetScenarios(m.wb.Scenarios(), m.wb.ActiveID(), m.wb.State() == scenario.StateEditing)
	m.parametersModel.SetScenario(working, client.Assets)
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneScenarios:
		return "Scenarios"
	case SceneParameters:
		return "Parameters"
	case SceneCompare:
		return "Compare"
	case SceneOptimize:
		return "Optimize"
	case SceneResults:
		return "Results"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
