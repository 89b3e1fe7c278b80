package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/readiness/internal/scenario"
	"github.com/rgehrsitz/readiness/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeScenes()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ProjectionCompleteMsg:
		if msg.Seq != m.projectSeq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.result = msg.Result
		m.homeModel.SetResult(msg.Result)
		m.resultsModel.SetResult(msg.Result)
		return m, nil

	case ComparisonCompleteMsg:
		if msg.Err != nil {
			m.compareModel.Stop()
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetResult(msg.Set)
		return m, nil

	case OptimizationCompleteMsg:
		switch {
		case msg.Err != nil:
			m.optimizeModel.Stop()
			m.err = msg.Err
		case msg.Multi != nil:
			m.optimizeModel.SetMulti(msg.Multi)
		case msg.Single != nil:
			m.optimizeModel.SetSingle(msg.Single)
		}
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.ScenarioSelectedMsg:
		if err := m.wb.Load(msg.ID); err != nil {
			m.err = err
			return m, nil
		}
		m.status = fmt.Sprintf("Loaded %q", m.wb.Working().Name)
		return m, m.changed()

	case tuimsg.ScenarioCreateMsg:
		saved, err := m.wb.New(m.ctx, msg.Name)
		return m.afterCreate(saved.Name, err)

	case tuimsg.ScenarioCloneMsg:
		saved, err := m.wb.Clone(m.ctx, msg.ID, "")
		return m.afterCreate(saved.Name, err)

	case tuimsg.ScenarioDeleteMsg:
		if err := m.wb.Delete(msg.ID); err != nil {
			if errors.Is(err, scenario.ErrLastScenario) {
				m.status = "The last scenario cannot be deleted"
				return m, nil
			}
			m.err = err
			return m, nil
		}
		if err := m.persist(); err != nil {
			m.err = err
			return m, nil
		}
		m.status = "Scenario deleted"
		return m, m.changed()

	case tuimsg.ParameterChangedMsg:
		if err := m.applyParameter(msg); err != nil {
			m.err = err
			m.syncScenes()
			return m, nil
		}
		return m, m.changed()

	case tuimsg.ResetRequestedMsg:
		if err := m.wb.Load(m.wb.ActiveID()); err != nil {
			m.err = err
			return m, nil
		}
		m.status = "Unsaved edits discarded"
		return m, m.changed()

	case tuimsg.CompareRequestedMsg:
		return m, m.compareCmd(msg.Templates)

	case tuimsg.OptimizeRequestedMsg:
		return m, m.optimizeCmd(msg.Target, msg.TargetScore)
	}

	return m.updateCurrentScene(msg)
}

// changed refreshes the scenes and re-projects after a workbench edit
func (m *Model) changed() tea.Cmd {
	m.syncScenes()
	return m.project()
}

func (m Model) afterCreate(name string, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.err = err
		return m, nil
	}
	if err := m.persist(); err != nil {
		m.err = err
		return m, nil
	}
	m.status = fmt.Sprintf("Created %q", name)
	return m, m.changed()
}

// save snapshots the working scenario and writes the workbench through
func (m Model) save() (tea.Model, tea.Cmd) {
	saved, err := m.wb.Save(m.ctx)
	if err != nil {
		m.err = err
		return m, nil
	}
	if err := m.persist(); err != nil {
		m.err = err
		return m, nil
	}
	m.status = fmt.Sprintf("Saved %q (score %d)", saved.Name, saved.ReadinessScore)
	m.syncScenes()
	return m, nil
}

func (m *Model) persist() error {
	if m.persister == nil {
		return nil
	}
	if err := m.persister.SaveWorkbench(m.ctx, m.wb); err != nil {
		return fmt.Errorf("failed to store workbench: %w", err)
	}
	return nil
}

// capturing reports whether the current scene is reading text input, in
// which case single-letter shortcuts belong to the scene
func (m Model) capturing() bool {
	switch m.currentScene {
	case SceneScenarios:
		return m.scenariosModel.Capturing()
	case SceneOptimize:
		return m.optimizeModel.Capturing()
	}
	return false
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	if m.capturing() {
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "ctrl+s":
		return m.save()
	case "?":
		return m.navigate(SceneHelp)
	case "esc":
		if m.currentScene == SceneHome {
			return m, nil
		}
		if m.previousScene != m.currentScene {
			return m.navigate(m.previousScene)
		}
		return m.navigate(SceneHome)
	case "h":
		return m.navigate(SceneHome)
	case "s":
		return m.navigate(SceneScenarios)
	case "p":
		return m.navigate(SceneParameters)
	case "c":
		return m.navigate(SceneCompare)
	case "o":
		return m.navigate(SceneOptimize)
	case "r":
		return m.navigate(SceneResults)
	}

	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if scene == m.currentScene {
		return m, nil
	}
	return m, func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneOptimize:
		m.optimizeModel, cmd = m.optimizeModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) resizeScenes() {
	m.homeModel.SetSize(m.width, m.height)
	m.scenariosModel.SetSize(m.width, m.height)
	m.parametersModel.SetSize(m.width, m.height)
	m.compareModel.SetSize(m.width, m.height)
	m.optimizeModel.SetSize(m.width, m.height)
	m.resultsModel.SetSize(m.width, m.height)
}

// applyParameter writes one slider value into the working scenario
func (m *Model) applyParameter(msg tuimsg.ParameterChangedMsg) error {
	if msg.Parameter == tuimsg.ParamAssetContribution {
		return m.wb.SetAssetContribution(msg.AssetID, msg.Value)
	}

	working := m.wb.Working()
	plan, overlay := working.Plan, working.Overlay
	switch msg.Parameter {
	case tuimsg.ParamRetirementAge:
		plan.TargetRetirementAge = int(msg.Value.IntPart())
	case tuimsg.ParamLifeExpectancy:
		plan.LifeExpectancy = int(msg.Value.IntPart())
	case tuimsg.ParamDesiredIncome:
		plan.DesiredAnnualIncome = msg.Value
	case tuimsg.ParamInflation:
		plan.InflationRate = msg.Value
	case tuimsg.ParamPostRetirementReturn:
		plan.PostRetirementReturn = msg.Value
	case tuimsg.ParamExtraSavings:
		overlay.AdditionalMonthlySavings = msg.Value
	case tuimsg.ParamReturnAdjustment:
		overlay.InvestmentReturnAdjustment = msg.Value
	default:
		return fmt.Errorf("unknown parameter %q", msg.Parameter)
	}
	m.wb.SetPlan(plan)
	m.wb.SetOverlay(overlay)
	return nil
}
