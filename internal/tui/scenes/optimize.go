package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/readiness/internal/breakeven"
	"github.com/rgehrsitz/readiness/internal/tui/tuimsg"
	"github.com/rgehrsitz/readiness/internal/tui/tuistyles"
)

var keyEditScore = key.NewBinding(key.WithKeys("t"))

var optimizeTargets = []struct {
	target breakeven.OptimizationTarget
	label  string
}{
	{breakeven.OptimizeSavings, "Extra monthly savings"},
	{breakeven.OptimizeRetirementAge, "Retirement age"},
	{breakeven.OptimizeAll, "Both"},
}

// OptimizeModel runs the break-even solver on the working scenario
type OptimizeModel struct {
	cursor      int
	targetScore int
	scoreInput  textinput.Model
	editing     bool
	running     bool
	output      string
	width       int
	height      int
}

// NewOptimizeModel creates the solver scene aiming for a full score
func NewOptimizeModel() *OptimizeModel {
	ti := textinput.New()
	ti.Placeholder = "100"
	ti.CharLimit = 3
	ti.Width = 5
	return &OptimizeModel{targetScore: 100, scoreInput: ti}
}

// SetSize updates the scene dimensions
func (m *OptimizeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Capturing reports whether the scene is reading text input
func (m *OptimizeModel) Capturing() bool {
	return m.editing
}

// TargetScore returns the score the solver aims for
func (m *OptimizeModel) TargetScore() int {
	return m.targetScore
}

// SetSingle shows the result of solving one target
func (m *OptimizeModel) SetSingle(r *breakeven.OptimizationResult) {
	m.running = false
	f := &breakeven.TableFormatter{}
	m.output = f.Format(r)
}

// SetMulti shows the result of solving every target
func (m *OptimizeModel) SetMulti(r *breakeven.MultiDimensionalResult) {
	m.running = false
	f := &breakeven.TableFormatter{}
	m.output = f.FormatMultiDimensional(r)
}

// Stop clears the running flag after a failed solve
func (m *OptimizeModel) Stop() {
	m.running = false
}

// Update handles messages for the optimize scene
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if m.editing {
		return m.updateScore(msg)
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keyDown):
		if m.cursor < len(optimizeTargets)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keyEditScore):
		m.editing = true
		m.scoreInput.SetValue(strconv.Itoa(m.targetScore))
		return m, m.scoreInput.Focus()
	case key.Matches(keyMsg, keyEnter):
		if m.running {
			return m, nil
		}
		m.running = true
		return m, send(tuimsg.OptimizeRequestedMsg{
			Target:      optimizeTargets[m.cursor].target,
			TargetScore: m.targetScore,
		})
	}
	return m, nil
}

func (m *OptimizeModel) updateScore(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keyEnter):
			score, err := strconv.Atoi(strings.TrimSpace(m.scoreInput.Value()))
			if err != nil || score < 1 || score > 100 {
				return m, send(tuimsg.ErrorMsg{Err: fmt.Errorf("target score must be a whole number from 1 to 100, got %q", m.scoreInput.Value())})
			}
			m.targetScore = score
			m.editing = false
			m.scoreInput.Blur()
			return m, nil
		case key.Matches(keyMsg, keyCancel):
			m.editing = false
			m.scoreInput.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.scoreInput, cmd = m.scoreInput.Update(msg)
	return m, cmd
}

// View renders the target picker and the latest solver output
func (m *OptimizeModel) View() string {
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Break-even solver"))
	b.WriteString("\n\n")

	b.WriteString(tuistyles.ParameterLabelStyle.Render("Target score: "))
	if m.editing {
		b.WriteString(m.scoreInput.View())
	} else {
		b.WriteString(tuistyles.ParameterValueStyle.Render(strconv.Itoa(m.targetScore)))
	}
	b.WriteString("\n\n")

	b.WriteString(tuistyles.ParameterLabelStyle.Render("Solve for:"))
	b.WriteString("\n")
	for i, t := range optimizeTargets {
		style, prefix := tuistyles.UnselectedItemStyle, "  "
		if i == m.cursor {
			style, prefix = tuistyles.SelectedItemStyle, "▸ "
		}
		b.WriteString(style.Render(prefix + t.label))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.running:
		b.WriteString(tuistyles.InfoStyle.Render("Solving..."))
		b.WriteString("\n")
	case m.output != "":
		b.WriteString(tuistyles.BorderStyle.Render(strings.TrimRight(m.output, "\n")))
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString(helpLine("enter confirm", "esc cancel"))
	} else {
		b.WriteString(helpLine("↑/↓ target", "t target score", "enter solve"))
	}
	return b.String()
}
