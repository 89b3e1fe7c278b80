package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/tui/components"
	"github.com/rgehrsitz/readiness/internal/tui/tuimsg"
	"github.com/rgehrsitz/readiness/internal/tui/tuistyles"
)

var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"))
	keyEnter  = key.NewBinding(key.WithKeys("enter"))
	keyNew    = key.NewBinding(key.WithKeys("a"))
	keyClone  = key.NewBinding(key.WithKeys("y"))
	keyDelete = key.NewBinding(key.WithKeys("x"))
	keyCancel = key.NewBinding(key.WithKeys("esc"))
)

// ScenariosModel lists the saved scenarios of the workbench
type ScenariosModel struct {
	scenarios     []domain.SavedScenario
	activeID      string
	edited        bool
	selectedIndex int
	naming        bool
	nameInput     textinput.Model
	width         int
	height        int
}

// NewScenariosModel creates the scenario list
func NewScenariosModel() *ScenariosModel {
	ti := textinput.New()
	ti.Placeholder = "Scenario name"
	ti.CharLimit = 60
	ti.Width = 30
	return &ScenariosModel{nameInput: ti}
}

// SetScenarios replaces the list. The cursor follows the active scenario.
func (m *ScenariosModel) SetScenarios(scenarios []domain.SavedScenario, activeID string, edited bool) {
	m.scenarios = scenarios
	m.activeID = activeID
	m.edited = edited
	for i, s := range scenarios {
		if s.ID == activeID {
			m.selectedIndex = i
		}
	}
	if m.selectedIndex >= len(scenarios) {
		m.selectedIndex = max(len(scenarios)-1, 0)
	}
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Capturing reports whether the scene is reading text input
func (m *ScenariosModel) Capturing() bool {
	return m.naming
}

// Selected returns the scenario under the cursor
func (m *ScenariosModel) Selected() (domain.SavedScenario, bool) {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.scenarios) {
		return domain.SavedScenario{}, false
	}
	return m.scenarios[m.selectedIndex], true
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if m.naming {
		return m.updateNaming(msg)
	}
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, keyDown):
		if m.selectedIndex < len(m.scenarios)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, keyEnter):
		if s, ok := m.Selected(); ok {
			return m, send(tuimsg.ScenarioSelectedMsg{ID: s.ID})
		}
	case key.Matches(keyMsg, keyNew):
		m.naming = true
		m.nameInput.SetValue("")
		return m, m.nameInput.Focus()
	case key.Matches(keyMsg, keyClone):
		if s, ok := m.Selected(); ok {
			return m, send(tuimsg.ScenarioCloneMsg{ID: s.ID})
		}
	case key.Matches(keyMsg, keyDelete):
		if s, ok := m.Selected(); ok {
			return m, send(tuimsg.ScenarioDeleteMsg{ID: s.ID})
		}
	}
	return m, nil
}

func (m *ScenariosModel) updateNaming(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keyEnter):
			m.naming = false
			m.nameInput.Blur()
			return m, send(tuimsg.ScenarioCreateMsg{Name: strings.TrimSpace(m.nameInput.Value())})
		case key.Matches(keyMsg, keyCancel):
			m.naming = false
			m.nameInput.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// View renders the list and the selected card
func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios saved.")
	}

	cards := make([]*components.ScenarioCard, len(m.scenarios))
	for i, s := range m.scenarios {
		cards[i] = components.NewScenarioCard(s)
		cards[i].Active = s.ID == m.activeID
		cards[i].Edited = cards[i].Active && m.edited
	}

	list := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(44).
		Render(tuistyles.TitleStyle.Render("Scenarios") + "\n\n" +
			components.ScenarioListCompact(cards, m.selectedIndex))

	detail := cards[m.selectedIndex].SetSelected(true).Render()
	content := lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail)

	if m.naming {
		content += "\n\n" + tuistyles.ParameterLabelStyle.Render("New scenario: ") + m.nameInput.View()
		return content + "\n" + helpLine("enter create", "esc cancel")
	}
	return content + "\n\n" + helpLine("↑/↓ move", "enter load", "a new", "y duplicate", "x delete", "ctrl+s save")
}

// send wraps a message as a command
func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func helpLine(items ...string) string {
	return tuistyles.HelpDescStyle.Render(strings.Join(items, " • "))
}
