package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/readiness/internal/scenario"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err)))
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneScenarios:
		content = m.scenariosModel.View()
	case SceneParameters:
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			m.parametersModel.View(), "   ", m.renderLiveScore())
	case SceneCompare:
		content = m.compareModel.View()
	case SceneOptimize:
		content = m.optimizeModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(m.height-5, 0)
	body := lipgloss.NewStyle().Height(contentHeight).Render(content)

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		body,
		m.renderStatusLine(),
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Retirement Readiness Workbench")

	working := m.wb.Working()
	state := MetricPositiveStyle.Render("saved")
	if m.wb.State() == scenario.StateEditing {
		state = lipgloss.NewStyle().Foreground(ColorAccent).Render("unsaved edits")
	}
	crumb := SubtitleStyle.Render(fmt.Sprintf("%s / %s / %s ",
		m.wb.Client().Name, working.Name, m.currentScene)) + state

	return lipgloss.JoinVertical(lipgloss.Left, title, crumb, "")
}

// renderLiveScore shows the projection next to the parameter sliders
func (m Model) renderLiveScore() string {
	if m.result == nil {
		return ""
	}
	return BorderStyle.Render(fmt.Sprintf("%s\n%s\n%s",
		MetricLabelStyle.Render("Live readiness"),
		lipgloss.NewStyle().Bold(true).Foreground(ScoreColor(m.result.ReadinessScore)).
			Render(fmt.Sprintf("%d / 100", m.result.ReadinessScore)),
		MetricLabelStyle.Render(fmt.Sprintf("funds last to %d", m.result.FundsEndAge))))
}

// renderStatusLine shows the spinner while projecting, else the last status
func (m Model) renderStatusLine() string {
	if m.loading {
		return m.spinner.View() + " " + SubtitleStyle.Render("Projecting...")
	}
	return InfoStyle.Render(m.status)
}

// renderStatusBar renders the bottom bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("s", "scenarios"),
		formatShortcut("p", "parameters"),
		formatShortcut("c", "compare"),
		formatShortcut("o", "optimize"),
		formatShortcut("r", "results"),
		formatShortcut("ctrl+s", "save"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	rows := [][2]string{
		{"h", "Home dashboard"},
		{"s", "Saved scenarios: load, add, duplicate, delete"},
		{"p", "Edit plan, what-if overlay and asset contributions"},
		{"c", "Compare the working scenario against templates"},
		{"o", "Break-even solver"},
		{"r", "Year-by-year projection"},
		{"ctrl+s", "Save the working scenario"},
		{"esc", "Back"},
		{"q, ctrl+c", "Quit"},
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(HelpKeyStyle.Render(fmt.Sprintf("%-10s", r[0])))
		b.WriteString(HelpDescStyle.Render(r[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Edits change the working scenario only. Loading another scenario discards unsaved edits."))
	return BorderStyle.Render(b.String())
}
