package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/readiness/internal/compare"
	"github.com/rgehrsitz/readiness/internal/transform"
	"github.com/rgehrsitz/readiness/internal/tui/tuimsg"
	"github.com/rgehrsitz/readiness/internal/tui/tuistyles"
)

var keyToggle = key.NewBinding(key.WithKeys(" ", "x"))

// CompareModel picks what-if templates and shows how each one changes the
// working scenario.
type CompareModel struct {
	templates []transform.Template
	checked   map[string]bool
	cursor    int
	running   bool
	result    *compare.ComparisonSet
	width     int
	height    int
}

// NewCompareModel lists the built-in templates with the first two checked
func NewCompareModel(registry *transform.TemplateRegistry) *CompareModel {
	m := &CompareModel{checked: map[string]bool{}}
	for _, name := range registry.List() {
		t, _ := registry.Get(name)
		m.templates = append(m.templates, t)
	}
	for i := 0; i < len(m.templates) && i < 2; i++ {
		m.checked[m.templates[i].Name] = true
	}
	return m
}

// SetSize updates the scene dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetResult shows a finished comparison
func (m *CompareModel) SetResult(set *compare.ComparisonSet) {
	m.running = false
	m.result = set
}

// Stop clears the running flag after a failed comparison
func (m *CompareModel) Stop() {
	m.running = false
}

// Checked returns the selected template names in list order
func (m *CompareModel) Checked() []string {
	var names []string
	for _, t := range m.templates {
		if m.checked[t.Name] {
			names = append(names, t.Name)
		}
	}
	return names
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
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
		if m.cursor < len(m.templates)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keyToggle):
		if m.cursor < len(m.templates) {
			name := m.templates[m.cursor].Name
			m.checked[name] = !m.checked[name]
		}
	case key.Matches(keyMsg, keyEnter):
		names := m.Checked()
		if len(names) == 0 || m.running {
			return m, nil
		}
		m.running = true
		return m, send(tuimsg.CompareRequestedMsg{Templates: names})
	}
	return m, nil
}

// View renders the template picker beside the latest comparison
func (m *CompareModel) View() string {
	var picker strings.Builder
	picker.WriteString(tuistyles.TitleStyle.Render("What-if templates"))
	picker.WriteString("\n\n")
	for i, t := range m.templates {
		box := "[ ]"
		if m.checked[t.Name] {
			box = "[✓]"
		}
		style := tuistyles.UnselectedItemStyle
		prefix := "  "
		if i == m.cursor {
			style, prefix = tuistyles.SelectedItemStyle, "▸ "
		}
		picker.WriteString(style.Render(fmt.Sprintf("%s%s %s", prefix, box, t.Name)))
		picker.WriteString("\n")
	}
	if m.cursor < len(m.templates) {
		picker.WriteString("\n")
		picker.WriteString(tuistyles.SubtitleStyle.Render(m.templates[m.cursor].Description))
	}

	left := tuistyles.BorderStyle.Width(40).Render(picker.String())
	right := m.renderResult()
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right) + "\n\n" +
		helpLine("↑/↓ move", "space toggle", "enter compare")
}

func (m *CompareModel) renderResult() string {
	switch {
	case m.running:
		return tuistyles.InfoStyle.Render("Comparing...")
	case m.result == nil:
		return tuistyles.InfoStyle.Render("Select templates and press enter.")
	}

	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(
		fmt.Sprintf("%-34s %6s %6s %10s", "Scenario", "Score", "Funds", "Final")))
	b.WriteString("\n")
	base := m.result.BaseResult
	b.WriteString(fmt.Sprintf("%-34s %6d %6d %10s\n",
		truncate(base.ScenarioName, 34), base.ReadinessScore, base.FundsEndAge,
		tuistyles.FormatCurrencyShort(base.FinalAssets)))
	for _, alt := range m.result.AlternativeResults {
		b.WriteString(fmt.Sprintf("%-34s %6d %6d %10s %s\n",
			truncate(alt.ScenarioName, 34), alt.ReadinessScore, alt.FundsEndAge,
			tuistyles.FormatCurrencyShort(alt.FinalAssets), delta(alt.ScoreDiffFromBase)))
	}
	if len(m.result.Recommendations) > 0 {
		b.WriteString("\n")
		for _, r := range m.result.Recommendations {
			b.WriteString(tuistyles.MetricLabelStyle.Render("• " + r))
			b.WriteString("\n")
		}
	}
	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func delta(d int) string {
	switch {
	case d > 0:
		return tuistyles.MetricPositiveStyle.Render(fmt.Sprintf("%+d", d))
	case d < 0:
		return tuistyles.MetricNegativeStyle.Render(fmt.Sprintf("%+d", d))
	}
	return tuistyles.MetricLabelStyle.Render("=")
}
