package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/tui/components"
	"github.com/rgehrsitz/readiness/internal/tui/tuistyles"
)

var (
	keyPageUp   = key.NewBinding(key.WithKeys("pgup"))
	keyPageDown = key.NewBinding(key.WithKeys("pgdown", " "))
	keyTop      = key.NewBinding(key.WithKeys("g", "home"))
	keyBottom   = key.NewBinding(key.WithKeys("G", "end"))
)

const resultRows = 12

// ResultsModel shows the year-by-year projection of the working scenario
type ResultsModel struct {
	result *domain.ProjectionResult
	offset int
	width  int
	height int
}

// NewResultsModel creates the results scene
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResult replaces the projection, keeping the scroll position in range
func (m *ResultsModel) SetResult(result *domain.ProjectionResult) {
	m.result = result
	m.offset = min(m.offset, m.maxOffset())
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Offset returns the index of the first visible row
func (m *ResultsModel) Offset() int {
	return m.offset
}

func (m *ResultsModel) maxOffset() int {
	if m.result == nil {
		return 0
	}
	return max(len(m.result.Projections)-resultRows, 0)
}

// Update scrolls the table
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.result == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		m.offset--
	case key.Matches(keyMsg, keyDown):
		m.offset++
	case key.Matches(keyMsg, keyPageUp):
		m.offset -= resultRows
	case key.Matches(keyMsg, keyPageDown):
		m.offset += resultRows
	case key.Matches(keyMsg, keyTop):
		m.offset = 0
	case key.Matches(keyMsg, keyBottom):
		m.offset = m.maxOffset()
	}
	m.offset = min(max(m.offset, 0), m.maxOffset())
	return m, nil
}

// View renders the chart and the table
func (m *ResultsModel) View() string {
	if m.result == nil || len(m.result.Projections) == 0 {
		return tuistyles.InfoStyle.Render("No projection yet.")
	}

	r := m.result
	header := tuistyles.TitleStyle.Render("Projection: "+r.Scenario) + "  " +
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("score %d, funds last to %d", r.ReadinessScore, r.FundsEndAge))

	chartWidth := 64
	if m.width > 0 {
		chartWidth = min(max(m.width-4, 30), 100)
	}
	chart := components.NewProjectionChart(r).WithSize(chartWidth, 10)
	chart.Title = ""

	return lipgloss.JoinVertical(lipgloss.Left,
		header, "",
		chart.Render(), "",
		m.renderTable(), "",
		helpLine("↑/↓ scroll", "pgup/pgdn page", "g/G top/bottom"),
	)
}

func (m *ResultsModel) renderTable() string {
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(
		fmt.Sprintf("%4s  %16s  %14s  %-8s", "Age", "Total assets", "Income", "Status")))
	b.WriteString("\n")

	rows := m.result.Projections
	end := min(m.offset+resultRows, len(rows))
	for _, y := range rows[m.offset:end] {
		income := "-"
		if y.IsRetired() {
			income = tuistyles.FormatCurrency(y.AnnualIncome)
		}
		line := fmt.Sprintf("%4d  %16s  %14s  ", y.Age, tuistyles.FormatCurrency(y.TotalAssets), income)
		b.WriteString(tuistyles.TableCellStyle.Render(line))
		b.WriteString(statusStyle(y.Status).Render(string(y.Status)))
		b.WriteString("\n")
	}
	b.WriteString(tuistyles.SubtitleStyle.Render(
		fmt.Sprintf("rows %d-%d of %d", m.offset+1, end, len(rows))))
	return tuistyles.BorderStyle.Render(b.String())
}

func statusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusCritical:
		return lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
	case domain.StatusWarning:
		return lipgloss.NewStyle().Foreground(tuistyles.ColorWarning)
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
}
