package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/readiness/internal/compare"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/output"
	"github.com/rgehrsitz/readiness/internal/tui/components"
	"github.com/rgehrsitz/readiness/internal/tui/tuistyles"
)

// HomeModel is the dashboard: client assets and the working scenario at a glance
type HomeModel struct {
	client  domain.ClientProfile
	working *domain.Scenario
	result  *domain.ProjectionResult
	saved   *domain.SavedScenario
	width   int
	height  int
}

// NewHomeModel creates the dashboard
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetWorkbench updates the dashboard from the workbench state. saved is the
// active scenario as of its last save, used for deltas.
func (m *HomeModel) SetWorkbench(client domain.ClientProfile, working *domain.Scenario, saved *domain.SavedScenario) {
	m.client = client
	m.working = working
	m.saved = saved
}

// SetResult updates the live projection
func (m *HomeModel) SetResult(result *domain.ProjectionResult) {
	m.result = result
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update is a no-op; navigation is handled by the parent
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	return m, nil
}

// View renders the dashboard
func (m *HomeModel) View() string {
	if m.working == nil {
		return tuistyles.BorderStyle.Render(tuistyles.SubtitleStyle.Render("Loading workbench..."))
	}

	sections := []string{
		tuistyles.TitleStyle.Render(m.client.Name) + "  " +
			tuistyles.SubtitleStyle.Render(fmt.Sprintf("working on %q", m.working.Name)),
		"",
		m.renderReadiness(),
		"",
		m.renderAssets(),
	}
	if m.working.Notes != "" {
		sections = append(sections, "", tuistyles.MetricLabelStyle.Render("Notes: ")+m.working.Notes)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *HomeModel) renderReadiness() string {
	if m.result == nil {
		return tuistyles.InfoStyle.Render("Projecting...")
	}

	r := m.result
	metrics := compare.NewMetricsCalculator().CalculateMetrics(r)
	score := components.NewMetricCard("Readiness", fmt.Sprintf("%d / 100", r.ReadinessScore)).
		WithColor(tuistyles.ScoreColor(r.ReadinessScore))
	funds := components.NewMetricCard("Funds last to", fmt.Sprintf("age %d", r.FundsEndAge))
	if m.saved != nil {
		score.WithIntDelta(r.ReadinessScore-m.saved.ReadinessScore, "")
		funds.WithIntDelta(r.FundsEndAge-m.saved.FundsEndAge, "y")
	}
	cards := []*components.MetricCard{
		score,
		funds,
		components.NewMetricCard("At retirement", tuistyles.FormatCurrencyShort(metrics.AssetsAtRetirement)).
			WithDescription(fmt.Sprintf("age %d", r.RetirementAge)),
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(cards, 3),
		components.NewScoreGauge(r.ReadinessScore).WithWidth(50).Render(),
		tuistyles.SubtitleStyle.Render(output.Verdict(r.ReadinessScore)),
	)
}

func (m *HomeModel) renderAssets() string {
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(
		fmt.Sprintf("%-26s %-10s %14s %10s %7s", "Asset", "Kind", "Value", "Monthly", "Return")))
	b.WriteString("\n")
	for _, a := range m.client.Assets {
		line := fmt.Sprintf("%-26s %-10s %14s %10s %6s%%",
			truncate(a.Name, 26), a.Kind,
			tuistyles.FormatCurrency(a.CurrentValue),
			tuistyles.FormatCurrency(a.MonthlyContribution),
			a.HistoricalReturn.StringFixed(1))
		if a.CanEdit {
			line += tuistyles.HelpKeyStyle.Render(" ✎")
		}
		b.WriteString(tuistyles.TableCellStyle.Render(line))
		b.WriteString("\n")
	}
	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
