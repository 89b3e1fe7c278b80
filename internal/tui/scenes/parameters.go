package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/tui/components"
	"github.com/rgehrsitz/readiness/internal/tui/tuimsg"
	"github.com/rgehrsitz/readiness/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

var (
	keyIncrease = key.NewBinding(key.WithKeys("right", "l", "+", "="))
	keyDecrease = key.NewBinding(key.WithKeys("left", "-"))
	keyReset    = key.NewBinding(key.WithKeys("u"))
)

const assetSliderPrefix = "asset:"

// ParametersModel edits the working plan, the overlay and the editable
// asset contributions with sliders. Every step is sent to the root model,
// which updates the workbench and re-projects.
type ParametersModel struct {
	sliders []*components.ParameterSlider
	focused int
	width   int
	height  int
}

// NewParametersModel creates the parameter editor
func NewParametersModel() *ParametersModel {
	return &ParametersModel{}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decStr(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SetScenario rebuilds the sliders from the working scenario, keeping focus
func (m *ParametersModel) SetScenario(s *domain.Scenario, assets []domain.Asset) {
	if s == nil {
		m.sliders = nil
		return
	}
	plan, overlay := s.Plan, s.Overlay

	sliders := []*components.ParameterSlider{
		components.NewParameterSlider(string(tuimsg.ParamRetirementAge), "Retirement age",
			dec(int64(plan.TargetRetirementAge)), dec(int64(plan.CurrentAge)), dec(80), dec(1)).
			WithFormat(components.FormatYears),
		components.NewParameterSlider(string(tuimsg.ParamLifeExpectancy), "Life expectancy",
			dec(int64(plan.LifeExpectancy)), dec(60), dec(110), dec(1)).
			WithFormat(components.FormatYears),
		components.NewParameterSlider(string(tuimsg.ParamDesiredIncome), "Desired annual income",
			plan.DesiredAnnualIncome, dec(0), dec(300000), dec(1000)).
			WithFormat(components.FormatRinggit).
			WithDescription("Drawn in the first retirement year, then grown with inflation"),
		components.NewParameterSlider(string(tuimsg.ParamInflation), "Inflation",
			plan.InflationRate, dec(0), dec(10), decStr("0.25")).
			WithFormat(components.FormatPercent),
		components.NewParameterSlider(string(tuimsg.ParamPostRetirementReturn), "Post-retirement return",
			plan.PostRetirementReturn, dec(-5), dec(15), decStr("0.25")).
			WithFormat(components.FormatPercent),
		components.NewParameterSlider(string(tuimsg.ParamExtraSavings), "Extra monthly savings",
			overlay.AdditionalMonthlySavings, dec(0), dec(20000), dec(100)).
			WithFormat(components.FormatRinggit).
			WithDescription("Added to the combined monthly contribution"),
		components.NewParameterSlider(string(tuimsg.ParamReturnAdjustment), "Return adjustment",
			overlay.InvestmentReturnAdjustment, dec(-5), dec(5), decStr("0.25")).
			WithFormat(components.FormatPercent).
			WithDescription("Added to the return before and after retirement"),
	}
	for _, a := range assets {
		if !a.CanEdit {
			continue
		}
		sliders = append(sliders,
			components.NewParameterSlider(assetSliderPrefix+a.ID, a.Name+" contribution",
				a.MonthlyContribution, dec(0), dec(10000), dec(50)).
				WithFormat(components.FormatRinggit))
	}

	m.sliders = sliders
	m.focused = min(m.focused, len(sliders)-1)
	for i, sl := range m.sliders {
		sl.SetFocused(i == m.focused)
	}
}

// Focused returns the slider with focus, or nil
func (m *ParametersModel) Focused() *components.ParameterSlider {
	if m.focused < 0 || m.focused >= len(m.sliders) {
		return nil
	}
	return m.sliders[m.focused]
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		m.moveFocus(-1)
	case key.Matches(keyMsg, keyDown):
		m.moveFocus(1)
	case key.Matches(keyMsg, keyIncrease):
		if m.Focused().Increment() {
			return m, m.changed(m.Focused())
		}
	case key.Matches(keyMsg, keyDecrease):
		if m.Focused().Decrement() {
			return m, m.changed(m.Focused())
		}
	case key.Matches(keyMsg, keyReset):
		return m, send(tuimsg.ResetRequestedMsg{})
	}
	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
}

func (m *ParametersModel) changed(sl *components.ParameterSlider) tea.Cmd {
	msg := tuimsg.ParameterChangedMsg{Parameter: tuimsg.Parameter(sl.Key), Value: sl.Value}
	if id, ok := strings.CutPrefix(sl.Key, assetSliderPrefix); ok {
		msg.Parameter = tuimsg.ParamAssetContribution
		msg.AssetID = id
	}
	return send(msg)
}

// View renders the sliders
func (m *ParametersModel) View() string {
	if len(m.sliders) == 0 {
		return tuistyles.InfoStyle.Render("No scenario loaded.")
	}

	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Parameters"))
	b.WriteString("\n\n")
	for i, sl := range m.sliders {
		if i == m.focused {
			b.WriteString(sl.Render())
		} else {
			b.WriteString(sl.RenderCompact())
		}
		b.WriteString("\n")
		if i == m.focused {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(helpLine("↑/↓ select", "←/→ adjust", "u undo edits", "ctrl+s save"))
	return b.String()
}
