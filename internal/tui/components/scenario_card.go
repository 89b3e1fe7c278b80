package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/tui/tuistyles"
)

// ScenarioCard summarizes one saved scenario of the workbench
type ScenarioCard struct {
	Name        string
	Score       int
	FundsEndAge int
	SavedAt     time.Time
	Active      bool
	Edited      bool
	Highlights  []string
	IsSelected  bool
	Width       int
}

// NewScenarioCard builds a card from a saved scenario. Highlights list the
// overlay entries that differ from a plain projection.
func NewScenarioCard(s domain.SavedScenario) *ScenarioCard {
	card := &ScenarioCard{
		Name:        s.Name,
		Score:       s.ReadinessScore,
		FundsEndAge: s.FundsEndAge,
		SavedAt:     s.SavedAt,
		Width:       44,
	}
	in := s.ScenarioInputs
	if in.AdditionalMonthlySavings.IsPositive() {
		card.AddHighlight("+" + tuistyles.FormatCurrency(in.AdditionalMonthlySavings) + "/month savings")
	}
	if !in.InvestmentReturnAdjustment.IsZero() {
		card.AddHighlight(fmt.Sprintf("returns %s%%", signed(in.InvestmentReturnAdjustment.String())))
	}
	if n := len(in.LumpSumEvents); n > 0 {
		card.AddHighlight(fmt.Sprintf("%d lump sum event(s)", n))
	}
	return card
}

func signed(s string) string {
	if strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}

// AddHighlight adds a bullet to the card
func (s *ScenarioCard) AddHighlight(highlight string) *ScenarioCard {
	s.Highlights = append(s.Highlights, highlight)
	return s
}

// SetSelected marks the card as the cursor position
func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

func (s *ScenarioCard) score() string {
	return lipgloss.NewStyle().
		Foreground(tuistyles.ScoreColor(s.Score)).
		Bold(true).
		Render(fmt.Sprintf("%3d", s.Score))
}

func (s *ScenarioCard) marker() string {
	switch {
	case s.Active && s.Edited:
		return lipgloss.NewStyle().Foreground(tuistyles.ColorAccent).Render("● editing")
	case s.Active:
		return lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess).Render("● active")
	}
	return ""
}

// Render returns the bordered card
func (s *ScenarioCard) Render() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render(s.Name))
	if m := s.marker(); m != "" {
		content.WriteString("  " + m)
	}
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("Score %s / 100   funds last to %d\n", s.score(), s.FundsEndAge))
	if !s.SavedAt.IsZero() {
		content.WriteString(tuistyles.SubtitleStyle.Render("saved " + s.SavedAt.Local().Format("2006-01-02 15:04")))
		content.WriteString("\n")
	}
	for _, h := range s.Highlights {
		content.WriteString(tuistyles.MetricLabelStyle.Render("• " + h))
		content.WriteString("\n")
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width).
		Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns "name  score  marker" on one line
func (s *ScenarioCard) RenderCompact() string {
	parts := []string{fmt.Sprintf("%-24s", truncate(s.Name, 24)), s.score()}
	if m := s.marker(); m != "" {
		parts = append(parts, m)
	}
	return strings.Join(parts, " ")
}

// ScenarioListCompact renders one line per card with a cursor
func ScenarioListCompact(cards []*ScenarioCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios saved")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix, style := "  ", tuistyles.UnselectedItemStyle
		if i == selectedIndex {
			prefix, style = "▸ ", tuistyles.SelectedItemStyle
		}
		rendered[i] = style.Render(prefix) + card.RenderCompact()
	}
	return strings.Join(rendered, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
