package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/readiness/internal/tui/tuistyles"
)

// ScoreGauge draws a readiness score as a 0-100 bar
type ScoreGauge struct {
	Score int
	Width int
	Label string
}

// NewScoreGauge creates a gauge for score
func NewScoreGauge(score int) *ScoreGauge {
	return &ScoreGauge{Score: score, Width: 40}
}

// WithLabel sets the text shown above the bar
func (g *ScoreGauge) WithLabel(label string) *ScoreGauge {
	g.Label = label
	return g
}

// WithWidth sets the bar width
func (g *ScoreGauge) WithWidth(width int) *ScoreGauge {
	g.Width = width
	return g
}

// Filled returns the number of filled cells
func (g *ScoreGauge) Filled() int {
	score := min(max(g.Score, 0), 100)
	return g.Width * score / 100
}

// Render returns the bar followed by "score / 100"
func (g *ScoreGauge) Render() string {
	var b strings.Builder
	if g.Label != "" {
		b.WriteString(tuistyles.MetricLabelStyle.Render(g.Label))
		b.WriteString("\n")
	}

	color := tuistyles.ScoreColor(g.Score)
	filled := g.Filled()
	b.WriteString("[")
	b.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)))
	b.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("░", g.Width-filled)))
	b.WriteString("] ")
	b.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%d / 100", g.Score)))
	return b.String()
}
