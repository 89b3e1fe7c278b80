package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/readiness/internal/tui/tuistyles"
)

// MetricCard displays a single figure such as the readiness score or the
// balance at retirement, optionally with its change against a reference.
type MetricCard struct {
	Label       string
	Value       string
	Delta       *Delta
	Description string
	Color       lipgloss.Color
	Width       int
}

// Delta is the change of a metric against the saved scenario or a base
type Delta struct {
	Improved bool
	Change   string // e.g. "+12" or "-RM40K"
}

// NewMetricCard creates a card with the default width
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithDelta adds a change indicator
func (m *MetricCard) WithDelta(improved bool, change string) *MetricCard {
	m.Delta = &Delta{Improved: improved, Change: change}
	return m
}

// WithIntDelta adds a change indicator for an integer metric, skipping zero
func (m *MetricCard) WithIntDelta(delta int, unit string) *MetricCard {
	if delta == 0 {
		return m
	}
	return m.WithDelta(delta > 0, fmt.Sprintf("%+d%s", delta, unit))
}

// WithDescription adds a subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithColor colors the value
func (m *MetricCard) WithColor(c lipgloss.Color) *MetricCard {
	m.Color = c
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) value() string {
	style := tuistyles.MetricValueStyle
	if m.Color != "" {
		style = style.Foreground(m.Color)
	}
	return style.Render(m.Value)
}

func (m *MetricCard) delta() string {
	if m.Delta == nil {
		return ""
	}
	return tuistyles.MetricTrendStyle(m.Delta.Improved).
		Render(tuistyles.TrendIndicator(m.Delta.Improved) + " " + m.Delta.Change)
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + m.value()
	if d := m.delta(); d != "" {
		content += "\n" + d
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns "Label: value ▲ change" on one line
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + m.value()
	if d := m.delta(); d != "" {
		out += " " + d
	}
	return out
}

// MetricGrid lays cards out in rows of the given column count
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		row := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			row = append(row, c.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
