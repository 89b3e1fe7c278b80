// Package tuistyles holds the palette and lipgloss styles shared by the
// workbench TUI and its scenes.
package tuistyles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary   = lipgloss.Color("#00A19B")
	ColorSecondary = lipgloss.Color("#5A67D8")
	ColorAccent    = lipgloss.Color("#F6AD55")
	ColorSuccess   = lipgloss.Color("#48BB78")
	ColorWarning   = lipgloss.Color("#ECC94B")
	ColorDanger    = lipgloss.Color("#F56565")
	ColorInfo      = lipgloss.Color("#63B3ED")

	ColorBackground = lipgloss.Color("#1A202C")
	ColorForeground = lipgloss.Color("#E2E8F0")
	ColorMuted      = lipgloss.Color("#718096")
	ColorBorder     = lipgloss.Color("#4A5568")

	ColorChartLine1 = lipgloss.Color("#00A19B")
	ColorChartLine2 = lipgloss.Color("#F6AD55")
	ColorChartLine3 = lipgloss.Color("#B794F4")
	ColorChartLine4 = lipgloss.Color("#63B3ED")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorBorder).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	ParameterValueStyle = lipgloss.NewStyle().Foreground(ColorInfo)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorAccent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDanger).
			Padding(1, 2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	TableCellStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	TableHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorBackground).
				Background(ColorPrimary)
)

// MetricTrendStyle picks the color for a change
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a change
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// ScoreColor maps a readiness score onto the palette
func ScoreColor(score int) lipgloss.Color {
	switch {
	case score >= 100:
		return ColorSuccess
	case score >= 75:
		return ColorWarning
	case score >= 50:
		return ColorAccent
	default:
		return ColorDanger
	}
}

// FormatCurrency renders whole ringgit with thousands separators, e.g. RM1,528,357
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	return sign + "RM" + groupThousands(amount.Round(0).String())
}

// FormatCurrencyShort renders RM1.53M, RM60K and so on
func FormatCurrencyShort(amount decimal.Decimal) string {
	f := amount.InexactFloat64()
	abs := f
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("RM%.2fM", f/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("RM%.0fK", f/1_000)
	}
	return fmt.Sprintf("RM%.0f", f)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
