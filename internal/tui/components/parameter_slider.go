package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/readiness/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ValueFormat renders a slider value for display
type ValueFormat func(decimal.Decimal) string

// Common slider formats
var (
	FormatYears   ValueFormat = func(d decimal.Decimal) string { return d.StringFixed(0) + " years" }
	FormatPercent ValueFormat = func(d decimal.Decimal) string { return d.StringFixed(2) + "%" }
	FormatRinggit ValueFormat = tuistyles.FormatCurrency
)

// ParameterSlider is an adjustable plan or overlay value. Values are kept
// as decimals and moved in fixed steps within [Min, Max].
type ParameterSlider struct {
	Key         string
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Format      ValueFormat
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider. Max widens to hold a value above it.
func NewParameterSlider(key, label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	if value.GreaterThan(max) {
		max = value
	}
	if value.LessThan(min) {
		min = value
	}
	return &ParameterSlider{
		Key:    key,
		Label:  label,
		Value:  value,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: func(d decimal.Decimal) string { return d.String() },
		Width:  30,
	}
}

// WithFormat sets the value renderer
func (p *ParameterSlider) WithFormat(f ValueFormat) *ParameterSlider {
	p.Format = f
	return p
}

// WithWidth sets the bar width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// WithDescription adds help text shown under the bar
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// Increment moves one step up, reporting whether the value changed
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(p.Value.Add(p.Step))
}

// Decrement moves one step down, reporting whether the value changed
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(p.Value.Sub(p.Step))
}

// SetValue clamps v to the range and reports whether the value changed
func (p *ParameterSlider) SetValue(v decimal.Decimal) bool {
	v = decimal.Max(p.Min, decimal.Min(p.Max, v))
	if v.Equal(p.Value) {
		return false
	}
	p.Value = v
	return true
}

// Fraction returns the position of the value within the range, 0 to 1
func (p *ParameterSlider) Fraction() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// Render returns the label, value and bar
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(p.Label))
	b.WriteString("  ")
	b.WriteString(valueStyle.Render(p.Format(p.Value)))
	b.WriteString("\n")
	b.WriteString(p.bar(p.Width))
	b.WriteString(" ")
	b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
		Render(p.Format(p.Min) + " ─ " + p.Format(p.Max)))
	if p.Description != "" && p.IsFocused {
		b.WriteString("\n")
		b.WriteString(tuistyles.SubtitleStyle.Render(p.Description))
	}
	return b.String()
}

// RenderCompact returns "Label: value [──●──]" on one line
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}
	return labelStyle.Render(p.Label+":") + " " +
		tuistyles.ParameterValueStyle.Render(p.Format(p.Value)) + " " + p.bar(10)
}

func (p *ParameterSlider) bar(width int) string {
	if width < 2 {
		width = 2
	}
	thumb := int(math.Round(float64(width-1) * p.Fraction()))
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(thumbStyle.Render(strings.Repeat("━", thumb)))
	b.WriteString(thumbStyle.Render("●"))
	b.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", width-1-thumb)))
	b.WriteString("]")
	return b.String()
}
