package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/tui/tuistyles"
)

// DataSeries is one line of a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws asset balances by age as a character grid
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // one per point, shown under the x axis
	MarkerAt   int      // index drawn as a vertical rule, -1 for none
	MarkerName string
	Width      int
	Height     int
}

// NewASCIIChart creates an empty chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:    title,
		MarkerAt: -1,
		Width:    64,
		Height:   12,
	}
}

// NewProjectionChart plots total assets by age with the retirement age marked
func NewProjectionChart(result *domain.ProjectionResult) *ASCIIChart {
	c := NewASCIIChart("Total assets by age")
	points := make([]float64, len(result.Projections))
	labels := make([]string, len(result.Projections))
	for i, y := range result.Projections {
		points[i] = y.TotalAssets.InexactFloat64()
		labels[i] = fmt.Sprint(y.Age)
		if y.Age == result.RetirementAge {
			c.MarkerAt, c.MarkerName = i, "retire"
		}
	}
	return c.AddSeries(result.Scenario, points, tuistyles.ColorChartLine1).WithLabels(labels)
}

// AddSeries adds a line
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the x axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the plot dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the chart, or a note when there is nothing to plot
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 || len(c.Series[0].Points) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(tuistyles.TitleStyle.Render(c.Title))
		b.WriteString("\n\n")
	}
	lo, hi := c.bounds()
	b.WriteString(c.grid(lo, hi))
	if len(c.Series) > 1 {
		b.WriteString("\n")
		b.WriteString(c.legend())
	}
	return b.String()
}

// bounds spans every series and always includes zero, since depletion is
// the point of interest.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := 0.0, math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi + (hi-lo)*0.05
}

const yAxisWidth = 10

func (c *ASCIIChart) column(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
}

func (c *ASCIIChart) row(v, lo, hi float64) int {
	return c.Height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(c.Height-1)))
}

func (c *ASCIIChart) grid(lo, hi float64) string {
	width := max(c.Width-yAxisWidth-3, 8)
	cells := make([][]rune, c.Height)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", width))
	}

	n := len(c.Series[0].Points)
	if c.MarkerAt >= 0 && c.MarkerAt < n {
		x := c.column(c.MarkerAt, n, width)
		for y := range cells {
			cells[y][x] = '┊'
		}
	}

	for si, s := range c.Series {
		char := seriesChar(si)
		for i := 1; i < len(s.Points); i++ {
			drawLine(cells,
				c.column(i-1, len(s.Points), width), c.row(s.Points[i-1], lo, hi),
				c.column(i, len(s.Points), width), c.row(s.Points[i], lo, hi), char)
		}
		if len(s.Points) == 1 {
			cells[c.row(s.Points[0], lo, hi)][0] = char
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	var b strings.Builder
	for y, line := range cells {
		label := ""
		if y == 0 || y == c.Height-1 || y == c.Height/2 {
			label = formatChartValue(hi - float64(y)/float64(c.Height-1)*(hi-lo))
		}
		b.WriteString(axis.Render(label))
		b.WriteString(" │ ")
		b.WriteString(lipgloss.NewStyle().Foreground(c.Series[0].Color).Render(string(line)))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth))
	b.WriteString(" └")
	b.WriteString(strings.Repeat("─", width+1))
	b.WriteString("\n")
	b.WriteString(c.xLabels(width))
	return b.String()
}

// xLabels prints the first, marker and last labels at their columns
func (c *ASCIIChart) xLabels(width int) string {
	if len(c.Labels) == 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", width+yAxisWidth+8))
	put := func(i int) {
		if i < 0 || i >= len(c.Labels) {
			return
		}
		x := yAxisWidth + 3 + c.column(i, len(c.Labels), width)
		for j, r := range c.Labels[i] {
			if x+j < len(line) {
				line[x+j] = r
			}
		}
	}
	put(0)
	put(c.MarkerAt)
	put(len(c.Labels) - 1)

	out := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " "))
	if c.MarkerAt >= 0 && c.MarkerName != "" {
		out += "\n" + tuistyles.SubtitleStyle.Render(strings.Repeat(" ", yAxisWidth+3)+"┊ "+c.MarkerName)
	}
	return out
}

func (c *ASCIIChart) legend() string {
	items := make([]string, len(c.Series))
	for i, s := range c.Series {
		items[i] = lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i))) + " " + s.Name
	}
	return tuistyles.MetricLabelStyle.Render("Legend: " + strings.Join(items, " • "))
}

func seriesChar(i int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[i%len(chars)]
}

// drawLine plots a segment with Bresenham's algorithm
func drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) {
			grid[y0][x0] = char
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func formatChartValue(v float64) string {
	switch a := math.Abs(v); {
	case a >= 1_000_000:
		return fmt.Sprintf("RM%.1fM", v/1_000_000)
	case a >= 1_000:
		return fmt.Sprintf("RM%.0fK", v/1_000)
	}
	return fmt.Sprintf("RM%.0f", v)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
