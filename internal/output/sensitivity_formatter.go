package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/readiness/internal/calculation"
)

// SweepFormatter defines a formatter for sensitivity sweeps
type SweepFormatter interface {
	FormatSweep(result *calculation.SweepResult) (string, error)
	Name() string
}

// GetSweepFormatter returns the sweep formatter for a format name, or nil
func GetSweepFormatter(name string) SweepFormatter {
	switch NormalizeFormatName(name) {
	case "console", "console-lite":
		return SweepConsoleFormatter{}
	case "csv":
		return SweepCSVFormatter{}
	case "json":
		return SweepJSONFormatter{}
	}
	return nil
}

// SweepConsoleFormatter formats sensitivity sweep output for console
type SweepConsoleFormatter struct{}

func (scf SweepConsoleFormatter) Name() string { return "console" }

func (scf SweepConsoleFormatter) FormatSweep(result *calculation.SweepResult) (string, error) {
	if len(result.Points) == 0 {
		return "", fmt.Errorf("no points in sweep")
	}
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(string(result.Parameter), "_", " ")))
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintf(&buf, "Scenario: %s\n", result.Scenario)
	fmt.Fprintf(&buf, "Range: %s to %s (%d points)\n",
		scf.formatValue(result.Parameter, result.Points[0].Value.String()),
		scf.formatValue(result.Parameter, result.Points[len(result.Points)-1].Value.String()),
		len(result.Points))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-14s %-10s %-12s %-16s\n", string(result.Parameter), "Score", "Funds End", "Final Assets")
	fmt.Fprintln(&buf, strings.Repeat("-", 65))
	for _, p := range result.Points {
		fmt.Fprintf(&buf, "%-14s %-10d %-12d %-16s\n",
			scf.formatValue(result.Parameter, p.Value.String()),
			p.ReadinessScore,
			p.FundsEndAge,
			FormatCurrency(p.FinalAssets))
	}
	fmt.Fprintln(&buf)

	first, last := result.Points[0], result.Points[len(result.Points)-1]
	fmt.Fprintln(&buf, "SENSITIVITY:")
	fmt.Fprintf(&buf, "  Score moves %+d across the range\n", last.ReadinessScore-first.ReadinessScore)
	fmt.Fprintf(&buf, "  Funds end age moves %+d years across the range\n", last.FundsEndAge-first.FundsEndAge)

	if threshold, ok := firstFullyFunded(result); ok {
		fmt.Fprintf(&buf, "  Fully funded from %s\n", scf.formatValue(result.Parameter, threshold))
	}

	return buf.String(), nil
}

func (scf SweepConsoleFormatter) formatValue(p calculation.SweepParameter, v string) string {
	switch p {
	case calculation.SweepMonthlySavings:
		return "RM" + v
	case calculation.SweepRetirementAge:
		return "age " + v
	default:
		return v + "%"
	}
}

func firstFullyFunded(result *calculation.SweepResult) (string, bool) {
	for _, p := range result.Points {
		if p.ReadinessScore >= 100 {
			return p.Value.String(), true
		}
	}
	return "", false
}

// SweepCSVFormatter formats sensitivity sweep output as CSV
type SweepCSVFormatter struct{}

func (scf SweepCSVFormatter) Name() string { return "csv" }

func (scf SweepCSVFormatter) FormatSweep(result *calculation.SweepResult) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Scenario", "Parameter", "Value", "ReadinessScore", "FundsEndAge", "FinalAssets"}); err != nil {
		return "", err
	}
	for _, p := range result.Points {
		row := []string{
			result.Scenario,
			string(result.Parameter),
			p.Value.String(),
			strconv.Itoa(p.ReadinessScore),
			strconv.Itoa(p.FundsEndAge),
			p.FinalAssets.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// SweepJSONFormatter formats sensitivity sweep output as JSON
type SweepJSONFormatter struct{}

func (sjf SweepJSONFormatter) Name() string { return "json" }

func (sjf SweepJSONFormatter) FormatSweep(result *calculation.SweepResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
