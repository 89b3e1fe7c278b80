package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/readiness/internal/domain"
)

// ConsoleVerboseFormatter renders the full console report: summary,
// assumptions, warnings and the year-by-year table.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	sum := report.Summarize()

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "RETIREMENT READINESS REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	if report.ClientName != "" {
		fmt.Fprintf(&buf, "Client:    %s\n", report.ClientName)
	}
	fmt.Fprintf(&buf, "Scenario:  %s\n", report.Scenario.Name)
	fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "READINESS SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "Readiness Score:       %d / 100\n", sum.ReadinessScore)
	fmt.Fprintf(&buf, "Verdict:               %s\n", Verdict(sum.ReadinessScore))
	fmt.Fprintf(&buf, "Retirement Age:        %d\n", sum.RetirementAge)
	fmt.Fprintf(&buf, "Funds Last To Age:     %s\n", fundsEnd(sum))
	fmt.Fprintf(&buf, "Assets At Retirement:  %s\n", FormatCurrency(sum.AssetsAtRetirement))
	fmt.Fprintf(&buf, "Peak Assets:           %s\n", FormatCurrency(sum.PeakAssets))
	fmt.Fprintf(&buf, "First Year Income:     %s\n", FormatCurrency(sum.FirstYearIncome))
	fmt.Fprintf(&buf, "Shortfall Years:       %d\n", sum.ShortfallYears)
	fmt.Fprintln(&buf)

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	writeOverlay(&buf, report.Scenario.Overlay)

	if len(report.Result.Warnings) > 0 {
		fmt.Fprintln(&buf, "INPUT WARNINGS:")
		for _, w := range report.Result.Warnings {
			fmt.Fprintf(&buf, "⚠ %s\n", w.String())
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "YEAR-BY-YEAR PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("-", 72))
	fmt.Fprintf(&buf, "%-5s %-13s %18s %18s %-10s\n", "Age", "Phase", "Total Assets", "Annual Income", "Status")
	for _, y := range report.Result.Projections {
		phase := "accumulation"
		income := "-"
		if y.IsRetired() {
			phase = "retirement"
			income = FormatCurrency(y.AnnualIncome)
		}
		fmt.Fprintf(&buf, "%-5d %-13s %18s %18s %-10s\n",
			y.Age, phase, FormatCurrency(y.TotalAssets), income, statusLabel(y.Status))
	}
	fmt.Fprintln(&buf)

	if report.Scenario.Notes != "" {
		fmt.Fprintln(&buf, "PLANNER NOTES:")
		fmt.Fprintln(&buf, report.Scenario.Notes)
		fmt.Fprintln(&buf)
	}

	return buf.Bytes(), nil
}

func writeOverlay(buf *bytes.Buffer, o domain.ScenarioInputs) {
	if o.AdditionalMonthlySavings.IsZero() && o.InvestmentReturnAdjustment.IsZero() && len(o.LumpSumEvents) == 0 {
		return
	}
	fmt.Fprintln(buf, "SCENARIO ADJUSTMENTS:")
	if !o.AdditionalMonthlySavings.IsZero() {
		fmt.Fprintf(buf, "• Extra savings: %s per month\n", FormatCurrency(o.AdditionalMonthlySavings))
	}
	if !o.InvestmentReturnAdjustment.IsZero() {
		fmt.Fprintf(buf, "• Return adjustment: %s points\n", o.InvestmentReturnAdjustment.StringFixed(2))
	}
	for _, e := range o.LumpSumEvents {
		desc := e.Description
		if desc == "" {
			desc = string(e.Type)
		}
		fmt.Fprintf(buf, "• Age %d: %s of %s (%s)\n", e.Age, e.Type, FormatCurrency(e.Amount), desc)
	}
	fmt.Fprintln(buf)
}

func fundsEnd(s Summary) string {
	switch {
	case s.FundsEndAge == 0:
		return "no assets"
	case s.FundsEndAge >= s.LifeExpectancy:
		return fmt.Sprintf("%d (beyond life expectancy %d)", s.FundsEndAge, s.LifeExpectancy)
	default:
		return fmt.Sprintf("%d (%d years short of %d)", s.FundsEndAge, s.LifeExpectancy-s.FundsEndAge, s.LifeExpectancy)
	}
}

func statusLabel(s domain.Status) string {
	switch s {
	case domain.StatusWarning:
		return "⚠ warning"
	case domain.StatusCritical:
		return "✗ critical"
	}
	return "ok"
}
