package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("RETIREMENT READINESS COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Readiness",
		numWidth, "Funds Last",
		numWidth, "At Retire",
		numWidth, "Final"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Readiness:        %s%d points\n", intSymbol(alt.ScoreDiffFromBase), alt.ScoreDiffFromBase))
			if alt.FundsEndAgeDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Funds Last:       %s%d years\n", intSymbol(alt.FundsEndAgeDiff), alt.FundsEndAgeDiff))
			}
			if alt.RetirementAgeDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Retirement Age:   %s%d years\n", intSymbol(alt.RetirementAgeDiff), alt.RetirementAgeDiff))
			}
			if !alt.FinalAssetsDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Final Assets:     %sRM%s\n",
					tf.deltaSymbol(alt.FinalAssetsDiffFromBase),
					tf.formatDecimal(alt.FinalAssetsDiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	fundsStr := fmt.Sprintf("age %d", result.FundsEndAge)
	if result.FundsEndAge == 0 {
		fundsStr = "depleted"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, fmt.Sprintf("%d/100", result.ReadinessScore),
		numWidth, fundsStr,
		numWidth, "RM"+tf.formatDecimal(result.AssetsAtRetirement),
		numWidth, "RM"+tf.formatDecimal(result.FinalAssets))
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func intSymbol(delta int) string {
	if delta > 0 {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s", compSet.BaseScenarioName))
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf(" (%d)", compSet.BaseResult.ReadinessScore))
	}

	for _, alt := range compSet.AlternativeResults {
		change := "="
		if alt.ScoreDiffFromBase != 0 {
			change = fmt.Sprintf("%s%d", intSymbol(alt.ScoreDiffFromBase), alt.ScoreDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf(" | %s: %d (%s)", alt.ScenarioName, alt.ReadinessScore, change))
	}

	return sb.String()
}
