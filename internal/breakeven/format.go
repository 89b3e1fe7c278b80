package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Scenario:      %s\n", result.Scenario))
	sb.WriteString(fmt.Sprintf("Solve For:     %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Target Score:  %d\n", result.TargetScore))
	sb.WriteString(fmt.Sprintf("Status:        %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Evaluations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:   %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLUTION\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	if result.OptimalMonthlySavings != nil {
		sb.WriteString(fmt.Sprintf("Extra Monthly Savings: RM%s (currently RM%s)\n",
			tf.formatCurrency(*result.OptimalMonthlySavings), tf.formatCurrency(result.BaseMonthlySavings)))
	}
	if result.OptimalRetirementAge != nil {
		sb.WriteString(fmt.Sprintf("Retirement Age:        %d (currently %d)\n",
			*result.OptimalRetirementAge, result.BaseRetirementAge))
	}
	sb.WriteString("\n")

	sb.WriteString("OUTCOME\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %10s %10s %8s\n", "", "Base", "Solved", "Change"))
	sb.WriteString(fmt.Sprintf("%-16s %10d %10d %8s\n", "Readiness Score",
		result.BaseReadinessScore, result.ReadinessScore,
		tf.formatDelta(result.ReadinessScore-result.BaseReadinessScore)))
	sb.WriteString(fmt.Sprintf("%-16s %10d %10d %8s\n", "Funds Last To",
		result.BaseFundsEndAge, result.FundsEndAge,
		tf.formatDelta(result.FundsEndAge-result.BaseFundsEndAge)))
	sb.WriteString(fmt.Sprintf("%-16s %21s\n", "Final Assets", "RM"+tf.formatShort(result.FinalAssets)))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMultiDimensional formats results from solving several targets
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN OPTIONS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-16s %16s %8s %12s\n", "Solve For", "Solution", "Score", "Funds Last"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-16s %16s %8d %12d\n",
			tf.truncate(string(res.Target), 16),
			tf.solution(res),
			res.ReadinessScore,
			res.FundsEndAge))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) solution(r OptimizationResult) string {
	switch {
	case r.OptimalMonthlySavings != nil:
		return "RM" + tf.formatCurrency(*r.OptimalMonthlySavings) + "/mo"
	case r.OptimalRetirementAge != nil:
		return fmt.Sprintf("age %d", *r.OptimalRetirementAge)
	}
	return "-"
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Target reached"
	}
	return "⚠ Target not reachable"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) formatDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
