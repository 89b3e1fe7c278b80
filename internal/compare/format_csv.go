package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Readiness Score",
		"Funds End Age",
		"Retirement Age",
		"Assets At Retirement",
		"Final Assets",
		"Lifetime Income",
		"Shortfall Years",
		"Score Diff",
		"Funds End Age Diff",
		"Final Assets Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		strconv.Itoa(result.ReadinessScore),
		strconv.Itoa(result.FundsEndAge),
		strconv.Itoa(result.RetirementAge),
		result.AssetsAtRetirement.StringFixed(2),
		result.FinalAssets.StringFixed(2),
		result.LifetimeIncome.StringFixed(2),
		strconv.Itoa(result.ShortfallYears),
		strconv.Itoa(result.ScoreDiffFromBase),
		strconv.Itoa(result.FundsEndAgeDiff),
		result.FinalAssetsDiffFromBase.StringFixed(2),
	}
}
