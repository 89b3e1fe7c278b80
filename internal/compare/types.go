package compare

import (
	"fmt"

	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario with its key metrics and,
// for alternatives, the change relative to the base scenario
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description,omitempty"`
	Result       *domain.ProjectionResult `json:"-"`

	// Key Metrics
	ReadinessScore     int             `json:"readinessScore"`
	FundsEndAge        int             `json:"fundsEndAge"`
	RetirementAge      int             `json:"retirementAge"`
	AssetsAtRetirement decimal.Decimal `json:"assetsAtRetirement"`
	PeakAssets         decimal.Decimal `json:"peakAssets"`
	FinalAssets        decimal.Decimal `json:"finalAssets"`
	LifetimeIncome     decimal.Decimal `json:"lifetimeIncome"`
	ShortfallYears     int             `json:"shortfallYears"`

	// Comparison to Base
	ScoreDiffFromBase       int             `json:"scoreDiffFromBase"`
	FundsEndAgeDiff         int             `json:"fundsEndAgeDiff"`
	RetirementAgeDiff       int             `json:"retirementAgeDiff"`
	FinalAssetsDiffFromBase decimal.Decimal `json:"finalAssetsDiffFromBase"`
	IncomeDiffFromBase      decimal.Decimal `json:"incomeDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from projection results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projection result
func (mc *MetricsCalculator) CalculateMetrics(result *domain.ProjectionResult) ComparisonResult {
	metrics := ComparisonResult{
		ScenarioName:   result.Scenario,
		Result:         result,
		ReadinessScore: result.ReadinessScore,
		FundsEndAge:    result.FundsEndAge,
		RetirementAge:  result.RetirementAge,
		PeakAssets:     result.PeakAssets(),
		FinalAssets:    result.FinalAssets(),
		LifetimeIncome: decimal.Zero,
	}

	// Balance entering retirement is the last pre-retirement year
	for _, y := range result.Projections {
		if y.Age >= result.RetirementAge {
			break
		}
		metrics.AssetsAtRetirement = y.TotalAssets
	}

	for _, y := range result.Projections {
		if !y.IsRetired() {
			continue
		}
		if y.IsDepleted() {
			metrics.ShortfallYears++
			continue
		}
		metrics.LifetimeIncome = metrics.LifetimeIncome.Add(y.AnnualIncome)
	}

	return metrics
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.ScoreDiffFromBase = scenario.ReadinessScore - base.ReadinessScore
	scenario.FundsEndAgeDiff = scenario.FundsEndAge - base.FundsEndAge
	scenario.RetirementAgeDiff = scenario.RetirementAge - base.RetirementAge
	scenario.FinalAssetsDiffFromBase = scenario.FinalAssets.Sub(base.FinalAssets)
	scenario.IncomeDiffFromBase = scenario.LifetimeIncome.Sub(base.LifetimeIncome)
	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Highest readiness; ties go to the earlier alternative
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.ReadinessScore > best.ReadinessScore {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best Readiness: %s raises the readiness score from %d to %d",
			best.ScenarioName, base.ReadinessScore, best.ReadinessScore))
	}

	// Longest lasting funds
	longest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FundsEndAge > longest.FundsEndAge {
			longest = alt
		}
	}
	if longest != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Best Longevity: %s keeps funds until age %d (%d years longer)",
			longest.ScenarioName, longest.FundsEndAge, longest.FundsEndAge-base.FundsEndAge))
	}

	// Fully funded without delaying retirement
	if base.ReadinessScore < 100 {
		for _, alt := range compSet.AlternativeResults {
			if alt.ReadinessScore == 100 && alt.RetirementAgeDiff <= 0 {
				recommendations = append(recommendations, fmt.Sprintf(
					"Fully Funded: %s covers income to life expectancy without retiring later", alt.ScenarioName))
				break
			}
		}
	}

	// Largest legacy
	richest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalAssets.GreaterThan(richest.FinalAssets) {
			richest = alt
		}
	}
	if richest != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Largest Legacy: %s leaves RM%s more at the end of the projection",
			richest.ScenarioName, richest.FinalAssets.Sub(base.FinalAssets).StringFixed(0)))
	}

	return recommendations
}
