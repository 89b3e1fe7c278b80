package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/readiness/internal/domain"
)

// OptimizeMultiDimensional solves every target for the same score and
// collects the successful results.
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	baseScenario *domain.Scenario,
	assets []domain.Asset,
	constraints Constraints,
) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []OptimizationTarget{
		OptimizeSavings,
		OptimizeRetirementAge,
	}

	var results []OptimizationResult
	for _, target := range targets {
		req := OptimizationRequest{
			BaseScenario:  baseScenario,
			Assets:        assets,
			Target:        target,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			// Keep going with the other targets
			continue
		}
		if result != nil && result.Success {
			results = append(results, *result)
		}
	}

	if len(results) == 0 {
		return nil, &SolverError{
			Operation: "optimize_multi_dimensional",
			Message:   fmt.Sprintf("no target reaches a readiness score of %d within constraints", constraints.TargetScore),
		}
	}

	md := &MultiDimensionalResult{Results: results}
	md.Recommendations = generateRecommendations(md)
	return md, nil
}

// generateRecommendations phrases each solved target as a planner action
func generateRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string

	for _, r := range result.Results {
		if r.BaseReadinessScore >= r.TargetScore {
			recommendations = append(recommendations,
				fmt.Sprintf("The current plan already reaches a readiness score of %d", r.TargetScore))
			return recommendations
		}
	}

	for _, r := range result.Results {
		switch {
		case r.OptimalMonthlySavings != nil:
			extra := r.OptimalMonthlySavings.Sub(r.BaseMonthlySavings)
			recommendations = append(recommendations,
				fmt.Sprintf("Save an extra RM%s per month (RM%s in total) to reach a readiness score of %d",
					extra.StringFixed(2), r.OptimalMonthlySavings.StringFixed(2), r.ReadinessScore))
		case r.OptimalRetirementAge != nil:
			delay := *r.OptimalRetirementAge - r.BaseRetirementAge
			recommendations = append(recommendations,
				fmt.Sprintf("Retire at %d (%d years later than planned) to reach a readiness score of %d",
					*r.OptimalRetirementAge, delay, r.ReadinessScore))
		}
	}

	return recommendations
}
