package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/readiness/internal/calculation"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/transform"
	"github.com/shopspring/decimal"
)

// defaultMaxSavings caps the savings search when no bound is given
var defaultMaxSavings = decimal.NewFromInt(20000)

// Solver finds the smallest change to a scenario that reaches a target
// readiness score. Both searches rely on the score being non-decreasing in
// the solved parameter.
type Solver struct {
	CalcEngine *calculation.Engine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.BaseScenario == nil {
		return nil, &SolverError{Operation: "optimize", Message: "base scenario is required"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if !req.Tolerance.IsPositive() {
		req.Tolerance = s.Options.Tolerance
	}
	if !req.Tolerance.IsPositive() {
		req.Tolerance = DefaultSolverOptions().Tolerance
	}

	switch req.Target {
	case OptimizeSavings:
		return s.optimizeSavings(ctx, req)
	case OptimizeRetirementAge:
		return s.optimizeRetirementAge(ctx, req)
	default:
		return nil, &SolverError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// optimizeSavings finds the least extra monthly savings reaching the target
func (s *Solver) optimizeSavings(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	lo := decimal.Zero
	hi := defaultMaxSavings
	if req.Constraints.MinMonthlySavings != nil {
		lo = *req.Constraints.MinMonthlySavings
	}
	if req.Constraints.MaxMonthlySavings != nil {
		hi = *req.Constraints.MaxMonthlySavings
	}

	result, err := s.newResult(ctx, req)
	if err != nil {
		return nil, err
	}

	evaluate := func(savings decimal.Decimal) (*domain.ProjectionResult, error) {
		result.Iterations++
		return s.evaluate(ctx, req, "optimize_savings", &transform.SetSavings{Monthly: savings})
	}

	atLo, err := evaluate(lo)
	if err != nil {
		return nil, err
	}
	if atLo.ReadinessScore >= req.Constraints.TargetScore {
		result.setSavings(lo, atLo)
		result.Success = true
		result.ConvergenceInfo = "Target already met at the lower bound"
		return result, nil
	}

	atHi, err := evaluate(hi)
	if err != nil {
		return nil, err
	}
	if atHi.ReadinessScore < req.Constraints.TargetScore {
		result.setSavings(hi, atHi)
		result.ConvergenceInfo = fmt.Sprintf("Target score %d not reachable with savings up to RM%s",
			req.Constraints.TargetScore, hi.StringFixed(2))
		return result, nil
	}

	// Invariant: lo misses the target, hi reaches it.
	best := atHi
	for hi.Sub(lo).GreaterThan(req.Tolerance) {
		if result.Iterations >= req.MaxIterations {
			result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
			result.setSavings(hi, best)
			result.Success = true
			return result, nil
		}

		mid := lo.Add(hi).Div(decimal.NewFromInt(2))
		r, err := evaluate(mid)
		if err != nil {
			return nil, err
		}
		if r.ReadinessScore >= req.Constraints.TargetScore {
			hi, best = mid, r
		} else {
			lo = mid
		}
	}

	optimal := hi.RoundCeil(2)
	if !optimal.Equal(hi) {
		if best, err = evaluate(optimal); err != nil {
			return nil, err
		}
	}
	result.setSavings(optimal, best)
	result.Success = true
	result.ConvergenceInfo = fmt.Sprintf("Converged within RM%s", req.Tolerance.StringFixed(2))
	return result, nil
}

// optimizeRetirementAge finds the earliest retirement age reaching the target
func (s *Solver) optimizeRetirementAge(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	plan := req.BaseScenario.Plan
	lo := plan.CurrentAge
	hi := plan.LifeExpectancy
	if hi < lo {
		hi = lo
	}
	if req.Constraints.MinRetirementAge != nil {
		lo = *req.Constraints.MinRetirementAge
	}
	if req.Constraints.MaxRetirementAge != nil {
		hi = *req.Constraints.MaxRetirementAge
	}
	if lo > hi {
		return nil, &SolverError{
			Operation: "optimize_retirement_age",
			Message:   fmt.Sprintf("empty retirement age range %d-%d", lo, hi),
		}
	}

	result, err := s.newResult(ctx, req)
	if err != nil {
		return nil, err
	}

	evaluate := func(age int) (*domain.ProjectionResult, error) {
		result.Iterations++
		return s.evaluate(ctx, req, "optimize_retirement_age", &transform.SetRetirementAge{Age: age})
	}

	atHi, err := evaluate(hi)
	if err != nil {
		return nil, err
	}
	if atHi.ReadinessScore < req.Constraints.TargetScore {
		result.setRetirementAge(hi, atHi)
		result.ConvergenceInfo = fmt.Sprintf("Target score %d not reachable retiring as late as %d",
			req.Constraints.TargetScore, hi)
		return result, nil
	}

	// Search the first age in [lo, hi] that reaches the target.
	best := atHi
	for lo < hi {
		if result.Iterations >= req.MaxIterations {
			result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
			break
		}

		mid := lo + (hi-lo)/2
		r, err := evaluate(mid)
		if err != nil {
			return nil, err
		}
		if r.ReadinessScore >= req.Constraints.TargetScore {
			hi, best = mid, r
		} else {
			lo = mid + 1
		}
	}

	result.setRetirementAge(hi, best)
	result.Success = true
	if result.ConvergenceInfo == "" {
		result.ConvergenceInfo = "Binary search converged"
	}
	return result, nil
}

func (s *Solver) newResult(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	base, err := s.CalcEngine.Evaluate(ctx, req.BaseScenario, req.Assets)
	if err != nil {
		return nil, &SolverError{
			Operation: "optimize",
			Message:   "failed to evaluate base scenario",
			Cause:     err,
		}
	}
	return &OptimizationResult{
		Request:            req,
		Scenario:           req.BaseScenario.Name,
		Target:             req.Target,
		TargetScore:        req.Constraints.TargetScore,
		BaseReadinessScore: base.ReadinessScore,
		BaseFundsEndAge:    base.FundsEndAge,
		BaseMonthlySavings: req.BaseScenario.Overlay.AdditionalMonthlySavings,
		BaseRetirementAge:  req.BaseScenario.Plan.TargetRetirementAge,
	}, nil
}

func (s *Solver) evaluate(
	ctx context.Context,
	req OptimizationRequest,
	operation string,
	t transform.ScenarioTransform,
) (*domain.ProjectionResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	modified, err := transform.ApplyTransforms(req.BaseScenario, []transform.ScenarioTransform{t})
	if err != nil {
		return nil, &SolverError{
			Operation: operation,
			Message:   "failed to apply transform",
			Cause:     err,
		}
	}

	r, err := s.CalcEngine.Evaluate(ctx, modified, req.Assets)
	if err != nil {
		return nil, &SolverError{
			Operation: operation,
			Message:   "failed to evaluate scenario",
			Cause:     err,
		}
	}
	return r, nil
}

func (r *OptimizationResult) setSavings(savings decimal.Decimal, at *domain.ProjectionResult) {
	r.OptimalMonthlySavings = &savings
	r.setOutcome(at)
}

func (r *OptimizationResult) setRetirementAge(age int, at *domain.ProjectionResult) {
	r.OptimalRetirementAge = &age
	r.setOutcome(at)
}

func (r *OptimizationResult) setOutcome(at *domain.ProjectionResult) {
	r.ReadinessScore = at.ReadinessScore
	r.FundsEndAge = at.FundsEndAge
	r.FinalAssets = at.FinalAssets()
}
