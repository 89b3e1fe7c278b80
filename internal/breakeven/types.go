package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to solve for
type OptimizationTarget string

const (
	OptimizeSavings       OptimizationTarget = "savings"
	OptimizeRetirementAge OptimizationTarget = "retirement_age"
	OptimizeAll           OptimizationTarget = "all"
)

// ParseTarget maps a CLI or API name to an optimization target
func ParseTarget(name string) (OptimizationTarget, error) {
	switch OptimizationTarget(name) {
	case OptimizeSavings, OptimizeRetirementAge, OptimizeAll:
		return OptimizationTarget(name), nil
	}
	return "", &SolverError{
		Operation: "parse_target",
		Message:   fmt.Sprintf("unknown target %q (want savings, retirement_age or all)", name),
	}
}

// Constraints bound the search. Nil bounds are derived from the plan.
type Constraints struct {
	// Readiness score to reach, 1-100
	TargetScore int `json:"target_score"`

	// Extra monthly savings range
	MinMonthlySavings *decimal.Decimal `json:"min_monthly_savings,omitempty"`
	MaxMonthlySavings *decimal.Decimal `json:"max_monthly_savings,omitempty"`

	// Retirement age range (defaults: current age to life expectancy)
	MinRetirementAge *int `json:"min_retirement_age,omitempty"`
	MaxRetirementAge *int `json:"max_retirement_age,omitempty"`
}

// DefaultConstraints searches savings from zero up to RM20,000 a month
func DefaultConstraints(targetScore int) Constraints {
	minSavings := decimal.Zero
	maxSavings := defaultMaxSavings
	return Constraints{
		TargetScore:       targetScore,
		MinMonthlySavings: &minSavings,
		MaxMonthlySavings: &maxSavings,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.TargetScore < 1 || c.TargetScore > 100 {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   fmt.Sprintf("target score must be between 1 and 100, got %d", c.TargetScore),
		}
	}

	if c.MinMonthlySavings != nil && c.MinMonthlySavings.IsNegative() {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   "min_monthly_savings cannot be negative",
		}
	}
	if c.MinMonthlySavings != nil && c.MaxMonthlySavings != nil &&
		c.MinMonthlySavings.GreaterThan(*c.MaxMonthlySavings) {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   "min_monthly_savings cannot be greater than max_monthly_savings",
		}
	}

	if c.MinRetirementAge != nil && *c.MinRetirementAge < 0 {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   "min_retirement_age cannot be negative",
		}
	}
	if c.MinRetirementAge != nil && c.MaxRetirementAge != nil &&
		*c.MinRetirementAge > *c.MaxRetirementAge {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   "min_retirement_age cannot be greater than max_retirement_age",
		}
	}

	return nil
}

// OptimizationRequest defines the parameters for a solver run
type OptimizationRequest struct {
	BaseScenario  *domain.Scenario
	Assets        []domain.Asset
	Target        OptimizationTarget
	Constraints   Constraints
	MaxIterations int             // Maximum evaluations
	Tolerance     decimal.Decimal // Savings search stops once the bracket is this narrow
}

// OptimizationResult contains the outcome of a solver run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"-"`
	Scenario        string              `json:"scenario"`
	Target          OptimizationTarget  `json:"target"`
	TargetScore     int                 `json:"targetScore"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergenceInfo,omitempty"`

	// Solved parameter
	OptimalMonthlySavings *decimal.Decimal `json:"optimalMonthlySavings,omitempty"`
	OptimalRetirementAge  *int             `json:"optimalRetirementAge,omitempty"`

	// Outcome at the solved parameter (or at the bound when unreachable)
	ReadinessScore int             `json:"readinessScore"`
	FundsEndAge    int             `json:"fundsEndAge"`
	FinalAssets    decimal.Decimal `json:"finalAssets"`

	// Base scenario for comparison
	BaseReadinessScore int             `json:"baseReadinessScore"`
	BaseFundsEndAge    int             `json:"baseFundsEndAge"`
	BaseMonthlySavings decimal.Decimal `json:"baseMonthlySavings"`
	BaseRetirementAge  int             `json:"baseRetirementAge"`
}

// MultiDimensionalResult contains results when solving every target
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Savings precision
	MaxIterations int             // Maximum evaluations per target
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // RM1 a month
		MaxIterations: 60,
	}
}

// SolverError represents errors from the break-even solver
type SolverError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolverError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}
