package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// SweepParameter names an input varied by a sensitivity sweep
type SweepParameter string

const (
	SweepReturnAdjustment SweepParameter = "return_adjustment"
	SweepInflation        SweepParameter = "inflation"
	SweepMonthlySavings   SweepParameter = "monthly_savings"
	SweepRetirementAge    SweepParameter = "retirement_age"
)

// maxSweepPoints bounds a single sweep
const maxSweepPoints = 500

// SweepPoint is the outcome of one parameter value
type SweepPoint struct {
	Value          decimal.Decimal `json:"value"`
	ReadinessScore int             `json:"readinessScore"`
	FundsEndAge    int             `json:"fundsEndAge"`
	FinalAssets    decimal.Decimal `json:"finalAssets"`
}

// SweepResult is a sensitivity analysis over one parameter
type SweepResult struct {
	Scenario  string         `json:"scenario"`
	Parameter SweepParameter `json:"parameter"`
	Points    []SweepPoint   `json:"points"`
}

// Sweep evaluates the scenario for each value of parameter from..to in step
// increments. The base scenario is left untouched.
func (e *Engine) Sweep(
	ctx context.Context,
	scenario *domain.Scenario,
	assets []domain.Asset,
	parameter SweepParameter,
	from, to, step decimal.Decimal,
) (*SweepResult, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario cannot be nil")
	}
	if !step.IsPositive() {
		return nil, fmt.Errorf("sweep step must be positive, got %s", step)
	}
	if from.GreaterThan(to) {
		return nil, fmt.Errorf("sweep range is empty: %s > %s", from, to)
	}
	if n := to.Sub(from).Div(step).IntPart() + 1; n > maxSweepPoints {
		return nil, fmt.Errorf("sweep would evaluate %d points, limit is %d", n, maxSweepPoints)
	}

	result := &SweepResult{Scenario: scenario.Name, Parameter: parameter}
	for v := from; v.LessThanOrEqual(to); v = v.Add(step) {
		modified, err := applySweepValue(scenario, parameter, v)
		if err != nil {
			return nil, err
		}
		r, err := e.Evaluate(ctx, modified, assets)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s=%s: %w", parameter, v, err)
		}
		result.Points = append(result.Points, SweepPoint{
			Value:          v,
			ReadinessScore: r.ReadinessScore,
			FundsEndAge:    r.FundsEndAge,
			FinalAssets:    r.FinalAssets(),
		})
	}
	return result, nil
}

func applySweepValue(base *domain.Scenario, parameter SweepParameter, v decimal.Decimal) (*domain.Scenario, error) {
	s := base.DeepCopy()
	switch parameter {
	case SweepReturnAdjustment:
		s.Overlay.InvestmentReturnAdjustment = v
	case SweepInflation:
		s.Plan.InflationRate = v
	case SweepMonthlySavings:
		s.Overlay.AdditionalMonthlySavings = v
	case SweepRetirementAge:
		s.Plan.TargetRetirementAge = int(v.IntPart())
	default:
		return nil, fmt.Errorf("unknown sweep parameter: %s", parameter)
	}
	return s, nil
}
