package transform

import (
	"fmt"

	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustReturn shifts both the pre- and post-retirement return by a number
// of percentage points. Successive adjustments accumulate.
type AdjustReturn struct {
	Points decimal.Decimal // e.g. -1 for one point lower
}

func (ar *AdjustReturn) Name() string {
	return "adjust_return"
}

func (ar *AdjustReturn) Description() string {
	return fmt.Sprintf("Adjust investment returns by %s percentage points", signed(ar.Points))
}

func (ar *AdjustReturn) Validate(base *domain.Scenario) error {
	return requireBase(ar.Name(), base)
}

func (ar *AdjustReturn) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Overlay.InvestmentReturnAdjustment = modified.Overlay.InvestmentReturnAdjustment.Add(ar.Points)
	return modified, nil
}

// SetIncome replaces the desired first-year retirement income.
type SetIncome struct {
	Amount decimal.Decimal
}

func (si *SetIncome) Name() string {
	return "set_income"
}

func (si *SetIncome) Description() string {
	return fmt.Sprintf("Target retirement income of %s per year", si.Amount.StringFixed(2))
}

func (si *SetIncome) Validate(base *domain.Scenario) error {
	if si.Amount.IsNegative() {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("income must be non-negative, got %s", si.Amount), nil)
	}
	return requireBase(si.Name(), base)
}

func (si *SetIncome) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.DesiredAnnualIncome = si.Amount
	return modified, nil
}

// ScaleIncome multiplies the desired retirement income, e.g. 0.8 for a
// leaner lifestyle.
type ScaleIncome struct {
	Factor decimal.Decimal
}

func (si *ScaleIncome) Name() string {
	return "scale_income"
}

func (si *ScaleIncome) Description() string {
	return fmt.Sprintf("Scale retirement income to %s%%", si.Factor.Mul(decimal.NewFromInt(100)).StringFixed(0))
}

func (si *ScaleIncome) Validate(base *domain.Scenario) error {
	if si.Factor.IsNegative() {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", si.Factor), nil)
	}
	return requireBase(si.Name(), base)
}

func (si *ScaleIncome) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.DesiredAnnualIncome = modified.Plan.DesiredAnnualIncome.Mul(si.Factor).Round(2)
	return modified, nil
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.String()
	}
	return "+" + d.String()
}
