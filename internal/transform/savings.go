package transform

import (
	"fmt"

	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// AddSavings increases the extra monthly savings on top of the client's
// regular contributions.
type AddSavings struct {
	Monthly decimal.Decimal
}

func (as *AddSavings) Name() string {
	return "add_savings"
}

func (as *AddSavings) Description() string {
	return fmt.Sprintf("Save an extra %s per month", as.Monthly.StringFixed(2))
}

func (as *AddSavings) Validate(base *domain.Scenario) error {
	if err := requireBase(as.Name(), base); err != nil {
		return err
	}
	if base.Overlay.AdditionalMonthlySavings.Add(as.Monthly).IsNegative() {
		return NewTransformError(as.Name(), "validate", "extra savings would become negative", nil)
	}
	return nil
}

func (as *AddSavings) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Overlay.AdditionalMonthlySavings = modified.Overlay.AdditionalMonthlySavings.Add(as.Monthly)
	return modified, nil
}

// SetSavings replaces the extra monthly savings.
type SetSavings struct {
	Monthly decimal.Decimal
}

func (ss *SetSavings) Name() string {
	return "set_savings"
}

func (ss *SetSavings) Description() string {
	return fmt.Sprintf("Set extra savings to %s per month", ss.Monthly.StringFixed(2))
}

func (ss *SetSavings) Validate(base *domain.Scenario) error {
	if ss.Monthly.IsNegative() {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("monthly savings must be non-negative, got %s", ss.Monthly), nil)
	}
	return requireBase(ss.Name(), base)
}

func (ss *SetSavings) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Overlay.AdditionalMonthlySavings = ss.Monthly
	return modified, nil
}
