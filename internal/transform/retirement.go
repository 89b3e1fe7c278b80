package transform

import (
	"fmt"

	"github.com/rgehrsitz/readiness/internal/domain"
)

// PostponeRetirement delays the target retirement age by a number of years.
// This is useful for exploring "work a few more years" scenarios.
type PostponeRetirement struct {
	Years int // Years to postpone (negative retires earlier)
}

func (pr *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pr *PostponeRetirement) Description() string {
	if pr.Years < 0 {
		return fmt.Sprintf("Retire %d years earlier", -pr.Years)
	}
	return fmt.Sprintf("Postpone retirement by %d years", pr.Years)
}

func (pr *PostponeRetirement) Validate(base *domain.Scenario) error {
	if err := requireBase(pr.Name(), base); err != nil {
		return err
	}
	if base.Plan.TargetRetirementAge+pr.Years < 0 {
		return NewTransformError(pr.Name(), "validate",
			fmt.Sprintf("retirement age would become %d", base.Plan.TargetRetirementAge+pr.Years), nil)
	}
	return nil
}

func (pr *PostponeRetirement) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.TargetRetirementAge += pr.Years
	return modified, nil
}

// SetRetirementAge sets the target retirement age to an absolute value.
// Unlike PostponeRetirement which is relative, this sets an exact age.
type SetRetirementAge struct {
	Age int
}

func (sra *SetRetirementAge) Name() string {
	return "set_retirement_age"
}

func (sra *SetRetirementAge) Description() string {
	return fmt.Sprintf("Retire at age %d", sra.Age)
}

func (sra *SetRetirementAge) Validate(base *domain.Scenario) error {
	if sra.Age < 0 {
		return NewTransformError(sra.Name(), "validate", fmt.Sprintf("age must be non-negative, got %d", sra.Age), nil)
	}
	return requireBase(sra.Name(), base)
}

func (sra *SetRetirementAge) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.TargetRetirementAge = sra.Age
	return modified, nil
}

// SetLifeExpectancy changes the age the plan must fund income to.
type SetLifeExpectancy struct {
	Age int
}

func (sle *SetLifeExpectancy) Name() string {
	return "set_life_expectancy"
}

func (sle *SetLifeExpectancy) Description() string {
	return fmt.Sprintf("Plan for a life expectancy of %d", sle.Age)
}

func (sle *SetLifeExpectancy) Validate(base *domain.Scenario) error {
	if sle.Age <= 0 {
		return NewTransformError(sle.Name(), "validate", fmt.Sprintf("age must be positive, got %d", sle.Age), nil)
	}
	return requireBase(sle.Name(), base)
}

func (sle *SetLifeExpectancy) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Plan.LifeExpectancy = sle.Age
	return modified, nil
}
