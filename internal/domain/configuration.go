package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BaseScenarioName is used when a plan file declares no scenarios
const BaseScenarioName = "Base"

// Configuration is the content of a client plan file
type Configuration struct {
	Client    ClientProfile    `yaml:"client" json:"client"`
	Plan      PlanInputs       `yaml:"plan" json:"plan"`
	Scenarios []ScenarioConfig `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// ScenarioConfig declares a named scenario in a plan file. Plan fields left
// nil inherit the base plan.
type ScenarioConfig struct {
	Name                string           `yaml:"name" json:"name"`
	Overlay             ScenarioInputs   `yaml:"overlay" json:"overlay"`
	Notes               string           `yaml:"notes,omitempty" json:"notes,omitempty"`
	TargetRetirementAge *int             `yaml:"target_retirement_age,omitempty" json:"targetRetirementAge,omitempty"`
	LifeExpectancy      *int             `yaml:"life_expectancy,omitempty" json:"lifeExpectancy,omitempty"`
	DesiredAnnualIncome *decimal.Decimal `yaml:"desired_annual_income,omitempty" json:"desiredAnnualIncome,omitempty"`
}

// ScenarioNames lists the declared scenarios, or the implied base scenario
func (c *Configuration) ScenarioNames() []string {
	if len(c.Scenarios) == 0 {
		return []string{BaseScenarioName}
	}
	names := make([]string, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		names = append(names, s.Name)
	}
	return names
}

// BuildScenario resolves a scenario by name (case-insensitive) into a working
// tuple. An empty name selects the first scenario.
func (c *Configuration) BuildScenario(name string) (*Scenario, error) {
	if len(c.Scenarios) == 0 {
		if name != "" && !strings.EqualFold(name, BaseScenarioName) {
			return nil, fmt.Errorf("scenario %q not found", name)
		}
		return &Scenario{Name: BaseScenarioName, Plan: c.Plan}, nil
	}

	for _, sc := range c.Scenarios {
		if name != "" && !strings.EqualFold(sc.Name, name) {
			continue
		}
		plan := c.Plan
		if sc.TargetRetirementAge != nil {
			plan.TargetRetirementAge = *sc.TargetRetirementAge
		}
		if sc.LifeExpectancy != nil {
			plan.LifeExpectancy = *sc.LifeExpectancy
		}
		if sc.DesiredAnnualIncome != nil {
			plan.DesiredAnnualIncome = *sc.DesiredAnnualIncome
		}
		return &Scenario{
			Name:    sc.Name,
			Plan:    plan,
			Overlay: sc.Overlay.DeepCopy(),
			Notes:   sc.Notes,
		}, nil
	}
	return nil, fmt.Errorf("scenario %q not found", name)
}

// BuildScenarios resolves every declared scenario in order
func (c *Configuration) BuildScenarios() ([]*Scenario, error) {
	names := c.ScenarioNames()
	out := make([]*Scenario, 0, len(names))
	for _, n := range names {
		s, err := c.BuildScenario(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
