// Package tuimsg holds the messages scenes send to the root model. Scenes
// never touch the workbench themselves.
package tuimsg

import (
	"github.com/rgehrsitz/readiness/internal/breakeven"
	"github.com/shopspring/decimal"
)

// Parameter names an editable value of the working scenario
type Parameter string

const (
	ParamRetirementAge        Parameter = "retirement_age"
	ParamLifeExpectancy       Parameter = "life_expectancy"
	ParamDesiredIncome        Parameter = "desired_income"
	ParamInflation            Parameter = "inflation"
	ParamPostRetirementReturn Parameter = "post_retirement_return"
	ParamExtraSavings         Parameter = "extra_savings"
	ParamReturnAdjustment     Parameter = "return_adjustment"
	ParamAssetContribution    Parameter = "asset_contribution"
)

// ScenarioSelectedMsg loads a saved scenario into the working slot
type ScenarioSelectedMsg struct {
	ID string
}

// ScenarioCreateMsg creates a scenario from the base plan
type ScenarioCreateMsg struct {
	Name string
}

// ScenarioCloneMsg copies a saved scenario
type ScenarioCloneMsg struct {
	ID string
}

// ScenarioDeleteMsg removes a saved scenario
type ScenarioDeleteMsg struct {
	ID string
}

// ParameterChangedMsg edits one value of the working scenario. AssetID is
// set only for ParamAssetContribution.
type ParameterChangedMsg struct {
	Parameter Parameter
	AssetID   string
	Value     decimal.Decimal
}

// ResetRequestedMsg discards unsaved edits
type ResetRequestedMsg struct{}

// CompareRequestedMsg compares the working scenario against templates
type CompareRequestedMsg struct {
	Templates []string
}

// OptimizeRequestedMsg runs the break-even solver on the working scenario
type OptimizeRequestedMsg struct {
	Target      breakeven.OptimizationTarget
	TargetScore int
}

// ErrorMsg displays an error
type ErrorMsg struct {
	Err error
}
