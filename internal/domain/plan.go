package domain

import (
	"github.com/shopspring/decimal"
)

// PlanInputs holds the base retirement assumptions for a client.
// Rates are percentages (3 means 3%) and may be negative.
type PlanInputs struct {
	CurrentAge           int             `yaml:"current_age" json:"currentAge"`
	TargetRetirementAge  int             `yaml:"target_retirement_age" json:"targetRetirementAge"`
	LifeExpectancy       int             `yaml:"life_expectancy" json:"lifeExpectancy"`
	DesiredAnnualIncome  decimal.Decimal `yaml:"desired_annual_income" json:"desiredAnnualIncome"`
	InflationRate        decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	PostRetirementReturn decimal.Decimal `yaml:"post_retirement_return" json:"postRetirementReturn"`
}

// HorizonEndAge is the last age a projection covers: five years past life
// expectancy or twenty years past retirement, whichever is later.
func (p PlanInputs) HorizonEndAge() int {
	end := p.LifeExpectancy + 5
	if alt := p.TargetRetirementAge + 20; alt > end {
		end = alt
	}
	return end
}

// YearsToRetirement returns the accumulation length, never negative.
func (p PlanInputs) YearsToRetirement() int {
	if p.TargetRetirementAge <= p.CurrentAge {
		return 0
	}
	return p.TargetRetirementAge - p.CurrentAge
}

// AssetKind classifies a retirement account
type AssetKind string

const (
	AssetEPF        AssetKind = "epf"
	AssetPRS        AssetKind = "prs"
	AssetInvestment AssetKind = "investment"
	AssetOther      AssetKind = "other"
)

// Valid reports whether k is a known asset kind
func (k AssetKind) Valid() bool {
	switch k {
	case AssetEPF, AssetPRS, AssetInvestment, AssetOther:
		return true
	}
	return false
}

// Asset is a single retirement account owned by a client profile
type Asset struct {
	ID                  string          `yaml:"id" json:"id"`
	Name                string          `yaml:"name" json:"name"`
	Kind                AssetKind       `yaml:"kind" json:"kind"`
	CurrentValue        decimal.Decimal `yaml:"current_value" json:"currentValue"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthlyContribution"`
	HistoricalReturn    decimal.Decimal `yaml:"historical_return" json:"historicalReturn"`
	CanEdit             bool            `yaml:"can_edit" json:"canEdit"`
}

// ClientProfile owns the assets a plan is projected over
type ClientProfile struct {
	ID     string  `yaml:"id" json:"id"`
	Name   string  `yaml:"name" json:"name"`
	Assets []Asset `yaml:"assets" json:"assets"`
}

// CopyAssets returns an independent copy of the asset list
func CopyAssets(assets []Asset) []Asset {
	if assets == nil {
		return nil
	}
	out := make([]Asset, len(assets))
	copy(out, assets)
	return out
}

// DeepCopy returns a copy of the profile that shares no slices with the original
func (c *ClientProfile) DeepCopy() *ClientProfile {
	if c == nil {
		return nil
	}
	return &ClientProfile{
		ID:     c.ID,
		Name:   c.Name,
		Assets: CopyAssets(c.Assets),
	}
}

// Equal compares plans by value
func (p PlanInputs) Equal(o PlanInputs) bool {
	return p.CurrentAge == o.CurrentAge &&
		p.TargetRetirementAge == o.TargetRetirementAge &&
		p.LifeExpectancy == o.LifeExpectancy &&
		p.DesiredAnnualIncome.Equal(o.DesiredAnnualIncome) &&
		p.InflationRate.Equal(o.InflationRate) &&
		p.PostRetirementReturn.Equal(o.PostRetirementReturn)
}

// FindAsset returns the index of the asset with the given id, or -1
func (c *ClientProfile) FindAsset(id string) int {
	for i, a := range c.Assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}
