package domain

import (
	"github.com/shopspring/decimal"
)

// Status classifies a projected year
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// YearlyProjection is one age of a projected asset trajectory
type YearlyProjection struct {
	Age            int             `json:"age"`
	TotalAssets    decimal.Decimal `json:"totalAssets"`
	AnnualIncome   decimal.Decimal `json:"annualIncome"`
	AnnualExpenses decimal.Decimal `json:"annualExpenses"`
	Status         Status          `json:"status"`
}

// IsRetired reports whether the year draws retirement income
func (y YearlyProjection) IsRetired() bool {
	return y.AnnualIncome.IsPositive()
}

// IsDepleted reports whether no assets remain at the end of the year
func (y YearlyProjection) IsDepleted() bool {
	return !y.TotalAssets.IsPositive()
}

// ProjectionResult bundles a projection with the facts derived from it
type ProjectionResult struct {
	Scenario       string             `json:"scenario"`
	Projections    []YearlyProjection `json:"projections"`
	ReadinessScore int                `json:"readinessScore"`
	FundsEndAge    int                `json:"fundsEndAge"`
	RetirementAge  int                `json:"retirementAge"`
	Warnings       []Warning          `json:"warnings,omitempty"`
}

// PeakAssets returns the largest balance in the projection
func (r *ProjectionResult) PeakAssets() decimal.Decimal {
	peak := decimal.Zero
	for _, y := range r.Projections {
		if y.TotalAssets.GreaterThan(peak) {
			peak = y.TotalAssets
		}
	}
	return peak
}

// AssetsAtAge returns the end-of-year balance at age, or false if the age is not projected
func (r *ProjectionResult) AssetsAtAge(age int) (decimal.Decimal, bool) {
	for _, y := range r.Projections {
		if y.Age == age {
			return y.TotalAssets, true
		}
	}
	return decimal.Zero, false
}

// FinalAssets returns the balance of the last projected year
func (r *ProjectionResult) FinalAssets() decimal.Decimal {
	if len(r.Projections) == 0 {
		return decimal.Zero
	}
	return r.Projections[len(r.Projections)-1].TotalAssets
}

// Warning flags an implausible input without blocking the projection
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return w.Field + ": " + w.Message
}
