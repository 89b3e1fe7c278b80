package output

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is everything a formatter renders for one scenario
type Report struct {
	ClientName  string
	Scenario    *domain.Scenario
	Result      *domain.ProjectionResult
	Assumptions []string
	GeneratedAt time.Time
}

// NewReport bundles an evaluated scenario for formatting
func NewReport(client domain.ClientProfile, s *domain.Scenario, r *domain.ProjectionResult, now time.Time) *Report {
	return &Report{
		ClientName:  client.Name,
		Scenario:    s,
		Result:      r,
		Assumptions: Assumptions(s, client.Assets),
		GeneratedAt: now,
	}
}

// Summary holds the headline figures shown at the top of every report
type Summary struct {
	ReadinessScore     int
	FundsEndAge        int
	RetirementAge      int
	LifeExpectancy     int
	AssetsAtRetirement decimal.Decimal
	PeakAssets         decimal.Decimal
	FinalAssets        decimal.Decimal
	FirstYearIncome    decimal.Decimal
	ShortfallYears     int
}

// Summarize derives the headline figures from the report's projection
func (r *Report) Summarize() Summary {
	res := r.Result
	s := Summary{
		ReadinessScore: res.ReadinessScore,
		FundsEndAge:    res.FundsEndAge,
		RetirementAge:  res.RetirementAge,
		LifeExpectancy: r.Scenario.Plan.LifeExpectancy,
		PeakAssets:     res.PeakAssets(),
		FinalAssets:    res.FinalAssets(),
	}
	for _, y := range res.Projections {
		if !y.IsRetired() {
			s.AssetsAtRetirement = y.TotalAssets
			continue
		}
		if s.FirstYearIncome.IsZero() {
			s.FirstYearIncome = y.AnnualIncome
		}
		if y.Status == domain.StatusCritical {
			s.ShortfallYears++
		}
	}
	return s
}

// Verdict turns a readiness score into a one-line reading
func Verdict(score int) string {
	switch {
	case score >= 100:
		return "On track: savings cover retirement through life expectancy"
	case score >= 75:
		return "Close: a modest change should close the gap"
	case score >= 50:
		return "At risk: savings run out well before life expectancy"
	default:
		return "Off track: significant changes are needed"
	}
}

// Export is the document written by the export command
type Export struct {
	Scenario       *domain.Scenario          `json:"scenario"`
	Projections    []domain.YearlyProjection `json:"projections"`
	ReadinessScore int                       `json:"readinessScore"`
	FundsEndAge    int                       `json:"fundsEndAge"`
	PlannerNotes   string                    `json:"plannerNotes"`
	ExportedAt     time.Time                 `json:"exportedAt"`
}

// NewExport builds the export document for a report
func NewExport(r *Report) Export {
	return Export{
		Scenario:       r.Scenario,
		Projections:    r.Result.Projections,
		ReadinessScore: r.Result.ReadinessScore,
		FundsEndAge:    r.Result.FundsEndAge,
		PlannerNotes:   r.Scenario.Notes,
		ExportedAt:     r.GeneratedAt.UTC(),
	}
}

// DecodeExport reads a previously exported document
func DecodeExport(data []byte) (*Export, error) {
	var e Export
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to decode export: %w", err)
	}
	if e.Scenario == nil {
		return nil, fmt.Errorf("export has no scenario")
	}
	return &e, nil
}

// FormatCurrency formats a decimal as ringgit with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-RM" + amount.Abs().StringFixed(2)
	}
	return "RM" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }
