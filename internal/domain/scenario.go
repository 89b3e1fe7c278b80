package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType is the kind of a one-off lump sum
type EventType string

const (
	EventDeposit    EventType = "deposit"
	EventWithdrawal EventType = "withdrawal"
	// EventSellAsset reduces the aggregate balance exactly like a withdrawal.
	// No individual asset balance is touched.
	EventSellAsset EventType = "sell_asset"
)

// Valid reports whether t is one of the known event types
func (t EventType) Valid() bool {
	switch t {
	case EventDeposit, EventWithdrawal, EventSellAsset:
		return true
	}
	return false
}

// Sign returns +1 for inflows and -1 for outflows
func (t EventType) Sign() int64 {
	if t == EventDeposit {
		return 1
	}
	return -1
}

// LumpSumEvent is a one-time deposit or withdrawal applied at a given age
type LumpSumEvent struct {
	ID          string          `yaml:"id" json:"id"`
	Age         int             `yaml:"age" json:"year"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Type        EventType       `yaml:"type" json:"type"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
}

// SignedAmount returns the effect of the event on the aggregate balance
func (e LumpSumEvent) SignedAmount() decimal.Decimal {
	if e.Type == EventDeposit {
		return e.Amount
	}
	return e.Amount.Neg()
}

// ScenarioInputs is the planner's what-if overlay on top of a base plan
type ScenarioInputs struct {
	AdditionalMonthlySavings   decimal.Decimal `yaml:"additional_monthly_savings" json:"additionalMonthlySavings"`
	InvestmentReturnAdjustment decimal.Decimal `yaml:"investment_return_adjustment" json:"investmentReturnAdjustment"`
	LumpSumEvents              []LumpSumEvent  `yaml:"lump_sum_events,omitempty" json:"lumpSumEvents"`
}

// DeepCopy returns an overlay that shares no slices with the original
func (s ScenarioInputs) DeepCopy() ScenarioInputs {
	out := s
	if s.LumpSumEvents != nil {
		out.LumpSumEvents = make([]LumpSumEvent, len(s.LumpSumEvents))
		copy(out.LumpSumEvents, s.LumpSumEvents)
	}
	return out
}

// Equal compares overlays by value. Event order matters.
func (s ScenarioInputs) Equal(o ScenarioInputs) bool {
	if !s.AdditionalMonthlySavings.Equal(o.AdditionalMonthlySavings) ||
		!s.InvestmentReturnAdjustment.Equal(o.InvestmentReturnAdjustment) ||
		len(s.LumpSumEvents) != len(o.LumpSumEvents) {
		return false
	}
	for i, e := range s.LumpSumEvents {
		f := o.LumpSumEvents[i]
		if e.ID != f.ID || e.Age != f.Age || !e.Amount.Equal(f.Amount) || e.Type != f.Type || e.Description != f.Description {
			return false
		}
	}
	return true
}

// EventsAt returns the lump sums scheduled at age
func (s ScenarioInputs) EventsAt(age int) []LumpSumEvent {
	var events []LumpSumEvent
	for _, e := range s.LumpSumEvents {
		if e.Age == age {
			events = append(events, e)
		}
	}
	return events
}

// FindEvent returns the index of the event with the given id, or -1
func (s ScenarioInputs) FindEvent(id string) int {
	for i, e := range s.LumpSumEvents {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Scenario is the working tuple a planner edits: base plan, overlay and notes
type Scenario struct {
	Name    string         `yaml:"name" json:"name"`
	Plan    PlanInputs     `yaml:"plan" json:"planInputs"`
	Overlay ScenarioInputs `yaml:"overlay" json:"scenarioInputs"`
	Notes   string         `yaml:"notes,omitempty" json:"plannerNotes"`
}

// DeepCopy creates a deep copy of the scenario
func (s *Scenario) DeepCopy() *Scenario {
	if s == nil {
		return nil
	}
	return &Scenario{
		Name:    s.Name,
		Plan:    s.Plan,
		Overlay: s.Overlay.DeepCopy(),
		Notes:   s.Notes,
	}
}

// SavedScenario is a named snapshot of a scenario as of its last save
type SavedScenario struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	PlanInputs     PlanInputs     `json:"planInputs"`
	ScenarioInputs ScenarioInputs `json:"scenarioInputs"`
	ReadinessScore int            `json:"readinessScore"`
	FundsEndAge    int            `json:"fundsEndAge"`
	PlannerNotes   string         `json:"plannerNotes"`
	SavedAt        time.Time      `json:"savedAt"`
}

// Scenario rebuilds the working tuple stored in the snapshot
func (s SavedScenario) Scenario() *Scenario {
	return &Scenario{
		Name:    s.Name,
		Plan:    s.PlanInputs,
		Overlay: s.ScenarioInputs.DeepCopy(),
		Notes:   s.PlannerNotes,
	}
}
