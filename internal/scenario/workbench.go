// Package scenario holds the planner's scenario workbench: one editable
// working scenario plus the list of saved snapshots it can be switched to.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/transform"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned for an unknown scenario or asset id
	ErrNotFound = errors.New("not found")
	// ErrLastScenario is returned when deleting the only remaining scenario
	ErrLastScenario = errors.New("cannot delete the last remaining scenario")
	// ErrAssetLocked is returned when changing the contribution of a read-only asset
	ErrAssetLocked = errors.New("asset contribution cannot be edited")
)

// State describes the working scenario relative to its saved snapshot
type State string

const (
	StateSaved   State = "saved"
	StateEditing State = "editing"
)

// Evaluator projects and scores a scenario. *calculation.Engine implements it.
type Evaluator interface {
	Evaluate(ctx context.Context, scenario *domain.Scenario, assets []domain.Asset) (*domain.ProjectionResult, error)
}

// Option configures a Workbench
type Option func(*Workbench)

// WithClock overrides the time source used for SavedAt
func WithClock(now func() time.Time) Option {
	return func(w *Workbench) { w.now = now }
}

// WithIDGenerator overrides how new scenario ids are minted
func WithIDGenerator(newID func() string) Option {
	return func(w *Workbench) { w.newID = newID }
}

// Workbench is the scenario persistence state machine. Edits change only the
// working tuple (plan, overlay, notes); Save copies it into the active saved
// entry and Load replaces it, discarding unsaved edits.
//
// A Workbench is not safe for concurrent use.
type Workbench struct {
	evaluator Evaluator
	client    domain.ClientProfile
	basePlan  domain.PlanInputs

	saved    []domain.SavedScenario
	activeID string
	working  domain.Scenario

	now   func() time.Time
	newID func() string
}

// New creates a workbench for a client with a single saved scenario built
// from the base plan.
func New(ctx context.Context, evaluator Evaluator, client domain.ClientProfile, basePlan domain.PlanInputs, opts ...Option) (*Workbench, error) {
	w := newWorkbench(evaluator, client, basePlan, opts)
	if _, err := w.New(ctx, domain.BaseScenarioName); err != nil {
		return nil, err
	}
	return w, nil
}

// Restore rebuilds a workbench from previously saved scenarios and loads
// the one identified by activeID (or the first when activeID is unknown).
func Restore(evaluator Evaluator, client domain.ClientProfile, basePlan domain.PlanInputs, saved []domain.SavedScenario, activeID string, opts ...Option) (*Workbench, error) {
	if len(saved) == 0 {
		return nil, fmt.Errorf("restore requires at least one saved scenario")
	}
	w := newWorkbench(evaluator, client, basePlan, opts)
	w.saved = make([]domain.SavedScenario, len(saved))
	for i, s := range saved {
		w.saved[i] = copySaved(s)
	}
	if w.index(activeID) < 0 {
		activeID = w.saved[0].ID
	}
	if err := w.Load(activeID); err != nil {
		return nil, err
	}
	return w, nil
}

func newWorkbench(evaluator Evaluator, client domain.ClientProfile, basePlan domain.PlanInputs, opts []Option) *Workbench {
	w := &Workbench{
		evaluator: evaluator,
		client:    *client.DeepCopy(),
		basePlan:  basePlan,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func copySaved(s domain.SavedScenario) domain.SavedScenario {
	s.ScenarioInputs = s.ScenarioInputs.DeepCopy()
	return s
}

func (w *Workbench) index(id string) int {
	for i, s := range w.saved {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// BasePlan returns the plan new scenarios start from
func (w *Workbench) BasePlan() domain.PlanInputs {
	return w.basePlan
}

// Client returns a copy of the client profile
func (w *Workbench) Client() domain.ClientProfile {
	return *w.client.DeepCopy()
}

// ActiveID returns the id of the scenario being edited
func (w *Workbench) ActiveID() string {
	return w.activeID
}

// Working returns a copy of the working scenario
func (w *Workbench) Working() *domain.Scenario {
	return w.working.DeepCopy()
}

// Scenarios returns copies of the saved scenarios in creation order
func (w *Workbench) Scenarios() []domain.SavedScenario {
	out := make([]domain.SavedScenario, len(w.saved))
	for i, s := range w.saved {
		out[i] = copySaved(s)
	}
	return out
}

// Get returns a copy of a saved scenario
func (w *Workbench) Get(id string) (domain.SavedScenario, error) {
	i := w.index(id)
	if i < 0 {
		return domain.SavedScenario{}, fmt.Errorf("scenario %s: %w", id, ErrNotFound)
	}
	return copySaved(w.saved[i]), nil
}

// State reports whether the working scenario has unsaved edits
func (w *Workbench) State() State {
	i := w.index(w.activeID)
	if i < 0 {
		return StateEditing
	}
	s := w.saved[i]
	if s.Name == w.working.Name &&
		s.PlannerNotes == w.working.Notes &&
		s.PlanInputs.Equal(w.working.Plan) &&
		s.ScenarioInputs.Equal(w.working.Overlay) {
		return StateSaved
	}
	return StateEditing
}

// Project evaluates the working scenario live
func (w *Workbench) Project(ctx context.Context) (*domain.ProjectionResult, error) {
	return w.evaluator.Evaluate(ctx, w.working.DeepCopy(), w.client.Assets)
}

// Save stores the working scenario under the active id together with its
// readiness score as of now.
func (w *Workbench) Save(ctx context.Context) (domain.SavedScenario, error) {
	i := w.index(w.activeID)
	if i < 0 {
		return domain.SavedScenario{}, fmt.Errorf("active scenario %s: %w", w.activeID, ErrNotFound)
	}

	result, err := w.Project(ctx)
	if err != nil {
		return domain.SavedScenario{}, fmt.Errorf("failed to score scenario %s: %w", w.working.Name, err)
	}

	w.saved[i] = domain.SavedScenario{
		ID:             w.activeID,
		Name:           w.working.Name,
		PlanInputs:     w.working.Plan,
		ScenarioInputs: w.working.Overlay.DeepCopy(),
		ReadinessScore: result.ReadinessScore,
		FundsEndAge:    result.FundsEndAge,
		PlannerNotes:   w.working.Notes,
		SavedAt:        w.now(),
	}
	return copySaved(w.saved[i]), nil
}

// Load makes a saved scenario active, replacing the working tuple entirely.
// Unsaved edits are discarded.
func (w *Workbench) Load(id string) error {
	i := w.index(id)
	if i < 0 {
		return fmt.Errorf("scenario %s: %w", id, ErrNotFound)
	}
	w.activeID = id
	w.working = *w.saved[i].Scenario()
	return nil
}

// New creates a scenario from the client's base plan with an empty overlay,
// activates it and saves it.
func (w *Workbench) New(ctx context.Context, name string) (domain.SavedScenario, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Scenario %d", len(w.saved)+1)
	}
	return w.create(ctx, domain.Scenario{Name: name, Plan: w.basePlan})
}

// Clone copies a saved scenario (as of its last save) under a new name,
// activates the copy and saves it.
func (w *Workbench) Clone(ctx context.Context, id, name string) (domain.SavedScenario, error) {
	i := w.index(id)
	if i < 0 {
		return domain.SavedScenario{}, fmt.Errorf("scenario %s: %w", id, ErrNotFound)
	}
	s := *w.saved[i].Scenario()
	if name = strings.TrimSpace(name); name == "" {
		name = "Copy of " + s.Name
	}
	s.Name = name
	return w.create(ctx, s)
}

func (w *Workbench) create(ctx context.Context, s domain.Scenario) (domain.SavedScenario, error) {
	id := w.newID()
	previousID, previous := w.activeID, w.working

	w.saved = append(w.saved, domain.SavedScenario{ID: id, Name: s.Name})
	w.activeID = id
	w.working = s

	saved, err := w.Save(ctx)
	if err != nil {
		w.saved = w.saved[:len(w.saved)-1]
		w.activeID, w.working = previousID, previous
		return domain.SavedScenario{}, err
	}
	return saved, nil
}

// Delete removes a saved scenario. The last remaining scenario cannot be
// deleted. Deleting the active scenario loads the first remaining one.
func (w *Workbench) Delete(id string) error {
	i := w.index(id)
	if i < 0 {
		return fmt.Errorf("scenario %s: %w", id, ErrNotFound)
	}
	if len(w.saved) == 1 {
		return ErrLastScenario
	}

	w.saved = append(w.saved[:i], w.saved[i+1:]...)
	if id == w.activeID {
		return w.Load(w.saved[0].ID)
	}
	return nil
}

// Rename changes the working scenario's name. Like every edit it becomes
// part of the saved snapshot only on Save.
func (w *Workbench) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("scenario name cannot be empty")
	}
	w.working.Name = name
	return nil
}

// SetNotes replaces the planner notes of the working scenario
func (w *Workbench) SetNotes(notes string) {
	w.working.Notes = notes
}

// SetPlan replaces the working plan assumptions
func (w *Workbench) SetPlan(plan domain.PlanInputs) {
	w.working.Plan = plan
}

// SetOverlay replaces the working what-if overlay
func (w *Workbench) SetOverlay(overlay domain.ScenarioInputs) {
	w.working.Overlay = overlay.DeepCopy()
}

// Apply runs transforms against the working scenario. On error the working
// scenario is left unchanged.
func (w *Workbench) Apply(transforms ...transform.ScenarioTransform) error {
	next, err := transform.ApplyTransforms(&w.working, transforms)
	if err != nil {
		return err
	}
	w.working = *next
	return nil
}

// UpdateEvent applies a typed field update to a lump sum of the working overlay
func (w *Workbench) UpdateEvent(eventID string, update transform.EventUpdate) error {
	overlay, err := transform.UpdateLumpSumEvent(w.working.Overlay, eventID, update)
	if err != nil {
		return err
	}
	w.working.Overlay = overlay
	return nil
}

// SetAssetContribution changes the monthly contribution of one of the
// client's assets. Only assets marked editable may change. Assets belong to
// the client, so the change applies to every scenario.
func (w *Workbench) SetAssetContribution(assetID string, monthly decimal.Decimal) error {
	i := w.client.FindAsset(assetID)
	if i < 0 {
		return fmt.Errorf("asset %s: %w", assetID, ErrNotFound)
	}
	if !w.client.Assets[i].CanEdit {
		return fmt.Errorf("asset %s: %w", w.client.Assets[i].Name, ErrAssetLocked)
	}
	if monthly.IsNegative() {
		return fmt.Errorf("monthly contribution must be non-negative, got %s", monthly)
	}
	w.client.Assets[i].MonthlyContribution = monthly
	return nil
}
