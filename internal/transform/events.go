package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrEventNotFound is returned when a lump-sum event id is not in the overlay
var ErrEventNotFound = errors.New("lump sum event not found")

// EventUpdate changes a single field of a lump-sum event. Each field has its
// own concrete type so a value of the wrong kind cannot be assigned.
type EventUpdate interface {
	// Field names the event field the update writes.
	Field() string
	apply(e *domain.LumpSumEvent) error
}

// SetEventAge moves an event to another age
type SetEventAge struct{ Age int }

func (u SetEventAge) Field() string { return "year" }

func (u SetEventAge) apply(e *domain.LumpSumEvent) error {
	if u.Age < 0 {
		return fmt.Errorf("age must be non-negative, got %d", u.Age)
	}
	e.Age = u.Age
	return nil
}

// SetEventAmount changes an event's amount
type SetEventAmount struct{ Amount decimal.Decimal }

func (u SetEventAmount) Field() string { return "amount" }

func (u SetEventAmount) apply(e *domain.LumpSumEvent) error {
	if u.Amount.IsNegative() {
		return fmt.Errorf("amount must be non-negative, got %s", u.Amount)
	}
	e.Amount = u.Amount
	return nil
}

// SetEventType changes whether an event adds or removes money
type SetEventType struct{ Type domain.EventType }

func (u SetEventType) Field() string { return "type" }

func (u SetEventType) apply(e *domain.LumpSumEvent) error {
	if !u.Type.Valid() {
		return fmt.Errorf("unknown event type %q", u.Type)
	}
	e.Type = u.Type
	return nil
}

// SetEventDescription changes an event's free-text label
type SetEventDescription struct{ Description string }

func (u SetEventDescription) Field() string { return "description" }

func (u SetEventDescription) apply(e *domain.LumpSumEvent) error {
	e.Description = u.Description
	return nil
}

// UpdateLumpSumEvent returns a copy of overlay with update applied to the
// event identified by id. The original overlay is not modified.
func UpdateLumpSumEvent(overlay domain.ScenarioInputs, id string, update EventUpdate) (domain.ScenarioInputs, error) {
	i := overlay.FindEvent(id)
	if i < 0 {
		return overlay, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	if update == nil {
		return overlay, fmt.Errorf("update for event %s is nil", id)
	}

	out := overlay.DeepCopy()
	if err := update.apply(&out.LumpSumEvents[i]); err != nil {
		return overlay, fmt.Errorf("event %s %s: %w", id, update.Field(), err)
	}
	return out, nil
}

// AddLumpSum schedules a one-time deposit, withdrawal or asset sale.
type AddLumpSum struct {
	Event domain.LumpSumEvent
}

// NewAddLumpSum creates an AddLumpSum with a fresh event id
func NewAddLumpSum(age int, amount decimal.Decimal, eventType domain.EventType, description string) *AddLumpSum {
	return &AddLumpSum{Event: domain.LumpSumEvent{
		ID:          uuid.NewString(),
		Age:         age,
		Amount:      amount,
		Type:        eventType,
		Description: description,
	}}
}

func (al *AddLumpSum) Name() string {
	return "add_lump_sum"
}

func (al *AddLumpSum) Description() string {
	label := strings.ReplaceAll(string(al.Event.Type), "_", " ")
	if al.Event.Description != "" {
		return fmt.Sprintf("%s of %s at age %d (%s)", label, al.Event.Amount.StringFixed(2), al.Event.Age, al.Event.Description)
	}
	return fmt.Sprintf("%s of %s at age %d", label, al.Event.Amount.StringFixed(2), al.Event.Age)
}

func (al *AddLumpSum) Validate(base *domain.Scenario) error {
	if err := requireBase(al.Name(), base); err != nil {
		return err
	}
	if !al.Event.Type.Valid() {
		return NewTransformError(al.Name(), "validate", fmt.Sprintf("unknown event type %q", al.Event.Type), nil)
	}
	if al.Event.Amount.IsNegative() {
		return NewTransformError(al.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", al.Event.Amount), nil)
	}
	if al.Event.Age < 0 {
		return NewTransformError(al.Name(), "validate", fmt.Sprintf("age must be non-negative, got %d", al.Event.Age), nil)
	}
	if al.Event.ID != "" && base.Overlay.FindEvent(al.Event.ID) >= 0 {
		return NewTransformError(al.Name(), "validate", fmt.Sprintf("event %s already exists", al.Event.ID), nil)
	}
	return nil
}

func (al *AddLumpSum) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	event := al.Event
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	modified.Overlay.LumpSumEvents = append(modified.Overlay.LumpSumEvents, event)
	return modified, nil
}

// RemoveLumpSum deletes a scheduled event by id.
type RemoveLumpSum struct {
	EventID string
}

func (rl *RemoveLumpSum) Name() string {
	return "remove_lump_sum"
}

func (rl *RemoveLumpSum) Description() string {
	return fmt.Sprintf("Remove lump sum %s", rl.EventID)
}

func (rl *RemoveLumpSum) Validate(base *domain.Scenario) error {
	if err := requireBase(rl.Name(), base); err != nil {
		return err
	}
	if base.Overlay.FindEvent(rl.EventID) < 0 {
		return NewTransformError(rl.Name(), "validate", "no such event", fmt.Errorf("%w: %s", ErrEventNotFound, rl.EventID))
	}
	return nil
}

func (rl *RemoveLumpSum) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	events := modified.Overlay.LumpSumEvents[:0]
	for _, e := range modified.Overlay.LumpSumEvents {
		if e.ID != rl.EventID {
			events = append(events, e)
		}
	}
	modified.Overlay.LumpSumEvents = events
	return modified, nil
}

// UpdateLumpSum applies typed field updates to a scheduled event.
type UpdateLumpSum struct {
	EventID string
	Updates []EventUpdate
}

func (ul *UpdateLumpSum) Name() string {
	return "update_lump_sum"
}

func (ul *UpdateLumpSum) Description() string {
	fields := make([]string, 0, len(ul.Updates))
	for _, u := range ul.Updates {
		if u != nil {
			fields = append(fields, u.Field())
		}
	}
	return fmt.Sprintf("Update %s of lump sum %s", strings.Join(fields, ", "), ul.EventID)
}

func (ul *UpdateLumpSum) Validate(base *domain.Scenario) error {
	if err := requireBase(ul.Name(), base); err != nil {
		return err
	}
	if len(ul.Updates) == 0 {
		return NewTransformError(ul.Name(), "validate", "no updates given", nil)
	}
	if base.Overlay.FindEvent(ul.EventID) < 0 {
		return NewTransformError(ul.Name(), "validate", "no such event", fmt.Errorf("%w: %s", ErrEventNotFound, ul.EventID))
	}
	return nil
}

func (ul *UpdateLumpSum) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	overlay := modified.Overlay
	for _, u := range ul.Updates {
		next, err := UpdateLumpSumEvent(overlay, ul.EventID, u)
		if err != nil {
			return nil, NewTransformError(ul.Name(), "apply", "update rejected", err)
		}
		overlay = next
	}
	modified.Overlay = overlay
	return modified, nil
}
