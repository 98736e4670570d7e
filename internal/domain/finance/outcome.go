package finance

import (
	"fmt"
	"slices"
	"time"

	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
)

// OutcomeState is the state derived from an outcome's history.
// CategoryKeys[0] is the primary category.
type OutcomeState struct {
	Created      bool
	Amount       valueobject.Price
	Description  string
	When         time.Time
	CategoryKeys []shared.Key
	IsDeleted    bool
}

// HasCategory reports whether the outcome is related to the category
func (s OutcomeState) HasCategory(categoryKey shared.Key) bool {
	return slices.ContainsFunc(s.CategoryKeys, categoryKey.Equals)
}

// Outcome is an amount of money spent at a point in time, related to one
// or more categories
type Outcome struct {
	shared.BaseAggregateRoot
	state OutcomeState
}

// NewOutcome records a new outcome in its primary category
func NewOutcome(amount valueobject.Price, description string, when time.Time, categoryKey shared.Key) (*Outcome, error) {
	if err := requireCategory(categoryKey); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError(fmt.Sprintf("outcome amount must be positive, got %s", amount))
	}
	if when.IsZero() {
		return nil, shared.NewValidationError("outcome date is required")
	}

	o := &Outcome{BaseAggregateRoot: shared.NewBaseAggregateRoot(shared.NewKey(AggregateTypeOutcome))}
	if err := o.Raise(o, NewOutcomeCreatedEvent(o.Key(), amount, description, when.UTC(), categoryKey)); err != nil {
		return nil, err
	}
	return o, nil
}

// LoadOutcome reconstructs an outcome from its stored history
func LoadOutcome(key shared.Key, history []shared.DomainEvent) (*Outcome, error) {
	o := &Outcome{BaseAggregateRoot: shared.NewBaseAggregateRoot(key)}
	if err := o.Replay(o, history); err != nil {
		return nil, err
	}
	return o, nil
}

// State returns a copy of the current state
func (o *Outcome) State() OutcomeState {
	s := o.state
	s.CategoryKeys = slices.Clone(o.state.CategoryKeys)
	return s
}

// ApplyEvent implements shared.EventApplier
func (o *Outcome) ApplyEvent(event shared.DomainEvent) error {
	next, err := applyOutcome(o.state, event)
	if err != nil {
		return err
	}
	o.state = next
	return nil
}

func applyOutcome(s OutcomeState, event shared.DomainEvent) (OutcomeState, error) {
	if _, ok := event.(*OutcomeCreatedEvent); !ok && !s.Created {
		return s, shared.NewCorruptHistoryError(fmt.Sprintf("%s before %s", event.EventType(), EventTypeOutcomeCreated))
	}

	switch e := event.(type) {
	case *OutcomeCreatedEvent:
		if s.Created {
			return s, shared.NewCorruptHistoryError("outcome created twice")
		}
		s.Created = true
		s.Amount = e.Amount
		s.Description = e.Description
		s.When = e.When
		s.CategoryKeys = []shared.Key{e.CategoryKey}
	case *OutcomeCategoryAddedEvent:
		keys := make([]shared.Key, 0, len(s.CategoryKeys)+1)
		s.CategoryKeys = append(append(keys, s.CategoryKeys...), e.CategoryKey)
	case *OutcomeAmountChangedEvent:
		s.Amount = e.NewValue
	case *OutcomeDescriptionChangedEvent:
		s.Description = e.Description
	case *OutcomeWhenChangedEvent:
		s.When = e.When
	case *OutcomeDeletedEvent:
		s.IsDeleted = true
	default:
		return s, shared.NewCorruptHistoryError(fmt.Sprintf("unknown outcome event %s", event.EventType()))
	}
	return s, nil
}

func (o *Outcome) ensureNotDeleted() error {
	if o.state.IsDeleted {
		return shared.NewDomainError(shared.CodeAlreadyDeleted, fmt.Sprintf("outcome %s is deleted", o.Key()))
	}
	return nil
}

// AddCategory relates the outcome to another category.
// A category that is already related fails with ErrNoOp.
func (o *Outcome) AddCategory(categoryKey shared.Key) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if err := requireCategory(categoryKey); err != nil {
		return err
	}
	if o.state.HasCategory(categoryKey) {
		return shared.NewDomainError(shared.CodeNoOp, fmt.Sprintf("outcome already has category %s", categoryKey))
	}
	return o.Raise(o, NewOutcomeCategoryAddedEvent(o.Key(), categoryKey))
}

// ChangeAmount sets a new positive amount
func (o *Outcome) ChangeAmount(amount valueobject.Price) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return shared.NewValidationError(fmt.Sprintf("outcome amount must be positive, got %s", amount))
	}
	return o.Raise(o, NewOutcomeAmountChangedEvent(o.Key(), o.state.Amount, amount))
}

// ChangeDescription sets a new description
func (o *Outcome) ChangeDescription(description string) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	return o.Raise(o, NewOutcomeDescriptionChangedEvent(o.Key(), description))
}

// ChangeWhen moves the outcome to another date
func (o *Outcome) ChangeWhen(when time.Time) error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	if when.IsZero() {
		return shared.NewValidationError("outcome date is required")
	}
	return o.Raise(o, NewOutcomeWhenChangedEvent(o.Key(), when.UTC()))
}

// Delete marks the outcome as deleted
func (o *Outcome) Delete() error {
	if err := o.ensureNotDeleted(); err != nil {
		return err
	}
	return o.Raise(o, NewOutcomeDeletedEvent(o.Key()))
}
