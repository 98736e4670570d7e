package finance

import (
	"fmt"

	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
)

// ExpenseTemplateState is the state derived from an expense template's history
type ExpenseTemplateState struct {
	Created     bool
	Amount      valueobject.Price
	Description string
	CategoryKey shared.Key
	IsFixed     bool
	IsDeleted   bool
}

// ExpenseTemplate is a reusable preset for recording recurring outcomes
type ExpenseTemplate struct {
	shared.BaseAggregateRoot
	state ExpenseTemplateState
}

// NewExpenseTemplate creates a new expense template
func NewExpenseTemplate(amount valueobject.Price, description string, categoryKey shared.Key, isFixed bool) (*ExpenseTemplate, error) {
	if err := requireCategory(categoryKey); err != nil {
		return nil, err
	}
	if amount.Currency() == "" {
		return nil, shared.NewValidationError("amount currency is required")
	}

	t := &ExpenseTemplate{BaseAggregateRoot: shared.NewBaseAggregateRoot(shared.NewKey(AggregateTypeExpenseTemplate))}
	if err := t.Raise(t, NewExpenseTemplateCreatedEvent(t.Key(), amount, description, categoryKey, isFixed)); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadExpenseTemplate reconstructs an expense template from its stored history
func LoadExpenseTemplate(key shared.Key, history []shared.DomainEvent) (*ExpenseTemplate, error) {
	t := &ExpenseTemplate{BaseAggregateRoot: shared.NewBaseAggregateRoot(key)}
	if err := t.Replay(t, history); err != nil {
		return nil, err
	}
	return t, nil
}

// State returns a copy of the current state
func (t *ExpenseTemplate) State() ExpenseTemplateState {
	return t.state
}

// ApplyEvent implements shared.EventApplier
func (t *ExpenseTemplate) ApplyEvent(event shared.DomainEvent) error {
	next, err := applyExpenseTemplate(t.state, event)
	if err != nil {
		return err
	}
	t.state = next
	return nil
}

func applyExpenseTemplate(s ExpenseTemplateState, event shared.DomainEvent) (ExpenseTemplateState, error) {
	if _, ok := event.(*ExpenseTemplateCreatedEvent); !ok && !s.Created {
		return s, shared.NewCorruptHistoryError(fmt.Sprintf("%s before %s", event.EventType(), EventTypeExpenseTemplateCreated))
	}

	switch e := event.(type) {
	case *ExpenseTemplateCreatedEvent:
		if s.Created {
			return s, shared.NewCorruptHistoryError("expense template created twice")
		}
		s.Created = true
		s.Amount = e.Amount
		s.Description = e.Description
		s.CategoryKey = e.CategoryKey
		s.IsFixed = e.IsFixed
	case *ExpenseTemplateAmountChangedEvent:
		s.Amount = e.NewValue
	case *ExpenseTemplateDescriptionChangedEvent:
		s.Description = e.Description
	case *ExpenseTemplateCategoryChangedEvent:
		s.CategoryKey = e.CategoryKey
	case *ExpenseTemplateFixedChangedEvent:
		s.IsFixed = e.IsFixed
	case *ExpenseTemplateDeletedEvent:
		s.IsDeleted = true
	default:
		return s, shared.NewCorruptHistoryError(fmt.Sprintf("unknown expense template event %s", event.EventType()))
	}
	return s, nil
}

func (t *ExpenseTemplate) ensureNotDeleted() error {
	if t.state.IsDeleted {
		return shared.NewDomainError(shared.CodeAlreadyDeleted, fmt.Sprintf("expense template %s is deleted", t.Key()))
	}
	return nil
}

// ChangeAmount sets a new amount
func (t *ExpenseTemplate) ChangeAmount(amount valueobject.Price) error {
	if err := t.ensureNotDeleted(); err != nil {
		return err
	}
	return t.Raise(t, NewExpenseTemplateAmountChangedEvent(t.Key(), t.state.Amount, amount))
}

// ChangeDescription sets a new description
func (t *ExpenseTemplate) ChangeDescription(description string) error {
	if err := t.ensureNotDeleted(); err != nil {
		return err
	}
	return t.Raise(t, NewExpenseTemplateDescriptionChangedEvent(t.Key(), description))
}

// ChangeCategory moves the template to another category
func (t *ExpenseTemplate) ChangeCategory(categoryKey shared.Key) error {
	if err := t.ensureNotDeleted(); err != nil {
		return err
	}
	if err := requireCategory(categoryKey); err != nil {
		return err
	}
	return t.Raise(t, NewExpenseTemplateCategoryChangedEvent(t.Key(), categoryKey))
}

// ChangeFixed switches whether the template creates fixed expenses.
// Requesting the current value fails with ErrNoOp.
func (t *ExpenseTemplate) ChangeFixed(isFixed bool) error {
	if err := t.ensureNotDeleted(); err != nil {
		return err
	}
	if t.state.IsFixed == isFixed {
		return shared.NewDomainError(shared.CodeNoOp, fmt.Sprintf("expense template is_fixed is already %t", isFixed))
	}
	return t.Raise(t, NewExpenseTemplateFixedChangedEvent(t.Key(), isFixed))
}

// Delete marks the template as deleted
func (t *ExpenseTemplate) Delete() error {
	if err := t.ensureNotDeleted(); err != nil {
		return err
	}
	return t.Raise(t, NewExpenseTemplateDeletedEvent(t.Key()))
}

func requireCategory(categoryKey shared.Key) error {
	if categoryKey.IsEmpty() {
		return shared.NewValidationError("category key is required")
	}
	if categoryKey.Type != AggregateTypeCategory {
		return shared.NewValidationError(fmt.Sprintf("key %s is not a category", categoryKey))
	}
	return nil
}
