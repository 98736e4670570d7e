package finance

import (
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeExpenseTemplate = "ExpenseTemplate"

// Event type constants
const (
	EventTypeExpenseTemplateCreated            = "ExpenseTemplateCreated"
	EventTypeExpenseTemplateAmountChanged      = "ExpenseTemplateAmountChanged"
	EventTypeExpenseTemplateDescriptionChanged = "ExpenseTemplateDescriptionChanged"
	EventTypeExpenseTemplateCategoryChanged    = "ExpenseTemplateCategoryChanged"
	EventTypeExpenseTemplateFixedChanged       = "ExpenseTemplateFixedChanged"
	EventTypeExpenseTemplateDeleted            = "ExpenseTemplateDeleted"
)

// ExpenseTemplateCreatedEvent is published when a new expense template is created
type ExpenseTemplateCreatedEvent struct {
	shared.BaseDomainEvent
	Amount      valueobject.Price `json:"amount"`
	Description string            `json:"description"`
	CategoryKey shared.Key        `json:"category_key"`
	IsFixed     bool              `json:"is_fixed"`
}

func NewExpenseTemplateCreatedEvent(key shared.Key, amount valueobject.Price, description string, categoryKey shared.Key, isFixed bool) *ExpenseTemplateCreatedEvent {
	return &ExpenseTemplateCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseTemplateCreated, key),
		Amount:          amount,
		Description:     description,
		CategoryKey:     categoryKey,
		IsFixed:         isFixed,
	}
}

// ExpenseTemplateAmountChangedEvent carries both values for audit and undo
type ExpenseTemplateAmountChangedEvent struct {
	shared.BaseDomainEvent
	OldValue valueobject.Price `json:"old_value"`
	NewValue valueobject.Price `json:"new_value"`
}

func NewExpenseTemplateAmountChangedEvent(key shared.Key, oldValue, newValue valueobject.Price) *ExpenseTemplateAmountChangedEvent {
	return &ExpenseTemplateAmountChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseTemplateAmountChanged, key),
		OldValue:        oldValue,
		NewValue:        newValue,
	}
}

type ExpenseTemplateDescriptionChangedEvent struct {
	shared.BaseDomainEvent
	Description string `json:"description"`
}

func NewExpenseTemplateDescriptionChangedEvent(key shared.Key, description string) *ExpenseTemplateDescriptionChangedEvent {
	return &ExpenseTemplateDescriptionChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseTemplateDescriptionChanged, key),
		Description:     description,
	}
}

type ExpenseTemplateCategoryChangedEvent struct {
	shared.BaseDomainEvent
	CategoryKey shared.Key `json:"category_key"`
}

func NewExpenseTemplateCategoryChangedEvent(key, categoryKey shared.Key) *ExpenseTemplateCategoryChangedEvent {
	return &ExpenseTemplateCategoryChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseTemplateCategoryChanged, key),
		CategoryKey:     categoryKey,
	}
}

type ExpenseTemplateFixedChangedEvent struct {
	shared.BaseDomainEvent
	IsFixed bool `json:"is_fixed"`
}

func NewExpenseTemplateFixedChangedEvent(key shared.Key, isFixed bool) *ExpenseTemplateFixedChangedEvent {
	return &ExpenseTemplateFixedChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseTemplateFixedChanged, key),
		IsFixed:         isFixed,
	}
}

type ExpenseTemplateDeletedEvent struct {
	shared.BaseDomainEvent
}

func NewExpenseTemplateDeletedEvent(key shared.Key) *ExpenseTemplateDeletedEvent {
	return &ExpenseTemplateDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseTemplateDeleted, key),
	}
}
