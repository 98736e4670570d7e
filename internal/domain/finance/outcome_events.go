package finance

import (
	"time"

	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeOutcome = "Outcome"

// Event type constants
const (
	EventTypeOutcomeCreated            = "OutcomeCreated"
	EventTypeOutcomeCategoryAdded      = "OutcomeCategoryAdded"
	EventTypeOutcomeAmountChanged      = "OutcomeAmountChanged"
	EventTypeOutcomeDescriptionChanged = "OutcomeDescriptionChanged"
	EventTypeOutcomeWhenChanged        = "OutcomeWhenChanged"
	EventTypeOutcomeDeleted            = "OutcomeDeleted"
)

// OutcomeCreatedEvent is published when money is spent
type OutcomeCreatedEvent struct {
	shared.BaseDomainEvent
	Amount      valueobject.Price `json:"amount"`
	Description string            `json:"description"`
	When        time.Time         `json:"when"`
	CategoryKey shared.Key        `json:"category_key"`
}

func NewOutcomeCreatedEvent(key shared.Key, amount valueobject.Price, description string, when time.Time, categoryKey shared.Key) *OutcomeCreatedEvent {
	return &OutcomeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOutcomeCreated, key),
		Amount:          amount,
		Description:     description,
		When:            when,
		CategoryKey:     categoryKey,
	}
}

// OutcomeCategoryAddedEvent relates an outcome to one more category
type OutcomeCategoryAddedEvent struct {
	shared.BaseDomainEvent
	CategoryKey shared.Key `json:"category_key"`
}

func NewOutcomeCategoryAddedEvent(key, categoryKey shared.Key) *OutcomeCategoryAddedEvent {
	return &OutcomeCategoryAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOutcomeCategoryAdded, key),
		CategoryKey:     categoryKey,
	}
}

type OutcomeAmountChangedEvent struct {
	shared.BaseDomainEvent
	OldValue valueobject.Price `json:"old_value"`
	NewValue valueobject.Price `json:"new_value"`
}

func NewOutcomeAmountChangedEvent(key shared.Key, oldValue, newValue valueobject.Price) *OutcomeAmountChangedEvent {
	return &OutcomeAmountChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOutcomeAmountChanged, key),
		OldValue:        oldValue,
		NewValue:        newValue,
	}
}

type OutcomeDescriptionChangedEvent struct {
	shared.BaseDomainEvent
	Description string `json:"description"`
}

func NewOutcomeDescriptionChangedEvent(key shared.Key, description string) *OutcomeDescriptionChangedEvent {
	return &OutcomeDescriptionChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOutcomeDescriptionChanged, key),
		Description:     description,
	}
}

type OutcomeWhenChangedEvent struct {
	shared.BaseDomainEvent
	When time.Time `json:"when"`
}

func NewOutcomeWhenChangedEvent(key shared.Key, when time.Time) *OutcomeWhenChangedEvent {
	return &OutcomeWhenChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOutcomeWhenChanged, key),
		When:            when,
	}
}

type OutcomeDeletedEvent struct {
	shared.BaseDomainEvent
}

func NewOutcomeDeletedEvent(key shared.Key) *OutcomeDeletedEvent {
	return &OutcomeDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOutcomeDeleted, key),
	}
}
