package finance

import "github.com/money/backend/internal/domain/shared"

// EventRegistry maps stored event type names to concrete event types
type EventRegistry interface {
	Register(eventType string, eventInstance shared.DomainEvent)
}

// RegisterEvents registers every event variant of the finance aggregates
func RegisterEvents(r EventRegistry) {
	r.Register(EventTypeExpenseTemplateCreated, &ExpenseTemplateCreatedEvent{})
	r.Register(EventTypeExpenseTemplateAmountChanged, &ExpenseTemplateAmountChangedEvent{})
	r.Register(EventTypeExpenseTemplateDescriptionChanged, &ExpenseTemplateDescriptionChangedEvent{})
	r.Register(EventTypeExpenseTemplateCategoryChanged, &ExpenseTemplateCategoryChangedEvent{})
	r.Register(EventTypeExpenseTemplateFixedChanged, &ExpenseTemplateFixedChangedEvent{})
	r.Register(EventTypeExpenseTemplateDeleted, &ExpenseTemplateDeletedEvent{})

	r.Register(EventTypeOutcomeCreated, &OutcomeCreatedEvent{})
	r.Register(EventTypeOutcomeCategoryAdded, &OutcomeCategoryAddedEvent{})
	r.Register(EventTypeOutcomeAmountChanged, &OutcomeAmountChangedEvent{})
	r.Register(EventTypeOutcomeDescriptionChanged, &OutcomeDescriptionChangedEvent{})
	r.Register(EventTypeOutcomeWhenChanged, &OutcomeWhenChangedEvent{})
	r.Register(EventTypeOutcomeDeleted, &OutcomeDeletedEvent{})

	r.Register(EventTypeCategoryCreated, &CategoryCreatedEvent{})
	r.Register(EventTypeCategoryRenamed, &CategoryRenamedEvent{})
	r.Register(EventTypeCategoryColorChanged, &CategoryColorChangedEvent{})
	r.Register(EventTypeCategoryDescriptionChanged, &CategoryDescriptionChangedEvent{})
	r.Register(EventTypeCategoryDeleted, &CategoryDeletedEvent{})
}

// OutcomeEventTypes lists the event types the outcome projection consumes
func OutcomeEventTypes() []string {
	return []string{
		EventTypeOutcomeCreated,
		EventTypeOutcomeCategoryAdded,
		EventTypeOutcomeAmountChanged,
		EventTypeOutcomeDescriptionChanged,
		EventTypeOutcomeWhenChanged,
		EventTypeOutcomeDeleted,
	}
}

// CategoryEventTypes lists all category event types
func CategoryEventTypes() []string {
	return []string{
		EventTypeCategoryCreated,
		EventTypeCategoryRenamed,
		EventTypeCategoryColorChanged,
		EventTypeCategoryDescriptionChanged,
		EventTypeCategoryDeleted,
	}
}

// ExpenseTemplateEventTypes lists all expense template event types
func ExpenseTemplateEventTypes() []string {
	return []string{
		EventTypeExpenseTemplateCreated,
		EventTypeExpenseTemplateAmountChanged,
		EventTypeExpenseTemplateDescriptionChanged,
		EventTypeExpenseTemplateCategoryChanged,
		EventTypeExpenseTemplateFixedChanged,
		EventTypeExpenseTemplateDeleted,
	}
}
