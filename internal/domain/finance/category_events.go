package finance

import (
	"github.com/money/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCategory = "Category"

// Event type constants
const (
	EventTypeCategoryCreated            = "CategoryCreated"
	EventTypeCategoryRenamed            = "CategoryRenamed"
	EventTypeCategoryColorChanged       = "CategoryColorChanged"
	EventTypeCategoryDescriptionChanged = "CategoryDescriptionChanged"
	EventTypeCategoryDeleted            = "CategoryDeleted"
)

// CategoryCreatedEvent is published when a new category is created
type CategoryCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	Color string `json:"color"`
}

func NewCategoryCreatedEvent(key shared.Key, name, color string) *CategoryCreatedEvent {
	return &CategoryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryCreated, key),
		Name:            name,
		Color:           color,
	}
}

// CategoryRenamedEvent is published when a category's name changes
type CategoryRenamedEvent struct {
	shared.BaseDomainEvent
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

func NewCategoryRenamedEvent(key shared.Key, oldName, newName string) *CategoryRenamedEvent {
	return &CategoryRenamedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryRenamed, key),
		OldName:         oldName,
		NewName:         newName,
	}
}

type CategoryColorChangedEvent struct {
	shared.BaseDomainEvent
	Color string `json:"color"`
}

func NewCategoryColorChangedEvent(key shared.Key, color string) *CategoryColorChangedEvent {
	return &CategoryColorChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryColorChanged, key),
		Color:           color,
	}
}

type CategoryDescriptionChangedEvent struct {
	shared.BaseDomainEvent
	Description string `json:"description"`
}

func NewCategoryDescriptionChangedEvent(key shared.Key, description string) *CategoryDescriptionChangedEvent {
	return &CategoryDescriptionChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryDescriptionChanged, key),
		Description:     description,
	}
}

type CategoryDeletedEvent struct {
	shared.BaseDomainEvent
}

func NewCategoryDeletedEvent(key shared.Key) *CategoryDeletedEvent {
	return &CategoryDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryDeleted, key),
	}
}
