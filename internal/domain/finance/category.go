package finance

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/money/backend/internal/domain/shared"
)

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// CategoryState is the state derived from a category's history
type CategoryState struct {
	Created     bool
	Name        string
	Color       string
	Description string
	IsDeleted   bool
}

// Category groups outcomes and expense templates
type Category struct {
	shared.BaseAggregateRoot
	state CategoryState
}

// NewCategory creates a new category with a name and a #RRGGBB (or #AARRGGBB) color
func NewCategory(name, color string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("category name cannot be empty")
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}

	c := &Category{BaseAggregateRoot: shared.NewBaseAggregateRoot(shared.NewKey(AggregateTypeCategory))}
	if err := c.Raise(c, NewCategoryCreatedEvent(c.Key(), name, color)); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadCategory reconstructs a category from its stored history
func LoadCategory(key shared.Key, history []shared.DomainEvent) (*Category, error) {
	c := &Category{BaseAggregateRoot: shared.NewBaseAggregateRoot(key)}
	if err := c.Replay(c, history); err != nil {
		return nil, err
	}
	return c, nil
}

// State returns a copy of the current state
func (c *Category) State() CategoryState {
	return c.state
}

// ApplyEvent implements shared.EventApplier
func (c *Category) ApplyEvent(event shared.DomainEvent) error {
	next, err := applyCategory(c.state, event)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

func applyCategory(s CategoryState, event shared.DomainEvent) (CategoryState, error) {
	if _, ok := event.(*CategoryCreatedEvent); !ok && !s.Created {
		return s, shared.NewCorruptHistoryError(fmt.Sprintf("%s before %s", event.EventType(), EventTypeCategoryCreated))
	}

	switch e := event.(type) {
	case *CategoryCreatedEvent:
		if s.Created {
			return s, shared.NewCorruptHistoryError("category created twice")
		}
		s.Created = true
		s.Name = e.Name
		s.Color = e.Color
	case *CategoryRenamedEvent:
		s.Name = e.NewName
	case *CategoryColorChangedEvent:
		s.Color = e.Color
	case *CategoryDescriptionChangedEvent:
		s.Description = e.Description
	case *CategoryDeletedEvent:
		s.IsDeleted = true
	default:
		return s, shared.NewCorruptHistoryError(fmt.Sprintf("unknown category event %s", event.EventType()))
	}
	return s, nil
}

func (c *Category) ensureNotDeleted() error {
	if c.state.IsDeleted {
		return shared.NewDomainError(shared.CodeAlreadyDeleted, fmt.Sprintf("category %s is deleted", c.Key()))
	}
	return nil
}

// Rename changes the category name. The current name fails with ErrNoOp.
func (c *Category) Rename(name string) error {
	if err := c.ensureNotDeleted(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("category name cannot be empty")
	}
	if name == c.state.Name {
		return shared.NewDomainError(shared.CodeNoOp, fmt.Sprintf("category is already named %q", name))
	}
	return c.Raise(c, NewCategoryRenamedEvent(c.Key(), c.state.Name, name))
}

// ChangeColor sets a new color
func (c *Category) ChangeColor(color string) error {
	if err := c.ensureNotDeleted(); err != nil {
		return err
	}
	if err := validateColor(color); err != nil {
		return err
	}
	return c.Raise(c, NewCategoryColorChangedEvent(c.Key(), color))
}

// ChangeDescription sets a new description
func (c *Category) ChangeDescription(description string) error {
	if err := c.ensureNotDeleted(); err != nil {
		return err
	}
	return c.Raise(c, NewCategoryDescriptionChangedEvent(c.Key(), description))
}

// Delete marks the category as deleted
func (c *Category) Delete() error {
	if err := c.ensureNotDeleted(); err != nil {
		return err
	}
	return c.Raise(c, NewCategoryDeletedEvent(c.Key()))
}

func validateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return shared.NewValidationError(fmt.Sprintf("invalid color %q, expected #RRGGBB", color))
	}
	return nil
}
