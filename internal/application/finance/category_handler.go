package finance

import (
	"context"

	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/shared"
)

// CategoryHandler executes the category commands
type CategoryHandler struct {
	repo *EventSourcedRepository
}

// NewCategoryHandler creates a new category command handler
func NewCategoryHandler(repo *EventSourcedRepository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

// CommandTypes implements shared.CommandHandler
func (h *CategoryHandler) CommandTypes() []string {
	return []string{
		CommandCreateCategory,
		CommandRenameCategory,
		CommandChangeCategoryColor,
		CommandChangeCategoryDescription,
		CommandDeleteCategory,
	}
}

// Handle implements shared.CommandHandler
func (h *CategoryHandler) Handle(ctx context.Context, cmd shared.Command) (shared.Key, error) {
	switch c := cmd.(type) {
	case CreateCategory:
		category, err := finance.NewCategory(c.Name, c.Color)
		if err != nil {
			return shared.Key{}, err
		}
		if c.Description != "" {
			if err := category.ChangeDescription(c.Description); err != nil {
				return shared.Key{}, err
			}
		}
		if err := h.repo.Save(ctx, category); err != nil {
			return shared.Key{}, err
		}
		return category.Key(), nil
	case RenameCategory:
		return h.update(ctx, c.CategoryKey, func(cat *finance.Category) error { return cat.Rename(c.Name) })
	case ChangeCategoryColor:
		return h.update(ctx, c.CategoryKey, func(cat *finance.Category) error { return cat.ChangeColor(c.Color) })
	case ChangeCategoryDescription:
		return h.update(ctx, c.CategoryKey, func(cat *finance.Category) error { return cat.ChangeDescription(c.Description) })
	case DeleteCategory:
		return h.update(ctx, c.CategoryKey, (*finance.Category).Delete)
	default:
		return shared.Key{}, shared.NewNoHandlerError("command", cmd.CommandType())
	}
}

func (h *CategoryHandler) update(ctx context.Context, key shared.Key, op func(*finance.Category) error) (shared.Key, error) {
	category, err := load(ctx, h.repo, key, finance.AggregateTypeCategory, finance.LoadCategory)
	if err != nil {
		return shared.Key{}, err
	}
	if err := op(category); err != nil {
		return shared.Key{}, err
	}
	if err := h.repo.Save(ctx, category); err != nil {
		return shared.Key{}, err
	}
	return category.Key(), nil
}
