package report

import (
	"context"

	"github.com/money/backend/internal/domain/shared"
)

// OutcomeReadStore persists outcome rows.
// Find returns shared.ErrNotFound for a missing row and also returns
// deleted rows. The listing methods skip deleted rows.
type OutcomeReadStore interface {
	Save(ctx context.Context, view *OutcomeView) error
	Find(ctx context.Context, key shared.Key) (*OutcomeView, error)
	Delete(ctx context.Context, key shared.Key) error
	// FindByMonth returns rows whose When falls in the month, ordered by When
	FindByMonth(ctx context.Context, month Month) ([]OutcomeView, error)
	// FindByCategoryAndMonth returns rows related to the category in any position
	FindByCategoryAndMonth(ctx context.Context, categoryKey shared.Key, month Month) ([]OutcomeView, error)
	// ListMonths returns distinct months having at least one row, oldest first
	ListMonths(ctx context.Context) ([]Month, error)
	Clear(ctx context.Context) error
}

// CategoryReadStore persists category rows
type CategoryReadStore interface {
	Save(ctx context.Context, view *CategoryView) error
	Find(ctx context.Context, key shared.Key) (*CategoryView, error)
	Delete(ctx context.Context, key shared.Key) error
	// FindAll returns rows ordered by name; deleted rows are included only on request
	FindAll(ctx context.Context, includeDeleted bool) ([]CategoryView, error)
	Clear(ctx context.Context) error
}

// ExpenseTemplateReadStore persists expense template rows
type ExpenseTemplateReadStore interface {
	Save(ctx context.Context, view *ExpenseTemplateView) error
	Find(ctx context.Context, key shared.Key) (*ExpenseTemplateView, error)
	Delete(ctx context.Context, key shared.Key) error
	// FindAll returns rows that are not deleted
	FindAll(ctx context.Context) ([]ExpenseTemplateView, error)
	Clear(ctx context.Context) error
}
