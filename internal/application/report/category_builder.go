package report

import (
	"context"
	"fmt"

	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryBuilder maintains category rows. Deleted categories stay as rows
// flagged IsDeleted so old outcomes can still show their names.
type CategoryBuilder struct {
	categories report.CategoryReadStore
	logger     *zap.Logger
}

// NewCategoryBuilder creates the category projection
func NewCategoryBuilder(categories report.CategoryReadStore, logger *zap.Logger) *CategoryBuilder {
	return &CategoryBuilder{categories: categories, logger: logger}
}

func (b *CategoryBuilder) HandlerName() string { return "category-projection" }

func (b *CategoryBuilder) EventTypes() []string { return finance.CategoryEventTypes() }

// Reset removes every category row
func (b *CategoryBuilder) Reset(ctx context.Context) error {
	return b.categories.Clear(ctx)
}

// Handle applies one category event to its row
func (b *CategoryBuilder) Handle(ctx context.Context, event shared.DomainEvent) error {
	seq := event.Sequence()
	key := event.AggregateKey()

	row, err := b.categories.Find(ctx, key)
	switch {
	case isNotFound(err):
		created, ok := event.(*finance.CategoryCreatedEvent)
		if !ok {
			missingRow(ctx, b.logger, b.HandlerName(), event)
			return nil
		}
		return b.categories.Save(ctx, &report.CategoryView{
			Key:     key,
			Name:    created.Name,
			Color:   created.Color,
			Version: seq,
		})
	case err != nil:
		return err
	case stale(row.Version, seq):
		return nil
	}

	switch e := event.(type) {
	case *finance.CategoryCreatedEvent:
		row.Name = e.Name
		row.Color = e.Color
	case *finance.CategoryRenamedEvent:
		row.Name = e.NewName
	case *finance.CategoryColorChangedEvent:
		row.Color = e.Color
	case *finance.CategoryDescriptionChangedEvent:
		row.Description = e.Description
	case *finance.CategoryDeletedEvent:
		row.IsDeleted = true
	default:
		return fmt.Errorf("%s cannot handle %s", b.HandlerName(), event.EventType())
	}
	row.Version = bump(row.Version, seq)
	return b.categories.Save(ctx, row)
}

func (b *CategoryBuilder) QueryTypes() []string {
	return []string{QueryListCategories, QueryGetCategory}
}

// Ask answers the category queries
func (b *CategoryBuilder) Ask(ctx context.Context, query shared.Query) (any, error) {
	switch q := query.(type) {
	case ListCategories:
		return b.categories.FindAll(ctx, q.IncludeDeleted)
	case GetCategory:
		view, err := b.categories.Find(ctx, q.CategoryKey)
		if err != nil {
			return nil, err
		}
		return *view, nil
	default:
		return nil, shared.NewNoHandlerError("query", query.QueryType())
	}
}
