package report

import (
	"context"
	"fmt"

	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExpenseTemplateBuilder maintains expense template rows
type ExpenseTemplateBuilder struct {
	templates report.ExpenseTemplateReadStore
	logger    *zap.Logger
}

// NewExpenseTemplateBuilder creates the expense template projection
func NewExpenseTemplateBuilder(templates report.ExpenseTemplateReadStore, logger *zap.Logger) *ExpenseTemplateBuilder {
	return &ExpenseTemplateBuilder{templates: templates, logger: logger}
}

func (b *ExpenseTemplateBuilder) HandlerName() string { return "expense-template-projection" }

func (b *ExpenseTemplateBuilder) EventTypes() []string { return finance.ExpenseTemplateEventTypes() }

// Reset removes every template row
func (b *ExpenseTemplateBuilder) Reset(ctx context.Context) error {
	return b.templates.Clear(ctx)
}

// Handle applies one expense template event to its row
func (b *ExpenseTemplateBuilder) Handle(ctx context.Context, event shared.DomainEvent) error {
	seq := event.Sequence()
	key := event.AggregateKey()

	row, err := b.templates.Find(ctx, key)
	switch {
	case isNotFound(err):
		created, ok := event.(*finance.ExpenseTemplateCreatedEvent)
		if !ok {
			missingRow(ctx, b.logger, b.HandlerName(), event)
			return nil
		}
		return b.templates.Save(ctx, &report.ExpenseTemplateView{
			Key:         key,
			Amount:      created.Amount,
			Description: created.Description,
			CategoryKey: created.CategoryKey,
			IsFixed:     created.IsFixed,
			Version:     seq,
		})
	case err != nil:
		return err
	case row.IsDeleted || stale(row.Version, seq):
		return nil
	}

	switch e := event.(type) {
	case *finance.ExpenseTemplateCreatedEvent:
		return nil
	case *finance.ExpenseTemplateAmountChangedEvent:
		row.Amount = e.NewValue
	case *finance.ExpenseTemplateDescriptionChangedEvent:
		row.Description = e.Description
	case *finance.ExpenseTemplateCategoryChangedEvent:
		row.CategoryKey = e.CategoryKey
	case *finance.ExpenseTemplateFixedChangedEvent:
		row.IsFixed = e.IsFixed
	case *finance.ExpenseTemplateDeletedEvent:
		row.IsDeleted = true
	default:
		return fmt.Errorf("%s cannot handle %s", b.HandlerName(), event.EventType())
	}
	row.Version = bump(row.Version, seq)
	return b.templates.Save(ctx, row)
}

func (b *ExpenseTemplateBuilder) QueryTypes() []string {
	return []string{QueryListExpenseTemplates}
}

// Ask answers the expense template queries
func (b *ExpenseTemplateBuilder) Ask(ctx context.Context, query shared.Query) (any, error) {
	if _, ok := query.(ListExpenseTemplates); !ok {
		return nil, shared.NewNoHandlerError("query", query.QueryType())
	}
	return b.templates.FindAll(ctx)
}

var (
	_ Projection          = (*OutcomeBuilder)(nil)
	_ Projection          = (*CategoryBuilder)(nil)
	_ Projection          = (*ExpenseTemplateBuilder)(nil)
	_ shared.QueryHandler = (*OutcomeBuilder)(nil)
	_ shared.QueryHandler = (*CategoryBuilder)(nil)
	_ shared.QueryHandler = (*ExpenseTemplateBuilder)(nil)
)
