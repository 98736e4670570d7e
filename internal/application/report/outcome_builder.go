package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// OutcomeBuilder maintains outcome rows and answers the month queries
type OutcomeBuilder struct {
	outcomes   report.OutcomeReadStore
	categories report.CategoryReadStore
	prices     valueobject.PriceFactory
	logger     *zap.Logger
}

// NewOutcomeBuilder creates the outcome projection. Empty months total zero
// in the factory currency.
func NewOutcomeBuilder(outcomes report.OutcomeReadStore, categories report.CategoryReadStore, prices valueobject.PriceFactory, logger *zap.Logger) *OutcomeBuilder {
	return &OutcomeBuilder{
		outcomes:   outcomes,
		categories: categories,
		prices:     prices,
		logger:     logger,
	}
}

func (b *OutcomeBuilder) HandlerName() string { return "outcome-projection" }

func (b *OutcomeBuilder) EventTypes() []string { return finance.OutcomeEventTypes() }

// Reset removes every outcome row
func (b *OutcomeBuilder) Reset(ctx context.Context) error {
	return b.outcomes.Clear(ctx)
}

// Handle applies one outcome event to its row
func (b *OutcomeBuilder) Handle(ctx context.Context, event shared.DomainEvent) error {
	seq := event.Sequence()
	key := event.AggregateKey()

	if created, ok := event.(*finance.OutcomeCreatedEvent); ok {
		existing, err := b.outcomes.Find(ctx, key)
		switch {
		case err == nil && (existing.IsDeleted || stale(existing.Version, seq)):
			return nil
		case err != nil && !isNotFound(err):
			return err
		}
		return b.outcomes.Save(ctx, &report.OutcomeView{
			Key:          key,
			Amount:       created.Amount,
			When:         created.When,
			Description:  created.Description,
			CategoryKeys: []shared.Key{created.CategoryKey},
			Version:      seq,
		})
	}

	row, err := b.outcomes.Find(ctx, key)
	if isNotFound(err) {
		missingRow(ctx, b.logger, b.HandlerName(), event)
		return nil
	}
	if err != nil {
		return err
	}
	if row.IsDeleted || stale(row.Version, seq) {
		return nil
	}

	switch e := event.(type) {
	case *finance.OutcomeCategoryAddedEvent:
		if !containsKey(row.CategoryKeys, e.CategoryKey) {
			row.CategoryKeys = append(row.CategoryKeys, e.CategoryKey)
		}
	case *finance.OutcomeAmountChangedEvent:
		row.Amount = e.NewValue
	case *finance.OutcomeDescriptionChangedEvent:
		row.Description = e.Description
	case *finance.OutcomeWhenChangedEvent:
		row.When = e.When
	case *finance.OutcomeDeletedEvent:
		row.IsDeleted = true
	default:
		return fmt.Errorf("%s cannot handle %s", b.HandlerName(), event.EventType())
	}
	row.Version = bump(row.Version, seq)
	return b.outcomes.Save(ctx, row)
}

func (b *OutcomeBuilder) QueryTypes() []string {
	return []string{
		QueryListMonthWithOutcome,
		QueryGetTotalMonthOutcome,
		QueryListMonthCategoryWithOutcome,
		QueryListMonthOutcomes,
		QueryListCategoryOutcomes,
	}
}

// Ask answers the outcome queries
func (b *OutcomeBuilder) Ask(ctx context.Context, query shared.Query) (any, error) {
	switch q := query.(type) {
	case ListMonthWithOutcome:
		return b.outcomes.ListMonths(ctx)
	case GetTotalMonthOutcome:
		return b.monthTotal(ctx, q.Month)
	case ListMonthCategoryWithOutcome:
		return b.monthCategories(ctx, q.Month)
	case ListMonthOutcomes:
		rows, err := b.outcomes.FindByMonth(ctx, q.Month)
		if err != nil {
			return nil, err
		}
		return overviews(rows), nil
	case ListCategoryOutcomes:
		rows, err := b.outcomes.FindByCategoryAndMonth(ctx, q.CategoryKey, q.Month)
		if err != nil {
			return nil, err
		}
		return overviews(rows), nil
	default:
		return nil, shared.NewNoHandlerError("query", query.QueryType())
	}
}

func (b *OutcomeBuilder) monthTotal(ctx context.Context, month report.Month) (valueobject.Price, error) {
	rows, err := b.outcomes.FindByMonth(ctx, month)
	if err != nil {
		return valueobject.Price{}, err
	}
	amounts := make([]valueobject.Price, len(rows))
	for i, r := range rows {
		amounts[i] = r.Amount
	}
	return b.prices.Sum(amounts...)
}

// monthCategories groups the month's outcomes by primary category.
// Entries are ordered by category name, then key.
func (b *OutcomeBuilder) monthCategories(ctx context.Context, month report.Month) ([]report.CategoryWithAmount, error) {
	rows, err := b.outcomes.FindByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	totals := make(map[shared.Key]valueobject.Price)
	for _, r := range rows {
		primary := r.PrimaryCategory()
		total, seen := totals[primary]
		if !seen {
			totals[primary] = r.Amount
			continue
		}
		sum, err := total.Add(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("total of %s in %s: %w", primary, month, err)
		}
		totals[primary] = sum
	}

	result := make([]report.CategoryWithAmount, 0, len(totals))
	for key, total := range totals {
		entry := report.CategoryWithAmount{Key: key, Total: total}
		category, err := b.categories.Find(ctx, key)
		switch {
		case err == nil:
			entry.Name = category.Name
			entry.Color = category.Color
		case !isNotFound(err):
			return nil, err
		}
		result = append(result, entry)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].Key.ID.String() < result[j].Key.ID.String()
	})
	return result, nil
}

func overviews(rows []report.OutcomeView) []report.OutcomeOverview {
	out := make([]report.OutcomeOverview, len(rows))
	for i, r := range rows {
		out[i] = r.Overview()
	}
	return out
}

func containsKey(keys []shared.Key, key shared.Key) bool {
	for _, k := range keys {
		if k.Equals(key) {
			return true
		}
	}
	return false
}
