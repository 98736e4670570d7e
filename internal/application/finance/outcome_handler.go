package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
)

// OutcomeHandler executes the outcome commands
type OutcomeHandler struct {
	repo *EventSourcedRepository
}

// NewOutcomeHandler creates a new outcome command handler
func NewOutcomeHandler(repo *EventSourcedRepository) *OutcomeHandler {
	return &OutcomeHandler{repo: repo}
}

// CommandTypes implements shared.CommandHandler
func (h *OutcomeHandler) CommandTypes() []string {
	return []string{
		CommandCreateOutcome,
		CommandAddOutcomeCategory,
		CommandChangeOutcomeAmount,
		CommandChangeOutcomeDescription,
		CommandChangeOutcomeWhen,
		CommandDeleteOutcome,
	}
}

// Handle implements shared.CommandHandler
func (h *OutcomeHandler) Handle(ctx context.Context, cmd shared.Command) (shared.Key, error) {
	switch c := cmd.(type) {
	case CreateOutcome:
		o, err := CreateOutcomeWithCategories(c.Amount, c.Description, c.When, c.CategoryKeys)
		if err != nil {
			return shared.Key{}, err
		}
		if err := h.repo.Save(ctx, o); err != nil {
			return shared.Key{}, err
		}
		return o.Key(), nil
	case AddOutcomeCategory:
		return h.update(ctx, c.OutcomeKey, func(o *finance.Outcome) error { return o.AddCategory(c.CategoryKey) })
	case ChangeOutcomeAmount:
		return h.update(ctx, c.OutcomeKey, func(o *finance.Outcome) error { return o.ChangeAmount(c.Amount) })
	case ChangeOutcomeDescription:
		return h.update(ctx, c.OutcomeKey, func(o *finance.Outcome) error { return o.ChangeDescription(c.Description) })
	case ChangeOutcomeWhen:
		return h.update(ctx, c.OutcomeKey, func(o *finance.Outcome) error { return o.ChangeWhen(c.When) })
	case DeleteOutcome:
		return h.update(ctx, c.OutcomeKey, (*finance.Outcome).Delete)
	default:
		return shared.Key{}, shared.NewNoHandlerError("command", cmd.CommandType())
	}
}

func (h *OutcomeHandler) update(ctx context.Context, key shared.Key, op func(*finance.Outcome) error) (shared.Key, error) {
	o, err := load(ctx, h.repo, key, finance.AggregateTypeOutcome, finance.LoadOutcome)
	if err != nil {
		return shared.Key{}, err
	}
	if err := op(o); err != nil {
		return shared.Key{}, err
	}
	if err := h.repo.Save(ctx, o); err != nil {
		return shared.Key{}, err
	}
	return o.Key(), nil
}

// CreateOutcomeWithCategories creates an outcome in the first category and
// adds each remaining category once. Repeated keys are ignored.
func CreateOutcomeWithCategories(amount valueobject.Price, description string, when time.Time, categoryKeys []shared.Key) (*finance.Outcome, error) {
	if len(categoryKeys) == 0 {
		return nil, shared.NewValidationError("an outcome needs at least one category")
	}

	o, err := finance.NewOutcome(amount, description, when, categoryKeys[0])
	if err != nil {
		return nil, err
	}
	for _, key := range categoryKeys[1:] {
		if o.State().HasCategory(key) {
			continue
		}
		if err := o.AddCategory(key); err != nil {
			return nil, fmt.Errorf("add category %s: %w", key, err)
		}
	}
	return o, nil
}
