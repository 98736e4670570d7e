package finance

import (
	"context"

	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/shared"
)

// ExpenseTemplateHandler executes the expense template commands
type ExpenseTemplateHandler struct {
	repo *EventSourcedRepository
}

// NewExpenseTemplateHandler creates a new expense template command handler
func NewExpenseTemplateHandler(repo *EventSourcedRepository) *ExpenseTemplateHandler {
	return &ExpenseTemplateHandler{repo: repo}
}

// CommandTypes implements shared.CommandHandler
func (h *ExpenseTemplateHandler) CommandTypes() []string {
	return []string{
		CommandCreateExpenseTemplate,
		CommandChangeExpenseTemplateAmount,
		CommandChangeExpenseTemplateDescription,
		CommandChangeExpenseTemplateCategory,
		CommandChangeExpenseTemplateFixed,
		CommandDeleteExpenseTemplate,
	}
}

// Handle implements shared.CommandHandler
func (h *ExpenseTemplateHandler) Handle(ctx context.Context, cmd shared.Command) (shared.Key, error) {
	switch c := cmd.(type) {
	case CreateExpenseTemplate:
		t, err := finance.NewExpenseTemplate(c.Amount, c.Description, c.CategoryKey, c.IsFixed)
		if err != nil {
			return shared.Key{}, err
		}
		if err := h.repo.Save(ctx, t); err != nil {
			return shared.Key{}, err
		}
		return t.Key(), nil
	case ChangeExpenseTemplateAmount:
		return h.update(ctx, c.TemplateKey, func(t *finance.ExpenseTemplate) error { return t.ChangeAmount(c.Amount) })
	case ChangeExpenseTemplateDescription:
		return h.update(ctx, c.TemplateKey, func(t *finance.ExpenseTemplate) error { return t.ChangeDescription(c.Description) })
	case ChangeExpenseTemplateCategory:
		return h.update(ctx, c.TemplateKey, func(t *finance.ExpenseTemplate) error { return t.ChangeCategory(c.CategoryKey) })
	case ChangeExpenseTemplateFixed:
		return h.update(ctx, c.TemplateKey, func(t *finance.ExpenseTemplate) error { return t.ChangeFixed(c.IsFixed) })
	case DeleteExpenseTemplate:
		return h.update(ctx, c.TemplateKey, (*finance.ExpenseTemplate).Delete)
	default:
		return shared.Key{}, shared.NewNoHandlerError("command", cmd.CommandType())
	}
}

func (h *ExpenseTemplateHandler) update(ctx context.Context, key shared.Key, op func(*finance.ExpenseTemplate) error) (shared.Key, error) {
	t, err := load(ctx, h.repo, key, finance.AggregateTypeExpenseTemplate, finance.LoadExpenseTemplate)
	if err != nil {
		return shared.Key{}, err
	}
	if err := op(t); err != nil {
		return shared.Key{}, err
	}
	if err := h.repo.Save(ctx, t); err != nil {
		return shared.Key{}, err
	}
	return t.Key(), nil
}

var (
	_ shared.CommandHandler = (*OutcomeHandler)(nil)
	_ shared.CommandHandler = (*CategoryHandler)(nil)
	_ shared.CommandHandler = (*ExpenseTemplateHandler)(nil)
)
