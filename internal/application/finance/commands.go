package finance

import (
	"time"

	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
)

// Command type names
const (
	CommandCreateOutcome            = "CreateOutcome"
	CommandAddOutcomeCategory       = "AddOutcomeCategory"
	CommandChangeOutcomeAmount      = "ChangeOutcomeAmount"
	CommandChangeOutcomeDescription = "ChangeOutcomeDescription"
	CommandChangeOutcomeWhen        = "ChangeOutcomeWhen"
	CommandDeleteOutcome            = "DeleteOutcome"

	CommandCreateCategory            = "CreateCategory"
	CommandRenameCategory            = "RenameCategory"
	CommandChangeCategoryColor       = "ChangeCategoryColor"
	CommandChangeCategoryDescription = "ChangeCategoryDescription"
	CommandDeleteCategory            = "DeleteCategory"

	CommandCreateExpenseTemplate            = "CreateExpenseTemplate"
	CommandChangeExpenseTemplateAmount      = "ChangeExpenseTemplateAmount"
	CommandChangeExpenseTemplateDescription = "ChangeExpenseTemplateDescription"
	CommandChangeExpenseTemplateCategory    = "ChangeExpenseTemplateCategory"
	CommandChangeExpenseTemplateFixed       = "ChangeExpenseTemplateFixed"
	CommandDeleteExpenseTemplate            = "DeleteExpenseTemplate"
)

// CreateOutcome records spent money. The first category is the primary one;
// the rest are added in order.
type CreateOutcome struct {
	Amount       valueobject.Price
	Description  string
	When         time.Time
	CategoryKeys []shared.Key
}

func (CreateOutcome) CommandType() string { return CommandCreateOutcome }

type AddOutcomeCategory struct {
	OutcomeKey  shared.Key
	CategoryKey shared.Key
}

func (AddOutcomeCategory) CommandType() string { return CommandAddOutcomeCategory }

type ChangeOutcomeAmount struct {
	OutcomeKey shared.Key
	Amount     valueobject.Price
}

func (ChangeOutcomeAmount) CommandType() string { return CommandChangeOutcomeAmount }

type ChangeOutcomeDescription struct {
	OutcomeKey  shared.Key
	Description string
}

func (ChangeOutcomeDescription) CommandType() string { return CommandChangeOutcomeDescription }

type ChangeOutcomeWhen struct {
	OutcomeKey shared.Key
	When       time.Time
}

func (ChangeOutcomeWhen) CommandType() string { return CommandChangeOutcomeWhen }

type DeleteOutcome struct {
	OutcomeKey shared.Key
}

func (DeleteOutcome) CommandType() string { return CommandDeleteOutcome }

type CreateCategory struct {
	Name        string
	Color       string
	Description string
}

func (CreateCategory) CommandType() string { return CommandCreateCategory }

type RenameCategory struct {
	CategoryKey shared.Key
	Name        string
}

func (RenameCategory) CommandType() string { return CommandRenameCategory }

type ChangeCategoryColor struct {
	CategoryKey shared.Key
	Color       string
}

func (ChangeCategoryColor) CommandType() string { return CommandChangeCategoryColor }

type ChangeCategoryDescription struct {
	CategoryKey shared.Key
	Description string
}

func (ChangeCategoryDescription) CommandType() string { return CommandChangeCategoryDescription }

type DeleteCategory struct {
	CategoryKey shared.Key
}

func (DeleteCategory) CommandType() string { return CommandDeleteCategory }

type CreateExpenseTemplate struct {
	Amount      valueobject.Price
	Description string
	CategoryKey shared.Key
	IsFixed     bool
}

func (CreateExpenseTemplate) CommandType() string { return CommandCreateExpenseTemplate }

type ChangeExpenseTemplateAmount struct {
	TemplateKey shared.Key
	Amount      valueobject.Price
}

func (ChangeExpenseTemplateAmount) CommandType() string { return CommandChangeExpenseTemplateAmount }

type ChangeExpenseTemplateDescription struct {
	TemplateKey shared.Key
	Description string
}

func (ChangeExpenseTemplateDescription) CommandType() string {
	return CommandChangeExpenseTemplateDescription
}

type ChangeExpenseTemplateCategory struct {
	TemplateKey shared.Key
	CategoryKey shared.Key
}

func (ChangeExpenseTemplateCategory) CommandType() string { return CommandChangeExpenseTemplateCategory }

type ChangeExpenseTemplateFixed struct {
	TemplateKey shared.Key
	IsFixed     bool
}

func (ChangeExpenseTemplateFixed) CommandType() string { return CommandChangeExpenseTemplateFixed }

type DeleteExpenseTemplate struct {
	TemplateKey shared.Key
}

func (DeleteExpenseTemplate) CommandType() string { return CommandDeleteExpenseTemplate }
