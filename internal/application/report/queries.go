package report

import (
	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
)

// Query type names
const (
	QueryListMonthWithOutcome         = "ListMonthWithOutcome"
	QueryGetTotalMonthOutcome         = "GetTotalMonthOutcome"
	QueryListMonthCategoryWithOutcome = "ListMonthCategoryWithOutcome"
	QueryListMonthOutcomes            = "ListMonthOutcomes"
	QueryListCategoryOutcomes         = "ListCategoryOutcomes"
	QueryListCategories               = "ListCategories"
	QueryGetCategory                  = "GetCategory"
	QueryListExpenseTemplates         = "ListExpenseTemplates"
)

// ListMonthWithOutcome answers []report.Month, oldest first
type ListMonthWithOutcome struct{}

func (ListMonthWithOutcome) QueryType() string { return QueryListMonthWithOutcome }

// GetTotalMonthOutcome answers the valueobject.Price spent in the month
type GetTotalMonthOutcome struct {
	Month report.Month
}

func (GetTotalMonthOutcome) QueryType() string { return QueryGetTotalMonthOutcome }

// ListMonthCategoryWithOutcome answers []report.CategoryWithAmount, one
// entry per primary category with outcomes in the month
type ListMonthCategoryWithOutcome struct {
	Month report.Month
}

func (ListMonthCategoryWithOutcome) QueryType() string { return QueryListMonthCategoryWithOutcome }

// ListMonthOutcomes answers []report.OutcomeOverview ordered by date
type ListMonthOutcomes struct {
	Month report.Month
}

func (ListMonthOutcomes) QueryType() string { return QueryListMonthOutcomes }

// ListCategoryOutcomes answers []report.OutcomeOverview for outcomes related
// to the category in any position
type ListCategoryOutcomes struct {
	CategoryKey shared.Key
	Month       report.Month
}

func (ListCategoryOutcomes) QueryType() string { return QueryListCategoryOutcomes }

// ListCategories answers []report.CategoryView ordered by name
type ListCategories struct {
	IncludeDeleted bool
}

func (ListCategories) QueryType() string { return QueryListCategories }

// GetCategory answers report.CategoryView
type GetCategory struct {
	CategoryKey shared.Key
}

func (GetCategory) QueryType() string { return QueryGetCategory }

// ListExpenseTemplates answers []report.ExpenseTemplateView
type ListExpenseTemplates struct{}

func (ListExpenseTemplates) QueryType() string { return QueryListExpenseTemplates }
