package report

import (
	"time"

	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
)

// OutcomeView is the denormalized outcome row.
// Version is the sequence of the last event applied to the row. A deleted
// outcome keeps its row as a tombstone so a redelivered creation stays stale.
type OutcomeView struct {
	Key          shared.Key        `json:"key"`
	Amount       valueobject.Price `json:"amount"`
	When         time.Time         `json:"when"`
	Description  string            `json:"description"`
	CategoryKeys []shared.Key      `json:"category_keys"`
	IsDeleted    bool              `json:"is_deleted"`
	Version      int64             `json:"version"`
}

// PrimaryCategory returns the category the outcome was created in
func (v OutcomeView) PrimaryCategory() shared.Key {
	if len(v.CategoryKeys) == 0 {
		return shared.EmptyKey("Category")
	}
	return v.CategoryKeys[0]
}

// Overview projects the row without its categories
func (v OutcomeView) Overview() OutcomeOverview {
	return OutcomeOverview{Key: v.Key, Amount: v.Amount, When: v.When, Description: v.Description}
}

// OutcomeOverview is one line of a month's outcome list
type OutcomeOverview struct {
	Key         shared.Key        `json:"key"`
	Amount      valueobject.Price `json:"amount"`
	When        time.Time         `json:"when"`
	Description string            `json:"description"`
}

// CategoryView is the denormalized category row
type CategoryView struct {
	Key         shared.Key `json:"key"`
	Name        string     `json:"name"`
	Color       string     `json:"color"`
	Description string     `json:"description"`
	IsDeleted   bool       `json:"is_deleted"`
	Version     int64      `json:"version"`
}

// CategoryWithAmount is a category together with a month's total
type CategoryWithAmount struct {
	Key   shared.Key        `json:"key"`
	Name  string            `json:"name"`
	Color string            `json:"color"`
	Total valueobject.Price `json:"total"`
}

// ExpenseTemplateView is the denormalized expense template row
type ExpenseTemplateView struct {
	Key         shared.Key        `json:"key"`
	Amount      valueobject.Price `json:"amount"`
	Description string            `json:"description"`
	CategoryKey shared.Key        `json:"category_key"`
	IsFixed     bool              `json:"is_fixed"`
	IsDeleted   bool              `json:"is_deleted"`
	Version     int64             `json:"version"`
}
