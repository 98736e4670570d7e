package dto

import (
	"time"

	"github.com/money/backend/internal/domain/shared/valueobject"
)

// PriceRequest is an amount with its ISO currency code
type PriceRequest struct {
	Amount   string `json:"amount" binding:"required,numeric"`
	Currency string `json:"currency" binding:"required,currency"`
}

// ToPrice converts the request into a price
func (p PriceRequest) ToPrice() (valueobject.Price, error) {
	currency, err := valueobject.ParseCurrency(p.Currency)
	if err != nil {
		return valueobject.Price{}, err
	}
	return valueobject.NewPriceFromString(p.Amount, currency)
}

// IDRequest represents a request with an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// MonthRequest selects a calendar month from the path
type MonthRequest struct {
	Year  int `uri:"year" binding:"required,min=1,max=9999"`
	Month int `uri:"month" binding:"required,min=1,max=12"`
}

// MonthCategoryRequest selects one category within a month
type MonthCategoryRequest struct {
	MonthRequest
	ID string `uri:"id" binding:"required,uuid"`
}

type CreateOutcomeRequest struct {
	Amount      PriceRequest `json:"amount"`
	Description string       `json:"description" binding:"max=500"`
	When        time.Time    `json:"when" binding:"required"`
	CategoryIDs []string     `json:"category_ids" binding:"required,min=1,dive,uuid"`
}

type AddOutcomeCategoryRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

type ChangeAmountRequest struct {
	Amount PriceRequest `json:"amount"`
}

type ChangeDescriptionRequest struct {
	Description string `json:"description" binding:"max=500"`
}

type ChangeWhenRequest struct {
	When time.Time `json:"when" binding:"required"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Color       string `json:"color" binding:"required,hexcolor"`
	Description string `json:"description" binding:"max=500"`
}

type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type ChangeColorRequest struct {
	Color string `json:"color" binding:"required,hexcolor"`
}

// ListCategoriesRequest carries the category list filters
type ListCategoriesRequest struct {
	IncludeDeleted bool `form:"include_deleted"`
}

type CreateExpenseTemplateRequest struct {
	Amount      PriceRequest `json:"amount"`
	Description string       `json:"description" binding:"max=500"`
	CategoryID  string       `json:"category_id" binding:"required,uuid"`
	IsFixed     bool         `json:"is_fixed"`
}

type ChangeCategoryRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// ChangeFixedRequest uses a pointer so an explicit false passes "required"
type ChangeFixedRequest struct {
	IsFixed *bool `json:"is_fixed" binding:"required"`
}
