package models

import (
	"github.com/google/uuid"
	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseTemplateModel is the expense template read-model row
type ExpenseTemplateModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Amount      decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Currency    string          `gorm:"type:varchar(3);not null"`
	Description string          `gorm:"type:text;not null;default:''"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	IsFixed     bool            `gorm:"not null;default:false"`
	IsDeleted   bool            `gorm:"not null;default:false"`
	Version     int64           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExpenseTemplateModel) TableName() string {
	return "expense_templates"
}

// ToDomain converts the row to a view
func (m *ExpenseTemplateModel) ToDomain() (*report.ExpenseTemplateView, error) {
	amount, err := valueobject.NewPrice(m.Amount, valueobject.Currency(m.Currency))
	if err != nil {
		return nil, err
	}
	return &report.ExpenseTemplateView{
		Key:         shared.KeyFrom(finance.AggregateTypeExpenseTemplate, m.ID),
		Amount:      amount,
		Description: m.Description,
		CategoryKey: shared.KeyFrom(finance.AggregateTypeCategory, m.CategoryID),
		IsFixed:     m.IsFixed,
		IsDeleted:   m.IsDeleted,
		Version:     m.Version,
	}, nil
}

// FromDomain populates the row from a view
func (m *ExpenseTemplateModel) FromDomain(v *report.ExpenseTemplateView) {
	m.ID = v.Key.ID
	m.Amount = v.Amount.Amount()
	m.Currency = string(v.Amount.Currency())
	m.Description = v.Description
	m.CategoryID = v.CategoryKey.ID
	m.IsFixed = v.IsFixed
	m.IsDeleted = v.IsDeleted
	m.Version = v.Version
}
