package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OutcomeModel is the outcome read-model row
type OutcomeModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Amount      decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Currency    string          `gorm:"type:varchar(3);not null"`
	SpentAt     time.Time       `gorm:"not null"`
	Year        int             `gorm:"not null;index:idx_outcomes_month,priority:1"`
	Month       int             `gorm:"not null;index:idx_outcomes_month,priority:2"`
	Description string          `gorm:"type:text;not null;default:''"`
	IsDeleted   bool            `gorm:"not null;default:false"`
	Version     int64           `gorm:"not null"`

	Categories []OutcomeCategoryModel `gorm:"foreignKey:OutcomeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OutcomeModel) TableName() string {
	return "outcomes"
}

// OutcomeCategoryModel links an outcome to one of its categories.
// Position 0 is the primary category.
type OutcomeCategoryModel struct {
	OutcomeID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position   int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OutcomeCategoryModel) TableName() string {
	return "outcome_categories"
}

// ToDomain converts the row and its categories to a view
func (m *OutcomeModel) ToDomain() (*report.OutcomeView, error) {
	amount, err := valueobject.NewPrice(m.Amount, valueobject.Currency(m.Currency))
	if err != nil {
		return nil, err
	}
	keys := make([]shared.Key, len(m.Categories))
	for _, c := range m.Categories {
		if c.Position >= 0 && c.Position < len(keys) {
			keys[c.Position] = shared.KeyFrom(finance.AggregateTypeCategory, c.CategoryID)
		}
	}
	return &report.OutcomeView{
		Key:          shared.KeyFrom(finance.AggregateTypeOutcome, m.ID),
		Amount:       amount,
		When:         m.SpentAt.UTC(),
		Description:  m.Description,
		CategoryKeys: keys,
		IsDeleted:    m.IsDeleted,
		Version:      m.Version,
	}, nil
}

// FromDomain populates the row from a view
func (m *OutcomeModel) FromDomain(v *report.OutcomeView) {
	m.ID = v.Key.ID
	m.Amount = v.Amount.Amount()
	m.Currency = string(v.Amount.Currency())
	m.SpentAt = v.When.UTC()
	m.Year = v.When.UTC().Year()
	m.Month = int(v.When.UTC().Month())
	m.Description = v.Description
	m.IsDeleted = v.IsDeleted
	m.Version = v.Version
	m.Categories = make([]OutcomeCategoryModel, len(v.CategoryKeys))
	for i, k := range v.CategoryKeys {
		m.Categories[i] = OutcomeCategoryModel{OutcomeID: v.Key.ID, CategoryID: k.ID, Position: i}
	}
}
