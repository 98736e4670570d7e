package models

import (
	"github.com/google/uuid"
	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
)

// CategoryModel is the category read-model row
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(200);not null;index"`
	Color       string    `gorm:"type:varchar(9);not null;default:''"`
	Description string    `gorm:"type:text;not null;default:''"`
	IsDeleted   bool      `gorm:"not null;default:false"`
	Version     int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the row to a view
func (m *CategoryModel) ToDomain() *report.CategoryView {
	return &report.CategoryView{
		Key:         shared.KeyFrom(finance.AggregateTypeCategory, m.ID),
		Name:        m.Name,
		Color:       m.Color,
		Description: m.Description,
		IsDeleted:   m.IsDeleted,
		Version:     m.Version,
	}
}

// FromDomain populates the row from a view
func (m *CategoryModel) FromDomain(v *report.CategoryView) {
	m.ID = v.Key.ID
	m.Name = v.Name
	m.Color = v.Color
	m.Description = v.Description
	m.IsDeleted = v.IsDeleted
	m.Version = v.Version
}
