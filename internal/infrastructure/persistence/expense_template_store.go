package persistence

import (
	"context"

	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormExpenseTemplateReadStore keeps template rows in the expense_templates table
type GormExpenseTemplateReadStore struct {
	db *gorm.DB
}

// NewGormExpenseTemplateReadStore creates a new expense template read store
func NewGormExpenseTemplateReadStore(db *gorm.DB) *GormExpenseTemplateReadStore {
	return &GormExpenseTemplateReadStore{db: db}
}

func (s *GormExpenseTemplateReadStore) Save(ctx context.Context, view *report.ExpenseTemplateView) error {
	model := &models.ExpenseTemplateModel{}
	model.FromDomain(view)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model).Error
	return translate("save expense template", err)
}

func (s *GormExpenseTemplateReadStore) Find(ctx context.Context, key shared.Key) (*report.ExpenseTemplateView, error) {
	var model models.ExpenseTemplateModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", key.ID).Error; err != nil {
		return nil, translate("find expense template", err)
	}
	return model.ToDomain()
}

func (s *GormExpenseTemplateReadStore) Delete(ctx context.Context, key shared.Key) error {
	err := s.db.WithContext(ctx).Where("id = ?", key.ID).Delete(&models.ExpenseTemplateModel{}).Error
	return translate("delete expense template", err)
}

// FindAll returns live templates ordered by description
func (s *GormExpenseTemplateReadStore) FindAll(ctx context.Context) ([]report.ExpenseTemplateView, error) {
	var rows []models.ExpenseTemplateModel
	err := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("description ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate("list expense templates", err)
	}
	views := make([]report.ExpenseTemplateView, 0, len(rows))
	for i := range rows {
		v, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *GormExpenseTemplateReadStore) Clear(ctx context.Context) error {
	return translate("clear expense templates", clearTable(s.db.WithContext(ctx), &models.ExpenseTemplateModel{}))
}
