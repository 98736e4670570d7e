package persistence

import (
	"context"

	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryReadStore keeps category rows in the categories table
type GormCategoryReadStore struct {
	db *gorm.DB
}

// NewGormCategoryReadStore creates a new category read store
func NewGormCategoryReadStore(db *gorm.DB) *GormCategoryReadStore {
	return &GormCategoryReadStore{db: db}
}

func (s *GormCategoryReadStore) Save(ctx context.Context, view *report.CategoryView) error {
	model := &models.CategoryModel{}
	model.FromDomain(view)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model).Error
	return translate("save category", err)
}

func (s *GormCategoryReadStore) Find(ctx context.Context, key shared.Key) (*report.CategoryView, error) {
	var model models.CategoryModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", key.ID).Error; err != nil {
		return nil, translate("find category", err)
	}
	return model.ToDomain(), nil
}

func (s *GormCategoryReadStore) Delete(ctx context.Context, key shared.Key) error {
	err := s.db.WithContext(ctx).Where("id = ?", key.ID).Delete(&models.CategoryModel{}).Error
	return translate("delete category", err)
}

// FindAll returns categories ordered by name
func (s *GormCategoryReadStore) FindAll(ctx context.Context, includeDeleted bool) ([]report.CategoryView, error) {
	query := s.db.WithContext(ctx).Order("name ASC, id ASC")
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var rows []models.CategoryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, translate("list categories", err)
	}
	views := make([]report.CategoryView, len(rows))
	for i := range rows {
		views[i] = *rows[i].ToDomain()
	}
	return views, nil
}

func (s *GormCategoryReadStore) Clear(ctx context.Context) error {
	return translate("clear categories", clearTable(s.db.WithContext(ctx), &models.CategoryModel{}))
}
