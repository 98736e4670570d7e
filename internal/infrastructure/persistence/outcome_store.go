package persistence

import (
	"context"

	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutcomeReadStore keeps outcome rows in the outcomes and
// outcome_categories tables
type GormOutcomeReadStore struct {
	db *gorm.DB
}

// NewGormOutcomeReadStore creates a new outcome read store
func NewGormOutcomeReadStore(db *gorm.DB) *GormOutcomeReadStore {
	return &GormOutcomeReadStore{db: db}
}

func withCategories(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	})
}

// Save upserts the row and replaces its category links
func (s *GormOutcomeReadStore) Save(ctx context.Context, view *report.OutcomeView) error {
	model := &models.OutcomeModel{}
	model.FromDomain(view)
	links := model.Categories

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(model).Error; err != nil {
			return err
		}
		if err := tx.Where("outcome_id = ?", model.ID).Delete(&models.OutcomeCategoryModel{}).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
	return translate("save outcome", err)
}

// Find returns the row for key or shared.ErrNotFound
func (s *GormOutcomeReadStore) Find(ctx context.Context, key shared.Key) (*report.OutcomeView, error) {
	var model models.OutcomeModel
	if err := withCategories(s.db.WithContext(ctx)).First(&model, "id = ?", key.ID).Error; err != nil {
		return nil, translate("find outcome", err)
	}
	return model.ToDomain()
}

// Delete removes the row and its category links
func (s *GormOutcomeReadStore) Delete(ctx context.Context, key shared.Key) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("outcome_id = ?", key.ID).Delete(&models.OutcomeCategoryModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", key.ID).Delete(&models.OutcomeModel{}).Error
	})
	return translate("delete outcome", err)
}

// FindByMonth returns the month's rows ordered by When
func (s *GormOutcomeReadStore) FindByMonth(ctx context.Context, month report.Month) ([]report.OutcomeView, error) {
	var rows []models.OutcomeModel
	err := withCategories(s.db.WithContext(ctx)).
		Where("year = ? AND month = ? AND is_deleted = ?", month.Year, int(month.Month), false).
		Order("spent_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate("find outcomes by month", err)
	}
	return outcomeViews(rows)
}

// FindByCategoryAndMonth returns the month's rows linked to categoryKey
func (s *GormOutcomeReadStore) FindByCategoryAndMonth(ctx context.Context, categoryKey shared.Key, month report.Month) ([]report.OutcomeView, error) {
	linked := s.db.Model(&models.OutcomeCategoryModel{}).
		Select("outcome_id").
		Where("category_id = ?", categoryKey.ID)

	var rows []models.OutcomeModel
	err := withCategories(s.db.WithContext(ctx)).
		Where("year = ? AND month = ? AND is_deleted = ?", month.Year, int(month.Month), false).
		Where("id IN (?)", linked).
		Order("spent_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate("find outcomes by category", err)
	}
	return outcomeViews(rows)
}

// ListMonths returns every month with at least one live row, oldest first
func (s *GormOutcomeReadStore) ListMonths(ctx context.Context) ([]report.Month, error) {
	var rows []struct {
		Year  int
		Month int
	}
	err := s.db.WithContext(ctx).Model(&models.OutcomeModel{}).
		Where("is_deleted = ?", false).
		Distinct("year", "month").
		Order("year ASC, month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate("list months", err)
	}

	months := make([]report.Month, 0, len(rows))
	for _, r := range rows {
		m, err := report.NewMonth(r.Year, r.Month)
		if err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, nil
}

// Clear deletes every outcome row
func (s *GormOutcomeReadStore) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearTable(tx, &models.OutcomeCategoryModel{}); err != nil {
			return err
		}
		return clearTable(tx, &models.OutcomeModel{})
	})
	return translate("clear outcomes", err)
}

func outcomeViews(rows []models.OutcomeModel) ([]report.OutcomeView, error) {
	views := make([]report.OutcomeView, 0, len(rows))
	for i := range rows {
		v, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}
