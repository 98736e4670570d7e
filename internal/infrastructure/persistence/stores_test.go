package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeSet struct {
	outcomes   report.OutcomeReadStore
	categories report.CategoryReadStore
	templates  report.ExpenseTemplateReadStore
}

func storeBackends(t *testing.T) map[string]func(t *testing.T) storeSet {
	return map[string]func(t *testing.T) storeSet{
		"gorm": func(t *testing.T) storeSet {
			db := newSQLiteDatabase(t)
			return storeSet{
				outcomes:   NewGormOutcomeReadStore(db.DB),
				categories: NewGormCategoryReadStore(db.DB),
				templates:  NewGormExpenseTemplateReadStore(db.DB),
			}
		},
		"memory": func(t *testing.T) storeSet {
			return storeSet{
				outcomes:   NewMemoryOutcomeReadStore(),
				categories: NewMemoryCategoryReadStore(),
				templates:  NewMemoryExpenseTemplateReadStore(),
			}
		},
	}
}

func outcomeView(amount string, when time.Time, categories ...shared.Key) *report.OutcomeView {
	return &report.OutcomeView{
		Key:          shared.NewKey(finance.AggregateTypeOutcome),
		Amount:       valueobject.MustPrice(amount, valueobject.EUR),
		When:         when,
		Description:  "outcome " + amount,
		CategoryKeys: categories,
		Version:      1,
	}
}

func TestOutcomeReadStore(t *testing.T) {
	for name, open := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t).outcomes

			food := shared.NewKey(finance.AggregateTypeCategory)
			rent := shared.NewKey(finance.AggregateTypeCategory)
			oct3 := time.Date(2016, 10, 3, 12, 0, 0, 0, time.UTC)
			oct1 := time.Date(2016, 10, 1, 0, 0, 0, 0, time.UTC)
			nov := time.Date(2016, 11, 20, 8, 0, 0, 0, time.UTC)
			sep := time.Date(2016, 9, 30, 23, 59, 59, 0, time.UTC)

			lunch := outcomeView("5.00", oct3, food)
			flat := outcomeView("400.00", oct1, rent, food)
			later := outcomeView("7.25", nov, food)
			earlier := outcomeView("1.00", sep, rent)
			for _, v := range []*report.OutcomeView{lunch, flat, later, earlier} {
				require.NoError(t, store.Save(ctx, v))
			}

			t.Run("find round trips every field", func(t *testing.T) {
				got, err := store.Find(ctx, flat.Key)
				require.NoError(t, err)
				assert.True(t, got.Key.Equals(flat.Key))
				assert.True(t, got.Amount.Equals(flat.Amount))
				assert.True(t, got.When.Equal(flat.When))
				assert.Equal(t, flat.Description, got.Description)
				require.Len(t, got.CategoryKeys, 2)
				assert.True(t, got.PrimaryCategory().Equals(rent))
				assert.True(t, got.CategoryKeys[1].Equals(food))
			})

			t.Run("missing row is not found", func(t *testing.T) {
				_, err := store.Find(ctx, shared.NewKey(finance.AggregateTypeOutcome))
				assert.ErrorIs(t, err, shared.ErrNotFound)
			})

			t.Run("by month is ordered by when", func(t *testing.T) {
				rows, err := store.FindByMonth(ctx, report.MonthOf(oct3))
				require.NoError(t, err)
				require.Len(t, rows, 2)
				assert.True(t, rows[0].Key.Equals(flat.Key))
				assert.True(t, rows[1].Key.Equals(lunch.Key))
			})

			t.Run("by category matches any position", func(t *testing.T) {
				rows, err := store.FindByCategoryAndMonth(ctx, food, report.MonthOf(oct3))
				require.NoError(t, err)
				assert.Len(t, rows, 2)

				rows, err = store.FindByCategoryAndMonth(ctx, rent, report.MonthOf(oct3))
				require.NoError(t, err)
				require.Len(t, rows, 1)
				assert.True(t, rows[0].Key.Equals(flat.Key))
			})

			t.Run("months are distinct and oldest first", func(t *testing.T) {
				months, err := store.ListMonths(ctx)
				require.NoError(t, err)
				require.Len(t, months, 3)
				assert.Equal(t, []string{"2016-09", "2016-10", "2016-11"},
					[]string{months[0].String(), months[1].String(), months[2].String()})
			})

			t.Run("save replaces the row and its categories", func(t *testing.T) {
				lunch.Amount = valueobject.MustPrice("6.50", valueobject.EUR)
				lunch.CategoryKeys = append(lunch.CategoryKeys, rent)
				lunch.Version = 3
				require.NoError(t, store.Save(ctx, lunch))

				got, err := store.Find(ctx, lunch.Key)
				require.NoError(t, err)
				assert.True(t, got.Amount.Equals(valueobject.MustPrice("6.5", valueobject.EUR)))
				assert.Len(t, got.CategoryKeys, 2)
				assert.Equal(t, int64(3), got.Version)
			})

			t.Run("returned rows do not alias the store", func(t *testing.T) {
				got, err := store.Find(ctx, lunch.Key)
				require.NoError(t, err)
				got.CategoryKeys[0] = shared.NewKey(finance.AggregateTypeCategory)

				again, err := store.Find(ctx, lunch.Key)
				require.NoError(t, err)
				assert.True(t, again.PrimaryCategory().Equals(food))
			})

			t.Run("delete removes the row", func(t *testing.T) {
				require.NoError(t, store.Delete(ctx, earlier.Key))
				_, err := store.Find(ctx, earlier.Key)
				assert.ErrorIs(t, err, shared.ErrNotFound)

				months, err := store.ListMonths(ctx)
				require.NoError(t, err)
				assert.Len(t, months, 2)
			})

			t.Run("clear empties the store", func(t *testing.T) {
				require.NoError(t, store.Clear(ctx))
				months, err := store.ListMonths(ctx)
				require.NoError(t, err)
				assert.Empty(t, months)
			})
		})
	}
}

func TestCategoryReadStore(t *testing.T) {
	for name, open := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t).categories

			rent := &report.CategoryView{Key: shared.NewKey(finance.AggregateTypeCategory), Name: "Rent", Color: "#FF0000", Version: 1}
			food := &report.CategoryView{Key: shared.NewKey(finance.AggregateTypeCategory), Name: "Food", Color: "#00FF00", Version: 1}
			old := &report.CategoryView{Key: shared.NewKey(finance.AggregateTypeCategory), Name: "Car", IsDeleted: true, Version: 2}
			for _, v := range []*report.CategoryView{rent, food, old} {
				require.NoError(t, store.Save(ctx, v))
			}

			all, err := store.FindAll(ctx, false)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "Food", all[0].Name)
			assert.Equal(t, "Rent", all[1].Name)

			withDeleted, err := store.FindAll(ctx, true)
			require.NoError(t, err)
			assert.Len(t, withDeleted, 3)

			rent.Description = "monthly"
			rent.Version = 2
			require.NoError(t, store.Save(ctx, rent))
			got, err := store.Find(ctx, rent.Key)
			require.NoError(t, err)
			assert.Equal(t, "monthly", got.Description)
			assert.Equal(t, "#FF0000", got.Color)

			require.NoError(t, store.Delete(ctx, food.Key))
			_, err = store.Find(ctx, food.Key)
			assert.ErrorIs(t, err, shared.ErrNotFound)

			require.NoError(t, store.Clear(ctx))
			all, err = store.FindAll(ctx, true)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestExpenseTemplateReadStore(t *testing.T) {
	for name, open := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t).templates
			category := shared.NewKey(finance.AggregateTypeCategory)

			internet := &report.ExpenseTemplateView{
				Key:         shared.NewKey(finance.AggregateTypeExpenseTemplate),
				Amount:      valueobject.MustPrice("30.00", valueobject.USD),
				Description: "Internet",
				CategoryKey: category,
				IsFixed:     true,
				Version:     1,
			}
			coffee := &report.ExpenseTemplateView{
				Key:         shared.NewKey(finance.AggregateTypeExpenseTemplate),
				Amount:      valueobject.MustPrice("3.50", valueobject.USD),
				Description: "Coffee",
				CategoryKey: category,
				Version:     1,
			}
			require.NoError(t, store.Save(ctx, internet))
			require.NoError(t, store.Save(ctx, coffee))

			all, err := store.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "Coffee", all[0].Description)
			assert.True(t, all[1].IsFixed)
			assert.True(t, all[1].CategoryKey.Equals(category))
			assert.True(t, all[1].Amount.Equals(valueobject.MustPrice("30", valueobject.USD)))

			require.NoError(t, store.Delete(ctx, coffee.Key))
			_, err = store.Find(ctx, coffee.Key)
			assert.ErrorIs(t, err, shared.ErrNotFound)

			require.NoError(t, store.Clear(ctx))
			all, err = store.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestGormCategoryReadStore_Postgres(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	store := NewGormCategoryReadStore(db.DB)
	key := shared.NewKey(finance.AggregateTypeCategory)

	t.Run("missing row maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id = \$1`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := store.Find(context.Background(), key)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver errors are wrapped", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "categories"`).
			WillReturnError(assert.AnError)

		_, err := store.FindAll(context.Background(), false)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "list categories")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("save upserts", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO "categories" .* ON CONFLICT \("id"\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Save(context.Background(), &report.CategoryView{Key: key, Name: "Food", Version: 1})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
