package eventstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
	"github.com/money/backend/internal/infrastructure/event"
	"github.com/money/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSerializer() *event.EventSerializer {
	s := event.NewEventSerializer()
	finance.RegisterEvents(s)
	return s
}

func newSQLiteStore(t *testing.T) *GormEventStore {
	return NewGormEventStore(testutil.NewSQLiteDatabase(t).DB, newSerializer())
}

func backends(t *testing.T) map[string]func(t *testing.T) shared.EventStore {
	return map[string]func(t *testing.T) shared.EventStore{
		"memory": func(*testing.T) shared.EventStore { return NewMemoryEventStore() },
		"memory+serializer": func(*testing.T) shared.EventStore {
			return NewMemoryEventStore(WithSerializer(newSerializer()))
		},
		"gorm-sqlite": func(t *testing.T) shared.EventStore { return newSQLiteStore(t) },
	}
}

func categoryEvents(key shared.Key) []shared.DomainEvent {
	return []shared.DomainEvent{
		finance.NewCategoryCreatedEvent(key, "Food", "#00FF00"),
		finance.NewCategoryRenamedEvent(key, "Food", "Groceries"),
	}
}

func TestEventStore_AppendAndReadHistory(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)
			key := shared.NewKey(finance.AggregateTypeCategory)

			require.NoError(t, store.Append(ctx, key, 0, categoryEvents(key)))
			require.NoError(t, store.Append(ctx, key, 2, []shared.DomainEvent{
				finance.NewCategoryColorChangedEvent(key, "#0000FF"),
			}))

			history, err := store.ReadHistory(ctx, key)
			require.NoError(t, err)
			require.Len(t, history, 3)
			for i, e := range history {
				assert.Equal(t, int64(i+1), e.Sequence())
				assert.True(t, e.AggregateKey().Equals(key))
			}
			assert.Equal(t, finance.EventTypeCategoryRenamed, history[1].EventType())

			c, err := finance.LoadCategory(key, history)
			require.NoError(t, err)
			assert.Equal(t, "Groceries", c.State().Name)
			assert.Equal(t, "#0000FF", c.State().Color)
			assert.Equal(t, 3, c.Version())
		})
	}
}

func TestEventStore_UnknownKeyIsEmpty(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			history, err := open(t).ReadHistory(context.Background(), shared.NewKey(finance.AggregateTypeOutcome))
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestEventStore_ExpectedVersionMismatch(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)
			key := shared.NewKey(finance.AggregateTypeCategory)
			require.NoError(t, store.Append(ctx, key, 0, categoryEvents(key)))

			for _, expected := range []int{0, 1, 3} {
				err := store.Append(ctx, key, expected, []shared.DomainEvent{
					finance.NewCategoryDeletedEvent(key),
				})
				require.Error(t, err)
				assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict), "expected %d", expected)
			}

			history, err := store.ReadHistory(ctx, key)
			require.NoError(t, err)
			assert.Len(t, history, 2)
		})
	}
}

func TestEventStore_RejectsForeignEvents(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			key := shared.NewKey(finance.AggregateTypeCategory)
			other := shared.NewKey(finance.AggregateTypeCategory)

			err := open(t).Append(context.Background(), key, 0, []shared.DomainEvent{
				finance.NewCategoryCreatedEvent(other, "Food", "#00FF00"),
			})
			assert.True(t, errors.Is(err, shared.ErrValidation))
		})
	}
}

func TestEventStore_ConcurrentAppendsOneWins(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)
			key := shared.NewKey(finance.AggregateTypeCategory)
			require.NoError(t, store.Append(ctx, key, 0, categoryEvents(key)[:1]))

			const writers = 4
			errs := make([]error, writers)
			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					errs[i] = store.Append(ctx, key, 1, []shared.DomainEvent{
						finance.NewCategoryDescriptionChangedEvent(key, "writer"),
					})
				}(i)
			}
			wg.Wait()

			var ok, conflicts int
			for _, err := range errs {
				switch {
				case err == nil:
					ok++
				case errors.Is(err, shared.ErrConcurrencyConflict):
					conflicts++
				default:
					t.Fatalf("unexpected error: %v", err)
				}
			}
			assert.Equal(t, 1, ok)
			assert.Equal(t, writers-1, conflicts)

			history, err := store.ReadHistory(ctx, key)
			require.NoError(t, err)
			assert.Len(t, history, 2)
		})
	}
}

func TestEventStore_ReadAll(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)
			category := shared.NewKey(finance.AggregateTypeCategory)
			outcome := shared.NewKey(finance.AggregateTypeOutcome)
			when := time.Date(2016, 10, 3, 0, 0, 0, 0, time.UTC)

			require.NoError(t, store.Append(ctx, category, 0, categoryEvents(category)))
			require.NoError(t, store.Append(ctx, outcome, 0, []shared.DomainEvent{
				finance.NewOutcomeCreatedEvent(outcome, valueobject.MustPrice("5.00", valueobject.EUR), "Lunch", when, category),
			}))

			all, err := store.ReadAll(ctx, 0, 0)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.IsIncreasing(t, []int64{all[0].Position, all[1].Position, all[2].Position})
			assert.Equal(t, finance.EventTypeOutcomeCreated, all[2].Event.EventType())
			assert.Equal(t, int64(1), all[2].Event.Sequence())

			page, err := store.ReadAll(ctx, all[0].Position, 1)
			require.NoError(t, err)
			require.Len(t, page, 1)
			assert.Equal(t, all[1].Position, page[0].Position)

			tail, err := store.ReadAll(ctx, all[2].Position, 10)
			require.NoError(t, err)
			assert.Empty(t, tail)
		})
	}
}

func TestEventStore_EmptyAppendIsNoop(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			require.NoError(t, store.Append(context.Background(), shared.NewKey(finance.AggregateTypeCategory), 5, nil))
			all, err := store.ReadAll(context.Background(), 0, 0)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestMemoryEventStore_SerializerIsolatesReads(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryEventStore(WithSerializer(newSerializer()))
	key := shared.NewKey(finance.AggregateTypeCategory)
	events := categoryEvents(key)
	require.NoError(t, store.Append(ctx, key, 0, events))

	events[0].(*finance.CategoryCreatedEvent).Name = "mutated"

	history, err := store.ReadHistory(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Food", history[0].(*finance.CategoryCreatedEvent).Name)
}

// failingSerializer refuses to encode one event type
type failingSerializer struct {
	*event.EventSerializer
	eventType string
}

func (s failingSerializer) Serialize(e shared.DomainEvent) ([]byte, error) {
	if e.EventType() == s.eventType {
		return nil, errors.New("cannot encode " + e.EventType())
	}
	return s.EventSerializer.Serialize(e)
}

func TestMemoryEventStore_FailedSerializationLeavesBatchUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryEventStore(WithSerializer(failingSerializer{
		EventSerializer: newSerializer(),
		eventType:       finance.EventTypeCategoryRenamed,
	}))
	key := shared.NewKey(finance.AggregateTypeCategory)
	events := categoryEvents(key)

	err := store.Append(ctx, key, 0, events)
	require.Error(t, err)
	for _, e := range events {
		assert.Zero(t, e.Sequence())
	}

	history, err := store.ReadHistory(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, history)

	require.NoError(t, store.Append(ctx, key, 0, events[:1]))
	assert.Equal(t, int64(1), events[0].Sequence())
}

func newMockStore(t *testing.T) (*GormEventStore, sqlmock.Sqlmock) {
	db := testutil.NewMockDB(t)
	return NewGormEventStore(db.Database.DB, newSerializer()), db.Mock
}

func TestGormEventStore_Postgres_StaleVersionRollsBack(t *testing.T) {
	store, mock := newMockStore(t)
	key := shared.NewKey(finance.AggregateTypeCategory)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(sequence\), 0\) FROM "domain_events"`).
		WithArgs(key.Type, key.ID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))
	mock.ExpectRollback()

	err := store.Append(context.Background(), key, 1, []shared.DomainEvent{finance.NewCategoryDeletedEvent(key)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
	assert.Contains(t, err.Error(), "expected version 1, stored version 3")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormEventStore_Postgres_UniqueViolationIsConflict(t *testing.T) {
	store, mock := newMockStore(t)
	key := shared.NewKey(finance.AggregateTypeCategory)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(sequence\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "domain_events"`).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "idx_domain_events_stream"`))
	mock.ExpectRollback()

	events := categoryEvents(key)[:1]
	err := store.Append(context.Background(), key, 0, events)
	assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
	assert.Zero(t, events[0].Sequence(), "a rejected batch keeps its sequence")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormEventStore_Postgres_ReadFailureIsWrapped(t *testing.T) {
	store, mock := newMockStore(t)
	key := shared.NewKey(finance.AggregateTypeOutcome)

	mock.ExpectQuery(`SELECT \* FROM "domain_events"`).WillReturnError(errors.New("connection reset"))

	_, err := store.ReadHistory(context.Background(), key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
