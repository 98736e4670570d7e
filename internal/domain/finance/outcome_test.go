package finance

import (
	"errors"
	"testing"
	"time"

	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var october2016 = time.Date(2016, time.October, 14, 12, 0, 0, 0, time.UTC)

func TestNewOutcome(t *testing.T) {
	k2 := shared.NewKey(AggregateTypeCategory)

	t.Run("creates with primary category", func(t *testing.T) {
		o, err := NewOutcome(valueobject.MustPrice("5.00", valueobject.EUR), "Lunch", october2016, k2)
		require.NoError(t, err)

		s := o.State()
		assert.Equal(t, []shared.Key{k2}, s.CategoryKeys)
		assert.True(t, s.Amount.Equals(valueobject.MustPrice("5", valueobject.EUR)))
		assert.Equal(t, october2016, s.When)
		assert.Equal(t, 1, o.Version())
	})

	tests := []struct {
		name     string
		amount   valueobject.Price
		when     time.Time
		category shared.Key
	}{
		{"empty category", valueobject.MustPrice("5", valueobject.EUR), october2016, shared.EmptyKey(AggregateTypeCategory)},
		{"zero amount", valueobject.Zero(valueobject.EUR), october2016, k2},
		{"negative amount", valueobject.MustPrice("-1", valueobject.EUR), october2016, k2},
		{"missing date", valueobject.MustPrice("5", valueobject.EUR), time.Time{}, k2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOutcome(tt.amount, "x", tt.when, tt.category)
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrValidation))
		})
	}
}

func TestOutcome_AddCategory(t *testing.T) {
	k1 := shared.NewKey(AggregateTypeCategory)
	k2 := shared.NewKey(AggregateTypeCategory)
	o, err := NewOutcome(valueobject.MustPrice("5", valueobject.EUR), "Lunch", october2016, k1)
	require.NoError(t, err)

	require.NoError(t, o.AddCategory(k2))
	assert.Equal(t, []shared.Key{k1, k2}, o.State().CategoryKeys)
	assert.Equal(t, 2, o.Version())

	err = o.AddCategory(k2)
	assert.True(t, errors.Is(err, shared.ErrNoOp))
	err = o.AddCategory(k1)
	assert.True(t, errors.Is(err, shared.ErrNoOp))
	assert.Equal(t, 2, o.Version())
}

func TestOutcome_StateIsACopy(t *testing.T) {
	k1 := shared.NewKey(AggregateTypeCategory)
	o, err := NewOutcome(valueobject.MustPrice("5", valueobject.EUR), "Lunch", october2016, k1)
	require.NoError(t, err)

	s := o.State()
	s.CategoryKeys[0] = shared.NewKey(AggregateTypeCategory)

	assert.True(t, o.State().CategoryKeys[0].Equals(k1))
}

func TestOutcome_Mutations(t *testing.T) {
	o, err := NewOutcome(valueobject.MustPrice("5", valueobject.EUR), "Lunch", october2016, shared.NewKey(AggregateTypeCategory))
	require.NoError(t, err)

	require.NoError(t, o.ChangeAmount(valueobject.MustPrice("6.40", valueobject.EUR)))
	require.NoError(t, o.ChangeDescription("Dinner"))
	later := october2016.AddDate(0, 1, 0)
	require.NoError(t, o.ChangeWhen(later))

	s := o.State()
	assert.True(t, s.Amount.Equals(valueobject.MustPrice("6.4", valueobject.EUR)))
	assert.Equal(t, "Dinner", s.Description)
	assert.Equal(t, later, s.When)
	assert.Equal(t, 4, o.Version())

	assert.True(t, errors.Is(o.ChangeAmount(valueobject.Zero(valueobject.EUR)), shared.ErrValidation))
	assert.True(t, errors.Is(o.ChangeWhen(time.Time{}), shared.ErrValidation))
	assert.Equal(t, 4, o.Version())
}

func TestOutcome_DeletedGuard(t *testing.T) {
	o, err := NewOutcome(valueobject.MustPrice("5", valueobject.EUR), "Lunch", october2016, shared.NewKey(AggregateTypeCategory))
	require.NoError(t, err)
	require.NoError(t, o.Delete())
	commit(t, o)

	assert.True(t, errors.Is(o.AddCategory(shared.NewKey(AggregateTypeCategory)), shared.ErrAlreadyDeleted))
	assert.True(t, errors.Is(o.AddCategory(shared.EmptyKey(AggregateTypeCategory)), shared.ErrAlreadyDeleted))
	assert.True(t, errors.Is(o.AddCategory(shared.NewKey(AggregateTypeOutcome)), shared.ErrAlreadyDeleted))
	assert.True(t, errors.Is(o.ChangeAmount(valueobject.MustPrice("1", valueobject.EUR)), shared.ErrAlreadyDeleted))
	assert.True(t, errors.Is(o.ChangeDescription("x"), shared.ErrAlreadyDeleted))
	assert.True(t, errors.Is(o.ChangeWhen(october2016), shared.ErrAlreadyDeleted))
	assert.True(t, errors.Is(o.Delete(), shared.ErrAlreadyDeleted))
	assert.Empty(t, o.UncommittedEvents())
	assert.Equal(t, 2, o.Version())
}

func TestOutcome_Replay(t *testing.T) {
	k1 := shared.NewKey(AggregateTypeCategory)
	o, err := NewOutcome(valueobject.MustPrice("5", valueobject.EUR), "Lunch", october2016, k1)
	require.NoError(t, err)
	require.NoError(t, o.AddCategory(shared.NewKey(AggregateTypeCategory)))
	require.NoError(t, o.AddCategory(shared.NewKey(AggregateTypeCategory)))
	require.NoError(t, o.ChangeAmount(valueobject.MustPrice("7", valueobject.EUR)))
	live := o.State()
	history := commit(t, o)

	loaded, err := LoadOutcome(o.Key(), history)
	require.NoError(t, err)
	assert.Equal(t, live, loaded.State())
	assert.Equal(t, len(history), loaded.Version())

	again, err := LoadOutcome(o.Key(), history)
	require.NoError(t, err)
	assert.Equal(t, loaded.State(), again.State())

	t.Run("category added before creation is corrupt", func(t *testing.T) {
		_, err := LoadOutcome(o.Key(), history[1:])
		assert.True(t, errors.Is(err, shared.ErrCorruptHistory))
	})
}
