package event

import (
	"errors"
	"testing"
	"time"

	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFinanceSerializer() *EventSerializer {
	s := NewEventSerializer()
	finance.RegisterEvents(s)
	return s
}

func TestEventSerializer_RoundTrip(t *testing.T) {
	s := newFinanceSerializer()
	categoryKey := shared.NewKey(finance.AggregateTypeCategory)
	when := time.Date(2016, 10, 3, 9, 30, 0, 0, time.UTC)

	original := finance.NewOutcomeCreatedEvent(shared.NewKey(finance.AggregateTypeOutcome),
		valueobject.MustPrice("5.00", valueobject.EUR), "Lunch", when, categoryKey)
	original.AssignSequence(1)

	data, err := s.Serialize(original)
	require.NoError(t, err)

	decoded, err := s.Deserialize(finance.EventTypeOutcomeCreated, 1, data)
	require.NoError(t, err)

	created, ok := decoded.(*finance.OutcomeCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, original.EventID(), created.EventID())
	assert.True(t, original.AggregateKey().Equals(created.AggregateKey()))
	assert.Equal(t, int64(1), created.Sequence())
	assert.True(t, created.Amount.Equals(valueobject.MustPrice("5", valueobject.EUR)))
	assert.True(t, created.CategoryKey.Equals(categoryKey))
	assert.True(t, when.Equal(created.When))
}

func TestEventSerializer_UnknownType(t *testing.T) {
	_, err := NewEventSerializer().Deserialize("Nope", 1, []byte(`{}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrCorruptHistory))
}

func TestEventSerializer_Upgrader(t *testing.T) {
	s := newFinanceSerializer()
	// v1 categories had no color; v2 added it with a default
	s.RegisterUpgrader(finance.EventTypeCategoryCreated, 1, func(data map[string]any) (map[string]any, error) {
		if _, ok := data["color"]; !ok {
			data["color"] = "#000000"
		}
		return data, nil
	})

	key := shared.NewKey(finance.AggregateTypeCategory)
	payload := []byte(`{"id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","type":"CategoryCreated",` +
		`"aggregate_key":{"type":"Category","id":"` + key.ID.String() + `"},"sequence":1,"name":"Food"}`)

	decoded, err := s.Deserialize(finance.EventTypeCategoryCreated, 1, payload)
	require.NoError(t, err)

	created := decoded.(*finance.CategoryCreatedEvent)
	assert.Equal(t, "Food", created.Name)
	assert.Equal(t, "#000000", created.Color)
	assert.Equal(t, 2, created.SchemaVersion())

	t.Run("current payloads are not upgraded", func(t *testing.T) {
		e := finance.NewCategoryCreatedEvent(key, "Rent", "#FF0000")
		data, err := s.Serialize(e)
		require.NoError(t, err)

		decoded, err := s.Deserialize(finance.EventTypeCategoryCreated, 2, data)
		require.NoError(t, err)
		assert.Equal(t, "#FF0000", decoded.(*finance.CategoryCreatedEvent).Color)
	})
}

func TestEventSerializer_UpgraderError(t *testing.T) {
	s := newFinanceSerializer()
	s.RegisterUpgrader(finance.EventTypeCategoryDeleted, 1, func(map[string]any) (map[string]any, error) {
		return nil, errors.New("cannot upgrade")
	})

	_, err := s.Deserialize(finance.EventTypeCategoryDeleted, 1, []byte(`{}`))
	assert.Error(t, err)
}

func TestEventSerializer_RegisteredTypes(t *testing.T) {
	s := newFinanceSerializer()
	types := s.RegisteredTypes()

	assert.True(t, s.IsRegistered(finance.EventTypeExpenseTemplateFixedChanged))
	assert.Len(t, types, 17)
	assert.IsIncreasing(t, types)
}
