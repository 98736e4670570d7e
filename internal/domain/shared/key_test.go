package shared

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Equals(t *testing.T) {
	id := uuid.New()

	t.Run("same type and identity are equal", func(t *testing.T) {
		assert.True(t, KeyFrom("Outcome", id).Equals(KeyFrom("Outcome", id)))
	})

	t.Run("different type is not equal", func(t *testing.T) {
		assert.False(t, KeyFrom("Outcome", id).Equals(KeyFrom("Category", id)))
	})

	t.Run("empty key never equals a real key", func(t *testing.T) {
		empty := EmptyKey("Category")
		assert.True(t, empty.IsEmpty())
		assert.False(t, empty.Equals(NewKey("Category")))
		assert.False(t, NewKey("Category").Equals(empty))
	})
}

func TestNewKey(t *testing.T) {
	k1 := NewKey("Outcome")
	k2 := NewKey("Outcome")

	assert.False(t, k1.IsEmpty())
	assert.Equal(t, "Outcome", k1.Type)
	assert.False(t, k1.Equals(k2))
}

func TestParseKey(t *testing.T) {
	id := uuid.New()

	k, err := ParseKey("Category", id.String())
	require.NoError(t, err)
	assert.Equal(t, KeyFrom("Category", id), k)

	_, err = ParseKey("Category", "not-a-uuid")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestKey_String(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.Equal(t, "Outcome:6ba7b810-9dad-11d1-80b4-00c04fd430c8", KeyFrom("Outcome", id).String())
	assert.Equal(t, "Outcome:empty", EmptyKey("Outcome").String())
}

func TestKey_JSON(t *testing.T) {
	k := NewKey("Category")

	data, err := json.Marshal(k)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"Category"`)

	var decoded Key
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, k.Equals(decoded))
}
