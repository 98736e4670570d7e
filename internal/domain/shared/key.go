package shared

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Key identifies an entity by its type tag and identity value.
// A key whose ID is uuid.Nil is empty: it marks "not yet assigned" or
// "unknown" and never equals a real key.
type Key struct {
	Type string
	ID   uuid.UUID
}

// NewKey creates a key with a freshly generated identity
func NewKey(keyType string) Key {
	return Key{Type: keyType, ID: uuid.New()}
}

// EmptyKey returns the empty key of the given type
func EmptyKey(keyType string) Key {
	return Key{Type: keyType}
}

// KeyFrom builds a key from an existing identity
func KeyFrom(keyType string, id uuid.UUID) Key {
	return Key{Type: keyType, ID: id}
}

// ParseKey parses an identity string into a key of the given type
func ParseKey(keyType, id string) (Key, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return Key{}, NewDomainError(CodeValidation, fmt.Sprintf("invalid %s key: %s", keyType, id))
	}
	return Key{Type: keyType, ID: parsed}, nil
}

// IsEmpty reports whether the key has no identity assigned
func (k Key) IsEmpty() bool {
	return k.ID == uuid.Nil
}

// Equals reports whether both keys carry the same type and identity
func (k Key) Equals(other Key) bool {
	return k.Type == other.Type && k.ID == other.ID
}

// String returns "type:uuid"
func (k Key) String() string {
	if k.IsEmpty() {
		return k.Type + ":empty"
	}
	return k.Type + ":" + k.ID.String()
}

type keyJSON struct {
	Type string    `json:"type"`
	ID   uuid.UUID `json:"id"`
}

// MarshalJSON implements json.Marshaler
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(keyJSON{Type: k.Type, ID: k.ID})
}

// UnmarshalJSON implements json.Unmarshaler
func (k *Key) UnmarshalJSON(data []byte) error {
	var v keyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	k.Type = v.Type
	k.ID = v.ID
	return nil
}
