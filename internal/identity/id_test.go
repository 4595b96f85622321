package identity_test

import (
	"encoding/json"
	"testing"

	"github.com/KDAtkins/infrastructure/internal/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := identity.New()

		fromText, err := identity.Parse(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, fromText)

		fromBinary, err := identity.Parse(id.Bytes())
		require.NoError(t, err)
		assert.Equal(t, id, fromBinary)
	}
}

func TestNewIsRandom(t *testing.T) {
	seen := make(map[identity.ID]struct{})
	for i := 0; i < 1000; i++ {
		id := identity.New()
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestParseMissing(t *testing.T) {
	var nilString *string
	for _, candidate := range []any{nil, "", []byte{}, nilString} {
		_, err := identity.Parse(candidate)
		assert.ErrorIs(t, err, identity.ErrMissingIdentifier, "candidate %#v", candidate)
	}
}

func TestParseInvalid(t *testing.T) {
	candidates := []any{
		"not-a-uuid",
		"6ba7b810-9dad-11d1-80b4-00c04fd430c",
		"6ba7b8109dad11d180b400c04fd430c8",
		"zzzzzzzz-9dad-11d1-80b4-00c04fd430c8",
		[]byte{1, 2, 3},
		42,
	}
	for _, candidate := range candidates {
		_, err := identity.Parse(candidate)
		assert.ErrorIs(t, err, identity.ErrInvalidIdentifier, "candidate %#v", candidate)
	}
}

func TestParseAcceptsUUID(t *testing.T) {
	u := uuid.New()
	id, err := identity.Parse(u)
	require.NoError(t, err)
	assert.Equal(t, u.String(), id.String())
}

func TestValueIsBinary(t *testing.T) {
	id := identity.New()
	v, err := id.Value()
	require.NoError(t, err)
	b, ok := v.([]byte)
	require.True(t, ok)
	assert.Len(t, b, identity.Size)

	var scanned identity.ID
	require.NoError(t, scanned.Scan(b))
	assert.Equal(t, id, scanned)
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		ID identity.ID `json:"id"`
	}
	id := identity.New()
	raw, err := json.Marshal(wrapper{ID: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+id.String()+`"}`, string(raw))

	var decoded wrapper
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, id, decoded.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id":"bogus"}`), &decoded))
}
