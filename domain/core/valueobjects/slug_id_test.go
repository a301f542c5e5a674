package valueobjects

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlugID(t *testing.T) {
	id := NewSlugID()
	assert.True(t, strings.HasPrefix(id.String(), "user-"))
	assert.False(t, id.IsZero())

	// Generated slugs must be unique
	assert.False(t, id.Equals(NewSlugID()))
}

func TestNewSlugIDFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"story slug", "house-main", false},
		{"visitor slug", "user-123e4567-e89b-12d3-a456-426614174000", false},
		{"underscores allowed", "card_1", false},
		{"empty", "", true},
		{"leading dash", "-bad", true},
		{"spaces", "not a slug", true},
		{"too long", strings.Repeat("a", 121), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewSlugIDFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestSlugIDJSON(t *testing.T) {
	id, err := NewSlugIDFromString("house-main")
	require.NoError(t, err)

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"house-main"`, string(data))

	var decoded SlugID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, id.Equals(decoded))
}
