package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Run("valid message", func(t *testing.T) {
		m, err := NewMessage("Wish you were here.", "Anyone", "Iris")
		require.NoError(t, err)
		assert.Equal(t, "Wish you were here.", m.Body())
		assert.Equal(t, "Anyone", m.To())
		assert.Equal(t, "Iris", m.From())
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		m, err := NewMessage("  hello  ", " to ", " from ")
		require.NoError(t, err)
		assert.Equal(t, "hello", m.Body())
		assert.Equal(t, "to", m.To())
		assert.Equal(t, "from", m.From())
	})

	t.Run("empty body rejected", func(t *testing.T) {
		_, err := NewMessage("   ", "", "")
		assert.Error(t, err)
	})

	t.Run("empty sender gets the default", func(t *testing.T) {
		m, err := NewMessage("hello", "", "")
		require.NoError(t, err)
		assert.Equal(t, "A Visitor", m.From())
	})

	t.Run("body over the limit rejected", func(t *testing.T) {
		_, err := NewMessage(strings.Repeat("x", 2001), "", "")
		assert.Error(t, err)
	})

	t.Run("length limit counts runes not bytes", func(t *testing.T) {
		_, err := NewMessage(strings.Repeat("é", 2000), "", "")
		assert.NoError(t, err)
	})
}

func TestMessageSummary(t *testing.T) {
	m, err := NewMessage(strings.Repeat("a", 100), "", "")
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("a", 100), m.Summary(100))
	assert.Equal(t, strings.Repeat("a", 77)+"...", m.Summary(80))
	assert.Equal(t, "", m.Summary(0))
}
