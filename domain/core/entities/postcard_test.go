package entities

import (
	"testing"
	"time"

	"postcards/domain/core/valueobjects"
	"postcards/domain/narrative"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserPostcard(t *testing.T) {
	message, err := valueobjects.NewMessage("Came here by accident, stayed on purpose.", "Anyone", "M")
	require.NoError(t, err)

	postcard, err := NewUserPostcard(message, "")
	require.NoError(t, err)

	assert.Equal(t, SourceUser, postcard.Source())
	assert.Equal(t, narrative.WriteBackNodeID, postcard.Scene())
	assert.False(t, postcard.SlugID().IsZero())

	events := postcard.GetUncommittedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "postcard.created", events[0].GetEventType())

	postcard.MarkEventsAsCommitted()
	assert.Empty(t, postcard.GetUncommittedEvents())
}

func TestNewUserPostcardWithSlug(t *testing.T) {
	message, err := valueobjects.NewMessage("hello", "", "")
	require.NoError(t, err)

	t.Run("visitor slug accepted", func(t *testing.T) {
		slugID, err := valueobjects.NewSlugIDFromString("user-abc123")
		require.NoError(t, err)

		postcard, err := NewUserPostcardWithSlug(slugID, message, "")
		require.NoError(t, err)
		assert.Equal(t, "user-abc123", postcard.SlugID().String())
	})

	t.Run("story vocabulary rejected", func(t *testing.T) {
		for _, slug := range []string{"first", "writeBack", "house-main", "shore-choice-2"} {
			slugID, err := valueobjects.NewSlugIDFromString(slug)
			require.NoError(t, err)

			_, err = NewUserPostcardWithSlug(slugID, message, "")
			assert.Error(t, err, slug)
		}
	})
}

func TestNewSeedPostcard(t *testing.T) {
	t.Run("authored card", func(t *testing.T) {
		card := narrative.SeedCards[0]
		postcard, err := NewSeedPostcard(card)
		require.NoError(t, err)

		assert.Equal(t, SourceSeed, postcard.Source())
		assert.Equal(t, card.SlugID, postcard.SlugID().String())
		assert.Equal(t, card.Message, postcard.Message().Body())

		events := postcard.GetUncommittedEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "postcard.seeded", events[0].GetEventType())
	})

	t.Run("non-story slug rejected", func(t *testing.T) {
		card := narrative.SeedCards[0]
		card.SlugID = "user-not-a-story-card"
		_, err := NewSeedPostcard(card)
		assert.Error(t, err)
	})
}

func TestPostcardToCard(t *testing.T) {
	message, err := valueobjects.NewMessage("body", "to", "from")
	require.NoError(t, err)

	postcard, err := NewUserPostcard(message, "")
	require.NoError(t, err)

	card := postcard.ToCard()
	assert.Equal(t, postcard.SlugID().String(), card.SlugID)
	assert.Equal(t, "body", card.Message)
	assert.Equal(t, "to", card.To)
	assert.Equal(t, "from", card.From)
	assert.Equal(t, narrative.WriteBackNodeID, card.Scene)

	// Date must round-trip so the flow builder can order the chain
	parsed, err := time.Parse(time.RFC3339, card.Date)
	require.NoError(t, err)
	assert.WithinDuration(t, postcard.CreatedAt(), parsed, time.Second)
}

func TestReconstructPostcard(t *testing.T) {
	slugID, err := valueobjects.NewSlugIDFromString("user-restored")
	require.NoError(t, err)
	message, err := valueobjects.NewMessage("restored", "", "")
	require.NoError(t, err)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	postcard, err := ReconstructPostcard(slugID, message, SourceUser, "writeBack", "", "", "", "", created)
	require.NoError(t, err)

	assert.Equal(t, created, postcard.CreatedAt())
	assert.Empty(t, postcard.GetUncommittedEvents())

	t.Run("unknown source rejected", func(t *testing.T) {
		_, err := ReconstructPostcard(slugID, message, PostcardSource("weird"), "", "", "", "", "", created)
		assert.Error(t, err)
	})
}
