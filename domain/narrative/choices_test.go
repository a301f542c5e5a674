package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoiceSetFor(t *testing.T) {
	for _, id := range []string{"house-choices", "city-choices", "shore-choices"} {
		set, ok := ChoiceSetFor(id)
		require.True(t, ok, id)
		assert.Equal(t, id, set.ID)
		assert.Len(t, set.Choices, 2)
	}

	_, ok := ChoiceSetFor("garden-choices")
	assert.False(t, ok)
}

func TestResolveChoice(t *testing.T) {
	next, ok := ResolveChoice("house-choices", "house-choice-1")
	require.True(t, ok)
	assert.Equal(t, "house-choice-1", next)

	next, ok = ResolveChoice("shore-choices", "shore-choice-2")
	require.True(t, ok)
	assert.Equal(t, "shore-choice-2", next)

	_, ok = ResolveChoice("house-choices", "city-choice-1")
	assert.False(t, ok, "choice from another set must miss")

	_, ok = ResolveChoice("no-such-set", "house-choice-1")
	assert.False(t, ok)
}

// Every choice target must be a node the static story knows about, so a
// resolved choice always has an onward edge.
func TestChoiceTargetsExistInStaticFlow(t *testing.T) {
	for _, id := range []string{"house-choices", "city-choices", "shore-choices"} {
		set, _ := ChoiceSetFor(id)
		for _, c := range set.Choices {
			_, ok := StaticFlow[c.PostcardID]
			assert.True(t, ok, "%s target %s missing from static flow", id, c.PostcardID)
		}
	}
}
