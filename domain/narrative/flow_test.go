package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userCard(slug, date string) Card {
	return Card{SlugID: slug, Date: date, Message: "hello from " + slug}
}

func TestBuildFlowNoUserCards(t *testing.T) {
	flow, warnings := BuildFlow(StaticFlow, SeedCards, nil)

	assert.Empty(t, warnings)
	assert.Equal(t, "house-main", flow["first"])
	assert.Equal(t, "house-choices", flow["house-main"])
	assert.Equal(t, "city-choices", flow["city-main"])
	assert.Equal(t, "shore-choices", flow["shore-main"])
	// Without visitor cards both terminal leaves go straight to the
	// composition screen.
	assert.Equal(t, "writeBack", flow["shore-choice-1"])
	assert.Equal(t, "writeBack", flow["shore-choice-2"])
	_, hasOut := flow["writeBack"]
	assert.False(t, hasOut, "writeBack must stay a dead end")
}

func TestBuildFlowSplicesUserChainByDate(t *testing.T) {
	user := []Card{
		userCard("u2", "2024-03-01"),
		userCard("u1", "2024-01-01"),
	}
	flow, warnings := BuildFlow(StaticFlow, SeedCards, user)

	assert.Empty(t, warnings)
	assert.Equal(t, "u1", flow["shore-choice-1"])
	assert.Equal(t, "u1", flow["shore-choice-2"])
	assert.Equal(t, "u2", flow["u1"])
	assert.Equal(t, "writeBack", flow["u2"])
}

func TestBuildFlowMissingDateSortsFirst(t *testing.T) {
	user := []Card{
		userCard("dated", "2024-06-15"),
		userCard("undated", ""),
	}
	flow, _ := BuildFlow(StaticFlow, SeedCards, user)

	assert.Equal(t, "undated", flow["shore-choice-1"])
	assert.Equal(t, "dated", flow["undated"])
	assert.Equal(t, "writeBack", flow["dated"])
}

func TestBuildFlowStableOrderOnEqualDates(t *testing.T) {
	user := []Card{
		userCard("a", "2024-01-01"),
		userCard("b", "2024-01-01"),
		userCard("c", "2024-01-01"),
	}
	flow, _ := BuildFlow(StaticFlow, SeedCards, user)

	assert.Equal(t, "a", flow["shore-choice-1"])
	assert.Equal(t, "b", flow["a"])
	assert.Equal(t, "c", flow["b"])
	assert.Equal(t, "writeBack", flow["c"])
}

func TestBuildFlowExcludesStoryShapedAndSeedCollisions(t *testing.T) {
	user := []Card{
		userCard("house-main", "2024-01-01"),     // story-shaped
		userCard("shore-choice-1", "2024-01-02"), // story-shaped
		userCard("first", "2024-01-03"),          // story-shaped
		userCard("u1", "2024-02-01"),
	}
	seed := append([]Card{}, SeedCards...)
	seed = append(seed, Card{SlugID: "taken-slug"})
	user = append(user, userCard("taken-slug", "2024-02-02"))

	flow, _ := BuildFlow(StaticFlow, seed, user)

	assert.Equal(t, "u1", flow["shore-choice-1"])
	assert.Equal(t, "writeBack", flow["u1"])
	_, chained := flow["taken-slug"]
	assert.False(t, chained, "seed-colliding slug must not enter the chain")
	// Story edges stay intact despite the story-shaped user slugs.
	assert.Equal(t, "house-choices", flow["house-main"])
}

func TestBuildFlowDoesNotMutateInputs(t *testing.T) {
	static := StaticFlow.Clone()
	user := []Card{userCard("u2", "2024-03-01"), userCard("u1", "2024-01-01")}

	BuildFlow(static, SeedCards, user)

	assert.Equal(t, StaticFlow, static)
	// Input slice order untouched; the builder sorts its own copy.
	assert.Equal(t, "u2", user[0].SlugID)
}

func TestBuildFlowIdempotent(t *testing.T) {
	user := []Card{userCard("u1", "2024-01-01"), userCard("u2", "2024-03-01")}

	first, w1 := BuildFlow(StaticFlow, SeedCards, user)
	second, w2 := BuildFlow(StaticFlow, SeedCards, user)

	assert.Equal(t, first, second)
	assert.Equal(t, w1, w2)
}

func TestBuildFlowWarnsOnChoiceToChoiceEdge(t *testing.T) {
	static := StaticFlow.Clone()
	static["house-choice-1"] = "house-choice-2"

	flow, warnings := BuildFlow(static, SeedCards, nil)

	require.Len(t, warnings, 1)
	assert.Equal(t, EdgeWarning{From: "house-choice-1", To: "house-choice-2"}, warnings[0])
	// Warn-only: the edge survives.
	assert.Equal(t, "house-choice-2", flow["house-choice-1"])
}

// Every walk from the entry terminates at writeBack within a bounded
// number of steps, resolving choice menus to their first option.
func TestWalkTerminates(t *testing.T) {
	user := []Card{
		userCard("u1", "2024-01-01"),
		userCard("u2", "2024-02-01"),
		userCard("u3", "2024-03-01"),
	}
	flow, _ := BuildFlow(StaticFlow, SeedCards, user)

	current := EntryNodeID
	visited := []string{current}
	for steps := 0; steps < len(flow)+2; steps++ {
		if Classify(current) == KindChoices {
			set, ok := ChoiceSetFor(current)
			require.True(t, ok, "no choice set for %s", current)
			next, ok := ResolveChoice(current, set.Choices[0].SlugID)
			require.True(t, ok)
			current = next
		} else {
			d := Advance(flow, current)
			if d.ReturnHome {
				break
			}
			current = d.NextID
		}
		visited = append(visited, current)
	}

	require.Equal(t, WriteBackNodeID, visited[len(visited)-1],
		"walk did not reach writeBack: %v", visited)
	assert.Contains(t, visited, "u1")
	assert.Contains(t, visited, "u3")
}
