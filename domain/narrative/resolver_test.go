package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvance(t *testing.T) {
	flow, _ := BuildFlow(StaticFlow, SeedCards, []Card{
		userCard("u1", "2024-01-01"),
		userCard("u2", "2024-03-01"),
	})

	tests := []struct {
		name    string
		current string
		want    Decision
	}{
		{"entry to first chapter", "first", Decision{NextID: "house-main", RequiresInterstitial: true}},
		{"main to its menu", "house-main", Decision{NextID: "house-choices"}},
		{"leaf to next chapter", "house-choice-2", Decision{NextID: "city-main", RequiresInterstitial: true}},
		{"terminal leaf into chain", "shore-choice-1", Decision{NextID: "u1", RequiresInterstitial: true}},
		{"inside the chain", "u1", Decision{NextID: "u2"}},
		{"chain tail", "u2", Decision{NextID: "writeBack"}},
		{"writeBack is a dead end", "writeBack", Decision{ReturnHome: true}},
		{"unknown node ends the walk", "never-stored", Decision{ReturnHome: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Advance(flow, tt.current))
		})
	}
}

func TestNeedsInterstitial(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{"first", "house-main", true},
		{"house-choice-1", "city-main", true},
		{"city-choice-2", "shore-main", true},
		{"shore-choice-1", "u1", true},
		{"shore-choice-2", "writeBack", false},
		{"house-choice-1", "u1", false},
		{"city-choice-2", "u1", false},
		{"u1", "u2", false},
		{"u2", "writeBack", false},
		{"house-main", "house-choices", false},
		{"house-choices", "house-choice-1", false},
		{"first", "u1", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NeedsInterstitial(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestInterstitialFor(t *testing.T) {
	catalog := NewCatalog(SeedCards, []Card{
		{SlugID: "u1", Message: "wish you were here"},
	})

	t.Run("postmark and transition label", func(t *testing.T) {
		i := InterstitialFor(catalog, "house-choice-1", "city-main")
		assert.Equal(t, "The City Between Seasons", i.Title)
		assert.Equal(t, "A train pulls away without you. Another arrives", i.Subtitle)
		assert.Equal(t, DefaultInterstitialMs, i.DurationMs)
	})

	t.Run("entry into first chapter", func(t *testing.T) {
		i := InterstitialFor(catalog, "first", "house-main")
		assert.Equal(t, "The Old House", i.Title)
		assert.Equal(t, "The road bends toward a porch light", i.Subtitle)
	})

	t.Run("visitor card without postmark humanizes the slug", func(t *testing.T) {
		i := InterstitialFor(catalog, "shore-choice-1", "u1")
		assert.Equal(t, "U1", i.Title)
		assert.Equal(t, "A postcard from another visitor", i.Subtitle)
	})

	t.Run("unknown destination humanizes too", func(t *testing.T) {
		i := InterstitialFor(catalog, "shore-choice-2", "user-3f2a")
		assert.Equal(t, "User 3f2a", i.Title)
	})
}

func TestHumanizeSlug(t *testing.T) {
	assert.Equal(t, "House Main", humanizeSlug("house-main"))
	assert.Equal(t, "User Abc", humanizeSlug("user-abc"))
	assert.Equal(t, "Solo", humanizeSlug("solo"))
	assert.Equal(t, "A  B", humanizeSlug("a--b"))
}
