package integration

import (
	"context"
	"fmt"
	"testing"

	"postcards/application/commands"
	"postcards/application/ports"
	"postcards/application/services"
	"postcards/domain/core/entities"
	"postcards/domain/events"
	"postcards/domain/narrative"
	"postcards/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type dropEventBus struct{}

func (dropEventBus) Publish(ctx context.Context, event events.DomainEvent) error { return nil }
func (dropEventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	return nil
}
func (dropEventBus) Subscribe(eventType string, handler ports.EventHandler) error { return nil }

// seedStore loads the authored story the way cmd/seed does
func seedStore(t *testing.T, repo ports.PostcardRepository) {
	t.Helper()
	ctx := context.Background()
	for _, card := range narrative.SeedCards {
		postcard, err := entities.NewSeedPostcard(card)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, postcard))
	}
}

// TestFullVisit walks a complete visit: seed the store, write some
// cards back, then walk from the entry to the write-back screen,
// resolving every choice menu along the way.
func TestFullVisit(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	repo := memory.NewPostcardRepository()
	seedStore(t, repo)

	flowService := services.NewFlowService(repo, logger)
	createHandler := commands.NewCreatePostcardHandler(repo, dropEventBus{}, logger)

	// Earlier visitors already wrote back
	for i := 0; i < 3; i++ {
		_, err := createHandler.Handle(ctx, commands.CreatePostcardCommand{
			Message: fmt.Sprintf("visitor card %d", i),
		})
		require.NoError(t, err)
	}

	snap, err := flowService.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.UserCards)

	// Walk the story, always taking the first choice on a menu
	current := narrative.EntryNodeID
	visited := []string{current}
	for steps := 0; steps < 50; steps++ {
		if set, ok := narrative.ChoiceSetFor(current); ok {
			next, resolved := narrative.ResolveChoice(current, set.Choices[0].SlugID)
			require.True(t, resolved)
			current = next
			visited = append(visited, current)
			continue
		}

		decision, _, err := flowService.Advance(ctx, current)
		require.NoError(t, err)
		if decision.ReturnHome {
			break
		}

		if decision.RequiresInterstitial {
			inter := narrative.InterstitialFor(snap.Catalog, current, decision.NextID)
			assert.NotEmpty(t, inter.Title)
			assert.Equal(t, narrative.DefaultInterstitialMs, inter.DurationMs)
		}

		current = decision.NextID
		visited = append(visited, current)
	}

	// The walk must pass through every chapter, the full visitor chain,
	// and end on the write-back screen.
	assert.Equal(t, narrative.WriteBackNodeID, visited[len(visited)-1])
	for _, want := range []string{"house-main", "city-main", "shore-main"} {
		assert.Contains(t, visited, want)
	}
	userSeen := 0
	for _, id := range visited {
		if narrative.Classify(id) == narrative.KindUserAuthored {
			userSeen++
		}
	}
	assert.Equal(t, 3, userSeen)
}

// TestWriteBackExtendsNextVisit checks that a card written at the end
// of one visit is spliced into the next visit's walk.
func TestWriteBackExtendsNextVisit(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	repo := memory.NewPostcardRepository()
	seedStore(t, repo)

	flowService := services.NewFlowService(repo, logger)
	createHandler := commands.NewCreatePostcardHandler(repo, dropEventBus{}, logger)

	before, err := flowService.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, narrative.WriteBackNodeID, before.Flow["shore-choice-1"])

	postcard, err := createHandler.Handle(ctx, commands.CreatePostcardCommand{
		Message: "I was here, briefly.",
		From:    "S",
	})
	require.NoError(t, err)

	after, err := flowService.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, postcard.SlugID().String(), after.Flow["shore-choice-1"])
	assert.Equal(t, narrative.WriteBackNodeID, after.Flow[postcard.SlugID().String()])
}
