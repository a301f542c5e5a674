package services

import (
	"context"
	"testing"
	"time"

	"postcards/domain/core/entities"
	"postcards/domain/core/valueobjects"
	"postcards/domain/narrative"
	"postcards/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeBack(t *testing.T, repo *memory.PostcardRepository, slug, body string) {
	t.Helper()
	slugID, err := valueobjects.NewSlugIDFromString(slug)
	require.NoError(t, err)
	message, err := valueobjects.NewMessage(body, "", "")
	require.NoError(t, err)
	postcard, err := entities.NewUserPostcardWithSlug(slugID, message, "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), postcard))
	// Creation timestamps must differ for a deterministic chain order
	time.Sleep(2 * time.Millisecond)
}

func TestSnapshotFallsBackToBuiltInStory(t *testing.T) {
	svc := NewFlowService(memory.NewPostcardRepository(), zap.NewNop())

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, snap.UserCards)
	assert.Equal(t, "house-main", snap.Flow["first"])
	// Without visitor cards the terminal leaves point straight home
	assert.Equal(t, narrative.WriteBackNodeID, snap.Flow["shore-choice-1"])

	_, ok := snap.Catalog["first"]
	assert.True(t, ok)
}

func TestSnapshotSplicesVisitorChain(t *testing.T) {
	repo := memory.NewPostcardRepository()
	writeBack(t, repo, "user-aaa", "first card")
	writeBack(t, repo, "user-bbb", "second card")

	svc := NewFlowService(repo, zap.NewNop())
	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, snap.UserCards)
	assert.Equal(t, "user-aaa", snap.Flow["shore-choice-1"])
	assert.Equal(t, "user-aaa", snap.Flow["shore-choice-2"])
	assert.Equal(t, "user-bbb", snap.Flow["user-aaa"])
	assert.Equal(t, narrative.WriteBackNodeID, snap.Flow["user-bbb"])
}

func TestSnapshotSeesWriteBacksImmediately(t *testing.T) {
	repo := memory.NewPostcardRepository()
	svc := NewFlowService(repo, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, first.UserCards)

	// Simulates a write landing from another process; no invalidation
	// hook runs, the next read must still pick it up.
	writeBack(t, repo, "user-late", "arrived after the first snapshot")

	rebuilt, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, rebuilt)
	assert.Equal(t, 1, rebuilt.UserCards)
	assert.Equal(t, "user-late", rebuilt.Flow["shore-choice-1"])
}

func TestAdvanceWalksTheStory(t *testing.T) {
	repo := memory.NewPostcardRepository()
	writeBack(t, repo, "user-ccc", "a card")

	svc := NewFlowService(repo, zap.NewNop())
	ctx := context.Background()

	decision, snap, err := svc.Advance(ctx, "shore-choice-1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "user-ccc", decision.NextID)
	assert.True(t, decision.RequiresInterstitial)

	decision, _, err = svc.Advance(ctx, narrative.WriteBackNodeID)
	require.NoError(t, err)
	assert.True(t, decision.ReturnHome)
}

func TestSnapshotHonorsContextCancellation(t *testing.T) {
	svc := NewFlowService(memory.NewPostcardRepository(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The canceled context either aborts the join or the fast in-memory
	// fetches win the race; both are acceptable, a hang is not.
	done := make(chan struct{})
	go func() {
		_, _ = svc.Snapshot(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Snapshot did not return under a canceled context")
	}
}
