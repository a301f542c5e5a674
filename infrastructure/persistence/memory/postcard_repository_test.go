package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"postcards/application/ports"
	"postcards/domain/core/entities"
	"postcards/domain/core/valueobjects"
	pkgerrors "postcards/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCard(t *testing.T, slug string) *entities.Postcard {
	t.Helper()
	slugID, err := valueobjects.NewSlugIDFromString(slug)
	require.NoError(t, err)
	message, err := valueobjects.NewMessage("a message from "+slug, "", "")
	require.NoError(t, err)
	postcard, err := entities.NewUserPostcardWithSlug(slugID, message, "")
	require.NoError(t, err)
	return postcard
}

func TestSaveAndGetBySlug(t *testing.T) {
	repo := NewPostcardRepository()
	ctx := context.Background()

	postcard := newCard(t, "user-one")
	require.NoError(t, repo.Save(ctx, postcard))

	got, err := repo.GetBySlug(ctx, postcard.SlugID())
	require.NoError(t, err)
	assert.Equal(t, postcard.SlugID().String(), got.SlugID().String())
}

func TestSaveRejectsDuplicateSlug(t *testing.T) {
	repo := NewPostcardRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newCard(t, "user-dup")))

	err := repo.Save(ctx, newCard(t, "user-dup"))
	assert.True(t, errors.Is(err, pkgerrors.ErrSlugTaken))
}

func TestGetBySlugNotFound(t *testing.T) {
	repo := NewPostcardRepository()

	slugID, err := valueobjects.NewSlugIDFromString("user-missing")
	require.NoError(t, err)

	_, err = repo.GetBySlug(context.Background(), slugID)
	assert.True(t, errors.Is(err, pkgerrors.ErrPostcardNotFound))
}

func TestListFiltersAndOrders(t *testing.T) {
	repo := NewPostcardRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, newCard(t, fmt.Sprintf("user-%d", i))))
	}

	t.Run("all user cards in creation order", func(t *testing.T) {
		got, err := repo.List(ctx, ports.ListFilter{Source: entities.SourceUser})
		require.NoError(t, err)
		require.Len(t, got, 5)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].CreatedAt().Before(got[i-1].CreatedAt()))
		}
	})

	t.Run("limit applies after ordering", func(t *testing.T) {
		got, err := repo.List(ctx, ports.ListFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("seed filter matches nothing", func(t *testing.T) {
		got, err := repo.List(ctx, ports.ListFilter{Source: entities.SourceSeed})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("scene filter", func(t *testing.T) {
		got, err := repo.List(ctx, ports.ListFilter{Scene: "writeBack"})
		require.NoError(t, err)
		assert.Len(t, got, 5)

		got, err = repo.List(ctx, ports.ListFilter{Scene: "intro"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
