package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"postcards/application/ports"
	"postcards/application/queries"
	"postcards/application/services"
	"postcards/domain/events"
	"postcards/infrastructure/di"
	"postcards/infrastructure/persistence/memory"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingEventBus captures published events instead of shipping them
type recordingEventBus struct {
	published []events.DomainEvent
}

func (b *recordingEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingEventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	b.published = append(b.published, batch...)
	return nil
}

func (b *recordingEventBus) Subscribe(eventType string, handler ports.EventHandler) error {
	return nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *recordingEventBus) {
	t.Helper()
	logger := zap.NewNop()
	repo := memory.NewPostcardRepository()
	eventBus := &recordingEventBus{}
	cache := di.NewInMemoryCache()
	flowService := services.NewFlowService(repo, logger)

	commandBus := di.ProvideCommandBus(repo, eventBus, logger)
	queryBus := di.ProvideQueryBus(repo, flowService, cache, logger)

	postcardHandler := NewPostcardHandler(commandBus, queryBus, logger)
	flowHandler := NewFlowHandler(queryBus, logger)

	r := chi.NewRouter()
	r.Get("/postcards", postcardHandler.ListPostcards)
	r.Post("/postcards", postcardHandler.CreatePostcard)
	r.Get("/postcards/{slugID}", postcardHandler.GetPostcard)
	r.Get("/flow", flowHandler.GetFlow)
	r.Post("/flow/advance", flowHandler.Advance)
	r.Get("/choices/{choiceSetID}", flowHandler.GetChoices)
	r.Post("/choices/{choiceSetID}/resolve", flowHandler.ResolveChoice)
	return r, eventBus
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreatePostcard(t *testing.T) {
	router, eventBus := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/postcards", map[string]string{
		"message": "The shore was louder than I remembered.",
		"from":    "R",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreatePostcardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.SlugID, "user-"))
	assert.NotEmpty(t, resp.CreatedAt)

	require.Len(t, eventBus.published, 1)
	assert.Equal(t, "postcard.created", eventBus.published[0].GetEventType())

	t.Run("created card is readable", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/postcards/"+resp.SlugID, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var card queries.PostcardResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
		assert.Equal(t, "The shore was louder than I remembered.", card.Message)
		assert.Equal(t, "R", card.From)
		assert.Equal(t, "user", card.Source)
	})
}

func TestCreatePostcardValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("missing message", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/postcards", map[string]string{"from": "X"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/postcards", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetPostcardNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/postcards/user-nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPostcards(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, msg := range []string{"one", "two", "three"} {
		rec := doJSON(t, router, http.MethodPost, "/postcards", map[string]string{"message": msg})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	t.Run("flat list", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/postcards?source=user", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var result queries.ListPostcardsResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, 3, result.Total)
		assert.Len(t, result.Postcards, 3)
	})

	t.Run("grouped by scene", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/postcards?grouped=true", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var result queries.ListPostcardsResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Len(t, result.Grouped["writeBack"], 3)
	})

	t.Run("bad source rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/postcards?source=martian", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFlowEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("get flow", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/flow", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var result queries.GetFlowResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "first", result.Entry)
		assert.Equal(t, "house-main", result.Flow["first"])
	})

	t.Run("advance with interstitial", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/flow/advance", map[string]string{"currentId": "first"})
		require.Equal(t, http.StatusOK, rec.Code)

		var result queries.AdvanceFlowResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "house-main", result.NextID)
		assert.True(t, result.RequiresInterstitial)
		require.NotNil(t, result.Interstitial)
		assert.Equal(t, 2500, result.Interstitial.DurationMs)
	})

	t.Run("advance past the end returns home", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/flow/advance", map[string]string{"currentId": "writeBack"})
		require.Equal(t, http.StatusOK, rec.Code)

		var result queries.AdvanceFlowResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.True(t, result.ReturnHome)
		assert.Empty(t, result.NextID)
	})

	t.Run("advance requires a current node", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/flow/advance", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChoiceEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("known choice set", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/choices/house-choices", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown choice set", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/choices/attic-choices", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("resolve known choice", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/choices/house-choices/resolve", map[string]string{"choiceId": "house-choice-1"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ResolveChoiceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Resolved)
		assert.Equal(t, "house-choice-1", resp.NextID)
	})

	t.Run("unknown choice is not an error", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/choices/house-choices/resolve", map[string]string{"choiceId": "house-choice-9"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ResolveChoiceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Resolved)
		assert.Empty(t, resp.NextID)
	})
}
