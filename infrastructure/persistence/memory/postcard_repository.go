package memory

import (
	"context"
	"sort"
	"sync"

	"postcards/application/ports"
	"postcards/domain/core/entities"
	"postcards/domain/core/valueobjects"
	pkgerrors "postcards/pkg/errors"
)

// PostcardRepository is an in-memory ports.PostcardRepository for local
// development and tests.
type PostcardRepository struct {
	mu        sync.RWMutex
	postcards map[string]*entities.Postcard
}

// NewPostcardRepository creates an empty in-memory repository
func NewPostcardRepository() *PostcardRepository {
	return &PostcardRepository{
		postcards: make(map[string]*entities.Postcard),
	}
}

// Save stores a postcard, failing when the slug is already taken
func (r *PostcardRepository) Save(ctx context.Context, postcard *entities.Postcard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slug := postcard.SlugID().String()
	if _, exists := r.postcards[slug]; exists {
		return pkgerrors.ErrSlugTaken.WithDetail("slug", slug)
	}

	r.postcards[slug] = postcard
	return nil
}

// GetBySlug retrieves a postcard by its slug
func (r *PostcardRepository) GetBySlug(ctx context.Context, slugID valueobjects.SlugID) (*entities.Postcard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	postcard, ok := r.postcards[slugID.String()]
	if !ok {
		return nil, pkgerrors.ErrPostcardNotFound.WithDetail("slug", slugID.String())
	}
	return postcard, nil
}

// List returns postcards matching the filter, oldest first
func (r *PostcardRepository) List(ctx context.Context, filter ports.ListFilter) ([]*entities.Postcard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entities.Postcard
	for _, postcard := range r.postcards {
		if filter.Source != "" && postcard.Source() != filter.Source {
			continue
		}
		if filter.Scene != "" && postcard.Scene() != filter.Scene {
			continue
		}
		result = append(result, postcard)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt().Equal(result[j].CreatedAt()) {
			return result[i].SlugID().String() < result[j].SlugID().String()
		}
		return result[i].CreatedAt().Before(result[j].CreatedAt())
	})

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result, nil
}

// Count returns the number of stored postcards
func (r *PostcardRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.postcards)
}
