package ports

import (
	"context"

	"postcards/domain/core/entities"
	"postcards/domain/core/valueobjects"
	"postcards/domain/events"
)

// PostcardRepository defines the interface for postcard persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type PostcardRepository interface {
	// Save persists a new postcard. Fails with a conflict error when the
	// slug is already taken.
	Save(ctx context.Context, postcard *entities.Postcard) error

	// GetBySlug retrieves a postcard by its slug
	GetBySlug(ctx context.Context, slugID valueobjects.SlugID) (*entities.Postcard, error)

	// List retrieves postcards matching the filter, sorted by creation
	// time ascending
	List(ctx context.Context, filter ListFilter) ([]*entities.Postcard, error)
}

// ListFilter defines list query parameters
type ListFilter struct {
	Source entities.PostcardSource // empty means both
	Scene  string                  // empty means all scenes
	Limit  int                     // zero means repository default
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// EventBus defines the interface for publishing domain events
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler for an event type
	Subscribe(eventType string, handler EventHandler) error
}

// EventHandler defines the interface for handling domain events
type EventHandler interface {
	// Handle processes an event
	Handle(ctx context.Context, event events.DomainEvent) error

	// CanHandle checks if this handler can process the event
	CanHandle(eventType string) bool
}

// Cache defines the interface for caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}
