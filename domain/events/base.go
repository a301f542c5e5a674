package events

import (
	"time"

	"postcards/domain/core/valueobjects"
)

// SourceBackend identifies this service as the event source on the bus
const SourceBackend = "postcards.backend"

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Postcard Events

// PostcardCreated is raised when a visitor writes back. The gallery
// lambda fans it out to connected browsers.
type PostcardCreated struct {
	BaseEvent
	SlugID  valueobjects.SlugID `json:"slug_id"`
	Source  string              `json:"source"`
	Scene   string              `json:"scene"`
	From    string              `json:"from"`
	Summary string              `json:"summary"`
}

// NewPostcardCreated creates a PostcardCreated event
func NewPostcardCreated(slugID valueobjects.SlugID, source, scene, from, summary string, timestamp time.Time) PostcardCreated {
	return PostcardCreated{
		BaseEvent: BaseEvent{
			AggregateID: slugID.String(),
			EventType:   "postcard.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		SlugID:  slugID,
		Source:  source,
		Scene:   scene,
		From:    from,
		Summary: summary,
	}
}

// PostcardSeeded is raised when an authored story card is loaded into
// the store by the seeding tool.
type PostcardSeeded struct {
	BaseEvent
	SlugID valueobjects.SlugID `json:"slug_id"`
	Scene  string              `json:"scene"`
}

// NewPostcardSeeded creates a PostcardSeeded event
func NewPostcardSeeded(slugID valueobjects.SlugID, scene string, timestamp time.Time) PostcardSeeded {
	return PostcardSeeded{
		BaseEvent: BaseEvent{
			AggregateID: slugID.String(),
			EventType:   "postcard.seeded",
			Timestamp:   timestamp,
			Version:     1,
		},
		SlugID: slugID,
		Scene:  scene,
	}
}
