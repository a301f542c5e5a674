package entities

import (
	"time"

	"postcards/domain/core/valueobjects"
	"postcards/domain/events"
	"postcards/domain/narrative"
	pkgerrors "postcards/pkg/errors"
)

// PostcardSource distinguishes authored story cards from visitor cards
type PostcardSource string

const (
	SourceSeed PostcardSource = "seed"
	SourceUser PostcardSource = "user"
)

// ValidSource reports whether s is a known source value
func ValidSource(s PostcardSource) bool {
	return s == SourceSeed || s == SourceUser
}

// Postcard is the main entity: one card in the collection, either part
// of the authored story or written back by a visitor.
// This is a rich domain model with encapsulated business logic
type Postcard struct {
	// Private fields ensure encapsulation
	slugID          valueobjects.SlugID
	message         valueobjects.Message
	source          PostcardSource
	scene           string
	postmarked      string
	illustration    string
	transitionLabel string
	choiceLabel     string
	createdAt       time.Time
	version         int

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewUserPostcard creates a visitor-written postcard with a generated
// slug. Visitor cards always land in the writeBack scene.
func NewUserPostcard(message valueobjects.Message, scene string) (*Postcard, error) {
	if message.IsEmpty() {
		return nil, pkgerrors.NewValidationError("message cannot be empty")
	}
	if scene == "" {
		scene = narrative.WriteBackNodeID
	}

	now := time.Now()
	p := &Postcard{
		slugID:    valueobjects.NewSlugID(),
		message:   message,
		source:    SourceUser,
		scene:     scene,
		createdAt: now,
		version:   1,
		events:    []events.DomainEvent{},
	}

	p.addEvent(events.NewPostcardCreated(
		p.slugID,
		string(p.source),
		p.scene,
		message.From(),
		message.Summary(80),
		now,
	))

	return p, nil
}

// NewUserPostcardWithSlug creates a visitor postcard with a
// caller-provided slug. The slug may not collide with the story
// vocabulary.
func NewUserPostcardWithSlug(slugID valueobjects.SlugID, message valueobjects.Message, scene string) (*Postcard, error) {
	if message.IsEmpty() {
		return nil, pkgerrors.NewValidationError("message cannot be empty")
	}
	if narrative.IsStoryShaped(slugID.String()) {
		return nil, pkgerrors.ErrReservedSlug.WithDetail("slug", slugID.String())
	}
	if scene == "" {
		scene = narrative.WriteBackNodeID
	}

	now := time.Now()
	p := &Postcard{
		slugID:    slugID,
		message:   message,
		source:    SourceUser,
		scene:     scene,
		createdAt: now,
		version:   1,
		events:    []events.DomainEvent{},
	}

	p.addEvent(events.NewPostcardCreated(
		p.slugID,
		string(p.source),
		p.scene,
		message.From(),
		message.Summary(80),
		now,
	))

	return p, nil
}

// NewSeedPostcard creates an authored story card with a fixed slug.
// Used by the seeding tool; the slug must be story-shaped.
func NewSeedPostcard(card narrative.Card) (*Postcard, error) {
	slugID, err := valueobjects.NewSlugIDFromString(card.SlugID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid seed slug").WithCause(err)
	}
	if !narrative.IsStoryShaped(card.SlugID) {
		return nil, pkgerrors.ErrInvalidSlug.WithDetail("slug", card.SlugID)
	}

	message, err := valueobjects.NewMessage(card.Message, card.To, card.From)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Postcard{
		slugID:          slugID,
		message:         message,
		source:          SourceSeed,
		scene:           card.Scene,
		postmarked:      card.Postmarked,
		illustration:    card.Illustration,
		transitionLabel: card.TransitionLabel,
		choiceLabel:     card.ChoiceLabel,
		createdAt:       now,
		version:         1,
		events:          []events.DomainEvent{},
	}

	p.addEvent(events.NewPostcardSeeded(slugID, card.Scene, now))

	return p, nil
}

// ReconstructPostcard reconstructs a postcard from repository data with
// preserved timestamps
func ReconstructPostcard(
	slugID valueobjects.SlugID,
	message valueobjects.Message,
	source PostcardSource,
	scene, postmarked, illustration, transitionLabel, choiceLabel string,
	createdAt time.Time,
) (*Postcard, error) {
	if slugID.IsZero() {
		return nil, pkgerrors.NewValidationError("slug cannot be empty")
	}
	if message.IsEmpty() {
		return nil, pkgerrors.NewValidationError("message cannot be empty")
	}
	if !ValidSource(source) {
		return nil, pkgerrors.ErrInvalidSource.WithDetail("source", string(source))
	}

	return &Postcard{
		slugID:          slugID,
		message:         message,
		source:          source,
		scene:           scene,
		postmarked:      postmarked,
		illustration:    illustration,
		transitionLabel: transitionLabel,
		choiceLabel:     choiceLabel,
		createdAt:       createdAt,
		version:         1,
		events:          []events.DomainEvent{},
	}, nil
}

// SlugID returns the postcard's unique identifier
func (p *Postcard) SlugID() valueobjects.SlugID {
	return p.slugID
}

// Message returns the postcard's message
func (p *Postcard) Message() valueobjects.Message {
	return p.message
}

// Source returns whether the card is seeded or visitor-written
func (p *Postcard) Source() PostcardSource {
	return p.source
}

// Scene returns the scene the card belongs to
func (p *Postcard) Scene() string {
	return p.scene
}

// Postmarked returns the card's postmark location
func (p *Postcard) Postmarked() string {
	return p.postmarked
}

// Illustration returns the card's illustration asset path
func (p *Postcard) Illustration() string {
	return p.illustration
}

// TransitionLabel returns the label shown while leaving this card
func (p *Postcard) TransitionLabel() string {
	return p.transitionLabel
}

// ChoiceLabel returns the prompt shown on this card's choice menu
func (p *Postcard) ChoiceLabel() string {
	return p.choiceLabel
}

// CreatedAt returns when the postcard was created
func (p *Postcard) CreatedAt() time.Time {
	return p.createdAt
}

// Version returns the postcard's version for optimistic locking
func (p *Postcard) Version() int {
	return p.version
}

// ToCard converts the entity to the narrative-level view the flow
// engine works with.
func (p *Postcard) ToCard() narrative.Card {
	return narrative.Card{
		SlugID:          p.slugID.String(),
		To:              p.message.To(),
		From:            p.message.From(),
		Postmarked:      p.postmarked,
		Message:         p.message.Body(),
		Date:            p.createdAt.UTC().Format(time.RFC3339),
		Illustration:    p.illustration,
		TransitionLabel: p.transitionLabel,
		ChoiceLabel:     p.choiceLabel,
		Scene:           p.scene,
	}
}

// GetUncommittedEvents returns all uncommitted domain events
func (p *Postcard) GetUncommittedEvents() []events.DomainEvent {
	return p.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (p *Postcard) MarkEventsAsCommitted() {
	p.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (p *Postcard) addEvent(event events.DomainEvent) {
	p.events = append(p.events, event)
}
