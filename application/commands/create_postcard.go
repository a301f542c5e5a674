package commands

import (
	"context"
	"errors"

	"postcards/application/ports"
	"postcards/domain/core/entities"
	"postcards/domain/core/validators"
	"postcards/domain/core/valueobjects"
	"postcards/domain/narrative"

	"go.uber.org/zap"
)

// CreatePostcardCommand represents the command to write back a postcard
type CreatePostcardCommand struct {
	SlugID  string `json:"slug_id" validate:"omitempty,max=120"`
	Message string `json:"message" validate:"required,max=2000"`
	To      string `json:"to" validate:"max=80"`
	From    string `json:"from" validate:"max=80"`
	Scene   string `json:"scene" validate:"omitempty,max=40"`
}

// Validate validates the command
func (cmd CreatePostcardCommand) Validate() error {
	if cmd.Message == "" {
		return errors.New("message is required")
	}
	if len(cmd.Message) > MaxMessageLength {
		return errors.New("message exceeds maximum length")
	}
	if len(cmd.From) > MaxNameLength || len(cmd.To) > MaxNameLength {
		return errors.New("name exceeds maximum length")
	}
	return nil
}

const (
	MaxMessageLength = 2000
	MaxNameLength    = 80
)

// CreatePostcardHandler handles the CreatePostcardCommand
type CreatePostcardHandler struct {
	postcardRepo ports.PostcardRepository
	eventBus     ports.EventBus
	validator    *validators.PostcardValidator
	logger       *zap.Logger
}

// NewCreatePostcardHandler creates a new handler instance
func NewCreatePostcardHandler(
	postcardRepo ports.PostcardRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *CreatePostcardHandler {
	return &CreatePostcardHandler{
		postcardRepo: postcardRepo,
		eventBus:     eventBus,
		validator:    validators.NewPostcardValidator(),
		logger:       logger,
	}
}

// Handle executes the create postcard command
func (h *CreatePostcardHandler) Handle(ctx context.Context, cmd CreatePostcardCommand) (*entities.Postcard, error) {
	message, err := valueobjects.NewMessage(cmd.Message, cmd.To, cmd.From)
	if err != nil {
		return nil, err
	}
	if err := h.validator.ValidateMessage(message); err != nil {
		return nil, err
	}
	if err := h.validator.ValidateScene(cmd.Scene); err != nil {
		return nil, err
	}

	scene := cmd.Scene
	if scene == "" {
		scene = narrative.WriteBackNodeID
	}

	var postcard *entities.Postcard
	if cmd.SlugID != "" {
		if err := h.validator.ValidateUserSlug(cmd.SlugID); err != nil {
			return nil, err
		}
		slugID, err := valueobjects.NewSlugIDFromString(cmd.SlugID)
		if err != nil {
			return nil, err
		}
		postcard, err = entities.NewUserPostcardWithSlug(slugID, message, scene)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		postcard, err = entities.NewUserPostcard(message, scene)
		if err != nil {
			return nil, err
		}
	}

	// The generated slug is a fresh UUID; a collision here means the
	// store is misbehaving, so surface it rather than retrying.
	if err := h.postcardRepo.Save(ctx, postcard); err != nil {
		return nil, err
	}

	if err := h.eventBus.PublishBatch(ctx, postcard.GetUncommittedEvents()); err != nil {
		// The card is saved; the gallery just misses the live update.
		h.logger.Warn("Failed to publish postcard events",
			zap.String("slugId", postcard.SlugID().String()),
			zap.Error(err),
		)
	}
	postcard.MarkEventsAsCommitted()

	h.logger.Info("Postcard created",
		zap.String("slugId", postcard.SlugID().String()),
		zap.String("scene", postcard.Scene()),
	)

	return postcard, nil
}
