package validators

import (
	"fmt"
	"regexp"
	"strings"

	"postcards/domain/core/entities"
	"postcards/domain/core/valueobjects"
	"postcards/domain/narrative"
	"postcards/pkg/errors"
)

// PostcardValidator validates postcard-related domain rules
type PostcardValidator struct {
	messageMaxLength int
	nameMaxLength    int
	sceneMaxLength   int
	scenePattern     *regexp.Regexp
}

// NewPostcardValidator creates a new postcard validator with default rules
func NewPostcardValidator() *PostcardValidator {
	return &PostcardValidator{
		messageMaxLength: 2000,
		nameMaxLength:    80,
		sceneMaxLength:   40,
		scenePattern:     regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`),
	}
}

// ValidateMessage validates the message value object
func (v *PostcardValidator) ValidateMessage(message valueobjects.Message) error {
	validationErrors := errors.NewValidationErrors()

	body := strings.TrimSpace(message.Body())
	if body == "" {
		validationErrors.AddError(errors.ErrMessageRequired)
	}
	if len(body) > v.messageMaxLength {
		validationErrors.AddError(errors.ErrMessageTooLong.
			WithDetail("actual_length", len(body)))
	}

	// Messages are rendered into the page; reject anything that smells
	// like markup injection.
	if strings.Contains(body, "<script") || strings.Contains(body, "javascript:") {
		validationErrors.Add("message", "message contains potentially malicious content")
	}

	if len(message.From()) > v.nameMaxLength {
		validationErrors.Add("from", fmt.Sprintf("sender name exceeds maximum length of %d", v.nameMaxLength))
	}
	if len(message.To()) > v.nameMaxLength {
		validationErrors.Add("to", fmt.Sprintf("recipient name exceeds maximum length of %d", v.nameMaxLength))
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}
	return nil
}

// ValidateUserSlug validates a visitor-facing slug. Visitor slugs may
// not collide with the story vocabulary.
func (v *PostcardValidator) ValidateUserSlug(slug string) error {
	if _, err := valueobjects.NewSlugIDFromString(slug); err != nil {
		return errors.ErrInvalidSlug.WithDetail("slug", slug).WithCause(err)
	}
	if narrative.IsStoryShaped(slug) {
		return errors.ErrReservedSlug.WithDetail("slug", slug)
	}
	return nil
}

// ValidateScene validates a scene identifier
func (v *PostcardValidator) ValidateScene(scene string) error {
	if scene == "" {
		return nil // scene is optional
	}
	if len(scene) > v.sceneMaxLength {
		return errors.NewDomainError(
			errors.DomainValidationError,
			"SCENE_TOO_LONG",
			fmt.Sprintf("Scene exceeds maximum length of %d characters", v.sceneMaxLength),
		).WithDetail("scene", scene)
	}
	if !v.scenePattern.MatchString(scene) {
		return errors.NewDomainError(
			errors.DomainValidationError,
			"INVALID_SCENE_FORMAT",
			"Scene contains invalid characters",
		).WithDetail("scene", scene)
	}
	return nil
}

// ValidateSource validates the source discriminator
func (v *PostcardValidator) ValidateSource(source string) error {
	if !entities.ValidSource(entities.PostcardSource(source)) {
		return errors.ErrInvalidSource.WithDetail("source", source)
	}
	return nil
}
