package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"postcards/domain/config"
	pkgerrors "postcards/pkg/errors"
)

// Message is a value object for the handwritten side of a postcard:
// the text itself plus who it is addressed to and from.
type Message struct {
	body string
	to   string
	from string
}

// NewMessage creates a message with validation using default configuration
func NewMessage(body, to, from string) (Message, error) {
	return NewMessageWithConfig(body, to, from, config.DefaultDomainConfig())
}

// NewMessageWithConfig creates a message with validation and configuration
func NewMessageWithConfig(body, to, from string, cfg *config.DomainConfig) (Message, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	body = strings.TrimSpace(body)
	to = strings.TrimSpace(to)
	from = strings.TrimSpace(from)

	if body == "" {
		return Message{}, pkgerrors.NewValidationError("message cannot be empty")
	}

	if utf8.RuneCountInString(body) > cfg.MaxMessageLength {
		return Message{}, fmt.Errorf("message exceeds maximum length of %d characters", cfg.MaxMessageLength)
	}

	if utf8.RuneCountInString(to) > cfg.MaxNameLength {
		return Message{}, fmt.Errorf("recipient name exceeds maximum length of %d characters", cfg.MaxNameLength)
	}

	if utf8.RuneCountInString(from) > cfg.MaxNameLength {
		return Message{}, fmt.Errorf("sender name exceeds maximum length of %d characters", cfg.MaxNameLength)
	}

	if from == "" {
		from = cfg.DefaultSender
	}

	return Message{body: body, to: to, from: from}, nil
}

// Body returns the message text
func (m Message) Body() string {
	return m.body
}

// To returns the recipient name
func (m Message) To() string {
	return m.to
}

// From returns the sender name
func (m Message) From() string {
	return m.from
}

// IsEmpty checks if the message is empty
func (m Message) IsEmpty() bool {
	return m.body == ""
}

// Equals checks if two messages are equal
func (m Message) Equals(other Message) bool {
	return m.body == other.body && m.to == other.to && m.from == other.from
}

// Summary returns a truncated summary of the message body
func (m Message) Summary(maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	if utf8.RuneCountInString(m.body) <= maxLength {
		return m.body
	}
	runes := []rune(m.body)
	return string(runes[:maxLength-3]) + "..."
}
