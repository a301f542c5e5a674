package valueobjects

import (
	"errors"
	"regexp"

	"github.com/google/uuid"
)

// SlugID is a value object identifying a postcard. Seed cards carry
// story slugs like "house-main"; visitor cards get generated
// "user-<uuid>" slugs.
type SlugID struct {
	value string
}

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// NewSlugID generates a fresh visitor slug
func NewSlugID() SlugID {
	return SlugID{value: "user-" + uuid.New().String()}
}

// NewSlugIDFromString creates a SlugID from an existing string
func NewSlugIDFromString(slug string) (SlugID, error) {
	if slug == "" {
		return SlugID{}, errors.New("slug cannot be empty")
	}
	if len(slug) > 120 {
		return SlugID{}, errors.New("slug exceeds maximum length")
	}
	if !slugPattern.MatchString(slug) {
		return SlugID{}, errors.New("slug contains invalid characters")
	}
	return SlugID{value: slug}, nil
}

// String returns the string representation of the SlugID
func (id SlugID) String() string {
	return id.value
}

// Equals checks if two SlugIDs are equal
func (id SlugID) Equals(other SlugID) bool {
	return id.value == other.value
}

// IsZero checks if the SlugID is the zero value
func (id SlugID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id SlugID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *SlugID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("SlugID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
