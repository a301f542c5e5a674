package queries

import (
	"errors"

	"postcards/domain/core/validators"
)

var postcardRules = validators.NewPostcardValidator()

// ListPostcardsQuery represents a query to list postcards
type ListPostcardsQuery struct {
	Source  string // "seed", "user" or empty for both
	Scene   string // empty for all scenes
	Grouped bool   // group results by scene
	Limit   int
}

// Validate validates the ListPostcardsQuery
func (q ListPostcardsQuery) Validate() error {
	if q.Source != "" {
		if err := postcardRules.ValidateSource(q.Source); err != nil {
			return err
		}
	}
	if err := postcardRules.ValidateScene(q.Scene); err != nil {
		return err
	}
	if q.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	return nil
}

// PostcardResult is the read-model view of a postcard
type PostcardResult struct {
	SlugID          string `json:"slugId"`
	To              string `json:"to,omitempty"`
	From            string `json:"from,omitempty"`
	Postmarked      string `json:"postmarked,omitempty"`
	Message         string `json:"message"`
	Illustration    string `json:"illustration,omitempty"`
	TransitionLabel string `json:"transitionLabel,omitempty"`
	ChoiceLabel     string `json:"choiceLabel,omitempty"`
	Scene           string `json:"scene,omitempty"`
	Source          string `json:"source"`
	CreatedAt       string `json:"createdAt"`
}

// ListPostcardsResult represents the result of listing postcards.
// Exactly one of Postcards or Grouped is populated.
type ListPostcardsResult struct {
	Postcards []PostcardResult            `json:"postcards,omitempty"`
	Grouped   map[string][]PostcardResult `json:"grouped,omitempty"`
	Total     int                         `json:"total"`
}
