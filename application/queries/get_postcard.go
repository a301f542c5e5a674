package queries

import "errors"

// GetPostcardQuery represents a query to get a single postcard by slug
type GetPostcardQuery struct {
	SlugID string
}

// Validate validates the GetPostcardQuery
func (q GetPostcardQuery) Validate() error {
	if q.SlugID == "" {
		return errors.New("slug is required")
	}
	return nil
}
