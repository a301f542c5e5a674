package queries

import "errors"

// AdvanceFlowQuery asks for the node that follows the current one
type AdvanceFlowQuery struct {
	CurrentID string
}

// Validate validates the AdvanceFlowQuery
func (q AdvanceFlowQuery) Validate() error {
	if q.CurrentID == "" {
		return errors.New("current node id is required")
	}
	return nil
}

// InterstitialResult is the transition screen copy
type InterstitialResult struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	DurationMs int    `json:"durationMs"`
}

// AdvanceFlowResult represents one step of the walk. When ReturnHome is
// set the walk is over and the other fields are empty.
type AdvanceFlowResult struct {
	NextID               string              `json:"nextId,omitempty"`
	RequiresInterstitial bool                `json:"requiresInterstitial"`
	ReturnHome           bool                `json:"returnHome"`
	Interstitial         *InterstitialResult `json:"interstitial,omitempty"`
	Card                 *PostcardResult     `json:"card,omitempty"`
}
