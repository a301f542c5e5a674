package narrative

import (
	"strings"
	"unicode"
)

// DefaultInterstitialMs is how long the transition screen stays up
// before the next card is revealed.
const DefaultInterstitialMs = 2500

// Decision is the outcome of advancing from a node. Exactly one of
// NextID or ReturnHome is meaningful: a missing edge ends the walk and
// sends the visitor back to the gallery.
type Decision struct {
	NextID               string
	RequiresInterstitial bool
	ReturnHome           bool
}

// Advance follows the current node's outgoing edge. writeBack is a
// dead end by definition; any other node without an edge also ends the
// walk rather than failing it.
func Advance(flow FlowTable, currentID string) Decision {
	if currentID == WriteBackNodeID {
		return Decision{ReturnHome: true}
	}
	next, ok := flow[currentID]
	if !ok {
		return Decision{ReturnHome: true}
	}
	return Decision{
		NextID:               next,
		RequiresInterstitial: NeedsInterstitial(currentID, next),
	}
}

// NeedsInterstitial reports whether the transition from one node to the
// next shows the postmark screen. Chapter openings get one; so does the
// handoff from the last story leaf into the visitor chain. Card-to-card
// steps inside the chain do not.
func NeedsInterstitial(fromID, toID string) bool {
	fromKind := Classify(fromID)
	toKind := Classify(toID)
	switch {
	case fromKind == KindEntry && toKind == KindMain:
		return true
	case fromKind == KindChoiceLeaf && toKind == KindMain:
		return true
	case fromKind == KindChoiceLeaf && toKind == KindUserAuthored:
		// Only the terminal shore leaves hand off into the visitor chain.
		return strings.HasPrefix(fromID, "shore-")
	default:
		return false
	}
}

// Interstitial is the copy shown on the transition screen.
type Interstitial struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	DurationMs int    `json:"durationMs"`
}

// InterstitialFor derives the transition copy for an arrival at toID.
// Both lines come from the destination card: its postmark (falling back
// to a humanized slug) for the title, its transition label for the
// subtitle, with fixed copy for visitor cards that carry none.
func InterstitialFor(catalog Catalog, fromID, toID string) Interstitial {
	title := humanizeSlug(toID)
	subtitle := ""
	if card, ok := catalog[toID]; ok {
		if card.Postmarked != "" {
			title = card.Postmarked
		}
		subtitle = card.TransitionLabel
	}
	if subtitle == "" && Classify(toID) == KindUserAuthored {
		subtitle = "A postcard from another visitor"
	}

	return Interstitial{
		Title:      title,
		Subtitle:   subtitle,
		DurationMs: DefaultInterstitialMs,
	}
}

// humanizeSlug turns an id like "house-main" or "user-3f2a" into title
// case with spaces.
func humanizeSlug(id string) string {
	parts := strings.Split(id, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}
