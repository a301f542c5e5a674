package narrative

import (
	"regexp"
	"strings"
)

// NodeKind categorizes a node id by its shape. Every string maps to
// exactly one kind; anything outside the fixed story vocabulary is
// treated as a visitor-authored postcard.
type NodeKind string

const (
	KindEntry        NodeKind = "entry"
	KindMain         NodeKind = "main"
	KindChoices      NodeKind = "choices"
	KindChoiceLeaf   NodeKind = "choice_leaf"
	KindWriteBack    NodeKind = "write_back"
	KindUserAuthored NodeKind = "user_authored"
)

// EntryNodeID is where every visit starts.
const EntryNodeID = "first"

// WriteBackNodeID is the dead-end composition screen at the end of the
// story; it has no outgoing edge.
const WriteBackNodeID = "writeBack"

var choiceLeafPattern = regexp.MustCompile(`^(house|city|shore)-choice-\d+$`)

// Classify maps a node id to its kind. Rules are evaluated in order and
// the first match wins.
func Classify(nodeID string) NodeKind {
	switch {
	case nodeID == EntryNodeID:
		return KindEntry
	case nodeID == WriteBackNodeID:
		return KindWriteBack
	case strings.HasSuffix(nodeID, "-choices"):
		return KindChoices
	case strings.HasSuffix(nodeID, "-main"):
		return KindMain
	case choiceLeafPattern.MatchString(nodeID):
		return KindChoiceLeaf
	default:
		return KindUserAuthored
	}
}

// IsStoryShaped reports whether a slug collides with the fixed story
// vocabulary. Visitor postcards that happen to use a story-shaped slug
// are noise and are excluded from the spliced chain.
func IsStoryShaped(nodeID string) bool {
	return Classify(nodeID) != KindUserAuthored
}
