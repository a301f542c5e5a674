package narrative

import (
	"sort"
	"time"
)

// FlowTable maps a node id to the node that follows it. A node with no
// entry is the end of the known graph.
type FlowTable map[string]string

// Clone returns an independent copy of the table.
func (t FlowTable) Clone() FlowTable {
	c := make(FlowTable, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// EdgeWarning flags a derived edge that should not exist by
// construction. Warnings are advisory: the edge is kept and followed.
type EdgeWarning struct {
	From string
	To   string
}

var chapters = []string{"house", "city", "shore"}

// terminal choice leaves of the fixed story; both are rewired to the
// visitor chain (or writeBack) on every build.
var terminalLeaves = []string{"shore-choice-1", "shore-choice-2"}

// BuildFlow derives the effective flow table for one load: the static
// story skeleton with the visitor-authored chain spliced in after the
// final chapter. Inputs are never mutated; the result is rebuilt from
// scratch whenever the underlying postcard set changes.
//
// Seed cards participate only through slug membership: a user card whose
// slug collides with a seed slug is dropped (seed wins). Story-shaped
// user slugs are dropped as noise regardless of collisions.
func BuildFlow(static FlowTable, seed []Card, user []Card) (FlowTable, []EdgeWarning) {
	flow := static.Clone()

	seedSlugs := make(map[string]struct{}, len(seed))
	for _, c := range seed {
		seedSlugs[c.SlugID] = struct{}{}
	}

	chain := make([]Card, 0, len(user))
	for _, c := range user {
		if IsStoryShaped(c.SlugID) {
			continue
		}
		if _, taken := seedSlugs[c.SlugID]; taken {
			continue
		}
		chain = append(chain, c)
	}

	// Ascending by date, missing or unparseable dates first; the sort is
	// stable so fetch order breaks ties.
	sort.SliceStable(chain, func(i, j int) bool {
		return cardTime(chain[i]).Before(cardTime(chain[j]))
	})

	for _, chapter := range chapters {
		flow[chapter+"-main"] = chapter + "-choices"
		// Fallback edge only: choice screens normally resolve through
		// ResolveChoice, but a missing selection still has somewhere to go.
		if _, ok := flow[chapter+"-choices"]; !ok {
			flow[chapter+"-choices"] = chapter + "-choice-1"
		}
	}

	chainHead := WriteBackNodeID
	if len(chain) > 0 {
		chainHead = chain[0].SlugID
	}
	for _, leaf := range terminalLeaves {
		flow[leaf] = chainHead
	}

	for i := 0; i+1 < len(chain); i++ {
		flow[chain[i].SlugID] = chain[i+1].SlugID
	}
	if len(chain) > 0 {
		flow[chain[len(chain)-1].SlugID] = WriteBackNodeID
	}

	var warnings []EdgeWarning
	for from, to := range flow {
		if Classify(from) == KindChoiceLeaf && Classify(to) == KindChoiceLeaf {
			warnings = append(warnings, EdgeWarning{From: from, To: to})
		}
	}
	return flow, warnings
}

// cardTime parses a card's date for ordering. Anything unparseable sorts
// with the epoch, i.e. first.
func cardTime(c Card) time.Time {
	if c.Date == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, c.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
