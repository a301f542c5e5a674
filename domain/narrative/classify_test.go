package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		nodeID string
		want   NodeKind
	}{
		{"first", KindEntry},
		{"writeBack", KindWriteBack},
		{"house-main", KindMain},
		{"city-main", KindMain},
		{"shore-main", KindMain},
		{"house-choices", KindChoices},
		{"city-choices", KindChoices},
		{"shore-choices", KindChoices},
		{"house-choice-1", KindChoiceLeaf},
		{"city-choice-2", KindChoiceLeaf},
		{"shore-choice-12", KindChoiceLeaf},
		{"shore-choice-", KindUserAuthored},
		{"garden-choice-1", KindUserAuthored},
		{"user-3f2a91", KindUserAuthored},
		{"ren", KindUserAuthored},
		{"", KindUserAuthored},
	}
	for _, tt := range tests {
		t.Run(tt.nodeID, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.nodeID))
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// Suffix rules run before the leaf pattern, so a hypothetical
	// "house-choice-1-main" is a main node, not a leaf.
	assert.Equal(t, KindMain, Classify("house-choice-1-main"))
	assert.Equal(t, KindChoices, Classify("weird-choices"))
}

func TestIsStoryShaped(t *testing.T) {
	assert.True(t, IsStoryShaped("first"))
	assert.True(t, IsStoryShaped("writeBack"))
	assert.True(t, IsStoryShaped("shore-choice-2"))
	assert.True(t, IsStoryShaped("house-main"))
	assert.False(t, IsStoryShaped("user-abc123"))
	assert.False(t, IsStoryShaped("my-summer-trip"))
}
