package narrative

// Choice is one branch of a binary choice menu. PostcardID is the node
// the branch leads to; SlugID identifies the choice itself.
type Choice struct {
	SlugID     string `json:"slugId"`
	PostcardID string `json:"postcardId"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
}

// ChoiceSet is a chapter's fixed two-entry menu, keyed by the
// `{chapter}-choices` node id.
type ChoiceSet struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
}

var choiceSets = map[string]ChoiceSet{
	"house-choices": {
		ID: "house-choices",
		Choices: []Choice{
			{SlugID: "house-choice-1", PostcardID: "house-choice-1", Title: "Old Videogame", Subtitle: "An old game hums softly"},
			{SlugID: "house-choice-2", PostcardID: "house-choice-2", Title: "Familiar Face", Subtitle: "Someone's voice lingers here"},
		},
	},
	"city-choices": {
		ID: "city-choices",
		Choices: []Choice{
			{SlugID: "city-choice-1", PostcardID: "city-choice-1", Title: "Winter to Spring", Subtitle: "The first light after a long cold"},
			{SlugID: "city-choice-2", PostcardID: "city-choice-2", Title: "Summer to Autumn", Subtitle: "The last warmth before goodbye"},
		},
	},
	"shore-choices": {
		ID: "shore-choices",
		Choices: []Choice{
			{SlugID: "shore-choice-1", PostcardID: "shore-choice-1", Title: "Gray Day (Bird)", Subtitle: "The wind holds its breath"},
			{SlugID: "shore-choice-2", PostcardID: "shore-choice-2", Title: "Meal by the Sea", Subtitle: "The taste of calm"},
		},
	},
}

// ChoiceSetFor returns the fixed menu for a `{chapter}-choices` node.
func ChoiceSetFor(choiceSetID string) (ChoiceSet, bool) {
	set, ok := choiceSets[choiceSetID]
	return set, ok
}

// ResolveChoice maps a selected choice id to its target node. A miss
// returns ok=false; it is the caller's job to keep "continue" disabled
// until a valid selection exists.
func ResolveChoice(choiceSetID, choiceID string) (string, bool) {
	set, ok := choiceSets[choiceSetID]
	if !ok {
		return "", false
	}
	for _, c := range set.Choices {
		if c.SlugID == choiceID {
			return c.PostcardID, true
		}
	}
	return "", false
}
