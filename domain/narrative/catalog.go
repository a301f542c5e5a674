package narrative

// Card is the narrative-level view of a postcard: just the fields the
// flow engine and interstitial copy need. The persistence entity carries
// the full document; the application layer converts between the two.
type Card struct {
	SlugID          string
	To              string
	From            string
	Postmarked      string
	Message         string
	Date            string
	Illustration    string
	TransitionLabel string
	ChoiceLabel     string
	Scene           string
}

// Catalog indexes cards by slug for interstitial copy lookups.
type Catalog map[string]Card

// NewCatalog builds a catalog from the given cards. Later entries do not
// overwrite earlier ones, so callers list the authoritative set first.
func NewCatalog(cards ...[]Card) Catalog {
	c := make(Catalog)
	for _, set := range cards {
		for _, card := range set {
			if _, exists := c[card.SlugID]; !exists {
				c[card.SlugID] = card
			}
		}
	}
	return c
}

// StaticFlow is the fixed story skeleton. BuildFlow starts from a copy
// of this table and never mutates it.
var StaticFlow = FlowTable{
	"first":          "house-main",
	"house-main":     "house-choices",
	"house-choice-1": "city-main",
	"house-choice-2": "city-main",
	"city-main":      "city-choices",
	"city-choice-1":  "shore-main",
	"city-choice-2":  "shore-main",
	"shore-main":     "shore-choices",
	"shore-choice-1": "writeBack",
	"shore-choice-2": "writeBack",
}

// SeedCards is the authored story content. cmd/seed loads these into the
// store; the flow engine also uses them as the fallback catalog when the
// store has not been seeded yet.
var SeedCards = []Card{
	{
		SlugID:     "first",
		Postmarked: "Nowhere",
		Message:    "You found this postcard tucked under your door.\nNo return address. Just an invitation: come see where it was written.",
		Scene:      "intro",
	},
	{
		SlugID:          "house-main",
		Postmarked:      "The Old House",
		Message:         "The house is smaller than memory makes it.\nDust settles on the windowsill like it never left.\nSomething in here still hums.",
		TransitionLabel: "The road bends toward a porch light",
		ChoiceLabel:     "Two doors stand ajar. Pick one.",
		Illustration:    "assets/postcards/house.png",
		Scene:           "house",
	},
	{
		SlugID:       "house-choice-1",
		Postmarked:   "The Old House",
		Message:      "An old game hums softly in the corner,\nits screen glowing the same green it always did.\nYou let it play itself for a while.",
		Illustration: "assets/postcards/house-game.png",
		Scene:        "house",
	},
	{
		SlugID:       "house-choice-2",
		Postmarked:   "The Old House",
		Message:      "Someone's voice lingers here,\ncaught in the hallway like a coat left on a hook.\nYou don't answer. You just listen.",
		Illustration: "assets/postcards/house-face.png",
		Scene:        "house",
	},
	{
		SlugID:          "city-main",
		Postmarked:      "The City Between Seasons",
		Message:         "The city never asks where you've been.\nIt only moves, and lets you move with it.\nEvery crosswalk is a small decision.",
		TransitionLabel: "A train pulls away without you. Another arrives",
		ChoiceLabel:     "The season is turning. Which way?",
		Illustration:    "assets/postcards/city.png",
		Scene:           "city",
	},
	{
		SlugID:       "city-choice-1",
		Postmarked:   "The City Between Seasons",
		Message:      "The first light after a long cold\nfinds the street all at once.\nEven strangers walk slower in it.",
		Illustration: "assets/postcards/city-spring.png",
		Scene:        "city",
	},
	{
		SlugID:       "city-choice-2",
		Postmarked:   "The City Between Seasons",
		Message:      "The last warmth before goodbye\nsits on the rooftops an extra hour.\nYou stay out until it's gone.",
		Illustration: "assets/postcards/city-autumn.png",
		Scene:        "city",
	},
	{
		SlugID:          "shore-main",
		Postmarked:      "The Gray Shore",
		Message:         "The shore keeps its own ledger:\nwhat the tide takes, what the tide returns.\nYou write your name in the wet sand anyway.",
		TransitionLabel: "The streets run out where the sand begins",
		ChoiceLabel:     "The horizon is wide. Where do you look?",
		Illustration:    "assets/postcards/shore.png",
		Scene:           "shore",
	},
	{
		SlugID:       "shore-choice-1",
		Postmarked:   "The Gray Shore",
		Message:      "The wind holds its breath\nwhile a single bird crosses the gray.\nYou hold yours too.",
		Illustration: "assets/postcards/shore-bird.png",
		Scene:        "shore",
	},
	{
		SlugID:       "shore-choice-2",
		Postmarked:   "The Gray Shore",
		Message:      "The taste of calm is salt and bread\nshared at a table with one short leg.\nNobody minds the wobble.",
		Illustration: "assets/postcards/shore-meal.png",
		Scene:        "shore",
	},
	{
		SlugID:     "writeBack",
		Postmarked: "Wherever You Are",
		Message:    "If you ever find yourself here again, write back.",
		Scene:      "writeBack",
	},
}
