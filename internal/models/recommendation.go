package models

// SuggestionType is the kind of upsell a recommendation makes.
type SuggestionType string

const (
	SuggestDrink      SuggestionType = "drink"
	SuggestSide       SuggestionType = "side"
	SuggestDessert    SuggestionType = "dessert"
	SuggestUpgrade    SuggestionType = "upgrade"
	SuggestComplement SuggestionType = "complement"
	SuggestDietary    SuggestionType = "dietary"
	SuggestPopular    SuggestionType = "popular"
)

// SuggestedItem pairs a candidate menu item with the reason it was picked.
type SuggestedItem struct {
	Item      MenuItemRef `json:"item"`
	Rationale string      `json:"rationale"`
}

// RecommendationSuggestion is one ranked upsell proposal. Priority runs
// 1-10; the engine surfaces the top suggestions by priority x confidence.
type RecommendationSuggestion struct {
	Type       SuggestionType  `json:"type"`
	Priority   int             `json:"priority"`
	Message    string          `json:"message"`
	Items      []SuggestedItem `json:"items"`
	Confidence float64         `json:"confidence"`
}
