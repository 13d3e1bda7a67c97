package intent

import "regexp"

// Category is the coarse classification of what a chat turn is trying to
// accomplish. Values mirror the action types they normally produce.
type Category string

const (
	CategoryNone                  Category = "NONE"
	CategoryAddToOrder            Category = "ADD_TO_ORDER"
	CategoryRemoveFromOrder       Category = "REMOVE_FROM_ORDER"
	CategoryConfirmOrder          Category = "CONFIRM_ORDER"
	CategoryRequestClarification  Category = "REQUEST_CLARIFICATION"
	CategoryRequestRecommendation Category = "REQUEST_RECOMMENDATION"
	CategoryCheckOrder            Category = "CHECK_ORDER"
	CategoryEditOrder             Category = "EDIT_ORDER"
	CategorySpecificOrderEdit     Category = "SPECIFIC_ORDER_EDIT"
	CategoryModifyOrderItem       Category = "MODIFY_ORDER_ITEM"
)

// patternRule binds one intent to the ordered expressions that detect
// it. Rules are evaluated top to bottom; the first match wins, so the
// slice order *is* the precedence policy.
type patternRule struct {
	intent Category
	exprs  []*regexp.Regexp
}

// Order-reference shapes shared by both pattern families. A specific
// order edit needs an explicit identifier: a hash or bracketed code, a
// bare six-character code, or an ordinal selection.
var (
	// newOrderShape guards against reading a fresh order request as an
	// edit of a prior order. A message that opens like a first-time
	// request and never says "order" is always a new order, even when
	// it happens to contain a code-shaped token.
	newOrderShape = regexp.MustCompile(`^\s*(i\s+want|i'?d\s+like|i\s+would\s+like|give\s+me|can\s+i\s+(get|have)|could\s+i\s+(get|have)|i'?ll\s+(have|take)|let\s+me\s+get|get\s+me)\b`)

	orderWord = regexp.MustCompile(`\border\b`)

	hashOrderCode      = regexp.MustCompile(`#\s*([a-z0-9]{6})\b`)
	bracketedOrderCode = regexp.MustCompile(`\[\s*([a-z0-9]{6})\s*\]`)
	bareOrderCode      = regexp.MustCompile(`\b([a-z0-9]{6})\b`)

	ordinalReference = regexp.MustCompile(`\b(?:the\s+)?(first|second|third|fourth|fifth|1st|2nd|3rd|4th|5th)\s+(?:one|order)\b`)

	cancelOrderPhrase = regexp.MustCompile(`\bcancel\b.*\border\b|\bcancel\s+(it|that)\b|\bnever\s*mind\s+(the|my)\s+order\b`)
)

// Sub-action keywords for a specific order edit, checked in order.
var (
	editCancelKeywords   = regexp.MustCompile(`\bcancel\b|\bnever\s*mind\b|\bdon'?t\s+want\b|\bscrap\b`)
	editRemoveKeywords   = regexp.MustCompile(`\bremove\b|\btake\s+(off|out)\b|\bwithout\b|\bdrop\b|\bno\s+more\b`)
	editQuantityKeywords = regexp.MustCompile(`\b(change|make|update)\b.*\b(to|it)\b|\binstead\s+of\b|\bquantity\b`)
	editAddKeywords      = regexp.MustCompile(`\badd\b|\balso\b|\bmore\b|\bextra\b|\bas\s+well\b`)
)

// genericOrderEdit catches edit requests that never identify which
// order; checked after the specific shapes so an explicit code wins.
var genericOrderEdit = regexp.MustCompile(`\b(change|edit|modify|update|fix)\b.*\b(my\s+|the\s+)?order\b|\border\b.*\bis\s+wrong\b`)

// modifyItemShape catches in-place quantity changes to the current item
// ("make it 3", "two instead").
var modifyItemShape = regexp.MustCompile(`\b(make|change)\s+(it|that|them)\s+(to\s+)?(\d+|one|two|three|four|five|six|seven|eight|nine|ten)\b|\b(\d+)\s+instead\b`)

// userRules is the pattern family for customer-authored text:
// requests, corrections, questions.
var userRules = []patternRule{
	{
		intent: CategoryConfirmOrder,
		exprs: []*regexp.Regexp{
			regexp.MustCompile(`\b(place|confirm|finalize|submit)\b.*\border\b`),
			regexp.MustCompile(`\bthat('?s| is| will be| would be)\s+(all|it|everything)\b`),
			regexp.MustCompile(`\b(i'?m|i\s+am)\s+(done|ready|finished)\b`),
			regexp.MustCompile(`\bcheck\s*out\b`),
		},
	},
	{
		intent: CategoryAddToOrder,
		exprs: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(i\s+want|i'?d\s+like|i\s+would\s+like|can\s+i\s+(get|have)|could\s+i\s+(get|have)|i'?ll\s+(have|take)|give\s+me|get\s+me|let\s+me\s+get)\b`),
			regexp.MustCompile(`\badd\b|\balso\b.*\bwant\b|\band\s+a\b`),
			regexp.MustCompile(`\border\s+(a|an|some|\d+)\b`),
		},
	},
	{
		intent: CategoryRemoveFromOrder,
		exprs: []*regexp.Regexp{
			regexp.MustCompile(`\bremove\b|\btake\s+(off|out)\b|\bdrop\s+the\b|\bno\s+more\b|\bget\s+rid\s+of\b`),
			regexp.MustCompile(`\bactually[,\s]+(no|not|forget)\b|\bforget\s+the\b`),
		},
	},
	{
		intent: CategoryRequestClarification,
		exprs: []*regexp.Regexp{
			regexp.MustCompile(`\bwhat\s+do\s+you\s+mean\b|\bi\s+don'?t\s+understand\b|\bconfus(ed|ing)\b|\bhuh\b`),
			regexp.MustCompile(`\bwhich\s+(one|ones)\b|\bwhat\s+(are\s+the\s+)?(options|choices)\b`),
		},
	},
	{
		intent: CategoryRequestRecommendation,
		exprs: []*regexp.Regexp{
			regexp.MustCompile(`\brecommend\b|\bsuggest(ion)?s?\b|\bwhat('?s| is)\s+good\b`),
			regexp.MustCompile(`\bpopular\b|\bspecials?\b|\bbest\s+sell(er|ing)\b|\bfavorites?\b`),
			regexp.MustCompile(`\bwhat\s+should\s+i\s+(get|order|try)\b`),
		},
	},
	{
		intent: CategoryCheckOrder,
		exprs: []*regexp.Regexp{
			regexp.MustCompile(`\b(where|status|how\s+long)\b.*\border\b|\border\s+status\b`),
			regexp.MustCompile(`\bcheck\s+(on\s+)?my\s+order\b|\bis\s+my\s+(order|food)\s+(ready|coming|done)\b`),
		},
	},
}

// assistantRules is the pattern family for assistant-authored text:
// offers and confirmations the model proposed to the guest.
var assistantRules = []patternRule{
	{
		intent: CategoryConfirmOrder,
		exprs: []*regexp.Regexp{
			regexp.MustCompile(`\bshall\s+i\s+(place|confirm|send)\b|\bwould\s+you\s+like\s+(me\s+)?to\s+place\b`),
			regexp.MustCompile(`\bready\s+to\s+(place|confirm)\b|\bplace\s+(the|your)\s+order\b|\bconfirm\s+(the|your)\s+order\b`),
		},
	},
	{
		intent: CategoryAddToOrder,
		exprs: []*regexp.Regexp{
			regexp.MustCompile(`\bi'?ll\s+add\b|\bi'?ve\s+added\b|\badding\b.*\bto\s+(your|the)\s+order\b`),
			regexp.MustCompile(`\bi'?ll\s+put\b.*\b(in|down)\b`),
		},
	},
	{
		intent: CategoryRemoveFromOrder,
		exprs: []*regexp.Regexp{
			regexp.MustCompile(`\bi'?ll\s+remove\b|\bi'?ve\s+removed\b|\bremoving\b|\bi'?ll\s+take\b.*\boff\b`),
		},
	},
	{
		intent: CategoryRequestClarification,
		exprs: []*regexp.Regexp{
			regexp.MustCompile(`\bdid\s+you\s+mean\b|\bcould\s+you\s+(clarify|specify)\b|\bcan\s+you\s+confirm\b`),
			regexp.MustCompile(`\bwhich\s+\w+\s+would\s+you\s+(like|prefer)\b`),
		},
	},
	{
		intent: CategoryRequestRecommendation,
		exprs: []*regexp.Regexp{
			regexp.MustCompile(`\b(may|can)\s+i\s+(suggest|recommend)\b|\bi\s+recommend\b|\bi'?d\s+suggest\b`),
			regexp.MustCompile(`\bhow\s+about\b|\bgoes\s+(well|great)\s+with\b|\bmight\s+(also\s+)?enjoy\b|\bwould\s+you\s+like\s+to\s+try\b`),
		},
	},
	{
		intent: CategoryCheckOrder,
		exprs: []*regexp.Regexp{
			regexp.MustCompile(`\byour\s+order\s+(is|status)\b|\bbeing\s+(prepared|cooked)\b|\bshould\s+be\s+ready\b`),
		},
	},
}

// KeywordsFor returns the vocabulary a message with the given intent is
// expected to contain. Used by the confidence keyword-match factor.
func KeywordsFor(intent Category) []string {
	return intentKeywords[intent]
}

var intentKeywords = map[Category][]string{
	CategoryAddToOrder:            {"want", "like", "have", "get", "add", "order", "please"},
	CategoryRemoveFromOrder:       {"remove", "take", "off", "drop", "forget", "without"},
	CategoryConfirmOrder:          {"place", "confirm", "done", "all", "checkout", "ready", "order"},
	CategoryRequestClarification:  {"mean", "which", "understand", "options", "clarify"},
	CategoryRequestRecommendation: {"recommend", "suggest", "good", "popular", "special", "best"},
	CategoryCheckOrder:            {"status", "where", "ready", "long", "order", "check"},
	CategoryEditOrder:             {"change", "edit", "modify", "update", "order", "wrong"},
	CategorySpecificOrderEdit:     {"order", "cancel", "change", "remove", "add", "first", "second"},
	CategoryModifyOrderItem:       {"make", "change", "instead", "quantity"},
}
