package confidence

import (
	"regexp"
	"strings"
	"unicode"

	"maitred/internal/intent"
	"maitred/internal/models"
)

// Factors is the fixed record of independently computed sub-scores,
// each in [0,1]. Every factor degrades to a neutral default when its
// slice of the context is missing; computation never fails.
type Factors struct {
	MessageLength          float64 `json:"message_length"`
	KeywordMatch           float64 `json:"keyword_match"`
	GrammarQuality         float64 `json:"grammar_quality"`
	IntentClarity          float64 `json:"intent_clarity"`
	ConversationFlow       float64 `json:"conversation_flow"`
	SessionHistoryStrength float64 `json:"session_history_strength"`
	MenuItemMatch          float64 `json:"menu_item_match"`
	CustomerProfile        float64 `json:"customer_profile"`
	FunctionConsistency    float64 `json:"function_consistency"`
	ParameterCompleteness  float64 `json:"parameter_completeness"`
	ResponseCoherence      float64 `json:"response_coherence"`
	TimeOfDay              float64 `json:"time_of_day"`
	RestaurantBusyness     float64 `json:"restaurant_busyness"`
	HistoricalAccuracy     float64 `json:"historical_accuracy"`
}

const neutralAccuracy = 0.7

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// messageLengthFactor buckets the word count into a curve that peaks
// for ordinary sentence-length turns and tails off for walls of text.
func messageLengthFactor(text string) float64 {
	words := len(strings.Fields(text))
	switch {
	case words == 0:
		return 0.1
	case words <= 2:
		return 0.4
	case words <= 10:
		return 0.9
	case words <= 25:
		return 0.8
	case words <= 50:
		return 0.6
	default:
		return 0.4
	}
}

// keywordMatchFactor measures overlap with the intent's expected
// vocabulary.
func keywordMatchFactor(text string, category intent.Category) float64 {
	keywords := intent.KeywordsFor(category)
	if len(keywords) == 0 {
		return 0.5
	}
	lowered := strings.ToLower(text)
	matches := 0
	for _, word := range keywords {
		if strings.Contains(lowered, word) {
			matches++
		}
	}
	if matches == 0 {
		return 0.3
	}
	score := 0.5 + 0.5*float64(matches)/3.0
	return clamp01(score)
}

var repeatedPunct = regexp.MustCompile(`[!?.]{2,}`)

// grammarQualityFactor applies cheap surface heuristics: leading
// capital, terminal punctuation, plausible average word length.
func grammarQualityFactor(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0.2
	}

	score := 0.5

	runes := []rune(trimmed)
	if unicode.IsUpper(runes[0]) {
		score += 0.15
	}
	last := runes[len(runes)-1]
	if last == '.' || last == '!' || last == '?' {
		score += 0.15
	}

	words := strings.Fields(trimmed)
	var total int
	for _, w := range words {
		total += len(w)
	}
	avg := float64(total) / float64(len(words))
	if avg >= 3 && avg <= 8 {
		score += 0.1
	}

	if !repeatedPunct.MatchString(trimmed) {
		score += 0.1
	}

	return clamp01(score)
}

// intentClarityFactor rewards an explicit pattern hit and keyword
// corroboration; an unmatched turn sits at neutral.
func intentClarityFactor(text string, category intent.Category) float64 {
	if category == intent.CategoryNone {
		return 0.5
	}
	lowered := strings.ToLower(text)
	corroborating := 0
	for _, word := range intent.KeywordsFor(category) {
		if strings.Contains(lowered, word) {
			corroborating++
		}
	}
	if corroborating >= 2 {
		return 0.95
	}
	return 0.85
}

// conversationFlowFactor judges whether the turn reads as a natural
// follow-up to the previous assistant message.
func conversationFlowFactor(text string, ctx *models.ChatContext) float64 {
	last := ctx.LastAssistantMessage()
	if last == nil {
		return 0.5
	}

	lowered := strings.ToLower(text)
	asked := strings.Contains(last.Content, "?")
	words := len(strings.Fields(text))

	// A short reply to a direct question is the most natural follow-up.
	if asked && words <= 6 {
		return 0.9
	}

	// Shared vocabulary with the previous turn suggests continuity.
	shared := 0
	for _, word := range strings.Fields(strings.ToLower(last.Content)) {
		if len(word) >= 4 && strings.Contains(lowered, word) {
			shared++
		}
	}
	if shared >= 2 {
		return 0.8
	}
	if asked {
		return 0.7
	}
	return 0.6
}

// sessionHistoryFactor rewards an established session: prior orders and
// some time at the table.
func sessionHistoryFactor(ctx *models.ChatContext) float64 {
	if ctx.Customer == nil {
		return 0.5
	}
	score := 0.4
	orders := ctx.Customer.TotalOrders
	if orders > 3 {
		orders = 3
	}
	score += 0.1 * float64(orders)
	if !ctx.Customer.StartedAt.IsZero() && ctx.Clock().Sub(ctx.Customer.StartedAt).Minutes() >= 5 {
		score += 0.1
	}
	if len(ctx.History) >= 4 {
		score += 0.1
	}
	return clamp01(score)
}

var quantityToken = regexp.MustCompile(`\b(\d+|one|two|three|four|five|six|seven|eight|nine|ten)\b`)

// menuItemMatchFactor estimates the fraction of requested items that
// exist on the menu. Quantity tokens not attached to a matched item
// stand in for mentions of unknown items.
func menuItemMatchFactor(text string, category intent.Category, action *models.PendingAction, ctx *models.ChatContext) float64 {
	if !itemBearing(category) {
		return 0.7
	}

	matched := 0
	if action != nil {
		matched = len(actionItems(action))
	}

	quantities := len(quantityToken.FindAllString(strings.ToLower(text), -1))
	requested := matched
	if quantities > requested {
		requested = quantities
	}
	if requested == 0 {
		// Item-bearing phrasing with nothing recognizable either way.
		return 0.4
	}
	return clamp01(float64(matched) / float64(requested))
}

func itemBearing(category intent.Category) bool {
	switch category {
	case intent.CategoryAddToOrder, intent.CategoryConfirmOrder, intent.CategoryRemoveFromOrder, intent.CategoryModifyOrderItem:
		return true
	}
	return false
}

// actionItems pulls the item list out of whichever payload variant
// carries one.
func actionItems(action *models.PendingAction) []models.ParsedOrderItem {
	switch data := action.Data.(type) {
	case models.AddToOrderData:
		return data.Items
	case models.ConfirmOrderData:
		return data.Items
	case models.RemoveFromOrderData:
		return data.Items
	case models.SpecificOrderEditData:
		return data.Items
	case models.ModifyOrderItemData:
		return []models.ParsedOrderItem{{MenuItemID: data.MenuItemID, Name: data.ItemName, Quantity: data.QuantityTo}}
	}
	return nil
}

// customerProfileFactor scores how much we know about the guest.
func customerProfileFactor(ctx *models.ChatContext) float64 {
	if ctx.Customer == nil {
		return 0.4
	}
	score := 0.3
	if ctx.Customer.Name != "" {
		score += 0.2
	}
	if ctx.Customer.TotalOrders > 0 {
		score += 0.2
	}
	if ctx.Customer.TotalSpent > 0 {
		score += 0.1
	}
	if !ctx.Customer.StartedAt.IsZero() {
		score += 0.1
	}
	return clamp01(score)
}

// functionConsistencyFactor checks that the built payload agrees with
// the classified intent.
func functionConsistencyFactor(category intent.Category, action *models.PendingAction) float64 {
	if action == nil {
		if category == intent.CategoryNone {
			return 0.8 // consistent no-op
		}
		return 0.3 // pattern fired but nothing buildable
	}
	if string(action.Type) == string(category) {
		return 0.9
	}
	// The builder downgraded the intent (e.g. recommendation turned
	// into a clarification); related but not exact.
	return 0.6
}

// parameterCompletenessFactor is the fraction of the intent's required
// payload fields that are actually populated.
func parameterCompletenessFactor(category intent.Category, action *models.PendingAction) float64 {
	if action == nil {
		if category == intent.CategoryNone {
			return 1.0 // nothing required, nothing missing
		}
		return 0.0
	}

	var required, present int
	check := func(ok bool) {
		required++
		if ok {
			present++
		}
	}

	switch data := action.Data.(type) {
	case models.AddToOrderData:
		check(len(data.Items) > 0)
		check(data.RestaurantID != "")
		check(data.Total > 0)
	case models.ConfirmOrderData:
		check(len(data.Items) > 0)
		check(data.RestaurantID != "")
		check(data.Total > 0)
	case models.RemoveFromOrderData:
		check(len(data.Items) > 0)
		check(data.OrderID != "")
	case models.SpecificOrderEditData:
		check(data.OrderID != "")
		check(data.EditAction != "")
		switch data.EditAction {
		case models.EditAddItem, models.EditRemoveItem, models.EditModifyQuantity:
			check(len(data.Items) > 0)
		}
	case models.ModifyOrderItemData:
		check(data.MenuItemID != "")
		check(data.QuantityTo > 0)
		check(data.QuantityFrom > 0)
	case models.CheckOrderData:
		check(data.OrderID != "")
	case models.EditOrderData:
		check(data.OrderID != "")
	case models.RecommendationData:
		check(len(data.Suggestions) > 0)
	case models.ClarificationData:
		check(data.Question != "")
	default:
		return 0.5
	}

	if required == 0 {
		return 1.0
	}
	return float64(present) / float64(required)
}

// responseCoherenceFactor compares message complexity against payload
// complexity and penalizes a suspiciously slow turn.
func responseCoherenceFactor(text string, action *models.PendingAction, latencyMs int64) float64 {
	words := len(strings.Fields(text))
	payloadSize := 0
	if action != nil {
		payloadSize = len(actionItems(action))
	}

	score := 0.5
	simpleMessage := words <= 12
	simplePayload := payloadSize <= 2
	if simpleMessage == simplePayload {
		score = 0.8
	}

	if latencyMs > 5000 {
		score -= 0.1
	}
	if latencyMs > 15000 {
		score -= 0.1
	}
	return clamp01(score)
}

// timeOfDayFactor trusts turns during service hours more than the
// small hours.
func timeOfDayFactor(ctx *models.ChatContext) float64 {
	hour := ctx.Clock().Hour()
	switch {
	case hour >= 11 && hour <= 14, hour >= 18 && hour <= 21:
		return 0.8 // meal service
	case hour >= 7 && hour <= 23:
		return 0.7
	default:
		return 0.4
	}
}

// busynessFactor discounts confidence when the kitchen looks slammed:
// many open orders during a peak hour.
func busynessFactor(ctx *models.ChatContext) float64 {
	load := EstimateBusyness(ctx)
	return clamp01(1.0 - 0.5*load)
}

// EstimateBusyness maps open-order volume and hour of day to [0,1].
func EstimateBusyness(ctx *models.ChatContext) float64 {
	load := float64(len(ctx.OpenOrders)) / 10.0
	if load > 1 {
		load = 1
	}

	hour := ctx.Clock().Hour()
	if hour >= 12 && hour <= 13 || hour >= 19 && hour <= 20 {
		load += 0.3 // peak sitting
	}
	if load > 1 {
		load = 1
	}
	return load
}
