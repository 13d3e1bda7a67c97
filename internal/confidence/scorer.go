package confidence

import (
	"regexp"
	"strings"

	"maitred/internal/intent"
	"maitred/internal/models"
)

// RecommendedAction is the scorer's three-way decision.
type RecommendedAction string

const (
	Proceed  RecommendedAction = "proceed"
	Clarify  RecommendedAction = "clarify"
	Fallback RecommendedAction = "fallback"
)

// Metrics is the scorer's full output for one turn. Derived
// deterministically from the factors plus the session's rolling
// accuracy history; every input combination produces a valid, clamped
// result.
type Metrics struct {
	BaseConfidence        float64           `json:"base_confidence"`
	AdjustedConfidence    float64           `json:"adjusted_confidence"`
	Factors               Factors           `json:"factors"`
	UncertaintyIndicators []string          `json:"uncertainty_indicators"`
	ReliabilityScore      float64           `json:"reliability_score"`
	RecommendedAction     RecommendedAction `json:"recommended_action"`
}

// Factor group weights: how far each group's deviation from the neutral
// midpoint moves the base confidence.
const (
	clarityWeight    = 0.25
	contextualWeight = 0.35
	payloadWeight    = 0.25
	externalWeight   = 0.15
	neutralMidpoint  = 0.5
)

// Fixed decision rule bounds.
const (
	proceedConfidence       = 0.8
	proceedReliability      = 0.7
	fallbackConfidence      = 0.4
	fallbackReliability     = 0.3
	maxIndicatorsForClarify = 3
)

// baseConfidenceByCategory is the inherent confidence of each intent
// before any factor adjustment: status checks and no-ops are easy,
// clarification requests are by definition uncertain.
var baseConfidenceByCategory = map[intent.Category]float64{
	intent.CategoryCheckOrder:            0.85,
	intent.CategoryNone:                  0.8,
	intent.CategoryConfirmOrder:          0.8,
	intent.CategoryAddToOrder:            0.75,
	intent.CategoryRequestRecommendation: 0.75,
	intent.CategoryRemoveFromOrder:       0.7,
	intent.CategorySpecificOrderEdit:     0.7,
	intent.CategoryEditOrder:             0.65,
	intent.CategoryModifyOrderItem:       0.65,
	intent.CategoryRequestClarification:  0.55,
}

var hedgingWords = []string{
	"maybe", "not sure", "i think", "possibly", "perhaps",
	"i guess", "kind of", "sort of", "might",
}

var wordCountSplit = regexp.MustCompile(`\s+`)

// Scorer blends the fourteen factors into an adjusted confidence, a
// reliability score and a recommended action. Constructed once per
// process with an injected history store; no package-level state.
type Scorer struct {
	history HistoryStore
}

// NewScorer creates a scorer backed by the given session history store.
func NewScorer(history HistoryStore) *Scorer {
	return &Scorer{history: history}
}

// Score computes the confidence metrics for one resolved turn.
func (s *Scorer) Score(text string, category intent.Category, action *models.PendingAction, ctx *models.ChatContext, latencyMs int64) Metrics {
	factors := s.computeFactors(text, category, action, ctx, latencyMs)

	base := s.baseConfidence(category, factors)
	adjusted := blend(base, factors)
	indicators := uncertaintyIndicators(text, category, factors)
	reliability := reliabilityScore(factors, len(indicators))

	return Metrics{
		BaseConfidence:        base,
		AdjustedConfidence:    adjusted,
		Factors:               factors,
		UncertaintyIndicators: indicators,
		ReliabilityScore:      reliability,
		RecommendedAction:     decide(adjusted, reliability, len(indicators)),
	}
}

// RecordOutcome feeds a resolved action's real result back into the
// session's rolling history for subsequent turns.
func (s *Scorer) RecordOutcome(sessionID string, success bool) error {
	return s.history.Append(sessionID, success)
}

func (s *Scorer) computeFactors(text string, category intent.Category, action *models.PendingAction, ctx *models.ChatContext, latencyMs int64) Factors {
	historical := neutralAccuracy
	if accuracy, ok := s.history.Accuracy(ctx.SessionID); ok {
		historical = accuracy
	}

	return Factors{
		MessageLength:          messageLengthFactor(text),
		KeywordMatch:           keywordMatchFactor(text, category),
		GrammarQuality:         grammarQualityFactor(text),
		IntentClarity:          intentClarityFactor(text, category),
		ConversationFlow:       conversationFlowFactor(text, ctx),
		SessionHistoryStrength: sessionHistoryFactor(ctx),
		MenuItemMatch:          menuItemMatchFactor(text, category, action, ctx),
		CustomerProfile:        customerProfileFactor(ctx),
		FunctionConsistency:    functionConsistencyFactor(category, action),
		ParameterCompleteness:  parameterCompletenessFactor(category, action),
		ResponseCoherence:      responseCoherenceFactor(text, action, latencyMs),
		TimeOfDay:              timeOfDayFactor(ctx),
		RestaurantBusyness:     busynessFactor(ctx),
		HistoricalAccuracy:     historical,
	}
}

// baseConfidence starts from the per-category lookup and nudges it for
// payload completeness and richness.
func (s *Scorer) baseConfidence(category intent.Category, factors Factors) float64 {
	base, ok := baseConfidenceByCategory[category]
	if !ok {
		base = 0.6
	}

	switch {
	case factors.ParameterCompleteness >= 1:
		base += 0.05
	case factors.ParameterCompleteness < 0.5:
		base -= 0.1
	}
	if factors.MenuItemMatch >= 0.9 {
		base += 0.03
	}
	return clamp01(base)
}

// blend nudges the base by each factor group's deviation from the
// neutral midpoint, scaled by the group's weight.
func blend(base float64, f Factors) float64 {
	clarity := mean(f.MessageLength, f.KeywordMatch, f.GrammarQuality, f.IntentClarity)
	contextual := mean(f.ConversationFlow, f.SessionHistoryStrength, f.CustomerProfile, f.HistoricalAccuracy)
	payload := mean(f.MenuItemMatch, f.FunctionConsistency, f.ParameterCompleteness, f.ResponseCoherence)
	external := mean(f.TimeOfDay, f.RestaurantBusyness)

	adjusted := base
	adjusted += clarityWeight * (clarity - neutralMidpoint)
	adjusted += contextualWeight * (contextual - neutralMidpoint)
	adjusted += payloadWeight * (payload - neutralMidpoint)
	adjusted += externalWeight * (external - neutralMidpoint)
	return clamp01(adjusted)
}

func mean(values ...float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// uncertaintyIndicators flags individual factors that crossed their
// fixed thresholds, in human-readable form for the host UI.
func uncertaintyIndicators(text string, category intent.Category, f Factors) []string {
	var indicators []string

	if len(wordCountSplit.Split(strings.TrimSpace(text), -1)) < 2 || f.MessageLength <= 0.4 {
		indicators = append(indicators, "message too short to judge intent")
	}
	if f.GrammarQuality < 0.4 {
		indicators = append(indicators, "fragmented or low-quality phrasing")
	}
	if f.MenuItemMatch < 0.5 && category != intent.CategoryNone {
		indicators = append(indicators, "requested items not matched on the menu")
	}
	if f.ParameterCompleteness < 1 {
		indicators = append(indicators, "action is missing required parameters")
	}
	if f.IntentClarity <= 0.5 && category == intent.CategoryNone {
		indicators = append(indicators, "no clear intent pattern matched")
	}

	lowered := strings.ToLower(text)
	for _, hedge := range hedgingWords {
		if strings.Contains(lowered, hedge) {
			indicators = append(indicators, "hedging language detected")
			break
		}
	}

	return indicators
}

// reliabilityScore averages the four most decision-relevant factors,
// penalized per uncertainty indicator and bonused for corroboration.
func reliabilityScore(f Factors, indicators int) float64 {
	score := mean(f.IntentClarity, f.FunctionConsistency, f.ParameterCompleteness, f.MenuItemMatch)
	score -= 0.1 * float64(indicators)
	if f.ConversationFlow >= 0.8 {
		score += 0.05
	}
	if f.HistoricalAccuracy >= 0.8 {
		score += 0.05
	}
	return clamp01(score)
}

// decide applies the fixed three-way rule. The numeric thresholds for
// hosts that gate execution themselves live in thresholds.go; the rule
// itself never changes.
func decide(confidence, reliability float64, indicators int) RecommendedAction {
	if confidence > proceedConfidence && reliability > proceedReliability && indicators == 0 {
		return Proceed
	}
	if confidence < fallbackConfidence || reliability < fallbackReliability || indicators > maxIndicatorsForClarify {
		return Fallback
	}
	return Clarify
}
