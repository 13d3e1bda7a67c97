package confidence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"maitred/internal/intent"
	"maitred/internal/models"
)

func scoringContext() *models.ChatContext {
	return &models.ChatContext{
		RestaurantID: "demo",
		SessionID:    "s1",
		Menu: []models.MenuItemRef{
			{ID: "m1", Name: "Margherita Pizza", Category: "main", Price: 16.99, Available: true},
			{ID: "m3", Name: "Cola", Category: "drink", Price: 2.99, Available: true},
		},
		// Pinned to lunch service so time-dependent factors are stable.
		Now: time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC),
	}
}

func addAction(total float64, restaurantID string) *models.PendingAction {
	return models.NewPendingAction(models.ActionAddToOrder, models.AddToOrderData{
		RestaurantID: restaurantID,
		Items: []models.ParsedOrderItem{
			{MenuItemID: "m1", Name: "Margherita Pizza", Quantity: 2, UnitPrice: 16.99},
		},
		Total: total,
	})
}

func TestScore_AllFactorsInRange(t *testing.T) {
	scorer := NewScorer(NewMemoryHistoryStore())

	metrics := scorer.Score("I want 2 margherita pizzas", intent.CategoryAddToOrder, addAction(33.98, "demo"), scoringContext(), 800)

	assert.GreaterOrEqual(t, metrics.AdjustedConfidence, 0.0)
	assert.LessOrEqual(t, metrics.AdjustedConfidence, 1.0)
	assert.GreaterOrEqual(t, metrics.ReliabilityScore, 0.0)
	assert.LessOrEqual(t, metrics.ReliabilityScore, 1.0)

	for _, factor := range []float64{
		metrics.Factors.MessageLength,
		metrics.Factors.KeywordMatch,
		metrics.Factors.GrammarQuality,
		metrics.Factors.IntentClarity,
		metrics.Factors.ConversationFlow,
		metrics.Factors.SessionHistoryStrength,
		metrics.Factors.MenuItemMatch,
		metrics.Factors.CustomerProfile,
		metrics.Factors.FunctionConsistency,
		metrics.Factors.ParameterCompleteness,
		metrics.Factors.ResponseCoherence,
		metrics.Factors.TimeOfDay,
		metrics.Factors.RestaurantBusyness,
		metrics.Factors.HistoricalAccuracy,
	} {
		assert.GreaterOrEqual(t, factor, 0.0)
		assert.LessOrEqual(t, factor, 1.0)
	}
}

// A more complete payload must never score below the same turn with a
// less complete one.
func TestScore_MonotonicInCompleteness(t *testing.T) {
	scorer := NewScorer(NewMemoryHistoryStore())
	text := "I want 2 margherita pizzas"

	complete := scorer.Score(text, intent.CategoryAddToOrder, addAction(33.98, "demo"), scoringContext(), 800)
	partial := scorer.Score(text, intent.CategoryAddToOrder, addAction(0, ""), scoringContext(), 800)

	assert.Greater(t, complete.AdjustedConfidence, partial.AdjustedConfidence)
}

// Unmatched quantity tokens dilute the menu-match factor and with it the
// adjusted confidence.
func TestScore_MonotonicInMenuMatch(t *testing.T) {
	scorer := NewScorer(NewMemoryHistoryStore())
	action := addAction(33.98, "demo")

	matched := scorer.Score("I want 2 margherita pizzas", intent.CategoryAddToOrder, action, scoringContext(), 800)
	diluted := scorer.Score("I want 2 margherita pizzas and 3 mystery rolls", intent.CategoryAddToOrder, action, scoringContext(), 800)

	assert.Greater(t, matched.Factors.MenuItemMatch, diluted.Factors.MenuItemMatch)
	assert.Greater(t, matched.AdjustedConfidence, diluted.AdjustedConfidence)
}

func TestScore_HedgingFlagged(t *testing.T) {
	scorer := NewScorer(NewMemoryHistoryStore())

	metrics := scorer.Score("Maybe I want a margherita pizza, not sure", intent.CategoryAddToOrder, addAction(16.99, "demo"), scoringContext(), 800)

	assert.Contains(t, metrics.UncertaintyIndicators, "hedging language detected")
}

func TestDecide(t *testing.T) {
	testCases := []struct {
		confidence  float64
		reliability float64
		indicators  int
		want        RecommendedAction
	}{
		{0.85, 0.75, 0, Proceed},
		{0.85, 0.75, 1, Clarify},
		{0.81, 0.71, 0, Proceed},
		{0.80, 0.75, 0, Clarify}, // proceed bound is strict
		{0.60, 0.60, 2, Clarify},
		{0.60, 0.60, 4, Fallback},
		{0.39, 0.90, 0, Fallback},
		{0.90, 0.25, 0, Fallback},
	}

	for _, tc := range testCases {
		got := decide(tc.confidence, tc.reliability, tc.indicators)
		assert.Equal(t, tc.want, got, "decide(%.2f, %.2f, %d)", tc.confidence, tc.reliability, tc.indicators)
	}
}

// Below the fallback confidence bound the decision is fallback no matter
// how reliable the factors look.
func TestDecide_LowConfidenceAlwaysFallsBack(t *testing.T) {
	for _, confidence := range []float64{0.0, 0.1, 0.25, 0.39} {
		for _, reliability := range []float64{0.0, 0.5, 1.0} {
			assert.Equal(t, Fallback, decide(confidence, reliability, 0))
		}
	}
}

func TestRecordOutcome_AlternatingAccuracy(t *testing.T) {
	store := NewMemoryHistoryStore()
	scorer := NewScorer(store)

	for i := 0; i < 20; i++ {
		assert.NoError(t, scorer.RecordOutcome("s1", i%2 == 0))
	}

	accuracy, ok := store.Accuracy("s1")
	assert.True(t, ok)
	assert.InDelta(t, 0.5, accuracy, 0.001)
}

func TestScore_UsesSessionHistory(t *testing.T) {
	store := NewMemoryHistoryStore()
	scorer := NewScorer(store)

	for i := 0; i < 10; i++ {
		_ = store.Append("s1", true)
	}

	metrics := scorer.Score("I want 2 margherita pizzas", intent.CategoryAddToOrder, addAction(33.98, "demo"), scoringContext(), 800)
	assert.InDelta(t, 1.0, metrics.Factors.HistoricalAccuracy, 0.001)
}
