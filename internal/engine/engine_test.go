package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maitred/internal/confidence"
	"maitred/internal/intent"
	"maitred/internal/models"
	"maitred/internal/monitoring"
)

func testContext() *models.ChatContext {
	return &models.ChatContext{
		RestaurantID: "demo",
		SessionID:    "s1",
		Menu: []models.MenuItemRef{
			{ID: "m1", Name: "Margherita Pizza", Category: "main", Price: 16.99, Available: true},
			{ID: "m3", Name: "Cola", Category: "drink", Price: 2.99, Available: true},
			{ID: "m4", Name: "Fries", Category: "side", Price: 4.99, Available: true},
		},
		Now: time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC),
	}
}

func TestProcessTurn_AddToOrder(t *testing.T) {
	eng := New(confidence.NewMemoryHistoryStore(), monitoring.NewMetricsCollector())

	result := eng.ProcessTurn("I want 2 margherita pizzas", models.RoleUser, testContext(), 800)

	assert.Equal(t, intent.CategoryAddToOrder, result.Category)
	require.NotNil(t, result.Action)
	assert.Equal(t, models.ActionAddToOrder, result.Action.Type)

	data, ok := result.Action.Data.(models.AddToOrderData)
	require.True(t, ok)
	require.Len(t, data.Items, 1)
	assert.Equal(t, 2, data.Items[0].Quantity)
	assert.InDelta(t, 33.98, data.Total, 0.001)

	assert.GreaterOrEqual(t, result.Metrics.AdjustedConfidence, 0.0)
	assert.LessOrEqual(t, result.Metrics.AdjustedConfidence, 1.0)
	assert.NotEmpty(t, result.Metrics.RecommendedAction)
}

func TestProcessTurn_SmallTalkProducesNoAction(t *testing.T) {
	eng := New(confidence.NewMemoryHistoryStore(), nil)

	result := eng.ProcessTurn("Lovely weather today", models.RoleUser, testContext(), 500)

	assert.Equal(t, intent.CategoryNone, result.Category)
	assert.Nil(t, result.Action)
}

func TestProcessTurn_SpecificEditCarriesOrderID(t *testing.T) {
	eng := New(confidence.NewMemoryHistoryStore(), nil)

	result := eng.ProcessTurn("Cancel order #def456", models.RoleUser, testContext(), 500)

	assert.Equal(t, intent.CategorySpecificOrderEdit, result.Category)
	require.NotNil(t, result.Action)

	data, ok := result.Action.Data.(models.SpecificOrderEditData)
	require.True(t, ok)
	assert.Equal(t, "DEF456", data.OrderID)
	assert.Equal(t, models.EditCancelOrder, data.EditAction)
	assert.Contains(t, result.Action.ConfirmationMessage, "DEF456")
}

func TestProcessTurn_AssistantFamily(t *testing.T) {
	eng := New(confidence.NewMemoryHistoryStore(), nil)

	result := eng.ProcessTurn("I'll add a cola to your order", models.RoleAssistant, testContext(), 500)

	assert.Equal(t, intent.CategoryAddToOrder, result.Category)
	require.NotNil(t, result.Action)
}

func TestClassifyAndBuildAction_NilForUnbuildable(t *testing.T) {
	eng := New(confidence.NewMemoryHistoryStore(), nil)

	// The pattern fires but no menu item can be extracted.
	action := eng.ClassifyAndBuildAction("I want a unicorn burger", models.RoleUser, testContext())
	assert.Nil(t, action)
}

func TestRecordOutcome_FeedsHistory(t *testing.T) {
	history := confidence.NewMemoryHistoryStore()
	eng := New(history, monitoring.NewMetricsCollector())

	for i := 0; i < 4; i++ {
		assert.NoError(t, eng.RecordOutcome("s1", 0.9, true))
	}
	assert.NoError(t, eng.RecordOutcome("s1", 0.9, false))

	accuracy, ok := history.Accuracy("s1")
	assert.True(t, ok)
	assert.InDelta(t, 0.8, accuracy, 0.001)
}

func TestRecommend_EmptyContext(t *testing.T) {
	eng := New(confidence.NewMemoryHistoryStore(), nil)

	got := eng.Recommend(&models.ChatContext{SessionID: "s1"})
	assert.Empty(t, got)
}

func TestThresholds_Contextual(t *testing.T) {
	eng := New(confidence.NewMemoryHistoryStore(), nil)

	base := eng.Thresholds(&models.ChatContext{})
	trusted := eng.Thresholds(&models.ChatContext{
		Customer: &models.CustomerProfile{TotalOrders: 10},
	})

	assert.Less(t, trusted.Proceed, base.Proceed)
}
