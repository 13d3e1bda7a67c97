package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maitred/internal/models"
)

func recommendMenu() []models.MenuItemRef {
	return []models.MenuItemRef{
		{ID: "m1", Name: "Margherita Pizza", Category: "main", Price: 16.99, Available: true},
		{ID: "m2", Name: "Large Margherita Pizza", Category: "main", Price: 21.99, Available: true},
		{ID: "m3", Name: "Cola", Category: "drink", Price: 2.99, Available: true},
		{ID: "m4", Name: "Fries", Category: "side", Price: 4.99, Available: true},
		{ID: "m5", Name: "Tiramisu", Category: "dessert", Price: 7.50, Available: true},
		{ID: "m6", Name: "Garden Salad", Category: "main", Price: 9.99, Available: true, DietaryTags: []string{"vegetarian", "healthy"}},
	}
}

func recommendContext() *models.ChatContext {
	return &models.ChatContext{
		RestaurantID: "demo",
		SessionID:    "s1",
		Menu:         recommendMenu(),
		Now:          time.Date(2025, 6, 2, 19, 0, 0, 0, time.UTC),
	}
}

func TestRecommend_EmptyMenu(t *testing.T) {
	engine := NewEngine()

	got := engine.Recommend(&models.ChatContext{SessionID: "s1"})
	assert.Empty(t, got)
}

func TestRecommend_FillsCategoryGaps(t *testing.T) {
	engine := NewEngine()

	ctx := recommendContext()
	ctx.CurrentOrderID = "ABC123"
	ctx.OpenOrders = []models.OrderSnapshot{{
		ID: "ABC123",
		Items: []models.ParsedOrderItem{
			{MenuItemID: "m1", Name: "Margherita Pizza", Quantity: 1, UnitPrice: 16.99},
		},
	}}

	got := engine.Recommend(ctx)
	require.NotEmpty(t, got)

	types := make(map[models.SuggestionType]bool)
	for _, s := range got {
		types[s.Type] = true
	}
	// A pizza with no drink gets one suggested first among the gaps.
	assert.True(t, types[models.SuggestDrink])
}

func TestRecommend_DietaryMentionOutranksEverything(t *testing.T) {
	engine := NewEngine()

	ctx := recommendContext()
	ctx.History = []models.ChatMessage{
		{Role: models.RoleUser, Content: "Do you have anything vegetarian?"},
	}

	got := engine.Recommend(ctx)
	require.NotEmpty(t, got)
	assert.Equal(t, models.SuggestDietary, got[0].Type)

	require.NotEmpty(t, got[0].Items)
	assert.Equal(t, "m6", got[0].Items[0].Item.ID)
}

func TestRecommend_UpgradeForOrderedItem(t *testing.T) {
	engine := NewEngine()

	ctx := recommendContext()
	ctx.CurrentOrderID = "ABC123"
	ctx.OpenOrders = []models.OrderSnapshot{{
		ID: "ABC123",
		Items: []models.ParsedOrderItem{
			{MenuItemID: "m1", Name: "Margherita Pizza", Quantity: 1, UnitPrice: 16.99},
		},
	}}

	got := engine.Recommend(ctx)

	var upgrade *models.RecommendationSuggestion
	for i := range got {
		if got[i].Type == models.SuggestUpgrade {
			upgrade = &got[i]
			break
		}
	}
	require.NotNil(t, upgrade)
	require.NotEmpty(t, upgrade.Items)
	assert.Equal(t, "m2", upgrade.Items[0].Item.ID)
	assert.Contains(t, upgrade.Message, "$5.00")
}

func TestRecommend_CapsAtThree(t *testing.T) {
	engine := NewEngine()

	ctx := recommendContext()
	ctx.CurrentOrderID = "ABC123"
	ctx.OpenOrders = []models.OrderSnapshot{{
		ID: "ABC123",
		Items: []models.ParsedOrderItem{
			{MenuItemID: "m1", Name: "Margherita Pizza", Quantity: 1, UnitPrice: 16.99},
		},
	}}
	ctx.History = []models.ChatMessage{
		{Role: models.RoleUser, Content: "something vegetarian and healthy please"},
	}

	got := engine.Recommend(ctx)
	assert.LessOrEqual(t, len(got), 3)
}

func TestRecommend_RankedByPriorityTimesConfidence(t *testing.T) {
	engine := NewEngine()

	ctx := recommendContext()
	ctx.CurrentOrderID = "ABC123"
	ctx.OpenOrders = []models.OrderSnapshot{{
		ID: "ABC123",
		Items: []models.ParsedOrderItem{
			{MenuItemID: "m1", Name: "Margherita Pizza", Quantity: 1, UnitPrice: 16.99},
		},
	}}

	got := engine.Recommend(ctx)
	require.NotEmpty(t, got)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, score(got[i-1]), score(got[i]))
	}
}
