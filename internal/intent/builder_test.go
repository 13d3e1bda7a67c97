package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maitred/internal/models"
)

func testContext() *models.ChatContext {
	return &models.ChatContext{
		RestaurantID: "demo",
		SessionID:    "s1",
		TableNumber:  "7",
		Menu:         testCatalog(),
	}
}

func TestBuildAddToOrder(t *testing.T) {
	builder := NewActionBuilder(nil)

	action := builder.Build(CategoryAddToOrder, "I want 2 margherita pizzas", testContext())
	require.NotNil(t, action)

	assert.Equal(t, models.ActionAddToOrder, action.Type)
	assert.True(t, action.RequiresConfirmation)
	assert.NotEmpty(t, action.ID)

	data, ok := action.Data.(models.AddToOrderData)
	require.True(t, ok)
	require.Len(t, data.Items, 1)
	assert.Equal(t, 2, data.Items[0].Quantity)
	assert.InDelta(t, 33.98, data.Total, 0.001)
	assert.Contains(t, action.ConfirmationMessage, "2x Margherita Pizza")
}

func TestBuildAddToOrder_UnknownItem(t *testing.T) {
	builder := NewActionBuilder(nil)

	action := builder.Build(CategoryAddToOrder, "I want a unicorn burger", testContext())
	assert.Nil(t, action)
}

func TestBuildAddToOrder_SkipsUnavailableItems(t *testing.T) {
	builder := NewActionBuilder(nil)

	// Tiramisu is on the menu but marked unavailable.
	action := builder.Build(CategoryAddToOrder, "I'd like the tiramisu", testContext())
	assert.Nil(t, action)
}

func TestBuildConfirmOrder_FallsBackToRunningOrder(t *testing.T) {
	builder := NewActionBuilder(nil)

	ctx := testContext()
	ctx.CurrentOrderID = "ABC123"
	ctx.OpenOrders = []models.OrderSnapshot{{
		ID:     "ABC123",
		Status: models.OrderStatusPending,
		Items: []models.ParsedOrderItem{
			{MenuItemID: "m1", Name: "Margherita Pizza", Quantity: 1, UnitPrice: 16.99},
			{MenuItemID: "m3", Name: "Cola", Quantity: 2, UnitPrice: 2.99},
		},
	}}

	action := builder.Build(CategoryConfirmOrder, "That's all, thanks", ctx)
	require.NotNil(t, action)

	data, ok := action.Data.(models.ConfirmOrderData)
	require.True(t, ok)
	assert.Len(t, data.Items, 2)
	assert.InDelta(t, 22.97, data.Total, 0.001)
}

func TestBuildConfirmOrder_NothingToConfirm(t *testing.T) {
	builder := NewActionBuilder(nil)

	action := builder.Build(CategoryConfirmOrder, "That's all, thanks", testContext())
	assert.Nil(t, action)
}

func TestBuildSpecificEdit_CancelByHashCode(t *testing.T) {
	builder := NewActionBuilder(nil)

	action := builder.Build(CategorySpecificOrderEdit, "Cancel order #def456", testContext())
	require.NotNil(t, action)

	assert.Equal(t, models.ActionSpecificOrderEdit, action.Type)

	data, ok := action.Data.(models.SpecificOrderEditData)
	require.True(t, ok)
	assert.Equal(t, "DEF456", data.OrderID)
	assert.Equal(t, models.EditCancelOrder, data.EditAction)
	assert.Contains(t, action.ConfirmationMessage, "DEF456")
}

func TestBuildSpecificEdit_OrdinalReference(t *testing.T) {
	builder := NewActionBuilder(nil)

	ctx := testContext()
	ctx.OpenOrders = []models.OrderSnapshot{
		{ID: "AAA111", Status: models.OrderStatusPending},
		{ID: "BBB222", Status: models.OrderStatusConfirmed},
	}

	action := builder.Build(CategorySpecificOrderEdit, "Cancel the second order", ctx)
	require.NotNil(t, action)

	data := action.Data.(models.SpecificOrderEditData)
	assert.Equal(t, "BBB222", data.OrderID)
	assert.Equal(t, models.EditCancelOrder, data.EditAction)
}

func TestBuildSpecificEdit_ContextFallback(t *testing.T) {
	builder := NewActionBuilder(nil)

	ctx := testContext()
	ctx.CurrentOrderID = "xyz789"

	action := builder.Build(CategorySpecificOrderEdit, "Cancel my order, never mind", ctx)
	require.NotNil(t, action)

	data := action.Data.(models.SpecificOrderEditData)
	assert.Equal(t, "XYZ789", data.OrderID)
}

func TestBuildSpecificEdit_NoResolvableOrder(t *testing.T) {
	builder := NewActionBuilder(nil)

	action := builder.Build(CategorySpecificOrderEdit, "Cancel my order, never mind", testContext())
	assert.Nil(t, action)
}

func TestBuildSpecificEdit_AddItems(t *testing.T) {
	builder := NewActionBuilder(nil)

	action := builder.Build(CategorySpecificOrderEdit, "Add 2 colas to order abc123", testContext())
	require.NotNil(t, action)

	data := action.Data.(models.SpecificOrderEditData)
	assert.Equal(t, "ABC123", data.OrderID)
	assert.Equal(t, models.EditAddItem, data.EditAction)
	require.Len(t, data.Items, 1)
	assert.Equal(t, 2, data.Items[0].Quantity)
}

func TestBuildModifyItem(t *testing.T) {
	builder := NewActionBuilder(nil)

	ctx := testContext()
	ctx.CurrentOrderID = "ABC123"
	ctx.OpenOrders = []models.OrderSnapshot{{
		ID:     "ABC123",
		Status: models.OrderStatusPending,
		Items: []models.ParsedOrderItem{
			{MenuItemID: "m1", Name: "Margherita Pizza", Quantity: 1, UnitPrice: 16.99},
		},
	}}

	action := builder.Build(CategoryModifyOrderItem, "Make it 3", ctx)
	require.NotNil(t, action)

	data, ok := action.Data.(models.ModifyOrderItemData)
	require.True(t, ok)
	assert.Equal(t, "m1", data.MenuItemID)
	assert.Equal(t, 1, data.QuantityFrom)
	assert.Equal(t, 3, data.QuantityTo)
}

func TestBuildModifyItem_NoRunningOrder(t *testing.T) {
	builder := NewActionBuilder(nil)

	action := builder.Build(CategoryModifyOrderItem, "Make it 3", testContext())
	assert.Nil(t, action)
}

func TestBuildCheckOrder_NoConfirmationNeeded(t *testing.T) {
	builder := NewActionBuilder(nil)

	action := builder.Build(CategoryCheckOrder, "Where is my order?", testContext())
	require.NotNil(t, action)
	assert.False(t, action.RequiresConfirmation)
}

func TestBuildRecommendation_DowngradesWithoutRecommender(t *testing.T) {
	builder := NewActionBuilder(nil)

	action := builder.Build(CategoryRequestRecommendation, "What's good here?", testContext())
	require.NotNil(t, action)
	assert.Equal(t, models.ActionRequestClarification, action.Type)
}

func TestBuildNone(t *testing.T) {
	builder := NewActionBuilder(nil)
	assert.Nil(t, builder.Build(CategoryNone, "hello", testContext()))
}
