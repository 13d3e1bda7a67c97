package evaluation

import (
	"time"

	"maitred/internal/intent"
	"maitred/internal/models"
)

func scenarioMenu() []models.MenuItemRef {
	return []models.MenuItemRef{
		{ID: "m1", Name: "Margherita Pizza", Category: "main", Price: 16.99, Available: true},
		{ID: "m2", Name: "Large Margherita Pizza", Category: "main", Price: 21.99, Available: true},
		{ID: "m3", Name: "Cola", Category: "drink", Price: 2.99, Available: true},
		{ID: "m4", Name: "Fries", Category: "side", Price: 4.99, Available: true},
		{ID: "m5", Name: "Tiramisu", Category: "dessert", Price: 7.50, Available: true},
	}
}

// loadScenarios populates the evaluator with the built-in regression
// scenarios covering the main conversation shapes.
func (e *Evaluator) loadScenarios() {
	base := &models.ChatContext{
		RestaurantID: "demo",
		SessionID:    "eval",
		Menu:         scenarioMenu(),
		Now:          time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC),
	}

	withOrder := &models.ChatContext{
		RestaurantID:   "demo",
		SessionID:      "eval",
		Menu:           scenarioMenu(),
		CurrentOrderID: "ABC123",
		OpenOrders: []models.OrderSnapshot{{
			ID:     "ABC123",
			Status: models.OrderStatusPending,
			Items: []models.ParsedOrderItem{
				{MenuItemID: "m1", Name: "Margherita Pizza", Quantity: 2, UnitPrice: 16.99},
			},
		}},
		Now: time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC),
	}

	e.scenarios["new_order"] = &Scenario{
		ID:          "new_order",
		Name:        "New Order",
		Description: "A guest ordering for the first time in the session.",
		Context:     base,
		Turns: []LabeledTurn{
			{Message: "I want 2 margherita pizzas", Role: models.RoleUser, WantCategory: intent.CategoryAddToOrder, WantAction: true},
			{Message: "Can I get a cola as well", Role: models.RoleUser, WantCategory: intent.CategoryAddToOrder, WantAction: true},
			{Message: "What's good here?", Role: models.RoleUser, WantCategory: intent.CategoryRequestRecommendation, WantAction: true},
			{Message: "Lovely weather today", Role: models.RoleUser, WantCategory: intent.CategoryNone, WantAction: false},
		},
	}

	e.scenarios["order_edits"] = &Scenario{
		ID:          "order_edits",
		Name:        "Order Edits",
		Description: "A guest changing an order already in the session.",
		Context:     withOrder,
		Turns: []LabeledTurn{
			{Message: "Cancel order #abc123", Role: models.RoleUser, WantCategory: intent.CategorySpecificOrderEdit, WantAction: true},
			{Message: "Change my order", Role: models.RoleUser, WantCategory: intent.CategoryEditOrder, WantAction: true},
			{Message: "Make it 3", Role: models.RoleUser, WantCategory: intent.CategoryModifyOrderItem, WantAction: true},
			{Message: "Remove the fries", Role: models.RoleUser, WantCategory: intent.CategoryRemoveFromOrder, WantAction: true},
			{Message: "I want 2 pizzas", Role: models.RoleUser, WantCategory: intent.CategoryAddToOrder, WantAction: false},
		},
	}

	e.scenarios["checkout"] = &Scenario{
		ID:          "checkout",
		Name:        "Checkout",
		Description: "Wrapping up: confirmation and status checks.",
		Context:     withOrder,
		Turns: []LabeledTurn{
			{Message: "That's all, thanks", Role: models.RoleUser, WantCategory: intent.CategoryConfirmOrder, WantAction: true},
			{Message: "Where is my order?", Role: models.RoleUser, WantCategory: intent.CategoryCheckOrder, WantAction: true},
			{Message: "Shall I place the order for you?", Role: models.RoleAssistant, WantCategory: intent.CategoryConfirmOrder, WantAction: true},
			{Message: "Your order is being prepared", Role: models.RoleAssistant, WantCategory: intent.CategoryCheckOrder, WantAction: true},
		},
	}
}
