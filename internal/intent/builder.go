package intent

import (
	"fmt"
	"strconv"
	"strings"

	"maitred/internal/models"
)

// Recommender produces ranked upsell suggestions for the current
// context. Satisfied by recommend.Engine.
type Recommender interface {
	Recommend(ctx *models.ChatContext) []models.RecommendationSuggestion
}

// ActionBuilder turns a classified intent plus the raw text and the
// conversational context into a confirmable PendingAction. Pure
// construction: the order mutation itself happens in the executor that
// consumes a confirmed action.
type ActionBuilder struct {
	recommender Recommender
}

// NewActionBuilder wires the builder to its suggestion source.
func NewActionBuilder(recommender Recommender) *ActionBuilder {
	return &ActionBuilder{recommender: recommender}
}

// Build constructs the pending action for one classified turn. A nil
// result is not an error: it means the turn carries nothing actionable
// (no items, no resolvable order id) and the conversation continues.
func (b *ActionBuilder) Build(intent Category, text string, ctx *models.ChatContext) *models.PendingAction {
	switch intent {
	case CategoryAddToOrder:
		return b.buildAddToOrder(text, ctx)
	case CategoryConfirmOrder:
		return b.buildConfirmOrder(text, ctx)
	case CategoryRemoveFromOrder:
		return b.buildRemoveFromOrder(text, ctx)
	case CategoryCheckOrder:
		return b.buildCheckOrder(ctx)
	case CategoryEditOrder:
		return b.buildEditOrder(ctx)
	case CategoryRequestClarification:
		return b.buildClarification(ctx)
	case CategoryRequestRecommendation:
		return b.buildRecommendation(ctx)
	case CategoryModifyOrderItem:
		return b.buildModifyItem(text, ctx)
	case CategorySpecificOrderEdit:
		return b.buildSpecificEdit(text, ctx)
	default:
		return nil
	}
}

func (b *ActionBuilder) buildAddToOrder(text string, ctx *models.ChatContext) *models.PendingAction {
	items := ExtractItems(text, models.AvailableItems(ctx.Menu))
	if len(items) == 0 {
		return nil
	}

	total := models.ItemsTotal(items)
	action := models.NewPendingAction(models.ActionAddToOrder, models.AddToOrderData{
		RestaurantID: ctx.RestaurantID,
		TableNumber:  ctx.TableNumber,
		Items:        items,
		Total:        total,
	})
	action.ConfirmationMessage = fmt.Sprintf("Add %s to your order? That brings it to $%.2f.", DescribeItems(items), total)
	action.RequiresConfirmation = true
	action.FallbackOptions = []models.FallbackOption{models.FallbackShowMenu, models.FallbackCancelAction}
	return action
}

func (b *ActionBuilder) buildConfirmOrder(text string, ctx *models.ChatContext) *models.PendingAction {
	items := ExtractItems(text, models.AvailableItems(ctx.Menu))
	if len(items) == 0 {
		// "That's all" carries no item mentions; confirm the running
		// order from the session snapshot instead.
		items = b.currentOrderItems(ctx)
	}
	if len(items) == 0 {
		return nil
	}

	total := models.ItemsTotal(items)
	action := models.NewPendingAction(models.ActionConfirmOrder, models.ConfirmOrderData{
		RestaurantID: ctx.RestaurantID,
		TableNumber:  ctx.TableNumber,
		Items:        items,
		Total:        total,
	})
	action.ConfirmationMessage = fmt.Sprintf("Place your order of %s for $%.2f?", DescribeItems(items), total)
	action.RequiresConfirmation = true
	action.FallbackOptions = []models.FallbackOption{models.FallbackShowOrderDetails, models.FallbackCancelAction}
	return action
}

func (b *ActionBuilder) buildRemoveFromOrder(text string, ctx *models.ChatContext) *models.PendingAction {
	// Removal matches against the full catalog: an item that went
	// unavailable can still be struck from an existing order.
	items := ExtractItems(text, ctx.Menu)
	if len(items) == 0 {
		return nil
	}

	action := models.NewPendingAction(models.ActionRemoveFromOrder, models.RemoveFromOrderData{
		OrderID: ctx.CurrentOrderID,
		Items:   items,
	})
	action.ConfirmationMessage = fmt.Sprintf("Remove %s from your order?", DescribeItems(items))
	action.RequiresConfirmation = true
	action.FallbackOptions = []models.FallbackOption{models.FallbackShowOrderDetails, models.FallbackCancelAction}
	return action
}

func (b *ActionBuilder) buildCheckOrder(ctx *models.ChatContext) *models.PendingAction {
	action := models.NewPendingAction(models.ActionCheckOrder, models.CheckOrderData{
		OrderID: ctx.CurrentOrderID,
	})
	action.ConfirmationMessage = "Let me check on your order."
	// Status checks are informational; nothing to confirm.
	action.RequiresConfirmation = false
	action.FallbackOptions = []models.FallbackOption{models.FallbackContactStaff}
	return action
}

func (b *ActionBuilder) buildEditOrder(ctx *models.ChatContext) *models.PendingAction {
	orderID := ctx.CurrentOrderID
	if orderID == "" && len(ctx.OpenOrders) == 1 {
		orderID = ctx.OpenOrders[0].ID
	}

	action := models.NewPendingAction(models.ActionEditOrder, models.EditOrderData{OrderID: orderID})
	action.ConfirmationMessage = "You'd like to change your order. Should I pull it up?"
	action.RequiresConfirmation = true
	action.FallbackOptions = []models.FallbackOption{models.FallbackShowOrderDetails, models.FallbackCancelAction}
	return action
}

func (b *ActionBuilder) buildClarification(ctx *models.ChatContext) *models.PendingAction {
	action := models.NewPendingAction(models.ActionRequestClarification, models.ClarificationData{
		Question: "Sorry, I didn't quite catch that. What would you like to do?",
		Options:  []string{"Browse the menu", "Check my order", "Get a recommendation"},
	})
	action.ConfirmationMessage = "Sorry, I didn't quite catch that. What would you like to do?"
	action.RequiresConfirmation = false
	action.FallbackOptions = []models.FallbackOption{models.FallbackShowMenu, models.FallbackContactStaff}
	return action
}

func (b *ActionBuilder) buildRecommendation(ctx *models.ChatContext) *models.PendingAction {
	var suggestions []models.RecommendationSuggestion
	if b.recommender != nil {
		suggestions = b.recommender.Recommend(ctx)
	}
	if len(suggestions) == 0 {
		return b.buildClarification(ctx)
	}

	action := models.NewPendingAction(models.ActionRequestRecommendation, models.RecommendationData{
		Suggestions: suggestions,
	})
	action.ConfirmationMessage = suggestions[0].Message
	action.RequiresConfirmation = false
	action.FallbackOptions = []models.FallbackOption{models.FallbackShowMenu, models.FallbackCancelAction}
	return action
}

func (b *ActionBuilder) buildModifyItem(text string, ctx *models.ChatContext) *models.PendingAction {
	lowered := strings.ToLower(text)

	newQuantity := parseQuantityToken(modifyItemShape.FindStringSubmatch(lowered))
	if newQuantity < 1 {
		return nil
	}

	// Prefer an item named in the message; otherwise fall back to the
	// most recent item of the running order.
	target, from := b.resolveModifyTarget(text, ctx)
	if target == nil {
		return nil
	}

	action := models.NewPendingAction(models.ActionModifyOrderItem, models.ModifyOrderItemData{
		OrderID:      ctx.CurrentOrderID,
		MenuItemID:   target.MenuItemID,
		ItemName:     target.Name,
		QuantityFrom: from,
		QuantityTo:   newQuantity,
	})
	action.ConfirmationMessage = fmt.Sprintf("Change %s from %d to %d?", target.Name, from, newQuantity)
	action.RequiresConfirmation = true
	action.FallbackOptions = []models.FallbackOption{models.FallbackShowOrderDetails, models.FallbackCancelAction}
	return action
}

func (b *ActionBuilder) buildSpecificEdit(text string, ctx *models.ChatContext) *models.PendingAction {
	lowered := strings.ToLower(text)

	orderID := resolveOrderID(lowered, ctx)
	if orderID == "" {
		return nil
	}

	subAction := resolveSubAction(lowered)

	var items []models.ParsedOrderItem
	switch subAction {
	case models.EditAddItem, models.EditRemoveItem, models.EditModifyQuantity:
		items = ExtractItems(text, ctx.Menu)
	}

	data := models.SpecificOrderEditData{
		OrderID:    orderID,
		EditAction: subAction,
		Items:      items,
	}
	if subAction == models.EditModifyQuantity && len(items) > 0 {
		data.NewQuantity = items[0].Quantity
	}

	action := models.NewPendingAction(models.ActionSpecificOrderEdit, data)
	action.ConfirmationMessage = specificEditMessage(subAction, orderID, items)
	action.RequiresConfirmation = true
	action.FallbackOptions = []models.FallbackOption{models.FallbackShowOrderDetails, models.FallbackCancelAction}
	return action
}

// specificEditMessage phrases the confirmation per sub-action; the
// wording is deliberately distinct for each of the five edits.
func specificEditMessage(subAction models.EditSubAction, orderID string, items []models.ParsedOrderItem) string {
	switch subAction {
	case models.EditCancelOrder:
		return fmt.Sprintf("Cancel order %s entirely? This can't be undone once the kitchen starts.", orderID)
	case models.EditRemoveItem:
		if len(items) > 0 {
			return fmt.Sprintf("Take %s off order %s?", DescribeItems(items), orderID)
		}
		return fmt.Sprintf("Which item should I take off order %s?", orderID)
	case models.EditModifyQuantity:
		if len(items) > 0 {
			return fmt.Sprintf("Update order %s to %s?", orderID, DescribeItems(items))
		}
		return fmt.Sprintf("What quantity should I change on order %s?", orderID)
	case models.EditAddItem:
		if len(items) > 0 {
			return fmt.Sprintf("Add %s to order %s?", DescribeItems(items), orderID)
		}
		return fmt.Sprintf("What should I add to order %s?", orderID)
	default:
		return fmt.Sprintf("Pull up order %s?", orderID)
	}
}

// resolveSubAction picks the edit kind from secondary keywords; cancel
// outranks removal so "cancel, don't remove anything" cancels.
func resolveSubAction(lowered string) models.EditSubAction {
	switch {
	case editCancelKeywords.MatchString(lowered):
		return models.EditCancelOrder
	case editRemoveKeywords.MatchString(lowered):
		return models.EditRemoveItem
	case editQuantityKeywords.MatchString(lowered):
		return models.EditModifyQuantity
	case editAddKeywords.MatchString(lowered):
		return models.EditAddItem
	default:
		return models.EditSelectOrder
	}
}

// resolveOrderID extracts the target order id from the message, or
// falls back to the session's current order. Returns "" when nothing
// usable exists; the caller re-prompts.
func resolveOrderID(lowered string, ctx *models.ChatContext) string {
	if m := hashOrderCode.FindStringSubmatch(lowered); m != nil {
		return strings.ToUpper(m[1])
	}
	if m := bracketedOrderCode.FindStringSubmatch(lowered); m != nil {
		return strings.ToUpper(m[1])
	}
	if code := findBareOrderCode(lowered); code != "" {
		return code
	}
	if m := ordinalReference.FindStringSubmatch(lowered); m != nil {
		if id := resolveOrdinal(m[1], ctx.OpenOrders); id != "" {
			return id
		}
	}
	return strings.ToUpper(ctx.CurrentOrderID)
}

var ordinalIndex = map[string]int{
	"first": 0, "1st": 0,
	"second": 1, "2nd": 1,
	"third": 2, "3rd": 2,
	"fourth": 3, "4th": 3,
	"fifth": 4, "5th": 4,
}

func resolveOrdinal(word string, openOrders []models.OrderSnapshot) string {
	idx, ok := ordinalIndex[word]
	if !ok || idx >= len(openOrders) {
		return ""
	}
	return openOrders[idx].ID
}

// currentOrderItems returns the items of the session's running order.
func (b *ActionBuilder) currentOrderItems(ctx *models.ChatContext) []models.ParsedOrderItem {
	for _, order := range ctx.OpenOrders {
		if order.ID == ctx.CurrentOrderID && len(order.Items) > 0 {
			return order.Items
		}
	}
	if ctx.CurrentOrderID == "" && len(ctx.OpenOrders) == 1 {
		return ctx.OpenOrders[0].Items
	}
	return nil
}

// resolveModifyTarget finds the item a quantity change applies to.
func (b *ActionBuilder) resolveModifyTarget(text string, ctx *models.ChatContext) (*models.ParsedOrderItem, int) {
	if mentioned := ExtractItems(text, ctx.Menu); len(mentioned) > 0 {
		target := mentioned[0]
		for _, ordered := range b.currentOrderItems(ctx) {
			if ordered.MenuItemID == target.MenuItemID {
				return &target, ordered.Quantity
			}
		}
		return &target, target.Quantity
	}

	current := b.currentOrderItems(ctx)
	if len(current) == 0 {
		return nil, 0
	}
	last := current[len(current)-1]
	return &last, last.Quantity
}

func parseQuantityToken(match []string) int {
	if match == nil {
		return 0
	}
	for _, group := range match[2:] {
		if group == "" {
			continue
		}
		if n, err := strconv.Atoi(group); err == nil {
			return n
		}
		for _, nw := range numberWords {
			if nw.word == group {
				return nw.value
			}
		}
	}
	return 0
}
