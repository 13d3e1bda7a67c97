package models

import (
	"time"

	"github.com/google/uuid"
)

// ActionType is the closed set of effects the engine can propose.
type ActionType string

const (
	ActionAddToOrder            ActionType = "ADD_TO_ORDER"
	ActionRemoveFromOrder       ActionType = "REMOVE_FROM_ORDER"
	ActionConfirmOrder          ActionType = "CONFIRM_ORDER"
	ActionRequestClarification  ActionType = "REQUEST_CLARIFICATION"
	ActionRequestRecommendation ActionType = "REQUEST_RECOMMENDATION"
	ActionCheckOrder            ActionType = "CHECK_ORDER"
	ActionEditOrder             ActionType = "EDIT_ORDER"
	ActionSpecificOrderEdit     ActionType = "SPECIFIC_ORDER_EDIT"
	ActionModifyOrderItem       ActionType = "MODIFY_ORDER_ITEM"
)

// EditSubAction narrows what a SPECIFIC_ORDER_EDIT does to its order.
type EditSubAction string

const (
	EditCancelOrder    EditSubAction = "cancel_order"
	EditRemoveItem     EditSubAction = "remove_item"
	EditModifyQuantity EditSubAction = "modify_quantity"
	EditAddItem        EditSubAction = "add_item"
	EditSelectOrder    EditSubAction = "select_order"
)

// FallbackOption is a pre-defined safe next step offered when an action
// is declined or the engine cannot act with enough confidence.
type FallbackOption string

const (
	FallbackShowOrderDetails FallbackOption = "show_order_details"
	FallbackShowMenu         FallbackOption = "show_menu"
	FallbackCancelAction     FallbackOption = "cancel_action"
	FallbackAskForHelp       FallbackOption = "ask_for_help"
	FallbackContactStaff     FallbackOption = "contact_staff"
)

// ActionData is the tagged payload union; exactly one variant exists
// per ActionType so the builder and the executor share a compile-time
// contract.
type ActionData interface {
	actionData()
}

// AddToOrderData carries the items to append to the running order.
type AddToOrderData struct {
	RestaurantID string            `json:"restaurant_id"`
	TableNumber  string            `json:"table_number,omitempty"`
	Items        []ParsedOrderItem `json:"items"`
	Total        float64           `json:"total"`
}

// RemoveFromOrderData carries the items to strike from the running order.
type RemoveFromOrderData struct {
	OrderID string            `json:"order_id,omitempty"`
	Items   []ParsedOrderItem `json:"items"`
}

// ConfirmOrderData carries a complete order ready to be placed.
type ConfirmOrderData struct {
	RestaurantID string            `json:"restaurant_id"`
	TableNumber  string            `json:"table_number,omitempty"`
	Items        []ParsedOrderItem `json:"items"`
	Total        float64           `json:"total"`
}

// ClarificationData carries the question and selectable answers shown
// when a turn was understood but under-specified.
type ClarificationData struct {
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

// RecommendationData carries ranked suggestions surfaced to the guest.
type RecommendationData struct {
	Suggestions []RecommendationSuggestion `json:"suggestions"`
}

// CheckOrderData identifies the order whose status is being asked for.
type CheckOrderData struct {
	OrderID string `json:"order_id,omitempty"`
}

// EditOrderData opens a generic edit flow on an order.
type EditOrderData struct {
	OrderID string `json:"order_id,omitempty"`
}

// SpecificOrderEditData targets one identified order with one sub-action.
// It carries everything the executor needs to replay the edit without
// re-parsing the original text.
type SpecificOrderEditData struct {
	OrderID     string            `json:"order_id"`
	EditAction  EditSubAction     `json:"edit_action"`
	Items       []ParsedOrderItem `json:"items,omitempty"`
	NewQuantity int               `json:"new_quantity,omitempty"`
}

// ModifyOrderItemData records a before/after quantity diff for one item.
type ModifyOrderItemData struct {
	OrderID      string `json:"order_id,omitempty"`
	MenuItemID   string `json:"menu_item_id"`
	ItemName     string `json:"item_name"`
	QuantityFrom int    `json:"quantity_from"`
	QuantityTo   int    `json:"quantity_to"`
}

func (AddToOrderData) actionData()        {}
func (RemoveFromOrderData) actionData()   {}
func (ConfirmOrderData) actionData()      {}
func (ClarificationData) actionData()     {}
func (RecommendationData) actionData()    {}
func (CheckOrderData) actionData()        {}
func (EditOrderData) actionData()         {}
func (SpecificOrderEditData) actionData() {}
func (ModifyOrderItemData) actionData()   {}

// PendingAction is a typed, unexecuted proposal awaiting confirmation.
// It is created once, never mutated, and only superseded by a newer
// action (e.g. a clarification answer produces a more specific one).
type PendingAction struct {
	ID                   string           `json:"id"`
	Type                 ActionType       `json:"type"`
	Data                 ActionData       `json:"data"`
	ConfirmationMessage  string           `json:"confirmation_message"`
	RequiresConfirmation bool             `json:"requires_confirmation"`
	FallbackOptions      []FallbackOption `json:"fallback_options"`
	Timestamp            time.Time        `json:"timestamp"`
}

// NewPendingAction stamps a fresh action with a collision-free id.
func NewPendingAction(actionType ActionType, data ActionData) *PendingAction {
	return &PendingAction{
		ID:        uuid.NewString(),
		Type:      actionType,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// ActionResolution is how the guest settled a pending action.
type ActionResolution string

const (
	ResolutionConfirmed ActionResolution = "confirmed"
	ResolutionDeclined  ActionResolution = "declined"
	ResolutionModified  ActionResolution = "modified"
)
