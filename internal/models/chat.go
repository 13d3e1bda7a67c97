package models

import "time"

// ChatRole identifies the author of a chat turn
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the conversation history
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// CustomerProfile is a read-only summary of the customer attached to
// the session. Missing fields degrade the profile-richness factor to a
// neutral default rather than failing.
type CustomerProfile struct {
	Name        string    `json:"name,omitempty"`
	SessionID   string    `json:"session_id"`
	StartedAt   time.Time `json:"started_at"`
	TotalOrders int       `json:"total_orders"`
	TotalSpent  float64   `json:"total_spent"`
}

// RestaurantSettings carries the per-tenant knobs the engine reads.
type RestaurantSettings struct {
	UpsellAggressiveness float64 `json:"upsell_aggressiveness"` // 0..1
}

// ChatContext bundles the already-fetched snapshots a single chat turn
// is resolved against. All fields are value snapshots; the engine never
// reaches back into a store.
type ChatContext struct {
	RestaurantID   string             `json:"restaurant_id"`
	TableNumber    string             `json:"table_number,omitempty"`
	SessionID      string             `json:"session_id"`
	Menu           []MenuItemRef      `json:"menu"`
	History        []ChatMessage      `json:"history"`
	CurrentOrderID string             `json:"current_order_id,omitempty"`
	OpenOrders     []OrderSnapshot    `json:"open_orders,omitempty"`
	Customer       *CustomerProfile   `json:"customer,omitempty"`
	Settings       RestaurantSettings `json:"settings"`
	Now            time.Time          `json:"-"` // zero means time.Now()
}

// Clock returns the wall-clock time the turn should be evaluated at.
// Tests pin Now; production leaves it zero.
func (c *ChatContext) Clock() time.Time {
	if c.Now.IsZero() {
		return time.Now()
	}
	return c.Now
}

// LastAssistantMessage returns the most recent assistant turn, or nil.
func (c *ChatContext) LastAssistantMessage() *ChatMessage {
	for i := len(c.History) - 1; i >= 0; i-- {
		if c.History[i].Role == RoleAssistant {
			return &c.History[i]
		}
	}
	return nil
}
