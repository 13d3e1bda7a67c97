package models

import "time"

// ParsedOrderItem is a structured mention of a menu item extracted from
// free text. Immutable once built; consumed by the action builder.
type ParsedOrderItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Notes      string  `json:"notes,omitempty"`
}

// LineTotal returns the extended price for the parsed item.
func (p ParsedOrderItem) LineTotal() float64 {
	return float64(p.Quantity) * p.UnitPrice
}

// ItemsTotal sums the extended prices of a set of parsed items.
func ItemsTotal(items []ParsedOrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// OrderSnapshot is a read-only view of an order already placed in the
// session, used to resolve edit references and feed recommendations.
type OrderSnapshot struct {
	ID          string            `json:"id"`
	Status      OrderStatus       `json:"status"`
	Items       []ParsedOrderItem `json:"items"`
	Total       float64           `json:"total"`
	Editable    bool              `json:"editable"`
	TableNumber string            `json:"table_number,omitempty"`
	PlacedAt    time.Time         `json:"placed_at"`
}

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ContainsCategory reports whether any item in the order belongs to the
// given menu category, resolved against the catalog snapshot.
func (o *OrderSnapshot) ContainsCategory(catalog []MenuItemRef, category MenuCategory) bool {
	byID := make(map[string]MenuItemRef, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}
	for _, ordered := range o.Items {
		if ref, ok := byID[ordered.MenuItemID]; ok && MenuCategory(ref.Category) == category {
			return true
		}
	}
	return false
}
