package models

import (
	"fmt"
	"strings"
)

// MenuItemRef is a read-only snapshot of a menu item, taken from the
// restaurant's menu store before a chat turn is processed. The engine
// never mutates it.
type MenuItemRef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	DietaryTags []string `json:"dietary_tags,omitempty"`
	Available   bool     `json:"available"`
}

// MenuCategory represents the category of a menu item
type MenuCategory string

const (
	// Menu categories
	MenuCategoryAppetizer MenuCategory = "appetizer"
	MenuCategoryMain      MenuCategory = "main"
	MenuCategorySide      MenuCategory = "side"
	MenuCategoryDessert   MenuCategory = "dessert"
	MenuCategoryDrink     MenuCategory = "drink"
	MenuCategorySpecial   MenuCategory = "special"
)

// DietaryTag represents a dietary property of a menu item
type DietaryTag string

const (
	// Common dietary tags
	DietaryVegetarian DietaryTag = "vegetarian"
	DietaryVegan      DietaryTag = "vegan"
	DietaryGlutenFree DietaryTag = "gluten-free"
	DietaryHealthy    DietaryTag = "healthy"
	DietaryHalal      DietaryTag = "halal"
	DietarySpicy      DietaryTag = "spicy"
)

// HasDietaryTag reports whether the item carries the given tag.
func (m *MenuItemRef) HasDietaryTag(tag string) bool {
	for _, t := range m.DietaryTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// AvailableItems filters a catalog down to items that can currently be
// ordered. Extraction always runs against the filtered catalog.
func AvailableItems(catalog []MenuItemRef) []MenuItemRef {
	available := make([]MenuItemRef, 0, len(catalog))
	for _, item := range catalog {
		if item.Available {
			available = append(available, item)
		}
	}
	return available
}

// ValidateMenuItem validates a menu item snapshot
func ValidateMenuItem(item *MenuItemRef) error {
	if item.Name == "" {
		return fmt.Errorf("menu item name is required")
	}
	if item.Price <= 0 {
		return fmt.Errorf("menu item price must be greater than 0")
	}
	if item.Category == "" {
		return fmt.Errorf("menu item category is required")
	}
	return nil
}
