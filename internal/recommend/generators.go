package recommend

import (
	"fmt"
	"strings"

	"maitred/internal/models"
)

// generator produces zero or more suggestions from the context. Each
// generator is independent; the engine aggregates and ranks them.
type generator func(ctx *models.ChatContext) []models.RecommendationSuggestion

// complementaryGenerator fills category gaps in the running order: a
// meal without a drink, side or dessert gets one suggested.
func complementaryGenerator(ctx *models.ChatContext) []models.RecommendationSuggestion {
	order := currentOrder(ctx)
	if order == nil || len(order.Items) == 0 {
		return nil
	}

	gaps := []struct {
		category models.MenuCategory
		sType    models.SuggestionType
		priority int
		message  string
	}{
		{models.MenuCategoryDrink, models.SuggestDrink, 8, "Something to drink with that?"},
		{models.MenuCategorySide, models.SuggestSide, 6, "How about a side to go with your meal?"},
		{models.MenuCategoryDessert, models.SuggestDessert, 5, "Save room for dessert?"},
	}

	var suggestions []models.RecommendationSuggestion
	for _, gap := range gaps {
		if order.ContainsCategory(ctx.Menu, gap.category) {
			continue
		}
		items := itemsInCategory(ctx.Menu, gap.category, 3)
		if len(items) == 0 {
			continue
		}
		suggested := make([]models.SuggestedItem, 0, len(items))
		for _, item := range items {
			suggested = append(suggested, models.SuggestedItem{
				Item:      item,
				Rationale: fmt.Sprintf("pairs with your %s", order.Items[0].Name),
			})
		}
		suggestions = append(suggestions, models.RecommendationSuggestion{
			Type:       gap.sType,
			Priority:   gap.priority,
			Message:    gap.message,
			Items:      suggested,
			Confidence: 0.75,
		})
	}
	return suggestions
}

// Meal-period keyword buckets matched against item names and categories.
var mealPeriods = []struct {
	fromHour, toHour int
	label            string
	keywords         []string
}{
	{6, 11, "breakfast", []string{"egg", "pancake", "coffee", "croissant", "omelette", "toast", "breakfast"}},
	{11, 15, "lunch", []string{"sandwich", "salad", "wrap", "soup", "burger", "lunch"}},
	{17, 22, "dinner", []string{"steak", "pasta", "pizza", "curry", "roast", "grill", "dinner"}},
}

// timeOfDayGenerator suggests items fitting the current meal period.
func timeOfDayGenerator(ctx *models.ChatContext) []models.RecommendationSuggestion {
	hour := ctx.Clock().Hour()

	for _, period := range mealPeriods {
		if hour < period.fromHour || hour >= period.toHour {
			continue
		}
		var suggested []models.SuggestedItem
		for _, item := range models.AvailableItems(ctx.Menu) {
			if matchesAnyKeyword(item, period.keywords) {
				suggested = append(suggested, models.SuggestedItem{
					Item:      item,
					Rationale: fmt.Sprintf("a %s favourite", period.label),
				})
			}
			if len(suggested) == 3 {
				break
			}
		}
		if len(suggested) == 0 {
			return nil
		}
		return []models.RecommendationSuggestion{{
			Type:       models.SuggestComplement,
			Priority:   6,
			Message:    fmt.Sprintf("Perfect time for %s! A few favourites:", period.label),
			Items:      suggested,
			Confidence: 0.7,
		}}
	}
	return nil
}

var dietaryMentions = []struct {
	mention string
	tag     models.DietaryTag
}{
	{"vegetarian", models.DietaryVegetarian},
	{"vegan", models.DietaryVegan},
	{"gluten", models.DietaryGlutenFree},
	{"healthy", models.DietaryHealthy},
}

// dietaryGenerator scans the conversation for dietary mentions and
// proposes matching items.
func dietaryGenerator(ctx *models.ChatContext) []models.RecommendationSuggestion {
	mentioned := map[models.DietaryTag]bool{}
	for _, msg := range ctx.History {
		lowered := strings.ToLower(msg.Content)
		for _, dm := range dietaryMentions {
			if strings.Contains(lowered, dm.mention) {
				mentioned[dm.tag] = true
			}
		}
	}
	if len(mentioned) == 0 {
		return nil
	}

	var suggestions []models.RecommendationSuggestion
	for _, dm := range dietaryMentions {
		if !mentioned[dm.tag] {
			continue
		}
		var suggested []models.SuggestedItem
		for _, item := range models.AvailableItems(ctx.Menu) {
			if item.HasDietaryTag(string(dm.tag)) {
				suggested = append(suggested, models.SuggestedItem{
					Item:      item,
					Rationale: fmt.Sprintf("marked %s", dm.tag),
				})
			}
			if len(suggested) == 3 {
				break
			}
		}
		if len(suggested) == 0 {
			continue
		}
		suggestions = append(suggestions, models.RecommendationSuggestion{
			Type:       models.SuggestDietary,
			Priority:   9,
			Message:    fmt.Sprintf("Since you mentioned %s, these might suit you:", dm.tag),
			Items:      suggested,
			Confidence: 0.85,
		})
	}
	return suggestions
}

// popularKeywords is a fixed popularity proxy until real sales data
// feeds the ranking.
var popularKeywords = []string{"pizza", "burger", "pasta", "chicken", "salad", "fries"}

// popularityGenerator suggests crowd-pleasers the guest has not
// ordered yet.
func popularityGenerator(ctx *models.ChatContext) []models.RecommendationSuggestion {
	ordered := orderedItemIDs(ctx)

	var suggested []models.SuggestedItem
	for _, item := range models.AvailableItems(ctx.Menu) {
		if ordered[item.ID] {
			continue
		}
		if matchesAnyKeyword(item, popularKeywords) {
			suggested = append(suggested, models.SuggestedItem{
				Item:      item,
				Rationale: "a house favourite",
			})
		}
		if len(suggested) == 3 {
			break
		}
	}
	if len(suggested) == 0 {
		return nil
	}
	return []models.RecommendationSuggestion{{
		Type:       models.SuggestPopular,
		Priority:   5,
		Message:    "Our most-loved dishes, if you'd like a safe bet:",
		Items:      suggested,
		Confidence: 0.65,
	}}
}

// upgradeGenerator finds a pricier variant of something already
// ordered, matched by shared base name.
func upgradeGenerator(ctx *models.ChatContext) []models.RecommendationSuggestion {
	order := currentOrder(ctx)
	if order == nil {
		return nil
	}

	var suggestions []models.RecommendationSuggestion
	for _, orderedItem := range order.Items {
		for _, candidate := range models.AvailableItems(ctx.Menu) {
			if candidate.ID == orderedItem.MenuItemID || candidate.Price <= orderedItem.UnitPrice {
				continue
			}
			if !sharesBaseName(candidate.Name, orderedItem.Name) {
				continue
			}
			suggestions = append(suggestions, models.RecommendationSuggestion{
				Type:     models.SuggestUpgrade,
				Priority: 7,
				Message:  fmt.Sprintf("Upgrade your %s to the %s for $%.2f more?", orderedItem.Name, candidate.Name, candidate.Price-orderedItem.UnitPrice),
				Items: []models.SuggestedItem{{
					Item:      candidate,
					Rationale: fmt.Sprintf("bigger version of %s", orderedItem.Name),
				}},
				Confidence: 0.7,
			})
			break
		}
	}
	return suggestions
}

// Helpers shared by the generators.

func currentOrder(ctx *models.ChatContext) *models.OrderSnapshot {
	for i := range ctx.OpenOrders {
		if ctx.OpenOrders[i].ID == ctx.CurrentOrderID {
			return &ctx.OpenOrders[i]
		}
	}
	if len(ctx.OpenOrders) == 1 {
		return &ctx.OpenOrders[0]
	}
	return nil
}

func itemsInCategory(catalog []models.MenuItemRef, category models.MenuCategory, limit int) []models.MenuItemRef {
	var matched []models.MenuItemRef
	for _, item := range models.AvailableItems(catalog) {
		if models.MenuCategory(item.Category) == category {
			matched = append(matched, item)
		}
		if len(matched) == limit {
			break
		}
	}
	return matched
}

func matchesAnyKeyword(item models.MenuItemRef, keywords []string) bool {
	name := strings.ToLower(item.Name)
	category := strings.ToLower(item.Category)
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) || strings.Contains(category, keyword) {
			return true
		}
	}
	return false
}

func orderedItemIDs(ctx *models.ChatContext) map[string]bool {
	ordered := make(map[string]bool)
	for _, order := range ctx.OpenOrders {
		for _, item := range order.Items {
			ordered[item.MenuItemID] = true
		}
	}
	return ordered
}

// sharesBaseName reports whether one item name contains the other,
// ignoring case ("Large Margherita Pizza" vs "Margherita Pizza").
func sharesBaseName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
