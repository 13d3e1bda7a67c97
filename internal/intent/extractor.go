package intent

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"maitred/internal/models"
)

// numberWords lists spelled-out quantities in the order they are tried.
var numberWords = []struct {
	word  string
	value int
}{
	{"ten", 10}, {"nine", 9}, {"eight", 8}, {"seven", 7}, {"six", 6},
	{"five", 5}, {"four", 4}, {"three", 3}, {"two", 2}, {"one", 1},
	{"an", 1}, {"a", 1},
}

// quantityExtractor attempts to pull a quantity for one catalog item
// out of the message. Returns (0, false) when the strategy does not
// apply; extractors are tried in priority order and the first hit wins.
type quantityExtractor func(text, itemName string) (int, bool)

// quantityChain is the fixed priority order: explicit numeral, spelled
// number word, trailing plural, then the default of one.
var quantityChain = []quantityExtractor{
	numeralQuantity,
	numberWordQuantity,
	pluralQuantity,
}

// ExtractItems matches catalog items mentioned in free text and pairs
// each mention with a quantity. Pure function of its inputs: longer
// item names are matched first so an item whose name contains another
// item's name is never double-counted.
func ExtractItems(text string, catalog []models.MenuItemRef) []models.ParsedOrderItem {
	if len(catalog) == 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	lowered := strings.ToLower(text)

	ordered := make([]models.MenuItemRef, len(catalog))
	copy(ordered, catalog)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Name) > len(ordered[j].Name)
	})

	var items []models.ParsedOrderItem
	claimed := make(map[string]bool)

	for _, ref := range ordered {
		name := strings.ToLower(ref.Name)
		if name == "" || !strings.Contains(lowered, name) {
			continue
		}
		if claimedBy(claimed, name) {
			continue
		}
		claimed[name] = true

		quantity := 1
		for _, extract := range quantityChain {
			if q, ok := extract(lowered, name); ok {
				quantity = q
				break
			}
		}

		items = append(items, models.ParsedOrderItem{
			MenuItemID: ref.ID,
			Name:       ref.Name,
			Quantity:   quantity,
			UnitPrice:  ref.Price,
		})
	}

	return items
}

// claimedBy reports whether the name is contained in an already-matched
// longer name, in which case this mention was the other item's.
func claimedBy(claimed map[string]bool, name string) bool {
	for longer := range claimed {
		if strings.Contains(longer, name) {
			return true
		}
	}
	return false
}

// numeralQuantity matches "2 margherita pizza", "3x cola".
func numeralQuantity(text, itemName string) (int, bool) {
	pattern := regexp.MustCompile(`(\d+)\s*x?\s+(?:more\s+)?` + regexp.QuoteMeta(itemName))
	if m := pattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
			return n, true
		}
	}
	return 0, false
}

// numberWordQuantity matches "two margherita pizzas", "a cola".
func numberWordQuantity(text, itemName string) (int, bool) {
	for _, nw := range numberWords {
		pattern := regexp.MustCompile(`\b` + nw.word + `\s+(?:more\s+)?` + regexp.QuoteMeta(itemName))
		if pattern.MatchString(text) {
			return nw.value, true
		}
	}
	return 0, false
}

// pluralQuantity treats a bare plural mention ("pizzas", no count) as
// an implied quantity of two.
func pluralQuantity(text, itemName string) (int, bool) {
	if strings.HasSuffix(itemName, "s") {
		return 0, false
	}
	if strings.Contains(text, itemName+"s") || strings.Contains(text, itemName+"es") {
		return 2, true
	}
	return 0, false
}

// DescribeItems renders a short human-readable item list for
// confirmation messages, e.g. "2x Margherita Pizza, 1x Cola".
func DescribeItems(items []models.ParsedOrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}
	return strings.Join(parts, ", ")
}
