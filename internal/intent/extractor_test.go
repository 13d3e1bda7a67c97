package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"maitred/internal/models"
)

func testCatalog() []models.MenuItemRef {
	return []models.MenuItemRef{
		{ID: "m1", Name: "Margherita Pizza", Category: "main", Price: 16.99, Available: true},
		{ID: "m2", Name: "Large Margherita Pizza", Category: "main", Price: 21.99, Available: true},
		{ID: "m3", Name: "Cola", Category: "drink", Price: 2.99, Available: true},
		{ID: "m4", Name: "Fries", Category: "side", Price: 4.99, Available: true},
		{ID: "m5", Name: "Tiramisu", Category: "dessert", Price: 7.50, Available: false},
	}
}

func TestExtractItems_NumeralQuantity(t *testing.T) {
	items := ExtractItems("I want 2 margherita pizzas", testCatalog())

	assert.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].MenuItemID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 33.98, models.ItemsTotal(items), 0.001)
}

func TestExtractItems_NumberWordQuantity(t *testing.T) {
	items := ExtractItems("three margherita pizzas and a cola please", testCatalog())

	assert.Len(t, items, 2)

	byID := map[string]models.ParsedOrderItem{}
	for _, item := range items {
		byID[item.MenuItemID] = item
	}
	assert.Equal(t, 3, byID["m1"].Quantity)
	assert.Equal(t, 1, byID["m3"].Quantity)
}

func TestExtractItems_BarePluralImpliesTwo(t *testing.T) {
	items := ExtractItems("margherita pizzas sound great", testCatalog())

	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestExtractItems_DefaultQuantityIsOne(t *testing.T) {
	items := ExtractItems("the margherita pizza looks good", testCatalog())

	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestExtractItems_LongestNameWins(t *testing.T) {
	items := ExtractItems("I'll have the large margherita pizza", testCatalog())

	// The shorter name is contained in the longer one and must not
	// produce a second line item.
	assert.Len(t, items, 1)
	assert.Equal(t, "m2", items[0].MenuItemID)
}

func TestExtractItems_EmptyInputs(t *testing.T) {
	assert.Nil(t, ExtractItems("I want a pizza", nil))
	assert.Nil(t, ExtractItems("", testCatalog()))
	assert.Nil(t, ExtractItems("nothing on the menu here", testCatalog()))
}

func TestDescribeItems(t *testing.T) {
	items := []models.ParsedOrderItem{
		{Name: "Margherita Pizza", Quantity: 2},
		{Name: "Cola", Quantity: 1},
	}
	assert.Equal(t, "2x Margherita Pizza, 1x Cola", DescribeItems(items))
}
