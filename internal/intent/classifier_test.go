package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_UserFamily(t *testing.T) {
	classifier := NewClassifier()

	testCases := []struct {
		message string
		want    Category
	}{
		{"I want 2 margherita pizzas", CategoryAddToOrder},
		{"Can I get a cola", CategoryAddToOrder},
		{"That's all, thanks", CategoryConfirmOrder},
		{"Place my order please", CategoryConfirmOrder},
		{"Remove the fries", CategoryRemoveFromOrder},
		{"Actually, forget the cola", CategoryRemoveFromOrder},
		{"What do you mean?", CategoryRequestClarification},
		{"What's good here?", CategoryRequestRecommendation},
		{"What should I get?", CategoryRequestRecommendation},
		{"Where is my order?", CategoryCheckOrder},
		{"Change my order", CategoryEditOrder},
		{"Make it 3", CategoryModifyOrderItem},
		{"Cancel order #def456", CategorySpecificOrderEdit},
		{"Change order abc123 to 2 pizzas", CategorySpecificOrderEdit},
		{"Cancel the second order", CategorySpecificOrderEdit},
		{"Lovely weather today", CategoryNone},
		{"", CategoryNone},
	}

	for _, tc := range testCases {
		got := classifier.Classify(tc.message, false)
		assert.Equal(t, tc.want, got, "message: %q", tc.message)
	}
}

func TestClassify_AssistantFamily(t *testing.T) {
	classifier := NewClassifier()

	testCases := []struct {
		message string
		want    Category
	}{
		{"Shall I place the order for you?", CategoryConfirmOrder},
		{"I'll add that to your order right away", CategoryAddToOrder},
		{"I'll remove the fries for you", CategoryRemoveFromOrder},
		{"Did you mean the large one?", CategoryRequestClarification},
		{"May I suggest the tiramisu?", CategoryRequestRecommendation},
		{"Your order is being prepared", CategoryCheckOrder},
	}

	for _, tc := range testCases {
		got := classifier.Classify(tc.message, true)
		assert.Equal(t, tc.want, got, "message: %q", tc.message)
	}
}

// A first-time request that happens to contain a quantity must never be
// read as an edit of a prior order.
func TestClassify_NewOrderGuard(t *testing.T) {
	classifier := NewClassifier()

	for _, message := range []string{
		"I want 2 pizzas",
		"I'd like 3 colas please",
		"Give me 2 margherita pizzas",
	} {
		got := classifier.Classify(message, false)
		assert.NotEqual(t, CategorySpecificOrderEdit, got, "message: %q", message)
		assert.Equal(t, CategoryAddToOrder, got, "message: %q", message)
	}
}

// Ordinary six-letter words must never be mistaken for an order code.
func TestClassify_BareCodeNeedsLetterAndDigit(t *testing.T) {
	classifier := NewClassifier()

	got := classifier.Classify("please update my order", false)
	assert.Equal(t, CategoryEditOrder, got)

	got = classifier.Classify("update my order abc123", false)
	assert.Equal(t, CategorySpecificOrderEdit, got)
}

func TestFindBareOrderCode(t *testing.T) {
	assert.Equal(t, "ABC123", findBareOrderCode("change order abc123"))
	assert.Equal(t, "", findBareOrderCode("please change my order"))
	assert.Equal(t, "", findBareOrderCode("status update wanted"))
}
