package intent

import "strings"

// Classifier assigns one coarse intent to a chat turn. The two pattern
// families are fixed tables (patterns.go); precedence is encoded by
// evaluation order, not by scoring.
type Classifier struct {
	userFamily      []patternRule
	assistantFamily []patternRule
}

// NewClassifier builds a classifier over the declared pattern tables.
func NewClassifier() *Classifier {
	return &Classifier{
		userFamily:      userRules,
		assistantFamily: assistantRules,
	}
}

// Classify lower-cases the message and returns the first matching
// intent. Specific order edits are checked before generic edits, which
// are checked before everything else; CategoryNone means "no action,
// respond conversationally".
func (c *Classifier) Classify(text string, assistantAuthored bool) Category {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return CategoryNone
	}

	if c.isSpecificOrderEdit(lowered) {
		return CategorySpecificOrderEdit
	}

	if genericOrderEdit.MatchString(lowered) {
		return CategoryEditOrder
	}

	if modifyItemShape.MatchString(lowered) {
		return CategoryModifyOrderItem
	}

	family := c.userFamily
	if assistantAuthored {
		family = c.assistantFamily
	}
	for _, rule := range family {
		for _, expr := range rule.exprs {
			if expr.MatchString(lowered) {
				return rule.intent
			}
		}
	}

	return CategoryNone
}

// isSpecificOrderEdit detects a message that targets one identified
// prior order. The new-order guard runs first: a first-time request
// shape that never mentions "order" is never an edit, even when it
// contains a code-shaped token ("I want 2 pizzas" stays a new order).
func (c *Classifier) isSpecificOrderEdit(lowered string) bool {
	if newOrderShape.MatchString(lowered) && !orderWord.MatchString(lowered) {
		return false
	}

	if hashOrderCode.MatchString(lowered) || bracketedOrderCode.MatchString(lowered) {
		return true
	}
	if ordinalReference.MatchString(lowered) {
		return true
	}
	if cancelOrderPhrase.MatchString(lowered) {
		return true
	}
	// A bare six-character code only counts next to an order-ish verb,
	// and must mix letters and digits so ordinary words never qualify.
	if findBareOrderCode(lowered) != "" && orderWord.MatchString(lowered) {
		return true
	}
	return false
}

// findBareOrderCode returns the first six-character token containing
// both a letter and a digit, upper-cased, or "".
func findBareOrderCode(lowered string) string {
	for _, match := range bareOrderCode.FindAllStringSubmatch(lowered, -1) {
		token := match[1]
		if hasLetterAndDigit(token) {
			return strings.ToUpper(token)
		}
	}
	return ""
}

func hasLetterAndDigit(token string) bool {
	var letter, digit bool
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			letter = true
		}
	}
	return letter && digit
}
