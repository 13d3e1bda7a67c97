package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"maitred/internal/models"
)

func TestAdjustThresholds_Defaults(t *testing.T) {
	got := AdjustThresholds(&models.ChatContext{})

	assert.InDelta(t, 0.8, got.Proceed, 0.001)
	assert.InDelta(t, 0.6, got.Clarify, 0.001)
	assert.InDelta(t, 0.4, got.Fallback, 0.001)
}

func TestAdjustThresholds_RegularCustomerLowersGates(t *testing.T) {
	ctx := &models.ChatContext{
		Customer: &models.CustomerProfile{TotalOrders: 10},
	}
	got := AdjustThresholds(ctx)

	assert.InDelta(t, 0.7, got.Proceed, 0.001)
	assert.InDelta(t, 0.5, got.Clarify, 0.001)
	assert.InDelta(t, 0.3, got.Fallback, 0.001)
}

func TestAdjustThresholds_OpenOrdersRaiseGates(t *testing.T) {
	ctx := &models.ChatContext{
		OpenOrders: []models.OrderSnapshot{{ID: "A"}, {ID: "B"}, {ID: "C"}},
	}
	got := AdjustThresholds(ctx)

	assert.InDelta(t, 0.9, got.Proceed, 0.001)
	assert.InDelta(t, 0.7, got.Clarify, 0.001)
	assert.InDelta(t, 0.5, got.Fallback, 0.001)
}

func TestAdjustThresholds_ClampedToBounds(t *testing.T) {
	// Strong trust plus aggressive upselling pushes past the floor; the
	// result stays clamped to the documented bounds.
	ctx := &models.ChatContext{
		Customer: &models.CustomerProfile{TotalOrders: 20},
		Settings: models.RestaurantSettings{UpsellAggressiveness: 0.9},
	}
	got := AdjustThresholds(ctx)

	assert.InDelta(t, 0.65, got.Proceed, 0.001)
	assert.InDelta(t, 0.45, got.Clarify, 0.001)
	assert.InDelta(t, 0.25, got.Fallback, 0.001)
}
