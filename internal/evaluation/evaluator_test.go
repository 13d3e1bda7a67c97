package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvaluator_LoadsScenarios(t *testing.T) {
	evaluator := NewEvaluator()

	assert.True(t, evaluator.HasScenario("new_order"))
	assert.True(t, evaluator.HasScenario("order_edits"))
	assert.True(t, evaluator.HasScenario("checkout"))
	assert.False(t, evaluator.HasScenario("busy_night"))
	assert.Len(t, evaluator.GetScenarios(), 3)
}

func TestEvaluate_UnknownScenario(t *testing.T) {
	evaluator := NewEvaluator()
	assert.Nil(t, evaluator.Evaluate("nope"))
}

func TestEvaluate_BuiltinScenariosPass(t *testing.T) {
	evaluator := NewEvaluator()

	for _, result := range evaluator.EvaluateAll() {
		require.NotNil(t, result)
		assert.InDelta(t, 1.0, result.IntentAccuracy, 0.001, "scenario %s misclassified: %v", result.Scenario, result.Misclassified)
		assert.InDelta(t, 1.0, result.ActionAccuracy, 0.001, "scenario %s", result.Scenario)
	}
}

func TestEvaluate_ReportsMisses(t *testing.T) {
	evaluator := NewEvaluator()

	result := evaluator.Evaluate("new_order")
	require.NotNil(t, result)
	assert.Equal(t, result.Turns, result.CorrectIntents)
	assert.Empty(t, result.Misclassified)
}
