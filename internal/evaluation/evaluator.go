package evaluation

import (
	"time"

	"maitred/internal/intent"
	"maitred/internal/models"
)

// Evaluator runs labeled conversation scenarios through the intent
// classifier and action builder and reports how often the engine got
// them right. Used for offline regression checks when patterns change.
type Evaluator struct {
	classifier *intent.Classifier
	builder    *intent.ActionBuilder
	scenarios  map[string]*Scenario
}

// Scenario is a named set of labeled chat turns evaluated against one
// shared context.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Context     *models.ChatContext
	Turns       []LabeledTurn
}

// LabeledTurn is one chat message with its expected classification and
// whether an action should come out of it.
type LabeledTurn struct {
	Message      string
	Role         models.ChatRole
	WantCategory intent.Category
	WantAction   bool
}

// Result summarizes one scenario run.
type Result struct {
	Scenario       string    `json:"scenario"`
	Turns          int       `json:"turns"`
	CorrectIntents int       `json:"correct_intents"`
	CorrectActions int       `json:"correct_actions"`
	IntentAccuracy float64   `json:"intent_accuracy"`
	ActionAccuracy float64   `json:"action_accuracy"`
	Misclassified  []Miss    `json:"misclassified,omitempty"`
	EvaluatedAt    time.Time `json:"evaluated_at"`
}

// Miss records one wrongly handled turn for debugging.
type Miss struct {
	Message string          `json:"message"`
	Want    intent.Category `json:"want"`
	Got     intent.Category `json:"got"`
}

// NewEvaluator creates an evaluator preloaded with the built-in
// scenarios.
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		classifier: intent.NewClassifier(),
		builder:    intent.NewActionBuilder(nil),
		scenarios:  make(map[string]*Scenario),
	}
	e.loadScenarios()
	return e
}

// HasScenario checks if a scenario exists
func (e *Evaluator) HasScenario(id string) bool {
	_, exists := e.scenarios[id]
	return exists
}

// GetScenarios returns all available scenarios
func (e *Evaluator) GetScenarios() []*Scenario {
	scenarios := make([]*Scenario, 0, len(e.scenarios))
	for _, s := range e.scenarios {
		scenarios = append(scenarios, s)
	}
	return scenarios
}

// Evaluate runs one scenario and scores every turn. Returns nil for an
// unknown scenario id.
func (e *Evaluator) Evaluate(scenarioID string) *Result {
	scenario, exists := e.scenarios[scenarioID]
	if !exists {
		return nil
	}

	result := &Result{
		Scenario:    scenario.ID,
		Turns:       len(scenario.Turns),
		EvaluatedAt: time.Now(),
	}

	for _, turn := range scenario.Turns {
		category := e.classifier.Classify(turn.Message, turn.Role == models.RoleAssistant)
		if category == turn.WantCategory {
			result.CorrectIntents++
		} else {
			result.Misclassified = append(result.Misclassified, Miss{
				Message: turn.Message,
				Want:    turn.WantCategory,
				Got:     category,
			})
		}

		action := e.builder.Build(category, turn.Message, scenario.Context)
		if (action != nil) == turn.WantAction {
			result.CorrectActions++
		}
	}

	if result.Turns > 0 {
		result.IntentAccuracy = float64(result.CorrectIntents) / float64(result.Turns)
		result.ActionAccuracy = float64(result.CorrectActions) / float64(result.Turns)
	}
	return result
}

// EvaluateAll runs every built-in scenario.
func (e *Evaluator) EvaluateAll() []*Result {
	results := make([]*Result, 0, len(e.scenarios))
	for id := range e.scenarios {
		results = append(results, e.Evaluate(id))
	}
	return results
}
