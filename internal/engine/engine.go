package engine

import (
	"log"
	"time"

	"maitred/internal/confidence"
	"maitred/internal/intent"
	"maitred/internal/models"
	"maitred/internal/monitoring"
	"maitred/internal/recommend"
)

// Engine is the conversational action-intent resolution engine: it
// turns a free-text chat turn into a typed, confirmable action and a
// confidence verdict. Constructed once per process with an injected
// history store; every per-call input is an immutable snapshot, so the
// engine is safe for concurrent sessions.
type Engine struct {
	classifier  *intent.Classifier
	builder     *intent.ActionBuilder
	scorer      *confidence.Scorer
	recommender *recommend.Engine
	metrics     *monitoring.MetricsCollector
}

// TurnResult bundles everything one processed chat turn produced.
type TurnResult struct {
	Category intent.Category       `json:"intent"`
	Action   *models.PendingAction `json:"action,omitempty"`
	Metrics  confidence.Metrics    `json:"metrics"`
}

// New assembles the engine. metrics may be nil (e.g. in tests).
func New(history confidence.HistoryStore, metrics *monitoring.MetricsCollector) *Engine {
	recommender := recommend.NewEngine()
	return &Engine{
		classifier:  intent.NewClassifier(),
		builder:     intent.NewActionBuilder(recommender),
		scorer:      confidence.NewScorer(history),
		recommender: recommender,
		metrics:     metrics,
	}
}

// ClassifyAndBuildAction classifies one chat turn with the pattern
// family matching its author and builds the pending action. A nil
// action means no action, respond conversationally.
func (e *Engine) ClassifyAndBuildAction(text string, role models.ChatRole, ctx *models.ChatContext) *models.PendingAction {
	category := e.classifier.Classify(text, role == models.RoleAssistant)
	if category == intent.CategoryNone {
		return nil
	}
	return e.builder.Build(category, text, ctx)
}

// ScoreAction computes the confidence metrics for a turn and its
// proposed action. The action may be nil (intent-less turn).
func (e *Engine) ScoreAction(text string, action *models.PendingAction, ctx *models.ChatContext, latencyMs int64) confidence.Metrics {
	category := intent.CategoryNone
	if action != nil {
		category = intent.Category(action.Type)
	}
	return e.scorer.Score(text, category, action, ctx, latencyMs)
}

// ProcessTurn runs the full pipeline (classify, build, score) for one
// turn and records the outcome metrics.
func (e *Engine) ProcessTurn(text string, role models.ChatRole, ctx *models.ChatContext, latencyMs int64) TurnResult {
	started := time.Now()

	category := e.classifier.Classify(text, role == models.RoleAssistant)
	action := e.builder.Build(category, text, ctx)
	metrics := e.scorer.Score(text, category, action, ctx, latencyMs)

	if e.metrics != nil {
		e.metrics.RecordTurn(string(category), string(metrics.RecommendedAction), metrics.AdjustedConfidence, time.Since(started).Seconds())
	}

	return TurnResult{Category: category, Action: action, Metrics: metrics}
}

// RecordOutcome feeds an executed action's real result back into the
// session's rolling accuracy history.
func (e *Engine) RecordOutcome(sessionID string, predictedConfidence float64, success bool) error {
	if predictedConfidence > 0.8 && !success {
		log.Printf("confidence miss: session %s predicted %.2f but action failed", sessionID, predictedConfidence)
	}
	if e.metrics != nil {
		e.metrics.RecordOutcome(success)
	}
	return e.scorer.RecordOutcome(sessionID, success)
}

// Recommend returns the ranked upsell suggestions for the context.
func (e *Engine) Recommend(ctx *models.ChatContext) []models.RecommendationSuggestion {
	suggestions := e.recommender.Recommend(ctx)
	if e.metrics != nil {
		for _, s := range suggestions {
			e.metrics.RecordRecommendation(string(s.Type))
		}
	}
	return suggestions
}

// Thresholds exposes the context-adjusted confidence gates for hosts
// that apply their own execution cut-offs.
func (e *Engine) Thresholds(ctx *models.ChatContext) confidence.Thresholds {
	return confidence.AdjustThresholds(ctx)
}
