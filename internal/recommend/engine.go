package recommend

import (
	"sort"

	"maitred/internal/models"
)

// topSuggestions caps how many ranked suggestions are surfaced per turn.
const topSuggestions = 3

// Engine aggregates the independent suggestion generators and ranks
// their output. Pure: each call is a function of the context snapshot.
type Engine struct {
	generators []generator
}

// NewEngine assembles the standard generator set.
func NewEngine() *Engine {
	return &Engine{
		generators: []generator{
			complementaryGenerator,
			timeOfDayGenerator,
			dietaryGenerator,
			popularityGenerator,
			upgradeGenerator,
		},
	}
}

// Recommend runs every generator and returns the top suggestions by
// priority x confidence, highest first.
func (e *Engine) Recommend(ctx *models.ChatContext) []models.RecommendationSuggestion {
	var all []models.RecommendationSuggestion
	for _, generate := range e.generators {
		all = append(all, generate(ctx)...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return score(all[i]) > score(all[j])
	})

	if len(all) > topSuggestions {
		all = all[:topSuggestions]
	}
	return all
}

func score(s models.RecommendationSuggestion) float64 {
	return float64(s.Priority) * s.Confidence
}
