package confidence

import "maitred/internal/models"

// Thresholds are the confidence gates a host applies when deciding
// whether to auto-execute, ask, or fall back.
type Thresholds struct {
	Proceed  float64 `json:"proceed"`
	Clarify  float64 `json:"clarify"`
	Fallback float64 `json:"fallback"`
}

// Base thresholds and the documented bounds adjustment may move them
// within. Each input shifts its gate by at most ±0.1.
const (
	baseProceedThreshold  = 0.8
	baseClarifyThreshold  = 0.6
	baseFallbackThreshold = 0.4

	minProceedThreshold  = 0.65
	maxProceedThreshold  = 0.9
	minClarifyThreshold  = 0.45
	maxClarifyThreshold  = 0.7
	minFallbackThreshold = 0.25
	maxFallbackThreshold = 0.5
)

// AdjustThresholds shifts the base gates for the current context:
// regulars earn trust (lower gates), a session juggling open orders is
// riskier (higher gates), and an aggressive upsell setting trades
// precision for volume (lower gates). Results are clamped to the
// documented bounds. The scorer's three-way decision rule itself is
// fixed; these gates are for hosts that apply their own cut-offs.
func AdjustThresholds(ctx *models.ChatContext) Thresholds {
	shift := 0.0

	// Customer experience: prior orders build trust.
	if ctx.Customer != nil {
		switch {
		case ctx.Customer.TotalOrders >= 10:
			shift -= 0.1
		case ctx.Customer.TotalOrders >= 3:
			shift -= 0.05
		}
	}

	// Order complexity: open orders raise the stakes of acting wrong.
	switch {
	case len(ctx.OpenOrders) >= 3:
		shift += 0.1
	case len(ctx.OpenOrders) >= 1:
		shift += 0.05
	}

	// Upsell aggressiveness: a pushier restaurant accepts more misses.
	if ctx.Settings.UpsellAggressiveness >= 0.7 {
		shift -= 0.05
	}

	return Thresholds{
		Proceed:  clampRange(baseProceedThreshold+shift, minProceedThreshold, maxProceedThreshold),
		Clarify:  clampRange(baseClarifyThreshold+shift, minClarifyThreshold, maxClarifyThreshold),
		Fallback: clampRange(baseFallbackThreshold+shift, minFallbackThreshold, maxFallbackThreshold),
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
