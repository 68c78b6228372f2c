package treasury

import (
	"fmt"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// InsightLogLimit caps the insight list when the optimizer prepends to it.
const InsightLogLimit = 50

// OptimizeWeights derives target weights from the risk tolerance (1-10).
// The stable weight shrinks with tolerance down to a 20% floor; the remainder is split
// across ETH, BTC and ALT with tolerance-dependent tilts, then normalized to 100.
func OptimizeWeights(riskTolerance int) map[string]float64 {
	rt := float64(riskTolerance)
	stable := max(20, 50-rt*3)
	remaining := 100 - stable
	tilt := rt / 10

	weights := map[string]float64{
		"USDC": stable,
		"ETH":  remaining * 0.5 * (1 + tilt*0.3),
		"BTC":  remaining * 0.35 * (1 + tilt*0.2),
		"ALT":  remaining * 0.15 * (1 + tilt*0.5),
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	for k, w := range weights {
		weights[k] = w / sum * 100
	}
	return weights
}

// OptimizePortfolio stores optimized target weights and records an insight about it.
func (e *Engine) OptimizePortfolio(s model.Snapshot) model.Snapshot {
	now := e.nowMillis()
	next := s.Clone()
	next.TargetAllocation = OptimizeWeights(s.AgentConfig.RiskTolerance)

	insight := model.AIInsight{
		ID:               fmt.Sprintf("insight_%d_optimization", now),
		Timestamp:        now,
		Type:             model.InsightOptimization,
		Title:            "Portfolio Optimization Complete",
		Description:      "AI has calculated optimal portfolio weights based on current market conditions and risk profile.",
		Confidence:       88,
		Impact:           model.LevelHigh,
		Actionable:       true,
		SuggestedActions: []string{"Review new target allocations", "Execute rebalancing", "Monitor performance"},
	}
	next.AIInsights = prependCapped(s.AIInsights, insight, InsightLogLimit)
	return next
}
