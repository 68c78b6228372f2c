package treasury

import (
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// Rebalance revalues every asset to its target weight of the current total.
// A symbol missing from target is treated as a 0% target. CurrentPct is computed from the
// unrounded new values over their new total, so the weights sum to 100 whenever any target
// is positive.
func Rebalance(assets []model.Asset, target map[string]float64) []model.Asset {
	total := model.Total(assets)

	values := make([]float64, len(assets))
	var newTotal float64
	for i, a := range assets {
		values[i] = target[a.Symbol] / 100 * total
		newTotal += values[i]
	}

	out := make([]model.Asset, len(assets))
	for i, a := range assets {
		a.ValueUSD = roundDollars(values[i])
		a.CurrentPct = percentOf(values[i], newTotal)
		out[i] = a
	}
	return out
}

// SimulateRebalance applies the target allocation to the assets and records the time.
func (e *Engine) SimulateRebalance(s model.Snapshot) model.Snapshot {
	next := s.Clone()
	next.Assets = Rebalance(s.Assets, s.TargetAllocation)
	next.LastRebalance = e.nowMillis()
	return next
}
