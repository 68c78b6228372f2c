package treasury_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestEngine() *treasury.Engine {
	n := 0
	return treasury.NewEngine(treasury.StaticSignals{Value: 0.5}).
		WithClock(func() time.Time { return fixedNow }).
		WithIDs(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		})
}

func TestRebalance(t *testing.T) {
	t.Run("reaches the target weights", func(t *testing.T) {
		// Setup
		assets := treasury.DefaultAssets()
		target := treasury.DefaultTargetAllocation()

		// Execute
		got := treasury.Rebalance(assets, target)

		// Assert
		want := map[string][2]float64{
			"USDC": {150000, 30},
			"ETH":  {200000, 40},
			"BTC":  {125000, 25},
			"ALT":  {25000, 5},
		}
		require.Len(t, got, 4)
		for _, a := range got {
			assert.InDelta(t, want[a.Symbol][0], a.ValueUSD, 0.001, a.Symbol)
			assert.InDelta(t, want[a.Symbol][1], a.CurrentPct, 0.001, a.Symbol)
		}
	})

	t.Run("missing target counts as zero", func(t *testing.T) {
		assets := treasury.DefaultAssets()
		target := map[string]float64{"USDC": 50, "ETH": 50}

		got := treasury.Rebalance(assets, target)

		for _, a := range got {
			switch a.Symbol {
			case "USDC", "ETH":
				assert.InDelta(t, 250000, a.ValueUSD, 0.001)
				assert.InDelta(t, 50, a.CurrentPct, 0.001)
			default:
				assert.Zero(t, a.ValueUSD)
				assert.Zero(t, a.CurrentPct)
			}
		}
	})

	t.Run("empty target yields zero weights", func(t *testing.T) {
		got := treasury.Rebalance(treasury.DefaultAssets(), map[string]float64{})

		for _, a := range got {
			assert.Zero(t, a.ValueUSD)
			assert.False(t, math.IsNaN(a.CurrentPct))
			assert.Zero(t, a.CurrentPct)
		}
	})

	t.Run("records the rebalance time", func(t *testing.T) {
		e := newTestEngine()
		snap := treasury.DefaultSnapshot(fixedNow)

		next := e.SimulateRebalance(snap)

		assert.Equal(t, fixedNow.UnixMilli(), next.LastRebalance)
		assert.Zero(t, snap.LastRebalance)
		assert.Equal(t, 40.0, snap.Assets[0].CurrentPct, "input snapshot must stay untouched")
	})
}

func TestRebalance_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	assetsFrom := func(values []float64) []model.Asset {
		symbols := []string{"USDC", "ETH", "BTC", "ALT"}
		assets := make([]model.Asset, len(values))
		for i, v := range values {
			assets[i] = model.Asset{Symbol: symbols[i], ValueUSD: v}
		}
		return assets
	}
	targetFrom := func(weights []float64) map[string]float64 {
		symbols := []string{"USDC", "ETH", "BTC", "ALT"}
		target := map[string]float64{}
		for i, w := range weights {
			target[symbols[i]] = w
		}
		return target
	}

	properties.Property("weights sum to 100 when any target is positive", prop.ForAll(
		func(values, weights []float64) bool {
			total := model.Total(assetsFrom(values))
			if total == 0 {
				return true
			}
			got := treasury.Rebalance(assetsFrom(values), targetFrom(weights))
			var sum float64
			for _, a := range got {
				sum += a.CurrentPct
			}
			return math.Abs(sum-100) < 1e-6
		},
		gen.SliceOfN(4, gen.Float64Range(1, 1e7)),
		gen.SliceOfN(4, gen.Float64Range(0.1, 100)),
	))

	properties.Property("weights are proportional to the targets", prop.ForAll(
		func(values, weights []float64) bool {
			got := treasury.Rebalance(assetsFrom(values), targetFrom(weights))
			var wsum float64
			for _, w := range weights {
				wsum += w
			}
			for i, a := range got {
				if math.Abs(a.CurrentPct-weights[i]/wsum*100) > 1e-6 {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(4, gen.Float64Range(1, 1e7)),
		gen.SliceOfN(4, gen.Float64Range(0.1, 100)),
	))

	properties.Property("no weight is ever non-finite", prop.ForAll(
		func(values, weights []float64) bool {
			for _, a := range treasury.Rebalance(assetsFrom(values), targetFrom(weights)) {
				if math.IsNaN(a.CurrentPct) || math.IsInf(a.CurrentPct, 0) {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(4, gen.Float64Range(0, 1e7)),
		gen.SliceOfN(4, gen.Float64Range(0, 100)),
	))

	properties.TestingRun(t)
}
