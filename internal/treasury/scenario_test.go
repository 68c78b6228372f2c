package treasury_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
)

func TestEvaluateScenario(t *testing.T) {
	assets := treasury.DefaultAssets()

	tests := []struct {
		name      string
		cfg       model.ScenarioConfig
		projected float64
		firstRec  string
	}{
		{
			name:      "default stress",
			cfg:       model.ScenarioConfig{AssetDropPct: 10, ExpenseRisePct: 5},
			projected: 469500,
			firstRec:  "Portfolio shows resilience to stress scenario",
		},
		{
			name:      "moderate drop",
			cfg:       model.ScenarioConfig{AssetDropPct: 25},
			projected: 425000,
			firstRec:  "Moderate risk detected: increase stable reserves",
		},
		{
			name:      "full drop keeps only stables",
			cfg:       model.ScenarioConfig{AssetDropPct: 100},
			projected: 200000,
			firstRec:  "CRITICAL: Consider emergency hedging strategies",
		},
		{
			name:      "expenses only",
			cfg:       model.ScenarioConfig{ExpenseRisePct: 100},
			projected: 490000,
			firstRec:  "Portfolio shows resilience to stress scenario",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := treasury.EvaluateScenario(tt.cfg, assets, nil)

			assert.InDelta(t, tt.projected, got.ProjectedAUM, 1e-6)
			require.NotEmpty(t, got.Recommendations)
			assert.Equal(t, tt.firstRec, got.Recommendations[0])
			require.Len(t, got.Notes, 2)
		})
	}
}

func TestEvaluateScenario_RiskAssetsOnly(t *testing.T) {
	got := treasury.EvaluateScenario(
		model.ScenarioConfig{AssetDropPct: 100, ExpenseRisePct: 20},
		[]model.Asset{{Symbol: "ETH", ValueUSD: 100000}},
		nil,
	)

	assert.Zero(t, got.ProjectedAUM)
	assert.Equal(t, "CRITICAL: Consider emergency hedging strategies", got.Recommendations[0])
}

func TestMaxDrawdown(t *testing.T) {
	assert.Zero(t, treasury.MaxDrawdown(nil))
	assert.Zero(t, treasury.MaxDrawdown(navSeries(100, 110, 120)))
	assert.InDelta(t, 0.5, treasury.MaxDrawdown(navSeries(100, 200, 150, 100, 180)), 1e-9)
}

func TestRunScenario(t *testing.T) {
	e := newTestEngine()
	snap := treasury.SetScenario(treasury.DefaultSnapshot(fixedNow), model.ScenarioConfig{AssetDropPct: 50, ExpenseRisePct: 10})

	next := e.RunScenario(snap)

	require.NotNil(t, next.ScenarioResult)
	assert.Nil(t, snap.ScenarioResult)
	assert.Equal(t, "Risk assets drop 50%", next.ScenarioResult.Notes[0])
	assert.Equal(t, "Expenses rise 10%", next.ScenarioResult.Notes[1])
	assert.Greater(t, next.ScenarioResult.RiskMetrics.ValueAtRisk, 0.0)
}

func TestEvaluateScenario_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	assets := treasury.DefaultAssets()

	properties.Property("projection is never negative", prop.ForAll(
		func(drop, expense float64) bool {
			got := treasury.EvaluateScenario(model.ScenarioConfig{AssetDropPct: drop, ExpenseRisePct: expense}, assets, nil)
			return got.ProjectedAUM >= 0 && !math.IsNaN(got.ProjectedAUM)
		},
		gen.Float64Range(0, 200),
		gen.Float64Range(0, 100000),
	))

	properties.Property("a larger drop never projects more", prop.ForAll(
		func(a, b float64) bool {
			lo, hi := min(a, b), max(a, b)
			pLo := treasury.EvaluateScenario(model.ScenarioConfig{AssetDropPct: lo}, assets, nil).ProjectedAUM
			pHi := treasury.EvaluateScenario(model.ScenarioConfig{AssetDropPct: hi}, assets, nil).ProjectedAUM
			return pHi <= pLo+1e-9
		},
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 100),
	))

	properties.Property("a full drop on risk assets only leaves nothing", prop.ForAll(
		func(eth, btc, expense float64) bool {
			riskOnly := []model.Asset{{Symbol: "ETH", ValueUSD: eth}, {Symbol: "BTC", ValueUSD: btc}}
			got := treasury.EvaluateScenario(model.ScenarioConfig{AssetDropPct: 100, ExpenseRisePct: expense}, riskOnly, nil)
			return got.ProjectedAUM == 0
		},
		gen.Float64Range(0, 1e7),
		gen.Float64Range(0, 1e7),
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}
