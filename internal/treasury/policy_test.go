package treasury_test

import (
	"fmt"
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

func hasAction(actions []model.Action, typ model.ActionType, asset string) bool {
	for _, a := range actions {
		if a.Type == typ && a.Asset == asset {
			return true
		}
	}
	return false
}

func TestEvaluatePolicy(t *testing.T) {
	t.Run("default portfolio has nothing to fix", func(t *testing.T) {
		// Setup
		e := newTestEngine()
		snap := treasury.DefaultSnapshot(fixedNow)

		// Execute
		d := e.EvaluatePolicy(snap)

		// Assert
		assert.False(t, hasAction(d.Actions, model.ActionIncrease, "USDC"))
		assert.False(t, hasAction(d.Actions, model.ActionReduce, "ETH"))
		assert.Empty(t, d.Actions)
		assert.Equal(t, "AI Analysis: Portfolio optimally positioned", d.Summary)
		assert.Equal(t, 70.0, d.Confidence)
		assert.Equal(t, 50.0, d.RiskScore)
		assert.Equal(t, fixedNow.UnixMilli(), d.Date)
		assert.Equal(t, model.MarketConditions{
			Sentiment:     model.SentimentBullish,
			Volatility:    model.LevelLow,
			LiquidityRisk: model.LevelMedium,
		}, d.MarketConditions)
	})

	t.Run("stable shortfall and concentration", func(t *testing.T) {
		e := newTestEngine()
		snap := treasury.DefaultSnapshot(fixedNow)
		snap.Assets = []model.Asset{
			{Symbol: "USDC", ValueUSD: 50000, CurrentPct: 10},
			{Symbol: "ETH", ValueUSD: 300000, CurrentPct: 60},
			{Symbol: "BTC", ValueUSD: 150000, CurrentPct: 30},
		}

		d := e.EvaluatePolicy(snap)

		require.Len(t, d.Actions, 2)
		assert.Equal(t, model.ActionIncrease, d.Actions[0].Type)
		assert.Equal(t, "USDC", d.Actions[0].Asset)
		assert.InDelta(t, 10, d.Actions[0].DeltaPct, 1e-9)
		assert.Equal(t, model.PriorityHigh, d.Actions[0].Priority)
		assert.Equal(t, "Raise stables to ≥20% (currently 10.00%)", d.Actions[0].Reason)

		assert.Equal(t, model.ActionReduce, d.Actions[1].Type)
		assert.Equal(t, "ETH", d.Actions[1].Asset)
		assert.InDelta(t, 20, d.Actions[1].DeltaPct, 1e-9)
		assert.Equal(t, model.PriorityCritical, d.Actions[1].Priority)
		assert.Equal(t, 90.0, d.RiskScore)
		assert.Equal(t, "AI Policy Engine: 2 actions recommended", d.Summary)
	})

	t.Run("bearish sentiment and high volatility", func(t *testing.T) {
		e := newTestEngine()
		snap := treasury.DefaultSnapshot(fixedNow)
		snap.MarketIntelligence.Sentiment = -40
		snap.MarketIntelligence.FearGreedIndex = 10
		snap.Risk.VolatilityPct = 25

		d := e.EvaluatePolicy(snap)

		assert.True(t, hasAction(d.Actions, model.ActionIncrease, "USDC"))
		assert.True(t, hasAction(d.Actions, model.ActionHedge, ""))
		assert.Equal(t, 85.0, d.Confidence)
		assert.Equal(t, 90.0, d.RiskScore)
		assert.Equal(t, model.SentimentBearish, d.MarketConditions.Sentiment)
		assert.Equal(t, model.LevelHigh, d.MarketConditions.Volatility)
		assert.Equal(t, model.LevelHigh, d.MarketConditions.LiquidityRisk)
	})

	t.Run("momentum signals", func(t *testing.T) {
		e := treasury.NewEngine(treasury.StaticSignals{ETHMomentum: 0.5, BTCMomentum: -0.5}).
			WithClock(func() time.Time { return fixedNow })
		snap := treasury.DefaultSnapshot(fixedNow)

		d := e.EvaluatePolicy(snap)

		assert.True(t, hasAction(d.Actions, model.ActionIncrease, "ETH"))
		assert.True(t, hasAction(d.Actions, model.ActionReduce, "BTC"))
	})

	t.Run("momentum ignored when ML is off", func(t *testing.T) {
		e := treasury.NewEngine(treasury.StaticSignals{ETHMomentum: 0.5, BTCMomentum: -0.5})
		snap := treasury.DefaultSnapshot(fixedNow)
		snap.AgentConfig.EnableMLOptimization = false

		assert.Empty(t, e.EvaluatePolicy(snap).Actions)
	})

	t.Run("risk tolerance tiers", func(t *testing.T) {
		e := newTestEngine()
		snap := treasury.DefaultSnapshot(fixedNow)

		snap.AgentConfig.RiskTolerance = 9
		high := e.EvaluatePolicy(snap)
		assert.True(t, hasAction(high.Actions, model.ActionIncrease, "ETH"))
		assert.Equal(t, 5.0, high.ExpectedReturn)

		snap.AgentConfig.RiskTolerance = 2
		low := e.EvaluatePolicy(snap)
		assert.True(t, hasAction(low.Actions, model.ActionReduce, "ALT"))
		assert.Equal(t, 60.0, low.RiskScore)
	})

	t.Run("empty portfolio", func(t *testing.T) {
		e := newTestEngine()
		snap := treasury.DefaultSnapshot(fixedNow)
		snap.Assets = []model.Asset{}

		d := e.EvaluatePolicy(snap)

		// 0% stables is below the minimum; nothing divides by zero.
		require.Len(t, d.Actions, 1)
		assert.InDelta(t, 20, d.Actions[0].DeltaPct, 1e-9)
	})

	t.Run("never emits reserved action types", func(t *testing.T) {
		e := treasury.NewEngine(treasury.StaticSignals{ETHMomentum: 1, BTCMomentum: -1})
		snap := treasury.DefaultSnapshot(fixedNow)
		snap.MarketIntelligence.Sentiment = 45
		snap.Risk.VolatilityPct = 30
		snap.AgentConfig.RiskTolerance = 10

		for _, a := range e.EvaluatePolicy(snap).Actions {
			assert.NotContains(t, []model.ActionType{model.ActionRebalance, model.ActionHold, model.ActionLiquidate}, a.Type)
		}
	})
}

func TestRunPolicy(t *testing.T) {
	e := newTestEngine()
	snap := treasury.DefaultSnapshot(fixedNow)

	next, d := e.RunPolicy(snap)

	require.Len(t, next.PolicyLog, 1)
	assert.Equal(t, d.ID, next.PolicyLog[0].ID)
	assert.Empty(t, snap.PolicyLog)
}

func TestRunPolicy_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("log is capped and newest first", prop.ForAll(
		func(runs int) bool {
			n := 0
			e := treasury.NewEngine(treasury.StaticSignals{}).WithIDs(func() string {
				n++
				return fmt.Sprintf("decision-%d", n)
			})
			snap := treasury.DefaultSnapshot(fixedNow)
			var last model.PolicyDecision
			for range runs {
				snap, last = e.RunPolicy(snap)
			}
			if len(snap.PolicyLog) != min(runs, treasury.PolicyLogLimit) {
				return false
			}
			return runs == 0 || snap.PolicyLog[0].ID == last.ID
		},
		gen.IntRange(0, 60),
	))

	properties.Property("scores stay within 0-100", prop.ForAll(
		func(sentiment, volatility, fearGreed float64, rt int) bool {
			e := treasury.NewEngine(treasury.StaticSignals{ETHMomentum: 1, BTCMomentum: -1})
			snap := treasury.DefaultSnapshot(fixedNow)
			snap.MarketIntelligence.Sentiment = sentiment
			snap.MarketIntelligence.FearGreedIndex = fearGreed
			snap.Risk.VolatilityPct = volatility
			snap.AgentConfig.RiskTolerance = rt
			d := e.EvaluatePolicy(snap)
			return d.Confidence >= 0 && d.Confidence <= 100 && d.RiskScore >= 0 && d.RiskScore <= 100
		},
		gen.Float64Range(-100, 100),
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 100),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}
