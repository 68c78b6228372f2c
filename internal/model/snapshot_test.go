package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

func TestSnapshot_Clone(t *testing.T) {
	balance, native := 12.5, true
	orig := model.Snapshot{
		Assets:         []model.Asset{{Symbol: "ETH", ValueUSD: 180000, Balance: &balance, IsNative: &native}},
		PolicyLog:      []model.PolicyDecision{{ID: "d1", Actions: []model.Action{{Type: model.ActionIncrease}}}},
		ScenarioResult: &model.ScenarioResult{ProjectedAUM: 469500, Notes: []string{"Risk assets drop 10%"}},
		MarketIntelligence: model.MarketIntelligence{
			CorrelationMatrix: map[string]map[string]float64{"ETH": {"BTC": 0.8}},
			MomentumSignals:   map[string]float64{"ETH": 0.3},
			LiquidityScores:   map[string]float64{"ETH": 90},
		},
		MarketTrends: []model.MarketTrend{{ID: "t1", AffectedTokens: []string{"ETH"},
			TradingOpportunity: &model.TradingOpportunity{Action: "BUY", Confidence: 70}}},
		News:         []model.NewsItem{{ID: "n1", RelevantTokens: []string{"ETH"}}},
		WalletAssets: []model.Asset{{Symbol: "USDC", Balance: &balance}},
	}

	c := orig.Clone()
	*c.Assets[0].Balance = 0
	*c.Assets[0].IsNative = false
	c.PolicyLog[0].Actions[0].Reason = "changed"
	c.ScenarioResult.Notes[0] = "changed"
	c.MarketIntelligence.CorrelationMatrix["ETH"]["BTC"] = -1
	c.MarketIntelligence.MomentumSignals["ETH"] = -1
	c.MarketIntelligence.LiquidityScores["BTC"] = 10
	c.MarketTrends[0].AffectedTokens[0] = "BTC"
	c.MarketTrends[0].TradingOpportunity.Action = "SELL"
	c.News[0].RelevantTokens[0] = "BTC"
	*c.WalletAssets[0].Balance = 1

	require.NotNil(t, orig.Assets[0].Balance)
	assert.Equal(t, 12.5, *orig.Assets[0].Balance)
	assert.True(t, *orig.Assets[0].IsNative)
	assert.Empty(t, orig.PolicyLog[0].Actions[0].Reason)
	assert.Equal(t, "Risk assets drop 10%", orig.ScenarioResult.Notes[0])
	assert.Equal(t, 0.8, orig.MarketIntelligence.CorrelationMatrix["ETH"]["BTC"])
	assert.Equal(t, 0.3, orig.MarketIntelligence.MomentumSignals["ETH"])
	assert.NotContains(t, orig.MarketIntelligence.LiquidityScores, "BTC")
	assert.Equal(t, "ETH", orig.MarketTrends[0].AffectedTokens[0])
	assert.Equal(t, "BUY", orig.MarketTrends[0].TradingOpportunity.Action)
	assert.Equal(t, "ETH", orig.News[0].RelevantTokens[0])
	assert.Equal(t, 12.5, balance)
}

func TestSnapshot_CloneKeepsNil(t *testing.T) {
	c := model.Snapshot{}.Clone()

	assert.Nil(t, c.Assets)
	assert.Nil(t, c.ScenarioResult)
	assert.Nil(t, c.MarketIntelligence.CorrelationMatrix)
}
