package treasury

import (
	"fmt"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// TrendLimit caps the market trend list.
const TrendLimit = 5

const (
	trendSideways = "SIDEWAYS"

	opportunityBuy  = "BUY"
	opportunitySell = "SELL"
	opportunityHold = "HOLD"
)

// BuildTrends returns trend observations for the wallet holdings. Without a connected wallet
// on real data the list is empty.
func BuildTrends(s model.Snapshot, nowMs int64) []model.MarketTrend {
	trends := []model.MarketTrend{}
	if !walletGate(s) {
		return trends
	}

	tokens := symbols(s.WalletAssets)
	id := func(tag string) string { return fmt.Sprintf("trend_%d_%s", nowMs, tag) }
	hold := func(confidence float64) *model.TradingOpportunity {
		return &model.TradingOpportunity{Action: opportunityHold, Confidence: confidence}
	}

	if hasAny(tokens, "ETH", "WETH") {
		trends = append(trends, model.MarketTrend{
			ID:                 id("eth"),
			Title:              "Ethereum Staking Adoption Accelerating",
			Description:        "Your ETH holdings benefit from increasing staking adoption and network upgrades improving scalability and efficiency",
			Trend:              model.SentimentBullish,
			Strength:           82,
			Timeframe:          "1M",
			AffectedTokens:     []string{"ETH"},
			TradingOpportunity: hold(85),
		})
	}

	if hasAny(tokens, "BTC", "WBTC") {
		trends = append(trends, model.MarketTrend{
			ID:                 id("btc"),
			Title:              "Bitcoin ETF Institutional Inflows",
			Description:        "Your Bitcoin position aligns with institutional accumulation trend as ETFs continue seeing strong inflows",
			Trend:              model.SentimentBullish,
			Strength:           78,
			Timeframe:          "1M",
			AffectedTokens:     []string{"BTC", "WBTC"},
			TradingOpportunity: hold(88),
		})
	}

	if stables := filterTokens(tokens, isWalletStable); len(stables) > 0 {
		trends = append(trends, model.MarketTrend{
			ID:                 id("stables"),
			Title:              "Stablecoin Yield Opportunities Rising",
			Description:        "Your stablecoin holdings can earn attractive yields as DeFi lending rates increase due to higher borrowing demand",
			Trend:              model.SentimentBullish,
			Strength:           65,
			Timeframe:          "1W",
			AffectedTokens:     stables,
			TradingOpportunity: hold(92),
		})
	}

	if s.WalletChainID == mainnetChainID {
		trends = append(trends, model.MarketTrend{
			ID:                 id("l2"),
			Title:              "Layer 2 Migration Opportunity",
			Description:        "Being on Ethereum mainnet, you could benefit from L2 solutions offering lower fees and faster transactions",
			Trend:              model.SentimentBullish,
			Strength:           75,
			Timeframe:          "1W",
			AffectedTokens:     []string{"ARB", "OP", "MATIC"},
			TradingOpportunity: &model.TradingOpportunity{Action: opportunityBuy, Confidence: 70},
		})
	}

	if top, ok := largestHolding(s.WalletAssets); ok && top.CurrentPct > 60 {
		trends = append(trends, model.MarketTrend{
			ID:                 id("concentration"),
			Title:              "Portfolio Concentration Risk",
			Description:        fmt.Sprintf("Your %s position represents %.1f%% of your portfolio. Consider diversification to reduce risk.", top.Symbol, top.CurrentPct),
			Trend:              model.SentimentBearish,
			Strength:           70,
			Timeframe:          "1D",
			AffectedTokens:     []string{top.Symbol},
			TradingOpportunity: &model.TradingOpportunity{Action: opportunitySell, Confidence: 75},
		})
	}

	if model.Total(s.WalletAssets) < 1000 {
		trends = append(trends, model.MarketTrend{
			ID:                 id("small_portfolio"),
			Title:              "Focus Strategy for Small Portfolios",
			Description:        "With a smaller portfolio, focusing on 2-3 established assets typically provides better risk-adjusted returns than over-diversification",
			Trend:              trendSideways,
			Strength:           60,
			Timeframe:          "1M",
			AffectedTokens:     firstN(tokens, 3),
			TradingOpportunity: hold(80),
		})
	}

	if len(trends) > TrendLimit {
		trends = trends[:TrendLimit]
	}
	return trends
}

// GenerateMarketTrends replaces the market trend list.
func (e *Engine) GenerateMarketTrends(s model.Snapshot) model.Snapshot {
	next := s.Clone()
	next.MarketTrends = BuildTrends(s, e.nowMillis())
	return next
}

// RefreshIntelligence runs the insight, news, recommendation and trend generators together.
func (e *Engine) RefreshIntelligence(s model.Snapshot) model.Snapshot {
	next := e.GenerateAIInsights(s)
	next = e.GenerateNews(next)
	next = e.GenerateTokenRecommendations(next)
	return e.GenerateMarketTrends(next)
}
