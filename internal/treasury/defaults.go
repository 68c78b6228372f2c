package treasury

import (
	"math"
	"time"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

const navDateLayout = "2006-01-02"

// DefaultAssets returns the demo portfolio.
func DefaultAssets() []model.Asset {
	return []model.Asset{
		{Symbol: "USDC", ValueUSD: 200000, CurrentPct: 40},
		{Symbol: "ETH", ValueUSD: 180000, CurrentPct: 36},
		{Symbol: "BTC", ValueUSD: 90000, CurrentPct: 18},
		{Symbol: "ALT", ValueUSD: 30000, CurrentPct: 6},
	}
}

// DefaultTargetAllocation returns the demo target weights.
func DefaultTargetAllocation() map[string]float64 {
	return map[string]float64{"USDC": 30, "ETH": 40, "BTC": 25, "ALT": 5}
}

// DefaultKPIs returns the demo headline figures.
func DefaultKPIs() model.KPIs {
	return model.KPIs{TotalAUM: 500000, Last24hPnL: 3200, CashBalance: 120000, RiskLevel: model.RiskLevelMedium}
}

// DefaultSnapshot builds the initial state. History and transactions are dated relative to now.
func DefaultSnapshot(now time.Time) model.Snapshot {
	nowMs := now.UnixMilli()

	nav := make([]model.NavPoint, 30)
	for i := range nav {
		nav[i] = model.NavPoint{
			Date: now.AddDate(0, 0, -(29 - i)).UTC().Format(navDateLayout),
			Nav:  450000 + math.Sin(float64(i)/5)*15000 + float64(i)*2000,
		}
	}

	return model.Snapshot{
		Assets:           DefaultAssets(),
		TargetAllocation: DefaultTargetAllocation(),
		Transactions: []model.Transaction{
			{ID: "t1", Date: nowMs - millisPerDay, Type: model.TransactionBuy, Asset: "ETH", Amount: 10, ValueUSD: 30000},
			{ID: "t2", Date: nowMs - 3600000, Type: model.TransactionYield, Asset: "USDC", Amount: 0, ValueUSD: 500},
		},
		NavHistory: nav,
		KPIs:       DefaultKPIs(),
		AgentConfig: model.AgentConfig{
			RiskTolerance:         6,
			EnableStableReserve:   true,
			EnableMomentum:        false,
			EnableMLOptimization:  true,
			EnableMarketSentiment: true,
			EnableGovernanceMode:  false,
			RebalanceThreshold:    5,
			MaxDrawdownLimit:      15,
		},
		AgentSuggestions: []string{
			"Rebalance 5% from USDC to ETH to reach target 40% ETH",
			"Increase BTC exposure by 3% to align with medium risk",
		},
		PolicyConfig: model.PolicyConfig{MinStableReservePct: 20, MaxSingleAssetPct: 40},
		PolicyLog:    []model.PolicyDecision{},
		Forecasts:    []model.ForecastPoint{},
		Risk:         model.RiskMetrics{ByAssetPct: map[string]float64{}},
		Anomalies:    []model.Anomaly{},
		Scenario:     model.ScenarioConfig{AssetDropPct: 10, ExpenseRisePct: 5},
		MarketIntelligence: model.MarketIntelligence{
			Sentiment:         25,
			FearGreedIndex:    45,
			CorrelationMatrix: map[string]map[string]float64{},
			MomentumSignals:   map[string]float64{},
			LiquidityScores:   map[string]float64{},
		},
		GovernanceProposals:  []model.GovernanceProposal{},
		AIInsights:           []model.AIInsight{},
		News:                 []model.NewsItem{},
		TokenRecommendations: []model.TokenRecommendation{},
		MarketTrends:         []model.MarketTrend{},
		WalletAssets:         []model.Asset{},
		IsAuthenticated:      true,
	}
}
