package treasury

import (
	"fmt"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// InsightGenerateLimit caps the list produced by a single insight run.
const InsightGenerateLimit = 10

const mainnetChainID = 1

// BuildInsights derives advisory insights from the wallet holdings. It returns an empty list
// unless the wallet is connected, real data is in use and the wallet holds assets.
func BuildInsights(s model.Snapshot, nowMs int64) []model.AIInsight {
	insights := []model.AIInsight{}
	if !walletGate(s) || len(s.WalletAssets) == 0 {
		return insights
	}

	total := model.Total(s.WalletAssets)
	stableValue := sumWhere(s.WalletAssets, isWalletStable)
	stablePct := percentOf(stableValue, total)
	id := func(tag string) string { return fmt.Sprintf("insight_%d_%s", nowMs, tag) }

	if stablePct < 15 {
		insights = append(insights, model.AIInsight{
			ID:               id("low_stable"),
			Timestamp:        nowMs,
			Type:             model.InsightRisk,
			Title:            "Low Stablecoin Allocation Detected",
			Description:      fmt.Sprintf("Your portfolio has only %.1f%% in stablecoins. Consider increasing to 20-30%% for better risk management.", stablePct),
			Confidence:       88,
			Impact:           model.LevelHigh,
			Actionable:       true,
			SuggestedActions: []string{"Add USDC to portfolio", "Rebalance to increase stable allocation", "Set up DeFi yield farming with stables"},
		})
	}

	if top, ok := largestHolding(s.WalletAssets); ok && top.CurrentPct > 70 {
		insights = append(insights, model.AIInsight{
			ID:               id("concentration"),
			Timestamp:        nowMs,
			Type:             model.InsightRisk,
			Title:            "High Concentration Risk",
			Description:      fmt.Sprintf("%s represents %.1f%% of your portfolio. This creates significant concentration risk.", top.Symbol, top.CurrentPct),
			Confidence:       92,
			Impact:           model.LevelHigh,
			Actionable:       true,
			SuggestedActions: []string{"Diversify into other assets", "Gradually reduce position size", "Consider dollar-cost averaging out"},
		})
	}

	if stablePct > 10 {
		insights = append(insights, model.AIInsight{
			ID:               id("yield"),
			Timestamp:        nowMs,
			Type:             model.InsightOpportunity,
			Title:            "Yield Optimization Opportunity",
			Description:      fmt.Sprintf("Your %s in stablecoins could earn 4-6%% APY through DeFi lending protocols.", grouped(stableValue)),
			Confidence:       85,
			Impact:           model.LevelMedium,
			Actionable:       true,
			SuggestedActions: []string{"Explore Aave lending", "Consider Compound protocol", "Research stablecoin yield farms"},
		})
	}

	ethValue := sumWhere(s.WalletAssets, isETH)
	if ethValue > 100 {
		insights = append(insights, model.AIInsight{
			ID:               id("eth_staking"),
			Timestamp:        nowMs,
			Type:             model.InsightOpportunity,
			Title:            "ETH Staking Opportunity",
			Description:      fmt.Sprintf("Your %s in ETH could earn ~4.2%% APY through staking while supporting network security.", grouped(ethValue)),
			Confidence:       90,
			Impact:           model.LevelMedium,
			Actionable:       true,
			SuggestedActions: []string{"Consider liquid staking with Lido", "Explore Rocket Pool", "Research solo staking requirements"},
		})
	}

	if total < 1000 {
		insights = append(insights, model.AIInsight{
			ID:               id("small_portfolio"),
			Timestamp:        nowMs,
			Type:             model.InsightOptimization,
			Title:            "Small Portfolio Strategy",
			Description:      fmt.Sprintf("With a $%s portfolio, focus on 2-3 established assets rather than over-diversification.", grouped(total)),
			Confidence:       85,
			Impact:           model.LevelMedium,
			Actionable:       true,
			SuggestedActions: []string{"Focus on ETH and BTC", "Maintain 20% in stables", "Avoid too many small positions"},
		})
	}

	if s.WalletChainID == mainnetChainID && total > 50 {
		insights = append(insights, model.AIInsight{
			ID:               id("gas_optimization"),
			Timestamp:        nowMs,
			Type:             model.InsightOptimization,
			Title:            "Gas Fee Optimization",
			Description:      "You're on Ethereum mainnet. Consider Layer 2 solutions for lower transaction costs.",
			Confidence:       80,
			Impact:           model.LevelMedium,
			Actionable:       true,
			SuggestedActions: []string{"Bridge to Arbitrum", "Explore Polygon", "Use Optimism for DeFi"},
		})
	}

	if total > 10000 {
		insights = append(insights, model.AIInsight{
			ID:               id("advanced_strategies"),
			Timestamp:        nowMs,
			Type:             model.InsightOpportunity,
			Title:            "Advanced Strategy Opportunities",
			Description:      fmt.Sprintf("With a $%s portfolio, you can explore advanced DeFi strategies and yield optimization.", grouped(total)),
			Confidence:       75,
			Impact:           model.LevelMedium,
			Actionable:       true,
			SuggestedActions: []string{"Explore liquidity providing", "Consider yield farming", "Research options strategies"},
		})
	}

	if len(insights) > InsightGenerateLimit {
		insights = insights[:InsightGenerateLimit]
	}
	return insights
}

// GenerateAIInsights replaces the insight list.
func (e *Engine) GenerateAIInsights(s model.Snapshot) model.Snapshot {
	next := s.Clone()
	next.AIInsights = BuildInsights(s, e.nowMillis())
	return next
}

func isETH(symbol string) bool { return symbol == "ETH" || symbol == "WETH" }
