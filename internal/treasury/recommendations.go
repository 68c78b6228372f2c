package treasury

import (
	"fmt"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// RecommendationLimit caps the token recommendation list.
const RecommendationLimit = 4

// BuildRecommendations suggests tokens based on gaps and concentrations in the wallet. It is
// gated like BuildInsights.
func BuildRecommendations(s model.Snapshot, nowMs int64) []model.TokenRecommendation {
	recs := []model.TokenRecommendation{}
	if !walletGate(s) || len(s.WalletAssets) == 0 {
		return recs
	}

	total := model.Total(s.WalletAssets)
	tokens := symbols(s.WalletAssets)
	hasETH := hasAny(tokens, "ETH", "WETH")
	hasBTC := hasAny(tokens, "BTC", "WBTC")
	stablePct := percentOf(sumWhere(s.WalletAssets, isWalletStable), total)
	ethPct := percentOf(sumWhere(s.WalletAssets, isETH), total)
	id := func(tag string) string { return fmt.Sprintf("rec_%d_%s", nowMs, tag) }

	if stablePct < 20 {
		recs = append(recs, model.TokenRecommendation{
			ID:             id("usdc"),
			Symbol:         "USDC",
			Name:           "USD Coin",
			Category:       "STABLECOIN",
			Reason:         fmt.Sprintf("Your portfolio has only %.1f%% in stablecoins. Consider increasing to 20-30%% for better risk management.", stablePct),
			AIScore:        95,
			RiskLevel:      model.LevelLow,
			ExpectedReturn: 4.5,
			TimeHorizon:    "1Y",
			MarketCap:      32_000_000_000,
			PriceChange24h: 0.01,
			Volume24h:      2_800_000_000,
			Pros:           []string{"Price stability", "High liquidity", "Yield opportunities", "Risk reduction"},
			Cons:           []string{"No price appreciation", "Inflation risk"},
			Allocation:     max(5, 25-stablePct),
		})
	}

	if !hasETH && total > 100 {
		recs = append(recs, model.TokenRecommendation{
			ID:             id("eth"),
			Symbol:         "ETH",
			Name:           "Ethereum",
			Category:       "L1",
			Reason:         "Missing exposure to the leading smart contract platform. ETH provides access to the largest DeFi ecosystem.",
			AIScore:        88,
			RiskLevel:      model.LevelMedium,
			ExpectedReturn: 15.2,
			TimeHorizon:    "6M",
			MarketCap:      380_000_000_000,
			PriceChange24h: 2.4,
			Volume24h:      12_000_000_000,
			Pros:           []string{"DeFi ecosystem leader", "Staking rewards (4-5% APY)", "Network effects", "Developer activity"},
			Cons:           []string{"High gas fees", "Scalability challenges", "Volatility"},
			Allocation:     30,
		})
	}

	if !hasBTC && total > 500 {
		recs = append(recs, model.TokenRecommendation{
			ID:             id("btc"),
			Symbol:         "BTC",
			Name:           "Bitcoin",
			Category:       "L1",
			Reason:         "Bitcoin provides portfolio diversification and acts as digital gold. Consider adding for store of value properties.",
			AIScore:        85,
			RiskLevel:      model.LevelMedium,
			ExpectedReturn: 12.8,
			TimeHorizon:    "1Y",
			MarketCap:      1_200_000_000_000,
			PriceChange24h: 1.8,
			Volume24h:      15_000_000_000,
			Pros:           []string{"Store of value", "Institutional adoption", "Limited supply", "Network security"},
			Cons:           []string{"High volatility", "Limited utility", "Energy concerns"},
			Allocation:     20,
		})
	}

	if ethPct > 50 {
		recs = append(recs, model.TokenRecommendation{
			ID:             id("diversify"),
			Symbol:         "USDC",
			Name:           "Diversification",
			Category:       "STABLECOIN",
			Reason:         fmt.Sprintf("Your ETH allocation is %.1f%%, which is quite concentrated. Consider rebalancing to reduce risk.", ethPct),
			AIScore:        90,
			RiskLevel:      model.LevelLow,
			ExpectedReturn: 4.5,
			TimeHorizon:    "1M",
			MarketCap:      32_000_000_000,
			PriceChange24h: 0.01,
			Volume24h:      2_800_000_000,
			Pros:           []string{"Risk reduction", "Portfolio stability", "Liquidity"},
			Cons:           []string{"Lower potential returns"},
			Allocation:     15,
		})
	}

	if s.WalletChainID == mainnetChainID && total > 50 {
		recs = append(recs, model.TokenRecommendation{
			ID:             id("arb"),
			Symbol:         "ARB",
			Name:           "Arbitrum",
			Category:       "L2",
			Reason:         "You're on Ethereum mainnet. Arbitrum offers lower fees while maintaining Ethereum compatibility.",
			AIScore:        78,
			RiskLevel:      model.LevelMedium,
			ExpectedReturn: 22.8,
			TimeHorizon:    "3M",
			MarketCap:      8_500_000_000,
			PriceChange24h: 5.7,
			Volume24h:      450_000_000,
			Pros:           []string{"Lower fees than Ethereum", "Fast transactions", "Growing ecosystem", "Ethereum security"},
			Cons:           []string{"Centralized sequencer", "Token unlock schedule", "Newer technology"},
			Allocation:     min(10, total/100),
		})
	}

	if total < 1000 {
		recs = append(recs, model.TokenRecommendation{
			ID:             id("small_portfolio"),
			Symbol:         "ETH",
			Name:           "Ethereum Focus",
			Category:       "L1",
			Reason:         "For smaller portfolios, focusing on established assets like ETH provides better risk-adjusted returns than over-diversification.",
			AIScore:        92,
			RiskLevel:      model.LevelMedium,
			ExpectedReturn: 15.2,
			TimeHorizon:    "6M",
			MarketCap:      380_000_000_000,
			PriceChange24h: 2.4,
			Volume24h:      12_000_000_000,
			Pros:           []string{"Established track record", "High liquidity", "Staking rewards", "Lower fees than BTC"},
			Cons:           []string{"Volatility", "Gas fees"},
			Allocation:     60,
		})
	}

	if len(recs) > RecommendationLimit {
		recs = recs[:RecommendationLimit]
	}
	return recs
}

// GenerateTokenRecommendations replaces the recommendation list.
func (e *Engine) GenerateTokenRecommendations(s model.Snapshot) model.Snapshot {
	next := s.Clone()
	next.TokenRecommendations = BuildRecommendations(s, e.nowMillis())
	return next
}
