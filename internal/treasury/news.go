package treasury

import (
	"fmt"
	"slices"
	"time"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// NewsLimit caps the news list.
const NewsLimit = 5

var (
	defiTokens      = []string{"AAVE", "COMP", "UNI", "SUSHI", "MKR"}
	regulatedTokens = []string{"ETH", "BTC", "USDC", "USDT"}
)

// BuildNews returns news items relevant to the wallet holdings, newest first. Without a
// connected wallet on real data the list is empty.
func BuildNews(s model.Snapshot, now time.Time) []model.NewsItem {
	items := []model.NewsItem{}
	if !walletGate(s) {
		return items
	}

	nowMs := now.UnixMilli()
	ago := func(d time.Duration) int64 { return now.Add(-d).UnixMilli() }
	id := func(tag string) string { return fmt.Sprintf("news_%d_%s", nowMs, tag) }

	tokens := symbols(s.WalletAssets)
	hasETH := hasAny(tokens, "ETH", "WETH")
	hasBTC := hasAny(tokens, "BTC", "WBTC")
	hasStables := slices.ContainsFunc(tokens, isWalletStable)

	if hasETH {
		items = append(items, model.NewsItem{
			ID:             id("eth"),
			Title:          "Ethereum Staking Rewards Reach 4.2% APY",
			Summary:        "Ethereum staking yields have increased due to higher network activity and MEV rewards. Current validators earning attractive returns.",
			Category:       model.NewsDeFi,
			Sentiment:      model.SentimentBullish,
			Impact:         model.LevelMedium,
			Timestamp:      ago(30 * time.Minute),
			Source:         "Ethereum Foundation",
			RelevantTokens: []string{"ETH"},
		})
	}
	if hasBTC {
		items = append(items, model.NewsItem{
			ID:             id("btc"),
			Title:          "Bitcoin ETF Inflows Continue Strong Momentum",
			Summary:        "Institutional Bitcoin ETFs see continued inflows as traditional finance embraces digital assets. Total AUM exceeds $50B.",
			Category:       model.NewsMarket,
			Sentiment:      model.SentimentBullish,
			Impact:         model.LevelHigh,
			Timestamp:      ago(time.Hour),
			Source:         "Bloomberg ETF",
			RelevantTokens: []string{"BTC"},
		})
	}
	if hasStables {
		items = append(items, model.NewsItem{
			ID:             id("stable"),
			Title:          "Stablecoin Yields Rise to 5.2% on DeFi Protocols",
			Summary:        "Leading DeFi lending protocols now offer attractive yields on USDC and USDT deposits as borrowing demand increases.",
			Category:       model.NewsDeFi,
			Sentiment:      model.SentimentBullish,
			Impact:         model.LevelMedium,
			Timestamp:      ago(2 * time.Hour),
			Source:         "DeFi Pulse",
			RelevantTokens: filterTokens(tokens, isWalletStable),
		})
	}

	items = append(items, model.NewsItem{
		ID:             id("general1"),
		Title:          "Crypto Market Shows Resilience Amid Economic Uncertainty",
		Summary:        "Digital assets maintain stability as traditional markets face headwinds. Institutional adoption continues to drive long-term growth.",
		Category:       model.NewsMarket,
		Sentiment:      model.SentimentNeutral,
		Impact:         model.LevelMedium,
		Timestamp:      ago(3 * time.Hour),
		Source:         "CoinDesk",
		RelevantTokens: firstN(tokens, 3),
	})

	if held := filterTokens(tokens, func(t string) bool { return slices.Contains(defiTokens, t) }); len(held) > 0 {
		items = append(items, model.NewsItem{
			ID:             id("defi_security"),
			Title:          "Enhanced Security Measures Implemented Across DeFi Protocols",
			Summary:        "Major DeFi protocols upgrade security infrastructure following recent industry developments. New audit standards being adopted.",
			Category:       model.NewsSecurity,
			Sentiment:      model.SentimentNeutral,
			Impact:         model.LevelMedium,
			Timestamp:      ago(4 * time.Hour),
			Source:         "DeFi Safety",
			RelevantTokens: held,
		})
	}

	if hasStables || hasETH || hasBTC {
		items = append(items, model.NewsItem{
			ID:             id("regulation"),
			Title:          "Regulatory Clarity Improves for Digital Asset Custody",
			Summary:        "New guidelines provide clearer framework for institutional custody of digital assets, boosting confidence in the sector.",
			Category:       model.NewsRegulation,
			Sentiment:      model.SentimentBullish,
			Impact:         model.LevelMedium,
			Timestamp:      ago(5 * time.Hour),
			Source:         "Financial Times",
			RelevantTokens: filterTokens(tokens, func(t string) bool { return slices.Contains(regulatedTokens, t) }),
		})
	}

	if len(items) > NewsLimit {
		items = items[:NewsLimit]
	}
	return items
}

// GenerateNews replaces the news list.
func (e *Engine) GenerateNews(s model.Snapshot) model.Snapshot {
	next := s.Clone()
	next.News = BuildNews(s, e.now())
	return next
}

func firstN(tokens []string, n int) []string {
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return append([]string{}, tokens...)
}
