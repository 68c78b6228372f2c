package treasury

import (
	"context"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// intelligenceAssets are the symbols covered by the market intelligence matrices.
var intelligenceAssets = []string{"ETH", "BTC", "ALT", "USDC"}

// GenerateMarketIntelligence draws a fresh set of market signals.
func (e *Engine) GenerateMarketIntelligence(ctx context.Context) model.MarketIntelligence {
	sentiment, fearGreed := e.signals.Sentiment(ctx)

	correlation := make(map[string]map[string]float64, len(intelligenceAssets))
	for _, a1 := range intelligenceAssets {
		row := make(map[string]float64, len(intelligenceAssets))
		for _, a2 := range intelligenceAssets {
			switch {
			case a1 == a2:
				row[a2] = 1
			case a1 == "USDC" || a2 == "USDC":
				row[a2] = -0.1 + e.signals.Uniform()*0.3
			default:
				row[a2] = 0.3 + e.signals.Uniform()*0.6
			}
		}
		correlation[a1] = row
	}

	momentum := make(map[string]float64, len(intelligenceAssets))
	for _, a := range intelligenceAssets {
		momentum[a] = -1 + e.signals.Uniform()*2
	}

	liquidity := make(map[string]float64, len(intelligenceAssets))
	for _, a := range intelligenceAssets {
		if a == "USDC" {
			liquidity[a] = 95 + e.signals.Uniform()*5
		} else {
			liquidity[a] = 60 + e.signals.Uniform()*35
		}
	}

	return model.MarketIntelligence{
		Sentiment:         sentiment,
		FearGreedIndex:    fearGreed,
		CorrelationMatrix: correlation,
		MomentumSignals:   momentum,
		LiquidityScores:   liquidity,
	}
}

// UpdateMarketIntelligence replaces the market intelligence wholesale.
func (e *Engine) UpdateMarketIntelligence(ctx context.Context, s model.Snapshot) model.Snapshot {
	next := s.Clone()
	next.MarketIntelligence = e.GenerateMarketIntelligence(ctx)
	return next
}
