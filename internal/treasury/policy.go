package treasury

import (
	"fmt"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// PolicyLogLimit is the number of decisions kept in the log.
const PolicyLogLimit = 20

const (
	baseConfidence = 70
	baseRiskScore  = 50

	bearishSentiment     = -30
	bullishSentiment     = 30
	ethMomentumThreshold = 0.2
	btcMomentumThreshold = -0.1
	hedgeVolatilityPct   = 15
)

// EvaluatePolicy applies the threshold rules to s and returns the resulting decision.
// Every rule reads the unmodified snapshot; the actions are advisory only.
//
//nolint:gocyclo,funlen // One branch per rule, kept in evaluation order.
func (e *Engine) EvaluatePolicy(s model.Snapshot) model.PolicyDecision {
	now := e.now()
	total := model.Total(s.Assets)
	stablePct := percentOf(sumWhere(s.Assets, IsStable), total)

	sentiment := s.MarketIntelligence.Sentiment
	fearGreed := s.MarketIntelligence.FearGreedIndex
	volatility := s.Risk.VolatilityPct

	confidence := float64(baseConfidence)
	riskScore := float64(baseRiskScore)
	var expectedReturn float64
	actions := []model.Action{}

	if s.AgentConfig.EnableMarketSentiment {
		switch {
		case sentiment < bearishSentiment:
			confidence += 15
			riskScore += 20
			actions = append(actions, model.Action{
				Type:        model.ActionIncrease,
				Asset:       "USDC",
				DeltaPct:    5,
				Reason:      "Bearish sentiment detected: increase stable allocation",
				Priority:    model.PriorityHigh,
				AIReasoning: fmt.Sprintf("Market sentiment at %s, fear/greed at %s. AI recommends defensive positioning.", num(sentiment), num(fearGreed)),
			})
		case sentiment > bullishSentiment:
			confidence += 10
			riskScore -= 10
			expectedReturn += 3
			actions = append(actions, model.Action{
				Type:        model.ActionIncrease,
				Asset:       "ETH",
				DeltaPct:    3,
				Reason:      "Bullish sentiment: increase risk asset exposure",
				Priority:    model.PriorityMedium,
				AIReasoning: fmt.Sprintf("Positive market sentiment (%s) suggests opportunity for risk-on positioning.", num(sentiment)),
			})
		}
	}

	if s.AgentConfig.EnableMLOptimization {
		ethMomentum, btcMomentum := e.signals.Momentum(now)
		if ethMomentum > ethMomentumThreshold {
			actions = append(actions, model.Action{
				Type:        model.ActionIncrease,
				Asset:       "ETH",
				DeltaPct:    2,
				Reason:      "ML momentum signal: ETH showing strong momentum",
				Priority:    model.PriorityMedium,
				AIReasoning: fmt.Sprintf("Momentum algorithm detected positive ETH signal (%.1f%%). Risk-adjusted allocation increase recommended.", ethMomentum*100),
			})
		}
		if btcMomentum < btcMomentumThreshold {
			actions = append(actions, model.Action{
				Type:        model.ActionReduce,
				Asset:       "BTC",
				DeltaPct:    1.5,
				Reason:      "ML momentum signal: BTC showing weakness",
				Priority:    model.PriorityLow,
				AIReasoning: fmt.Sprintf("Momentum algorithm detected negative BTC signal (%.1f%%). Minor position reduction suggested.", btcMomentum*100),
			})
		}
	}

	minStable := s.PolicyConfig.MinStableReservePct
	if stablePct < minStable && s.AgentConfig.EnableStableReserve {
		actions = append(actions, model.Action{
			Type:        model.ActionIncrease,
			Asset:       "USDC",
			DeltaPct:    minStable - stablePct,
			Reason:      fmt.Sprintf("Raise stables to ≥%s%% (currently %.2f%%)", num(minStable), stablePct),
			Priority:    model.PriorityHigh,
			AIReasoning: "Risk management protocol requires minimum stable reserve maintenance for downside protection.",
		})
		riskScore += 15
	}

	maxSingle := s.PolicyConfig.MaxSingleAssetPct
	for _, a := range s.Assets {
		if a.CurrentPct > maxSingle {
			actions = append(actions, model.Action{
				Type:        model.ActionReduce,
				Asset:       a.Symbol,
				DeltaPct:    a.CurrentPct - maxSingle,
				Reason:      fmt.Sprintf("Cap %s to ≤%s%% (currently %.2f%%)", a.Symbol, num(maxSingle), a.CurrentPct),
				Priority:    model.PriorityCritical,
				AIReasoning: fmt.Sprintf("Concentration risk detected. Asset %s exceeds maximum allocation threshold, creating systemic risk exposure.", a.Symbol),
			})
			riskScore += 25
		}
	}

	if volatility > hedgeVolatilityPct {
		actions = append(actions, model.Action{
			Type:        model.ActionHedge,
			DeltaPct:    5,
			Reason:      "High volatility detected: implementing hedging strategy",
			Priority:    model.PriorityHigh,
			AIReasoning: fmt.Sprintf("Portfolio volatility at %.2f%% exceeds comfort zone. Hedging recommended to reduce downside risk.", volatility),
		})
		riskScore += 20
	}

	switch rt := s.AgentConfig.RiskTolerance; {
	case rt >= 8:
		expectedReturn += 5
		actions = append(actions, model.Action{
			Type:        model.ActionIncrease,
			Asset:       "ETH",
			DeltaPct:    2,
			Reason:      "High risk tolerance: opportunistic allocation increase",
			Priority:    model.PriorityMedium,
			AIReasoning: "Risk profile allows for aggressive positioning. Current market conditions favor increased exposure to growth assets.",
		})
	case rt <= 3:
		riskScore += 10
		actions = append(actions, model.Action{
			Type:        model.ActionReduce,
			Asset:       "ALT",
			DeltaPct:    2,
			Reason:      "Conservative risk profile: reducing speculative exposure",
			Priority:    model.PriorityMedium,
			AIReasoning: "Low risk tolerance requires defensive positioning. Reducing exposure to high-volatility assets to preserve capital.",
		})
	}

	summary := "AI Analysis: Portfolio optimally positioned"
	if len(actions) > 0 {
		summary = fmt.Sprintf("AI Policy Engine: %d actions recommended", len(actions))
	}

	return model.PolicyDecision{
		ID:               e.newID(),
		Date:             now.UnixMilli(),
		Summary:          summary,
		Confidence:       clamp(confidence, 0, 100),
		RiskScore:        clamp(riskScore, 0, 100),
		ExpectedReturn:   expectedReturn,
		Actions:          actions,
		MarketConditions: ClassifyMarket(sentiment, volatility, fearGreed),
	}
}

// ClassifyMarket buckets the sentiment, volatility and liquidity risk.
func ClassifyMarket(sentiment, volatilityPct, fearGreed float64) model.MarketConditions {
	mc := model.MarketConditions{
		Sentiment:     model.SentimentNeutral,
		Volatility:    model.LevelLow,
		LiquidityRisk: model.LevelLow,
	}
	switch {
	case sentiment > 20:
		mc.Sentiment = model.SentimentBullish
	case sentiment < -20:
		mc.Sentiment = model.SentimentBearish
	}
	switch {
	case volatilityPct > 20:
		mc.Volatility = model.LevelHigh
	case volatilityPct > 10:
		mc.Volatility = model.LevelMedium
	}
	switch {
	case fearGreed < 25:
		mc.LiquidityRisk = model.LevelHigh
	case fearGreed < 50:
		mc.LiquidityRisk = model.LevelMedium
	}
	return mc
}

// RunPolicy evaluates the policy and prepends the decision to the capped log.
func (e *Engine) RunPolicy(s model.Snapshot) (model.Snapshot, model.PolicyDecision) {
	decision := e.EvaluatePolicy(s)
	next := s.Clone()
	next.PolicyLog = prependCapped(s.PolicyLog, decision, PolicyLogLimit)
	return next, decision
}

// prependCapped returns a new slice with v first, followed by at most limit-1 items of list.
func prependCapped[T any](list []T, v T, limit int) []T {
	out := make([]T, 0, min(len(list)+1, limit))
	out = append(out, v)
	for _, item := range list {
		if len(out) == limit {
			break
		}
		out = append(out, item)
	}
	return out
}
