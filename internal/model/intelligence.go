package model

import (
	"maps"
	"slices"
)

// MarketIntelligence is the mock market signal snapshot. It is replaced wholesale on refresh.
type MarketIntelligence struct {
	Sentiment         float64                       `json:"sentiment"`      // -100..100
	FearGreedIndex    float64                       `json:"fearGreedIndex"` // 0..100
	CorrelationMatrix map[string]map[string]float64 `json:"correlationMatrix"`
	MomentumSignals   map[string]float64            `json:"momentumSignals"` // -1..1
	LiquidityScores   map[string]float64            `json:"liquidityScores"` // 0..100
}

// InsightType enumerates AIInsight categories.
type InsightType string

const (
	InsightOpportunity  InsightType = "OPPORTUNITY"
	InsightRisk         InsightType = "RISK"
	InsightOptimization InsightType = "OPTIMIZATION"
	InsightAlert        InsightType = "ALERT"
)

// AIInsight is a mock advisory note derived from wallet holdings.
type AIInsight struct {
	ID               string      `json:"id"`
	Timestamp        int64       `json:"timestamp"`
	Type             InsightType `json:"type"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Confidence       float64     `json:"confidence"`
	Impact           string      `json:"impact"`
	Actionable       bool        `json:"actionable"`
	SuggestedActions []string    `json:"suggestedActions,omitempty"`
}

// News categories.
const (
	NewsMarket     = "MARKET"
	NewsDeFi       = "DEFI"
	NewsRegulation = "REGULATION"
	NewsTech       = "TECH"
	NewsSecurity   = "SECURITY"
)

// NewsItem is a mock news entry relevant to the wallet holdings.
type NewsItem struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	Category       string   `json:"category"`
	Sentiment      string   `json:"sentiment"`
	Impact         string   `json:"impact"`
	Timestamp      int64    `json:"timestamp"`
	Source         string   `json:"source"`
	RelevantTokens []string `json:"relevantTokens,omitempty"`
}

// TokenRecommendation is a mock token suggestion.
type TokenRecommendation struct {
	ID             string   `json:"id"`
	Symbol         string   `json:"symbol"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Reason         string   `json:"reason"`
	AIScore        float64  `json:"aiScore"`
	RiskLevel      string   `json:"riskLevel"`
	ExpectedReturn float64  `json:"expectedReturn"`
	TimeHorizon    string   `json:"timeHorizon"`
	MarketCap      float64  `json:"marketCap"`
	PriceChange24h float64  `json:"priceChange24h"`
	Volume24h      float64  `json:"volume24h"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
	Allocation     float64  `json:"allocation"` // suggested % of portfolio
}

// TradingOpportunity is the action hint attached to a MarketTrend.
type TradingOpportunity struct {
	Action     string  `json:"action"`
	Confidence float64 `json:"confidence"`
}

// MarketTrend is a mock trend observation.
type MarketTrend struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Trend              string              `json:"trend"`
	Strength           float64             `json:"strength"`
	Timeframe          string              `json:"timeframe"`
	AffectedTokens     []string            `json:"affectedTokens"`
	TradingOpportunity *TradingOpportunity `json:"tradingOpportunity,omitempty"`
}

// Clone copies the signal maps, including every correlation row.
func (m MarketIntelligence) Clone() MarketIntelligence {
	if m.CorrelationMatrix != nil {
		rows := make(map[string]map[string]float64, len(m.CorrelationMatrix))
		for k, row := range m.CorrelationMatrix {
			rows[k] = maps.Clone(row)
		}
		m.CorrelationMatrix = rows
	}
	m.MomentumSignals = maps.Clone(m.MomentumSignals)
	m.LiquidityScores = maps.Clone(m.LiquidityScores)
	return m
}

func (i AIInsight) Clone() AIInsight {
	i.SuggestedActions = slices.Clone(i.SuggestedActions)
	return i
}

func (n NewsItem) Clone() NewsItem {
	n.RelevantTokens = slices.Clone(n.RelevantTokens)
	return n
}

func (r TokenRecommendation) Clone() TokenRecommendation {
	r.Pros = slices.Clone(r.Pros)
	r.Cons = slices.Clone(r.Cons)
	return r
}

func (t MarketTrend) Clone() MarketTrend {
	t.AffectedTokens = slices.Clone(t.AffectedTokens)
	t.TradingOpportunity = clonePtr(t.TradingOpportunity)
	return t
}
