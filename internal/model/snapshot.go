package model

import (
	"maps"
	"slices"
)

// Snapshot is the complete treasury state. It is the unit of persistence: the whole
// struct is serialized as one JSON object after every mutating command.
type Snapshot struct {
	Assets           []Asset            `json:"assets"`
	TargetAllocation map[string]float64 `json:"targetAllocation"`
	Transactions     []Transaction      `json:"transactions"`
	NavHistory       []NavPoint         `json:"navHistory"`
	KPIs             KPIs               `json:"kpis"`
	LastRebalance    int64              `json:"lastRebalance,omitempty"`

	AgentConfig      AgentConfig      `json:"agentConfig"`
	AgentSuggestions []string         `json:"agentSuggestions"`
	PolicyConfig     PolicyConfig     `json:"policyConfig"`
	PolicyLog        []PolicyDecision `json:"policyLog"`

	Forecasts      []ForecastPoint `json:"forecasts"`
	Risk           RiskMetrics     `json:"risk"`
	Anomalies      []Anomaly       `json:"anomalies"`
	Scenario       ScenarioConfig  `json:"scenario"`
	ScenarioResult *ScenarioResult `json:"scenarioResult,omitempty"`

	MarketIntelligence   MarketIntelligence    `json:"marketIntelligence"`
	GovernanceProposals  []GovernanceProposal  `json:"governanceProposals"`
	AIInsights           []AIInsight           `json:"aiInsights"`
	News                 []NewsItem            `json:"news"`
	TokenRecommendations []TokenRecommendation `json:"tokenRecommendations"`
	MarketTrends         []MarketTrend         `json:"marketTrends"`

	WalletConnected bool    `json:"walletConnected"`
	WalletAddress   string  `json:"walletAddress,omitempty"`
	WalletChainID   int64   `json:"walletChainId,omitempty"`
	WalletAssets    []Asset `json:"walletAssets"`
	UseRealData     bool    `json:"useRealData"`

	IsAuthenticated bool `json:"isAuthenticated"`
}

// Clone returns a deep copy of s. Nothing reachable from the result is shared with s.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Assets = cloneEach(s.Assets, Asset.Clone)
	c.TargetAllocation = maps.Clone(s.TargetAllocation)
	c.Transactions = slices.Clone(s.Transactions)
	c.NavHistory = slices.Clone(s.NavHistory)
	c.AgentSuggestions = slices.Clone(s.AgentSuggestions)
	c.PolicyLog = cloneEach(s.PolicyLog, PolicyDecision.Clone)
	c.Forecasts = slices.Clone(s.Forecasts)
	c.Risk.ByAssetPct = maps.Clone(s.Risk.ByAssetPct)
	c.Anomalies = slices.Clone(s.Anomalies)
	if s.ScenarioResult != nil {
		r := s.ScenarioResult.Clone()
		c.ScenarioResult = &r
	}
	c.MarketIntelligence = s.MarketIntelligence.Clone()
	c.GovernanceProposals = slices.Clone(s.GovernanceProposals)
	c.AIInsights = cloneEach(s.AIInsights, AIInsight.Clone)
	c.News = cloneEach(s.News, NewsItem.Clone)
	c.TokenRecommendations = cloneEach(s.TokenRecommendations, TokenRecommendation.Clone)
	c.MarketTrends = cloneEach(s.MarketTrends, MarketTrend.Clone)
	c.WalletAssets = cloneEach(s.WalletAssets, Asset.Clone)
	return c
}

// cloneEach copies items with clone applied to every element. nil stays nil.
func cloneEach[T any](items []T, clone func(T) T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Total returns the summed USD value of the given assets.
func Total(assets []Asset) float64 {
	var total float64
	for _, a := range assets {
		total += a.ValueUSD
	}
	return total
}
