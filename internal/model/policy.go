package model

import "slices"

// ActionType enumerates recommended portfolio changes.
// REBALANCE, HOLD and LIQUIDATE are reserved; the evaluator never emits them.
type ActionType string

const (
	ActionRebalance ActionType = "REBALANCE"
	ActionReduce    ActionType = "REDUCE"
	ActionIncrease  ActionType = "INCREASE"
	ActionHold      ActionType = "HOLD"
	ActionHedge     ActionType = "HEDGE"
	ActionLiquidate ActionType = "LIQUIDATE"
)

// Priority ranks an Action.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Action is a purely descriptive recommendation; nothing executes it.
type Action struct {
	Type        ActionType `json:"type"`
	Asset       string     `json:"asset,omitempty"`
	DeltaPct    float64    `json:"deltaPct,omitempty"`
	Reason      string     `json:"reason"`
	Priority    Priority   `json:"priority"`
	AIReasoning string     `json:"aiReasoning"`
}

// Market condition buckets.
const (
	SentimentBullish = "BULLISH"
	SentimentBearish = "BEARISH"
	SentimentNeutral = "NEUTRAL"

	LevelLow    = "LOW"
	LevelMedium = "MEDIUM"
	LevelHigh   = "HIGH"
)

// MarketConditions summarizes the market at evaluation time.
type MarketConditions struct {
	Sentiment     string `json:"sentiment"`
	Volatility    string `json:"volatility"`
	LiquidityRisk string `json:"liquidityRisk"`
}

// PolicyDecision is the immutable output of one policy evaluation.
type PolicyDecision struct {
	ID               string           `json:"id"`
	Date             int64            `json:"date"`
	Summary          string           `json:"summary"`
	Confidence       float64          `json:"confidence"`
	RiskScore        float64          `json:"riskScore"`
	ExpectedReturn   float64          `json:"expectedReturn"`
	Actions          []Action         `json:"actions"`
	MarketConditions MarketConditions `json:"marketConditions"`
}

func (d PolicyDecision) Clone() PolicyDecision {
	d.Actions = slices.Clone(d.Actions)
	return d
}
