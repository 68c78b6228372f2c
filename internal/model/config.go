package model

// AgentConfig holds the user-tunable toggles of the policy agent.
type AgentConfig struct {
	RiskTolerance         int     `json:"riskTolerance"` // 1-10
	EnableStableReserve   bool    `json:"enableStableReserve"`
	EnableMomentum        bool    `json:"enableMomentum"`
	EnableMLOptimization  bool    `json:"enableMLOptimization"`
	EnableMarketSentiment bool    `json:"enableMarketSentiment"`
	EnableGovernanceMode  bool    `json:"enableGovernanceMode"`
	RebalanceThreshold    float64 `json:"rebalanceThreshold"` // % deviation to trigger rebalance
	MaxDrawdownLimit      float64 `json:"maxDrawdownLimit"`   // % max acceptable drawdown
}

// PolicyConfig holds the hard constraint thresholds, in percent.
type PolicyConfig struct {
	MinStableReservePct float64 `json:"minStableReservePct"`
	MaxSingleAssetPct   float64 `json:"maxSingleAssetPct"`
}

// ConfigDocument is the exported/imported configuration document.
// Sections are pointers so an import can tell which ones were present.
type ConfigDocument struct {
	AgentConfig      *AgentConfig       `json:"agentConfig,omitempty"`
	PolicyConfig     *PolicyConfig      `json:"policyConfig,omitempty"`
	TargetAllocation map[string]float64 `json:"targetAllocation,omitempty"`
}
