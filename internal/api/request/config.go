package request

// UpdateAgentConfigRequest is the request body for PUT /api/config/agent.
// Omitted fields keep their current value.
type UpdateAgentConfigRequest struct {
	RiskTolerance         *int     `json:"riskTolerance,omitempty"` // RiskTolerance must be between 1 and 10.
	EnableStableReserve   *bool    `json:"enableStableReserve,omitempty"`
	EnableMomentum        *bool    `json:"enableMomentum,omitempty"`
	EnableMLOptimization  *bool    `json:"enableMLOptimization,omitempty"`
	EnableMarketSentiment *bool    `json:"enableMarketSentiment,omitempty"`
	EnableGovernanceMode  *bool    `json:"enableGovernanceMode,omitempty"`
	RebalanceThreshold    *float64 `json:"rebalanceThreshold,omitempty"` // RebalanceThreshold is a percentage, 0-100.
	MaxDrawdownLimit      *float64 `json:"maxDrawdownLimit,omitempty"`   // MaxDrawdownLimit is a percentage, 0-100.
}

// UpdatePolicyConfigRequest is the request body for PUT /api/config/policy.
type UpdatePolicyConfigRequest struct {
	MinStableReservePct *float64 `json:"minStableReservePct,omitempty"`
	MaxSingleAssetPct   *float64 `json:"maxSingleAssetPct,omitempty"`
}

// SetTargetAllocationRequest is the request body for PUT /api/config/target: symbol to percent.
type SetTargetAllocationRequest map[string]float64
