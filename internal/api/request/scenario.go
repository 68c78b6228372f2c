package request

// UpdateScenarioRequest is the request body for PUT /api/scenario.
type UpdateScenarioRequest struct {
	AssetDropPct   *float64 `json:"assetDropPct,omitempty"`   // AssetDropPct is the simulated price drop, 0-100.
	ExpenseRisePct *float64 `json:"expenseRisePct,omitempty"` // ExpenseRisePct is the simulated cost increase, 0-100.
}
