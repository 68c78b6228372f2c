package model

import "slices"

// RiskMetrics holds the per-asset weights and the historical volatility in percent.
type RiskMetrics struct {
	ByAssetPct    map[string]float64 `json:"byAssetPct"`
	VolatilityPct float64            `json:"volatilityPct"`
}

// ForecastPoint is a NAV forecast for a fixed horizon such as "30d".
type ForecastPoint struct {
	Date string  `json:"date"`
	Mean float64 `json:"mean"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// AnomalyKind enumerates detected anomalies.
type AnomalyKind string

const (
	AnomalyLargeTransaction AnomalyKind = "TX_LARGE"
	AnomalyAUMJump          AnomalyKind = "AUM_JUMP"
)

// Anomaly is a flagged transaction or NAV movement.
type Anomaly struct {
	ID      string      `json:"id"`
	Date    int64       `json:"date"`
	Kind    AnomalyKind `json:"kind"`
	Message string      `json:"message"`
}

// ScenarioConfig is the stress-test input.
type ScenarioConfig struct {
	AssetDropPct   float64 `json:"assetDropPct"`
	ExpenseRisePct float64 `json:"expenseRisePct"`
}

// ScenarioRiskMetrics are the historical risk statistics reported with a scenario.
// MaxDrawdown is in percent.
type ScenarioRiskMetrics struct {
	ValueAtRisk       float64 `json:"valueAtRisk"`
	ExpectedShortfall float64 `json:"expectedShortfall"`
	MaxDrawdown       float64 `json:"maxDrawdown"`
	SharpeRatio       float64 `json:"sharpeRatio"`
}

// ScenarioResult is the derived stress-test output.
type ScenarioResult struct {
	ProjectedAUM    float64             `json:"projectedAUM"`
	Notes           []string            `json:"notes"`
	RiskMetrics     ScenarioRiskMetrics `json:"riskMetrics"`
	Recommendations []string            `json:"recommendations"`
}

// AnalyticsResult groups the outputs of one analytics computation.
type AnalyticsResult struct {
	Risk      RiskMetrics     `json:"risk"`
	Forecasts []ForecastPoint `json:"forecasts"`
	Anomalies []Anomaly       `json:"anomalies"`
}

func (r ScenarioResult) Clone() ScenarioResult {
	r.Notes = slices.Clone(r.Notes)
	r.Recommendations = slices.Clone(r.Recommendations)
	return r
}
