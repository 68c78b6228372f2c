package treasury

import (
	"fmt"
	"math"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

const (
	// monthlyBurnProxy scales the expense shock: expenses are assumed to be 2% of AUM.
	monthlyBurnProxy = 0.02
	varZ95           = 1.645
	shortfallZ       = 2.33
	annualRiskFree   = 0.02
)

// EvaluateScenario applies the stress shock and derives the historical risk statistics.
func EvaluateScenario(cfg model.ScenarioConfig, assets []model.Asset, nav []model.NavPoint) model.ScenarioResult {
	total := model.Total(assets)
	dropFactor := max(0, 1-cfg.AssetDropPct/100)
	expenseHit := cfg.ExpenseRisePct / 100 * total * monthlyBurnProxy
	riskValue := sumWhere(assets, func(symbol string) bool { return !IsStable(symbol) })
	projected := max(0, riskValue*dropFactor+(total-riskValue)-expenseHit)

	notes := []string{
		fmt.Sprintf("Risk assets drop %s%%", num(cfg.AssetDropPct)),
		fmt.Sprintf("Expenses rise %s%%", num(cfg.ExpenseRisePct)),
	}

	mean, sigma := MeanStdDev(DailyReturns(nav))
	var sharpe float64
	if sigma > 0 {
		sharpe = (mean - annualRiskFree/365) / sigma
	}
	metrics := model.ScenarioRiskMetrics{
		ValueAtRisk:       math.Abs(total * (mean - varZ95*sigma)),
		ExpectedShortfall: math.Abs(total * (mean - shortfallZ*sigma)),
		MaxDrawdown:       MaxDrawdown(nav) * 100,
		SharpeRatio:       sharpe,
	}

	return model.ScenarioResult{
		ProjectedAUM:    projected,
		Notes:           notes,
		RiskMetrics:     metrics,
		Recommendations: scenarioRecommendations(percentOf(total-projected, total), metrics),
	}
}

// MaxDrawdown returns the largest peak-to-trough fractional decline of the series.
func MaxDrawdown(nav []model.NavPoint) float64 {
	if len(nav) == 0 {
		return 0
	}
	peak := nav[0].Nav
	var worst float64
	for _, p := range nav {
		if p.Nav > peak {
			peak = p.Nav
		}
		if peak <= 0 {
			continue
		}
		if dd := (peak - p.Nav) / peak; dd > worst {
			worst = dd
		}
	}
	return worst
}

func scenarioRecommendations(lossPct float64, m model.ScenarioRiskMetrics) []string {
	var recs []string
	switch {
	case lossPct > 20:
		recs = append(recs,
			"CRITICAL: Consider emergency hedging strategies",
			"Increase stable allocation to 40%+ immediately",
			"Implement stop-loss mechanisms for risk assets")
	case lossPct > 10:
		recs = append(recs,
			"Moderate risk detected: increase stable reserves",
			"Consider partial position hedging",
			"Review and tighten risk management policies")
	default:
		recs = append(recs,
			"Portfolio shows resilience to stress scenario",
			"Current allocation appears well-balanced",
			"Monitor for early warning signals")
	}
	if m.MaxDrawdown > 25 {
		recs = append(recs,
			"Historical drawdown exceeds comfort zone",
			"Implement dynamic hedging based on volatility")
	}
	if m.SharpeRatio < 0.5 {
		recs = append(recs,
			"Risk-adjusted returns below optimal",
			"Consider rebalancing toward higher Sharpe assets")
	}
	return recs
}

// RunScenario stores the result of the current scenario configuration.
func (e *Engine) RunScenario(s model.Snapshot) model.Snapshot {
	result := EvaluateScenario(s.Scenario, s.Assets, s.NavHistory)
	next := s.Clone()
	next.ScenarioResult = &result
	return next
}

// SetScenario replaces the scenario configuration.
func SetScenario(s model.Snapshot, cfg model.ScenarioConfig) model.Snapshot {
	next := s.Clone()
	next.Scenario = cfg
	return next
}
