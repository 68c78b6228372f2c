package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
)

func ValidateUpdateAgentConfig(req request.UpdateAgentConfigRequest) error {
	errs := fields{}

	if req.RiskTolerance != nil && (*req.RiskTolerance < 1 || *req.RiskTolerance > 10) {
		errs["riskTolerance"] = "riskTolerance must be between 1 and 10"
	}
	errs.percent("rebalanceThreshold", req.RebalanceThreshold)
	errs.percent("maxDrawdownLimit", req.MaxDrawdownLimit)

	return errs.err()
}

func ValidateUpdatePolicyConfig(req request.UpdatePolicyConfigRequest) error {
	errs := fields{}

	errs.percent("minStableReservePct", req.MinStableReservePct)
	errs.percent("maxSingleAssetPct", req.MaxSingleAssetPct)

	return errs.err()
}

// ValidateTargetAllocation checks every weight is a percentage and every symbol is non-blank.
// Weights are not required to sum to 100.
func ValidateTargetAllocation(req request.SetTargetAllocationRequest) error {
	errs := fields{}

	if len(req) == 0 {
		errs["targetAllocation"] = "at least one symbol is required"
	}
	for symbol, pct := range req {
		if strings.TrimSpace(symbol) == "" {
			errs["symbol"] = "symbol cannot be empty"
			continue
		}
		if !validPercent(pct) {
			errs[symbol] = fmt.Sprintf("weight %v must be between 0 and 100", pct)
		}
	}

	return errs.err()
}

func ValidateUpdateScenario(req request.UpdateScenarioRequest) error {
	errs := fields{}

	if req.AssetDropPct == nil && req.ExpenseRisePct == nil {
		errs["scenario"] = "assetDropPct or expenseRisePct is required"
	}
	errs.percent("assetDropPct", req.AssetDropPct)
	errs.percent("expenseRisePct", req.ExpenseRisePct)

	return errs.err()
}
