package model

// Asset is a single holding in the treasury portfolio.
// CurrentPct is the share of the portfolio total in percent (0-100).
type Asset struct {
	Symbol     string   `json:"symbol"`
	ValueUSD   float64  `json:"valueUSD"`
	CurrentPct float64  `json:"currentPct"`
	Balance    *float64 `json:"balance,omitempty"`
	IsNative   *bool    `json:"isNative,omitempty"`
}

func (a Asset) Clone() Asset {
	a.Balance = clonePtr(a.Balance)
	a.IsNative = clonePtr(a.IsNative)
	return a
}

// RiskLevel is the coarse risk bucket shown with the KPIs.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// KPIs holds the headline figures of the dashboard.
type KPIs struct {
	TotalAUM    float64   `json:"totalAUM"`
	Last24hPnL  float64   `json:"last24hPnL"`
	CashBalance float64   `json:"cashBalance"`
	RiskLevel   RiskLevel `json:"riskLevel"`
}

// NavPoint is one point of the net asset value history. Date is YYYY-MM-DD.
type NavPoint struct {
	Date string  `json:"date"`
	Nav  float64 `json:"nav"`
}
