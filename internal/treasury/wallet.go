package treasury

import (
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// NormalizeWalletAssets recomputes currentPct so the list sums to 100. With a zero total
// every percentage is 0.
func NormalizeWalletAssets(assets []model.Asset) []model.Asset {
	total := model.Total(assets)
	out := make([]model.Asset, len(assets))
	for i, a := range assets {
		a.CurrentPct = percentOf(a.ValueUSD, total)
		out[i] = a
	}
	return out
}

// SetWalletConnected records the wallet connection. Connecting switches to real data;
// disconnecting clears everything derived from the wallet.
func (e *Engine) SetWalletConnected(s model.Snapshot, connected bool, address string, chainID int64) model.Snapshot {
	next := s.Clone()
	next.WalletConnected = connected
	next.WalletAddress = address
	next.WalletChainID = chainID
	next.UseRealData = connected
	if !connected {
		next.WalletAssets = []model.Asset{}
		next.News = []model.NewsItem{}
		next.TokenRecommendations = []model.TokenRecommendation{}
		next.MarketTrends = []model.MarketTrend{}
		next.AIInsights = []model.AIInsight{}
	}
	return next
}

// UpdateWalletAssets stores the wallet holdings. On real data with a connected wallet the
// holdings also become the portfolio, its KPIs and its target allocation, and the NAV history
// rolls forward by one day.
func (e *Engine) UpdateWalletAssets(s model.Snapshot, assets []model.Asset) model.Snapshot {
	assets = NormalizeWalletAssets(assets)

	next := s.Clone()
	next.WalletAssets = assets
	if !walletGate(s) || len(assets) == 0 {
		return next
	}

	total := model.Total(assets)
	cash := sumWhere(assets, isWalletStable)
	next.KPIs = model.KPIs{
		TotalAUM:    total,
		Last24hPnL:  total * 0.02,
		CashBalance: cash,
		RiskLevel:   riskLevelFor(percentOf(cash, total)),
	}

	next.Assets = append([]model.Asset{}, assets...)
	next.TargetAllocation = make(map[string]float64, len(assets))
	for _, a := range assets {
		next.TargetAllocation[a.Symbol] = a.CurrentPct
	}

	nav := next.NavHistory
	if len(nav) > 0 {
		nav = nav[1:]
	}
	next.NavHistory = append(append([]model.NavPoint{}, nav...), model.NavPoint{
		Date: e.now().UTC().Format(navDateLayout),
		Nav:  total,
	})
	return next
}

func riskLevelFor(stablePct float64) model.RiskLevel {
	switch {
	case stablePct > 60:
		return model.RiskLevelLow
	case stablePct > 30:
		return model.RiskLevelMedium
	default:
		return model.RiskLevelHigh
	}
}

// ToggleDataSource flips between wallet data and the demo portfolio.
func ToggleDataSource(s model.Snapshot) model.Snapshot {
	next := s.Clone()
	next.UseRealData = !s.UseRealData

	if next.UseRealData && len(s.WalletAssets) > 0 {
		next.Assets = append([]model.Asset{}, s.WalletAssets...)
		next.KPIs.TotalAUM = model.Total(s.WalletAssets)
		next.KPIs.CashBalance = sumWhere(s.WalletAssets, IsStable)
		return next
	}

	next.Assets = DefaultAssets()
	next.KPIs = DefaultKPIs()
	next.TargetAllocation = DefaultTargetAllocation()
	return next
}
