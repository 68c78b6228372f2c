package treasury

import (
	"slices"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// Stable symbols used by the policy, scenario and data-source rules.
var policyStables = []string{"USDC", "USDT", "DAI"}

// Stable symbols used by the wallet-derived rules, which also see bridged USDC.
var walletStables = []string{"USDC", "USDT", "DAI", "USDC.e"}

// IsStable reports whether symbol counts toward the stable reserve.
func IsStable(symbol string) bool {
	return slices.Contains(policyStables, symbol)
}

func isWalletStable(symbol string) bool {
	return slices.Contains(walletStables, symbol)
}

func sumWhere(assets []model.Asset, keep func(symbol string) bool) float64 {
	var sum float64
	for _, a := range assets {
		if keep(a.Symbol) {
			sum += a.ValueUSD
		}
	}
	return sum
}

func symbols(assets []model.Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.Symbol
	}
	return out
}

func hasAny(tokens []string, want ...string) bool {
	for _, w := range want {
		if slices.Contains(tokens, w) {
			return true
		}
	}
	return false
}

func filterTokens(tokens []string, keep func(string) bool) []string {
	out := []string{}
	for _, t := range tokens {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// percentOf returns part/total in percent, or 0 when total is not positive.
func percentOf(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

// largestHolding returns the asset with the highest currentPct.
func largestHolding(assets []model.Asset) (model.Asset, bool) {
	if len(assets) == 0 {
		return model.Asset{}, false
	}
	best := assets[0]
	for _, a := range assets[1:] {
		if a.CurrentPct > best.CurrentPct {
			best = a
		}
	}
	return best, true
}

func roundDollars(v float64) float64 {
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

// usd formats v as a dollar amount with thousands separators, e.g. $30,000.00.
func usd(v float64) string {
	return money.NewFromFloat(v, money.USD).Display()
}

// num formats v with the shortest exact representation.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// grouped formats v with thousands separators and at most three fraction digits, e.g. 1,234.5.
func grouped(v float64) string {
	return humanize.Commaf(decimal.NewFromFloat(v).Round(3).InexactFloat64())
}

// walletGate reports whether the wallet-derived generators may run.
func walletGate(s model.Snapshot) bool {
	return s.WalletConnected && s.UseRealData
}
