package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

func usd(v float64) string {
	return money.NewFromFloat(v, money.USD).Display()
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// cell keeps user text from breaking a markdown table row.
func cell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}

// StateMarkdown renders the KPIs and holdings against their targets.
func StateMarkdown(s model.Snapshot) string {
	var b strings.Builder
	b.WriteString("# Treasury\n\n")
	fmt.Fprintf(&b, "| AUM | 24h PnL | Cash | Risk |\n|---:|---:|---:|:---|\n| %s | %s | %s | %s |\n\n",
		usd(s.KPIs.TotalAUM), usd(s.KPIs.Last24hPnL), usd(s.KPIs.CashBalance), s.KPIs.RiskLevel)

	b.WriteString("## Holdings\n\n")
	if len(s.Assets) == 0 {
		b.WriteString("_No holdings._\n")
		return b.String()
	}
	b.WriteString("| Asset | Value | Current | Target | Drift |\n|:---|---:|---:|---:|---:|\n")
	for _, a := range s.Assets {
		target := s.TargetAllocation[a.Symbol]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %+.1f |\n",
			cell(a.Symbol), usd(a.ValueUSD), pct(a.CurrentPct), pct(target), a.CurrentPct-target)
	}

	if s.WalletConnected {
		fmt.Fprintf(&b, "\nWallet `%s` on chain %d", s.WalletAddress, s.WalletChainID)
		if s.UseRealData {
			b.WriteString(", live data")
		}
		b.WriteString(".\n")
	}
	return b.String()
}

// DecisionMarkdown renders a policy decision and its actions.
func DecisionMarkdown(d model.PolicyDecision) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Policy decision\n\n%s\n\n", d.Summary)
	fmt.Fprintf(&b, "- Confidence: %s\n- Risk score: %.0f\n- Expected return: %s\n",
		pct(d.Confidence), d.RiskScore, pct(d.ExpectedReturn))
	fmt.Fprintf(&b, "- Market: %s sentiment, %s volatility, %s liquidity risk\n",
		d.MarketConditions.Sentiment, d.MarketConditions.Volatility, d.MarketConditions.LiquidityRisk)
	if d.Date > 0 {
		fmt.Fprintf(&b, "- Evaluated: %s\n", time.UnixMilli(d.Date).UTC().Format(time.RFC3339))
	}

	b.WriteString("\n## Actions\n\n")
	if len(d.Actions) == 0 {
		b.WriteString("_No actions recommended._\n")
		return b.String()
	}
	b.WriteString("| Priority | Action | Asset | Delta | Reason |\n|:---|:---|:---|---:|:---|\n")
	for _, a := range d.Actions {
		asset, delta := "-", "-"
		if a.Asset != "" {
			asset = a.Asset
		}
		if a.DeltaPct != 0 {
			delta = fmt.Sprintf("%+.1f%%", a.DeltaPct)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", a.Priority, a.Type, cell(asset), delta, cell(a.Reason))
	}
	return b.String()
}

// ScenarioMarkdown renders a stress test result with the shock that produced it.
func ScenarioMarkdown(cfg model.ScenarioConfig, r model.ScenarioResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Scenario: assets -%s, expenses +%s\n\n", pct(cfg.AssetDropPct), pct(cfg.ExpenseRisePct))
	fmt.Fprintf(&b, "Projected AUM: **%s**\n\n", usd(r.ProjectedAUM))
	fmt.Fprintf(&b, "| VaR | Expected shortfall | Max drawdown | Sharpe |\n|---:|---:|---:|---:|\n| %s | %s | %s | %.2f |\n",
		usd(r.RiskMetrics.ValueAtRisk), usd(r.RiskMetrics.ExpectedShortfall), pct(r.RiskMetrics.MaxDrawdown), r.RiskMetrics.SharpeRatio)

	if len(r.Notes) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, n := range r.Notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
	}
	if len(r.Recommendations) > 0 {
		b.WriteString("\n## Recommendations\n\n")
		for _, n := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", n)
		}
	}
	return b.String()
}

// LogsMarkdown renders a page of the activity log.
func LogsMarkdown(page model.LogResponse) string {
	var b strings.Builder
	b.WriteString("# Activity log\n\n")
	if len(page.Logs) == 0 {
		b.WriteString("_No entries._\n")
		return b.String()
	}
	b.WriteString("| Time | Level | Category | Source | Message |\n|:---|:---|:---|:---|:---|\n")
	for _, l := range page.Logs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			l.Timestamp.UTC().Format(time.DateTime), l.Level, l.Category, cell(l.Source), cell(l.Message))
	}
	if page.HasMore {
		fmt.Fprintf(&b, "\nMore entries after cursor `%s`.\n", page.NextCursor)
	}
	return b.String()
}

// printMarkdown renders md for the terminal. Plain output skips styling, which keeps
// the text usable in pipes.
func printMarkdown(w io.Writer, md string, plain bool) error {
	if plain {
		_, err := io.WriteString(w, md)
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
