package treasury

import (
	"fmt"
	"math"
	"time"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

var forecastHorizons = []int{7, 30, 90}

const (
	largeTransactionShare = 0.05
	aumJumpThreshold      = 0.04
	confidenceZ95         = 1.96
)

// DailyReturns computes r[i] = (nav[i]-nav[i-1]) / nav[i-1]. A zero predecessor yields a
// zero return instead of a non-finite value.
func DailyReturns(nav []model.NavPoint) []float64 {
	if len(nav) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(nav)-1)
	for i := 1; i < len(nav); i++ {
		prev := nav[i-1].Nav
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (nav[i].Nav-prev)/prev)
	}
	return returns
}

// MeanStdDev returns the mean and the population standard deviation of xs.
func MeanStdDev(xs []float64) (mean, stdDev float64) {
	n := float64(max(len(xs), 1))
	for _, x := range xs {
		mean += x
	}
	mean /= n
	var variance float64
	for _, x := range xs {
		variance += (x - mean) * (x - mean)
	}
	variance /= n
	return mean, math.Sqrt(variance)
}

// Forecasts projects the last NAV over the fixed horizons with a normal 95% band.
func Forecasts(last, dailyMean, sigma float64) []model.ForecastPoint {
	out := make([]model.ForecastPoint, 0, len(forecastHorizons))
	for _, d := range forecastHorizons {
		mu := last * math.Pow(1+dailyMean, float64(d))
		out = append(out, model.ForecastPoint{
			Date: fmt.Sprintf("%dd", d),
			Mean: max(0, mu),
			Low:  max(0, mu*(1-confidenceZ95*sigma)),
			High: max(0, mu*(1+confidenceZ95*sigma)),
		})
	}
	return out
}

// DetectAnomalies flags transactions above 5% of aum and day-over-day NAV moves above 4%.
func DetectAnomalies(transactions []model.Transaction, nav []model.NavPoint, aum float64, now time.Time) []model.Anomaly {
	anomalies := []model.Anomaly{}
	for _, t := range transactions {
		if t.ValueUSD > aum*largeTransactionShare {
			anomalies = append(anomalies, model.Anomaly{
				ID:      "tx_" + t.ID,
				Date:    t.Date,
				Kind:    model.AnomalyLargeTransaction,
				Message: fmt.Sprintf("Large transaction %s %s %s", t.Type, t.Asset, usd(t.ValueUSD)),
			})
		}
	}
	for i := 1; i < len(nav); i++ {
		prev := nav[i-1].Nav
		if prev == 0 {
			continue
		}
		pct := math.Abs((nav[i].Nav - prev) / prev)
		if pct > aumJumpThreshold {
			anomalies = append(anomalies, model.Anomaly{
				ID:      fmt.Sprintf("aum_%d", i),
				Date:    navMillis(nav[i].Date, now),
				Kind:    model.AnomalyAUMJump,
				Message: fmt.Sprintf("AUM moved %.1f%% day-over-day", pct*100),
			})
		}
	}
	return anomalies
}

func navMillis(date string, fallback time.Time) int64 {
	t, err := time.Parse(navDateLayout, date)
	if err != nil {
		return fallback.UnixMilli()
	}
	return t.UnixMilli()
}

// ComputeAnalytics recomputes the risk metrics, forecasts and anomalies.
func (e *Engine) ComputeAnalytics(s model.Snapshot) model.Snapshot {
	total := model.Total(s.Assets)

	byAsset := make(map[string]float64, len(s.Assets))
	for _, a := range s.Assets {
		byAsset[a.Symbol] = percentOf(a.ValueUSD, total)
	}

	mean, sigma := MeanStdDev(DailyReturns(s.NavHistory))

	last := total
	if n := len(s.NavHistory); n > 0 && s.NavHistory[n-1].Nav != 0 {
		last = s.NavHistory[n-1].Nav
	}

	next := s.Clone()
	next.Risk = model.RiskMetrics{ByAssetPct: byAsset, VolatilityPct: sigma * 100}
	next.Forecasts = Forecasts(last, mean, sigma)
	next.Anomalies = DetectAnomalies(s.Transactions, s.NavHistory, total, e.now())
	return next
}
