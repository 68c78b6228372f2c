package wallet

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// PriceSource returns USD prices keyed by price ID. Unknown IDs are omitted.
type PriceSource interface {
	Prices(ctx context.Context, ids []string) (map[string]float64, error)
}

// StaticPrices serves a fixed price table.
type StaticPrices map[string]float64

// DefaultStaticPrices returns the built-in demo prices.
func DefaultStaticPrices() StaticPrices {
	return StaticPrices{
		PriceUSDC:     1,
		PriceEthereum: 3200,
		PriceBitcoin:  67000,
		PriceMatic:    0.8,
	}
}

func (p StaticPrices) Prices(_ context.Context, ids []string) (map[string]float64, error) {
	out := make(map[string]float64, len(ids))
	for _, id := range ids {
		if v, ok := p[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

// CoinGeckoPrices queries the CoinGecko simple price endpoint.
type CoinGeckoPrices struct {
	client *resty.Client
}

// NewCoinGeckoPrices creates a price source against baseURL, e.g. https://api.coingecko.com/api/v3.
// A nil httpClient uses a default transport.
func NewCoinGeckoPrices(baseURL string, httpClient *http.Client) *CoinGeckoPrices {
	client := resty.New()
	if httpClient != nil {
		client = resty.NewWithClient(httpClient)
	}
	client.SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetHeader("Accept", "application/json")
	return &CoinGeckoPrices{client: client}
}

func (c *CoinGeckoPrices) Prices(ctx context.Context, ids []string) (map[string]float64, error) {
	var body map[string]map[string]float64
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":           strings.Join(ids, ","),
			"vs_currencies": "usd",
		}).
		SetResult(&body).
		Get("/simple/price")
	if err != nil {
		return nil, fmt.Errorf("coingecko request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("coingecko returned status %d: %s", resp.StatusCode(), resp.String())
	}

	out := make(map[string]float64, len(body))
	for id, quote := range body {
		if usd, ok := quote["usd"]; ok {
			out[id] = usd
		}
	}
	return out, nil
}
