// Package wallet reads on-chain holdings for a treasury address and prices them in USD.
package wallet

import "github.com/ethereum/go-ethereum/common"

// Token is an ERC20 contract tracked on a chain.
type Token struct {
	Address     common.Address
	Symbol      string
	CoinGeckoID string
}

// Price identifiers shared by the static and CoinGecko sources.
const (
	PriceUSDC     = "usd-coin"
	PriceEthereum = "ethereum"
	PriceBitcoin  = "bitcoin"
	PriceMatic    = "matic-network"
)

// TokensByChain lists the ERC20 tokens read for each supported chain.
var TokensByChain = map[int64][]Token{
	1: {
		{Address: common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"), Symbol: "USDC", CoinGeckoID: PriceUSDC},
		{Address: common.HexToAddress("0xC02aaA39b223FE8D0A0E5C4F27eAD9083C756Cc2"), Symbol: "WETH", CoinGeckoID: PriceEthereum},
		{Address: common.HexToAddress("0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599"), Symbol: "WBTC", CoinGeckoID: PriceBitcoin},
	},
	137: {
		{Address: common.HexToAddress("0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174"), Symbol: "USDC", CoinGeckoID: PriceUSDC},
		{Address: common.HexToAddress("0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619"), Symbol: "WETH", CoinGeckoID: PriceEthereum},
	},
	8453: {
		{Address: common.HexToAddress("0x833589fcd6edb6e08f4c7c32d4f71b54bda02913"), Symbol: "USDC", CoinGeckoID: PriceUSDC},
	},
	42161: {
		{Address: common.HexToAddress("0xaf88d065e77c8cC2239327C5EDb3A432268e5831"), Symbol: "USDC", CoinGeckoID: PriceUSDC},
	},
	10: {
		{Address: common.HexToAddress("0x7F5c764cBc14f9669B88837ca1490cCa17c31607"), Symbol: "USDC", CoinGeckoID: PriceUSDC},
	},
}

// NativeToken returns the gas token symbol and price ID of a chain.
func NativeToken(chainID int64) (symbol, priceID string) {
	if chainID == 137 {
		return "MATIC", PriceMatic
	}
	return "ETH", PriceEthereum
}
