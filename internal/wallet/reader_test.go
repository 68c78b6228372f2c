package wallet

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
)

const owner = "0x52908400098527886E0F7030069857D2E4169EE7"

type fakeToken struct {
	balance  *big.Int
	decimals uint8
	symbol   string
	fail     bool
}

// fakeChain answers balanceOf, decimals and symbol from in-memory token state.
type fakeChain struct {
	erc20     abi.ABI
	native    *big.Int
	nativeErr error
	tokens    map[common.Address]fakeToken
}

func newFakeChain(t *testing.T, native *big.Int) *fakeChain {
	t.Helper()
	parsed, err := abi.JSON(bytes.NewReader([]byte(erc20ABI)))
	require.NoError(t, err)
	return &fakeChain{erc20: parsed, native: native, tokens: map[common.Address]fakeToken{}}
}

func (f *fakeChain) BalanceAt(context.Context, common.Address, *big.Int) (*big.Int, error) {
	return f.native, f.nativeErr
}

func (f *fakeChain) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	tok, ok := f.tokens[*call.To]
	if !ok || tok.fail {
		return nil, errors.New("execution reverted")
	}
	method, err := f.erc20.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	switch method.Name {
	case "balanceOf":
		return method.Outputs.Pack(tok.balance)
	case "decimals":
		return method.Outputs.Pack(tok.decimals)
	default:
		return method.Outputs.Pack(tok.symbol)
	}
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func TestReader_ReadAssets(t *testing.T) {
	ctx := context.Background()
	mainnet := TokensByChain[1]

	t.Run("prices native and tokens", func(t *testing.T) {
		// Setup
		chain := newFakeChain(t, ether(2))
		chain.tokens[mainnet[0].Address] = fakeToken{balance: big.NewInt(1_500_000_000), decimals: 6, symbol: "USDC"} // 1500 USDC
		chain.tokens[mainnet[1].Address] = fakeToken{balance: big.NewInt(0), decimals: 18, symbol: "WETH"}
		chain.tokens[mainnet[2].Address] = fakeToken{fail: true}

		reader, err := NewReader(map[int64]ChainClient{1: chain}, DefaultStaticPrices(), 1000)
		require.NoError(t, err)

		// Execute
		assets, err := reader.ReadAssets(ctx, 1, owner)

		// Assert
		require.NoError(t, err)
		require.Len(t, assets, 2)

		assert.Equal(t, "ETH", assets[0].Symbol)
		assert.InDelta(t, 2, *assets[0].Balance, 1e-9)
		assert.InDelta(t, 6400, assets[0].ValueUSD, 1e-6)
		assert.True(t, *assets[0].IsNative)

		assert.Equal(t, "USDC", assets[1].Symbol)
		assert.InDelta(t, 1500, assets[1].ValueUSD, 1e-6)
		assert.False(t, *assets[1].IsNative)
	})

	t.Run("dust native balance is ignored", func(t *testing.T) {
		chain := newFakeChain(t, big.NewInt(1_000)) // 1e-15 ETH
		reader, err := NewReader(map[int64]ChainClient{8453: chain}, DefaultStaticPrices(), 1000)
		require.NoError(t, err)

		assets, err := reader.ReadAssets(ctx, 8453, owner)
		require.NoError(t, err)
		assert.Empty(t, assets)
	})

	t.Run("polygon native is MATIC", func(t *testing.T) {
		chain := newFakeChain(t, ether(10))
		reader, err := NewReader(map[int64]ChainClient{137: chain}, DefaultStaticPrices(), 1000)
		require.NoError(t, err)

		assets, err := reader.ReadAssets(ctx, 137, owner)
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "MATIC", assets[0].Symbol)
		assert.InDelta(t, 8, assets[0].ValueUSD, 1e-9)
	})

	t.Run("native failure fails the read", func(t *testing.T) {
		chain := newFakeChain(t, nil)
		chain.nativeErr = errors.New("rpc down")
		reader, err := NewReader(map[int64]ChainClient{1: chain}, DefaultStaticPrices(), 1000)
		require.NoError(t, err)

		_, err = reader.ReadAssets(ctx, 1, owner)
		assert.ErrorContains(t, err, "rpc down")
	})

	t.Run("non-positive rps does not throttle", func(t *testing.T) {
		chain := newFakeChain(t, ether(1))
		chain.tokens[mainnet[0].Address] = fakeToken{balance: big.NewInt(2_000_000), decimals: 6, symbol: "USDC"}
		reader, err := NewReader(map[int64]ChainClient{1: chain}, DefaultStaticPrices(), 0)
		require.NoError(t, err)

		for range 3 {
			assets, err := reader.ReadAssets(ctx, 1, owner)
			require.NoError(t, err)
			assert.Len(t, assets, 2)
		}
	})

	t.Run("unsupported chain", func(t *testing.T) {
		reader, err := NewReader(map[int64]ChainClient{}, DefaultStaticPrices(), 1000)
		require.NoError(t, err)

		_, err = reader.ReadAssets(ctx, 56, owner)
		assert.ErrorIs(t, err, apperrors.ErrUnsupportedChain)
		assert.False(t, reader.SupportsChain(56))
	})
}

func TestCoinGeckoPrices(t *testing.T) {
	t.Run("parses simple price response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/simple/price", r.URL.Path)
			assert.Equal(t, "usd-coin,ethereum", r.URL.Query().Get("ids"))
			assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"usd-coin":{"usd":0.999},"ethereum":{"usd":3100.5}}`)) //nolint:errcheck
		}))
		defer server.Close()

		prices, err := NewCoinGeckoPrices(server.URL, server.Client()).Prices(context.Background(), []string{PriceUSDC, PriceEthereum})
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{PriceUSDC: 0.999, PriceEthereum: 3100.5}, prices)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		src := NewCoinGeckoPrices(server.URL, server.Client())
		src.client.SetRetryCount(0)
		_, err := src.Prices(context.Background(), []string{PriceUSDC})
		assert.ErrorContains(t, err, "status 429")
	})
}

func TestStaticPrices(t *testing.T) {
	prices, err := DefaultStaticPrices().Prices(context.Background(), []string{PriceEthereum, "dogecoin"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{PriceEthereum: 3200}, prices)
}
