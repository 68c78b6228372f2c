package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"type":"function"}
]`

// Holdings below these thresholds are ignored.
const (
	minNativeBalance = 0.0001
	minTokenValueUSD = 0.01
	nativeDecimals   = 18
)

// ChainClient is the subset of *ethclient.Client the reader needs.
type ChainClient interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Reader reads native and ERC20 balances concurrently under a shared RPC rate limit.
type Reader struct {
	clients map[int64]ChainClient
	tokens  map[int64][]Token
	prices  PriceSource
	limiter *rate.Limiter
	erc20   abi.ABI
}

// NewReader creates a Reader. rps bounds RPC calls per second across all chains; a
// non-positive rps leaves the calls unthrottled.
func NewReader(clients map[int64]ChainClient, prices PriceSource, rps float64) (*Reader, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC20 ABI: %w", err)
	}
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &Reader{
		clients: clients,
		tokens:  TokensByChain,
		prices:  prices,
		limiter: rate.NewLimiter(limit, max(1, int(rps))),
		erc20:   parsed,
	}, nil
}

// DialClients connects to every configured RPC endpoint. The returned func closes them.
func DialClients(ctx context.Context, urls map[int64]string) (map[int64]ChainClient, func(), error) {
	clients := make(map[int64]ChainClient, len(urls))
	var opened []*ethclient.Client
	closeAll := func() {
		for _, c := range opened {
			c.Close()
		}
	}

	for chainID, url := range urls {
		c, err := ethclient.DialContext(ctx, url)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to dial chain %d: %w", chainID, err)
		}
		opened = append(opened, c)
		clients[chainID] = c
	}
	return clients, closeAll, nil
}

// SupportsChain reports whether chainID has an RPC client.
func (r *Reader) SupportsChain(chainID int64) bool {
	_, ok := r.clients[chainID]
	return ok
}

// ReadAssets returns the priced holdings of address on chainID, native token first.
// CurrentPct is left at zero. A failing token read is skipped; a failing native read fails
// the whole call.
func (r *Reader) ReadAssets(ctx context.Context, chainID int64, address string) ([]model.Asset, error) {
	client, ok := r.clients[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", apperrors.ErrUnsupportedChain, chainID)
	}
	owner := common.HexToAddress(address)
	tokens := r.tokens[chainID]
	nativeSymbol, nativePriceID := NativeToken(chainID)

	priceIDs := []string{nativePriceID}
	for _, t := range tokens {
		priceIDs = append(priceIDs, t.CoinGeckoID)
	}

	var (
		nativeBalance *big.Int
		tokenResults  = make([]*tokenBalance, len(tokens))
		prices        map[string]float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.limiter.Wait(gctx); err != nil {
			return err
		}
		bal, err := client.BalanceAt(gctx, owner, nil)
		if err != nil {
			return fmt.Errorf("failed to read native balance: %w", err)
		}
		nativeBalance = bal
		return nil
	})
	g.Go(func() error {
		p, err := r.prices.Prices(gctx, priceIDs)
		if err != nil {
			return fmt.Errorf("failed to fetch prices: %w", err)
		}
		prices = p
		return nil
	})
	for i, token := range tokens {
		g.Go(func() error {
			tb, err := r.readToken(gctx, client, token, owner)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				slog.Warn("skipping token balance", "chainId", chainID, "token", token.Symbol, "error", err)
				return nil
			}
			tokenResults[i] = tb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	assets := []model.Asset{}
	if native := toUnits(nativeBalance, nativeDecimals); native > minNativeBalance {
		isNative := true
		assets = append(assets, model.Asset{
			Symbol:   nativeSymbol,
			Balance:  &native,
			ValueUSD: native * priceOr(prices, nativePriceID, 0),
			IsNative: &isNative,
		})
	}

	for i, tb := range tokenResults {
		if tb == nil || tb.raw.Sign() <= 0 || tb.decimals == 0 {
			continue
		}
		amount := toUnits(tb.raw, tb.decimals)
		value := amount * priceOr(prices, tokens[i].CoinGeckoID, 1)
		if value <= minTokenValueUSD {
			continue
		}
		isNative := false
		assets = append(assets, model.Asset{
			Symbol:   tb.symbol,
			Balance:  &amount,
			ValueUSD: value,
			IsNative: &isNative,
		})
	}
	return assets, nil
}

type tokenBalance struct {
	symbol   string
	decimals uint8
	raw      *big.Int
}

func (r *Reader) readToken(ctx context.Context, client ChainClient, token Token, owner common.Address) (*tokenBalance, error) {
	balOut, err := r.call(ctx, client, token.Address, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	decOut, err := r.call(ctx, client, token.Address, "decimals")
	if err != nil {
		return nil, err
	}

	tb := &tokenBalance{symbol: token.Symbol}
	if tb.raw, err = unpackOne[*big.Int](r.erc20, "balanceOf", balOut); err != nil {
		return nil, err
	}
	if tb.decimals, err = unpackOne[uint8](r.erc20, "decimals", decOut); err != nil {
		return nil, err
	}

	// The on-chain symbol wins when the contract reports one.
	if symOut, err := r.call(ctx, client, token.Address, "symbol"); err == nil {
		if sym, err := unpackOne[string](r.erc20, "symbol", symOut); err == nil && sym != "" {
			tb.symbol = sym
		}
	}
	return tb, nil
}

func (r *Reader) call(ctx context.Context, client ChainClient, to common.Address, method string, args ...any) ([]byte, error) {
	data, err := r.erc20.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	out, err := client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call to %s failed: %w", method, to.Hex(), err)
	}
	return out, nil
}

func unpackOne[T any](parsed abi.ABI, method string, data []byte) (T, error) {
	var zero T
	vals, err := parsed.Unpack(method, data)
	if err != nil {
		return zero, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if len(vals) != 1 {
		return zero, fmt.Errorf("unexpected %s result length %d", method, len(vals))
	}
	v, ok := vals[0].(T)
	if !ok {
		return zero, fmt.Errorf("unexpected %s result type %T", method, vals[0])
	}
	return v, nil
}

func toUnits(raw *big.Int, decimals uint8) float64 {
	if raw == nil {
		return 0
	}
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(raw), scale).Float64()
	return f
}

func priceOr(prices map[string]float64, id string, fallback float64) float64 {
	if p, ok := prices[id]; ok {
		return p
	}
	return fallback
}
