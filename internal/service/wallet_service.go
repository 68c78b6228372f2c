package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
)

// BalanceReader reads the priced holdings of a wallet.
type BalanceReader interface {
	SupportsChain(chainID int64) bool
	ReadAssets(ctx context.Context, chainID int64, address string) ([]model.Asset, error)
}

// WalletService handles the wallet overlay: connection, holdings and the data source toggle.
type WalletService struct {
	store  *Store
	reader BalanceReader
}

// NewWalletService creates a new WalletService. reader may be nil when no RPC endpoints are
// configured; Sync then reports the chain as unsupported.
func NewWalletService(store *Store, reader BalanceReader) *WalletService {
	return &WalletService{store: store, reader: reader}
}

// WalletState is the wallet part of the snapshot.
type WalletState struct {
	Connected   bool          `json:"connected"`
	Address     string        `json:"address,omitempty"`
	ChainID     int64         `json:"chainId,omitempty"`
	UseRealData bool          `json:"useRealData"`
	Assets      []model.Asset `json:"assets"`
}

func walletOf(snap model.Snapshot) WalletState {
	return WalletState{
		Connected:   snap.WalletConnected,
		Address:     snap.WalletAddress,
		ChainID:     snap.WalletChainID,
		UseRealData: snap.UseRealData,
		Assets:      snap.WalletAssets,
	}
}

// Get returns the wallet state.
func (s *WalletService) Get() WalletState {
	return walletOf(s.store.Snapshot())
}

// SetConnection records a wallet connection or disconnection.
func (s *WalletService) SetConnection(ctx context.Context, req request.SetWalletConnectionRequest) (WalletState, error) {
	connected := req.Connected != nil && *req.Connected
	op := &Op{Command: "setWalletConnected", Category: model.LogCategoryWallet, Message: "Wallet disconnected"}
	if connected {
		op.Message = "Wallet connected"
		op.Details = fmt.Sprintf("address=%s chainId=%d", req.Address, req.ChainID)
	}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		if !connected {
			return s.store.Engine().SetWalletConnected(snap, false, "", 0), nil
		}
		return s.store.Engine().SetWalletConnected(snap, true, req.Address, req.ChainID), nil
	})
	return walletOf(snap), err
}

// UpdateAssets stores the wallet holdings reported by the caller.
func (s *WalletService) UpdateAssets(ctx context.Context, req request.UpdateWalletAssetsRequest) (WalletState, error) {
	assets := make([]model.Asset, len(req.Assets))
	for i, a := range req.Assets {
		assets[i] = model.Asset{Symbol: a.Symbol, ValueUSD: a.ValueUSD, Balance: a.Balance, IsNative: a.IsNative}
	}
	return s.apply(ctx, "updateWalletAssets", assets)
}

// Sync reads the connected wallet's balances and applies them. The chain reads run outside
// the store lock.
func (s *WalletService) Sync(ctx context.Context) (WalletState, error) {
	current := s.Get()
	if !current.Connected || current.Address == "" {
		return current, apperrors.ErrWalletNotConnected
	}
	if s.reader == nil || !s.reader.SupportsChain(current.ChainID) {
		return current, fmt.Errorf("%w: %d", apperrors.ErrUnsupportedChain, current.ChainID)
	}

	assets, err := s.reader.ReadAssets(ctx, current.ChainID, current.Address)
	if err != nil {
		slog.Warn("wallet sync failed", "chainId", current.ChainID, "error", err)
		s.store.audit.Record(ctx, model.LogLevelError, model.LogCategoryWallet, "Wallet sync failed", err.Error())
		return current, fmt.Errorf("%w: %w", apperrors.ErrFailedToSyncWallet, err)
	}
	return s.apply(ctx, "syncWallet", assets)
}

func (s *WalletService) apply(ctx context.Context, command string, assets []model.Asset) (WalletState, error) {
	op := &Op{
		Command:  command,
		Category: model.LogCategoryWallet,
		Message:  fmt.Sprintf("Wallet holdings updated: %d assets", len(assets)),
		Details:  fmt.Sprintf("totalUSD=%.2f", model.Total(assets)),
	}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		return s.store.Engine().UpdateWalletAssets(snap, assets), nil
	})
	return walletOf(snap), err
}

// ToggleDataSource switches between the wallet holdings and the demo portfolio.
func (s *WalletService) ToggleDataSource(ctx context.Context) (WalletState, error) {
	op := &Op{Command: "toggleDataSource", Category: model.LogCategoryWallet}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		next := treasury.ToggleDataSource(snap)
		op.Message = "Switched to demo data"
		if next.UseRealData {
			op.Message = "Switched to wallet data"
		}
		return next, nil
	})
	return walletOf(snap), err
}
