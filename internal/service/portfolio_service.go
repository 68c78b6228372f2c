package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
)

// PortfolioService handles the holdings, KPIs, NAV history and transactions.
type PortfolioService struct {
	store *Store
}

// NewPortfolioService creates a new PortfolioService backed by store.
func NewPortfolioService(store *Store) *PortfolioService {
	return &PortfolioService{store: store}
}

// GetAssets returns the current holdings.
func (s *PortfolioService) GetAssets() []model.Asset {
	return s.store.Snapshot().Assets
}

// GetKPIs returns the headline figures.
func (s *PortfolioService) GetKPIs() model.KPIs {
	return Read(s.store, func(snap model.Snapshot) model.KPIs { return snap.KPIs })
}

// GetNavHistory returns the NAV series, oldest first.
func (s *PortfolioService) GetNavHistory() []model.NavPoint {
	return s.store.Snapshot().NavHistory
}

// GetTransactions returns the transaction history, newest first.
func (s *PortfolioService) GetTransactions() []model.Transaction {
	txs := s.store.Snapshot().Transactions
	slices.SortStableFunc(txs, func(a, b model.Transaction) int {
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		}
		return 0
	})
	return txs
}

// WriteTransactionsCSV writes the transaction report: header id,date,type,asset,amount,valueUSD,
// RFC3339 UTC dates and two-decimal money, newest first.
func (s *PortfolioService) WriteTransactionsCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "type", "asset", "amount", "valueUSD"}); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToExportReport, err)
	}
	for _, t := range s.GetTransactions() {
		record := []string{
			t.ID,
			time.UnixMilli(t.Date).UTC().Format(time.RFC3339),
			string(t.Type),
			t.Asset,
			decimal.NewFromFloat(t.Amount).String(),
			decimal.NewFromFloat(t.ValueUSD).StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrFailedToExportReport, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToExportReport, err)
	}
	return nil
}

// Rebalance revalues the holdings to the target allocation.
func (s *PortfolioService) Rebalance(ctx context.Context) ([]model.Asset, error) {
	op := &Op{Command: "simulateRebalance", Category: model.LogCategoryPortfolio, Message: "Rebalance simulated"}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		next := s.store.Engine().SimulateRebalance(snap)
		op.Details = fmt.Sprintf("total=%s assets=%d", decimal.NewFromFloat(model.Total(next.Assets)).StringFixed(2), len(next.Assets))
		return next, nil
	})
	return snap.Assets, err
}

// Optimize derives target weights from the agent's risk tolerance.
func (s *PortfolioService) Optimize(ctx context.Context) (map[string]float64, error) {
	op := &Op{Command: "optimizePortfolio", Category: model.LogCategoryPortfolio, Message: "Portfolio optimized"}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		op.Details = fmt.Sprintf("riskTolerance=%d", snap.AgentConfig.RiskTolerance)
		return s.store.Engine().OptimizePortfolio(snap), nil
	})
	return snap.TargetAllocation, err
}

// State returns the full snapshot with the proposal status derived for now.
func (s *PortfolioService) State() model.Snapshot {
	snap := s.store.Snapshot()
	snap.GovernanceProposals = treasury.WithDerivedStatus(snap.GovernanceProposals, s.store.Engine().Now())
	return snap
}
