package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// AnalyticsService recomputes and serves risk metrics, forecasts and anomalies.
type AnalyticsService struct {
	store *Store
}

// NewAnalyticsService creates a new AnalyticsService backed by store.
func NewAnalyticsService(store *Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Compute recomputes the analytics from the holdings, NAV history and transactions.
func (s *AnalyticsService) Compute(ctx context.Context) (model.AnalyticsResult, error) {
	op := &Op{Command: "computeAnalytics", Category: model.LogCategoryAnalytics, Message: "Analytics recomputed"}
	snap, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		next := s.store.Engine().ComputeAnalytics(snap)
		op.Details = fmt.Sprintf("volatilityPct=%.2f anomalies=%d", next.Risk.VolatilityPct, len(next.Anomalies))
		return next, nil
	})
	return analyticsOf(snap), err
}

// Get returns the last computed analytics.
func (s *AnalyticsService) Get() model.AnalyticsResult {
	return analyticsOf(s.store.Snapshot())
}

func analyticsOf(snap model.Snapshot) model.AnalyticsResult {
	return model.AnalyticsResult{Risk: snap.Risk, Forecasts: snap.Forecasts, Anomalies: snap.Anomalies}
}
